package models

// CurrentWeather is the normalized current-conditions payload.
type CurrentWeather struct {
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feels_like"`
	Humidity    int     `json:"humidity"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Location    string  `json:"location"`
	Timestamp   int64   `json:"timestamp"`
}

// ForecastDay is one daily entry of a Forecast.
type ForecastDay struct {
	Date        string  `json:"date"`     // YYYY-MM-DD
	DayName     string  `json:"day_name"` // Mon, Tue, ...
	Temperature float64 `json:"temperature"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
}

// Forecast holds up to five days, one entry per calendar date.
type Forecast struct {
	Location  string        `json:"location"`
	Forecasts []ForecastDay `json:"forecasts"`
}
