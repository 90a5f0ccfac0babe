package weather

import (
	"time"

	"home_climate/internal/models"
)

// MockCurrent is served when the upstream is unavailable.
func MockCurrent(now time.Time) models.CurrentWeather {
	return models.CurrentWeather{
		Temperature: 28.2,
		FeelsLike:   30.5,
		Humidity:    65,
		Description: "Clear, night",
		Icon:        "01n",
		Location:    "Home",
		Timestamp:   now.Unix(),
	}
}

func MockForecast() models.Forecast {
	return models.Forecast{
		Location: "Home",
		Forecasts: []models.ForecastDay{
			{Date: "2026-02-04", DayName: "Tue", Temperature: 21, Description: "Clear", Icon: "01d"},
			{Date: "2026-02-05", DayName: "Wed", Temperature: 25, Description: "Cloudy", Icon: "04d"},
			{Date: "2026-02-06", DayName: "Thu", Temperature: 22, Description: "Clear", Icon: "01d"},
		},
	}
}
