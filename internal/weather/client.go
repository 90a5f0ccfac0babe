package weather

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"home_climate/internal/config"
	"home_climate/internal/logger"
	"home_climate/internal/models"

	"github.com/go-resty/resty/v2"
)

const (
	defaultBaseURL  = "https://api.openweathermap.org/data/2.5"
	defaultTimeout  = 5 * time.Second
	maxForecastDays = 5
	middayHour      = 12
)

var errNoAPIKey = errors.New("weather api key not configured")

// Client proxies OpenWeatherMap and falls back to a fixed mock payload when no
// key is configured or the upstream call fails. Its methods never error.
type Client struct {
	apiKey  string
	baseURL string
	lang    string
	lat     float64
	lon     float64
	http    *resty.Client
	log     *logger.Logger
	now     func() time.Time
}

func NewClient(cfg config.WeatherConfig, log *logger.Logger) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		apiKey:  strings.TrimSpace(cfg.APIKey),
		baseURL: baseURL,
		lang:    cfg.Lang,
		lat:     cfg.Lat,
		lon:     cfg.Lon,
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json"),
		log:     logger.OrNop(log),
		now:     time.Now,
	}
}

// DefaultLocation is the configured fallback coordinate.
func (c *Client) DefaultLocation() (lat, lon float64) {
	return c.lat, c.lon
}

// Current returns normalized current conditions for lat/lon.
func (c *Client) Current(ctx context.Context, lat, lon float64) models.CurrentWeather {
	var raw currentResponse
	if err := c.fetch(ctx, "weather", lat, lon, &raw); err != nil {
		c.log.Warnw("weather_current_fallback", "lat", lat, "lon", lon, "err", err)
		return MockCurrent(c.now())
	}
	cw, err := raw.normalize()
	if err != nil {
		c.log.Warnw("weather_current_fallback", "lat", lat, "lon", lon, "err", err)
		return MockCurrent(c.now())
	}
	return cw
}

// Forecast returns up to five daily entries for lat/lon.
func (c *Client) Forecast(ctx context.Context, lat, lon float64) models.Forecast {
	var raw forecastResponse
	if err := c.fetch(ctx, "forecast", lat, lon, &raw); err != nil {
		c.log.Warnw("weather_forecast_fallback", "lat", lat, "lon", lon, "err", err)
		return MockForecast()
	}
	fc, err := raw.normalize()
	if err != nil {
		c.log.Warnw("weather_forecast_fallback", "lat", lat, "lon", lon, "err", err)
		return MockForecast()
	}
	return fc
}

func (c *Client) fetch(ctx context.Context, endpoint string, lat, lon float64, dst any) error {
	if c.apiKey == "" {
		return errNoAPIKey
	}

	params := map[string]string{
		"lat":   strconv.FormatFloat(lat, 'f', -1, 64),
		"lon":   strconv.FormatFloat(lon, 'f', -1, 64),
		"appid": c.apiKey,
		"units": "metric",
	}
	if c.lang != "" {
		params["lang"] = c.lang
	}

	// The upstream does not always label its body as JSON.
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(dst).
		ForceContentType("application/json").
		Get("/" + endpoint)
	if err != nil {
		return fmt.Errorf("get %s: %w", endpoint, err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("get %s: unexpected status %d", endpoint, resp.StatusCode())
	}
	return nil
}

// Upstream response shapes (only the fields used).

type mainBlock struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	Humidity  int     `json:"humidity"`
}

type conditionBlock struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type currentResponse struct {
	Main    mainBlock        `json:"main"`
	Weather []conditionBlock `json:"weather"`
	Name    string           `json:"name"`
	Dt      int64            `json:"dt"`
}

func (r currentResponse) normalize() (models.CurrentWeather, error) {
	if len(r.Weather) == 0 {
		return models.CurrentWeather{}, errors.New("current weather has no condition entries")
	}
	return models.CurrentWeather{
		Temperature: round1(r.Main.Temp),
		FeelsLike:   round1(r.Main.FeelsLike),
		Humidity:    r.Main.Humidity,
		Description: r.Weather[0].Description,
		Icon:        r.Weather[0].Icon,
		Location:    r.Name,
		Timestamp:   r.Dt,
	}, nil
}

type forecastItem struct {
	Dt      int64            `json:"dt"`
	Main    mainBlock        `json:"main"`
	Weather []conditionBlock `json:"weather"`
}

type forecastResponse struct {
	List []forecastItem `json:"list"`
	City struct {
		Name     string `json:"name"`
		Timezone int    `json:"timezone"` // UTC offset, seconds
	} `json:"city"`
}

// normalize keeps one sample per local calendar date, the one closest to
// midday, for the first maxForecastDays dates in ascending order.
func (r forecastResponse) normalize() (models.Forecast, error) {
	zone := time.FixedZone("city", r.City.Timezone)

	type pick struct {
		item  forecastItem
		local time.Time
	}
	var dates []string
	best := make(map[string]pick)

	for _, it := range r.List {
		if len(it.Weather) == 0 {
			continue
		}
		local := time.Unix(it.Dt, 0).In(zone)
		date := local.Format("2006-01-02")
		cur, seen := best[date]
		if !seen {
			if len(dates) == maxForecastDays {
				continue
			}
			dates = append(dates, date)
			best[date] = pick{item: it, local: local}
			continue
		}
		if middayDistance(local) < middayDistance(cur.local) {
			best[date] = pick{item: it, local: local}
		}
	}
	if len(dates) == 0 {
		return models.Forecast{}, errors.New("forecast has no usable entries")
	}
	sort.Strings(dates)

	days := make([]models.ForecastDay, 0, len(dates))
	for _, d := range dates {
		p := best[d]
		days = append(days, models.ForecastDay{
			Date:        d,
			DayName:     p.local.Format("Mon"),
			Temperature: round1(p.item.Main.Temp),
			Description: p.item.Weather[0].Description,
			Icon:        p.item.Weather[0].Icon,
		})
	}
	return models.Forecast{Location: r.City.Name, Forecasts: days}, nil
}

func middayDistance(t time.Time) time.Duration {
	midday := time.Date(t.Year(), t.Month(), t.Day(), middayHour, 0, 0, 0, t.Location())
	d := t.Sub(midday)
	if d < 0 {
		return -d
	}
	return d
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
