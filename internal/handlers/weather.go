package handlers

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// coords reads optional ?lat&lon, defaulting each to the configured location.
func (h *Handler) coords(c *gin.Context) (lat, lon float64, err error) {
	lat, lon = h.services.Weather.DefaultLocation()
	if s := c.Query("lat"); s != "" {
		if lat, err = strconv.ParseFloat(s, 64); err != nil || math.IsNaN(lat) || lat < -90 || lat > 90 {
			return 0, 0, fmt.Errorf("lat must be a number in [-90, 90], got %q", s)
		}
	}
	if s := c.Query("lon"); s != "" {
		if lon, err = strconv.ParseFloat(s, 64); err != nil || math.IsNaN(lon) || lon < -180 || lon > 180 {
			return 0, 0, fmt.Errorf("lon must be a number in [-180, 180], got %q", s)
		}
	}
	return lat, lon, nil
}

// @Summary      Current weather
// @Description  Falls back to a fixed sample when the upstream is unavailable
// @Tags         weather
// @Produce      json
// @Param        lat  query     number  false  "Latitude"
// @Param        lon  query     number  false  "Longitude"
// @Success      200  {object}  models.CurrentWeather
// @Failure      400  {object}  map[string]string
// @Router       /api/weather/current [get]
func (h *Handler) getCurrentWeather(c *gin.Context) {
	lat, lon, err := h.coords(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidQueryPref + err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.services.Weather.Current(c.Request.Context(), lat, lon))
}

// @Summary      Five-day forecast
// @Tags         weather
// @Produce      json
// @Param        lat  query     number  false  "Latitude"
// @Param        lon  query     number  false  "Longitude"
// @Success      200  {object}  models.Forecast
// @Failure      400  {object}  map[string]string
// @Router       /api/weather/forecast [get]
func (h *Handler) getForecast(c *gin.Context) {
	lat, lon, err := h.coords(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidQueryPref + err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.services.Weather.Forecast(c.Request.Context(), lat, lon))
}

// @Summary      Server date and time
// @Tags         system
// @Produce      json
// @Success      200  {object}  models.DateTimeInfo
// @Router       /api/datetime [get]
func (h *Handler) getDateTime(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.DateTime.Now())
}
