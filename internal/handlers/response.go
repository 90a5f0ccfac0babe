package handlers

import (
	"errors"
	"net/http"

	"home_climate/internal/service"

	"github.com/gin-gonic/gin"
)

// Response messages.
const (
	statusOK = "ok"

	errSaveTelemetry    = "failed to save telemetry"
	errLoadHistory      = "failed to load history"
	errUpdateSettings   = "failed to update ac settings"
	errLoadSettings     = "failed to load ac settings"
	errUpdateActuator   = "failed to update actuator state"
	errLoadActuator     = "failed to load actuator state"
	errInvalidBodyPref  = "invalid body: "
	errInvalidQueryPref = "invalid query: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err, "request_id", c.GetString(requestIDKey)}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// serviceError maps ErrInvalidInput to 400 with the validation message and
// everything else to a logged 500.
func (h *Handler) serviceError(c *gin.Context, userMsg, logKey string, err error) {
	if errors.Is(err, service.ErrInvalidInput) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.logAndJSONError(c, http.StatusInternalServerError, userMsg, logKey, err)
}

func badBody(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}
