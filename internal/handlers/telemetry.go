package handlers

import (
	"net/http"

	"home_climate/internal/models"
	"home_climate/internal/service"

	"github.com/gin-gonic/gin"
)

// @Summary      Ingest a telemetry reading
// @Tags         telemetry
// @Accept       json
// @Produce      json
// @Param        body  body      models.TelemetryInput  true  "Device payload"
// @Success      200   {object}  map[string]interface{}  "status, id"
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/telemetry [post]
func (h *Handler) saveTelemetry(c *gin.Context) {
	var in models.TelemetryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badBody(c, err)
		return
	}
	id, err := h.services.Telemetry.Ingest(c.Request.Context(), service.ReadingFromInput(in))
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errSaveTelemetry, "telemetry_ingest_failed", err,
			"device_id", in.DeviceID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusOK, "id": id})
}

// @Summary      Recent readings
// @Description  Up to 50 readings, newest first
// @Tags         telemetry
// @Produce      json
// @Success      200  {array}   models.Telemetry
// @Failure      500  {object}  map[string]string
// @Router       /api/history [get]
func (h *Handler) getHistory(c *gin.Context) {
	rows, err := h.services.Telemetry.History(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadHistory, "telemetry_history_failed", err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
