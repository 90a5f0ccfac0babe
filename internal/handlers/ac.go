package handlers

import (
	"net/http"

	"home_climate/internal/service"

	"github.com/gin-gonic/gin"
)

// Request DTO for manual control. Mode is accepted for compatibility and
// ignored: a manual update always means manual mode.
type manualRequest struct {
	IsOn       *bool    `json:"is_on" binding:"required"`
	TargetTemp *float64 `json:"target_temp" binding:"required"`
	Mode       string   `json:"mode,omitempty"`
}

type automationRequest struct {
	Enabled       *bool    `json:"enabled" binding:"required"`
	ThresholdTemp *float64 `json:"threshold_temp" binding:"required"`
}

// ManualControlRequest is an exported model for Swagger docs.
type ManualControlRequest struct {
	IsOn       bool    `json:"is_on" example:"true"`
	TargetTemp float64 `json:"target_temp" example:"24"`
	Mode       string  `json:"mode,omitempty" example:"manual"`
}

// AutomationRequest is an exported model for Swagger docs.
type AutomationRequest struct {
	// Enabling forces mode=auto
	Enabled       bool    `json:"enabled" example:"true"`
	ThresholdTemp float64 `json:"threshold_temp" example:"26"`
}

// @Summary      Manual AC control
// @Description  Sets mode=manual with the given power state and target
// @Tags         ac
// @Accept       json
// @Produce      json
// @Param        body  body      ManualControlRequest  true  "Manual payload"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/ac/manual [post]
func (h *Handler) manualUpdate(c *gin.Context) {
	var req manualRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}
	st, err := h.services.Climate.ManualUpdate(c.Request.Context(), service.ManualParams{
		IsOn:       *req.IsOn,
		TargetTemp: *req.TargetTemp,
	})
	if err != nil {
		h.serviceError(c, errUpdateSettings, "ac_manual_update_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
		"settings": gin.H{
			"mode":        st.Mode,
			"is_on":       st.IsOn,
			"target_temp": st.TargetTemp,
		},
	})
}

// @Summary      AC automation
// @Tags         ac
// @Accept       json
// @Produce      json
// @Param        body  body      AutomationRequest  true  "Automation payload"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/ac/automation [post]
func (h *Handler) automationUpdate(c *gin.Context) {
	var req automationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}
	st, err := h.services.Climate.AutomationUpdate(c.Request.Context(), service.AutomationParams{
		Enabled:       *req.Enabled,
		ThresholdTemp: *req.ThresholdTemp,
	})
	if err != nil {
		h.serviceError(c, errUpdateSettings, "ac_automation_update_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
		"settings": gin.H{
			"automation_enabled": st.AutomationEnabled,
			"threshold_temp":     st.ThresholdTemp,
			"mode":               st.Mode,
		},
	})
}

// @Summary      Get AC settings
// @Tags         ac
// @Produce      json
// @Success      200  {object}  models.ACSettings
// @Failure      500  {object}  map[string]string
// @Router       /api/ac/settings [get]
func (h *Handler) getACSettings(c *gin.Context) {
	st, err := h.services.Climate.GetSettings(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadSettings, "ac_get_settings_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}
