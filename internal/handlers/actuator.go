package handlers

import (
	"net/http"

	"home_climate/internal/service"

	"github.com/gin-gonic/gin"
)

type actuatorRequest struct {
	ModeRequest          string   `json:"mode_request" binding:"required"` // auto | manual | ai
	AC                   *int     `json:"ac" binding:"required"`
	Fan                  *int     `json:"fan" binding:"required"`
	TempThreshold        *float64 `json:"temp_threshold" binding:"required"`
	EndUserAIInstruction string   `json:"end_user_ai_instruction"`
	Source               string   `json:"source"`
}

// ActuatorStateRequest is an exported model for Swagger docs.
type ActuatorStateRequest struct {
	// Allowed: auto, manual, ai
	ModeRequest          string  `json:"mode_request" example:"ai"`
	AC                   int     `json:"ac" example:"1"`
	Fan                  int     `json:"fan" example:"0"`
	TempThreshold        float64 `json:"temp_threshold" example:"23.5"`
	EndUserAIInstruction string  `json:"end_user_ai_instruction,omitempty" example:"keep cool"`
	Source               string  `json:"source,omitempty" example:"assistant"`
}

// @Summary      Get actuator state
// @Tags         actuator
// @Produce      json
// @Success      200  {object}  models.ActuatorState
// @Failure      500  {object}  map[string]string
// @Router       /api/actuator/state [get]
func (h *Handler) getActuatorState(c *gin.Context) {
	st, err := h.services.Actuator.GetState(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadActuator, "actuator_get_state_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Overwrite actuator state
// @Tags         actuator
// @Accept       json
// @Produce      json
// @Param        body  body      ActuatorStateRequest  true  "Actuator payload"
// @Success      200   {object}  map[string]interface{}  "status, api_state"
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/actuator/state [post]
func (h *Handler) updateActuatorState(c *gin.Context) {
	var req actuatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}
	st, err := h.services.Actuator.UpdateState(c.Request.Context(), service.ActuatorParams{
		ModeRequest:          req.ModeRequest,
		AC:                   *req.AC,
		Fan:                  *req.Fan,
		TempThreshold:        *req.TempThreshold,
		EndUserAIInstruction: req.EndUserAIInstruction,
		Source:               req.Source,
	})
	if err != nil {
		h.serviceError(c, errUpdateActuator, "actuator_update_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusOK, "api_state": st})
}
