package models

import "time"

// Mode requests accepted for the actuator.
const (
	ModeRequestAuto   = "auto"
	ModeRequestManual = "manual"
	ModeRequestAI     = "ai"
)

// ActuatorState is the singleton AC/fan output row polled by the device.
type ActuatorState struct {
	ID                   int        `json:"id"`
	ModeRequest          string     `json:"mode_request"` // auto | manual | ai
	AC                   int        `json:"ac"`           // 0 | 1
	Fan                  int        `json:"fan"`          // 0 | 1
	TempThreshold        float64    `json:"temp_threshold"`
	EndUserAIInstruction string     `json:"end_user_ai_instruction"`
	Source               string     `json:"source"`
	LastUpdated          *time.Time `json:"last_updated"`
}

// DefaultActuatorSource is recorded when a caller does not identify itself.
const DefaultActuatorSource = "web_client"

func DefaultActuatorState() ActuatorState {
	return ActuatorState{
		ID:            1,
		ModeRequest:   ModeRequestManual,
		TempThreshold: 25.0,
		Source:        DefaultActuatorSource,
	}
}
