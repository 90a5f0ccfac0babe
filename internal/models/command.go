package models

import "time"

// ControlCommand is one locally logged control change, the same record that
// is appended to the remote command log.
type ControlCommand struct {
	ID      string         `json:"id"`
	Type    string         `json:"type"` // manual_update | automation_update | actuator_update
	SentAt  time.Time      `json:"sent_at"`
	Payload map[string]any `json:"payload,omitempty"`
}
