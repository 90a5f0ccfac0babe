package models

import "time"

// AC control modes.
const (
	ACModeManual = "manual"
	ACModeAuto   = "auto"
)

// ACSettings is the singleton AC configuration row.
type ACSettings struct {
	ID                int        `json:"id"`
	Mode              string     `json:"mode"` // manual | auto
	IsOn              bool       `json:"is_on"`
	TargetTemp        float64    `json:"target_temp"`
	ThresholdTemp     float64    `json:"threshold_temp"`
	AutomationEnabled bool       `json:"automation_enabled"`
	LastUpdated       *time.Time `json:"last_updated"` // nil until first write
}

// DefaultACSettings is the shape reported before the first write.
func DefaultACSettings() ACSettings {
	return ACSettings{
		ID:            1,
		Mode:          ACModeManual,
		TargetTemp:    22.0,
		ThresholdTemp: 25.0,
	}
}
