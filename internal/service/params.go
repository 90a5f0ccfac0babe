package service

import (
	"errors"
	"time"

	"home_climate/internal/models"
)

// ErrInvalidInput marks a request the caller must fix (HTTP 400).
var ErrInvalidInput = errors.New("invalid input")

// Reading is one flattened telemetry sample.
type Reading struct {
	DeviceID    string
	Unit        string
	TS          int64
	TempInside  float64
	TempOutside float64
}

// ReadingFromInput flattens a validated wire payload. Callers must have run
// binding validation first; nil pointers would panic here.
func ReadingFromInput(in models.TelemetryInput) Reading {
	return Reading{
		DeviceID:    *in.DeviceID,
		Unit:        *in.Unit,
		TS:          *in.TS,
		TempInside:  *in.Temperatures.Inside.Value,
		TempOutside: *in.Temperatures.Outside.Value,
	}
}

type ManualParams struct {
	IsOn       bool
	TargetTemp float64
}

type AutomationParams struct {
	Enabled       bool
	ThresholdTemp float64
}

// ActuatorParams is a full overwrite of the actuator state.
type ActuatorParams struct {
	ModeRequest          string // auto | manual | ai
	AC                   int    // 0 | 1
	Fan                  int    // 0 | 1
	TempThreshold        float64
	EndUserAIInstruction string
	Source               string // empty means web_client
}

// CommandFilter narrows the local command log.
type CommandFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", manual_update, automation_update, actuator_update
}
