package models

import "time"

// Telemetry is a single persisted sensor reading. Rows are append-only.
type Telemetry struct {
	ID          int64     `json:"id"`
	DeviceID    string    `json:"device_id"`
	Unit        string    `json:"unit"`         // e.g. "C"
	TS          int64     `json:"ts"`           // device-supplied epoch seconds
	TempInside  float64   `json:"temp_inside"`  // °C
	TempOutside float64   `json:"temp_outside"` // °C
	CreatedAt   time.Time `json:"created_at"`   // server-received, UTC
}

// SensorValue is one probe inside a telemetry payload.
type SensorValue struct {
	SensorID *string  `json:"sensor_id" binding:"required"`
	Value    *float64 `json:"value" binding:"required"`
}

// Temperatures groups the inside/outside probes of a payload.
type Temperatures struct {
	Inside  *SensorValue `json:"inside" binding:"required"`
	Outside *SensorValue `json:"outside" binding:"required"`
}

// TelemetryInput is the device wire format accepted over HTTP and MQTT.
// Fields are pointers so presence, not value, is what gets validated; an
// empty device_id or unit is accepted.
type TelemetryInput struct {
	DeviceID     *string       `json:"device_id" binding:"required"`
	IntervalS    *int          `json:"interval_s" binding:"required"`
	Unit         *string       `json:"unit" binding:"required"`
	TS           *int64        `json:"ts" binding:"required"`
	Temperatures *Temperatures `json:"temperatures" binding:"required"`
}
