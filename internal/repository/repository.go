package repository

import (
	"context"
	"database/sql"
	"time"

	"home_climate/internal/models"
)

type TelemetryRepo interface {
	Append(ctx context.Context, t models.Telemetry) (int64, error)
	Recent(ctx context.Context, limit int) ([]models.Telemetry, error)
}

// ACSettingsRepo stores the single ac_settings row (id always 1).
// Load returns the zero value (ID 0) when the row has not been written yet.
type ACSettingsRepo interface {
	Load(ctx context.Context) (models.ACSettings, error)
	Update(ctx context.Context, fn func(*models.ACSettings) error) (models.ACSettings, error)
}

// ActuatorStateRepo stores the single actuator_state row (id always 1).
type ActuatorStateRepo interface {
	Load(ctx context.Context) (models.ActuatorState, error)
	Update(ctx context.Context, fn func(*models.ActuatorState) error) (models.ActuatorState, error)
}

// CommandRepo is the local append-only log of control commands.
type CommandRepo interface {
	Append(ctx context.Context, c models.ControlCommand) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.ControlCommand, error)
}

type Repository struct {
	Telemetry     TelemetryRepo
	ACSettings    ACSettingsRepo
	ActuatorState ActuatorStateRepo
	Commands      CommandRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Telemetry:     NewTelemetrySQLite(db),
		ACSettings:    NewACSettingsSQLite(db),
		ActuatorState: NewActuatorStateSQLite(db),
		Commands:      NewCommandSQLite(db),
	}
}
