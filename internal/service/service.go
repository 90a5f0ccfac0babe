package service

import (
	"context"
	"time"

	"home_climate/internal/logger"
	"home_climate/internal/models"
	"home_climate/internal/repository"
)

// Telemetry persists device readings and serves recent history.
type Telemetry interface {
	Ingest(ctx context.Context, r Reading) (int64, error)
	History(ctx context.Context) ([]models.Telemetry, error)
	// Latest returns nil when nothing has been ingested yet.
	Latest(ctx context.Context) (*models.Telemetry, error)
}

// Climate reconciles the AC settings singleton.
type Climate interface {
	ManualUpdate(ctx context.Context, p ManualParams) (models.ACSettings, error)
	AutomationUpdate(ctx context.Context, p AutomationParams) (models.ACSettings, error)
	GetSettings(ctx context.Context) (models.ACSettings, error)
}

// Actuator reconciles the AC/fan output singleton polled by devices.
type Actuator interface {
	UpdateState(ctx context.Context, p ActuatorParams) (models.ActuatorState, error)
	GetState(ctx context.Context) (models.ActuatorState, error)
}

// Weather is implemented by weather.Client. Calls never fail; upstream
// problems degrade to a mock payload.
type Weather interface {
	Current(ctx context.Context, lat, lon float64) models.CurrentWeather
	Forecast(ctx context.Context, lat, lon float64) models.Forecast
	DefaultLocation() (lat, lon float64)
}

// CommandLog lists locally recorded control commands.
type CommandLog interface {
	List(ctx context.Context, f CommandFilter) ([]models.ControlCommand, error)
}

type DateTime interface {
	Now() models.DateTimeInfo
}

// Simulator feeds generated readings through Telemetry until ctx is canceled.
type Simulator interface {
	Run(ctx context.Context, tick time.Duration)
}

// Mirror is the fire-and-forget sink for state changes (mirror.Dispatcher).
type Mirror interface {
	PushReading(fields map[string]any)
	PushCommand(commandType string, fields map[string]any)
}

type Service struct {
	Telemetry
	Climate
	Actuator
	Weather
	DateTime
	Simulator
	CommandLog
}

// Deps are the non-repository collaborators. Mirror may be nil.
type Deps struct {
	Mirror   Mirror
	Weather  Weather
	Timezone string
	Log      *logger.Logger
}

func NewService(repos *repository.Repository, deps Deps) *Service {
	mirror := deps.Mirror
	if mirror == nil {
		mirror = noopMirror{}
	}
	telemetry := NewTelemetryService(repos.Telemetry, mirror, deps.Log)
	return &Service{
		Telemetry: telemetry,
		Climate:   NewClimateService(repos.ACSettings, mirror),
		Actuator:  NewActuatorService(repos.ActuatorState, mirror),
		Weather:   deps.Weather,
		DateTime:  NewDateTimeService(deps.Timezone, deps.Log),
		Simulator: NewSimulatorService(telemetry, deps.Log),

		CommandLog: NewCommandLogService(repos.Commands),
	}
}

type noopMirror struct{}

func (noopMirror) PushReading(map[string]any)         {}
func (noopMirror) PushCommand(string, map[string]any) {}
