package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"home_climate/internal/models"
	"home_climate/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockTelemetry struct {
	ingestID  int64
	ingestErr error
	history   []models.Telemetry
	histErr   error
	latest    *models.Telemetry
	latestErr error

	lastReading service.Reading
	ingestCalls int
}

func (m *mockTelemetry) Ingest(ctx context.Context, r service.Reading) (int64, error) {
	m.ingestCalls++
	m.lastReading = r
	return m.ingestID, m.ingestErr
}
func (m *mockTelemetry) History(ctx context.Context) ([]models.Telemetry, error) {
	return m.history, m.histErr
}
func (m *mockTelemetry) Latest(ctx context.Context) (*models.Telemetry, error) {
	return m.latest, m.latestErr
}

type mockClimate struct {
	settings models.ACSettings
	err      error
	getErr   error

	lastManual     service.ManualParams
	lastAutomation service.AutomationParams
	manualCalls    int
	autoCalls      int
}

func (m *mockClimate) ManualUpdate(ctx context.Context, p service.ManualParams) (models.ACSettings, error) {
	m.manualCalls++
	m.lastManual = p
	if m.err != nil {
		return models.ACSettings{}, m.err
	}
	st := m.settings
	st.Mode, st.IsOn, st.TargetTemp = models.ACModeManual, p.IsOn, p.TargetTemp
	return st, nil
}
func (m *mockClimate) AutomationUpdate(ctx context.Context, p service.AutomationParams) (models.ACSettings, error) {
	m.autoCalls++
	m.lastAutomation = p
	if m.err != nil {
		return models.ACSettings{}, m.err
	}
	st := m.settings
	st.AutomationEnabled, st.ThresholdTemp = p.Enabled, p.ThresholdTemp
	if p.Enabled {
		st.Mode = models.ACModeAuto
	}
	return st, nil
}
func (m *mockClimate) GetSettings(ctx context.Context) (models.ACSettings, error) {
	return m.settings, m.getErr
}

type mockActuator struct {
	state  models.ActuatorState
	err    error
	getErr error

	lastParams  service.ActuatorParams
	updateCalls int
}

func (m *mockActuator) UpdateState(ctx context.Context, p service.ActuatorParams) (models.ActuatorState, error) {
	m.updateCalls++
	m.lastParams = p
	if m.err != nil {
		return models.ActuatorState{}, m.err
	}
	return models.ActuatorState{
		ID: 1, ModeRequest: p.ModeRequest, AC: p.AC, Fan: p.Fan, TempThreshold: p.TempThreshold,
		EndUserAIInstruction: p.EndUserAIInstruction, Source: p.Source,
	}, nil
}
func (m *mockActuator) GetState(ctx context.Context) (models.ActuatorState, error) {
	return m.state, m.getErr
}

type mockWeather struct {
	current  models.CurrentWeather
	forecast models.Forecast
	lat, lon float64
}

func (m *mockWeather) Current(ctx context.Context, lat, lon float64) models.CurrentWeather {
	m.lat, m.lon = lat, lon
	return m.current
}
func (m *mockWeather) Forecast(ctx context.Context, lat, lon float64) models.Forecast {
	m.lat, m.lon = lat, lon
	return m.forecast
}
func (m *mockWeather) DefaultLocation() (float64, float64) { return 21.0285, 105.8542 }

type mockDateTime struct {
	info models.DateTimeInfo
}

func (m *mockDateTime) Now() models.DateTimeInfo { return m.info }

type mockCommandLog struct {
	cmds  []models.ControlCommand
	err   error
	last  service.CommandFilter
	calls int
}

func (m *mockCommandLog) List(ctx context.Context, f service.CommandFilter) ([]models.ControlCommand, error) {
	m.calls++
	m.last = f
	return m.cmds, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
