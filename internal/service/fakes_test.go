package service

import (
	"context"
	"sync"

	"home_climate/internal/models"
)

// ---- Test doubles ----

type pushedCommand struct {
	kind   string
	fields map[string]any
}

type fakeMirror struct {
	mu       sync.Mutex
	readings []map[string]any
	commands []pushedCommand
}

func (m *fakeMirror) PushReading(fields map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readings = append(m.readings, fields)
}

func (m *fakeMirror) PushCommand(kind string, fields map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commands = append(m.commands, pushedCommand{kind: kind, fields: fields})
}

type fakeTelemetryRepo struct {
	mu        sync.Mutex
	rows      []models.Telemetry
	appendErr error
	recentErr error
	lastLimit int
}

func (f *fakeTelemetryRepo) Append(ctx context.Context, t models.Telemetry) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return 0, f.appendErr
	}
	t.ID = int64(len(f.rows) + 1)
	f.rows = append(f.rows, t)
	return t.ID, nil
}

// Recent mimics ORDER BY ts DESC, id DESC.
func (f *fakeTelemetryRepo) Recent(ctx context.Context, limit int) ([]models.Telemetry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastLimit = limit
	if f.recentErr != nil {
		return nil, f.recentErr
	}
	out := make([]models.Telemetry, len(f.rows))
	copy(out, f.rows)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && newer(out[j], out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func newer(a, b models.Telemetry) bool {
	if a.TS != b.TS {
		return a.TS > b.TS
	}
	return a.ID > b.ID
}

// fakeACRepo serializes Update like the SQLite transaction does.
type fakeACRepo struct {
	mu        sync.Mutex
	row       models.ACSettings
	loadErr   error
	updateErr error
	writes    int
}

func (f *fakeACRepo) Load(ctx context.Context) (models.ACSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.row, f.loadErr
}

func (f *fakeACRepo) Update(ctx context.Context, fn func(*models.ACSettings) error) (models.ACSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return models.ACSettings{}, f.updateErr
	}
	cur := f.row
	if err := fn(&cur); err != nil {
		return models.ACSettings{}, err
	}
	cur.ID = 1
	f.row = cur
	f.writes++
	return cur, nil
}

type fakeActuatorRepo struct {
	mu        sync.Mutex
	row       models.ActuatorState
	loadErr   error
	updateErr error
	writes    int
}

func (f *fakeActuatorRepo) Load(ctx context.Context) (models.ActuatorState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.row, f.loadErr
}

func (f *fakeActuatorRepo) Update(ctx context.Context, fn func(*models.ActuatorState) error) (models.ActuatorState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return models.ActuatorState{}, f.updateErr
	}
	cur := f.row
	if err := fn(&cur); err != nil {
		return models.ActuatorState{}, err
	}
	cur.ID = 1
	f.row = cur
	f.writes++
	return cur, nil
}
