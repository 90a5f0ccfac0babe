package service

import (
	"context"
	"time"

	"home_climate/internal/logger"
	"home_climate/internal/models"
	"home_climate/internal/repository"
)

// HistoryLimit is the fixed page size of History.
const HistoryLimit = 50

type TelemetryService struct {
	repo repository.TelemetryRepo
	sink Mirror
	log  *logger.Logger
	now  func() time.Time
}

func NewTelemetryService(repo repository.TelemetryRepo, sink Mirror, log *logger.Logger) *TelemetryService {
	if sink == nil {
		sink = noopMirror{}
	}
	return &TelemetryService{repo: repo, sink: sink, log: logger.OrNop(log), now: time.Now}
}

// Ingest stores r and then mirrors it. Only the store error is returned.
func (s *TelemetryService) Ingest(ctx context.Context, r Reading) (int64, error) {
	id, err := s.repo.Append(ctx, models.Telemetry{
		DeviceID:    r.DeviceID,
		Unit:        r.Unit,
		TS:          r.TS,
		TempInside:  r.TempInside,
		TempOutside: r.TempOutside,
		CreatedAt:   s.now().UTC(),
	})
	if err != nil {
		return 0, err
	}

	s.sink.PushReading(map[string]any{
		"device_id":    r.DeviceID,
		"unit":         r.Unit,
		"ts":           r.TS,
		"temp_inside":  r.TempInside,
		"temp_outside": r.TempOutside,
	})
	s.log.Debugw("telemetry_ingested", "id", id, "device_id", r.DeviceID)
	return id, nil
}

// History returns up to HistoryLimit readings, newest ts first.
func (s *TelemetryService) History(ctx context.Context) ([]models.Telemetry, error) {
	rows, err := s.repo.Recent(ctx, HistoryLimit)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []models.Telemetry{}
	}
	return rows, nil
}

func (s *TelemetryService) Latest(ctx context.Context) (*models.Telemetry, error) {
	rows, err := s.repo.Recent(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}
