package service

import (
	"context"
	"math"
	"math/rand"
	"time"

	"home_climate/internal/logger"
)

// Generated readings.
const (
	SimDeviceID     = "ESP32_DEMO_001"
	SimUnit         = "C"
	SimInsideBaseC  = 24.0
	SimInsideSpanC  = 2.0 // ± around the base
	SimOutsideBaseC = 28.0
	SimOutsideSpanC = 3.0
)

// SimulatorService stands in for a real device by ingesting a random
// reading every tick.
type SimulatorService struct {
	telemetry Telemetry
	log       *logger.Logger
	rnd       *rand.Rand
	now       func() time.Time
}

func NewSimulatorService(telemetry Telemetry, log *logger.Logger) *SimulatorService {
	return &SimulatorService{
		telemetry: telemetry,
		log:       logger.OrNop(log),
		rnd:       rand.New(rand.NewSource(time.Now().UnixNano())),
		now:       time.Now,
	}
}

// Run ticks at the given interval until ctx is canceled. Ingest failures are
// logged and the loop keeps going.
func (s *SimulatorService) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.step(ctx)
		}
	}
}

func (s *SimulatorService) step(ctx context.Context) {
	r := s.reading()
	id, err := s.telemetry.Ingest(ctx, r)
	if err != nil {
		if ctx.Err() == nil {
			s.log.Warnw("simulator_ingest_failed", "err", err)
		}
		return
	}
	s.log.Debugw("simulator_reading", "id", id, "inside", r.TempInside, "outside", r.TempOutside)
}

func (s *SimulatorService) reading() Reading {
	return Reading{
		DeviceID:    SimDeviceID,
		Unit:        SimUnit,
		TS:          s.now().Unix(),
		TempInside:  s.jitter(SimInsideBaseC, SimInsideSpanC),
		TempOutside: s.jitter(SimOutsideBaseC, SimOutsideSpanC),
	}
}

// jitter returns base ± span rounded to one decimal.
func (s *SimulatorService) jitter(base, span float64) float64 {
	v := base + (s.rnd.Float64()*2-1)*span
	return math.Round(v*10) / 10
}
