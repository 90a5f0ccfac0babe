package service

import (
	"context"
	"fmt"
	"time"

	"home_climate/internal/mirror"
	"home_climate/internal/models"
	"home_climate/internal/repository"
)

type ActuatorService struct {
	repo repository.ActuatorStateRepo
	sink Mirror
	now  func() time.Time
}

func NewActuatorService(repo repository.ActuatorStateRepo, sink Mirror) *ActuatorService {
	if sink == nil {
		sink = noopMirror{}
	}
	return &ActuatorService{repo: repo, sink: sink, now: time.Now}
}

func validateActuator(p ActuatorParams) error {
	switch p.ModeRequest {
	case models.ModeRequestAuto, models.ModeRequestManual, models.ModeRequestAI:
	default:
		return fmt.Errorf("%w: mode_request must be auto, manual or ai, got %q", ErrInvalidInput, p.ModeRequest)
	}
	if p.AC != 0 && p.AC != 1 {
		return fmt.Errorf("%w: ac must be 0 or 1, got %d", ErrInvalidInput, p.AC)
	}
	if p.Fan != 0 && p.Fan != 1 {
		return fmt.Errorf("%w: fan must be 0 or 1, got %d", ErrInvalidInput, p.Fan)
	}
	return nil
}

// UpdateState overwrites every actuator field. The AC settings mode is not
// consulted.
func (s *ActuatorService) UpdateState(ctx context.Context, p ActuatorParams) (models.ActuatorState, error) {
	if err := validateActuator(p); err != nil {
		return models.ActuatorState{}, err
	}
	source := p.Source
	if source == "" {
		source = models.DefaultActuatorSource
	}

	st, err := s.repo.Update(ctx, func(cur *models.ActuatorState) error {
		now := s.now().UTC()
		*cur = models.ActuatorState{
			ID:                   1,
			ModeRequest:          p.ModeRequest,
			AC:                   p.AC,
			Fan:                  p.Fan,
			TempThreshold:        p.TempThreshold,
			EndUserAIInstruction: p.EndUserAIInstruction,
			Source:               source,
			LastUpdated:          &now,
		}
		return nil
	})
	if err != nil {
		return models.ActuatorState{}, err
	}

	s.sink.PushCommand(mirror.CommandActuatorUpdate, map[string]any{
		"mode_request":            st.ModeRequest,
		"ac":                      st.AC,
		"fan":                     st.Fan,
		"temp_threshold":          st.TempThreshold,
		"end_user_ai_instruction": st.EndUserAIInstruction,
		"source":                  st.Source,
	})
	return st, nil
}

func (s *ActuatorService) GetState(ctx context.Context) (models.ActuatorState, error) {
	st, err := s.repo.Load(ctx)
	if err != nil {
		return models.ActuatorState{}, err
	}
	if st.ID == 0 {
		return models.DefaultActuatorState(), nil
	}
	return st, nil
}
