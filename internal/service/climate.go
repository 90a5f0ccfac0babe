package service

import (
	"context"
	"time"

	"home_climate/internal/mirror"
	"home_climate/internal/models"
	"home_climate/internal/repository"
)

type ClimateService struct {
	repo repository.ACSettingsRepo
	sink Mirror
	now  func() time.Time
}

func NewClimateService(repo repository.ACSettingsRepo, sink Mirror) *ClimateService {
	if sink == nil {
		sink = noopMirror{}
	}
	return &ClimateService{repo: repo, sink: sink, now: time.Now}
}

// ManualUpdate switches to manual control with the given power and target.
func (s *ClimateService) ManualUpdate(ctx context.Context, p ManualParams) (models.ACSettings, error) {
	st, err := s.repo.Update(ctx, func(cur *models.ACSettings) error {
		s.seed(cur)
		cur.Mode = models.ACModeManual
		cur.IsOn = p.IsOn
		cur.TargetTemp = p.TargetTemp
		return nil
	})
	if err != nil {
		return models.ACSettings{}, err
	}

	s.sink.PushCommand(mirror.CommandManualUpdate, map[string]any{
		"mode":        st.Mode,
		"is_on":       st.IsOn,
		"target_temp": st.TargetTemp,
	})
	return st, nil
}

// AutomationUpdate stores the automation flag and threshold. Enabling forces
// auto mode; disabling leaves the mode as it was.
func (s *ClimateService) AutomationUpdate(ctx context.Context, p AutomationParams) (models.ACSettings, error) {
	st, err := s.repo.Update(ctx, func(cur *models.ACSettings) error {
		s.seed(cur)
		cur.AutomationEnabled = p.Enabled
		cur.ThresholdTemp = p.ThresholdTemp
		if p.Enabled {
			cur.Mode = models.ACModeAuto
		}
		return nil
	})
	if err != nil {
		return models.ACSettings{}, err
	}

	s.sink.PushCommand(mirror.CommandAutomationUpdate, map[string]any{
		"automation_enabled": st.AutomationEnabled,
		"threshold_temp":     st.ThresholdTemp,
		"mode":               st.Mode,
	})
	return st, nil
}

func (s *ClimateService) GetSettings(ctx context.Context) (models.ACSettings, error) {
	st, err := s.repo.Load(ctx)
	if err != nil {
		return models.ACSettings{}, err
	}
	if st.ID == 0 {
		return models.DefaultACSettings(), nil
	}
	return st, nil
}

// seed fills a missing row with defaults and stamps the write time.
func (s *ClimateService) seed(cur *models.ACSettings) {
	if cur.ID == 0 {
		*cur = models.DefaultACSettings()
	}
	now := s.now().UTC()
	cur.LastUpdated = &now
}
