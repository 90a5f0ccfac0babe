package service

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"home_climate/internal/mirror"
	"home_climate/internal/models"
	"home_climate/internal/repository"
	"home_climate/internal/repository/db"
)

func newClimate(repo *fakeACRepo, mir *fakeMirror, now time.Time) *ClimateService {
	svc := NewClimateService(repo, mir)
	svc.now = func() time.Time { return now }
	return svc
}

func TestClimateService_GetSettings_DefaultsBeforeFirstWrite(t *testing.T) {
	svc := NewClimateService(&fakeACRepo{}, nil)

	got, err := svc.GetSettings(context.Background())
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}
	want := models.ACSettings{ID: 1, Mode: "manual", TargetTemp: 22.0, ThresholdTemp: 25.0}
	if got != want {
		t.Fatalf("defaults: got %+v, want %+v", got, want)
	}
}

func TestClimateService_ManualUpdate(t *testing.T) {
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		existing models.ACSettings
		params   ManualParams
		want     models.ACSettings
	}{
		{
			name:   "creates row from defaults",
			params: ManualParams{IsOn: true, TargetTemp: 24},
			want: models.ACSettings{
				ID: 1, Mode: "manual", IsOn: true, TargetTemp: 24, ThresholdTemp: 25,
			},
		},
		{
			name: "leaves auto mode and keeps automation fields",
			existing: models.ACSettings{
				ID: 1, Mode: "auto", IsOn: false, TargetTemp: 22, ThresholdTemp: 27, AutomationEnabled: true,
			},
			params: ManualParams{IsOn: false, TargetTemp: 21.5},
			want: models.ACSettings{
				ID: 1, Mode: "manual", IsOn: false, TargetTemp: 21.5, ThresholdTemp: 27, AutomationEnabled: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeACRepo{row: tt.existing}
			mir := &fakeMirror{}
			svc := newClimate(repo, mir, now)

			got, err := svc.ManualUpdate(context.Background(), tt.params)
			if err != nil {
				t.Fatalf("ManualUpdate: %v", err)
			}
			if got.LastUpdated == nil || !got.LastUpdated.Equal(now) {
				t.Fatalf("last_updated: got %v, want %v", got.LastUpdated, now)
			}
			got.LastUpdated = nil
			if got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}

			if len(mir.commands) != 1 || mir.commands[0].kind != mirror.CommandManualUpdate {
				t.Fatalf("expected one manual_update command, got %+v", mir.commands)
			}
			f := mir.commands[0].fields
			if f["mode"] != "manual" || f["is_on"] != tt.params.IsOn || f["target_temp"] != tt.params.TargetTemp {
				t.Fatalf("unexpected command fields: %v", f)
			}
		})
	}
}

func TestClimateService_AutomationUpdate(t *testing.T) {
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		existing models.ACSettings
		params   AutomationParams
		wantMode string
	}{
		{"enable forces auto", models.ACSettings{ID: 1, Mode: "manual"}, AutomationParams{Enabled: true, ThresholdTemp: 26}, "auto"},
		{"disable keeps auto", models.ACSettings{ID: 1, Mode: "auto", AutomationEnabled: true}, AutomationParams{Enabled: false, ThresholdTemp: 26}, "auto"},
		{"disable keeps manual", models.ACSettings{ID: 1, Mode: "manual"}, AutomationParams{Enabled: false, ThresholdTemp: 24}, "manual"},
		{"disable on empty store keeps default manual", models.ACSettings{}, AutomationParams{Enabled: false, ThresholdTemp: 24}, "manual"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mir := &fakeMirror{}
			svc := newClimate(&fakeACRepo{row: tt.existing}, mir, now)

			got, err := svc.AutomationUpdate(context.Background(), tt.params)
			if err != nil {
				t.Fatalf("AutomationUpdate: %v", err)
			}
			if got.Mode != tt.wantMode {
				t.Fatalf("mode: got %q, want %q", got.Mode, tt.wantMode)
			}
			if got.AutomationEnabled != tt.params.Enabled || got.ThresholdTemp != tt.params.ThresholdTemp {
				t.Fatalf("automation fields not applied: %+v", got)
			}
			if got.LastUpdated == nil {
				t.Fatalf("last_updated must be set")
			}

			if len(mir.commands) != 1 || mir.commands[0].kind != mirror.CommandAutomationUpdate {
				t.Fatalf("expected one automation_update command, got %+v", mir.commands)
			}
			if mir.commands[0].fields["mode"] != tt.wantMode {
				t.Fatalf("mirrored mode: %v", mir.commands[0].fields["mode"])
			}
		})
	}
}

func TestClimateService_ExampleSequence(t *testing.T) {
	repo := &fakeACRepo{}
	svc := NewClimateService(repo, nil)
	ctx := context.Background()

	if _, err := svc.ManualUpdate(ctx, ManualParams{IsOn: true, TargetTemp: 24}); err != nil {
		t.Fatalf("ManualUpdate: %v", err)
	}
	st, _ := svc.GetSettings(ctx)
	if st.Mode != "manual" || !st.IsOn || st.TargetTemp != 24 || st.LastUpdated == nil {
		t.Fatalf("after manual: %+v", st)
	}

	if _, err := svc.AutomationUpdate(ctx, AutomationParams{Enabled: true, ThresholdTemp: 26}); err != nil {
		t.Fatalf("AutomationUpdate: %v", err)
	}
	st, _ = svc.GetSettings(ctx)
	if st.Mode != "auto" || !st.AutomationEnabled || st.ThresholdTemp != 26 || st.TargetTemp != 24 {
		t.Fatalf("after enable: %+v", st)
	}

	if _, err := svc.ManualUpdate(ctx, ManualParams{IsOn: false, TargetTemp: 22}); err != nil {
		t.Fatalf("ManualUpdate: %v", err)
	}
	st, _ = svc.GetSettings(ctx)
	if st.Mode != "manual" || !st.AutomationEnabled {
		t.Fatalf("manual must not clear automation flag: %+v", st)
	}
	if repo.row.ID != 1 {
		t.Fatalf("singleton id: %d", repo.row.ID)
	}
}

func TestClimateService_Errors(t *testing.T) {
	ctx := context.Background()
	mir := &fakeMirror{}

	svc := NewClimateService(&fakeACRepo{updateErr: errors.New("locked")}, mir)
	if _, err := svc.ManualUpdate(ctx, ManualParams{}); err == nil {
		t.Fatalf("expected error from ManualUpdate")
	}
	if _, err := svc.AutomationUpdate(ctx, AutomationParams{}); err == nil {
		t.Fatalf("expected error from AutomationUpdate")
	}
	if len(mir.commands) != 0 {
		t.Fatalf("failed writes must not be mirrored")
	}

	svc = NewClimateService(&fakeACRepo{loadErr: errors.New("gone")}, nil)
	if _, err := svc.GetSettings(ctx); err == nil {
		t.Fatalf("expected error from GetSettings")
	}
}

func TestClimateService_ConcurrentWritesDoNotLoseFields(t *testing.T) {
	sqlDB, err := db.InitDB(filepath.Join(t.TempDir(), "iot.db"))
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	defer sqlDB.Close()

	svc := NewClimateService(repository.NewACSettingsSQLite(sqlDB), nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, err := svc.ManualUpdate(ctx, ManualParams{IsOn: true, TargetTemp: 23}); err != nil {
				t.Errorf("ManualUpdate: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := svc.AutomationUpdate(ctx, AutomationParams{Enabled: false, ThresholdTemp: 29}); err != nil {
				t.Errorf("AutomationUpdate: %v", err)
			}
		}()
	}
	wg.Wait()

	st, err := svc.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}
	if !st.IsOn || st.TargetTemp != 23 || st.ThresholdTemp != 29 || st.Mode != models.ACModeManual {
		t.Fatalf("a concurrent write clobbered another: %+v", st)
	}
	if st.LastUpdated == nil {
		t.Fatalf("last_updated not stored")
	}

	var rows int
	if err := sqlDB.QueryRow("SELECT COUNT(*) FROM ac_settings").Scan(&rows); err != nil {
		t.Fatalf("count: %v", err)
	}
	if rows != 1 {
		t.Fatalf("ac_settings rows = %d, want 1", rows)
	}
}
