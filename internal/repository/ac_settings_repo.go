package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"home_climate/internal/models"
)

type ACSettingsSQLite struct {
	db *sql.DB
}

func NewACSettingsSQLite(db *sql.DB) *ACSettingsSQLite {
	return &ACSettingsSQLite{db: db}
}

var _ ACSettingsRepo = (*ACSettingsSQLite)(nil)

const (
	acSettingsRowID = 1

	upsertACSettingsSQL = `
		INSERT INTO ac_settings (id, mode, is_on, target_temp, threshold_temp, automation_enabled, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			mode=excluded.mode,
			is_on=excluded.is_on,
			target_temp=excluded.target_temp,
			threshold_temp=excluded.threshold_temp,
			automation_enabled=excluded.automation_enabled,
			last_updated=excluded.last_updated
	`

	selectACSettingsSQL = `
		SELECT id, mode, is_on, target_temp, threshold_temp, automation_enabled, last_updated
		FROM ac_settings WHERE id=?
	`
)

// rowScanner is satisfied by *sql.Row so reads work inside and outside a tx.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanACSettings reads one row; sql.ErrNoRows yields the zero value.
func scanACSettings(row rowScanner) (models.ACSettings, error) {
	var (
		s           models.ACSettings
		lastUpdated time.Time
	)
	if err := row.Scan(
		&s.ID,
		&s.Mode,
		&s.IsOn,
		&s.TargetTemp,
		&s.ThresholdTemp,
		&s.AutomationEnabled,
		&lastUpdated,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ACSettings{}, nil
		}
		return models.ACSettings{}, fmt.Errorf("select ac_settings: %w", err)
	}
	lastUpdated = lastUpdated.UTC()
	s.LastUpdated = &lastUpdated
	return s, nil
}

// Load fetches the single ac_settings row (id=1).
func (r *ACSettingsSQLite) Load(ctx context.Context) (models.ACSettings, error) {
	return scanACSettings(r.db.QueryRowContext(ctx, selectACSettingsSQL, acSettingsRowID))
}

// Update runs fn against the current row (zero value if none) and upserts the
// result, all inside one transaction. An error from fn aborts without writing.
func (r *ACSettingsSQLite) Update(ctx context.Context, fn func(*models.ACSettings) error) (models.ACSettings, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.ACSettings{}, fmt.Errorf("begin ac_settings transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	s, err := scanACSettings(tx.QueryRowContext(ctx, selectACSettingsSQL, acSettingsRowID))
	if err != nil {
		return models.ACSettings{}, err
	}
	if err := fn(&s); err != nil {
		return models.ACSettings{}, err
	}

	s.ID = acSettingsRowID
	s.LastUpdated = utcStamp(s.LastUpdated)

	if _, err := tx.ExecContext(ctx, upsertACSettingsSQL,
		s.ID,
		s.Mode,
		s.IsOn,
		s.TargetTemp,
		s.ThresholdTemp,
		s.AutomationEnabled,
		*s.LastUpdated,
	); err != nil {
		return models.ACSettings{}, fmt.Errorf("upsert ac_settings: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.ACSettings{}, fmt.Errorf("commit ac_settings transaction: %w", err)
	}
	return s, nil
}

// utcStamp returns t in UTC, or now when t is unset.
func utcStamp(t *time.Time) *time.Time {
	var ts time.Time
	if t == nil || t.IsZero() {
		ts = time.Now().UTC()
	} else {
		ts = t.UTC()
	}
	return &ts
}
