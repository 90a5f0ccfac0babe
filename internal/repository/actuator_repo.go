package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"home_climate/internal/models"
)

type ActuatorStateSQLite struct {
	db *sql.DB
}

func NewActuatorStateSQLite(db *sql.DB) *ActuatorStateSQLite {
	return &ActuatorStateSQLite{db: db}
}

var _ ActuatorStateRepo = (*ActuatorStateSQLite)(nil)

const (
	actuatorStateRowID = 1

	upsertActuatorStateSQL = `
		INSERT INTO actuator_state (id, mode_request, ac, fan, temp_threshold, end_user_ai_instruction, source, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			mode_request=excluded.mode_request,
			ac=excluded.ac,
			fan=excluded.fan,
			temp_threshold=excluded.temp_threshold,
			end_user_ai_instruction=excluded.end_user_ai_instruction,
			source=excluded.source,
			last_updated=excluded.last_updated
	`

	selectActuatorStateSQL = `
		SELECT id, mode_request, ac, fan, temp_threshold, end_user_ai_instruction, source, last_updated
		FROM actuator_state WHERE id=?
	`
)

func scanActuatorState(row rowScanner) (models.ActuatorState, error) {
	var (
		s           models.ActuatorState
		lastUpdated time.Time
	)
	if err := row.Scan(
		&s.ID,
		&s.ModeRequest,
		&s.AC,
		&s.Fan,
		&s.TempThreshold,
		&s.EndUserAIInstruction,
		&s.Source,
		&lastUpdated,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ActuatorState{}, nil
		}
		return models.ActuatorState{}, fmt.Errorf("select actuator_state: %w", err)
	}
	lastUpdated = lastUpdated.UTC()
	s.LastUpdated = &lastUpdated
	return s, nil
}

// Load fetches the single actuator_state row (id=1).
func (r *ActuatorStateSQLite) Load(ctx context.Context) (models.ActuatorState, error) {
	return scanActuatorState(r.db.QueryRowContext(ctx, selectActuatorStateSQL, actuatorStateRowID))
}

// Update is the actuator_state counterpart of ACSettingsSQLite.Update.
func (r *ActuatorStateSQLite) Update(ctx context.Context, fn func(*models.ActuatorState) error) (models.ActuatorState, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.ActuatorState{}, fmt.Errorf("begin actuator_state transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	s, err := scanActuatorState(tx.QueryRowContext(ctx, selectActuatorStateSQL, actuatorStateRowID))
	if err != nil {
		return models.ActuatorState{}, err
	}
	if err := fn(&s); err != nil {
		return models.ActuatorState{}, err
	}

	s.ID = actuatorStateRowID
	s.LastUpdated = utcStamp(s.LastUpdated)

	if _, err := tx.ExecContext(ctx, upsertActuatorStateSQL,
		s.ID,
		s.ModeRequest,
		s.AC,
		s.Fan,
		s.TempThreshold,
		s.EndUserAIInstruction,
		s.Source,
		*s.LastUpdated,
	); err != nil {
		return models.ActuatorState{}, fmt.Errorf("upsert actuator_state: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.ActuatorState{}, fmt.Errorf("commit actuator_state transaction: %w", err)
	}
	return s, nil
}
