package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"home_climate/internal/models"
)

type TelemetrySQLite struct {
	db *sql.DB
}

func NewTelemetrySQLite(db *sql.DB) *TelemetrySQLite { return &TelemetrySQLite{db: db} }

var _ TelemetryRepo = (*TelemetrySQLite)(nil)

const (
	insertTelemetrySQL = `
		INSERT INTO telemetry (device_id, unit, ts, temp_inside, temp_outside, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	selectRecentTelemetrySQL = `
		SELECT id, device_id, unit, ts, temp_inside, temp_outside, created_at
		FROM telemetry
		ORDER BY ts DESC, id DESC
		LIMIT ?
	`
)

// Append inserts a reading and returns its id. A zero CreatedAt is set to now.
func (r *TelemetrySQLite) Append(ctx context.Context, t models.Telemetry) (int64, error) {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	} else {
		t.CreatedAt = t.CreatedAt.UTC()
	}

	res, err := r.db.ExecContext(ctx, insertTelemetrySQL,
		t.DeviceID,
		t.Unit,
		t.TS,
		t.TempInside,
		t.TempOutside,
		t.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert telemetry for device %q: %w", t.DeviceID, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for telemetry: %w", err)
	}
	return id, nil
}

// Recent returns up to limit readings, newest sample first.
func (r *TelemetrySQLite) Recent(ctx context.Context, limit int) ([]models.Telemetry, error) {
	rows, err := r.db.QueryContext(ctx, selectRecentTelemetrySQL, limit)
	if err != nil {
		return nil, fmt.Errorf("select recent telemetry: %w", err)
	}
	defer rows.Close()

	out := make([]models.Telemetry, 0, limit)
	for rows.Next() {
		var t models.Telemetry
		if err := rows.Scan(
			&t.ID,
			&t.DeviceID,
			&t.Unit,
			&t.TS,
			&t.TempInside,
			&t.TempOutside,
			&t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan telemetry row: %w", err)
		}
		t.CreatedAt = t.CreatedAt.UTC()
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate telemetry rows: %w", err)
	}
	return out, nil
}
