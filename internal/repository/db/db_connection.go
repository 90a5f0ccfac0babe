package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// InitDB opens/creates a SQLite DB file and ensures tables exist.
func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// One connection: singleton read-modify-write transactions serialize on it.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

const sqliteDriverName = "sqlite"

const schemaTelemetry = `
CREATE TABLE IF NOT EXISTS telemetry (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    device_id TEXT NOT NULL,
    unit TEXT NOT NULL,
    ts INTEGER NOT NULL,
    temp_inside REAL NOT NULL,
    temp_outside REAL NOT NULL,
    created_at TIMESTAMP NOT NULL
);
`

const indexTelemetryTS = `
CREATE INDEX IF NOT EXISTS idx_telemetry_ts ON telemetry (ts);
`

const schemaACSettings = `
CREATE TABLE IF NOT EXISTS ac_settings (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    mode TEXT NOT NULL,
    is_on BOOLEAN NOT NULL,
    target_temp REAL NOT NULL,
    threshold_temp REAL NOT NULL,
    automation_enabled BOOLEAN NOT NULL,
    last_updated TIMESTAMP NOT NULL
);
`

const schemaActuatorState = `
CREATE TABLE IF NOT EXISTS actuator_state (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    mode_request TEXT NOT NULL,
    ac INTEGER NOT NULL CHECK (ac IN (0, 1)),
    fan INTEGER NOT NULL CHECK (fan IN (0, 1)),
    temp_threshold REAL NOT NULL,
    end_user_ai_instruction TEXT NOT NULL DEFAULT '',
    source TEXT NOT NULL,
    last_updated TIMESTAMP NOT NULL
);
`

const schemaControlCommands = `
CREATE TABLE IF NOT EXISTS control_commands (
    id TEXT PRIMARY KEY,
    sent_at TIMESTAMP NOT NULL,
    type TEXT NOT NULL,
    payload TEXT
);
`

const indexControlCommandsSentAt = `
CREATE INDEX IF NOT EXISTS idx_control_commands_sent_at ON control_commands (sent_at);
`

func ensureSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for i, stmt := range []string{
		schemaTelemetry,
		indexTelemetryTS,
		schemaACSettings,
		schemaActuatorState,
		schemaControlCommands,
		indexControlCommandsSentAt,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}
