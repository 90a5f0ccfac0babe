package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"home_climate/internal/models"

	"github.com/google/uuid"
)

type CommandSQLite struct {
	db *sql.DB
}

func NewCommandSQLite(db *sql.DB) *CommandSQLite { return &CommandSQLite{db: db} }

var _ CommandRepo = (*CommandSQLite)(nil)

const insertCommandSQL = `
		INSERT INTO control_commands (id, sent_at, type, payload)
		VALUES (?, ?, ?, ?)
	`

// Append inserts a command. Missing ID or SentAt are filled in.
func (r *CommandSQLite) Append(ctx context.Context, c models.ControlCommand) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.SentAt.IsZero() {
		c.SentAt = time.Now().UTC()
	}

	var payload *string
	if c.Payload != nil {
		b, err := json.Marshal(c.Payload)
		if err != nil {
			return fmt.Errorf("encode payload of command %s: %w", c.ID, err)
		}
		s := string(b)
		payload = &s
	}

	if _, err := r.db.ExecContext(ctx, insertCommandSQL,
		c.ID,
		c.SentAt.UTC(),
		strings.ToLower(strings.TrimSpace(c.Type)),
		payload,
	); err != nil {
		return fmt.Errorf("insert command %s: %w", c.ID, err)
	}
	return nil
}

// List returns commands within [from, to] (zero bounds are open) and of typ
// when non-empty, oldest first.
func (r *CommandSQLite) List(ctx context.Context, from, to time.Time, typ string) ([]models.ControlCommand, error) {
	var (
		conds []string
		args  []any
	)
	if !from.IsZero() {
		conds = append(conds, "sent_at >= ?")
		args = append(args, from.UTC())
	}
	if !to.IsZero() {
		conds = append(conds, "sent_at <= ?")
		args = append(args, to.UTC())
	}
	if typ = strings.ToLower(strings.TrimSpace(typ)); typ != "" {
		conds = append(conds, "type = ?")
		args = append(args, typ)
	}

	q := `SELECT id, sent_at, type, payload FROM control_commands`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY sent_at ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("select commands: %w", err)
	}
	defer rows.Close()

	out := make([]models.ControlCommand, 0, 32)
	for rows.Next() {
		var (
			c       models.ControlCommand
			payload sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.SentAt, &c.Type, &payload); err != nil {
			return nil, fmt.Errorf("scan command row: %w", err)
		}
		c.SentAt = c.SentAt.UTC()
		if payload.Valid && payload.String != "" {
			// a malformed payload is dropped rather than failing the listing
			_ = json.Unmarshal([]byte(payload.String), &c.Payload)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate commands: %w", err)
	}
	return out, nil
}
