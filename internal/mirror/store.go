package mirror

import (
	"context"
	"fmt"
	"time"

	"home_climate/internal/models"
)

// CommandStore is the local command log (repository.CommandRepo).
type CommandStore interface {
	Append(ctx context.Context, c models.ControlCommand) error
}

// StoreSink keeps a local copy of every mirrored command so the history can
// be queried without the remote store. Readings are ignored; telemetry is
// already persisted.
type StoreSink struct {
	store CommandStore
}

var _ Sink = (*StoreSink)(nil)

func NewStoreSink(store CommandStore) *StoreSink {
	return &StoreSink{store: store}
}

func (s *StoreSink) Name() string { return "sqlite" }

func (s *StoreSink) PutReading(context.Context, Fields) error { return nil }

// PostCommand stores payload with id/type/ts lifted into columns.
func (s *StoreSink) PostCommand(ctx context.Context, payload Fields) error {
	cmd := models.ControlCommand{Payload: make(map[string]any, len(payload))}
	for k, v := range payload {
		switch k {
		case "id":
			cmd.ID = fmt.Sprint(v)
		case "type":
			cmd.Type = fmt.Sprint(v)
		case "ts":
			if ts, ok := v.(int64); ok {
				cmd.SentAt = time.Unix(ts, 0).UTC()
			}
		default:
			cmd.Payload[k] = v
		}
	}
	return s.store.Append(ctx, cmd)
}
