package mirror

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisSink keeps the latest reading under <prefix>:sensor_data and a bounded
// newest-first list of commands under <prefix>:actuator_cmds.
type RedisSink struct {
	rdb     *redis.Client
	prefix  string
	maxCmds int64
}

var _ Sink = (*RedisSink)(nil)

const defaultMaxCmds = 100

func NewRedisSink(rdb *redis.Client, prefix string, maxCmds int64) *RedisSink {
	if maxCmds < 1 {
		maxCmds = defaultMaxCmds
	}
	return &RedisSink{rdb: rdb, prefix: prefix, maxCmds: maxCmds}
}

func (s *RedisSink) Name() string { return "redis" }

func (s *RedisSink) sensorKey() string { return s.prefix + ":sensor_data" }
func (s *RedisSink) cmdsKey() string   { return s.prefix + ":actuator_cmds" }

func (s *RedisSink) PutReading(ctx context.Context, payload Fields) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal reading: %w", err)
	}
	if err := s.rdb.Set(ctx, s.sensorKey(), b, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.sensorKey(), err)
	}
	return nil
}

func (s *RedisSink) PostCommand(ctx context.Context, payload Fields) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal command: %w", err)
	}
	pipe := s.rdb.TxPipeline()
	pipe.LPush(ctx, s.cmdsKey(), b)
	pipe.LTrim(ctx, s.cmdsKey(), 0, s.maxCmds-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis push %s: %w", s.cmdsKey(), err)
	}
	return nil
}
