package mirror

import (
	"context"
	"encoding/json"
	"fmt"
)

// Publisher is the subset of broker.Client used by MQTTSink.
type Publisher interface {
	Publish(ctx context.Context, topic string, qos byte, retained bool, payload []byte) error
}

// MQTTSink publishes the latest reading retained on <prefix>/sensor_data so
// late subscribers get it immediately, and commands on <prefix>/actuator_cmds.
type MQTTSink struct {
	pub    Publisher
	prefix string
	qos    byte
}

var _ Sink = (*MQTTSink)(nil)

func NewMQTTSink(pub Publisher, prefix string, qos byte) *MQTTSink {
	return &MQTTSink{pub: pub, prefix: prefix, qos: qos}
}

func (s *MQTTSink) Name() string { return "mqtt" }

func (s *MQTTSink) PutReading(ctx context.Context, payload Fields) error {
	return s.publish(ctx, s.prefix+"/sensor_data", true, payload)
}

func (s *MQTTSink) PostCommand(ctx context.Context, payload Fields) error {
	return s.publish(ctx, s.prefix+"/actuator_cmds", false, payload)
}

func (s *MQTTSink) publish(ctx context.Context, topic string, retained bool, payload Fields) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal mqtt payload: %w", err)
	}
	return s.pub.Publish(ctx, topic, s.qos, retained, b)
}
