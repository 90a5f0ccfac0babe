package ingest

import (
	"context"
	"encoding/json"
	"fmt"

	"home_climate/internal/broker"
	"home_climate/internal/logger"
	"home_climate/internal/models"
	"home_climate/internal/service"

	"github.com/go-playground/validator/v10"
)

// Broker is the subset of broker.Client the subscriber needs.
type Broker interface {
	Subscribe(topic string, qos byte, handler broker.MessageHandler) error
}

// Subscriber feeds MQTT telemetry payloads into the telemetry service. It
// validates with the same `binding` tags gin uses for the HTTP endpoint.
type Subscriber struct {
	broker    Broker
	telemetry service.Telemetry
	validate  *validator.Validate
	log       *logger.Logger
}

func NewSubscriber(b Broker, telemetry service.Telemetry, log *logger.Logger) *Subscriber {
	v := validator.New()
	v.SetTagName("binding")
	return &Subscriber{
		broker:    b,
		telemetry: telemetry,
		validate:  v,
		log:       logger.OrNop(log),
	}
}

// Start subscribes to topic. Messages are ingested under ctx, so canceling it
// makes later deliveries fail fast.
func (s *Subscriber) Start(ctx context.Context, topic string, qos byte) error {
	if err := s.broker.Subscribe(topic, qos, func(t string, payload []byte) error {
		return s.Handle(ctx, t, payload)
	}); err != nil {
		return err
	}
	s.log.Infow("mqtt_ingest_subscribed", "topic", topic, "qos", qos)
	return nil
}

// Handle decodes, validates and ingests one payload.
func (s *Subscriber) Handle(ctx context.Context, topic string, payload []byte) error {
	var in models.TelemetryInput
	if err := json.Unmarshal(payload, &in); err != nil {
		return fmt.Errorf("decode telemetry from %s: %w", topic, err)
	}
	if err := s.validate.Struct(in); err != nil {
		return fmt.Errorf("validate telemetry from %s: %w", topic, err)
	}

	id, err := s.telemetry.Ingest(ctx, service.ReadingFromInput(in))
	if err != nil {
		return fmt.Errorf("ingest telemetry from %s: %w", topic, err)
	}
	s.log.Debugw("mqtt_telemetry_ingested", "topic", topic, "id", id, "device_id", in.DeviceID)
	return nil
}
