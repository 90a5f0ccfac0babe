package broker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"home_climate/internal/config"
	"home_climate/internal/logger"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

const (
	connectTimeout    = 10 * time.Second
	disconnectQuiesce = 250 // ms
)

// MessageHandler handles one inbound message. Errors are logged and the
// subscription keeps running.
type MessageHandler func(topic string, payload []byte) error

type subscription struct {
	qos     byte
	handler MessageHandler
}

// Client is a thin wrapper over a paho client shared by the telemetry
// subscriber and the MQTT mirror sink. Subscriptions are remembered and
// re-issued after every reconnect, since a clean session drops them.
type Client struct {
	client mqtt.Client
	log    *logger.Logger

	mu   sync.Mutex
	subs map[string]subscription
}

// Connect dials the broker and blocks until connected or connectTimeout.
func Connect(cfg config.MQTTConfig, log *logger.Logger) (*Client, error) {
	log = logger.OrNop(log)

	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}
	opts.SetAutoReconnect(true)
	opts.SetCleanSession(true)
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		log.Warnw("mqtt_connection_lost", "broker", cfg.Broker, "err", err)
	})

	c := &Client{log: log, subs: make(map[string]subscription)}
	opts.SetOnConnectHandler(c.onConnect)

	c.client = mqtt.NewClient(opts)
	token := c.client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("connect to mqtt broker %s: timed out after %s", cfg.Broker, connectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to mqtt broker %s: %w", cfg.Broker, err)
	}
	log.Infow("mqtt_connected", "broker", cfg.Broker, "client_id", cfg.ClientID)
	return c, nil
}

// Publish sends payload and waits for the broker ack or ctx cancellation.
func (c *Client) Publish(ctx context.Context, topic string, qos byte, retained bool, payload []byte) error {
	token := c.client.Publish(topic, qos, retained, payload)
	select {
	case <-ctx.Done():
		return fmt.Errorf("publish to %s: %w", topic, ctx.Err())
	case <-token.Done():
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	return nil
}

// Subscribe registers handler for topic and keeps it across reconnects.
func (c *Client) Subscribe(topic string, qos byte, handler MessageHandler) error {
	sub := subscription{qos: qos, handler: handler}
	if err := c.subscribe(c.client, topic, sub); err != nil {
		return err
	}
	c.mu.Lock()
	c.subs[topic] = sub
	c.mu.Unlock()
	return nil
}

// onConnect restores remembered subscriptions. On the first connect there
// are none yet.
func (c *Client) onConnect(mc mqtt.Client) {
	c.mu.Lock()
	subs := make(map[string]subscription, len(c.subs))
	for topic, sub := range c.subs {
		subs[topic] = sub
	}
	c.mu.Unlock()

	for topic, sub := range subs {
		if err := c.subscribe(mc, topic, sub); err != nil {
			c.log.Errorw("mqtt_resubscribe_failed", "topic", topic, "err", err)
			continue
		}
		c.log.Infow("mqtt_resubscribed", "topic", topic, "qos", sub.qos)
	}
}

func (c *Client) subscribe(mc mqtt.Client, topic string, sub subscription) error {
	token := mc.Subscribe(topic, sub.qos, func(_ mqtt.Client, msg mqtt.Message) {
		if err := sub.handler(msg.Topic(), msg.Payload()); err != nil {
			c.log.Warnw("mqtt_message_rejected", "topic", msg.Topic(), "err", err)
		}
	})
	if !token.WaitTimeout(connectTimeout) {
		return fmt.Errorf("subscribe to %s: timed out", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("subscribe to %s: %w", topic, err)
	}
	return nil
}

func (c *Client) Disconnect() {
	c.client.Disconnect(disconnectQuiesce)
}
