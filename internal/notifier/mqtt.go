package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/julianstephens/waktu/internal/logger"
)

const mqttTimeout = 10 * time.Second

// publisher is the subset of mqtt.Client the notifier uses.
type publisher interface {
	IsConnectionOpen() bool
	Connect() mqtt.Token
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Disconnect(quiesce uint)
}

// MQTTConfig selects the broker and topic root.
type MQTTConfig struct {
	Broker   string
	ClientID string
	Topic    string
	Username string
	Password string
}

// MQTTNotifier publishes each notification as JSON to <topic>/<tag>. Messages
// are retained, so a subscriber sees only the latest one per tag.
type MQTTNotifier struct {
	mu     sync.Mutex
	client publisher
	topic  string
}

// NewMQTT builds a notifier for cfg. The connection is opened lazily.
func NewMQTT(cfg MQTTConfig) *MQTTNotifier {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	opts.SetUsername(cfg.Username)
	opts.SetPassword(cfg.Password)
	opts.SetAutoReconnect(true)
	opts.SetConnectTimeout(mqttTimeout)
	opts.OnConnect = func(mqtt.Client) {
		logger.Info("connected to MQTT broker", "broker", cfg.Broker)
	}
	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		logger.Warn("MQTT connection lost", "error", err)
	}
	return newMQTT(mqtt.NewClient(opts), cfg.Topic)
}

func newMQTT(client publisher, topic string) *MQTTNotifier {
	return &MQTTNotifier{client: client, topic: strings.TrimRight(topic, "/")}
}

func (m *MQTTNotifier) connect() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.client.IsConnectionOpen() {
		return nil
	}
	token := m.client.Connect()
	if !token.WaitTimeout(mqttTimeout) {
		return fmt.Errorf("timed out connecting to MQTT broker")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to connect to MQTT broker: %w", err)
	}
	return nil
}

func (m *MQTTNotifier) Available(context.Context) error {
	if err := m.connect(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	return nil
}

// Topic returns the topic a notification with tag is published to.
func (m *MQTTNotifier) Topic(tag string) string {
	return m.topic + "/" + tag
}

func (m *MQTTNotifier) Notify(ctx context.Context, n Notification) error {
	if err := m.connect(); err != nil {
		return err
	}
	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}

	token := m.client.Publish(m.Topic(n.Tag), 1, true, payload)
	select {
	case <-token.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to publish %s: %w", n.Tag, err)
	}
	return nil
}

// Close disconnects from the broker.
func (m *MQTTNotifier) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.client.IsConnectionOpen() {
		m.client.Disconnect(250)
	}
}
