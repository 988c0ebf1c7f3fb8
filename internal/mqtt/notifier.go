package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"facilops-data/internal/config"
	"facilops-data/internal/domain"
)

// StatusNotifier publishes device status transitions for monitor walls.
// Fire-and-forget: a publish failure is logged, never propagated into the
// import or toggle that caused it.
type StatusNotifier struct {
	client      paho.Client
	topicPrefix string
	logger      *zap.Logger
}

type statusEvent struct {
	Device    string `json:"device"`
	Warehouse string `json:"warehouse"`
	Status    string `json:"status"`
	At        string `json:"at"`
}

func NewStatusNotifier(cfg config.MQTTConfig, logger *zap.Logger) (*StatusNotifier, error) {
	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetConnectTimeout(5*time.Second).
		SetAutoReconnect(true)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(5*time.Second) {
		return nil, fmt.Errorf("mqtt connect %s: timeout", cfg.Broker)
	}
	if token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", cfg.Broker, token.Error())
	}
	return &StatusNotifier{client: client, topicPrefix: cfg.Topic, logger: logger}, nil
}

// NotifyStatus publishes one transition on <prefix>/<warehouse>.
func (n *StatusNotifier) NotifyStatus(d *domain.Device) {
	payload, err := json.Marshal(statusEvent{
		Device:    d.Name,
		Warehouse: d.Warehouse,
		Status:    string(d.Status),
		At:        time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	topic := n.topicPrefix + "/" + d.Warehouse
	token := n.client.Publish(topic, 0, false, payload)
	go func() {
		if token.Wait() && token.Error() != nil {
			n.logger.Warn("status publish failed",
				zap.String("topic", topic), zap.Error(token.Error()))
		}
	}()
}

func (n *StatusNotifier) Close() {
	n.client.Disconnect(250)
}
