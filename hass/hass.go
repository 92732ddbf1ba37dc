// Package hass exposes sensor entities to Home Assistant over MQTT
// discovery.
package hass

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"tractive2mqtt/entity"
	"tractive2mqtt/util"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

const (
	connectTimeout = 10 * time.Second
	publishTimeout = 5 * time.Second
)

type Config struct {
	Host            string
	Username        string
	Password        string
	ClientID        string
	DiscoveryPrefix string
	TopicPrefix     string
}

// Bridge publishes entity discovery, state and availability to an MQTT
// broker. All methods are safe for concurrent use; paho serializes the
// actual publishes.
type Bridge struct {
	client          mqtt.Client
	discoveryPrefix string
	topicPrefix     string
}

// Connect establishes the broker connection and announces the bridge as
// online. A last-will marks it offline if the connection drops.
func Connect(cfg Config) (*Bridge, error) {
	if cfg.ClientID == "" {
		cfg.ClientID = "tractive2mqtt-" + util.RandomString(6)
	}
	if cfg.DiscoveryPrefix == "" {
		cfg.DiscoveryPrefix = "homeassistant"
	}
	if cfg.TopicPrefix == "" {
		cfg.TopicPrefix = "tractive2mqtt"
	}

	b := &Bridge{
		discoveryPrefix: cfg.DiscoveryPrefix,
		topicPrefix:     cfg.TopicPrefix,
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Host).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetAutoReconnect(true).
		SetWill(b.bridgeStateTopic(), "offline", 1, true)
	opts.SetOnConnectHandler(func(c mqtt.Client) {
		// Re-announce after reconnects as well.
		if err := b.publish(b.bridgeStateTopic(), "online", true); err != nil {
			log.Printf("failed to publish bridge state: %s", err)
		}
	})

	b.client = mqtt.NewClient(opts)
	token := b.client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("failed to connect to mqtt broker: timeout after %v", connectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("failed to connect to mqtt broker: %w", err)
	}
	return b, nil
}

// RegisterSensors publishes a retained discovery config for every
// sensor so Home Assistant creates the entities, and marks each of them
// offline until its first update arrives.
func (b *Bridge) RegisterSensors(sensors []*entity.Sensor) error {
	for _, s := range sensors {
		payload, err := json.Marshal(b.discoveryFor(s))
		if err != nil {
			return fmt.Errorf("failed to build discovery for %s: %w", s.UniqueID, err)
		}
		if err := b.publish(b.discoveryTopic(s), string(payload), true); err != nil {
			return fmt.Errorf("failed to register sensor %s: %w", s.UniqueID, err)
		}
		if err := b.publish(b.availabilityTopic(s), availabilityPayload(s), true); err != nil {
			return fmt.Errorf("failed to publish availability for %s: %w", s.UniqueID, err)
		}
	}
	return nil
}

// PublishState pushes a sensor's current state and availability. It is
// meant to be registered as an entity observer.
func (b *Bridge) PublishState(s *entity.Sensor) {
	if err := b.publish(b.availabilityTopic(s), availabilityPayload(s), true); err != nil {
		log.Printf("failed to publish availability for %s: %s", s.UniqueID, err)
	}
	if !s.Available() {
		return
	}
	if err := b.publish(b.stateTopic(s), fmt.Sprint(s.State()), true); err != nil {
		log.Printf("failed to publish state for %s: %s", s.UniqueID, err)
	}
}

// Close marks the bridge offline and disconnects from the broker.
func (b *Bridge) Close() {
	if err := b.publish(b.bridgeStateTopic(), "offline", true); err != nil {
		log.Printf("failed to publish bridge state: %s", err)
	}
	b.client.Disconnect(250)
}

func (b *Bridge) publish(topic, payload string, retained bool) error {
	token := b.client.Publish(topic, 1, retained, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish to %s timed out after %v", topic, publishTimeout)
	}
	return token.Error()
}

func availabilityPayload(s *entity.Sensor) string {
	if s.Available() {
		return "online"
	}
	return "offline"
}
