package main

import (
	"fmt"
	"os"
	"sort"

	"tractive2mqtt/tractive"
	"tractive2mqtt/util"
)

// Config contains all values from the configuration file.
type Config struct {
	Bridge     bridgeConfig               `toml:"bridge"`
	MQTT       mqttConfig                 `toml:"mqtt"`
	Trackables map[string]trackableConfig `toml:"trackable"`
}

type bridgeConfig struct {
	EventsFile    util.HomePath `toml:"events_file"`
	StatusAddress string        `toml:"status_address"`
}

type mqttConfig struct {
	Host            string `toml:"host"`
	Username        string `toml:"username"`
	Password        string `toml:"password"`
	ClientID        string `toml:"client_id"`
	DiscoveryPrefix string `toml:"discovery_prefix"`
	TopicPrefix     string `toml:"topic_prefix"`
}

type trackableConfig struct {
	Name        string `toml:"name"`
	TrackableID string `toml:"trackable_id"`
	TrackerID   string `toml:"tracker_id"`
}

// applyEnvOverrides lets broker credentials come from the environment
// (or a .env file) instead of the config file.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("TRACTIVE2MQTT_MQTT_HOST"); v != "" {
		c.MQTT.Host = v
	}
	if v := os.Getenv("TRACTIVE2MQTT_MQTT_USERNAME"); v != "" {
		c.MQTT.Username = v
	}
	if v := os.Getenv("TRACTIVE2MQTT_MQTT_PASSWORD"); v != "" {
		c.MQTT.Password = v
	}
}

// trackables returns the configured trackables in stable (key) order.
func (c Config) trackables() ([]tractive.Trackable, error) {
	keys := make([]string, 0, len(c.Trackables))
	for key := range c.Trackables {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var trackables []tractive.Trackable
	for _, key := range keys {
		tc := c.Trackables[key]
		if tc.TrackableID == "" || tc.TrackerID == "" {
			return nil, fmt.Errorf("trackable %q needs both trackable_id and tracker_id", key)
		}
		name := tc.Name
		if name == "" {
			name = key
		}
		trackables = append(trackables, tractive.Trackable{
			TrackableID: tc.TrackableID,
			TrackerID:   tc.TrackerID,
			Name:        name,
		})
	}
	return trackables, nil
}
