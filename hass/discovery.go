package hass

import (
	"fmt"

	"tractive2mqtt/entity"
)

// discoveryPayload follows the Home Assistant MQTT discovery schema for
// sensors, see https://www.home-assistant.io/integrations/sensor.mqtt/.
type discoveryPayload struct {
	Name              string         `json:"name"`
	UniqueID          string         `json:"unique_id"`
	StateTopic        string         `json:"state_topic"`
	Availability      []availability `json:"availability,omitempty"`
	AvailabilityMode  string         `json:"availability_mode,omitempty"`
	DeviceClass       string         `json:"device_class,omitempty"`
	StateClass        string         `json:"state_class,omitempty"`
	UnitOfMeasurement string         `json:"unit_of_measurement,omitempty"`
	Icon              string         `json:"icon,omitempty"`
	EntityCategory    string         `json:"entity_category,omitempty"`
	Options           []string       `json:"options,omitempty"`
	Device            device         `json:"device"`
}

type availability struct {
	Topic string `json:"topic"`
}

// device groups all sensors of one trackable under a single Home
// Assistant device entry.
type device struct {
	Identifiers  []string `json:"identifiers"`
	Name         string   `json:"name"`
	Manufacturer string   `json:"manufacturer"`
	Model        string   `json:"model,omitempty"`
}

func (b *Bridge) stateTopic(s *entity.Sensor) string {
	return fmt.Sprintf("%s/%s/%s/state", b.topicPrefix, s.TrackableID, s.Description.Key)
}

func (b *Bridge) availabilityTopic(s *entity.Sensor) string {
	return fmt.Sprintf("%s/%s/%s/availability", b.topicPrefix, s.TrackableID, s.Description.Key)
}

func (b *Bridge) bridgeStateTopic() string {
	return fmt.Sprintf("%s/bridge/state", b.topicPrefix)
}

func (b *Bridge) discoveryTopic(s *entity.Sensor) string {
	return fmt.Sprintf("%s/sensor/tractive_%s/%s/config", b.discoveryPrefix, s.TrackableID, s.Description.Key)
}

// discoveryFor maps a sensor entity onto its discovery payload. The
// entity goes unavailable when either the bridge or the individual
// sensor drops offline.
func (b *Bridge) discoveryFor(s *entity.Sensor) discoveryPayload {
	name := s.Description.Name
	if s.PetName != "" {
		name = fmt.Sprintf("%s %s", s.PetName, s.Description.Name)
	}
	deviceName := s.PetName
	if deviceName == "" {
		deviceName = s.TrackableID
	}
	return discoveryPayload{
		Name:       name,
		UniqueID:   s.UniqueID,
		StateTopic: b.stateTopic(s),
		Availability: []availability{
			{Topic: b.bridgeStateTopic()},
			{Topic: b.availabilityTopic(s)},
		},
		AvailabilityMode:  "all",
		DeviceClass:       string(s.Description.DeviceClass),
		StateClass:        string(s.Description.StateClass),
		UnitOfMeasurement: s.Description.Unit,
		Icon:              s.Description.Icon,
		EntityCategory:    string(s.Description.EntityCategory),
		Options:           s.Description.Options,
		Device: device{
			Identifiers:  []string{fmt.Sprintf("tractive_%s", s.TrackableID)},
			Name:         deviceName,
			Manufacturer: "Tractive",
			Model:        s.TrackerID,
		},
	}
}
