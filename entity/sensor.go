package entity

import (
	"fmt"
	"log"

	"tractive2mqtt/dispatch"
	"tractive2mqtt/tractive"
)

// Observer is notified whenever a sensor's state or availability
// changes. Observers run on the goroutine delivering the update.
type Observer func(s *Sensor)

// Sensor is a concrete sensor entity for one trackable. Its state is
// only mutated from dispatch callbacks; it starts out unavailable until
// the first matching event arrives.
type Sensor struct {
	Description SensorDescription
	TrackableID string
	TrackerID   string
	PetName     string

	// UniqueID is {trackable id}_{description key}.
	UniqueID string
	// Signal is the dispatch signal this sensor listens on.
	Signal string

	available bool
	state     interface{}
	observers []Observer
}

// NewSensor builds the sensor entity for a description and trackable
// pair. Hardware sensors subscribe to the tracker-scoped signal, all
// others to the trackable-scoped one.
func NewSensor(item tractive.Trackable, description SensorDescription) *Sensor {
	id := item.TrackableID
	if description.HardwareSensor {
		id = item.TrackerID
	}
	return &Sensor{
		Description: description,
		TrackableID: item.TrackableID,
		TrackerID:   item.TrackerID,
		PetName:     item.Name,
		UniqueID:    fmt.Sprintf("%s_%s", item.TrackableID, description.Key),
		Signal:      fmt.Sprintf("%s-%s", description.SignalPrefix, id),
	}
}

func (s *Sensor) String() string {
	return fmt.Sprintf("%s (%s)", s.Description.Name, s.UniqueID)
}

// State returns the last projected value, nil before the first event.
func (s *Sensor) State() interface{} {
	return s.state
}

// Available reports whether the sensor has received an event since
// startup or the last server outage.
func (s *Sensor) Available() bool {
	return s.available
}

// OnChange registers an observer for state and availability changes.
func (s *Sensor) OnChange(fn Observer) {
	s.observers = append(s.observers, fn)
}

// Subscribe connects the sensor to its update signal and to the
// server-unavailable signal. The returned function disconnects both.
func (s *Sensor) Subscribe(d *dispatch.Dispatcher) func() {
	unsubStatus := d.Connect(s.Signal, s.HandleStatusUpdate)
	unsubServer := d.Connect(tractive.SignalServerUnavailable, s.handleServerUnavailable)
	return func() {
		unsubStatus()
		unsubServer()
	}
}

// HandleStatusUpdate projects the description's key out of the event
// into the sensor state and marks the sensor available. Events missing
// the key are skipped.
func (s *Sensor) HandleStatusUpdate(event map[string]interface{}) {
	value, ok := event[s.Description.Key]
	if !ok {
		log.Printf("update for %s carries no %q, skipping", s, s.Description.Key)
		return
	}
	if fn := s.Description.ValueFn; fn != nil {
		value = fn(value)
	}
	s.state = value
	s.available = true
	s.notify()
}

func (s *Sensor) handleServerUnavailable(event map[string]interface{}) {
	if !s.available {
		return
	}
	s.available = false
	s.notify()
}

func (s *Sensor) notify() {
	for _, fn := range s.observers {
		fn(s)
	}
}
