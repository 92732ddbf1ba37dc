package entity

import (
	"testing"

	"tractive2mqtt/dispatch"
	"tractive2mqtt/tractive"

	"github.com/stretchr/testify/require"
)

var testTrackable = tractive.Trackable{
	TrackableID: "pet1",
	TrackerID:   "tracker1",
	Name:        "Rex",
}

func TestNewSensorSignalScope(t *testing.T) {
	hardware := NewSensor(testTrackable, SensorDescription{
		Key:            "battery_level",
		SignalPrefix:   tractive.SignalHardwareStatusUpdated,
		HardwareSensor: true,
	})
	require.Equal(t, tractive.SignalHardwareStatusUpdated+"-tracker1", hardware.Signal)

	wellness := NewSensor(testTrackable, SensorDescription{
		Key:          "calories",
		SignalPrefix: tractive.SignalWellnessStatusUpdated,
	})
	require.Equal(t, tractive.SignalWellnessStatusUpdated+"-pet1", wellness.Signal)
}

func TestNewSensorUniqueID(t *testing.T) {
	s := NewSensor(testTrackable, SensorDescription{Key: "battery_level"})
	require.Equal(t, "pet1_battery_level", s.UniqueID)
}

func TestSensorBecomesAvailableOnFirstEvent(t *testing.T) {
	d := dispatch.New()
	s := NewSensor(testTrackable, SensorDescription{
		Key:            "battery_level",
		SignalPrefix:   tractive.SignalHardwareStatusUpdated,
		HardwareSensor: true,
	})
	s.Subscribe(d)

	require.False(t, s.Available())
	require.Nil(t, s.State())

	d.Send(tractive.SignalHardwareStatusUpdated+"-tracker1", map[string]interface{}{
		"battery_level": 42,
	})

	require.True(t, s.Available())
	require.EqualValues(t, 42, s.State())
}

func TestSensorAppliesValueFn(t *testing.T) {
	s := NewSensor(testTrackable, SensorDescription{
		Key: "sleep_label",
		ValueFn: func(v interface{}) interface{} {
			return "transformed"
		},
	})
	s.HandleStatusUpdate(map[string]interface{}{"sleep_label": "GOOD"})
	require.Equal(t, "transformed", s.State())
}

func TestSensorSkipsEventsMissingKey(t *testing.T) {
	s := NewSensor(testTrackable, SensorDescription{Key: "calories"})
	s.HandleStatusUpdate(map[string]interface{}{"minutes_rest": 5})

	require.False(t, s.Available())
	require.Nil(t, s.State())
}

func TestSensorUnavailableAfterServerOutage(t *testing.T) {
	d := dispatch.New()
	s := NewSensor(testTrackable, SensorDescription{
		Key:          "calories",
		SignalPrefix: tractive.SignalWellnessStatusUpdated,
	})
	s.Subscribe(d)

	d.Send(s.Signal, map[string]interface{}{"calories": 120})
	require.True(t, s.Available())

	d.Send(tractive.SignalServerUnavailable, nil)
	require.False(t, s.Available())
	// Last known state is kept, only availability flips.
	require.EqualValues(t, 120, s.State())
}

func TestSensorNotifiesObservers(t *testing.T) {
	s := NewSensor(testTrackable, SensorDescription{Key: "calories"})

	var seen []interface{}
	s.OnChange(func(s *Sensor) {
		seen = append(seen, s.State())
	})

	s.HandleStatusUpdate(map[string]interface{}{"calories": 1})
	s.HandleStatusUpdate(map[string]interface{}{"calories": 2})

	require.Equal(t, []interface{}{1, 2}, seen)
}

func TestSensorUnsubscribeStopsUpdates(t *testing.T) {
	d := dispatch.New()
	s := NewSensor(testTrackable, SensorDescription{
		Key:          "calories",
		SignalPrefix: tractive.SignalWellnessStatusUpdated,
	})
	unsub := s.Subscribe(d)
	unsub()

	d.Send(s.Signal, map[string]interface{}{"calories": 120})
	require.False(t, s.Available())
}
