package sensor

import (
	"context"
	"fmt"
	"testing"

	"tractive2mqtt/entity"
	"tractive2mqtt/tractive"

	"github.com/stretchr/testify/require"
)

type staticClient struct {
	trackables []tractive.Trackable
}

func (c staticClient) Trackables() []tractive.Trackable { return c.trackables }
func (c staticClient) Run(ctx context.Context) error    { return nil }

func testClient(n int) staticClient {
	var c staticClient
	for i := 0; i < n; i++ {
		c.trackables = append(c.trackables, tractive.Trackable{
			TrackableID: fmt.Sprintf("pet%d", i),
			TrackerID:   fmt.Sprintf("tracker%d", i),
			Name:        fmt.Sprintf("Pet %d", i),
		})
	}
	return c
}

func TestSetupBuildsCrossProduct(t *testing.T) {
	var entities []*entity.Sensor
	Setup(testClient(3), func(built []*entity.Sensor) {
		entities = built
	})

	require.Len(t, entities, len(SensorTypes)*3)

	// Unique ids are unique across the whole set.
	seen := make(map[string]bool)
	for _, s := range entities {
		require.False(t, seen[s.UniqueID], "duplicate unique id %s", s.UniqueID)
		seen[s.UniqueID] = true
	}
}

func TestSetupUniqueIDShape(t *testing.T) {
	var entities []*entity.Sensor
	Setup(testClient(1), func(built []*entity.Sensor) {
		entities = built
	})

	for _, s := range entities {
		require.Equal(t, fmt.Sprintf("pet0_%s", s.Description.Key), s.UniqueID)
	}
}

func TestHardwareSensorsScopeToTracker(t *testing.T) {
	for _, description := range SensorTypes {
		s := entity.NewSensor(tractive.Trackable{TrackableID: "pet0", TrackerID: "tracker0"}, description)
		if description.HardwareSensor {
			require.Equal(t, fmt.Sprintf("%s-tracker0", description.SignalPrefix), s.Signal)
		} else {
			require.Equal(t, fmt.Sprintf("%s-pet0", description.SignalPrefix), s.Signal)
		}
	}
}

func TestOnlyHardwareDiagnosticsScopeToTracker(t *testing.T) {
	hardware := make(map[string]bool)
	for _, description := range SensorTypes {
		if description.HardwareSensor {
			hardware[description.Key] = true
		}
	}
	require.Equal(t, map[string]bool{
		tractive.AttrBatteryLevel: true,
		tractive.AttrTrackerState: true,
	}, hardware)
}

func TestLabelSensorsLowerCaseStrings(t *testing.T) {
	for _, key := range []string{tractive.AttrSleepLabel, tractive.AttrActivityLabel} {
		description := descriptionByKey(t, key)
		require.NotNil(t, description.ValueFn)
		require.Equal(t, "good", description.ValueFn("GOOD"))
		require.Equal(t, 3, description.ValueFn(3))
	}
}

func TestBatteryLevelExample(t *testing.T) {
	description := descriptionByKey(t, tractive.AttrBatteryLevel)
	s := entity.NewSensor(tractive.Trackable{TrackableID: "pet0", TrackerID: "tracker0"}, description)

	s.HandleStatusUpdate(map[string]interface{}{"battery_level": 42})

	require.EqualValues(t, 42, s.State())
	require.True(t, s.Available())
}

func descriptionByKey(t *testing.T, key string) entity.SensorDescription {
	t.Helper()
	for _, description := range SensorTypes {
		if description.Key == key {
			return description
		}
	}
	t.Fatalf("no sensor description with key %s", key)
	return entity.SensorDescription{}
}
