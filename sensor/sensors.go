// Package sensor defines the sensor entities exposed for each
// trackable: tracker hardware diagnostics plus the pet's activity and
// wellness figures.
package sensor

import (
	"strings"

	"tractive2mqtt/entity"
	"tractive2mqtt/tractive"
)

// lowerCaseLabel normalizes the cloud's label values (reported in mixed
// case) to the lower-cased enum options. Non-string values pass through
// unchanged.
func lowerCaseLabel(value interface{}) interface{} {
	if s, ok := value.(string); ok {
		return strings.ToLower(s)
	}
	return value
}

// SensorTypes lists every sensor entity created per trackable.
var SensorTypes = []entity.SensorDescription{
	{
		Key:            tractive.AttrBatteryLevel,
		Name:           "Battery",
		Unit:           "%",
		DeviceClass:    entity.DeviceClassBattery,
		EntityCategory: entity.EntityCategoryDiagnostic,
		SignalPrefix:   tractive.SignalHardwareStatusUpdated,
		HardwareSensor: true,
	},
	{
		Key:            tractive.AttrTrackerState,
		Name:           "Tracker state",
		Icon:           "mdi:radar",
		DeviceClass:    entity.DeviceClassEnum,
		EntityCategory: entity.EntityCategoryDiagnostic,
		Options: []string{
			"not_reporting",
			"operational",
			"system_shutdown_user",
			"system_startup",
		},
		SignalPrefix:   tractive.SignalHardwareStatusUpdated,
		HardwareSensor: true,
	},
	{
		Key:          tractive.AttrMinutesActive,
		Name:         "Activity time",
		Icon:         "mdi:clock-time-eight-outline",
		Unit:         "min",
		StateClass:   entity.StateClassTotal,
		SignalPrefix: tractive.SignalActivityStatusUpdated,
	},
	{
		Key:          tractive.AttrMinutesRest,
		Name:         "Rest time",
		Icon:         "mdi:clock-time-eight-outline",
		Unit:         "min",
		StateClass:   entity.StateClassTotal,
		SignalPrefix: tractive.SignalWellnessStatusUpdated,
	},
	{
		Key:          tractive.AttrCalories,
		Name:         "Calories burned",
		Icon:         "mdi:fire",
		Unit:         "kcal",
		StateClass:   entity.StateClassTotal,
		SignalPrefix: tractive.SignalWellnessStatusUpdated,
	},
	{
		Key:          tractive.AttrDailyGoal,
		Name:         "Daily goal",
		Icon:         "mdi:flag-checkered",
		Unit:         "min",
		SignalPrefix: tractive.SignalActivityStatusUpdated,
	},
	{
		Key:          tractive.AttrMinutesDaySleep,
		Name:         "Day sleep",
		Icon:         "mdi:sleep",
		Unit:         "min",
		StateClass:   entity.StateClassTotal,
		SignalPrefix: tractive.SignalWellnessStatusUpdated,
	},
	{
		Key:          tractive.AttrMinutesNightSleep,
		Name:         "Night sleep",
		Icon:         "mdi:sleep",
		Unit:         "min",
		StateClass:   entity.StateClassTotal,
		SignalPrefix: tractive.SignalWellnessStatusUpdated,
	},
	{
		Key:          tractive.AttrSleepLabel,
		Name:         "Sleep quality",
		Icon:         "mdi:sleep",
		DeviceClass:  entity.DeviceClassEnum,
		Options:      []string{"ok", "good"},
		SignalPrefix: tractive.SignalWellnessStatusUpdated,
		ValueFn:      lowerCaseLabel,
	},
	{
		Key:          tractive.AttrActivityLabel,
		Name:         "Activity",
		Icon:         "mdi:run",
		DeviceClass:  entity.DeviceClassEnum,
		Options:      []string{"ok", "good"},
		SignalPrefix: tractive.SignalWellnessStatusUpdated,
		ValueFn:      lowerCaseLabel,
	},
}

// Setup builds the full cross product of sensor descriptions and the
// client's trackables and hands the entities to addEntities.
func Setup(client tractive.Client, addEntities func([]*entity.Sensor)) {
	var entities []*entity.Sensor
	for _, description := range SensorTypes {
		for _, item := range client.Trackables() {
			entities = append(entities, entity.NewSensor(item, description))
		}
	}
	addEntities(entities)
}
