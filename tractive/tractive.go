package tractive

import "context"

// Attribute keys used in status update events.
const (
	AttrBatteryLevel      = "battery_level"
	AttrTrackerState      = "tracker_state"
	AttrMinutesActive     = "minutes_active"
	AttrMinutesRest       = "minutes_rest"
	AttrCalories          = "calories"
	AttrDailyGoal         = "daily_goal"
	AttrMinutesDaySleep   = "minutes_day_sleep"
	AttrMinutesNightSleep = "minutes_night_sleep"
	AttrSleepLabel        = "sleep_label"
	AttrActivityLabel     = "activity_label"
)

// Dispatch signal prefixes. Status signals are suffixed with the tracker
// or trackable id they apply to; SignalServerUnavailable is sent as-is
// when the update stream drops.
const (
	SignalHardwareStatusUpdated = "tractive_tracker_hardware_status_updated"
	SignalActivityStatusUpdated = "tractive_tracker_activity_status_updated"
	SignalWellnessStatusUpdated = "tractive_tracker_wellness_status_updated"
	SignalServerUnavailable     = "tractive_server_unavailable"
)

// Trackable is a paired tracker device together with the pet profile it
// is assigned to.
type Trackable struct {
	// TrackableID identifies the pet profile in the Tractive cloud.
	TrackableID string
	// TrackerID identifies the tracker hardware.
	TrackerID string
	// Name is the pet's display name.
	Name string
}

// Client delivers trackables and pushes status updates onto the
// dispatcher. The production Tractive cloud client (authentication,
// channel subscription, reconnection) is one implementation; Feed is a
// local one.
type Client interface {
	Trackables() []Trackable
	Run(ctx context.Context) error
}
