package entity

// DeviceClass matches the Home Assistant sensor device classes used by
// this bridge.
type DeviceClass string

const (
	DeviceClassNone    DeviceClass = ""
	DeviceClassBattery DeviceClass = "battery"
	DeviceClassEnum    DeviceClass = "enum"
)

// StateClass controls how Home Assistant treats the sensor's history.
type StateClass string

const (
	StateClassNone  StateClass = ""
	StateClassTotal StateClass = "total"
)

type EntityCategory string

const (
	EntityCategoryNone       EntityCategory = ""
	EntityCategoryDiagnostic EntityCategory = "diagnostic"
)

// SensorDescription is the static metadata for one sensor kind. A
// description is instantiated once per trackable at setup time.
type SensorDescription struct {
	// Key is the field extracted from status update events. It also
	// forms the second half of the entity's unique id.
	Key  string
	Name string
	Icon string
	Unit string

	DeviceClass    DeviceClass
	StateClass     StateClass
	EntityCategory EntityCategory
	// Options enumerates the possible states for enum sensors.
	Options []string

	// SignalPrefix selects the update stream the sensor listens to.
	SignalPrefix string
	// HardwareSensor scopes the signal to the tracker hardware instead
	// of the trackable.
	HardwareSensor bool
	// ValueFn transforms the raw event value before it becomes entity
	// state. A nil ValueFn keeps the value as-is.
	ValueFn func(interface{}) interface{}
}
