// Package hamster implements the concrete Hamster robot: its 27-entry
// device table, the 54-byte motoring/sensory packet codec, the
// line-tracer completion state machine, the board-step motion
// primitives, and the per-robot I/O goroutine.
//
// Device ranges and initial values are recovered verbatim from the
// original roboid.h/roboid.c device table (_hamster_create); each
// device's id is its index in this table.
package hamster

import "roboid/device"

// Device table indices, 0-based, matching the order in which
// _hamster_create declares them. Only the low bits of the real 32-bit
// device ids matter for indexing; this table owns that mapping.
const (
	IdxLeftWheel = iota
	IdxRightWheel
	IdxBuzzer
	IdxOutputA
	IdxOutputB
	IdxTopology
	IdxLeftLed
	IdxRightLed
	IdxNote
	IdxLineTracerMode
	IdxLineTracerSpeed
	IdxIoModeA
	IdxIoModeB
	IdxConfigProximity
	IdxConfigGravity
	IdxConfigBandWidth
	// --- sensors/events below this line ---
	IdxSignalStrength
	IdxLeftProximity
	IdxRightProximity
	IdxLeftFloor
	IdxRightFloor
	IdxAcceleration
	IdxLight
	IdxTemperature
	IdxInputA
	IdxInputB
	IdxLineTracerState

	deviceCount
)

// firstSensorIdx is the boundary between the 16 writable (effector/
// command) devices and the 11 readable (sensor/event) devices. The
// runner's twin commit sweeps iterate writableIndices and sensorIndices
// (motoring.go), which list the two sides of this boundary (spec
// §4.3/4.5).
const firstSensorIdx = IdxSignalStrength

// LED colors (spec §6).
const (
	LedOff = iota
	LedBlue
	LedGreen
	LedCyan
	LedRed
	LedMagenta
	LedYellow
	LedWhite
)

// Line tracer modes (spec §6).
const (
	LineTracerOff = 0
	// 1-3: passive follow on {left, right, both}.
	// 4-7: event-completing maneuvers on black line {turn-left, turn-right, forward, u-turn}.
	// 8-14: same maneuvers on white line.
)

// IO modes (spec §6).
const (
	IoModeAnalogInput = iota
	IoModeDigitalInput
	_
	_
	_
	_
	_
	_
	IoModeServo
	IoModePWM
	IoModeDigitalOutput
)

func newDeviceTable() [deviceCount]*device.Device {
	type spec struct {
		name  string
		role  device.Role
		kind  device.Kind
		arity int
		min   float64
		max   float64
		init  float64
	}
	specs := [deviceCount]spec{
		IdxLeftWheel:       {"LeftWheel", device.RoleEffector, device.KindInt, 1, -128, 127, 0},
		IdxRightWheel:      {"RightWheel", device.RoleEffector, device.KindInt, 1, -128, 127, 0},
		IdxBuzzer:          {"Buzzer", device.RoleEffector, device.KindFloat, 1, 0, 167772.15, 0},
		IdxOutputA:         {"OutputA", device.RoleEffector, device.KindInt, 1, -128, 127, 0},
		IdxOutputB:         {"OutputB", device.RoleEffector, device.KindInt, 1, -128, 127, 0},
		IdxTopology:        {"Topology", device.RoleEffector, device.KindInt, 1, 0, 255, 0},
		IdxLeftLed:         {"LeftLed", device.RoleEffector, device.KindInt, 1, 0, 7, 0},
		IdxRightLed:        {"RightLed", device.RoleEffector, device.KindInt, 1, 0, 7, 0},
		IdxNote:            {"Note", device.RoleCommand, device.KindInt, 1, 0, 88, 0},
		IdxLineTracerMode:  {"LineTracerMode", device.RoleCommand, device.KindInt, 1, 0, 14, 0},
		IdxLineTracerSpeed: {"LineTracerSpeed", device.RoleEffector, device.KindInt, 1, 1, 8, 5},
		IdxIoModeA:         {"IoModeA", device.RoleEffector, device.KindInt, 1, 0, 10, 0},
		IdxIoModeB:         {"IoModeB", device.RoleEffector, device.KindInt, 1, 0, 10, 0},
		IdxConfigProximity: {"ConfigProximity", device.RoleEffector, device.KindInt, 1, 1, 7, 2},
		IdxConfigGravity:   {"ConfigGravity", device.RoleEffector, device.KindInt, 1, 0, 1, 0},
		IdxConfigBandWidth: {"ConfigBandWidth", device.RoleEffector, device.KindInt, 1, 1, 8, 3},

		IdxSignalStrength:  {"SignalStrength", device.RoleSensor, device.KindInt, 1, -128, 0, 0},
		IdxLeftProximity:   {"LeftProximity", device.RoleSensor, device.KindInt, 1, 0, 255, 0},
		IdxRightProximity:  {"RightProximity", device.RoleSensor, device.KindInt, 1, 0, 255, 0},
		IdxLeftFloor:       {"LeftFloor", device.RoleSensor, device.KindInt, 1, 0, 100, 0},
		IdxRightFloor:      {"RightFloor", device.RoleSensor, device.KindInt, 1, 0, 100, 0},
		IdxAcceleration:    {"Acceleration", device.RoleSensor, device.KindInt, 3, -32768, 32767, 0},
		IdxLight:           {"Light", device.RoleSensor, device.KindInt, 1, 0, 65535, 0},
		IdxTemperature:     {"Temperature", device.RoleSensor, device.KindInt, 1, -40, 88, 0},
		IdxInputA:          {"InputA", device.RoleSensor, device.KindInt, 1, 0, 255, 0},
		IdxInputB:          {"InputB", device.RoleSensor, device.KindInt, 1, 0, 255, 0},
		IdxLineTracerState: {"LineTracerState", device.RoleEvent, device.KindInt, 1, 0, 255, 0},
	}

	var table [deviceCount]*device.Device
	for i, s := range specs {
		table[i] = device.New(uint32(i), s.name, s.role, s.kind, s.arity, s.min, s.max, s.init)
	}
	return table
}
