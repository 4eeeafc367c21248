// Package roboid is the thin, user-facing façade over the Roboid core:
// a Hamster wraps one *hamster.Robot, exposing the operations named in
// the original C library (wheels, leds, buzzer/note, sensors, board
// motion) while keeping the runner, connector, and device table out of
// user code entirely.
//
// Blocking operations suspend only the calling goroutine: Beep and Note
// sleep for the tone's duration, and LineTracerMode and
// BoardForward/Left/Right wait on runner.WaitUntil. None of them blocks
// the scheduler or any robot's I/O goroutine.
package roboid

import (
	"fmt"
	"time"

	"roboid/connector"
	"roboid/eventbus"
	"roboid/hamster"
	"roboid/runner"
	"roboid/serial"
	"roboid/shared"
)

// Manager owns the global runner, the shared event bus, and every
// Hamster created through it. Exactly one Manager is expected per
// process; NewManager creates the runner up front, and Start launches
// it.
type Manager struct {
	run    *runner.Runner
	bus    *eventbus.Bus
	robots []*Hamster
}

// NewManager constructs a Manager with its runner created but not yet
// started; Start begins the scheduler once every robot has been
// registered (spec §1 non-goal: no dynamic add/remove after start).
// The returned Manager's Bus is shared by every Connect'd robot's
// connector, so a single telemetry or httpapi subscriber observes all
// of them.
func NewManager() *Manager {
	return &Manager{run: runner.New(), bus: eventbus.NewBus()}
}

// Bus returns the shared event bus that every connector publishes
// connection-state transitions onto (spec §4.2/§4.8).
func (m *Manager) Bus() *eventbus.Bus { return m.bus }

// Robots returns every robot registered so far, in registration order.
func (m *Manager) Robots() []*Hamster { return m.robots }

// Connect discovers a Hamster bridge among the given candidate port
// names (typically serial.ListPorts' output, filtered by the caller),
// opens the first one that completes the handshake, and registers the
// resulting robot with the manager's runner.
func Connect(m *Manager, candidates []string) (*Hamster, error) {
	index := len(m.robots)
	for _, name := range candidates {
		conn, err := connector.Open(name, hamster.PacketLength, hamster.Delim, "hamster", index, m.bus, hamster.CheckConnection)
		if err != nil {
			continue
		}
		robot := hamster.NewRobot(index, conn)
		robot.SetBus(m.bus)
		m.run.Register(robot)
		h := &Hamster{robot: robot, run: m.run}
		m.robots = append(m.robots, h)
		return h, nil
	}
	return nil, shared.ErrNoAvailableBridge
}

// Start launches the runner's scheduler and every registered robot's
// I/O goroutine.
func (m *Manager) Start() { m.run.Start() }

// WaitUntilReady blocks until every registered robot has completed its
// first successful packet decode.
func (m *Manager) WaitUntilReady() { m.run.WaitUntilReady() }

// DisposeAll stops the scheduler, disposes every robot, and joins all
// goroutines within the bounded grace period (spec §4.5/§5).
func (m *Manager) DisposeAll() { m.run.DisposeAll() }

// Wait busy-sleeps the calling goroutine without affecting any robot's
// scheduling (spec §4.5).
func Wait(ms int) { runner.Wait(time.Duration(ms) * time.Millisecond) }

// Hamster is the façade over one connected robot.
type Hamster struct {
	robot *hamster.Robot
	run   *runner.Runner
}

// Index returns the robot's registration index.
func (h *Hamster) Index() int { return h.robot.Index }

// Address returns the bridge's 12-hex-digit address, or "" if the
// handshake has not captured one.
func (h *Hamster) Address() string {
	if h.robot.Connector == nil {
		return ""
	}
	return h.robot.Connector.Address
}

// PortName returns the underlying serial port name, used by the
// composition root to avoid reconnecting an already-claimed bridge.
func (h *Hamster) PortName() string {
	if h.robot.Connector == nil || h.robot.Connector.Port == nil {
		return ""
	}
	return h.robot.Connector.Port.Name()
}

// Wheels writes both wheel speeds in [-128, 127], cancelling any
// pending line-tracer mode.
func (h *Hamster) Wheels(left, right int) { h.robot.Wheels(left, right) }

// LeftWheel writes only the left wheel speed.
func (h *Hamster) LeftWheel(v int) { h.robot.LeftWheel(v) }

// RightWheel writes only the right wheel speed.
func (h *Hamster) RightWheel(v int) { h.robot.RightWheel(v) }

// Stop zeroes both wheels.
func (h *Hamster) Stop() { h.robot.Stop() }

// Leds sets both LED colors (spec §6: 0 off .. 7 white).
func (h *Hamster) Leds(left, right int) {
	h.robot.Devices[hamster.IdxLeftLed].Write(left)
	h.robot.Devices[hamster.IdxRightLed].Write(right)
}

// LeftLed sets only the left LED color.
func (h *Hamster) LeftLed(color int) { h.robot.Devices[hamster.IdxLeftLed].Write(color) }

// RightLed sets only the right LED color.
func (h *Hamster) RightLed(color int) { h.robot.Devices[hamster.IdxRightLed].Write(color) }

// Buzzer sets the buzzer frequency in Hz directly, cancelling any
// pending note.
func (h *Hamster) Buzzer(hz float64) { h.robot.Buzzer(hz) }

// Beep plays a fixed 440 Hz, 200 ms tone. Blocks the caller.
func (h *Hamster) Beep() { h.robot.Beep() }

// Tempo sets the beats-per-minute used by Note's duration arithmetic;
// non-positive values are ignored.
func (h *Hamster) Tempo(bpm float64) { h.robot.Tempo(bpm) }

// Pitch sets the note device directly, cancelling the buzzer;
// negative pitches are ignored.
func (h *Hamster) Pitch(pitch float64) { h.robot.Pitch(pitch) }

// Note plays pitch for the given number of beats at the robot's
// current tempo and blocks the caller for the note's full duration.
func (h *Hamster) Note(pitch, beats float64) { h.robot.Note(pitch, beats) }

// IoModeA sets input/output mode A (spec §6: 0 analog in .. 10 digital out).
func (h *Hamster) IoModeA(mode int) { h.robot.Devices[hamster.IdxIoModeA].Write(mode) }

// IoModeB sets input/output mode B.
func (h *Hamster) IoModeB(mode int) { h.robot.Devices[hamster.IdxIoModeB].Write(mode) }

// OutputA writes digital/PWM/servo output A.
func (h *Hamster) OutputA(value int) { h.robot.Devices[hamster.IdxOutputA].Write(value) }

// OutputB writes digital/PWM/servo output B.
func (h *Hamster) OutputB(value int) { h.robot.Devices[hamster.IdxOutputB].Write(value) }

// SignalStrength returns the last-seen BLE signal strength, in dBm.
func (h *Hamster) SignalStrength() int { return h.robot.Devices[hamster.IdxSignalStrength].Read() }

// LeftProximity returns the left proximity sensor reading.
func (h *Hamster) LeftProximity() int { return h.robot.Devices[hamster.IdxLeftProximity].Read() }

// RightProximity returns the right proximity sensor reading.
func (h *Hamster) RightProximity() int { return h.robot.Devices[hamster.IdxRightProximity].Read() }

// LeftFloor returns the left floor sensor reading.
func (h *Hamster) LeftFloor() int { return h.robot.Devices[hamster.IdxLeftFloor].Read() }

// RightFloor returns the right floor sensor reading.
func (h *Hamster) RightFloor() int { return h.robot.Devices[hamster.IdxRightFloor].Read() }

// Acceleration returns the three-axis accelerometer reading.
func (h *Hamster) Acceleration() (x, y, z int) {
	a := h.robot.Devices[hamster.IdxAcceleration].ReadArray()
	return a[0], a[1], a[2]
}

// Light returns the last-latched ambient light reading (spec §4.4: the
// wire multiplexes light and temperature; the most recent of each is
// always exposed).
func (h *Hamster) Light() int { return h.robot.Devices[hamster.IdxLight].Read() }

// Temperature returns the last-latched temperature reading in degrees
// Celsius.
func (h *Hamster) Temperature() int { return h.robot.Devices[hamster.IdxTemperature].Read() }

// InputA returns the GPIO input A reading.
func (h *Hamster) InputA() int { return h.robot.Devices[hamster.IdxInputA].Read() }

// InputB returns the GPIO input B reading.
func (h *Hamster) InputB() int { return h.robot.Devices[hamster.IdxInputB].Read() }

// LineTracerMode writes the requested line-tracer mode and speed. Modes
// 1-3 are passive-follow and return immediately; the event-completing
// maneuvers (mode 4-14) block until the robot reports the maneuver has
// completed (spec §4.4).
func (h *Hamster) LineTracerMode(mode, speed int) {
	h.robot.SetLineTracerMode(mode, speed)
	if hamster.LineTracerModeCompletes(mode) {
		runner.WaitUntil(h.robot.LineTracerDonePredicate())
	}
}

// BoardForward drives the "advance to and cross the next intersection"
// board-step maneuver and blocks until it completes (spec §4.6).
func (h *Hamster) BoardForward() {
	h.robot.BoardForward()
	runner.WaitUntil(h.robot.BoardDonePredicate())
}

// BoardLeft drives the "turn to face left at the next intersection"
// board-step maneuver and blocks until it completes.
func (h *Hamster) BoardLeft() {
	h.robot.BoardLeft()
	runner.WaitUntil(h.robot.BoardDonePredicate())
}

// BoardRight drives the mirrored right-turn board-step maneuver and
// blocks until it completes.
func (h *Hamster) BoardRight() {
	h.robot.BoardRight()
	runner.WaitUntil(h.robot.BoardDonePredicate())
}

// String renders a short diagnostic identity, used by the monitoring
// surface and log lines.
func (h *Hamster) String() string {
	return fmt.Sprintf("Hamster[%d]@%s", h.robot.Index, h.Address())
}

// Snapshot returns a JSON-friendly view of the robot's current sensor
// and actuator state for the monitoring dashboard (spec §6). It never
// blocks the scheduler: every field is read off the live device table,
// the same way the scheduler itself reads sensor devices.
func (h *Hamster) Snapshot() map[string]any {
	x, y, z := h.Acceleration()
	return map[string]any{
		"index":             h.Index(),
		"address":           h.Address(),
		"left_wheel":        h.robot.Devices[hamster.IdxLeftWheel].Read(),
		"right_wheel":       h.robot.Devices[hamster.IdxRightWheel].Read(),
		"left_led":          h.robot.Devices[hamster.IdxLeftLed].Read(),
		"right_led":         h.robot.Devices[hamster.IdxRightLed].Read(),
		"buzzer":            h.robot.Devices[hamster.IdxBuzzer].ReadFloat(),
		"note":              h.robot.Devices[hamster.IdxNote].Read(),
		"signal_strength":   h.SignalStrength(),
		"left_proximity":    h.LeftProximity(),
		"right_proximity":   h.RightProximity(),
		"left_floor":        h.LeftFloor(),
		"right_floor":       h.RightFloor(),
		"acceleration_x":    x,
		"acceleration_y":    y,
		"acceleration_z":    z,
		"light":             h.Light(),
		"temperature":       h.Temperature(),
		"input_a":           h.InputA(),
		"input_b":           h.InputB(),
		"line_tracer_mode":  h.robot.Devices[hamster.IdxLineTracerMode].Read(),
		"line_tracer_state": h.robot.Devices[hamster.IdxLineTracerState].Read(),
	}
}

// ListPorts enumerates candidate serial ports for Connect's caller to
// filter and pass in.
func ListPorts() ([]serial.PortInfo, error) { return serial.ListPorts() }
