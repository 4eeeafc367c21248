package hamster

import (
	"sync"

	"roboid/connector"
	"roboid/device"
	"roboid/eventbus"
)

// motoringSnapshot is the per-robot scratch the runner reads effector/
// command devices into once per tick (spec §4.5 step 4) and the I/O
// goroutine encodes from on every reply.
type motoringSnapshot struct {
	topology    int
	leftWheel   int
	rightWheel  int
	leftLed     int
	rightLed    int
	buzzer      float64
	note        int
	lineMode    int
	lineSpeed   int
	lineFlag    bool // toggled on each newly-written nonzero mode
	proximity   int
	gravity     int
	bandWidth   int
	ioModeA     int
	ioModeB     int
	outputA     int
	outputB     int
	lineModeSet bool // not set by BuildMotoringSnapshot, which reads the fresh-write edge from Written()
}

// Robot is one Hamster's complete runtime state: its device table, the
// connector owning its serial link, motoring scratch, line-tracer event
// bookkeeping, board-step motion sub-state, and liveness flags.
type Robot struct {
	mu sync.Mutex

	Index     int
	Devices   [deviceCount]*device.Device
	Connector *connector.Connector

	bus *eventbus.Bus

	snapshot motoringSnapshot
	bpm      float64

	// line-tracer completion state machine (spec §4.4).
	lineTracerEvent int // 0, 1, or 2
	lineTracerState int // last emitted LineTracerState value

	// board-step motion sub-state (spec §4.6), shared by all three
	// primitives; only one runs at a time per robot. boardKind records
	// which primitive boardState/boardCount belong to.
	boardState int
	boardCount int
	boardKind  int

	alive   bool
	running bool
	ready   bool
}

// NewRobot constructs a Hamster with every device at its documented
// initial value and bpm defaulting to 60, matching _hamster_reset.
func NewRobot(index int, conn *connector.Connector) *Robot {
	r := &Robot{
		Index:     index,
		Devices:   newDeviceTable(),
		Connector: conn,
		bpm:       60,
		alive:     true,
	}
	r.snapshot.lineSpeed = 5
	r.snapshot.proximity = 2
	r.snapshot.bandWidth = 3
	return r
}

// SetBus attaches the event bus that line-tracer completion edges are
// published onto (spec §4.8). Optional; a nil bus means no publish.
func (r *Robot) SetBus(bus *eventbus.Bus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bus = bus
}

// Alive reports whether the robot is still registered with the runner.
func (r *Robot) Alive() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.alive
}

// SetRunning toggles the I/O goroutine's run flag; Dispose clears it so
// the goroutine can drain and exit.
func (r *Robot) SetRunning(v bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.running = v
}

func (r *Robot) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// Ready reports whether the first inbound packet has been decoded.
func (r *Robot) Ready() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ready
}

func (r *Robot) setReady() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ready = true
}

// Dispose marks the robot no longer alive; the runner drops it from its
// schedule and the I/O goroutine is expected to exit shortly after.
func (r *Robot) Dispose() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alive = false
	r.running = false
}

// Tempo sets the beats-per-minute used by Note's duration arithmetic.
// Per _hamster_tempo, non-positive values are ignored.
func (r *Robot) Tempo(bpm float64) {
	if bpm <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bpm = bpm
}

func (r *Robot) currentBPM() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bpm
}

// cancelLineTracerMode writes LineTracerMode to off. Recovered from
// original_source: every direct wheel command (_hamster_wheels,
// _hamster_left_wheel, _hamster_right_wheel, _hamster_stop) and every
// board-step entry point does this before touching the wheels, so an
// active passive line-tracer follow is silently cancelled the instant a
// direct wheel command is issued.
func (r *Robot) cancelLineTracerMode() {
	r.Devices[IdxLineTracerMode].Write(LineTracerOff)
}

// Wheels writes both wheel speeds, cancelling any pending line-tracer
// mode first.
func (r *Robot) Wheels(left, right int) {
	r.cancelLineTracerMode()
	r.Devices[IdxLeftWheel].Write(left)
	r.Devices[IdxRightWheel].Write(right)
}

// LeftWheel writes only the left wheel; still cancels line-tracer mode.
func (r *Robot) LeftWheel(v int) {
	r.cancelLineTracerMode()
	r.Devices[IdxLeftWheel].Write(v)
}

// RightWheel writes only the right wheel; still cancels line-tracer mode.
func (r *Robot) RightWheel(v int) {
	r.cancelLineTracerMode()
	r.Devices[IdxRightWheel].Write(v)
}

// Stop zeroes both wheels, cancelling any pending line-tracer mode.
func (r *Robot) Stop() {
	r.cancelLineTracerMode()
	r.Devices[IdxLeftWheel].Write(0)
	r.Devices[IdxRightWheel].Write(0)
}
