package hamster

import "roboid/eventbus"

// LineTracerCompleted is published on the robot's event bus the tick a
// requested line-tracer maneuver finishes (spec §4.8).
type LineTracerCompleted struct {
	RobotIndex int
	Mode       int
}

// lineTracerFlagBit is toggled once each time a nonzero line-tracer
// mode is freshly written, giving the bridge firmware an edge to key
// off (spec §4.4).
const lineTracerFlagBit = 0x80

// inbound line-tracer state bits (spec §4.4).
const (
	lineTracerBusyBit = 0x40
)

const (
	lineEventIdle = iota
	lineEventArmed
	lineEventWatching
)

// lineTracerCompletes reports whether mode is one of the event-completing
// maneuvers (spec §6: 4-7 on black, 8-14 on white) as opposed to a
// passive-follow mode (1-3), which never raises a completion event and
// so must never arm or be waited on.
func lineTracerCompletes(mode int) bool {
	return mode >= 4 && mode <= 14
}

// armLineTracerEventLocked marks that the outbound packet just carried
// a freshly-written, nonzero line-tracer mode: the next inbound busy
// bit starts the completion watch. Caller must hold r.mu.
func (r *Robot) armLineTracerEventLocked() {
	r.lineTracerEvent = lineEventArmed
}

// observeLineTracerByte advances the completion state machine from one
// inbound sensory byte (spec §4.4's three-variable state machine).
// Returns true exactly on the tick the maneuver completes, and
// publishes LineTracerCompleted onto the robot's event bus if one is
// attached.
func (r *Robot) observeLineTracerByte(incoming int) bool {
	r.mu.Lock()
	completed := false
	if r.lineTracerEvent == lineEventArmed {
		if incoming&lineTracerBusyBit != 0 && incoming != lineTracerBusyBit {
			r.lineTracerEvent = lineEventWatching
		}
	}
	if r.lineTracerEvent == lineEventWatching {
		if incoming != r.lineTracerState {
			r.lineTracerState = incoming
			r.Devices[IdxLineTracerState].Put(incoming)
			if incoming == lineTracerBusyBit {
				r.lineTracerEvent = lineEventIdle
				completed = true
			}
		}
	}
	bus := r.bus
	index := r.Index
	r.mu.Unlock()

	if completed && bus != nil {
		bus.Publish(eventbus.New(eventbus.TypeLineTracerCompleted, LineTracerCompleted{
			RobotIndex: index,
			Mode:       r.Devices[IdxLineTracerMode].Read(),
		}))
	}
	return completed
}

// lineTracerDone reports whether the last-armed line-tracer maneuver
// has completed; used as the WaitUntil predicate for a blocking
// LineTracerMode call.
func (r *Robot) lineTracerDone() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lineTracerEvent == lineEventIdle
}

// SetLineTracerMode writes the requested mode/speed devices and, for an
// event-completing mode, arms the completion watch at once so a
// blocking caller does not see the previous idle state. The flag-bit
// toggle happens in BuildMotoringSnapshot, which observes the Written
// edge on IdxLineTracerMode and re-arms the watch (spec §4.5 step 4).
func (r *Robot) SetLineTracerMode(mode, speed int) {
	r.Devices[IdxLineTracerMode].Write(mode)
	r.Devices[IdxLineTracerSpeed].Write(speed)
	if lineTracerCompletes(mode) {
		r.mu.Lock()
		r.armLineTracerEventLocked()
		r.mu.Unlock()
	}
}

// LineTracerDonePredicate returns the WaitUntil predicate for blocking
// until the currently-armed line-tracer maneuver completes.
func (r *Robot) LineTracerDonePredicate() func() bool {
	return r.lineTracerDone
}

// LineTracerModeCompletes reports whether mode is one of the
// event-completing maneuvers (4-14) that LineTracerMode should block on,
// as opposed to a passive-follow mode (1-3) or off (0), which return
// immediately (spec §4.4/§6).
func LineTracerModeCompletes(mode int) bool {
	return lineTracerCompletes(mode)
}
