package hamster

// Board-step sub-states, shared by all three primitives. Only one runs
// at a time per robot; starting a new one overwrites boardState.
const (
	boardIdle = 0
)

const boardStepSpeed = 45

// BoardForward starts the "drive to and cross the next intersection"
// maneuver (original_source's _hamster_board_forward): cancels any
// line-tracer follow and drives both wheels forward.
func (r *Robot) BoardForward() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cancelLineTracerModeLocked()
	r.boardState = 1
	r.boardCount = 0
	r.boardKind = int(boardKindForward)
	r.writeWheelsLocked(boardStepSpeed, boardStepSpeed)
}

// BoardLeft starts the "spin until facing left at the next
// intersection" maneuver (_hamster_board_left).
func (r *Robot) BoardLeft() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cancelLineTracerModeLocked()
	r.boardState = 1
	r.boardCount = 0
	r.boardKind = int(boardKindLeft)
	r.writeWheelsLocked(-boardStepSpeed, boardStepSpeed)
}

// BoardRight starts the mirrored right turn (_hamster_board_right).
func (r *Robot) BoardRight() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cancelLineTracerModeLocked()
	r.boardState = 1
	r.boardCount = 0
	r.boardKind = int(boardKindRight)
	r.writeWheelsLocked(boardStepSpeed, -boardStepSpeed)
}

// boardDone reports whether the currently running board-step primitive
// has returned to idle; used as the WaitUntil predicate.
func (r *Robot) boardDone() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.boardState == boardIdle
}

// BoardDonePredicate returns the WaitUntil predicate for blocking until
// the currently running board-step primitive completes.
func (r *Robot) BoardDonePredicate() func() bool {
	return r.boardDone
}

// runBoardStep advances whichever board-step state machine is active,
// called once per decoded inbound packet with the fresh floor readings
// (spec §4.6). boardKind records which primitive boardState/boardCount
// belong to, since all three share those two fields and only one runs
// at a time per robot.
func (r *Robot) runBoardStep(leftFloor, rightFloor int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.boardState == boardIdle {
		return
	}

	switch boardKind(r.boardKind) {
	case boardKindForward:
		r.stepForwardLocked(leftFloor, rightFloor)
	case boardKindLeft:
		r.stepLeftLocked(leftFloor, rightFloor)
	case boardKindRight:
		r.stepRightLocked(leftFloor, rightFloor)
	}
}

type boardKind int

const (
	boardKindNone boardKind = iota
	boardKindForward
	boardKindLeft
	boardKindRight
)

// stepForwardLocked implements _hamster_board_forward_callback.
func (r *Robot) stepForwardLocked(leftFloor, rightFloor int) {
	diff := float64(leftFloor - rightFloor)

	switch r.boardState {
	case 1:
		if leftFloor < 50 && rightFloor < 50 {
			r.boardCount++
		} else {
			r.boardCount = 0
		}
		r.writeWheelsLocked(int(45+diff*0.25), int(45-diff*0.25))
		if r.boardCount >= 2 {
			r.boardCount = 0
			r.boardState = 2
		}
	case 2:
		r.writeWheelsLocked(int(45+diff*0.25), int(45-diff*0.25))
		r.boardCount++
		if r.boardCount >= 10 {
			r.writeWheelsLocked(0, 0)
			r.boardState = boardIdle
			r.boardCount = 0
		}
	}
}

// stepLeftLocked implements _hamster_board_left_callback.
func (r *Robot) stepLeftLocked(leftFloor, rightFloor int) {
	switch r.boardState {
	case 1:
		if leftFloor > 50 {
			r.boardCount++
		} else {
			r.boardCount = 0
		}
		if r.boardCount >= 2 {
			r.boardCount = 0
			r.boardState = 2
		}
	case 2:
		if leftFloor < 20 {
			r.boardCount = 0
			r.boardState = 3
		}
	case 3:
		if leftFloor < 20 {
			r.boardCount++
		} else {
			r.boardCount = 0
		}
		if r.boardCount >= 2 {
			r.boardCount = 0
			r.boardState = 4
		}
	case 4:
		if leftFloor > 50 {
			r.boardState = 5
		}
	case 5:
		diff := float64(leftFloor - rightFloor)
		if diff <= -15 {
			r.writeWheelsLocked(int(diff*0.5), int(-diff*0.5))
		} else {
			r.writeWheelsLocked(0, 0)
			r.boardState = boardIdle
		}
	}
}

// stepRightLocked implements _hamster_board_right_callback: the mirror
// of stepLeftLocked using right_floor as the primary sensor.
func (r *Robot) stepRightLocked(leftFloor, rightFloor int) {
	switch r.boardState {
	case 1:
		if rightFloor > 50 {
			r.boardCount++
		} else {
			r.boardCount = 0
		}
		if r.boardCount >= 2 {
			r.boardCount = 0
			r.boardState = 2
		}
	case 2:
		if rightFloor < 20 {
			r.boardCount = 0
			r.boardState = 3
		}
	case 3:
		if rightFloor < 20 {
			r.boardCount++
		} else {
			r.boardCount = 0
		}
		if r.boardCount >= 2 {
			r.boardCount = 0
			r.boardState = 4
		}
	case 4:
		if rightFloor > 50 {
			r.boardState = 5
		}
	case 5:
		diff := float64(rightFloor - leftFloor)
		if diff <= -15 {
			r.writeWheelsLocked(int(-diff*0.5), int(diff*0.5))
		} else {
			r.writeWheelsLocked(0, 0)
			r.boardState = boardIdle
		}
	}
}

// writeWheelsLocked writes both wheel devices directly. Caller must
// hold r.mu; used internally by board-step transitions, which already
// cancelled line-tracer mode at entry and must not re-cancel it every
// tick.
func (r *Robot) writeWheelsLocked(left, right int) {
	r.Devices[IdxLeftWheel].Write(left)
	r.Devices[IdxRightWheel].Write(right)
}

// cancelLineTracerModeLocked is cancelLineTracerMode for callers
// already holding r.mu.
func (r *Robot) cancelLineTracerModeLocked() {
	r.Devices[IdxLineTracerMode].Write(LineTracerOff)
}
