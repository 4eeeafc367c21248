package hamster

import "testing"

func TestBoardForwardEntryState(t *testing.T) {
	r := NewRobot(0, nil)
	r.Devices[IdxLineTracerMode].Write(4)
	r.BoardForward()

	if r.boardState != 1 || r.boardCount != 0 {
		t.Fatalf("state=%d count=%d, want 1,0", r.boardState, r.boardCount)
	}
	if got := r.Devices[IdxLeftWheel].Read(); got != boardStepSpeed {
		t.Fatalf("leftWheel = %d, want %d", got, boardStepSpeed)
	}
	if got := r.Devices[IdxLineTracerMode].Read(); got != 0 {
		t.Fatalf("line tracer mode = %d, want cancelled to 0", got)
	}
}

func TestBoardForwardCompletesAfterCrossing(t *testing.T) {
	r := NewRobot(0, nil)
	r.BoardForward()

	// state 1: two consecutive ticks with both floors dark
	r.runBoardStep(10, 10)
	r.runBoardStep(10, 10)
	if r.boardState != 2 {
		t.Fatalf("state = %d, want 2 after seeking black line", r.boardState)
	}

	for i := 0; i < 9; i++ {
		r.runBoardStep(10, 10)
		if r.boardState != 2 {
			t.Fatalf("tick %d: state = %d, want still 2", i, r.boardState)
		}
	}
	r.runBoardStep(10, 10)
	if r.boardState != boardIdle {
		t.Fatalf("state = %d, want idle after 10 crossing ticks", r.boardState)
	}
	if got := r.Devices[IdxLeftWheel].Read(); got != 0 {
		t.Fatalf("leftWheel = %d, want 0 after finish", got)
	}
}

func TestBoardForwardResetsCountOnBrightFloor(t *testing.T) {
	r := NewRobot(0, nil)
	r.BoardForward()
	r.runBoardStep(10, 10)
	r.runBoardStep(80, 80) // bright: resets count
	if r.boardState != 1 || r.boardCount != 0 {
		t.Fatalf("state=%d count=%d, want to stay in state 1 with count reset", r.boardState, r.boardCount)
	}
}

func TestBoardLeftFullSequence(t *testing.T) {
	r := NewRobot(0, nil)
	r.BoardLeft()

	// state 1: two consecutive ticks with left_floor > 50
	r.runBoardStep(60, 0)
	r.runBoardStep(60, 0)
	if r.boardState != 2 {
		t.Fatalf("state = %d, want 2", r.boardState)
	}

	r.runBoardStep(10, 0) // state 2 -> 3
	if r.boardState != 3 {
		t.Fatalf("state = %d, want 3", r.boardState)
	}

	r.runBoardStep(10, 0)
	r.runBoardStep(10, 0) // state 3 -> 4
	if r.boardState != 4 {
		t.Fatalf("state = %d, want 4", r.boardState)
	}

	r.runBoardStep(60, 0) // state 4 -> 5
	if r.boardState != 5 {
		t.Fatalf("state = %d, want 5", r.boardState)
	}

	r.runBoardStep(60, 50) // diff = 10 > -15, finish
	if r.boardState != boardIdle {
		t.Fatalf("state = %d, want idle", r.boardState)
	}
}

func TestBoardRightMirrorsLeft(t *testing.T) {
	r := NewRobot(0, nil)
	r.BoardRight()
	if got := r.Devices[IdxLeftWheel].Read(); got != boardStepSpeed {
		t.Fatalf("leftWheel = %d, want %d", got, boardStepSpeed)
	}
	if got := r.Devices[IdxRightWheel].Read(); got != -boardStepSpeed {
		t.Fatalf("rightWheel = %d, want %d", got, -boardStepSpeed)
	}

	r.runBoardStep(0, 60)
	r.runBoardStep(0, 60)
	if r.boardState != 2 {
		t.Fatalf("state = %d, want 2", r.boardState)
	}
}
