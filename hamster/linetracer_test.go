package hamster

import "testing"

func TestLineTracerEventCompletesOnBusyReturnToIdle(t *testing.T) {
	r := NewRobot(0, nil)
	r.armLineTracerEventLocked()

	if r.observeLineTracerByte(0x40) {
		t.Fatal("should not complete while still showing busy")
	}
	if r.lineTracerEvent != lineEventArmed {
		t.Fatalf("event = %d, want still armed (a bare busy byte does not start the watch)", r.lineTracerEvent)
	}

	if r.observeLineTracerByte(0x44) {
		t.Fatal("intermediate state change should not complete the maneuver")
	}

	if !r.observeLineTracerByte(0x40) {
		t.Fatal("return to busy-only byte should complete the maneuver")
	}
	if r.lineTracerEvent != lineEventIdle {
		t.Fatalf("event = %d, want idle after completion", r.lineTracerEvent)
	}
}

func TestLineTracerDoneReflectsEventState(t *testing.T) {
	r := NewRobot(0, nil)
	if !r.lineTracerDone() {
		t.Fatal("fresh robot should report line tracer done")
	}
	r.armLineTracerEventLocked()
	if r.lineTracerDone() {
		t.Fatal("armed robot should not report done")
	}
}

func TestSetLineTracerModeWritesBothDevices(t *testing.T) {
	r := NewRobot(0, nil)
	r.SetLineTracerMode(4, 7)
	if got := r.Devices[IdxLineTracerMode].Read(); got != 4 {
		t.Fatalf("mode = %d, want 4", got)
	}
	if got := r.Devices[IdxLineTracerSpeed].Read(); got != 7 {
		t.Fatalf("speed = %d, want 7", got)
	}
}

func TestBuildMotoringSnapshotArmsEventOnFreshNonzeroMode(t *testing.T) {
	r := NewRobot(0, nil)
	r.SetLineTracerMode(4, 5)
	r.BuildMotoringSnapshot()
	if r.lineTracerEvent != lineEventArmed {
		t.Fatalf("event = %d, want armed after a fresh nonzero mode write", r.lineTracerEvent)
	}
}

func TestBuildMotoringSnapshotDoesNotArmOnZeroMode(t *testing.T) {
	r := NewRobot(0, nil)
	r.SetLineTracerMode(0, 5)
	r.BuildMotoringSnapshot()
	if r.lineTracerEvent != lineEventIdle {
		t.Fatalf("event = %d, want idle when mode is off", r.lineTracerEvent)
	}
}

func TestBuildMotoringSnapshotDoesNotArmOnPassiveMode(t *testing.T) {
	r := NewRobot(0, nil)
	r.SetLineTracerMode(2, 5)
	r.BuildMotoringSnapshot()
	if r.lineTracerEvent != lineEventIdle {
		t.Fatalf("event = %d, want idle for a passive-follow mode", r.lineTracerEvent)
	}
	if !LineTracerModeCompletes(4) {
		t.Fatal("mode 4 should be a completing maneuver")
	}
	if LineTracerModeCompletes(2) {
		t.Fatal("mode 2 is passive-follow, should not complete")
	}
}
