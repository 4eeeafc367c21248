package runner

import (
	"testing"
	"time"

	"roboid/hamster"
)

// zeroSensoryPacket returns a full-length inbound packet of all hex
// zeros, enough to drive a robot's Ready() transition via the normal
// decode/apply path.
func zeroSensoryPacket() []byte {
	p := make([]byte, hamster.PacketLength-1)
	for i := range p {
		p[i] = '0'
	}
	return append(p, hamster.Delim)
}

func TestTickCountsEachRobotReadyOnlyOnce(t *testing.T) {
	r := New()
	robotA := hamster.NewRobot(0, nil)
	robotB := hamster.NewRobot(1, nil)
	r.Register(robotA)
	r.Register(robotB)

	packet := zeroSensoryPacket()
	robotA.ApplyRawSensoryPacket(packet)

	for i := 0; i < 5; i++ {
		r.tick()
	}

	if r.connectionChecks != 1 {
		t.Fatalf("connectionChecks = %d, want 1 (only robot A ever decoded a packet)", r.connectionChecks)
	}
}

func TestWaitUntilReadyWaitsForEveryRobot(t *testing.T) {
	r := New()
	robotA := hamster.NewRobot(0, nil)
	robotB := hamster.NewRobot(1, nil)
	r.Register(robotA)
	r.Register(robotB)

	packet := zeroSensoryPacket()
	robotA.ApplyRawSensoryPacket(packet)
	r.tick()

	done := make(chan struct{})
	go func() {
		r.WaitUntilReady()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("WaitUntilReady returned before every registered robot checked in")
	case <-time.After(50 * time.Millisecond):
	}

	robotB.ApplyRawSensoryPacket(packet)
	r.tick()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("WaitUntilReady did not return once every robot checked in")
	}
}
