package hamster

import (
	"time"

	"roboid/shared"
)

// ioPeriod is the per-robot I/O goroutine's poll interval (~200 Hz,
// spec §4.4).
const ioPeriod = 5 * time.Millisecond

// drainIterations bounds how many extra iterations the I/O goroutine
// runs after shutdown is requested, giving an in-flight reply a chance
// to go out before the port closes (spec §4.4).
const drainIterations = 5

// RunIO is the per-robot I/O goroutine: reply-on-receipt cadence at
// ioPeriod. While running, every inbound packet that completes a full
// frame is decoded into the robot's sensor devices and immediately
// answered with the latest motoring snapshot. Returns once Dispose has
// stopped the robot and the drain window has elapsed.
func RunIO(r *Robot) {
	for {
		running := r.Running()

		if received := r.pollOnce(); !received {
			// nothing to reply to this tick
		}

		if !running {
			for i := 0; i < drainIterations; i++ {
				r.pollOnce()
				time.Sleep(ioPeriod)
			}
			return
		}
		time.Sleep(ioPeriod)
	}
}

// pollOnce reads at most one framed packet and, if one arrived,
// decodes it and replies with the current motoring snapshot. Returns
// whether a packet was consumed.
func (r *Robot) pollOnce() bool {
	conn := r.Connector
	if conn == nil || conn.Port == nil {
		return false
	}

	packet := conn.Port.ReadUntil(Delim)
	conn.ObserveFrame(packet)
	if len(packet) != PacketLength {
		return false
	}

	reading := decodeSensoryPacket(packet)
	r.ApplySensoryReading(reading)

	snapshot, address := r.Snapshot()
	outbound := encodeMotoringPacket(snapshot, address)
	if !conn.Port.Write(outbound) {
		shared.DebugPrint("hamster[%d]: write failed", r.Index)
	}
	return true
}
