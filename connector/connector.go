// Package connector implements the Framer/Connector state machine: given
// an open serial port, determine whether the peer is the expected
// device class, begin continuous framing, and track connection
// liveness (spec §4.2).
package connector

import (
	"time"

	"roboid/eventbus"
	"roboid/serial"
	"roboid/shared"
)

// State is one point in the connector's lifecycle.
type State int

const (
	StateNone State = iota
	StateConnecting
	StateConnected
	StateConnectionLost
	StateDisconnected
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateNone:
		return "None"
	case StateConnecting:
		return "Connecting"
	case StateConnected:
		return "Connected"
	case StateConnectionLost:
		return "ConnectionLost"
	case StateDisconnected:
		return "Disconnected"
	case StateDisposed:
		return "Disposed"
	default:
		return "Unknown"
	}
}

// livenessTimeout is how long a connected connector tolerates silence
// (no length-matching packet) before declaring connection lost.
const livenessTimeout = 100 * time.Millisecond

// discoveryReadDeadline bounds how long the open sequence waits to
// accumulate its three probe packets on one candidate port.
const discoveryReadDeadline = 300 * time.Millisecond

// CheckConnectionFunc performs the class-specific handshake (spec §4.2
// step 3) over an already-open, already-framing port. It returns the
// captured peer address and whether the handshake matched.
type CheckConnectionFunc func(port *serial.Port) (address string, ok bool)

// Connector owns one robot's serial link and framing/liveness state.
type Connector struct {
	Tag          string
	RobotIndex   int
	Port         *serial.Port
	PacketLength int
	Delim        byte

	Address string
	Found   bool

	state      State
	lastLiveAt time.Time
	bus        *eventbus.Bus
}

// Open runs the discovery/open sequence on one candidate port name
// (spec §4.2 steps 1-3): open at the standard settings, purge, read
// three probe packets, and on a full-length third packet invoke
// checkConn. Returns a Connector in StateConnected on success.
func Open(portName string, packetLength int, delim byte, tag string, robotIndex int, bus *eventbus.Bus, checkConn CheckConnectionFunc) (*Connector, error) {
	port, err := serial.Open(portName)
	if err != nil {
		shared.DebugPrint("%s[%d]: open %s failed: %v", tag, robotIndex, portName, err)
		return nil, ErrPortNotAvailable
	}

	c := &Connector{
		Tag:          tag,
		RobotIndex:   robotIndex,
		Port:         port,
		PacketLength: packetLength,
		Delim:        delim,
		bus:          bus,
	}
	c.transition(StateConnecting)

	port.Clear()

	packets := c.readProbePackets()
	if len(packets) < 3 {
		port.Close()
		c.transition(StateDisconnected)
		return nil, ErrHandshakeMismatch
	}

	second, third := packets[1], packets[2]
	if len(second) == 0 {
		port.Close()
		c.transition(StateDisconnected)
		return nil, ErrHandshakeMismatch
	}
	// Step 2 accepts either a full-length or a short (2-byte) third
	// packet, but only a full packet carries enough to proceed to the
	// handshake (spec §4.2 step 3: "If a full packet arrived...").
	if len(third) != packetLength {
		port.Close()
		c.transition(StateDisconnected)
		return nil, ErrHandshakeMismatch
	}

	address, ok := checkConn(port)
	if !ok {
		port.Close()
		c.transition(StateDisconnected)
		return nil, ErrHandshakeMismatch
	}

	c.Address = address
	c.Found = true
	c.lastLiveAt = time.Now()
	c.transition(StateConnected)
	return c, nil
}

func (c *Connector) readProbePackets() [][]byte {
	var packets [][]byte
	deadline := time.Now().Add(discoveryReadDeadline)
	for len(packets) < 3 && time.Now().Before(deadline) {
		line := c.Port.ReadUntil(c.Delim)
		if line != nil {
			packets = append(packets, line)
			continue
		}
		time.Sleep(5 * time.Millisecond)
	}
	return packets
}

// ObserveFrame is called once per per-robot I/O iteration with the
// result of the framing read_until. A length-matching packet resets
// the liveness timer; anything else, while connected, is checked
// against the timeout and may transition to ConnectionLost (spec §4.2).
func (c *Connector) ObserveFrame(packet []byte) {
	if len(packet) == c.PacketLength {
		c.lastLiveAt = time.Now()
		if c.state == StateConnectionLost {
			c.transition(StateConnected)
		}
		return
	}
	if c.state == StateConnected && time.Since(c.lastLiveAt) > livenessTimeout {
		c.Port.Clear()
		c.transition(StateConnectionLost)
	}
}

// State returns the connector's current lifecycle state.
func (c *Connector) State() State { return c.state }

// Close releases the port and transitions to Disposed.
func (c *Connector) Close() {
	c.Port.Close()
	c.transition(StateDisposed)
}

func (c *Connector) transition(to State) {
	from := c.state
	c.state = to
	shared.DebugPrint("%s[%d]: %s -> %s", c.Tag, c.RobotIndex, from, to)
	if c.bus != nil {
		c.bus.Publish(eventbus.New(eventbus.TypeConnectionStateChanged, ConnectionStateChanged{
			RobotIndex: c.RobotIndex,
			From:       from.String(),
			To:         to.String(),
		}))
	}
}

// ConnectionStateChanged is published on the event bus on every
// connector state transition (spec §4.2).
type ConnectionStateChanged struct {
	RobotIndex int
	From       string
	To         string
}
