// Package serial provides the byte-stream transport the Roboid connector
// builds on: enumerate ports, open with the bridge's fixed link settings,
// read-until-delimiter with internal buffering, write, and purge.
//
// It wraps go.bug.st/serial so the rest of the core never touches a
// platform-specific ioctl/termios surface directly.
package serial

import (
	"sync"
	"time"

	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"

	"roboid/shared"
)

const (
	// BaudRate115200 is the only link speed the Hamster bridge speaks.
	BaudRate115200 = 115200

	// readTimeout bounds every OS-level read so a slow or silent link
	// never wedges the per-robot I/O goroutine; see spec §4.1.
	readTimeout = 100 * time.Millisecond

	initialBufferSize = 256
)

// PortInfo describes one candidate serial device, enriched with its USB
// identity metadata (VID/PID) as reported by the enumerator.
type PortInfo struct {
	Name string
	IsUSB bool
	VID   string
	PID   string
}

// ListPorts enumerates candidate serial ports via the platform port
// enumerator, same idiom used across the pack's other USB-serial
// integrations.
func ListPorts() ([]PortInfo, error) {
	details, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, err
	}
	out := make([]PortInfo, 0, len(details))
	for _, d := range details {
		out = append(out, PortInfo{
			Name:  d.Name,
			IsUSB: d.IsUSB,
			VID:   d.VID,
			PID:   d.PID,
		})
	}
	return out, nil
}

// Port is a line-framed serial connection: an open go.bug.st/serial.Port
// plus the growable accumulation buffer ReadUntil needs to assemble a
// complete line out of however many bytes the OS hands back per read.
type Port struct {
	name string
	port serial.Port

	buf    []byte
	buflen int
}

// flowControlWarnOnce logs the hardware-flow-control limitation below
// exactly once per process, not once per Open call.
var flowControlWarnOnce sync.Once

// Open opens name at the Hamster bridge's fixed link settings: 115 200
// baud, 8N1, RTS+DTR asserted. The spec (§4.1/§6) also calls for
// hardware RTS/CTS flow control, but go.bug.st/serial's Mode exposes
// only BaudRate/DataBits/Parity/StopBits and has no knob for it; this
// is logged once rather than silently dropped.
func Open(name string) (*Port, error) {
	flowControlWarnOnce.Do(func() {
		shared.DebugPrint("serial: go.bug.st/serial has no RTS/CTS hardware flow control setting; only RTS/DTR line levels are asserted")
	})

	mode := &serial.Mode{
		BaudRate: BaudRate115200,
		DataBits: 8,
		StopBits: serial.OneStopBit,
		Parity:   serial.NoParity,
	}

	sp, err := serial.Open(name, mode)
	if err != nil {
		return nil, err
	}
	if err := sp.SetRTS(true); err != nil {
		sp.Close()
		return nil, err
	}
	if err := sp.SetDTR(true); err != nil {
		sp.Close()
		return nil, err
	}
	if err := sp.SetReadTimeout(readTimeout); err != nil {
		sp.Close()
		return nil, err
	}

	return &Port{
		name: name,
		port: sp,
		buf:  make([]byte, initialBufferSize),
	}, nil
}

// Name returns the platform port name this Port was opened on.
func (p *Port) Name() string { return p.name }

// Close releases the underlying OS handle.
func (p *Port) Close() error {
	if p == nil || p.port == nil {
		return nil
	}
	return p.port.Close()
}

// Clear purges both I/O directions and resets the accumulation buffer,
// used after a connection-lost timeout and before the open-sequence
// handshake starts fresh on a new candidate port.
func (p *Port) Clear() {
	if p.port != nil {
		p.port.ResetInputBuffer()
		p.port.ResetOutputBuffer()
	}
	p.buflen = 0
}

// Write sends bytes verbatim and reports whether the write fully
// succeeded.
func (p *Port) Write(b []byte) bool {
	n, err := p.port.Write(b)
	return err == nil && n == len(b)
}

// ReadUntil performs one non-blocking-in-spirit poll of the OS read
// buffer: it reads whatever is currently available (bounded by the
// configured read timeout), appends it to the internal accumulation
// buffer (growing geometrically as needed), scans for delim, and on a
// hit returns everything up to and including delim, shifting any
// remainder down for the next call. If no delimiter is present yet, it
// returns nil without consuming anything.
func (p *Port) ReadUntil(delim byte) []byte {
	chunk := make([]byte, 256)
	n, err := p.port.Read(chunk)
	if err != nil || n == 0 {
		return p.extractLine(delim)
	}
	p.append(chunk[:n])
	return p.extractLine(delim)
}

func (p *Port) append(chunk []byte) {
	needed := p.buflen + len(chunk)
	if needed > len(p.buf) {
		newCap := len(p.buf) * 2
		if newCap < needed {
			newCap = needed
		}
		grown := make([]byte, newCap)
		copy(grown, p.buf[:p.buflen])
		p.buf = grown
	}
	copy(p.buf[p.buflen:], chunk)
	p.buflen += len(chunk)
}

func (p *Port) extractLine(delim byte) []byte {
	idx := -1
	for i := 0; i < p.buflen; i++ {
		if p.buf[i] == delim {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	line := make([]byte, idx+1)
	copy(line, p.buf[:idx+1])

	remaining := p.buflen - (idx + 1)
	copy(p.buf, p.buf[idx+1:p.buflen])
	p.buflen = remaining

	return line
}
