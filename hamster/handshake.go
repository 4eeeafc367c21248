package hamster

import (
	"strings"
	"time"

	"roboid/serial"
)

// handshakeQuery is the literal 3-byte probe written to a candidate
// port once continuous framing has started (spec §4.2 step 3).
const handshakeQuery = "FF\r"

// handshakeReadTimeout bounds how long CheckConnection waits for the
// comma-separated reply after writing the query.
const handshakeReadTimeout = 300 * time.Millisecond

// CheckConnection implements the Hamster-specific
// connector.CheckConnectionFunc: write "FF\r" and accept a reply of the
// form "FF,<model-name>,04,<x>,<12-hex-address>\r" iff field 1 equals
// "Hamster" (case-insensitive) and field 2 equals "04" (spec §6).
func CheckConnection(port *serial.Port) (address string, ok bool) {
	if !port.Write([]byte(handshakeQuery)) {
		return "", false
	}

	deadline := time.Now().Add(handshakeReadTimeout)
	var reply []byte
	for time.Now().Before(deadline) {
		reply = port.ReadUntil(Delim)
		if reply != nil {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	if reply == nil {
		return "", false
	}

	line := strings.TrimRight(string(reply), "\r")
	fields := strings.Split(line, ",")
	if len(fields) < 5 {
		return "", false
	}
	if !strings.EqualFold(fields[1], "Hamster") || fields[2] != "04" {
		return "", false
	}
	return fields[4], true
}
