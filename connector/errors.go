package connector

import "errors"

// ErrPortNotAvailable covers port-busy, port-not-found, and
// permission-denied failures, which all collapse to a single
// not-available condition at the connector's API surface (spec §4.1/§7).
var ErrPortNotAvailable = errors.New("connector: serial port not available")

// ErrHandshakeMismatch means the discovery sequence did not see a
// matching probe/handshake on this candidate port; the caller should
// silently advance to the next candidate (spec §4.2/§7).
var ErrHandshakeMismatch = errors.New("connector: handshake mismatch")

// ErrNoAvailableBridge means every candidate port failed discovery.
var ErrNoAvailableBridge = errors.New("connector: no available bridge")
