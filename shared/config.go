// Package shared provides the ambient stack the Roboid runtime leans
// on throughout: environment-driven config, caller-tagged debug
// logging, sentinel errors, and reflection-based safe teardown.
//
// This file handles configuration through environment variables,
// particularly debug mode settings that control logging verbosity.
package shared

import (
	"os"
	"time"
)

// DEBUG_MODE controls debug logging throughout the runtime.
//
// When true, enables:
// - Detailed debug output with file/line information
// - Verbose error reporting
//
// This variable is set during startup based on the DEBUG environment
// variable and should not be modified at runtime.
var (
	DEBUG_MODE = false
)

const (
	MONGODB_MIN_POOL_SIZE = 2
	MONGODB_MAX_POOL_SIZE = 10

	EVENT_BUS_BUFFER_SIZE = 1000 // Buffer size per event-bus subscriber channel

	// SchedulerPeriod is the runner's fixed tick period (spec §4.5).
	SchedulerPeriod = 20 * time.Millisecond

	// IOThreadPeriod is the per-robot I/O goroutine's poll period (spec §4.4).
	IOThreadPeriod = 5 * time.Millisecond

	// DisposeGracePeriod bounds how long dispose_all waits for an I/O
	// goroutine to drain before the join deadline (spec §4.5/§5).
	DisposeGracePeriod = 1 * time.Second
)

// InitConfig initializes runtime configuration from environment variables.
//
// This should be called once during startup, before any serial port is
// opened.
//
// Environment Variables:
//   - DEBUG: Set to "true" to enable debug mode and verbose logging
func InitConfig() {
	DEBUG_MODE = os.Getenv("DEBUG") == "true"
}
