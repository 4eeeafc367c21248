// Package shared defines custom error types for the Roboid runtime.
//
// This file contains all runtime-wide error sentinels, categorized by
// functional area: port acquisition, handshake, device table, and
// runner lifecycle.
package shared

import "errors"

// Port Acquisition Errors
//
// These cover the serial transport's open/discovery path (spec §4.1/§7).

// ErrPortBusy indicates the candidate serial port is already held open
// by another process.
var ErrPortBusy = errors.New("serial port busy")

// ErrPortNotFound indicates the candidate serial port does not exist.
var ErrPortNotFound = errors.New("serial port not found")

// ErrPermissionDenied indicates the process lacks permission to open
// the candidate serial port.
var ErrPermissionDenied = errors.New("permission denied opening serial port")

// ErrNoAvailableBridge indicates every candidate port failed discovery
// or handshake; no bridge device was found.
var ErrNoAvailableBridge = errors.New("no available bridge")

// Device Table Errors
//
// These cover invalid arguments to device reads/writes (spec §7: "never
// crash" — callers are expected to treat these as programmer errors,
// not propagate them onto the wire).

// ErrUnknownDevice indicates a device id outside the robot's table.
var ErrUnknownDevice = errors.New("unknown device id")

// ErrIndexOutOfRange indicates an array device index outside its arity.
var ErrIndexOutOfRange = errors.New("device index out of range")

// Runner Lifecycle Errors

// ErrRunnerNotStarted indicates an operation required the scheduler to
// be running (e.g. WaitUntilReady) before it was started.
var ErrRunnerNotStarted = errors.New("runner not started")

// ErrAlreadyDisposed indicates an operation targeted a robot or runner
// that has already completed DisposeAll.
var ErrAlreadyDisposed = errors.New("already disposed")

// General Errors

// ErrInvalidInput indicates invalid parameters were provided to a function.
var ErrInvalidInput = errors.New("invalid input provided")
