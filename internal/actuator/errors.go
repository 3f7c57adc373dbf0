package actuator

import "errors"

var (
	// ErrNotReady is returned for MM, KM and AS packets received before SM.
	ErrNotReady = errors.New("actuator not set up")

	// ErrBusy is returned when a move or pulse is requested while one is
	// already running.
	ErrBusy = errors.New("actuator busy")

	// ErrClosed is returned for requests made after the worker stopped.
	ErrClosed = errors.New("actuator closed")
)
