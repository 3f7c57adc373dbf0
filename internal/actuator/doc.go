// Package actuator implements the remote side of the goalie link: it accepts
// one control connection, decodes packets and drives the stepper motor and
// the solenoid.
//
// # State
//
// A Server starts uninitialized. The first SM packet records the axis end
// points and makes it ready; every other packet received before that is
// rejected with ErrNotReady and ignored. Once ready it stays ready for the
// life of the process, across reconnects, and later SM packets are ignored.
//
// # Motion
//
// A move is converted to a signed step count (see Kinematics) and handed to
// the Motor's long-lived worker goroutine, which steps one pulse at a time.
// While a move is pending or running a second MM is rejected with ErrBusy;
// KM sends on the worker's stop channel, which it checks between pulses and
// during the inter-step delay. AS pulses go to the Solenoid's worker the same
// way, and a second pulse while the solenoid is energised is rejected.
//
// # Drivers
//
// Hardware is reached through a Driver. SimDriver only counts pulses and is
// used for bench runs and tests; SerialDriver forwards single-byte commands
// to a motor board over a serial port:
//
//	'F'  one step forward
//	'B'  one step backward
//	'S'  solenoid on
//	'R'  solenoid off (release)
package actuator
