package actuator

import (
	"log/slog"
	"sync"
)

// Stepper issues single motor steps.
type Stepper interface {
	Step(forward bool) error
}

// SolenoidDriver switches the solenoid.
type SolenoidDriver interface {
	SetSolenoid(on bool) error
}

// Driver is the hardware behind a Server.
type Driver interface {
	Stepper
	SolenoidDriver
	Close() error
}

// SimDriver is an in-memory Driver that tracks position and solenoid state.
type SimDriver struct {
	mu       sync.Mutex
	position int64
	steps    int64
	pulses   int
	on       bool
	logger   *slog.Logger
}

// NewSimDriver returns a SimDriver at position zero. A nil logger uses
// slog.Default().
func NewSimDriver(logger *slog.Logger) *SimDriver {
	if logger == nil {
		logger = slog.Default()
	}
	return &SimDriver{logger: logger}
}

// Step moves the simulated carriage by one step.
func (d *SimDriver) Step(forward bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if forward {
		d.position++
	} else {
		d.position--
	}
	d.steps++
	return nil
}

// SetSolenoid records the solenoid state. Each off-to-on edge counts as one
// pulse.
func (d *SimDriver) SetSolenoid(on bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if on && !d.on {
		d.pulses++
	}
	d.on = on
	d.logger.Debug("solenoid", "on", on)
	return nil
}

// Position returns the net step count.
func (d *SimDriver) Position() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.position
}

// Steps returns the total number of steps issued in either direction.
func (d *SimDriver) Steps() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.steps
}

// Pulses returns how many times the solenoid was switched on.
func (d *SimDriver) Pulses() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pulses
}

// SolenoidOn reports the current solenoid state.
func (d *SimDriver) SolenoidOn() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.on
}

// Close logs the final position.
func (d *SimDriver) Close() error {
	d.logger.Info("simulated driver closed", "position", d.Position(), "pulses", d.Pulses())
	return nil
}
