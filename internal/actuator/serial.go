package actuator

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"go.bug.st/serial"
)

// Motor board command bytes.
const (
	cmdStepForward  = 'F'
	cmdStepBackward = 'B'
	cmdSolenoidOn   = 'S'
	cmdSolenoidOff  = 'R'
)

// SerialOptions describes the serial link to the motor board.
type SerialOptions struct {
	Port     string
	BaudRate int
	DataBits int
	StopBits int
	Parity   string
}

// Mode converts the options into a serial.Mode, applying defaults of 9600
// baud, 8 data bits, one stop bit and no parity.
func (o SerialOptions) Mode() (*serial.Mode, error) {
	mode := &serial.Mode{
		BaudRate: o.BaudRate,
		DataBits: o.DataBits,
	}
	if mode.BaudRate <= 0 {
		mode.BaudRate = 9600
	}
	if mode.DataBits == 0 {
		mode.DataBits = 8
	}
	if mode.DataBits < 5 || mode.DataBits > 8 {
		return nil, fmt.Errorf("invalid data bits %d: must be between 5 and 8", mode.DataBits)
	}

	switch o.StopBits {
	case 0, 1:
		mode.StopBits = serial.OneStopBit
	case 2:
		mode.StopBits = serial.TwoStopBits
	default:
		return nil, fmt.Errorf("invalid stop bits %d: supported values are 1 or 2", o.StopBits)
	}

	switch strings.ToUpper(strings.TrimSpace(o.Parity)) {
	case "", "N", "NONE":
		mode.Parity = serial.NoParity
	case "E", "EVEN":
		mode.Parity = serial.EvenParity
	case "O", "ODD":
		mode.Parity = serial.OddParity
	default:
		return nil, fmt.Errorf("unsupported parity %q: expected none, even or odd", o.Parity)
	}
	return mode, nil
}

// SerialDriver sends single-byte commands to a motor board.
type SerialDriver struct {
	mu   sync.Mutex
	port io.WriteCloser
}

// NewSerialDriver drives the board on an already open port.
func NewSerialDriver(port io.WriteCloser) *SerialDriver {
	return &SerialDriver{port: port}
}

// OpenSerial opens the port described by opts.
func OpenSerial(opts SerialOptions) (*SerialDriver, error) {
	mode, err := opts.Mode()
	if err != nil {
		return nil, err
	}
	port, err := serial.Open(opts.Port, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", opts.Port, err)
	}
	return NewSerialDriver(port), nil
}

func (d *SerialDriver) write(cmd byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, err := d.port.Write([]byte{cmd}); err != nil {
		return fmt.Errorf("failed to write %q to motor board: %w", cmd, err)
	}
	return nil
}

// Step sends one step pulse.
func (d *SerialDriver) Step(forward bool) error {
	if forward {
		return d.write(cmdStepForward)
	}
	return d.write(cmdStepBackward)
}

// SetSolenoid switches the solenoid relay.
func (d *SerialDriver) SetSolenoid(on bool) error {
	if on {
		return d.write(cmdSolenoidOn)
	}
	return d.write(cmdSolenoidOff)
}

// Close releases the solenoid and closes the port.
func (d *SerialDriver) Close() error {
	_ = d.write(cmdSolenoidOff)
	return d.port.Close()
}
