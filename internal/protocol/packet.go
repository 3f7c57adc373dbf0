package protocol

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ironsheep/robot-goalie/internal/geometry"
)

var (
	// ErrUnknownPacket is returned for a line with an unrecognised token.
	ErrUnknownPacket = errors.New("unknown packet")

	// ErrMalformedPacket is returned when a known packet has bad fields.
	ErrMalformedPacket = errors.New("malformed packet")
)

// Kind is the leading token of a packet.
type Kind string

const (
	KindSetup  Kind = "SM"
	KindMove   Kind = "MM"
	KindKill   Kind = "KM"
	KindStrike Kind = "AS"
)

// Packet is one actuator command.
type Packet interface {
	Kind() Kind
	fields() []string
}

// Setup defines the axis end points and the robot's starting position.
type Setup struct {
	Axis1 geometry.Point
	Axis2 geometry.Point
	Robot geometry.Point
}

// Move drives the robot from its current position toward Target.
type Move struct {
	Robot  geometry.Point
	Target geometry.Point
}

// Kill stops the motor immediately.
type Kill struct{}

// Strike energises the solenoid for Duration. Only whole milliseconds are
// sent.
type Strike struct {
	Duration time.Duration
}

func (Setup) Kind() Kind  { return KindSetup }
func (Move) Kind() Kind   { return KindMove }
func (Kill) Kind() Kind   { return KindKill }
func (Strike) Kind() Kind { return KindStrike }

func (p Setup) fields() []string {
	return []string{p.Axis1.String(), p.Axis2.String(), p.Robot.String()}
}

func (p Move) fields() []string {
	return []string{p.Robot.String(), p.Target.String()}
}

func (Kill) fields() []string { return nil }

func (p Strike) fields() []string {
	return []string{strconv.FormatInt(p.Duration.Milliseconds(), 10)}
}

// Encode renders p as a newline-terminated line.
func Encode(p Packet) []byte {
	parts := append([]string{string(p.Kind())}, p.fields()...)
	return []byte(strings.Join(parts, " ") + "\n")
}

// Decode parses a single line (with or without its newline).
func Decode(line string) (Packet, error) {
	f := strings.Fields(line)
	if len(f) == 0 {
		return nil, fmt.Errorf("%w: empty line", ErrMalformedPacket)
	}

	kind, args := Kind(f[0]), f[1:]
	switch kind {
	case KindSetup:
		pts, err := parsePoints(kind, args, 3)
		if err != nil {
			return nil, err
		}
		return Setup{Axis1: pts[0], Axis2: pts[1], Robot: pts[2]}, nil

	case KindMove:
		pts, err := parsePoints(kind, args, 2)
		if err != nil {
			return nil, err
		}
		return Move{Robot: pts[0], Target: pts[1]}, nil

	case KindKill:
		if len(args) != 0 {
			return nil, fmt.Errorf("%w: %s takes no fields", ErrMalformedPacket, kind)
		}
		return Kill{}, nil

	case KindStrike:
		if len(args) != 1 {
			return nil, fmt.Errorf("%w: %s wants 1 field, got %d", ErrMalformedPacket, kind, len(args))
		}
		ms, err := strconv.Atoi(args[0])
		if err != nil || ms < 0 {
			return nil, fmt.Errorf("%w: bad duration %q", ErrMalformedPacket, args[0])
		}
		return Strike{Duration: time.Duration(ms) * time.Millisecond}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPacket, f[0])
	}
}

func parsePoints(kind Kind, args []string, n int) ([]geometry.Point, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%w: %s wants %d fields, got %d", ErrMalformedPacket, kind, n, len(args))
	}
	pts := make([]geometry.Point, n)
	for i, a := range args {
		p, err := ParsePoint(a)
		if err != nil {
			return nil, err
		}
		pts[i] = p
	}
	return pts, nil
}

// ParsePoint parses an "x,y" integer pair.
func ParsePoint(s string) (geometry.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return geometry.Point{}, fmt.Errorf("%w: bad point %q", ErrMalformedPacket, s)
	}
	x, errX := strconv.Atoi(xs)
	y, errY := strconv.Atoi(ys)
	if errX != nil || errY != nil {
		return geometry.Point{}, fmt.Errorf("%w: bad point %q", ErrMalformedPacket, s)
	}
	return geometry.Pt(float64(x), float64(y)), nil
}
