package actuator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ironsheep/robot-goalie/internal/geometry"
	"github.com/ironsheep/robot-goalie/internal/protocol"
)

// Config holds the physical parameters of the actuator.
type Config struct {
	StepsPerRev  int
	GearRadiusCM float64
	EdgeLengthCM float64
	StepDelay    time.Duration

	// Reverse flips the motor direction.
	Reverse bool
}

// Server handles the control connection and drives the hardware.
type Server struct {
	driver   Driver
	motor    *Motor
	solenoid *Solenoid
	logger   *slog.Logger

	mu    sync.Mutex
	kin   Kinematics
	ready bool
	robot geometry.Point

	connMu sync.Mutex
	active net.Conn
}

// NewServer returns an uninitialized Server on drv. A nil logger uses
// slog.Default().
func NewServer(cfg Config, drv Driver, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		driver:   drv,
		motor:    NewMotor(drv, cfg.StepDelay, logger),
		solenoid: NewSolenoid(drv, logger),
		logger:   logger,
		kin: Kinematics{
			StepsPerRev:  cfg.StepsPerRev,
			GearRadiusCM: cfg.GearRadiusCM,
			EdgeLengthCM: cfg.EdgeLengthCM,
			Reverse:      cfg.Reverse,
		},
	}
}

// Ready reports whether an SM packet has been processed.
func (s *Server) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// Robot returns the robot position from the last accepted SM or MM packet.
func (s *Server) Robot() geometry.Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.robot
}

// Motor returns the motor worker.
func (s *Server) Motor() *Motor {
	return s.motor
}

// Serve accepts connections on ln until ctx is done. Only one client is
// served at a time; a connection arriving while another is active is closed
// straight away.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	stop := context.AfterFunc(ctx, func() {
		ln.Close()
		s.connMu.Lock()
		if s.active != nil {
			s.active.Close()
		}
		s.connMu.Unlock()
	})
	defer stop()

	s.logger.Info("actuator listening", "addr", ln.Addr().String())

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("accept failed: %w", err)
		}

		s.connMu.Lock()
		busy := s.active != nil
		if !busy {
			s.active = conn
		}
		s.connMu.Unlock()

		if busy {
			s.logger.Warn("rejecting second client", "remote", conn.RemoteAddr().String())
			conn.Close()
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				s.connMu.Lock()
				s.active = nil
				s.connMu.Unlock()
			}()
			if err := s.ServeConn(conn); err != nil {
				s.logger.Warn("connection ended with error", "error", err)
			}
		}()
	}
}

// ServeConn reads packets from conn until it is closed. Undecodable lines
// and rejected packets are logged and skipped.
func (s *Server) ServeConn(conn net.Conn) error {
	defer conn.Close()

	logger := s.logger.With("session", uuid.NewString(), "remote", conn.RemoteAddr().String())
	logger.Info("client connected")
	defer logger.Info("client disconnected")

	r := protocol.NewReader(conn)
	for {
		p, err := r.Next()
		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, protocol.ErrUnknownPacket), errors.Is(err, protocol.ErrMalformedPacket):
			logger.Warn("failed to decode packet", "error", err)
			continue
		default:
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}

		if err := s.Handle(p); err != nil {
			logger.Warn("packet rejected", "kind", p.Kind(), "error", err)
		}
	}
}

// Handle routes one packet.
//
// Before setup every packet other than SM returns ErrNotReady. A move that
// arrives while the motor is running returns ErrBusy, as does a strike while
// the solenoid is energised.
func (s *Server) Handle(p protocol.Packet) error {
	if setup, ok := p.(protocol.Setup); ok {
		return s.handleSetup(setup)
	}

	s.mu.Lock()
	ready, kin := s.ready, s.kin
	s.mu.Unlock()
	if !ready {
		return fmt.Errorf("%w: dropping %s", ErrNotReady, p.Kind())
	}

	switch p := p.(type) {
	case protocol.Move:
		return s.handleMove(kin, p)
	case protocol.Kill:
		s.motor.Stop()
		s.logger.Debug("motor stop requested")
		return nil
	case protocol.Strike:
		return s.solenoid.Pulse(p.Duration)
	default:
		return fmt.Errorf("%w: %s", protocol.ErrUnknownPacket, p.Kind())
	}
}

func (s *Server) handleSetup(p protocol.Setup) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ready {
		s.logger.Debug("ignoring repeated setup")
		return nil
	}
	s.kin.Axis1 = p.Axis1
	s.kin.Axis2 = p.Axis2
	s.robot = p.Robot
	s.ready = true

	s.logger.Info("actuator ready",
		"axis1", p.Axis1.String(),
		"axis2", p.Axis2.String(),
		"robot", p.Robot.String(),
		"px_per_cm", s.kin.PixelsPerCM())
	return nil
}

func (s *Server) handleMove(kin Kinematics, p protocol.Move) error {
	steps := kin.Steps(p.Robot, p.Target)
	if err := s.motor.Move(steps); err != nil {
		return err
	}

	s.mu.Lock()
	s.robot = p.Robot
	s.mu.Unlock()

	s.logger.Debug("move started", "robot", p.Robot.String(), "target", p.Target.String(), "steps", steps)
	return nil
}

// Close halts any motion or pulse, stops the workers and closes the driver.
func (s *Server) Close() error {
	s.motor.Close()
	s.solenoid.Close()
	return s.driver.Close()
}
