package actuator

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Solenoid energises the solenoid for timed pulses on its own long-lived
// worker goroutine, so Pulse never blocks the caller.
type Solenoid struct {
	driver SolenoidDriver
	logger *slog.Logger

	pulses chan time.Duration
	quit   chan struct{}
	done   chan struct{}

	on        atomic.Bool
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewSolenoid starts the worker for driver with the solenoid released.
// Close stops the worker.
func NewSolenoid(driver SolenoidDriver, logger *slog.Logger) *Solenoid {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Solenoid{
		driver: driver,
		logger: logger,
		pulses: make(chan time.Duration),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go s.work()
	return s
}

// On reports whether a pulse is pending or in progress.
func (s *Solenoid) On() bool {
	return s.on.Load()
}

// Pulse energises the solenoid for d. It returns ErrBusy if a pulse is
// already running and ErrClosed after Close.
func (s *Solenoid) Pulse(d time.Duration) error {
	select {
	case <-s.quit:
		return ErrClosed
	default:
	}
	if !s.on.CompareAndSwap(false, true) {
		return ErrBusy
	}
	s.wg.Add(1)
	select {
	case s.pulses <- d:
		return nil
	case <-s.quit:
		s.on.Store(false)
		s.wg.Done()
		return ErrClosed
	}
}

// Wait blocks until the current pulse, if any, has ended.
func (s *Solenoid) Wait() {
	s.wg.Wait()
}

// Close cuts any running pulse short, releases the solenoid and stops the
// worker. It is safe to call more than once.
func (s *Solenoid) Close() {
	s.closeOnce.Do(func() {
		close(s.quit)
		<-s.done
	})
}

func (s *Solenoid) work() {
	defer close(s.done)
	for {
		select {
		case d := <-s.pulses:
			s.pulse(d)
			s.on.Store(false)
			s.wg.Done()
		case <-s.quit:
			return
		}
	}
}

func (s *Solenoid) pulse(d time.Duration) {
	if err := s.driver.SetSolenoid(true); err != nil {
		s.logger.Error("failed to energise solenoid", "error", err)
		return
	}

	t := time.NewTimer(d)
	select {
	case <-t.C:
	case <-s.quit:
		t.Stop()
	}

	if err := s.driver.SetSolenoid(false); err != nil {
		s.logger.Error("failed to release solenoid", "error", err)
	}
}
