package actuator

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Motor owns the stepper through a single long-lived worker goroutine.
//
// Moves reach the worker on the move channel and stops on a separate stop
// channel that is checked between pulses and during the inter-step delay.
// moving is set by Move and cleared by the worker, so at most one move is
// ever pending or running.
type Motor struct {
	stepper Stepper
	delay   time.Duration
	logger  *slog.Logger

	moves chan int
	stop  chan struct{}
	quit  chan struct{}
	done  chan struct{}

	mu        sync.Mutex // orders Stop against the end of a move
	moving    atomic.Bool
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewMotor starts the worker for stepper. delay is the pause between step
// pulses. Close stops the worker.
func NewMotor(stepper Stepper, delay time.Duration, logger *slog.Logger) *Motor {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Motor{
		stepper: stepper,
		delay:   delay,
		logger:  logger,
		moves:   make(chan int),
		stop:    make(chan struct{}, 1),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go m.work()
	return m
}

// Moving reports whether a move is pending or in progress.
func (m *Motor) Moving() bool {
	return m.moving.Load()
}

// Move hands a move of |steps| pulses to the worker, forward when steps is
// positive. It never blocks: it returns ErrBusy if a move is already pending
// or running and ErrClosed after Close. Zero steps is a no-op.
func (m *Motor) Move(steps int) error {
	if steps == 0 {
		return nil
	}
	select {
	case <-m.quit:
		return ErrClosed
	default:
	}
	if !m.moving.CompareAndSwap(false, true) {
		return ErrBusy
	}
	m.wg.Add(1)
	// The worker is idle whenever moving was false, so this only waits for
	// it to get back to its receive.
	select {
	case m.moves <- steps:
		return nil
	case <-m.quit:
		m.moving.Store(false)
		m.wg.Done()
		return ErrClosed
	}
}

// Stop asks the current move to halt before its next pulse. It does not
// wait; use Wait for that. Stop on an idle motor does nothing.
func (m *Motor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.moving.Load() {
		return
	}
	select {
	case m.stop <- struct{}{}:
	default:
	}
}

// Wait blocks until the current move, if any, has ended.
func (m *Motor) Wait() {
	m.wg.Wait()
}

// Close halts any move and stops the worker. It is safe to call more than
// once.
func (m *Motor) Close() {
	m.closeOnce.Do(func() {
		close(m.quit)
		<-m.done
	})
}

func (m *Motor) work() {
	defer close(m.done)
	for {
		select {
		case steps := <-m.moves:
			m.run(steps)
			m.finish()
		case <-m.quit:
			return
		}
	}
}

// finish drains a stop that arrived too late to matter and marks the motor
// idle.
func (m *Motor) finish() {
	m.mu.Lock()
	select {
	case <-m.stop:
	default:
	}
	m.moving.Store(false)
	m.mu.Unlock()
	m.wg.Done()
}

func (m *Motor) run(steps int) {
	forward := steps > 0
	if !forward {
		steps = -steps
	}

	done := 0
	for ; done < steps; done++ {
		if m.halted(0) {
			break
		}
		if err := m.stepper.Step(forward); err != nil {
			m.logger.Error("step failed, aborting move", "error", err, "done", done, "steps", steps)
			return
		}
		if m.halted(m.delay) {
			done++
			break
		}
	}
	m.logger.Debug("move finished", "steps", done, "requested", steps, "forward", forward)
}

// halted waits up to d and reports whether a stop or Close arrived.
func (m *Motor) halted(d time.Duration) bool {
	if d <= 0 {
		select {
		case <-m.stop:
			return true
		case <-m.quit:
			return true
		default:
			return false
		}
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-m.stop:
		return true
	case <-m.quit:
		return true
	case <-t.C:
		return false
	}
}
