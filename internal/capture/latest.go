package capture

import (
	"context"
	"errors"
	"image"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// retryDelay is how long the background reader waits after a failed read.
const retryDelay = 10 * time.Millisecond

// Latest reads a Source on a background goroutine and keeps only the newest
// frame. A frame that is overwritten before Next picks it up is dropped.
//
// Next never returns the same frame twice.
type Latest struct {
	src    Source
	logger *slog.Logger

	mu    sync.Mutex
	frame image.Image
	err   error
	done  bool
	ready chan struct{}

	dropped atomic.Int64
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewLatest wraps src. Call Start to begin reading.
func NewLatest(src Source, logger *slog.Logger) *Latest {
	if logger == nil {
		logger = slog.Default()
	}
	return &Latest{
		src:    src,
		logger: logger,
		ready:  make(chan struct{}, 1),
	}
}

// Start launches the background reader. It stops when ctx is done, Close is
// called, or the source returns io.EOF.
func (l *Latest) Start(ctx context.Context) {
	ctx, l.cancel = context.WithCancel(ctx)
	l.wg.Add(1)
	go l.readLoop(ctx)
}

func (l *Latest) readLoop(ctx context.Context) {
	defer l.wg.Done()
	for {
		img, err := l.src.Next(ctx)
		if ctx.Err() != nil {
			return
		}

		l.mu.Lock()
		switch {
		case errors.Is(err, io.EOF):
			l.done = true
		case err != nil:
			l.err = err
		default:
			if l.frame != nil {
				l.dropped.Add(1)
			}
			l.frame = img
		}
		done := l.done
		l.mu.Unlock()
		l.signal()

		if done {
			return
		}
		if err != nil {
			l.logger.Debug("background frame read failed", "error", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(retryDelay):
			}
		}
	}
}

func (l *Latest) signal() {
	select {
	case l.ready <- struct{}{}:
	default:
	}
}

// Next returns the newest unread frame, waiting for one if necessary.
//
// A read error from the source is returned once. io.EOF is returned after the
// source is exhausted and the last frame has been taken.
func (l *Latest) Next(ctx context.Context) (image.Image, error) {
	for {
		l.mu.Lock()
		if img := l.frame; img != nil {
			l.frame = nil
			l.mu.Unlock()
			return img, nil
		}
		if err := l.err; err != nil {
			l.err = nil
			l.mu.Unlock()
			return nil, err
		}
		if l.done {
			l.mu.Unlock()
			return nil, io.EOF
		}
		l.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-l.ready:
		}
	}
}

// Dropped returns how many frames were overwritten before being read.
func (l *Latest) Dropped() int64 {
	return l.dropped.Load()
}

// Close stops the background reader and closes the wrapped source.
func (l *Latest) Close() error {
	if l.cancel != nil {
		l.cancel()
	}
	l.wg.Wait()
	return l.src.Close()
}
