package capture

import (
	"context"
	"errors"
	"image"
)

// ErrNoFrame is returned when a source could not produce a frame.
var ErrNoFrame = errors.New("no frame")

// Source produces frames one at a time.
type Source interface {
	// Next blocks until a frame is available, ctx is done, or the source
	// fails. It returns io.EOF when the source is exhausted.
	Next(ctx context.Context) (image.Image, error)

	// Close releases the underlying device or files.
	Close() error
}
