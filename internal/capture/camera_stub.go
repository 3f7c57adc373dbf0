//go:build !gocv

package capture

import (
	"context"
	"errors"
	"image"
)

// errNoCamera is returned by OpenCamera in builds without OpenCV.
var errNoCamera = errors.New("camera support not built in (rebuild with -tags gocv)")

// Camera is unavailable without the gocv build tag.
type Camera struct{}

// OpenCamera always fails in builds without the gocv tag.
func OpenCamera(device int) (*Camera, error) {
	return nil, errNoCamera
}

// Next always fails.
func (c *Camera) Next(ctx context.Context) (image.Image, error) {
	return nil, errNoCamera
}

// Close is a no-op.
func (c *Camera) Close() error {
	return nil
}
