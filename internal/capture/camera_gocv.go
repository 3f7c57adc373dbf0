//go:build gocv

package capture

import (
	"context"
	"fmt"
	"image"
	"sync"

	"gocv.io/x/gocv"
)

// Camera reads frames from a video device through OpenCV.
type Camera struct {
	mu     sync.Mutex
	device int
	webcam *gocv.VideoCapture
	mat    gocv.Mat
}

// OpenCamera opens the video device with the given index.
func OpenCamera(device int) (*Camera, error) {
	webcam, err := gocv.VideoCaptureDevice(device)
	if err != nil {
		return nil, fmt.Errorf("failed to open video device %d: %w", device, err)
	}
	return &Camera{
		device: device,
		webcam: webcam,
		mat:    gocv.NewMat(),
	}, nil
}

// Next grabs one frame. A failed or empty read returns ErrNoFrame.
func (c *Camera) Next(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if ok := c.webcam.Read(&c.mat); !ok || c.mat.Empty() {
		return nil, fmt.Errorf("%w: device %d", ErrNoFrame, c.device)
	}
	img, err := c.mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoFrame, err)
	}
	return img, nil
}

// Close releases the device.
func (c *Camera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mat.Close()
	return c.webcam.Close()
}
