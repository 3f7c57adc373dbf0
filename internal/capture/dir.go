package capture

import (
	"context"
	"fmt"
	"image"
	"io"
	"time"

	"github.com/ironsheep/robot-goalie/internal/imaging"
)

// DirSource replays the images in a directory as frames.
//
// A looping replay caches decoded images so each file is only read once; a
// single pass evicts every image as soon as it has been returned.
type DirSource struct {
	paths    []string
	cache    *imaging.ImageCache
	loop     bool
	interval time.Duration
	next     int
	last     time.Time
}

// DirOption configures a DirSource.
type DirOption func(*DirSource)

// WithLoop restarts the replay from the first image instead of ending.
func WithLoop(loop bool) DirOption {
	return func(s *DirSource) { s.loop = loop }
}

// WithInterval paces the replay to at most one frame per d.
func WithInterval(d time.Duration) DirOption {
	return func(s *DirSource) { s.interval = d }
}

// NewDirSource lists the images in dir. A directory without images returns
// an error wrapping ErrNoFrame.
func NewDirSource(dir string, opts ...DirOption) (*DirSource, error) {
	paths, err := imaging.ListImages(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no images in %s", ErrNoFrame, dir)
	}

	s := &DirSource{
		paths: paths,
		cache: imaging.NewImageCache(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Len returns the number of images in the replay.
func (s *DirSource) Len() int {
	return len(s.paths)
}

// Next returns the next image, or io.EOF after the last one unless looping.
func (s *DirSource) Next(ctx context.Context) (image.Image, error) {
	if s.next >= len(s.paths) {
		if !s.loop {
			return nil, io.EOF
		}
		s.next = 0
	}

	if s.interval > 0 && !s.last.IsZero() {
		if wait := s.interval - time.Since(s.last); wait > 0 {
			t := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				t.Stop()
				return nil, ctx.Err()
			case <-t.C:
			}
		}
	}

	path := s.paths[s.next]
	s.next++
	s.last = time.Now()

	img, err := s.cache.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoFrame, err)
	}
	if !s.loop {
		s.cache.Evict(path)
	}
	return img, nil
}

// Close drops the cached images.
func (s *DirSource) Close() error {
	s.cache.Clear()
	return nil
}
