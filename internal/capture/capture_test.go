package capture

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func writePNG(t *testing.T, dir, name string, width int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, 4))
	for x := 0; x < width; x++ {
		img.Set(x, 0, color.RGBA{255, 0, 0, 255})
	}
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("failed to create %s: %v", name, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode %s: %v", name, err)
	}
}

func TestDirSourceOrderAndEOF(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "b.png", 2)
	writePNG(t, dir, "a.png", 1)
	writePNG(t, dir, "c.png", 3)

	src, err := NewDirSource(dir)
	if err != nil {
		t.Fatalf("NewDirSource failed: %v", err)
	}
	defer src.Close()

	if src.Len() != 3 {
		t.Fatalf("Len = %d, want 3", src.Len())
	}

	ctx := context.Background()
	for want := 1; want <= 3; want++ {
		img, err := src.Next(ctx)
		if err != nil {
			t.Fatalf("frame %d: %v", want, err)
		}
		if got := img.Bounds().Dx(); got != want {
			t.Errorf("frame %d has width %d; files not replayed in name order", want, got)
		}
	}

	if _, err := src.Next(ctx); !errors.Is(err, io.EOF) {
		t.Errorf("expected io.EOF after last frame, got %v", err)
	}
}

func TestDirSourceCachesOnlyWhenLooping(t *testing.T) {
	for _, loop := range []bool{false, true} {
		dir := t.TempDir()
		writePNG(t, dir, "a.png", 1)

		src, err := NewDirSource(dir, WithLoop(loop))
		if err != nil {
			t.Fatalf("NewDirSource failed: %v", err)
		}
		if _, err := src.Next(context.Background()); err != nil {
			t.Fatalf("Next failed: %v", err)
		}

		// Replace the file; only a cached copy still has the old width.
		writePNG(t, dir, "a.png", 5)
		img, err := src.cache.Load(filepath.Join(dir, "a.png"))
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		want := 5
		if loop {
			want = 1
		}
		if got := img.Bounds().Dx(); got != want {
			t.Errorf("loop=%v: width %d, want %d", loop, got, want)
		}
		src.Close()
	}
}

func TestDirSourceLoop(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "a.png", 1)
	writePNG(t, dir, "b.png", 2)

	src, err := NewDirSource(dir, WithLoop(true))
	if err != nil {
		t.Fatalf("NewDirSource failed: %v", err)
	}

	var widths []int
	for i := 0; i < 5; i++ {
		img, err := src.Next(context.Background())
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		widths = append(widths, img.Bounds().Dx())
	}
	want := []int{1, 2, 1, 2, 1}
	for i := range want {
		if widths[i] != want[i] {
			t.Fatalf("widths = %v, want %v", widths, want)
		}
	}
}

func TestDirSourceEmpty(t *testing.T) {
	_, err := NewDirSource(t.TempDir())
	if !errors.Is(err, ErrNoFrame) {
		t.Errorf("expected ErrNoFrame for empty directory, got %v", err)
	}
}

func TestDirSourceMissing(t *testing.T) {
	if _, err := NewDirSource(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestDirSourceIntervalHonoursContext(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "a.png", 1)
	writePNG(t, dir, "b.png", 2)

	src, err := NewDirSource(dir, WithInterval(time.Hour))
	if err != nil {
		t.Fatalf("NewDirSource failed: %v", err)
	}
	if _, err := src.Next(context.Background()); err != nil {
		t.Fatalf("first frame: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := src.Next(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline error while pacing, got %v", err)
	}
}

// chanSource hands out whatever is pushed onto frames.
type chanSource struct {
	frames chan image.Image
	errs   chan error

	mu     sync.Mutex
	closed bool
}

func newChanSource() *chanSource {
	return &chanSource{
		frames: make(chan image.Image),
		errs:   make(chan error),
	}
}

func (s *chanSource) Next(ctx context.Context) (image.Image, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case img, ok := <-s.frames:
		if !ok {
			return nil, io.EOF
		}
		return img, nil
	case err := <-s.errs:
		return nil, err
	}
}

func (s *chanSource) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

func frameOfWidth(w int) image.Image {
	return image.NewGray(image.Rect(0, 0, w, 1))
}

func TestLatestKeepsNewestFrame(t *testing.T) {
	src := newChanSource()
	l := NewLatest(src, nil)
	l.Start(context.Background())

	// Unbuffered sends only complete once the reader has taken the frame,
	// and the third send proves the second one was stored.
	src.frames <- frameOfWidth(1)
	src.frames <- frameOfWidth(2)
	src.frames <- frameOfWidth(3)
	close(src.frames)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	var last int
	for {
		img, err := l.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		last = img.Bounds().Dx()
	}

	if last != 3 {
		t.Errorf("last frame width = %d, want 3", last)
	}
	if l.Dropped() == 0 {
		t.Error("expected overwritten frames to be counted as dropped")
	}
	if err := l.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if !src.closed {
		t.Error("Close did not close the wrapped source")
	}
}

func TestLatestReportsErrorOnce(t *testing.T) {
	src := newChanSource()
	l := NewLatest(src, nil)
	l.Start(context.Background())
	defer l.Close()

	src.errs <- ErrNoFrame

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if _, err := l.Next(ctx); !errors.Is(err, ErrNoFrame) {
		t.Fatalf("expected ErrNoFrame, got %v", err)
	}

	src.frames <- frameOfWidth(7)
	img, err := l.Next(ctx)
	if err != nil {
		t.Fatalf("reader did not recover after error: %v", err)
	}
	if img.Bounds().Dx() != 7 {
		t.Errorf("width = %d, want 7", img.Bounds().Dx())
	}
}

func TestLatestNextHonoursContext(t *testing.T) {
	src := newChanSource()
	l := NewLatest(src, nil)
	l.Start(context.Background())
	defer l.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := l.Next(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline error, got %v", err)
	}
}
