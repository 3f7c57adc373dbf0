package control

import (
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ironsheep/robot-goalie/internal/imaging"
)

var (
	labelFG = color.RGBA{255, 255, 255, 255}
	labelBG = color.RGBA{0, 0, 0, 180}
)

// Draw renders res onto a copy of the frame's RGB image: tracked objects,
// robot, markers, anchors, the axis, the rails, the predicted path and the
// intercept with its coordinates. It returns nil if the frame has no RGB
// image.
func Draw(frame *imaging.Frame, res Result) *imaging.Overlay {
	if frame == nil || frame.RGB == nil {
		return nil
	}
	o := imaging.NewOverlay(frame.RGB)

	snap := res.Snapshot
	if snap.Axis != nil {
		o.Line(*snap.Axis)
	}
	for _, r := range snap.Rails {
		o.Line(r)
	}
	for _, c := range snap.Markers {
		o.Circle(c)
	}
	for _, c := range snap.Anchors {
		o.Circle(c)
	}
	for _, c := range snap.Objects {
		o.Circle(c)
	}
	if snap.Robot != nil {
		o.Circle(*snap.Robot)
	}
	for _, s := range res.Segments {
		o.Line(s)
	}
	if p := res.Intercept; p != nil {
		mark := *p
		mark.Color = labelFG
		o.Point(mark, 4)
		o.Label(int(p.X)+6, int(p.Y)+6, p.String(), labelFG, labelBG)
	}
	return o
}

// PNGWriter is an Annotator that saves every Nth frame, drawn with Draw, as
// frame-NNNNNN.png in a directory.
type PNGWriter struct {
	dir    string
	every  int
	logger *slog.Logger
}

// NewPNGWriter creates dir if needed. every below one saves every frame.
func NewPNGWriter(dir string, every int, logger *slog.Logger) (*PNGWriter, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if every < 1 {
		every = 1
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create annotation directory: %w", err)
	}
	return &PNGWriter{dir: dir, every: every, logger: logger}, nil
}

// Annotate implements Annotator. Write failures are logged and dropped.
func (w *PNGWriter) Annotate(frame *imaging.Frame, res Result) {
	if res.Frame%w.every != 0 {
		return
	}
	o := Draw(frame, res)
	if o == nil {
		return
	}

	path := filepath.Join(w.dir, fmt.Sprintf("frame-%06d.png", res.Frame))
	if err := w.write(path, o); err != nil {
		w.logger.Warn("failed to save annotated frame", "path", path, "error", err)
	}
}

func (w *PNGWriter) write(path string, o *imaging.Overlay) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := o.EncodePNG(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
