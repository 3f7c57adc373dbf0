package scene

import (
	"image/color"
	"log/slog"

	"github.com/ironsheep/robot-goalie/internal/colors"
	"github.com/ironsheep/robot-goalie/internal/detection"
	"github.com/ironsheep/robot-goalie/internal/geometry"
)

// Config selects the colours of each scene element.
type Config struct {
	Robot   colors.Profile
	Markers colors.Profile
	Rails   colors.Profile
	Track   []colors.Profile

	// NumObjects caps the number of tracked objects per frame.
	NumObjects int

	// MinRadius is passed through to every FindCircles call.
	MinRadius float64
}

// Snapshot is everything located in one frame.
//
// Optional elements are nil (Robot, Axis) or empty (Markers, Anchors, Rails)
// when they were not found.
type Snapshot struct {
	Objects []geometry.Circle
	Robot   *geometry.Circle
	Markers []geometry.Circle
	Anchors []geometry.Circle
	Axis    *geometry.Line
	Rails   []geometry.Line
}

// Complete reports whether the robot and both axis markers were found.
func (s Snapshot) Complete() bool {
	return s.Robot != nil && len(s.Markers) == 2 && s.Axis != nil
}

// Locator finds the robot system in HSV frames.
type Locator struct {
	cfg    Config
	logger *slog.Logger
}

// NewLocator returns a Locator for cfg. A nil logger uses slog.Default().
func NewLocator(cfg Config, logger *slog.Logger) *Locator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Locator{cfg: cfg, logger: logger}
}

// Locate runs every detector over img and derives the axis and rail lines.
func (l *Locator) Locate(img *colors.HSVImage) Snapshot {
	snap := Snapshot{
		Objects: detection.FindCircles(img, l.cfg.Track, detection.Options{
			NumObjects: l.cfg.NumObjects,
			MinRadius:  l.cfg.MinRadius,
		}),
		Robot:   l.FindRobot(img),
		Markers: l.FindRobotMarkers(img),
	}
	snap.Axis = geometry.LineBetweenMarkers(snap.Markers, l.cfg.Markers.Display())
	if len(snap.Markers) == 2 {
		snap.Anchors = l.findAnchors(img)
		snap.Rails = GetRails(snap.Markers, snap.Anchors, l.cfg.Rails.Display())
	}

	l.logger.Debug("scene located",
		"objects", len(snap.Objects),
		"robot", snap.Robot != nil,
		"markers", len(snap.Markers),
		"rails", len(snap.Rails))
	return snap
}

// FindRobot returns the single largest robot-coloured blob, or nil.
func (l *Locator) FindRobot(img *colors.HSVImage) *geometry.Circle {
	found := detection.FindCircles(img, []colors.Profile{l.cfg.Robot}, detection.Options{
		NumObjects: 1,
		MinRadius:  l.cfg.MinRadius,
	})
	if len(found) < 1 {
		return nil
	}
	robot := found[0]
	robot.Color = colors.Magenta.Display()
	return &robot
}

// FindRobotMarkers returns the two axis markers, or an empty slice unless
// exactly two were found.
func (l *Locator) FindRobotMarkers(img *colors.HSVImage) []geometry.Circle {
	found := detection.FindCircles(img, []colors.Profile{l.cfg.Markers}, detection.Options{
		NumObjects: 2,
		MinRadius:  l.cfg.MinRadius,
	})
	if len(found) != 2 {
		return []geometry.Circle{}
	}
	return found
}

func (l *Locator) findAnchors(img *colors.HSVImage) []geometry.Circle {
	return detection.FindCircles(img, []colors.Profile{l.cfg.Rails}, detection.Options{
		NumObjects: 2,
		MinRadius:  l.cfg.MinRadius,
	})
}

// GetRails joins each rail anchor to an axis marker.
//
// Both slices must hold exactly two circles, otherwise the result is empty.
// The pairing is decided by anchors[0] alone: it goes to whichever marker is
// nearer (squared distance) and anchors[1] takes the other one. Layouts where
// the crossed pairing would be shorter overall are not corrected.
func GetRails(markers, anchors []geometry.Circle, c color.RGBA) []geometry.Line {
	if len(markers) != 2 || len(anchors) != 2 {
		return []geometry.Line{}
	}

	a0 := anchors[0].Center()
	m0, m1 := markers[0], markers[1]
	if a0.DistanceSquared(m0.Center()) >= a0.DistanceSquared(m1.Center()) {
		m0, m1 = m1, m0
	}

	return []geometry.Line{
		geometry.LineBetweenCircles(m0, anchors[0], c),
		geometry.LineBetweenCircles(m1, anchors[1], c),
	}
}
