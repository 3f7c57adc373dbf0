package trajectory

import (
	"image/color"
	"log/slog"

	"gonum.org/v1/gonum/stat"

	"github.com/ironsheep/robot-goalie/internal/geometry"
)

// DefaultFrames is the ring buffer length used when Config.Frames is unset.
const DefaultFrames = 4

// verticalVariance is the x variance below which the fit is treated as vertical.
const verticalVariance = 1e-6

// Config sets up a Planner.
type Config struct {
	// Frames is the number of positions fitted (N). Values below two fall
	// back to DefaultFrames since a line needs two points.
	Frames int

	// Bounces enables wall reflection when positive. Values above one are
	// treated as one.
	Bounces int

	// Smoother optionally filters every point before it is buffered.
	Smoother Smoother
}

// Planner is the per-object trajectory state. It is owned by a single
// goroutine and is not safe for concurrent use.
type Planner struct {
	// Axis is the robot axis to intercept. Set it every frame; nil disables
	// prediction.
	Axis *geometry.Line

	// Walls are the rails the object may bounce off.
	Walls []geometry.Line

	frames   int
	bounces  int
	smoother Smoother
	logger   *slog.Logger

	xs    []float64
	ys    []float64
	count int
	index int

	traj     *geometry.Line
	segments []geometry.Line
}

// NewPlanner returns an empty Planner. A nil logger uses slog.Default().
func NewPlanner(cfg Config, logger *slog.Logger) *Planner {
	if logger == nil {
		logger = slog.Default()
	}
	frames := cfg.Frames
	if frames < 2 {
		frames = DefaultFrames
	}
	return &Planner{
		frames:   frames,
		bounces:  cfg.Bounces,
		smoother: cfg.Smoother,
		logger:   logger,
		xs:       make([]float64, frames),
		ys:       make([]float64, frames),
		index:    frames - 1,
	}
}

// Frames returns the buffer length N.
func (p *Planner) Frames() int {
	return p.frames
}

// Full reports whether N points have been collected.
func (p *Planner) Full() bool {
	return p.count >= p.frames
}

// Reset empties the buffer and clears any prediction.
func (p *Planner) Reset() {
	p.count = 0
	p.index = p.frames - 1
	p.traj = nil
	p.segments = nil
	if p.smoother != nil {
		p.smoother.Reset()
	}
}

// AddPoint records the newest position. A nil point is ignored.
//
// If a smoother is configured the point is filtered first; a smoother error
// is logged and the raw point is buffered instead.
func (p *Planner) AddPoint(pt *geometry.Point) {
	if pt == nil {
		return
	}

	x, y := pt.X, pt.Y
	if p.smoother != nil {
		sp, err := p.smoother.Smooth(*pt)
		if err != nil {
			p.logger.Warn("smoothing failed, using raw point", "error", err)
		} else {
			x, y = sp.X, sp.Y
		}
	}

	p.index = (p.index + 1) % p.frames
	p.xs[p.index] = x
	p.ys[p.index] = y
	if p.count < p.frames {
		p.count++
	}
}

// Current returns the newest buffered position, or nil before the first point.
func (p *Planner) Current() *geometry.Point {
	if p.count == 0 {
		return nil
	}
	return &geometry.Point{X: p.xs[p.index], Y: p.ys[p.index]}
}

// Oldest returns the oldest buffered position, or nil before the first point.
func (p *Planner) Oldest() *geometry.Point {
	if p.count == 0 {
		return nil
	}
	i := 0
	if p.Full() {
		i = (p.index + 1) % p.frames
	}
	return &geometry.Point{X: p.xs[i], Y: p.ys[i]}
}

// BestFitLine returns the least-squares heading through the buffer, or nil
// during warm-up.
//
// The line runs from the newest x to x+1 with both y values taken from the
// fit, so it is colinear with the regression and anchored at the newest
// point. A vertical fit instead runs one pixel from the newest point in its
// direction of travel. Calling it twice without AddPoint yields the same line.
func (p *Planner) BestFitLine() *geometry.Line {
	if !p.Full() {
		return nil
	}
	cur := p.Current()

	if stat.Variance(p.xs, nil) < verticalVariance {
		step := 1.0
		if old := p.Oldest(); cur.Y < old.Y {
			step = -1
		}
		ln := geometry.NewLine(cur.X, cur.Y, cur.X, cur.Y+step, color.RGBA{})
		return &ln
	}

	alpha, beta := stat.LinearRegression(p.xs, p.ys, nil, false)
	ln := geometry.NewLine(cur.X, alpha+beta*cur.X, cur.X+1, alpha+beta*(cur.X+1), color.RGBA{})
	return &ln
}

// TrajDirTowardLine reports whether the object is net approaching ln: the
// newest point must be strictly closer to it than the oldest.
func (p *Planner) TrajDirTowardLine(ln *geometry.Line) bool {
	if ln == nil || !p.Full() {
		return false
	}
	_, dist := geometry.DistanceFromLine([]geometry.Point{*p.Current(), *p.Oldest()}, ln, true)
	if len(dist) != 2 || dist[0] < 0 || dist[1] < 0 {
		return false
	}
	return dist[0] < dist[1]
}

// TrajectoryList predicts the path to the axis as a list of segments drawn
// in c.
//
// The list is empty during warm-up, when the object is moving away from the
// axis, or when the heading never meets the axis. Without bounces it holds
// the single segment from the newest point to the intercept. With bounces it
// holds the segment to the first wall hit followed by the reflected segment
// to the axis, or the single straight segment when no wall is hit.
//
// The result is also kept on the Planner; see Segments and Trajectory.
func (p *Planner) TrajectoryList(c color.RGBA) []geometry.Line {
	p.traj = nil
	p.segments = []geometry.Line{}
	if !p.Full() {
		return p.segments
	}

	cur := *p.Current()
	fit := p.BestFitLine()
	if !p.TrajDirTowardLine(p.Axis) {
		fit = nil
	}
	p.traj = geometry.GetLine(cur, geometry.LineIntersect(fit, p.Axis), c)
	if p.traj == nil {
		return p.segments
	}

	if p.bounces > 0 {
		if segs, ok := p.bounce(cur, c); ok {
			p.segments = segs
			return p.segments
		}
	}

	p.segments = append(p.segments, *p.traj)
	return p.segments
}

// bounce tests the straight prediction against each wall and reflects it off
// the first one it crosses. ok is false when no wall is crossed.
func (p *Planner) bounce(cur geometry.Point, c color.RGBA) ([]geometry.Line, bool) {
	for i := range p.Walls {
		wall := p.Walls[i]
		hit := geometry.LineSegmentIntersect(p.traj, &wall)
		if hit == nil || cur.DistanceSquared(*hit) < 1e-9 {
			continue
		}

		toWall := geometry.LineFromPoints(cur, *hit, c)
		dir := geometry.Reflect(geometry.Pt(hit.X-cur.X, hit.Y-cur.Y), wall)
		reflected := geometry.NewLine(hit.X, hit.Y, hit.X+dir.X, hit.Y+dir.Y, c)

		p.traj = nil
		ip := geometry.LineIntersect(&reflected, p.Axis)
		if ip != nil && (ip.X-hit.X)*dir.X+(ip.Y-hit.Y)*dir.Y > 0 {
			p.traj = geometry.GetLine(*hit, ip, c)
		}

		p.logger.Debug("trajectory bounce",
			"wall", i,
			"hit", hit.String(),
			"intercept", p.traj != nil)

		if p.traj == nil {
			return []geometry.Line{toWall}, true
		}
		return []geometry.Line{toWall, *p.traj}, true
	}
	return nil, false
}

// Trajectory returns the segment that ends on the axis, or nil. When
// calculate is true the prediction is refreshed first; otherwise the result
// of the last TrajectoryList call is returned.
func (p *Planner) Trajectory(calculate bool, c color.RGBA) *geometry.Line {
	if calculate {
		p.TrajectoryList(c)
	}
	return p.traj
}

// Segments returns the segments of the last prediction, for drawing.
func (p *Planner) Segments() []geometry.Line {
	return p.segments
}

// Intercept returns the end point of the last prediction clamped onto the
// axis segment, or nil.
func (p *Planner) Intercept() *geometry.Point {
	if p.traj == nil || p.Axis == nil {
		return nil
	}
	end := p.traj.P2()
	return geometry.ClampPointToLine(&end, *p.Axis)
}
