package control

import (
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ironsheep/robot-goalie/internal/colors"
	"github.com/ironsheep/robot-goalie/internal/geometry"
	"github.com/ironsheep/robot-goalie/internal/imaging"
	"github.com/ironsheep/robot-goalie/internal/protocol"
	"github.com/ironsheep/robot-goalie/internal/scene"
	"github.com/ironsheep/robot-goalie/internal/trajectory"
)

// Config holds the loop timing and interlock thresholds.
type Config struct {
	// PacketDelay sends a command on every PacketDelay-th frame (K).
	PacketDelay int

	// SafetyMarginPct is the fraction of the axis length, in percent, kept
	// clear at each end.
	SafetyMarginPct float64

	// SolenoidThreshold and StopThreshold are object-to-robot distances in
	// pixels.
	SolenoidThreshold float64
	StopThreshold     float64

	// SolenoidDuration is sent with every strike.
	SolenoidDuration time.Duration

	// MaxMisses is the number of consecutive frames without a tracked
	// object after which the trajectory buffer is dropped.
	MaxMisses int

	// Setup is applied to every frame Run reads.
	Setup imaging.FrameSetup

	// SkipFrameErrors makes Run log failed reads and continue instead of
	// returning.
	SkipFrameErrors bool
}

// Annotator receives every processed frame, for drawing or recording.
// It is called on the control goroutine and must not retain res.Segments
// past the call.
type Annotator interface {
	Annotate(frame *imaging.Frame, res Result)
}

// AnnotatorFunc adapts a function to Annotator.
type AnnotatorFunc func(frame *imaging.Frame, res Result)

// Annotate calls f.
func (f AnnotatorFunc) Annotate(frame *imaging.Frame, res Result) {
	f(frame, res)
}

// Result describes what one Step saw and did.
type Result struct {
	// Frame is the 1-based index of the frame in this session.
	Frame int

	Snapshot scene.Snapshot

	// Target is the object fed to the planner, or nil.
	Target *geometry.Point

	// Segments is the predicted path; Intercept is its end clamped onto
	// the axis, or nil.
	Segments  []geometry.Line
	Intercept *geometry.Point

	// Packets were handed to the Sender this frame, whether or not the
	// send succeeded.
	Packets []protocol.Packet
}

// Controller drives one robot. It is not safe for concurrent use; Run and
// Step must be called from a single goroutine.
type Controller struct {
	cfg       Config
	locator   *scene.Locator
	planner   *trajectory.Planner
	sender    Sender
	annotator Annotator
	metrics   *Metrics
	logger    *slog.Logger
	session   string

	frames    int
	misses    int
	setupSent bool
}

// New returns a Controller. A PacketDelay or MaxMisses below one is treated
// as one and a nil logger uses slog.Default().
func New(cfg Config, locator *scene.Locator, planner *trajectory.Planner, sender Sender, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.PacketDelay < 1 {
		cfg.PacketDelay = 1
	}
	if cfg.MaxMisses < 1 {
		cfg.MaxMisses = 1
	}
	session := uuid.NewString()
	return &Controller{
		cfg:     cfg,
		locator: locator,
		planner: planner,
		sender:  sender,
		metrics: NewMetrics(),
		logger:  logger.With("session", session),
		session: session,
	}
}

// SetAnnotator installs a (nil-able) per-frame callback.
func (c *Controller) SetAnnotator(a Annotator) {
	c.annotator = a
}

// Metrics returns the controller's counters.
func (c *Controller) Metrics() *Metrics {
	return c.metrics
}

// Session returns the id attached to every log line of this controller.
func (c *Controller) Session() string {
	return c.session
}

// Step processes one preprocessed frame.
//
// Detection misses never fail a step: a frame without two markers, a robot,
// a tracked object or an intercept simply sends no command. After MaxMisses
// consecutive frames without a tracked object the planner is reset, so a
// prediction never outlives the object it was made from.
//
// The first frame with both markers and the robot also sends SM. A failed SM
// is sent again on the next such frame.
func (c *Controller) Step(frame *imaging.Frame) Result {
	c.frames++
	res := Result{Frame: c.frames}

	snap := c.locator.Locate(frame.HSV)
	res.Snapshot = snap

	c.planner.Axis = snap.Axis
	c.planner.Walls = snap.Rails

	res.Target = closestToAxis(snap.Objects, snap.Axis)
	if res.Target == nil {
		c.misses++
		if c.misses == c.cfg.MaxMisses {
			c.logger.Debug("object lost, dropping trajectory", "frame", res.Frame, "misses", c.misses)
			c.planner.Reset()
		}
	} else {
		c.misses = 0
	}
	c.planner.AddPoint(res.Target)
	res.Segments = c.planner.TrajectoryList(colors.Cyan.Display())
	res.Intercept = c.planner.Intercept()

	if snap.Complete() {
		if !c.setupSent {
			setup := protocol.Setup{
				Axis1: snap.Markers[0].Center(),
				Axis2: snap.Markers[1].Center(),
				Robot: snap.Robot.Center(),
			}
			res.Packets = append(res.Packets, setup)
			c.setupSent = c.send(setup)
		}

		if res.Target != nil && res.Intercept != nil && c.frames%c.cfg.PacketDelay == 0 {
			if obj := c.planner.Current(); obj != nil {
				p := c.Decide(snap, *obj, *res.Intercept)
				res.Packets = append(res.Packets, p)
				c.send(p)
			}
		}
	}

	c.metrics.frame()
	c.logger.Debug("frame processed",
		"frame", res.Frame,
		"objects", len(snap.Objects),
		"segments", len(res.Segments),
		"packets", len(res.Packets))

	if c.annotator != nil {
		c.annotator.Annotate(frame, res)
	}
	return res
}

// Decide applies the interlocks to pick the command for this frame. snap
// must be Complete; object is the tracked object's position and intercept
// the clamped crossing point.
func (c *Controller) Decide(snap scene.Snapshot, object, intercept geometry.Point) protocol.Packet {
	robot := snap.Robot.Center()

	margin := c.cfg.SafetyMarginPct / 100 * snap.Axis.Length
	for _, m := range snap.Markers {
		if robot.Distance(m.Center()) <= margin {
			c.logger.Debug("robot inside safety margin", "robot", robot.String(), "marker", m.Center().String())
			return protocol.Kill{}
		}
	}

	dist := robot.Distance(object)
	switch {
	case dist <= c.cfg.SolenoidThreshold:
		return protocol.Strike{Duration: c.cfg.SolenoidDuration}
	case dist <= c.cfg.StopThreshold:
		return protocol.Kill{}
	}
	return protocol.Move{Robot: robot, Target: intercept}
}

// send reports whether p was delivered. Failures are logged and counted,
// never returned.
func (c *Controller) send(p protocol.Packet) bool {
	if c.sender == nil {
		return false
	}
	if err := c.sender.Send(p); err != nil {
		c.metrics.sendErrors.Add(1)
		c.logger.Warn("failed to send packet", "kind", p.Kind(), "error", err)
		return false
	}
	c.metrics.sent(p.Kind())
	c.logger.Debug("packet sent", "packet", strings.TrimSpace(string(protocol.Encode(p))))
	return true
}

// closestToAxis returns the centre of the object nearest the axis, or nil
// when there is no axis or no object.
func closestToAxis(objects []geometry.Circle, axis *geometry.Line) *geometry.Point {
	pts := make([]geometry.Point, len(objects))
	for i, o := range objects {
		pts[i] = o.Center()
	}
	_, dist := geometry.DistanceFromLine(pts, axis, false)
	idx, ok := geometry.MinIndex(dist)
	if !ok {
		return nil
	}
	return &pts[idx]
}
