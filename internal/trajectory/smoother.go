package trajectory

import (
	kalman_filter "github.com/LdDl/kalman-filter"
	"github.com/pkg/errors"

	"github.com/ironsheep/robot-goalie/internal/geometry"
)

// Smoother filters tracked positions before they reach the fit.
type Smoother interface {
	Smooth(p geometry.Point) (geometry.Point, error)
	Reset()
}

// KalmanOptions tunes the constant-acceleration Kalman filter.
type KalmanOptions struct {
	// DT is the time step between frames, in frames (1.0 by default).
	DT float64

	// Accel is the process noise standard deviation.
	Accel float64

	// MeasX and MeasY are the measurement noise standard deviations.
	MeasX float64
	MeasY float64
}

// DefaultKalmanOptions returns the filter tuning used by the tracker.
func DefaultKalmanOptions() KalmanOptions {
	return KalmanOptions{DT: 1.0, Accel: 2.0, MeasX: 0.1, MeasY: 0.1}
}

// KalmanSmoother runs every position through a 2D Kalman filter. The filter
// is created lazily on the first point so its state starts there.
type KalmanSmoother struct {
	opts KalmanOptions
	kf   *kalman_filter.Kalman2D
}

// NewKalmanSmoother returns a smoother tuned by opts. Zero fields take the
// defaults.
func NewKalmanSmoother(opts KalmanOptions) *KalmanSmoother {
	def := DefaultKalmanOptions()
	if opts.DT <= 0 {
		opts.DT = def.DT
	}
	if opts.Accel <= 0 {
		opts.Accel = def.Accel
	}
	if opts.MeasX <= 0 {
		opts.MeasX = def.MeasX
	}
	if opts.MeasY <= 0 {
		opts.MeasY = def.MeasY
	}
	return &KalmanSmoother{opts: opts}
}

// Smooth predicts, corrects with p and returns the filtered position.
func (s *KalmanSmoother) Smooth(p geometry.Point) (geometry.Point, error) {
	if s.kf == nil {
		s.kf = kalman_filter.NewKalman2D(s.opts.DT, 1.0, 1.0, s.opts.Accel, s.opts.MeasX, s.opts.MeasY,
			kalman_filter.WithState2D(p.X, p.Y))
		return p, nil
	}

	s.kf.Predict()
	if err := s.kf.Update(p.X, p.Y); err != nil {
		return p, errors.Wrap(err, "Can't update position filter")
	}
	x, y := s.kf.GetState()
	return geometry.Point{X: x, Y: y, Color: p.Color}, nil
}

// Reset discards the filter state.
func (s *KalmanSmoother) Reset() {
	s.kf = nil
}
