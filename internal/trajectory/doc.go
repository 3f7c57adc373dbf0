// Package trajectory predicts where a tracked object will cross the robot axis.
//
// # Phases
//
// A Planner keeps a ring buffer of the last N positions of one object:
//   - Warm-up: fewer than N points collected, no prediction is made
//   - Steady state: every call fits a line through the buffer and
//     intersects it with the axis
//
// # Fit
//
// The heading is an ordinary least-squares line through the N buffered
// points, with no weighting and no outlier rejection. A single noisy
// detection can swing the prediction; this is accepted for reaction time.
// When the x positions have (almost) no spread the fit falls back to a
// vertical line through the newest point.
//
// # Bounces
//
// With bounces enabled the straight prediction is tested against each wall.
// On the first wall it crosses, the heading is mirrored across the wall and
// intersected with the axis again. Only one reflection is modelled; a
// configured bounce count above one behaves like one.
package trajectory
