// Package geometry provides the 2D primitives shared by the scene locator,
// the trajectory planner and the control loop.
//
// # Coordinate System
//
// All coordinates are real-valued pixel positions in the working frame:
//   - Origin (0, 0) at the top-left corner
//   - X increases rightward
//   - Y increases downward
//
// # Optional Values
//
// Detection misses and geometric degeneracies are never reported as errors.
// Functions that may have no answer return a nil *Point or *Line instead:
//   - LineIntersect returns nil for parallel or missing lines
//   - GetLine returns nil when the end point is missing
//   - DistanceFromLine reports a nil point and a distance of -1 for a
//     zero-length line
//
// Callers are expected to nil-check every optional result.
//
// # Lines
//
// A Line is directional (point 1 to point 2) when it describes a trajectory
// and non-directional when used as a robot axis or rail. Intersection is
// always computed between the infinite lines through the segments; use
// LineSegmentIntersect when the crossing must lie on both segments.
package geometry
