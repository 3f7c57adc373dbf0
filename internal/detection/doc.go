// Package detection finds coloured blobs in HSV working frames and reduces
// each one to a circle.
//
// # Pipeline
//
// FindCircles runs a threshold, clean, contour, fit pipeline per colour:
//
//  1. Threshold: OR of the profile's two HSV ranges
//  2. Clean: erode then dilate, twice each
//  3. Contours: 8-connected regions of the cleaned mask
//  4. Select: bounded top-K by area (a min-heap, not a full sort)
//  5. Fit: minimum enclosing circle plus moment centroid
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//
// # Failure Modes
//
// Nothing in this package returns an error. A frame with no matching pixels,
// or a call with no trackable profile, yields an empty slice. Callers decide
// what a miss means.
//
// # Limitations
//
//   - Region area counts member pixels, so holes inside a blob do not count
//     towards its area
//   - Touching blobs of the same colour merge into one region
//   - Only the largest blobs per colour are considered; small distant objects
//     are dropped when larger ones are present
package detection
