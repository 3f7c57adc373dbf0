// Package capture provides frame sources for the control loop.
//
// # Sources
//
//   - DirSource replays still images from a directory, sorted by name
//   - Camera reads from a video device (requires the gocv build tag)
//   - Latest wraps any Source with a background reader that keeps only the
//     newest frame
//
// Every Source returns io.EOF once it has no more frames.
package capture
