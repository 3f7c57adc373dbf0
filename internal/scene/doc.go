// Package scene locates the robot system in a working frame.
//
// A frame holds four kinds of coloured markers:
//   - the robot itself (one blob)
//   - two axis markers at the ends of the robot's line of travel
//   - two rail anchors, each joined to its nearest axis marker to form a rail
//   - the tracked objects
//
// The axis and rails only exist when both markers (and both anchors) are
// found in the same frame. Nothing here survives between frames; Locate
// builds a fresh Snapshot every time.
package scene
