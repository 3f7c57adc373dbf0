// Package control runs the per-frame perception-to-actuation loop.
//
// A Controller owns the scene locator and the trajectory planner for one
// robot. Each call to Step locates the scene in a preprocessed frame, feeds
// the object closest to the robot axis into the planner and, every
// PacketDelay frames, turns the predicted intercept into an actuator packet.
// Nothing is sent on a frame where no object was seen, and MaxMisses such
// frames in a row drop the planner's buffer.
//
// # Interlocks
//
// Before a move is sent the following checks run in order:
//
//  1. Robot within SafetyMarginPct of the axis length from either marker: KM
//  2. Object within SolenoidThreshold pixels of the robot: AS
//  3. Object within StopThreshold pixels of the robot: KM
//  4. Otherwise: MM toward the clamped intercept
//
// # Transport
//
// Packets go through a Sender. Send errors are logged, counted and dropped;
// the loop never waits for the actuator.
package control
