// Package protocol implements the text command protocol between the control
// loop and the remote actuator.
//
// # Packets
//
// Each packet is one line of whitespace-separated fields, led by a token:
//
//	SM <axis1 x,y> <axis2 x,y> <robot x,y>   one-time setup
//	MM <robot x,y> <target x,y>              move toward target
//	KM                                       stop the motor
//	AS <durationMs>                          fire the solenoid
//
// Coordinates are integer pixels in the working frame, written "x,y".
//
// # Framing
//
// Every packet ends with a newline and the Reader scans one line at a time,
// so several packets arriving in one read, or one packet split across reads,
// decode correctly. Blank lines are skipped.
package protocol
