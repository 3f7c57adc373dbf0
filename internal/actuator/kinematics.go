package actuator

import (
	"math"

	"github.com/ironsheep/robot-goalie/internal/geometry"
)

// Kinematics converts pixel displacements along the robot axis into motor
// steps.
//
// The axis spans AxisPixels in the image and EdgeLengthCM on the table. One
// motor revolution moves the robot by the circumference of a gear of radius
// GearRadiusCM.
type Kinematics struct {
	StepsPerRev  int
	GearRadiusCM float64
	EdgeLengthCM float64
	Reverse      bool

	// Axis1 and Axis2 are the axis end points from the SM packet.
	Axis1 geometry.Point
	Axis2 geometry.Point
}

// AxisPixels returns the axis length in pixels.
func (k Kinematics) AxisPixels() float64 {
	return k.Axis1.Distance(k.Axis2)
}

// PixelsPerCM returns the image scale along the axis, or 0 if it is
// undefined.
func (k Kinematics) PixelsPerCM() float64 {
	if k.EdgeLengthCM <= 0 {
		return 0
	}
	return k.AxisPixels() / k.EdgeLengthCM
}

// Steps returns the signed number of steps that moves the robot from robot
// to target. Only the component of the displacement along the axis counts;
// positive is toward Axis2, or toward Axis1 when Reverse is set. A degenerate
// axis or gear yields zero.
func (k Kinematics) Steps(robot, target geometry.Point) int {
	axisLen := k.AxisPixels()
	scale := k.PixelsPerCM()
	circum := 2 * math.Pi * k.GearRadiusCM
	if axisLen < 1e-9 || scale <= 0 || circum <= 0 || k.StepsPerRev <= 0 {
		return 0
	}

	ux := (k.Axis2.X - k.Axis1.X) / axisLen
	uy := (k.Axis2.Y - k.Axis1.Y) / axisLen
	px := (target.X-robot.X)*ux + (target.Y-robot.Y)*uy

	revs := px / scale / circum
	steps := int(math.Round(revs * float64(k.StepsPerRev)))
	if k.Reverse {
		steps = -steps
	}
	return steps
}
