package geometry

import (
	"fmt"
	"image/color"
	"math"
)

// VerticalSlope stands in for the undefined slope of a vertical line.
const VerticalSlope = 99999.0

// DefaultThickness is the display thickness used for lines that do not set one.
const DefaultThickness = 3

// Point is a 2D position with an optional display color.
type Point struct {
	X     float64
	Y     float64
	Color color.RGBA
}

// Pt is shorthand for an uncolored Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// String formats the point as "x,y" using truncated integer pixel values,
// the representation used on the actuator wire.
func (p Point) String() string {
	return fmt.Sprintf("%d,%d", int(p.X), int(p.Y))
}

// DistanceSquared returns the squared Euclidean distance between p and q.
func (p Point) DistanceSquared(q Point) float64 {
	dx := q.X - p.X
	dy := q.Y - p.Y
	return dx*dx + dy*dy
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Sqrt(p.DistanceSquared(q))
}

// Circle is a detected blob or fixed marker.
//
// X, Y and Radius describe the minimum enclosing circle. Centroid comes from
// the image moments of the same contour; it is usually a little steadier
// between frames, so both are kept.
type Circle struct {
	X        float64
	Y        float64
	Radius   float64
	Centroid Point
	Color    color.RGBA
}

// Center returns the enclosing-circle center as a Point.
func (c Circle) Center() Point {
	return Point{X: c.X, Y: c.Y, Color: c.Color}
}

// Line is a segment from (X1, Y1) to (X2, Y2).
//
// The derived fields are filled in by NewLine:
//   - DX, DY: X2-X1 and Y2-Y1
//   - Slope: DY/DX, or VerticalSlope when |DX| < 1e-4
//   - Intercept: the y-intercept of y = Slope*x + Intercept
//   - Length: Euclidean length of the segment
type Line struct {
	X1, Y1    float64
	X2, Y2    float64
	DX, DY    float64
	Slope     float64
	Intercept float64
	Length    float64
	Color     color.RGBA
	Thickness int
}

// NewLine builds a Line from (x1, y1) to (x2, y2) and computes its derived fields.
func NewLine(x1, y1, x2, y2 float64, c color.RGBA) Line {
	ln := Line{
		X1:        x1,
		Y1:        y1,
		X2:        x2,
		Y2:        y2,
		DX:        x2 - x1,
		DY:        y2 - y1,
		Color:     c,
		Thickness: DefaultThickness,
	}
	if math.Abs(ln.DX) < 0.0001 {
		ln.Slope = VerticalSlope
	} else {
		ln.Slope = ln.DY / ln.DX
	}
	ln.Intercept = y1 - ln.Slope*x1
	ln.Length = math.Hypot(ln.DX, ln.DY)
	return ln
}

// LineFromPoints builds a Line from a to b.
func LineFromPoints(a, b Point, c color.RGBA) Line {
	return NewLine(a.X, a.Y, b.X, b.Y, c)
}

// P1 returns the first end point.
func (ln Line) P1() Point {
	return Point{X: ln.X1, Y: ln.Y1}
}

// P2 returns the second end point.
func (ln Line) P2() Point {
	return Point{X: ln.X2, Y: ln.Y2}
}

// Degenerate reports whether the segment has (almost) zero length.
func (ln Line) Degenerate() bool {
	return ln.DX*ln.DX+ln.DY*ln.DY <= degenerateEps
}
