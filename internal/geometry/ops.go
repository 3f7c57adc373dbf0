package geometry

import (
	"image/color"
	"math"
)

const (
	// degenerateEps is the squared length below which a line is treated as a point.
	degenerateEps = 0.00001

	// parallelEps is the determinant magnitude below which two lines are parallel.
	parallelEps = 0.0001

	// segmentEps absorbs rounding when testing whether a point lies on a segment.
	segmentEps = 1e-6
)

// Clamp bounds v into [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

// ClampPointToLine clamps p into the bounding box of ln. The x coordinate is
// bounded by the line's x extent and y by its y extent, independently.
// A nil point yields nil.
func ClampPointToLine(p *Point, ln Line) *Point {
	if p == nil {
		return nil
	}
	return &Point{
		X:     Clamp(p.X, math.Min(ln.X1, ln.X2), math.Max(ln.X1, ln.X2)),
		Y:     Clamp(p.Y, math.Min(ln.Y1, ln.Y2), math.Max(ln.Y1, ln.Y2)),
		Color: p.Color,
	}
}

// DistanceFromLine measures how far each point is from ln.
//
// Each point is projected onto the infinite line through the segment using
// u = ((p - p1)·d) / (d·d). The parameter u is clamped to [-1, 1], which is
// wider than the segment on purpose so targets just past a marker still
// project, and the projected point is then clamped into the segment's
// bounding box with ClampPointToLine.
//
// The returned slices are parallel to pts. For a degenerate (zero-length)
// line every entry is a nil point with distance -1. A nil line yields two
// empty slices. When squared is true the distances are not square-rooted.
func DistanceFromLine(pts []Point, ln *Line, squared bool) ([]*Point, []float64) {
	points := make([]*Point, 0, len(pts))
	distances := make([]float64, 0, len(pts))
	if ln == nil {
		return points, distances
	}

	lineDot := ln.DX*ln.DX + ln.DY*ln.DY
	for _, p := range pts {
		if lineDot <= degenerateEps {
			points = append(points, nil)
			distances = append(distances, -1)
			continue
		}

		u := ((p.X-ln.X1)*ln.DX + (p.Y-ln.Y1)*ln.DY) / lineDot
		u = Clamp(u, -1, 1)

		proj := ClampPointToLine(&Point{X: ln.X1 + u*ln.DX, Y: ln.Y1 + u*ln.DY}, *ln)
		dist := p.DistanceSquared(*proj)
		if !squared {
			dist = math.Sqrt(dist)
		}
		points = append(points, proj)
		distances = append(distances, dist)
	}
	return points, distances
}

// LineIntersect returns the intersection of the infinite lines through ln1
// and ln2, or nil if either is nil or they are parallel.
//
// Segment containment is not checked; see LineSegmentIntersect.
func LineIntersect(ln1, ln2 *Line) *Point {
	if ln1 == nil || ln2 == nil {
		return nil
	}

	xdiff := [2]float64{ln1.X1 - ln1.X2, ln2.X1 - ln2.X2}
	ydiff := [2]float64{ln1.Y1 - ln1.Y2, ln2.Y1 - ln2.Y2}

	div := det(xdiff, ydiff)
	if math.Abs(div) < parallelEps {
		return nil
	}

	d := [2]float64{
		det([2]float64{ln1.X1, ln1.Y1}, [2]float64{ln1.X2, ln1.Y2}),
		det([2]float64{ln2.X1, ln2.Y1}, [2]float64{ln2.X2, ln2.Y2}),
	}
	return &Point{
		X: det(d, xdiff) / div,
		Y: det(d, ydiff) / div,
	}
}

// LineSegmentIntersect returns the intersection of ln1 and ln2 only if it
// lies within the bounding boxes of both segments.
func LineSegmentIntersect(ln1, ln2 *Line) *Point {
	p := LineIntersect(ln1, ln2)
	if p == nil {
		return nil
	}
	if !inBounds(*p, *ln1) || !inBounds(*p, *ln2) {
		return nil
	}
	return p
}

// MinIndex returns the index of the smallest value. Ties resolve to the first
// occurrence. ok is false for an empty slice.
func MinIndex(values []float64) (idx int, ok bool) {
	if len(values) == 0 {
		return 0, false
	}
	for i, v := range values {
		if v < values[idx] {
			idx = i
		}
	}
	return idx, true
}

// GetLine returns the directional line from a to b, or nil if b is nil.
func GetLine(a Point, b *Point, c color.RGBA) *Line {
	if b == nil {
		return nil
	}
	ln := LineFromPoints(a, *b, c)
	return &ln
}

// LineBetweenCircles returns the line joining the centers of a and b.
func LineBetweenCircles(a, b Circle, c color.RGBA) Line {
	return NewLine(a.X, a.Y, b.X, b.Y, c)
}

// LineBetweenMarkers returns the robot axis through exactly two marker
// circles, or nil for any other count.
func LineBetweenMarkers(markers []Circle, c color.RGBA) *Line {
	if len(markers) != 2 {
		return nil
	}
	ln := LineBetweenCircles(markers[0], markers[1], c)
	return &ln
}

// Reflect mirrors the direction vector dir across the direction of wall.
// A degenerate wall returns dir unchanged.
func Reflect(dir Point, wall Line) Point {
	wallLen := math.Hypot(wall.DX, wall.DY)
	if wallLen < segmentEps {
		return dir
	}
	wx := wall.DX / wallLen
	wy := wall.DY / wallLen
	dot := dir.X*wx + dir.Y*wy
	return Point{X: 2*dot*wx - dir.X, Y: 2*dot*wy - dir.Y}
}

func det(a, b [2]float64) float64 {
	return a[0]*b[1] - a[1]*b[0]
}

func inBounds(p Point, ln Line) bool {
	return p.X >= math.Min(ln.X1, ln.X2)-segmentEps &&
		p.X <= math.Max(ln.X1, ln.X2)+segmentEps &&
		p.Y >= math.Min(ln.Y1, ln.Y2)-segmentEps &&
		p.Y <= math.Max(ln.Y1, ln.Y2)+segmentEps
}
