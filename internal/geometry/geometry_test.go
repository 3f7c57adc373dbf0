package geometry

import (
	"image/color"
	"math"
	"testing"
)

const tolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestNewLine(t *testing.T) {
	ln := NewLine(0, 0, 3, 4, color.RGBA{})
	if ln.DX != 3 || ln.DY != 4 {
		t.Errorf("expected dx,dy = 3,4, got %v,%v", ln.DX, ln.DY)
	}
	if !almostEqual(ln.Slope, 4.0/3.0) {
		t.Errorf("expected slope 4/3, got %v", ln.Slope)
	}
	if ln.Intercept != 0 {
		t.Errorf("expected intercept 0, got %v", ln.Intercept)
	}
	if ln.Length != 5 {
		t.Errorf("expected length 5, got %v", ln.Length)
	}
	if ln.Thickness != DefaultThickness {
		t.Errorf("expected default thickness, got %d", ln.Thickness)
	}
}

func TestNewLineVertical(t *testing.T) {
	ln := NewLine(100, 10, 100, 50, color.RGBA{})
	if ln.Slope != VerticalSlope {
		t.Errorf("expected vertical slope sentinel, got %v", ln.Slope)
	}
	if want := 10 - VerticalSlope*100; ln.Intercept != want {
		t.Errorf("expected intercept %v, got %v", want, ln.Intercept)
	}
}

func TestPointString(t *testing.T) {
	tests := []struct {
		p    Point
		want string
	}{
		{Pt(0, 0), "0,0"},
		{Pt(100.9, 240.2), "100,240"},
		{Pt(-3.7, 5), "-3,5"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("String(%v,%v) = %q, want %q", tt.p.X, tt.p.Y, got, tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
		{0, 0, 0, 0},
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestClampPointToLineStaysInBounds(t *testing.T) {
	lines := []Line{
		NewLine(0, 240, 640, 240, color.RGBA{}),
		NewLine(640, 0, 0, 480, color.RGBA{}),
		NewLine(50, 400, 50, 10, color.RGBA{}),
	}
	points := []Point{
		Pt(-100, -100), Pt(1000, 1000), Pt(320, 240), Pt(50, 9999), Pt(-5, 300),
	}

	for _, ln := range lines {
		for _, p := range points {
			got := ClampPointToLine(&p, ln)
			if got == nil {
				t.Fatalf("ClampPointToLine returned nil for non-nil point")
			}
			if got.X < math.Min(ln.X1, ln.X2) || got.X > math.Max(ln.X1, ln.X2) {
				t.Errorf("x %v outside [%v, %v]", got.X, ln.X1, ln.X2)
			}
			if got.Y < math.Min(ln.Y1, ln.Y2) || got.Y > math.Max(ln.Y1, ln.Y2) {
				t.Errorf("y %v outside [%v, %v]", got.Y, ln.Y1, ln.Y2)
			}
		}
	}
}

func TestClampPointToLineNil(t *testing.T) {
	if got := ClampPointToLine(nil, NewLine(0, 0, 1, 1, color.RGBA{})); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestDistanceFromLine(t *testing.T) {
	ln := NewLine(0, 240, 640, 240, color.RGBA{})
	pts := []Point{Pt(100, 100), Pt(320, 250), Pt(700, 240)}

	proj, dist := DistanceFromLine(pts, &ln, false)
	if len(proj) != len(pts) || len(dist) != len(pts) {
		t.Fatalf("expected %d results, got %d points and %d distances", len(pts), len(proj), len(dist))
	}

	want := []struct {
		x, y, d float64
	}{
		{100, 240, 140},
		{320, 240, 10},
		{640, 240, 60},
	}
	for i, w := range want {
		if proj[i] == nil {
			t.Fatalf("point %d: unexpected nil projection", i)
		}
		if !almostEqual(proj[i].X, w.x) || !almostEqual(proj[i].Y, w.y) {
			t.Errorf("point %d: projection = (%v,%v), want (%v,%v)", i, proj[i].X, proj[i].Y, w.x, w.y)
		}
		if !almostEqual(dist[i], w.d) {
			t.Errorf("point %d: distance = %v, want %v", i, dist[i], w.d)
		}
	}

	_, sq := DistanceFromLine(pts[:1], &ln, true)
	if !almostEqual(sq[0], 140*140) {
		t.Errorf("squared distance = %v, want %v", sq[0], 140*140)
	}
}

func TestDistanceFromLineDegenerate(t *testing.T) {
	ln := NewLine(10, 10, 10, 10, color.RGBA{})
	pts := []Point{Pt(0, 0), Pt(10, 10)}

	proj, dist := DistanceFromLine(pts, &ln, false)
	if len(proj) != 2 || len(dist) != 2 {
		t.Fatalf("expected two results, got %d/%d", len(proj), len(dist))
	}
	for i := range pts {
		if proj[i] != nil {
			t.Errorf("point %d: expected nil projection on degenerate line", i)
		}
		if dist[i] != -1 {
			t.Errorf("point %d: expected -1 distance, got %v", i, dist[i])
		}
	}
}

func TestDistanceFromLineNonDegenerateNeverSentinel(t *testing.T) {
	ln := NewLine(0, 0, 100, 0, color.RGBA{})
	// A point lying on the line has zero distance, not the sentinel.
	_, dist := DistanceFromLine([]Point{Pt(50, 0)}, &ln, false)
	if dist[0] != 0 {
		t.Errorf("expected 0 distance, got %v", dist[0])
	}
}

func TestDistanceFromLineNil(t *testing.T) {
	proj, dist := DistanceFromLine([]Point{Pt(1, 1)}, nil, false)
	if len(proj) != 0 || len(dist) != 0 {
		t.Errorf("expected empty results for nil line")
	}
}

func TestLineIntersect(t *testing.T) {
	axis := NewLine(0, 240, 640, 240, color.RGBA{})

	tests := []struct {
		name  string
		other Line
		want  *Point
	}{
		{"vertical", NewLine(100, 100, 100, 150, color.RGBA{}), &Point{X: 100, Y: 240}},
		{"diagonal", NewLine(0, 0, 10, 10, color.RGBA{}), &Point{X: 240, Y: 240}},
		{"reversed diagonal", NewLine(10, 10, 0, 0, color.RGBA{}), &Point{X: 240, Y: 240}},
		{"parallel", NewLine(0, 0, 640, 0, color.RGBA{}), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LineIntersect(&tt.other, &axis)
			if tt.want == nil {
				if got != nil {
					t.Errorf("expected nil, got %v,%v", got.X, got.Y)
				}
				return
			}
			if got == nil {
				t.Fatalf("expected intersection, got nil")
			}
			if !almostEqual(got.X, tt.want.X) || !almostEqual(got.Y, tt.want.Y) {
				t.Errorf("got (%v,%v), want (%v,%v)", got.X, got.Y, tt.want.X, tt.want.Y)
			}
		})
	}
}

func TestLineIntersectSelf(t *testing.T) {
	a := Circle{X: 10, Y: 20, Radius: 5}
	b := Circle{X: 200, Y: 80, Radius: 5}
	ln1 := LineBetweenCircles(a, b, color.RGBA{})
	ln2 := LineBetweenCircles(a, b, color.RGBA{})
	if got := LineIntersect(&ln1, &ln2); got != nil {
		t.Errorf("expected nil for identical lines, got %v", got)
	}
}

func TestLineIntersectNil(t *testing.T) {
	ln := NewLine(0, 0, 1, 1, color.RGBA{})
	if LineIntersect(nil, &ln) != nil || LineIntersect(&ln, nil) != nil {
		t.Error("expected nil when either line is nil")
	}
}

func TestLineSegmentIntersect(t *testing.T) {
	wall := NewLine(0, 0, 0, 480, color.RGBA{})

	hit := NewLine(100, 100, -100, 300, color.RGBA{})
	got := LineSegmentIntersect(&hit, &wall)
	if got == nil {
		t.Fatal("expected crossing segment to intersect wall")
	}
	if !almostEqual(got.X, 0) || !almostEqual(got.Y, 200) {
		t.Errorf("got (%v,%v), want (0,200)", got.X, got.Y)
	}

	// Infinite lines cross at (0, 600), below the wall segment.
	miss := NewLine(100, 500, 50, 550, color.RGBA{})
	if got := LineSegmentIntersect(&miss, &wall); got != nil {
		t.Errorf("expected nil for non-overlapping segments, got %v,%v", got.X, got.Y)
	}
}

func TestMinIndex(t *testing.T) {
	tests := []struct {
		values []float64
		want   int
		ok     bool
	}{
		{nil, 0, false},
		{[]float64{3}, 0, true},
		{[]float64{3, 1, 2}, 1, true},
		{[]float64{2, 1, 1}, 1, true},
		{[]float64{-1, 5, -1}, 0, true},
	}
	for _, tt := range tests {
		got, ok := MinIndex(tt.values)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("MinIndex(%v) = %d,%v want %d,%v", tt.values, got, ok, tt.want, tt.ok)
		}
	}
}

func TestGetLine(t *testing.T) {
	if GetLine(Pt(0, 0), nil, color.RGBA{}) != nil {
		t.Error("expected nil line for missing end point")
	}
	b := Pt(3, 4)
	ln := GetLine(Pt(0, 0), &b, color.RGBA{})
	if ln == nil {
		t.Fatal("expected line")
	}
	if ln.X2 != 3 || ln.Y2 != 4 || ln.Length != 5 {
		t.Errorf("unexpected line %+v", *ln)
	}
}

func TestLineBetweenMarkers(t *testing.T) {
	if LineBetweenMarkers([]Circle{{X: 1, Y: 1}}, color.RGBA{}) != nil {
		t.Error("expected nil axis for a single marker")
	}
	ln := LineBetweenMarkers([]Circle{{X: 0, Y: 240}, {X: 640, Y: 240}}, color.RGBA{})
	if ln == nil || ln.Length != 640 {
		t.Errorf("unexpected axis %+v", ln)
	}
}

func TestReflect(t *testing.T) {
	wall := NewLine(0, 0, 0, 480, color.RGBA{})

	got := Reflect(Pt(-1, 1), wall)
	if math.Abs(got.X-1) > tolerance || math.Abs(got.Y-1) > tolerance {
		t.Errorf("Reflect = (%v,%v), want (1,1)", got.X, got.Y)
	}

	horizontal := NewLine(0, 0, 640, 0, color.RGBA{})
	got = Reflect(Pt(2, -3), horizontal)
	if math.Abs(got.X-2) > tolerance || math.Abs(got.Y-3) > tolerance {
		t.Errorf("Reflect = (%v,%v), want (2,3)", got.X, got.Y)
	}
}
