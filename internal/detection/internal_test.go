package detection

import (
	"image"
	"math"
	"testing"
)

func TestTopK(t *testing.T) {
	values := []float64{3, 9, 1, 7, 5}
	id := func(v float64) float64 { return v }

	got := topK(values, 3, id)
	want := []float64{9, 7, 5}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
			break
		}
	}

	if got := topK(values, 10, id); len(got) != len(values) || got[0] != 9 || got[4] != 1 {
		t.Errorf("k larger than input: got %v", got)
	}
	if got := topK(values, 0, id); len(got) != 0 {
		t.Errorf("k = 0: got %v", got)
	}
	if got := topK[float64](nil, 2, id); got == nil || len(got) != 0 {
		t.Errorf("empty input: got %v", got)
	}
}

func TestMinEnclosingCircle(t *testing.T) {
	tests := []struct {
		name    string
		pts     []image.Point
		x, y, r float64
	}{
		{"single", []image.Point{{5, 5}}, 5, 5, 0},
		{"pair", []image.Point{{0, 0}, {10, 0}}, 5, 0, 5},
		{"square", []image.Point{{0, 0}, {10, 0}, {0, 10}, {10, 10}, {5, 5}}, 5, 5, math.Sqrt(50)},
		{"collinear", []image.Point{{0, 0}, {4, 0}, {10, 0}}, 5, 0, 5},
		{"triangle", []image.Point{{0, 0}, {6, 0}, {3, 3}}, 3, 0, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, r := minEnclosingCircle(tt.pts)
			if math.Abs(x-tt.x) > 1e-6 || math.Abs(y-tt.y) > 1e-6 || math.Abs(r-tt.r) > 1e-6 {
				t.Errorf("got (%v, %v, r=%v), want (%v, %v, r=%v)", x, y, r, tt.x, tt.y, tt.r)
			}
			for _, p := range tt.pts {
				if math.Hypot(float64(p.X)-x, float64(p.Y)-y) > r+1e-6 {
					t.Errorf("point %v outside circle", p)
				}
			}
		})
	}
}

func TestFindComponents(t *testing.T) {
	grid := [][]bool{
		{true, true, false, false},
		{true, false, false, true},
		{false, false, false, true},
		{false, false, true, false},
	}

	comps := findComponents(grid)
	if len(comps) != 2 {
		t.Fatalf("expected 2 components, got %d", len(comps))
	}
	if comps[0].area() != 3 {
		t.Errorf("first component area = %v, want 3", comps[0].area())
	}
	// (3,1), (3,2) and the diagonal (2,3) form one region.
	if comps[1].area() != 3 {
		t.Errorf("second component area = %v, want 3", comps[1].area())
	}

	m00, m10, m01 := comps[0].moments()
	if m00 != 3 || m10 != 1 || m01 != 1 {
		t.Errorf("moments = %v %v %v, want 3 1 1", m00, m10, m01)
	}
}
