package detection

import (
	"image"
	"math"
	"math/rand/v2"
)

// enclosingEps absorbs rounding when testing circle containment.
const enclosingEps = 1e-7

type disc struct {
	x, y, r float64
}

func (d disc) contains(p image.Point) bool {
	return math.Hypot(float64(p.X)-d.x, float64(p.Y)-d.y) <= d.r+enclosingEps
}

// minEnclosingCircle returns the smallest circle containing every point.
//
// Uses the iterative form of Welzl's algorithm over a shuffled copy of pts,
// which runs in expected linear time. The shuffle is seeded so results are
// repeatable frame to frame.
func minEnclosingCircle(pts []image.Point) (x, y, r float64) {
	if len(pts) == 0 {
		return 0, 0, 0
	}

	shuffled := make([]image.Point, len(pts))
	copy(shuffled, pts)
	rng := rand.New(rand.NewPCG(1, 2))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	d := disc{x: float64(shuffled[0].X), y: float64(shuffled[0].Y)}
	for i := 1; i < len(shuffled); i++ {
		if d.contains(shuffled[i]) {
			continue
		}
		d = disc{x: float64(shuffled[i].X), y: float64(shuffled[i].Y)}
		for j := 0; j < i; j++ {
			if d.contains(shuffled[j]) {
				continue
			}
			d = discFrom2(shuffled[i], shuffled[j])
			for k := 0; k < j; k++ {
				if d.contains(shuffled[k]) {
					continue
				}
				d = discFrom3(shuffled[i], shuffled[j], shuffled[k])
			}
		}
	}
	return d.x, d.y, d.r
}

func discFrom2(a, b image.Point) disc {
	x := float64(a.X+b.X) / 2
	y := float64(a.Y+b.Y) / 2
	return disc{x: x, y: y, r: math.Hypot(float64(a.X)-x, float64(a.Y)-y)}
}

// discFrom3 returns the circumcircle of a, b and c. Collinear points fall
// back to the widest two-point circle.
func discFrom3(a, b, c image.Point) disc {
	ax, ay := float64(a.X), float64(a.Y)
	bx, by := float64(b.X), float64(b.Y)
	cx, cy := float64(c.X), float64(c.Y)

	d := 2 * (ax*(by-cy) + bx*(cy-ay) + cx*(ay-by))
	if math.Abs(d) < enclosingEps {
		best := discFrom2(a, b)
		for _, cand := range []disc{discFrom2(a, c), discFrom2(b, c)} {
			if cand.r > best.r {
				best = cand
			}
		}
		return best
	}

	a2 := ax*ax + ay*ay
	b2 := bx*bx + by*by
	c2 := cx*cx + cy*cy
	ux := (a2*(by-cy) + b2*(cy-ay) + c2*(ay-by)) / d
	uy := (a2*(cx-bx) + b2*(ax-cx) + c2*(bx-ax)) / d
	return disc{x: ux, y: uy, r: math.Hypot(ax-ux, ay-uy)}
}
