package detection

import (
	"github.com/ironsheep/robot-goalie/internal/colors"
	"github.com/ironsheep/robot-goalie/internal/geometry"
)

// DefaultMinRadius is the smallest enclosing radius, in pixels, that still
// counts as a detection.
const DefaultMinRadius = 13

// Options bounds a FindCircles call.
type Options struct {
	// NumObjects is the maximum number of circles returned, across all colours.
	NumObjects int

	// MinRadius discards any circle whose enclosing radius is not strictly
	// greater than this value.
	MinRadius float64
}

// FindCircles locates up to opts.NumObjects coloured blobs in img.
//
// Parameters:
//   - img: Blurred HSV working frame.
//   - profiles: Colours to look for. Profiles without a detection range are
//     skipped.
//   - opts: Result count and minimum radius.
//
// Returns the detected circles, largest radius first. The result is an empty
// slice when no profile is given or nothing passes the thresholds.
//
// # Algorithm
//
// For each colour:
//
//  1. Threshold: mask pixels inside either HSV range of the profile
//  2. Clean: erode twice then dilate twice to drop speckles
//  3. Contours: group set pixels into 8-connected regions
//  4. Select: keep the NumObjects regions with the largest area
//  5. Fit: minimum enclosing circle of each region's boundary, plus the
//     centroid from the zeroth and first moments
//  6. Filter: drop circles with radius <= MinRadius or a zero moment
//
// The circles of all colours are then reduced to the global top NumObjects by
// radius.
func FindCircles(img *colors.HSVImage, profiles []colors.Profile, opts Options) []geometry.Circle {
	circles := make([]geometry.Circle, 0)
	if img == nil || opts.NumObjects <= 0 {
		return circles
	}

	origin := img.Bounds().Min
	for _, p := range profiles {
		if !p.Trackable() {
			continue
		}

		mask, found := buildMask(img, p)
		if !found {
			continue
		}

		comps := findComponents(cleanMask(mask))
		largest := topK(comps, opts.NumObjects, component.area)

		for _, c := range largest {
			x, y, r := minEnclosingCircle(c.boundary)
			if r <= opts.MinRadius {
				continue
			}
			m00, m10, m01 := c.moments()
			if m00 == 0 {
				continue
			}

			display := p.Display()
			circles = append(circles, geometry.Circle{
				X:      x + float64(origin.X),
				Y:      y + float64(origin.Y),
				Radius: r,
				Centroid: geometry.Point{
					X:     m10/m00 + float64(origin.X),
					Y:     m01/m00 + float64(origin.Y),
					Color: display,
				},
				Color: display,
			})
		}
	}

	return topK(circles, opts.NumObjects, func(c geometry.Circle) float64 { return c.Radius })
}
