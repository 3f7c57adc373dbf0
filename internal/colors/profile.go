package colors

import (
	"fmt"
	"image/color"
	"strings"
)

// HSV is a single pixel on the 8-bit HSV scale.
type HSV struct {
	H uint8
	S uint8
	V uint8
}

// Range is an inclusive lower/upper HSV bound.
type Range struct {
	Lower HSV
	Upper HSV
}

// IsZero reports whether the range is the unused all-zero placeholder.
func (r Range) IsZero() bool {
	return r == Range{}
}

// Contains reports whether px falls inside the range on all three channels.
// A zero range contains nothing.
func (r Range) Contains(px HSV) bool {
	if r.IsZero() {
		return false
	}
	return px.H >= r.Lower.H && px.H <= r.Upper.H &&
		px.S >= r.Lower.S && px.S <= r.Upper.S &&
		px.V >= r.Lower.V && px.V <= r.Upper.V
}

// Profile is a named colour with detection ranges and a display value.
type Profile int

const (
	None Profile = iota
	Blue
	Green
	Red
	White
	Yellow
	Magenta
	Cyan
)

type profileDef struct {
	name    string
	ranges  [2]Range
	display color.RGBA
}

var profiles = map[Profile]profileDef{
	Blue: {
		name:    "blue",
		ranges:  [2]Range{{HSV{75, 90, 90}, HSV{163, 255, 255}}},
		display: color.RGBA{0, 0, 255, 255},
	},
	Green: {
		name:    "green",
		ranges:  [2]Range{{HSV{16, 90, 90}, HSV{104, 255, 255}}},
		display: color.RGBA{0, 255, 0, 255},
	},
	Red: {
		name: "red",
		ranges: [2]Range{
			{HSV{0, 150, 150}, HSV{20, 255, 255}},
			{HSV{160, 150, 150}, HSV{179, 255, 255}},
		},
		display: color.RGBA{255, 0, 0, 255},
	},
	White: {
		name:    "white",
		ranges:  [2]Range{{HSV{0, 0, 220}, HSV{180, 50, 255}}},
		display: color.RGBA{255, 255, 255, 255},
	},
	Yellow: {
		name:    "yellow",
		ranges:  [2]Range{{HSV{15, 150, 150}, HSV{45, 255, 255}}},
		display: color.RGBA{255, 255, 0, 255},
	},
	Magenta: {
		name:    "magenta",
		ranges:  [2]Range{{HSV{135, 90, 90}, HSV{165, 255, 255}}},
		display: color.RGBA{255, 0, 255, 255},
	},
	Cyan: {
		name:    "cyan",
		ranges:  [2]Range{{HSV{75, 90, 90}, HSV{105, 255, 255}}},
		display: color.RGBA{0, 255, 255, 255},
	},
}

// Parse resolves a case-insensitive colour name.
func Parse(name string) (Profile, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for p, def := range profiles {
		if def.name == n {
			return p, nil
		}
	}
	return None, fmt.Errorf("unknown color %q", name)
}

// String returns the lower-case colour name.
func (p Profile) String() string {
	if def, ok := profiles[p]; ok {
		return def.name
	}
	return "none"
}

// Ranges returns both HSV ranges; the second is zero when unused.
func (p Profile) Ranges() [2]Range {
	return profiles[p].ranges
}

// Display returns the colour used when drawing detections of this profile.
func (p Profile) Display() color.RGBA {
	return profiles[p].display
}

// Trackable reports whether the profile has at least one detection range.
func (p Profile) Trackable() bool {
	r := p.Ranges()
	return !r[0].IsZero() || !r[1].IsZero()
}

// Match reports whether px falls inside either of the profile's ranges.
func (p Profile) Match(px HSV) bool {
	r := p.Ranges()
	return r[0].Contains(px) || r[1].Contains(px)
}

// MarshalText implements encoding.TextMarshaler so profiles appear by name in
// JSON configuration.
func (p Profile) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Profile) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
