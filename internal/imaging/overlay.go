package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/ironsheep/robot-goalie/internal/geometry"
)

// Overlay is a drawable copy of a working frame used to visualise what the
// control loop saw. All drawing clips to the frame bounds.
type Overlay struct {
	*image.RGBA
}

// NewOverlay copies img into a new RGBA canvas.
func NewOverlay(img image.Image) *Overlay {
	bounds := img.Bounds()
	canvas := image.NewRGBA(bounds)
	draw.Draw(canvas, bounds, img, bounds.Min, draw.Src)
	return &Overlay{RGBA: canvas}
}

func (o *Overlay) plot(x, y int, c color.RGBA) {
	if (image.Point{x, y}).In(o.Rect) {
		o.SetRGBA(x, y, c)
	}
}

// dot paints a filled square of side size centred on (x, y).
func (o *Overlay) dot(x, y, size int, c color.RGBA) {
	if size < 1 {
		size = 1
	}
	half := size / 2
	for dy := -half; dy < size-half; dy++ {
		for dx := -half; dx < size-half; dx++ {
			o.plot(x+dx, y+dy, c)
		}
	}
}

// Line draws ln in its own colour and thickness.
func (o *Overlay) Line(ln geometry.Line) {
	x0, y0 := int(math.Round(ln.X1)), int(math.Round(ln.Y1))
	x1, y1 := int(math.Round(ln.X2)), int(math.Round(ln.Y2))

	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}

	// Bresenham
	e := dx + dy
	for {
		o.dot(x0, y0, ln.Thickness, ln.Color)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// Circle outlines c in its own colour.
func (o *Overlay) Circle(c geometry.Circle) {
	r := c.Radius
	if r < 1 {
		r = 1
	}
	steps := int(math.Ceil(2 * math.Pi * r))
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		x := int(math.Round(c.X + r*math.Cos(a)))
		y := int(math.Round(c.Y + r*math.Sin(a)))
		o.dot(x, y, 2, c.Color)
	}
}

// Point marks p with a filled disk of the given radius.
func (o *Overlay) Point(p geometry.Point, radius int) {
	cx, cy := int(math.Round(p.X)), int(math.Round(p.Y))
	for y := -radius; y <= radius; y++ {
		for x := -radius; x <= radius; x++ {
			if x*x+y*y <= radius*radius {
				o.plot(cx+x, cy+y, p.Color)
			}
		}
	}
}

// Label draws text at (x, y) in a 3x5 pixel font. Only digits, comma and
// minus are rendered; other characters leave a gap.
func (o *Overlay) Label(x, y int, text string, fg, bg color.RGBA) {
	glyphs := map[rune][]string{
		'0': {"111", "101", "101", "101", "111"},
		'1': {"010", "110", "010", "010", "111"},
		'2': {"111", "001", "111", "100", "111"},
		'3': {"111", "001", "111", "001", "111"},
		'4': {"101", "101", "111", "001", "001"},
		'5': {"111", "100", "111", "001", "111"},
		'6': {"111", "100", "111", "101", "111"},
		'7': {"111", "001", "001", "001", "001"},
		'8': {"111", "101", "111", "101", "111"},
		'9': {"111", "101", "111", "001", "111"},
		',': {"000", "000", "000", "010", "010"},
		'-': {"000", "000", "111", "000", "000"},
	}

	charWidth := 4
	labelWidth := len(text) * charWidth
	labelHeight := 7

	for dy := -1; dy < labelHeight; dy++ {
		for dx := -1; dx < labelWidth; dx++ {
			o.plot(x+dx, y+dy, bg)
		}
	}

	cx := x
	for _, ch := range text {
		if glyph, ok := glyphs[ch]; ok {
			for row, line := range glyph {
				for col, pixel := range line {
					if pixel == '1' {
						o.plot(cx+col, y+row, fg)
					}
				}
			}
		}
		cx += charWidth
	}
}

// EncodePNG writes the overlay to w as a PNG.
func (o *Overlay) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, o.RGBA); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return nil
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
