package colors

import (
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// HSVImage is an in-memory image of HSV pixels, three bytes per pixel in H, S,
// V order.
type HSVImage struct {
	Pix    []uint8
	Stride int
	Rect   image.Rectangle
}

// NewHSVImage allocates a zeroed HSV image covering r.
func NewHSVImage(r image.Rectangle) *HSVImage {
	return &HSVImage{
		Pix:    make([]uint8, 3*r.Dx()*r.Dy()),
		Stride: 3 * r.Dx(),
		Rect:   r,
	}
}

// Bounds returns the image rectangle.
func (m *HSVImage) Bounds() image.Rectangle {
	return m.Rect
}

// PixOffset returns the index of the first byte of the pixel at (x, y).
func (m *HSVImage) PixOffset(x, y int) int {
	return (y-m.Rect.Min.Y)*m.Stride + (x-m.Rect.Min.X)*3
}

// HSVAt returns the pixel at (x, y). Points outside the bounds read as zero.
func (m *HSVImage) HSVAt(x, y int) HSV {
	if !(image.Point{x, y}.In(m.Rect)) {
		return HSV{}
	}
	i := m.PixOffset(x, y)
	return HSV{H: m.Pix[i], S: m.Pix[i+1], V: m.Pix[i+2]}
}

// SetHSV writes the pixel at (x, y). Points outside the bounds are ignored.
func (m *HSVImage) SetHSV(x, y int, px HSV) {
	if !(image.Point{x, y}.In(m.Rect)) {
		return
	}
	i := m.PixOffset(x, y)
	m.Pix[i] = px.H
	m.Pix[i+1] = px.S
	m.Pix[i+2] = px.V
}

// FromRGB converts an RGB colour to the 8-bit HSV scale.
func FromRGB(c colorful.Color) HSV {
	h, s, v := c.Hsv()
	hue := int(math.Round(h/2)) % 180
	return HSV{
		H: uint8(hue),
		S: uint8(math.Round(s * 255)),
		V: uint8(math.Round(v * 255)),
	}
}

// ToHSV converts every pixel of img. Fully transparent pixels become zero.
func ToHSV(img image.Image) *HSVImage {
	b := img.Bounds()
	out := NewHSVImage(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c, ok := colorful.MakeColor(img.At(x, y))
			if !ok {
				continue
			}
			out.SetHSV(x, y, FromRGB(c))
		}
	}
	return out
}
