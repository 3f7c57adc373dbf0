package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/robot-goalie/internal/colors"
)

// DefaultScale is the resize factor applied when no fixed size is configured.
const DefaultScale = 0.5

// FrameSetup describes how a raw camera frame is turned into the working frame.
//
// When Width and Height are both positive the frame is resized to exactly
// Width x Height. Otherwise it is scaled by Scale (DefaultScale if zero).
//
// BlurWindow is the Gaussian kernel width in pixels. Values below 3 disable
// blurring.
type FrameSetup struct {
	Width          int
	Height         int
	Scale          float64
	BlurWindow     int
	FlipHorizontal bool
}

// Frame is a preprocessed working frame.
//
// RGB is the resized (and optionally flipped) colour frame, unblurred, for
// annotation. HSV is the blurred frame converted for segmentation. Both share
// the same bounds, so detection coordinates apply to either.
type Frame struct {
	RGB *image.NRGBA
	HSV *colors.HSVImage
}

// Preprocess resizes, flips, blurs and converts img.
//
// # Pipeline
//
//  1. Resize with a box filter (area averaging)
//  2. Mirror left to right if FlipHorizontal is set
//  3. Gaussian blur with radius (BlurWindow-1)/2
//  4. RGB to HSV conversion
func Preprocess(img image.Image, setup FrameSetup) *Frame {
	w, h := setup.targetSize(img.Bounds())
	resized := imaging.Resize(img, w, h, imaging.Box)
	if setup.FlipHorizontal {
		resized = imaging.FlipH(resized)
	}

	var blurred image.Image = resized
	if setup.BlurWindow >= 3 {
		blurred = blur.Gaussian(resized, float64(setup.BlurWindow-1)/2)
	}

	return &Frame{
		RGB: resized,
		HSV: colors.ToHSV(blurred),
	}
}

func (s FrameSetup) targetSize(b image.Rectangle) (int, int) {
	if s.Width > 0 && s.Height > 0 {
		return s.Width, s.Height
	}
	scale := s.Scale
	if scale <= 0 {
		scale = DefaultScale
	}
	w := int(float64(b.Dx()) * scale)
	h := int(float64(b.Dy()) * scale)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}
