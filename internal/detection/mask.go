package detection

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/effect"

	"github.com/ironsheep/robot-goalie/internal/colors"
)

// colorOn marks a pixel inside the colour range.
var colorOn = color.Gray{Y: 255}

// morphIterations is how many times the mask is eroded and then dilated.
const morphIterations = 2

// buildMask thresholds img against both ranges of profile.
//
// A pixel is set (255) when it falls inside either range. The second return
// value reports whether any pixel was set at all, so callers can skip the
// rest of the pipeline on an empty mask.
func buildMask(img *colors.HSVImage, profile colors.Profile) (*image.Gray, bool) {
	b := img.Bounds()
	mask := image.NewGray(b)
	found := false
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if profile.Match(img.HSVAt(x, y)) {
				mask.SetGray(x, y, colorOn)
				found = true
			}
		}
	}
	return mask, found
}

// cleanMask erodes then dilates the mask to remove speckle noise, returning
// the result as a boolean grid indexed [y][x] relative to the mask origin.
func cleanMask(mask *image.Gray) [][]bool {
	var img image.Image = mask
	for i := 0; i < morphIterations; i++ {
		img = effect.Erode(img, 1)
	}
	for i := 0; i < morphIterations; i++ {
		img = effect.Dilate(img, 1)
	}
	return toGrid(img)
}

// toGrid converts any image to an on/off grid using a mid-grey threshold.
func toGrid(img image.Image) [][]bool {
	b := img.Bounds()
	grid := make([][]bool, b.Dy())
	for y := 0; y < b.Dy(); y++ {
		grid[y] = make([]bool, b.Dx())
		for x := 0; x < b.Dx(); x++ {
			r, _, _, _ := img.At(x+b.Min.X, y+b.Min.Y).RGBA()
			grid[y][x] = r > 0x7fff
		}
	}
	return grid
}
