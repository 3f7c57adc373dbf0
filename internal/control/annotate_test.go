package control

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/robot-goalie/internal/geometry"
	"github.com/ironsheep/robot-goalie/internal/imaging"
)

func TestDrawWithoutRGB(t *testing.T) {
	assert.Nil(t, Draw(nil, Result{}))
	assert.Nil(t, Draw(&imaging.Frame{}, Result{}))
}

func TestDrawMarksIntercept(t *testing.T) {
	frame := &imaging.Frame{RGB: image.NewNRGBA(image.Rect(0, 0, 64, 48))}
	res := Result{Intercept: &geometry.Point{X: 20, Y: 30}}

	o := Draw(frame, res)
	require.NotNil(t, o)
	assert.Equal(t, labelFG, o.RGBAAt(20, 30))
	assert.Equal(t, frame.RGB.Bounds(), o.Bounds())
}

func TestPNGWriterSavesEveryNthFrame(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "annotated")
	w, err := NewPNGWriter(dir, 2, nil)
	require.NoError(t, err)

	c := newTestController(testConfig(), &fakeSender{})
	c.SetAnnotator(w)

	for _, y := range []int{20, 40, 60, 80} {
		frame := sceneFrame(160, y, false)
		frame.RGB = image.NewNRGBA(frame.HSV.Bounds())
		c.Step(frame)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"frame-000002.png", "frame-000004.png"}, names)
}
