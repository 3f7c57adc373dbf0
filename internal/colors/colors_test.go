package colors

import (
	"encoding/json"
	"image"
	"image/color"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		want    Profile
		wantErr bool
	}{
		{"blue", Blue, false},
		{"RED", Red, false},
		{" White ", White, false},
		{"cyan", Cyan, false},
		{"purple", None, true},
	}
	for _, tt := range tests {
		got, err := Parse(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("Parse(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestTrackable(t *testing.T) {
	for _, p := range []Profile{Blue, Green, Red, White, Yellow, Magenta, Cyan} {
		if !p.Trackable() {
			t.Errorf("%v should be trackable", p)
		}
	}
	if None.Trackable() {
		t.Error("none should not be trackable")
	}
}

func TestZeroRangeNeverMatchesBlack(t *testing.T) {
	black := HSV{}
	for _, p := range []Profile{Blue, Green, White, Yellow, Magenta, Cyan} {
		if p.Match(black) {
			t.Errorf("%v matched a black pixel through its unused range", p)
		}
	}
}

func TestRedWrapsAroundHue(t *testing.T) {
	if !Red.Match(HSV{H: 5, S: 200, V: 200}) {
		t.Error("expected low hue red to match")
	}
	if !Red.Match(HSV{H: 175, S: 200, V: 200}) {
		t.Error("expected high hue red to match")
	}
	if Red.Match(HSV{H: 90, S: 200, V: 200}) {
		t.Error("expected mid hue not to match red")
	}
}

func TestFromRGB(t *testing.T) {
	tests := []struct {
		name string
		c    color.RGBA
		want HSV
	}{
		{"red", color.RGBA{255, 0, 0, 255}, HSV{0, 255, 255}},
		{"green", color.RGBA{0, 255, 0, 255}, HSV{60, 255, 255}},
		{"blue", color.RGBA{0, 0, 255, 255}, HSV{120, 255, 255}},
		{"white", color.RGBA{255, 255, 255, 255}, HSV{0, 0, 255}},
		{"black", color.RGBA{0, 0, 0, 255}, HSV{0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := colorful.MakeColor(tt.c)
			if got := FromRGB(c); got != tt.want {
				t.Errorf("FromRGB = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDisplayColorsDetectAsThemselves(t *testing.T) {
	for _, p := range []Profile{Blue, Green, Red, White, Yellow, Magenta, Cyan} {
		c, _ := colorful.MakeColor(p.Display())
		if !p.Match(FromRGB(c)) {
			t.Errorf("%v display colour does not match its own ranges", p)
		}
	}
}

func TestToHSV(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{0, 0, 255, 255})
		}
	}
	img.Set(3, 1, color.RGBA{255, 255, 255, 255})

	hsv := ToHSV(img)
	if hsv.Bounds() != img.Bounds() {
		t.Fatalf("bounds = %v, want %v", hsv.Bounds(), img.Bounds())
	}
	if got := hsv.HSVAt(0, 0); got != (HSV{120, 255, 255}) {
		t.Errorf("HSVAt(0,0) = %+v", got)
	}
	if got := hsv.HSVAt(3, 1); got != (HSV{0, 0, 255}) {
		t.Errorf("HSVAt(3,1) = %+v", got)
	}
	if got := hsv.HSVAt(10, 10); got != (HSV{}) {
		t.Errorf("out of bounds read = %+v, want zero", got)
	}
}

func TestProfileJSON(t *testing.T) {
	var v struct {
		Track []Profile `json:"track"`
	}
	if err := json.Unmarshal([]byte(`{"track":["red","green"]}`), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(v.Track) != 2 || v.Track[0] != Red || v.Track[1] != Green {
		t.Errorf("unexpected profiles %v", v.Track)
	}

	out, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"track":["red","green"]}` {
		t.Errorf("marshal = %s", out)
	}
}
