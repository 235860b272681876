package smartborder

import (
	"testing"
	"time"

	"github.com/Mabi19/spaceshot/internal/bbox"
	"github.com/Mabi19/spaceshot/internal/image"
)

func solidImage(w, h int, c image.RGBA) *image.Image {
	img := image.New(image.ARGB8888, w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestBlurRadiusForMatchesFormula(t *testing.T) {
	cases := []struct {
		scale120 uint32
		want     int
	}{
		{120, 8},  // scale 1.0: 8*120/120 = 8
		{240, 16}, // scale 2.0: 8*240/120 = 16
		{60, 4},   // scale 0.5: 8*60/120 = 4
	}
	for _, c := range cases {
		got := BlurRadiusFor(c.scale120)
		if got != c.want {
			t.Errorf("BlurRadiusFor(%d) = %d, want %d", c.scale120, got, c.want)
		}
	}
}

func TestBlurRadiusNeverZero(t *testing.T) {
	if got := BlurRadiusFor(1); got < 1 {
		t.Errorf("BlurRadiusFor(1) = %d, want >= 1 (never a degenerate 0 radius)", got)
	}
}

func TestClassifyPicksDarkBorderOverLightBackground(t *testing.T) {
	src := solidImage(20, 20, image.RGBA{R: 0xffff, G: 0xffff, B: 0xffff, A: 0xffff})
	region := bbox.Box{X: 0, Y: 0, Width: 20, Height: 20}
	got := classify(src, region, 1)
	if got != DarkColor {
		t.Errorf("classify(white bg) = %+v, want DarkColor %+v", got, DarkColor)
	}
}

func TestClassifyPicksLightBorderOverDarkBackground(t *testing.T) {
	src := solidImage(20, 20, image.RGBA{R: 0, G: 0, B: 0, A: 0xffff})
	region := bbox.Box{X: 0, Y: 0, Width: 20, Height: 20}
	got := classify(src, region, 1)
	if got != LightColor {
		t.Errorf("classify(black bg) = %+v, want LightColor %+v", got, LightColor)
	}
}

func TestWorkerResultBeforeAnySampleIsFallback(t *testing.T) {
	refs := new(int)
	w := NewWorker(refs)
	defer w.Release()

	c, ok := w.Result()
	if ok {
		t.Fatal("Result() before any Sample() should report ok=false")
	}
	if c != FallbackColor {
		t.Errorf("Result() = %+v, want FallbackColor", c)
	}
}

func TestWorkerSampleProducesAResult(t *testing.T) {
	refs := new(int)
	w := NewWorker(refs)
	defer w.Release()

	src := solidImage(10, 10, image.RGBA{R: 0, G: 0, B: 0, A: 0xffff})
	w.Sample(src, bbox.Box{X: 0, Y: 0, Width: 10, Height: 10}, 1)

	var got image.RGBA
	var ok bool
	for i := 0; i < 1000 && !ok; i++ {
		got, ok = w.Result()
		if !ok {
			time.Sleep(time.Millisecond)
		}
	}
	if !ok {
		t.Fatal("Sample() never produced a Result()")
	}
	if got != LightColor {
		t.Errorf("Result() = %+v, want LightColor for a black background", got)
	}
}
