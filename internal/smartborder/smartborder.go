// Package smartborder computes a selection border color that stays
// visible against whatever the region picker is hovering: it samples the
// captured screenshot under the selection, blurs and converts it to
// luminance, and thresholds against a fixed cutoff to decide between a
// light and a dark border color (spec.md §4.8). The work runs on a
// background goroutine since a full-screen box blur is too slow to do on
// every pointer-move frame.
package smartborder

import (
	"github.com/Mabi19/spaceshot/internal/bbox"
	"github.com/Mabi19/spaceshot/internal/image"
)

// LuminanceThreshold is the Rec.601 luma value (0-255 scale) that decides
// whether the background under the selection reads as light or dark.
const LuminanceThreshold = 0x6F

// BlurRadiusFor returns the box-blur radius to use for a surface bought
// at logical scale s, matching spec.md §4.8's "8 * scale / 120" formula
// for a wp_fractional_scale scale120 value.
func BlurRadiusFor(scale120 uint32) int {
	r := int(8 * scale120 / 120)
	if r < 1 {
		r = 1
	}
	return r
}

// LightColor and DarkColor are the two border colors a Worker chooses
// between; FallbackColor is used before the first sample completes, and
// for a selection that lies outside the sampled image (spec.md §11).
var (
	LightColor    = image.RGBA{R: 0xffff, G: 0xffff, B: 0xffff, A: 0xffff}
	DarkColor     = image.RGBA{R: 0, G: 0, B: 0, A: 0xffff}
	FallbackColor = image.RGBA{R: 0xffff, G: 0xffff, B: 0xffff, A: 0xffff}
)

// Worker owns the background sampling goroutine. A Release call drops the
// worker's reference to its source image; the last releaser (tracked via
// a shared refcount, since a resize mid-sample can hand the same source
// to a second Worker before the first finishes) frees it.
type Worker struct {
	jobs    chan job
	results chan image.RGBA
	refs    *int
}

type job struct {
	src    *image.Image
	region bbox.Box
	radius int
}

// NewWorker starts the background goroutine. refs is a pointer to a count
// shared with every other Worker sampling the same captured frame.
func NewWorker(refs *int) *Worker {
	*refs++
	w := &Worker{
		jobs:    make(chan job, 1),
		results: make(chan image.RGBA, 1),
		refs:    refs,
	}
	go w.run()
	return w
}

func (w *Worker) run() {
	for j := range w.jobs {
		w.results <- classify(j.src, j.region, j.radius)
	}
}

// Sample requests a new border-color classification for region of src,
// dropping any still-pending previous request (only the latest pointer
// position matters).
func (w *Worker) Sample(src *image.Image, region bbox.Box, radius int) {
	select {
	case <-w.jobs:
	default:
	}
	w.jobs <- job{src: src, region: region, radius: radius}
}

// Result returns the next completed classification not yet returned by an
// earlier call, or FallbackColor with ok=false if there is none. A
// classification is returned only once; callers keep the last color they
// received.
func (w *Worker) Result() (image.RGBA, bool) {
	select {
	case c := <-w.results:
		return c, true
	default:
		return FallbackColor, false
	}
}

// Release decrements the shared reference count; once it reaches zero the
// worker's goroutine is stopped.
func (w *Worker) Release() {
	*w.refs--
	if *w.refs <= 0 {
		close(w.jobs)
	}
}

func classify(src *image.Image, region bbox.Box, radius int) image.RGBA {
	r := bbox.Round(bbox.Constrain(region, bbox.Box{X: 0, Y: 0, Width: float64(src.Width), Height: float64(src.Height)}))
	x0, y0 := int(r.X), int(r.Y)
	w, h := int(r.Width), int(r.Height)
	if w <= 0 || h <= 0 {
		return FallbackColor
	}

	blurred := boxBlurLuma(src, x0, y0, w, h, radius)
	if blurred < LuminanceThreshold {
		return LightColor
	}
	return DarkColor
}

// boxBlurLuma computes the average Rec.601 luma over a box-blurred sample
// of the region; rather than materializing a blurred image, it directly
// averages luma over a radius-dilated window since only the scalar mean
// is ever used.
func boxBlurLuma(src *image.Image, x0, y0, w, h, radius int) int {
	var sum, count int64
	minX, minY := x0-radius, y0-radius
	maxX, maxY := x0+w+radius, y0+h+radius
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX > src.Width {
		maxX = src.Width
	}
	if maxY > src.Height {
		maxY = src.Height
	}
	for y := minY; y < maxY; y++ {
		for x := minX; x < maxX; x++ {
			c := src.At(x, y)
			luma := (299*int64(c.R>>8) + 587*int64(c.G>>8) + 114*int64(c.B>>8)) / 1000
			sum += luma
			count++
		}
	}
	if count == 0 {
		return 0xff
	}
	return int(sum / count)
}
