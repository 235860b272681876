// Package drawctx implements the small 2D drawing surface the pickers
// render into: nearest-neighbor background blit, alpha-composited fills
// (for the dim overlay and border), and stroked rectangles with punched
// holes. It operates directly on an *image.Image's pixel memory so a
// Render Buffer's drawing context aliases the same bytes the compositor
// will read, the way original_source's src/wayland/render.c pairs a cairo
// context with the shared-memory buffer. The background blit itself is
// delegated to golang.org/x/image/draw's NearestNeighbor scaler, the way
// gioui's software rasterizer leans on the same package for its own
// blits, rather than hand-rolling the sampling loop.
package drawctx

import (
	goimage "image"
	"image/color"

	imgdraw "golang.org/x/image/draw"

	"github.com/Mabi19/spaceshot/internal/bbox"
	"github.com/Mabi19/spaceshot/internal/image"
)

// Context draws into an *image.Image, honoring an optional clip rectangle
// and an Origin/Scale pair that maps caller-space rectangles (typically
// the compositor's shared logical space) onto this buffer's device
// pixels: device = (logical - Origin) * Scale. A picker shared across
// several outputs' overlays uses one Origin per overlay and draws the
// same logical-space rectangles into each.
type Context struct {
	Target *image.Image
	Clip   *bbox.Box
	Origin bbox.Box // only X, Y are read
	Scale  float64
}

// New wraps img in a drawing context with no clip set and an identity
// Origin/Scale transform.
func New(img *image.Image) *Context {
	return &Context{Target: img, Scale: 1}
}

// SetClip installs a device-pixel clip rectangle; nil clears it.
func (c *Context) SetClip(r *bbox.Box) { c.Clip = r }

// toDevice maps a caller-space rectangle into this context's device
// pixels via Origin/Scale.
func (c *Context) toDevice(r bbox.Box) bbox.Box {
	scale := c.Scale
	if scale == 0 {
		scale = 1
	}
	return bbox.Scale(bbox.Translate(r, -c.Origin.X, -c.Origin.Y), scale)
}

func (c *Context) clipRect() bbox.Box {
	full := bbox.Box{X: 0, Y: 0, Width: float64(c.Target.Width), Height: float64(c.Target.Height)}
	if c.Clip == nil {
		return full
	}
	return bbox.Constrain(*c.Clip, full)
}

func intBounds(b bbox.Box) (x0, y0, x1, y1 int) {
	x0 = int(b.X)
	y0 = int(b.Y)
	x1 = int(b.X + b.Width)
	y1 = int(b.Y + b.Height)
	return
}

// forEachClippedPixel calls fn(x,y) for every device pixel inside both the
// context's clip and r.
func (c *Context) forEachClippedPixel(r bbox.Box, fn func(x, y int)) {
	clipped := bbox.Intersect(c.clipRect(), r)
	x0, y0, x1, y1 := intBounds(clipped)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			fn(x, y)
		}
	}
}

// over alpha-composites src on top of dst ("over" Porter-Duff operator).
func over(dst, src image.RGBA) image.RGBA {
	if src.A == 0xFFFF {
		return src
	}
	if src.A == 0 {
		return dst
	}
	a := uint32(src.A)
	inv := 0xFFFF - a
	blend := func(s, d uint16) uint16 {
		return uint16((uint32(s)*a + uint32(d)*inv) / 0xFFFF)
	}
	return image.RGBA{
		R: blend(src.R, dst.R),
		G: blend(src.G, dst.G),
		B: blend(src.B, dst.B),
		A: uint16((a + uint32(dst.A)*inv/0xFFFF)),
	}
}

// FillRect alpha-composites color over every pixel of r clipped to the
// context's clip rectangle.
func (c *Context) FillRect(r bbox.Box, color image.RGBA) {
	c.forEachClippedPixel(c.toDevice(r), func(x, y int) {
		c.Target.Set(x, y, over(c.Target.At(x, y), color))
	})
}

// FillRectEvenOddHole fills outer with color everywhere except inside
// hole, using an even-odd rule equivalent to cairo's fill rule with a
// rectangular sub-path subtracted — used for the dim overlay with the
// selection "punched out" (spec.md §4.5 layer 2).
func (c *Context) FillRectEvenOddHole(outer, hole bbox.Box, color image.RGBA) {
	devHole := c.toDevice(hole)
	c.forEachClippedPixel(c.toDevice(outer), func(x, y int) {
		px := float64(x) + 0.5
		py := float64(y) + 0.5
		if px >= devHole.X && px < devHole.Right() && py >= devHole.Y && py < devHole.Bottom() {
			return
		}
		c.Target.Set(x, y, over(c.Target.At(x, y), color))
	})
}

// StrokeRect draws a centered rectangular outline of the given width
// around r (spec.md §4.5 layer 3: the border is centered on the expanded
// selection rect).
func (c *Context) StrokeRect(r bbox.Box, width float64, color image.RGBA) {
	half := width / 2
	outer := bbox.Inflate(r, half)
	inner := bbox.Inflate(r, -half)
	c.FillRectEvenOddHole(outer, inner, color)
}

// DrawScaledNearest blits src into dst's target at device rectangle
// dstRect, sampling src with nearest-neighbor filtering (spec.md §4.5
// layer 1: the captured background, scaled fast). src is always fully
// opaque (a captured frame), so the straight/premultiplied alpha
// distinction color.Color.RGBA() imposes is a no-op here.
func (c *Context) DrawScaledNearest(src *image.Image, dstRectIn bbox.Box) {
	dstRect := c.toDevice(dstRectIn)
	if dstRect.Width <= 0 || dstRect.Height <= 0 {
		return
	}
	drX0, drY0, drX1, drY1 := intBounds(dstRect)
	dr := goimage.Rect(drX0, drY0, drX1, drY1)
	sr := goimage.Rect(0, 0, src.Width, src.Height)

	clip := c.clipRect()
	cx0, cy0, cx1, cy1 := intBounds(clip)
	dst := clippedTarget{target: c.Target, bounds: goimage.Rect(cx0, cy0, cx1, cy1)}

	imgdraw.NearestNeighbor.Scale(dst, dr, srcReader{src}, sr, imgdraw.Src, nil)
}

// srcReader adapts *image.Image to the standard library's image.Image
// interface so golang.org/x/image/draw can read from it.
type srcReader struct{ img *image.Image }

func (r srcReader) ColorModel() color.Model     { return color.NRGBA64Model }
func (r srcReader) Bounds() goimage.Rectangle   { return goimage.Rect(0, 0, r.img.Width, r.img.Height) }
func (r srcReader) At(x, y int) color.Color {
	c := r.img.At(x, y)
	return color.NRGBA64{R: c.R, G: c.G, B: c.B, A: c.A}
}

// clippedTarget adapts a *image.Image as a draw.Image whose advertised
// Bounds() is restricted to a clip rectangle, so NearestNeighbor.Scale
// never writes outside it even when dr extends past the clip.
type clippedTarget struct {
	target *image.Image
	bounds goimage.Rectangle
}

func (d clippedTarget) ColorModel() color.Model   { return color.NRGBA64Model }
func (d clippedTarget) Bounds() goimage.Rectangle { return d.bounds }
func (d clippedTarget) At(x, y int) color.Color {
	c := d.target.At(x, y)
	return color.NRGBA64{R: c.R, G: c.G, B: c.B, A: c.A}
}
func (d clippedTarget) Set(x, y int, c color.Color) {
	if !(goimage.Point{X: x, Y: y}.In(d.bounds)) {
		return
	}
	r, g, b, a := c.RGBA()
	d.target.Set(x, y, image.RGBA{R: uint16(r), G: uint16(g), B: uint16(b), A: uint16(a)})
}
