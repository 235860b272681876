// Package bbox implements the axis-aligned rectangle arithmetic shared by
// the region picker, the predefined-region capture mode and the PNG crop
// path: parsing and stringifying the "X,Y WxH" wire format, rounding to a
// pixel grid, and containment/clipping.
package bbox

import (
	"fmt"
	"math"
	"strings"
)

// Box is a rectangle in some coordinate space (logical, compositor, or
// device pixels, depending on caller). Width/height are kept as float64 so
// the same type serves both the pre-rounding pointer math of the region
// picker and the post-rounding device-pixel boxes handed to the
// compositor.
type Box struct {
	X, Y          float64
	Width, Height float64
}

// Right and Bottom are the box's far edges.
func (b Box) Right() float64  { return b.X + b.Width }
func (b Box) Bottom() float64 { return b.Y + b.Height }

// Parse converts slurp's "X,Y WxH" string format into a Box. It mirrors
// bbox_parse from original_source/src/bbox.c: the scan must consume the
// entire string, not just a prefix of it.
func Parse(s string) (Box, error) {
	var b Box
	r := strings.NewReader(s)
	read, err := fmt.Fscanf(r, "%g,%g %gx%g", &b.X, &b.Y, &b.Width, &b.Height)
	if err != nil || read != 4 || r.Len() != 0 {
		return Box{}, fmt.Errorf("bbox: invalid region %q", s)
	}
	return b, nil
}

// Stringify renders a Box in the canonical 4-decimal format used for the
// round-trip property in spec.md §8 and for --verbose logging.
func Stringify(b Box) string {
	return fmt.Sprintf("%.4f,%.4f %.4fx%.4f", b.X, b.Y, b.Width, b.Height)
}

// Contains reports whether inner lies fully within outer, matching
// bbox_contains from bbox.c.
func Contains(outer, inner Box) bool {
	return outer.X <= inner.X && outer.Y <= inner.Y &&
		outer.Right() >= inner.Right() && outer.Bottom() >= inner.Bottom()
}

// Round floors the min corner and rounds the far (right/bottom) edges to
// the nearest integer pixel, used wherever a box needs to land on a pixel boundary
// without the floor/ceil asymmetry of ExpandToGrid. Round is idempotent:
// Round(Round(b)) == Round(b).
func Round(b Box) Box {
	x := math.Floor(b.X)
	y := math.Floor(b.Y)
	right := math.Round(b.Right())
	bottom := math.Round(b.Bottom())
	return Box{X: x, Y: y, Width: right - x, Height: bottom - y}
}

// ExpandToGrid floors the min corner and ceils the max corner so the
// resulting box is expressed in whole pixels without ever shrinking below
// the original selection (spec.md §4.5).
func ExpandToGrid(b Box) Box {
	x := math.Floor(b.X)
	y := math.Floor(b.Y)
	right := math.Ceil(b.Right())
	bottom := math.Ceil(b.Bottom())
	return Box{X: x, Y: y, Width: right - x, Height: bottom - y}
}

// Constrain clips b so it lies entirely within outer (⊆ outer). If
// outer already contains b, Constrain is the identity.
func Constrain(b, outer Box) Box {
	x1 := math.Max(b.X, outer.X)
	y1 := math.Max(b.Y, outer.Y)
	x2 := math.Min(b.Right(), outer.Right())
	y2 := math.Min(b.Bottom(), outer.Bottom())
	if x2 < x1 {
		x2 = x1
	}
	if y2 < y1 {
		y2 = y1
	}
	return Box{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Translate shifts a box by (dx, dy).
func Translate(b Box, dx, dy float64) Box {
	b.X += dx
	b.Y += dy
	return b
}

// Scale multiplies every component of b by factor, used to go from
// logical to device coordinates (device = logical * scale/120).
func Scale(b Box, factor float64) Box {
	return Box{X: b.X * factor, Y: b.Y * factor, Width: b.Width * factor, Height: b.Height * factor}
}

// Area returns width*height; used for the 2px² cancellation threshold in
// spec.md §4.5/§8.
func (b Box) Area() float64 { return b.Width * b.Height }

// Inflate grows b by amount on every side, used for border/handle damage
// padding (spec.md §4.5).
func Inflate(b Box, amount float64) Box {
	return Box{
		X:      b.X - amount,
		Y:      b.Y - amount,
		Width:  b.Width + 2*amount,
		Height: b.Height + 2*amount,
	}
}

// Union returns the smallest box containing both a and b. A zero-area box
// (Width or Height == 0, as produced by the picker's "no selection yet"
// state) acts as the identity.
func Union(a, b Box) Box {
	if a.Width <= 0 || a.Height <= 0 {
		return b
	}
	if b.Width <= 0 || b.Height <= 0 {
		return a
	}
	x1 := math.Min(a.X, b.X)
	y1 := math.Min(a.Y, b.Y)
	x2 := math.Max(a.Right(), b.Right())
	y2 := math.Max(a.Bottom(), b.Bottom())
	return Box{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Intersect returns the overlapping region of a and b, or a zero-area box
// if they do not overlap.
func Intersect(a, b Box) Box {
	x1 := math.Max(a.X, b.X)
	y1 := math.Max(a.Y, b.Y)
	x2 := math.Min(a.Right(), b.Right())
	y2 := math.Min(a.Bottom(), b.Bottom())
	if x2 <= x1 || y2 <= y1 {
		return Box{}
	}
	return Box{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// DamageRegion returns the box the region picker redraws when the
// selection changes from prev to cur: the bounding box of their union,
// which covers everything that was covered by one box but not both. It
// returns an empty box when prev and cur are identical.
func DamageRegion(prev, cur Box) Box {
	u := Union(prev, cur)
	if prev.Width <= 0 || prev.Height <= 0 || cur.Width <= 0 || cur.Height <= 0 {
		return u
	}
	i := Intersect(prev, cur)
	if i == cur && i == prev {
		return Box{}
	}
	return u
}
