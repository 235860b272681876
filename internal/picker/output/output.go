// Package output implements the Output Picker: hover one monitor among
// several to choose it whole, each labeled with its wl_output name
// inside a 24px halo (spec.md §4.7's sibling mode).
package output

import (
	"github.com/Mabi19/spaceshot/internal/bbox"
	"github.com/Mabi19/spaceshot/internal/drawctx"
	"github.com/Mabi19/spaceshot/internal/image"
	"github.com/Mabi19/spaceshot/internal/labels"
	"github.com/Mabi19/spaceshot/internal/seat"
)

// LabelHalo is the total padding, in logical pixels, added to a label's
// text size (half on each side) for the darkened backing rectangle that
// keeps it readable over any background.
const LabelHalo = 24.0

// Entry is one selectable output.
type Entry struct {
	Name   string
	Bounds bbox.Box
}

// Picker highlights whichever Entry the pointer is currently over and
// reports the chosen one on click or Enter.
type Picker struct {
	entries []Entry
	active  int // index into entries, -1 if none

	InactiveColor image.RGBA
	ActiveColor   image.RGBA
	LabelColor    image.RGBA
	HaloColor     image.RGBA

	Done func(Entry, bool)

	redraw func(bbox.Box)
}

func New(entries []Entry, redraw func(bbox.Box)) *Picker {
	return &Picker{
		entries:       entries,
		active:        -1,
		InactiveColor: image.RGBA{R: 0, G: 0, B: 0, A: 0x6666},
		ActiveColor:   image.RGBA{R: 0, G: 0, B: 0, A: 0x2222},
		LabelColor:    image.RGBA{R: 0xffff, G: 0xffff, B: 0xffff, A: 0xffff},
		HaloColor:     image.RGBA{R: 0, G: 0, B: 0, A: 0xaaaa},
		redraw:        redraw,
	}
}

func (p *Picker) OnPointer(ev seat.PointerEvent) {
	if ev.Moved {
		prev := p.active
		p.active = p.hitTest(ev.X, ev.Y)
		if p.active != prev {
			if prev >= 0 && p.redraw != nil {
				p.redraw(p.entries[prev].Bounds)
			}
			if p.active >= 0 && p.redraw != nil {
				p.redraw(p.entries[p.active].Bounds)
			}
		}
	}
	if ev.ButtonReleased != nil && p.active >= 0 && p.Done != nil {
		p.Done(p.entries[p.active], true)
	}
}

func (p *Picker) OnKey(ev seat.KeyEvent) {
	if !ev.Pressed {
		return
	}
	switch ev.Keysym {
	case 0xff1b: // Escape
		if p.Done != nil {
			p.Done(Entry{}, false)
		}
	case 0xff0d: // Return
		if p.active >= 0 && p.Done != nil {
			p.Done(p.entries[p.active], true)
		}
	}
}

func (p *Picker) hitTest(x, y float64) int {
	for i, e := range p.entries {
		if bbox.Contains(e.Bounds, bbox.Box{X: x, Y: y}) {
			return i
		}
	}
	return -1
}

// Render paints every entry's overlay color (a lighter tint while hovered) and
// its centered, haloed name label, clipped to the rectangle that
// intersects outputBounds (each output only draws its own slice since
// each has its own Overlay Surface).
func (p *Picker) Render(ctx *drawctx.Context, outputBounds bbox.Box) {
	for i, e := range p.entries {
		r := bbox.Intersect(e.Bounds, outputBounds)
		if r.Width <= 0 || r.Height <= 0 {
			continue
		}
		color := p.InactiveColor
		if i == p.active {
			color = p.ActiveColor
		}
		ctx.FillRect(r, color)

		cx, cy := e.Bounds.X+e.Bounds.Width/2, e.Bounds.Y+e.Bounds.Height/2
		labelW, labelH := labels.Measure(e.Name)
		haloRect := bbox.Box{
			X: cx - labelW/2 - LabelHalo/2, Y: cy - labelH/2 - LabelHalo/2,
			Width: labelW + LabelHalo, Height: labelH + LabelHalo,
		}
		haloRect = bbox.Intersect(haloRect, outputBounds)
		if haloRect.Width > 0 && haloRect.Height > 0 {
			ctx.FillRect(haloRect, p.HaloColor)
			labels.Draw(ctx, e.Name, cx-labelW/2, cy-labelH/2, p.LabelColor)
		}
	}
}
