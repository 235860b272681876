// Package region implements the Region Picker: a three-state selection
// machine (idle, dragging-a-new-selection, editing-an-existing-one) with
// edge/corner hit-testing, incremental damage, and a layered render (dim
// overlay with the selection punched out, border, handles) (spec.md §4.7).
package region

import (
	"math"

	"github.com/Mabi19/spaceshot/internal/bbox"
	"github.com/Mabi19/spaceshot/internal/drawctx"
	"github.com/Mabi19/spaceshot/internal/image"
	"github.com/Mabi19/spaceshot/internal/seat"
)

// NearThreshold is how close (in logical pixels) the pointer must be to
// an edge or corner to grab it instead of starting a fresh selection.
const NearThreshold = 12.0

// MinCancelArea is the area at or below which releasing a drag is treated
// as a cancel rather than a too-small selection (spec.md §4.7: "2px²").
const MinCancelArea = 2.0

// State names the picker's top-level mode.
type State int

const (
	StateIdle State = iota
	StateDragging
	StateEditingMove
	StateEditingResize
)

type handle int

const (
	handleNone handle = iota
	handleN
	handleS
	handleE
	handleW
	handleNE
	handleNW
	handleSE
	handleSW
)

// Picker runs the region-selection UI across every output's Overlay
// Surface, sharing one logical selection rectangle across all of them
// (the bounds span the whole logical space, not just one output).
type Picker struct {
	bounds bbox.Box // union of every output's logical bounds
	state  State

	selection bbox.Box
	haveSelection bool

	dragStartX, dragStartY float64
	dragOrigin bbox.Box
	activeHandle handle

	DimColor    image.RGBA
	BorderColor image.RGBA
	BorderWidth float64
	HandleSize  float64

	// Done is called with the finished selection and ok=true when a drag
	// is released with an area above MinCancelArea or Return confirms the
	// current selection, and with ok=false when a drag is released at or
	// below MinCancelArea or Escape cancels.
	Done func(r bbox.Box, ok bool)

	redraw func(bbox.Box)
}

// New creates a picker spanning bounds (the union of every output's
// logical rectangle).
func New(bounds bbox.Box, redraw func(bbox.Box)) *Picker {
	return &Picker{
		bounds:      bounds,
		DimColor:    image.RGBA{R: 0, G: 0, B: 0, A: 0x8888},
		BorderColor: image.RGBA{R: 0xffff, G: 0xffff, B: 0xffff, A: 0xffff},
		BorderWidth: 2,
		HandleSize:  8,
		redraw:      redraw,
	}
}

// Selection returns the current selection rectangle and whether one
// exists yet, for a caller (the background smart-border sampler) that
// needs to know what region to sample without driving the state machine.
func (p *Picker) Selection() (bbox.Box, bool) {
	return p.selection, p.haveSelection
}

func (p *Picker) OnPointer(ev seat.PointerEvent) {
	x, y := ev.X, ev.Y

	switch p.state {
	case StateIdle:
		if ev.ButtonPressed != nil {
			if p.haveSelection {
				if h := p.hitHandle(x, y); h != handleNone {
					p.state = StateEditingResize
					p.activeHandle = h
					p.dragOrigin = p.selection
					p.dragStartX, p.dragStartY = x, y
					return
				}
				if bbox.Contains(p.selection, bbox.Box{X: x, Y: y}) {
					p.state = StateEditingMove
					p.dragOrigin = p.selection
					p.dragStartX, p.dragStartY = x, y
					return
				}
			}
			p.state = StateDragging
			p.dragStartX, p.dragStartY = x, y
			p.setSelection(bbox.Box{X: x, Y: y})
		}
	case StateDragging:
		if ev.Moved {
			p.setSelection(bbox.Constrain(normalize(p.dragStartX, p.dragStartY, x, y), p.bounds))
		}
		if ev.ButtonReleased != nil {
			p.state = StateIdle
			if p.selection.Area() <= MinCancelArea {
				p.clearSelection()
				if p.Done != nil {
					p.Done(bbox.Box{}, false)
				}
			} else if p.Done != nil {
				p.Done(bbox.Round(p.selection), true)
			}
		}
	case StateEditingMove:
		if ev.Moved {
			dx, dy := x-p.dragStartX, y-p.dragStartY
			p.setSelection(bbox.Constrain(bbox.Translate(p.dragOrigin, dx, dy), p.bounds))
		}
		if ev.ButtonReleased != nil {
			p.state = StateIdle
		}
	case StateEditingResize:
		if ev.Moved {
			p.setSelection(bbox.Constrain(p.resize(p.dragOrigin, p.activeHandle, x-p.dragStartX, y-p.dragStartY), p.bounds))
		}
		if ev.ButtonReleased != nil {
			p.state = StateIdle
		}
	}
}

func (p *Picker) OnKey(ev seat.KeyEvent) {
	if !ev.Pressed {
		return
	}
	switch ev.Keysym {
	case keysymEscape:
		if p.Done != nil {
			p.Done(bbox.Box{}, false)
		}
	case keysymReturn:
		if p.haveSelection && p.Done != nil {
			p.Done(bbox.Round(p.selection), true)
		}
	}
}

// X11 keysym values, since this is the only place they're needed.
const (
	keysymEscape = 0xff1b
	keysymReturn = 0xff0d
)

func (p *Picker) setSelection(r bbox.Box) {
	prev := p.selection
	p.selection = r
	p.haveSelection = true
	if p.redraw != nil {
		p.redraw(bbox.DamageRegion(bbox.ExpandToGrid(p.inflatedForHandles(prev)), bbox.ExpandToGrid(p.inflatedForHandles(r))))
	}
}

func (p *Picker) clearSelection() {
	prev := p.selection
	p.selection = bbox.Box{}
	p.haveSelection = false
	if p.redraw != nil {
		p.redraw(bbox.ExpandToGrid(p.inflatedForHandles(prev)))
	}
}

func (p *Picker) inflatedForHandles(r bbox.Box) bbox.Box {
	return bbox.Inflate(r, p.HandleSize+p.BorderWidth)
}

func normalize(x0, y0, x1, y1 float64) bbox.Box {
	minX, maxX := math.Min(x0, x1), math.Max(x0, x1)
	minY, maxY := math.Min(y0, y1), math.Max(y0, y1)
	return bbox.Box{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

func (p *Picker) hitHandle(x, y float64) handle {
	r := p.selection
	near := func(px, py, x, y float64) bool {
		return math.Hypot(px-x, py-y) <= NearThreshold
	}
	switch {
	case near(r.X, r.Y, x, y):
		return handleNW
	case near(r.Right(), r.Y, x, y):
		return handleNE
	case near(r.X, r.Bottom(), x, y):
		return handleSW
	case near(r.Right(), r.Bottom(), x, y):
		return handleSE
	case math.Abs(y-r.Y) <= NearThreshold && x >= r.X && x <= r.Right():
		return handleN
	case math.Abs(y-r.Bottom()) <= NearThreshold && x >= r.X && x <= r.Right():
		return handleS
	case math.Abs(x-r.X) <= NearThreshold && y >= r.Y && y <= r.Bottom():
		return handleW
	case math.Abs(x-r.Right()) <= NearThreshold && y >= r.Y && y <= r.Bottom():
		return handleE
	}
	return handleNone
}

func (p *Picker) resize(orig bbox.Box, h handle, dx, dy float64) bbox.Box {
	r := orig
	switch h {
	case handleN, handleNE, handleNW:
		r.Y += dy
		r.Height -= dy
	case handleS, handleSE, handleSW:
		r.Height += dy
	}
	switch h {
	case handleW, handleNW, handleSW:
		r.X += dx
		r.Width -= dx
	case handleE, handleNE, handleSE:
		r.Width += dx
	}
	if r.Width < 0 {
		r.X += r.Width
		r.Width = -r.Width
	}
	if r.Height < 0 {
		r.Y += r.Height
		r.Height = -r.Height
	}
	return r
}

// Render draws three layers: the dim overlay with the selection punched
// out, the selection border, and its resize handles. It does not draw the
// captured screenshot underneath them.
func (p *Picker) Render(ctx *drawctx.Context) {
	if !p.haveSelection {
		ctx.FillRect(p.bounds, p.DimColor)
		return
	}
	ctx.FillRectEvenOddHole(p.bounds, p.selection, p.DimColor)
	ctx.StrokeRect(p.selection, p.BorderWidth, p.BorderColor)
	for _, c := range p.handleCenters() {
		ctx.FillRect(bbox.Box{X: c[0] - p.HandleSize/2, Y: c[1] - p.HandleSize/2, Width: p.HandleSize, Height: p.HandleSize}, p.BorderColor)
	}
}

func (p *Picker) handleCenters() [][2]float64 {
	r := p.selection
	midX, midY := r.X+r.Width/2, r.Y+r.Height/2
	return [][2]float64{
		{r.X, r.Y}, {r.Right(), r.Y}, {r.X, r.Bottom()}, {r.Right(), r.Bottom()},
		{midX, r.Y}, {midX, r.Bottom()}, {r.X, midY}, {r.Right(), midY},
	}
}
