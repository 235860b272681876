package region

import (
	"testing"

	"github.com/Mabi19/spaceshot/internal/bbox"
	"github.com/Mabi19/spaceshot/internal/seat"
)

func u32(v uint32) *uint32 { return &v }

func drag(p *Picker, x0, y0, x1, y1 float64) {
	p.OnPointer(seat.PointerEvent{X: x0, Y: y0, ButtonPressed: u32(1)})
	p.OnPointer(seat.PointerEvent{X: x1, Y: y1, Moved: true})
	p.OnPointer(seat.PointerEvent{X: x1, Y: y1, ButtonReleased: u32(1)})
}

// A drag whose final area is below MinCancelArea must be treated as a
// cancel: no selection survives the release, and it finishes the picker
// with ok=false (spec.md §4.5, §4.7).
func TestTinyDragIsCancelled(t *testing.T) {
	p := New(bbox.Box{X: 0, Y: 0, Width: 1000, Height: 1000}, nil)

	var called, gotOK bool
	p.Done = func(r bbox.Box, ok bool) { called, gotOK = true, ok }
	drag(p, 10, 10, 11, 11)

	if p.haveSelection {
		t.Errorf("drag of area %v (< MinCancelArea %v) should not leave a selection", 1.0, MinCancelArea)
	}
	if p.state != StateIdle {
		t.Errorf("state after release = %v, want StateIdle", p.state)
	}
	if !called || gotOK {
		t.Errorf("tiny drag should call Done(_, false); called=%v ok=%v", called, gotOK)
	}
}

// An ordinary drag finishes the picker on release with the selected
// rectangle and ok=true, without waiting for Return (spec.md §4.5).
func TestOrdinaryDragSelects(t *testing.T) {
	p := New(bbox.Box{X: 0, Y: 0, Width: 1000, Height: 1000}, nil)

	var called, gotOK bool
	var got bbox.Box
	p.Done = func(r bbox.Box, ok bool) { called, got, gotOK = true, r, ok }
	drag(p, 10, 10, 110, 60)

	if !p.haveSelection {
		t.Fatal("expected a selection after an ordinary drag")
	}
	if p.selection.Width != 100 || p.selection.Height != 50 {
		t.Errorf("selection = %+v, want 100x50", p.selection)
	}
	if !called || !gotOK {
		t.Errorf("ordinary drag should call Done(_, true); called=%v ok=%v", called, gotOK)
	}
	if got.Width != 100 || got.Height != 50 {
		t.Errorf("Done rect = %+v, want 100x50", got)
	}
}

func TestDragIsConstrainedToBounds(t *testing.T) {
	p := New(bbox.Box{X: 0, Y: 0, Width: 100, Height: 100}, nil)
	drag(p, 50, 50, 500, 500)
	if p.selection.Right() > 100 || p.selection.Bottom() > 100 {
		t.Errorf("selection %+v escaped bounds", p.selection)
	}
}

// The pointer must be within NearThreshold of a corner to grab a resize
// handle instead of starting a brand new selection.
func TestHitHandleRespectsNearThreshold(t *testing.T) {
	p := New(bbox.Box{X: 0, Y: 0, Width: 1000, Height: 1000}, nil)
	drag(p, 100, 100, 200, 200)

	if h := p.hitHandle(100, 100); h != handleNW {
		t.Errorf("hitHandle at exact corner = %v, want handleNW", h)
	}
	if h := p.hitHandle(100+NearThreshold, 100); h == handleNone {
		t.Errorf("hitHandle at threshold distance should still hit a handle")
	}
	if h := p.hitHandle(100+NearThreshold+10, 100+NearThreshold+10); h != handleNone {
		t.Errorf("hitHandle far from any edge/corner = %v, want handleNone", h)
	}
}

func TestEscapeCancelsWithoutCallingDoneOk(t *testing.T) {
	p := New(bbox.Box{X: 0, Y: 0, Width: 100, Height: 100}, nil)
	drag(p, 0, 0, 50, 50)

	var gotOK bool
	var called bool
	p.Done = func(r bbox.Box, ok bool) { called, gotOK = true, ok }
	p.OnKey(seat.KeyEvent{Keysym: keysymEscape, Pressed: true})

	if !called || gotOK {
		t.Errorf("Escape should call Done(_, false); called=%v ok=%v", called, gotOK)
	}
}

func TestReturnConfirmsCurrentSelection(t *testing.T) {
	p := New(bbox.Box{X: 0, Y: 0, Width: 1000, Height: 1000}, nil)
	drag(p, 10, 10, 110, 60)

	var got bbox.Box
	var ok bool
	p.Done = func(r bbox.Box, o bool) { got, ok = r, o }
	p.OnKey(seat.KeyEvent{Keysym: keysymReturn, Pressed: true})

	if !ok {
		t.Fatal("Return with a live selection should confirm")
	}
	if got.Width != 100 || got.Height != 50 {
		t.Errorf("confirmed selection = %+v, want 100x50", got)
	}
}
