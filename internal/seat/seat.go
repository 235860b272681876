// Package seat turns the raw wl_pointer/wl_keyboard event stream into the
// coalesced input spaceshot's pickers consume: pointer motion and buttons
// batched per Frame event, and keyboard state tracked well enough to tell
// Escape and Enter apart from everything else (spec.md §4.4).
package seat

import (
	"github.com/Mabi19/spaceshot/internal/wl"
)

// PointerEvent is one coalesced wl_pointer frame: the cumulative state as
// of the frame, plus which parts of it actually changed this frame.
type PointerEvent struct {
	X, Y          float64
	Moved         bool
	ButtonPressed *uint32
	ButtonReleased *uint32
}

// KeyEvent is a single keyboard key transition.
type KeyEvent struct {
	Keysym  uint32
	Pressed bool
}

// Dispatcher owns the seat's current Pointer/Keyboard bindings, rebinding
// them as wl_seat.capabilities bits come and go, and fans out coalesced
// events to every active listener, whatever surface has focus (spec.md
// §4.4's listener registry;
// listeners are stored in a slice with nullable slots so that removing
// one mid-iteration doesn't invalidate other indices).
type Dispatcher struct {
	wlSeat  *wl.Seat
	pointer *wl.Pointer
	keyboard *wl.Keyboard
	cursorShapeMgr *wl.CursorShapeManager
	cursorDevice   *wl.CursorShapeDevice

	listeners []*listener
	lastSerial uint32

	pendingX, pendingY float64
	pendingMoved       bool
	pendingPress       *uint32
	pendingRelease     *uint32
}

type listener struct {
	onPointer func(PointerEvent)
	onKey     func(KeyEvent)
	active    bool
}

// Listener is an opaque handle a caller uses to Remove itself.
type Listener struct {
	d *Dispatcher
	l *listener
}

// New wraps wlSeat, binding a Pointer and/or Keyboard as capabilities
// allow and re-binding them if the compositor's capability set changes.
func New(wlSeat *wl.Seat, cursorShapeMgr *wl.CursorShapeManager) *Dispatcher {
	d := &Dispatcher{wlSeat: wlSeat, cursorShapeMgr: cursorShapeMgr}
	wlSeat.OnCapabilities = d.onCapabilities
	return d
}

func (d *Dispatcher) onCapabilities(caps wl.SeatCapability) {
	hasPointer := caps&wl.SeatCapabilityPointer != 0
	hasKeyboard := caps&wl.SeatCapabilityKeyboard != 0

	if hasPointer && d.pointer == nil {
		d.pointer = d.wlSeat.GetPointer()
		d.wirePointer()
		if d.cursorShapeMgr != nil {
			d.cursorDevice = d.cursorShapeMgr.GetPointer(d.pointer)
		}
	} else if !hasPointer && d.pointer != nil {
		if d.cursorDevice != nil {
			d.cursorDevice.Destroy()
			d.cursorDevice = nil
		}
		d.pointer.Destroy()
		d.pointer = nil
	}

	if hasKeyboard && d.keyboard == nil {
		d.keyboard = d.wlSeat.GetKeyboard()
		d.wireKeyboard()
	} else if !hasKeyboard && d.keyboard != nil {
		d.keyboard.Destroy()
		d.keyboard = nil
	}
}

func (d *Dispatcher) wirePointer() {
	d.pointer.OnEnter = func(serial, _ uint32, x, y wl.Fixed) {
		d.lastSerial = serial
		d.pendingX, d.pendingY = x.ToFloat64(), y.ToFloat64()
		d.pendingMoved = true
	}
	d.pointer.OnMotion = func(_ uint32, x, y wl.Fixed) {
		d.pendingX, d.pendingY = x.ToFloat64(), y.ToFloat64()
		d.pendingMoved = true
	}
	d.pointer.OnButton = func(serial, _ uint32, button uint32, state wl.PointerButtonState) {
		d.lastSerial = serial
		if state == wl.PointerButtonStatePressed {
			d.pendingPress = &button
		} else {
			d.pendingRelease = &button
		}
	}
	d.pointer.OnFrame = func() {
		ev := PointerEvent{
			X: d.pendingX, Y: d.pendingY,
			Moved:          d.pendingMoved,
			ButtonPressed:  d.pendingPress,
			ButtonReleased: d.pendingRelease,
		}
		d.pendingMoved = false
		d.pendingPress = nil
		d.pendingRelease = nil
		for _, l := range d.listeners {
			if l.active && l.onPointer != nil {
				l.onPointer(ev)
			}
		}
	}
}

func (d *Dispatcher) wireKeyboard() {
	d.keyboard.OnKey = func(_ uint32, _ uint32, key uint32, state wl.KeyState) {
		ev := KeyEvent{Keysym: keysymFor(key), Pressed: state == wl.KeyStatePressed}
		for _, l := range d.listeners {
			if l.active && l.onKey != nil {
				l.onKey(ev)
			}
		}
	}
}

// keysymFor maps the evdev keycodes of Escape and Return, the only keys the
// pickers react to, onto their X11 keysyms; every other key maps to 0.
func keysymFor(evdev uint32) uint32 {
	switch evdev {
	case 1: // KEY_ESC
		return 0xff1b
	case 28: // KEY_ENTER
		return 0xff0d
	}
	return 0
}

// SetCursorShape asks the compositor to render shape at the pointer,
// using the serial from the most recent enter/button event as the
// protocol requires.
func (d *Dispatcher) SetCursorShape(shape wl.CursorShape) {
	if d.cursorDevice == nil {
		return
	}
	d.cursorDevice.SetShape(d.lastSerial, shape)
}

// Listen registers a picker's callbacks. Either callback may be nil.
func (d *Dispatcher) Listen(onPointer func(PointerEvent), onKey func(KeyEvent)) *Listener {
	l := &listener{onPointer: onPointer, onKey: onKey, active: true}
	d.listeners = append(d.listeners, l)
	return &Listener{d: d, l: l}
}

// Remove deactivates a listener. The slot is left in place (marked
// inactive) rather than spliced out, so that a Remove called from inside
// a dispatch loop never shifts the indices another iteration is using.
func (l *Listener) Remove() { l.l.active = false }
