package wl

// #include <wayland-client.h>
import "C"

// SeatCapability mirrors wl_seat.capability's bitmask.
type SeatCapability uint32

const (
	SeatCapabilityPointer  SeatCapability = 1
	SeatCapabilityKeyboard SeatCapability = 2
	SeatCapabilityTouch    SeatCapability = 4
)

// Seat is one input seat. internal/seat's dispatcher binds one Pointer and
// one Keyboard from it as soon as the matching capability bit appears, and
// releases them again when the bit disappears (spec.md §4.4).
type Seat struct {
	dsp  *Display
	hnd  *C.struct_wl_seat
	vers int

	OnCapabilities func(caps SeatCapability)
	OnName         func(name string)
}

func (s *Seat) Version() int { return s.vers }

func (s *Seat) Destroy() {
	C.wl_seat_destroy(s.hnd)
	s.dsp.forget((*C.struct_wl_proxy)(s.hnd))
}

func (s *Seat) GetPointer() *Pointer {
	p := &Pointer{dsp: s.dsp, hnd: C.wl_seat_get_pointer(s.hnd)}
	s.dsp.add((*C.struct_wl_proxy)(p.hnd), p)
	return p
}

func (s *Seat) GetKeyboard() *Keyboard {
	k := &Keyboard{dsp: s.dsp, hnd: C.wl_seat_get_keyboard(s.hnd)}
	s.dsp.add((*C.struct_wl_proxy)(k.hnd), k)
	return k
}

// PointerButtonState mirrors wl_pointer.button_state.
type PointerButtonState uint32

const (
	PointerButtonStateReleased PointerButtonState = 0
	PointerButtonStatePressed  PointerButtonState = 1
)

// PointerAxisSource mirrors wl_pointer.axis_source.
type PointerAxisSource uint32

// Pointer delivers motion/button/axis events, all of which the Seat
// Dispatcher buffers until the matching Frame event before handing a
// coalesced update to the active picker (spec.md §4.4).
type Pointer struct {
	dsp *Display
	hnd *C.struct_wl_pointer

	OnEnter          func(serial uint32, surface uint32, x, y Fixed)
	OnLeave          func(serial uint32, surface uint32)
	OnMotion         func(time uint32, x, y Fixed)
	OnButton         func(serial uint32, time uint32, button uint32, state PointerButtonState)
	OnAxis           func(time uint32, axis uint32, value Fixed)
	OnFrame          func()
	OnAxis_source     func(axisSource PointerAxisSource)
	OnAxis_stop       func(time uint32, axis uint32)
	OnAxis_discrete   func(axis uint32, discrete int32)
}

func (p *Pointer) Destroy() {
	C.wl_pointer_release(p.hnd)
	p.dsp.forget((*C.struct_wl_proxy)(p.hnd))
}

func (p *Pointer) SetCursor(serial uint32, surface *Surface, hotspotX, hotspotY int32) {
	var h *C.struct_wl_surface
	if surface != nil {
		h = surface.hnd
	}
	C.wl_pointer_set_cursor(p.hnd, C.uint32_t(serial), h, C.int32_t(hotspotX), C.int32_t(hotspotY))
}

// KeyState mirrors wl_keyboard.key_state.
type KeyState uint32

const (
	KeyStateReleased KeyState = 0
	KeyStatePressed  KeyState = 1
)

// Keyboard delivers the xkb keymap plus key/modifier events. internal/seat
// handles only OnKey, mapping the evdev codes of Escape and Return to
// keysyms; the keymap and modifier events are not used and no xkbcommon
// state is kept.
type Keyboard struct {
	dsp *Display
	hnd *C.struct_wl_keyboard

	OnKeymap     func(format uint32, fd int32, size uint32)
	OnEnter      func(serial uint32, surface uint32, keys []uint32)
	OnLeave      func(serial uint32, surface uint32)
	OnKey        func(serial uint32, time uint32, key uint32, state KeyState)
	OnModifiers  func(serial uint32, modsDepressed, modsLatched, modsLocked, group uint32)
	OnRepeat_info func(rate, delay int32)
}

func (k *Keyboard) Destroy() {
	C.wl_keyboard_release(k.hnd)
	k.dsp.forget((*C.struct_wl_proxy)(k.hnd))
}
