package wl

// #include <wayland-client.h>
import "C"

// Compositor creates wl_surfaces.
type Compositor struct {
	dsp  *Display
	hnd  *C.struct_wl_compositor
	vers int
}

func (c *Compositor) Version() int { return c.vers }

func (c *Compositor) CreateSurface() *Surface {
	s := &Surface{dsp: c.dsp, hnd: C.wl_compositor_create_surface(c.hnd), vers: c.vers}
	c.dsp.add((*C.struct_wl_proxy)(s.hnd), s)
	return s
}

func (c *Compositor) Destroy() {
	C.wl_compositor_destroy(c.hnd)
	c.dsp.forget((*C.struct_wl_proxy)(c.hnd))
}

// Surface is a wl_surface: a rectangle of pixels the compositor composes.
// An Overlay Surface (internal/overlay) wraps one with a layer_surface
// role; nothing in this program gives a Surface the xdg_toplevel role.
type Surface struct {
	dsp  *Display
	hnd  *C.struct_wl_surface
	vers int

	OnPreferred_buffer_scale func(scale int)
	OnEnter                  func(output uint32)
	OnLeave                  func(output uint32)
}

func (s *Surface) Version() int { return s.vers }
func (s *Surface) Handle() *C.struct_wl_surface { return s.hnd }

func (s *Surface) Destroy() {
	C.wl_surface_destroy(s.hnd)
	s.dsp.forget((*C.struct_wl_proxy)(s.hnd))
}

func (s *Surface) Attach(buf *Buffer) {
	var h *C.struct_wl_buffer
	if buf != nil {
		h = buf.hnd
	}
	C.wl_surface_attach(s.hnd, h, 0, 0)
}

func (s *Surface) Damage(x, y, width, height int32) {
	C.wl_surface_damage_buffer(s.hnd, C.int(x), C.int(y), C.int(width), C.int(height))
}

func (s *Surface) Frame(fn func(data uint32)) *Callback {
	cb := &Callback{dsp: s.dsp, hnd: C.wl_surface_frame(s.hnd), OnDone: fn}
	s.dsp.add((*C.struct_wl_proxy)(cb.hnd), cb)
	return cb
}

func (s *Surface) Commit() { C.wl_surface_commit(s.hnd) }

func (s *Surface) SetBufferScale(scale int) { C.wl_surface_set_buffer_scale(s.hnd, C.int32_t(scale)) }
