package wl

// #cgo pkg-config: wayland-client
// #include <wayland-client.h>
// #include "viewporter-client-protocol.h"
import "C"

var viewporterInterface = &C.wp_viewporter_interface

// Viewporter binds wp_viewporter, used to scale a render buffer's
// physical-pixel contents to an overlay surface's logical size when the
// two diverge under fractional scaling (spec.md §4.5).
type Viewporter struct {
	dsp  *Display
	hnd  *C.struct_wp_viewporter
	vers int
}

func (reg *Registry) BindViewporter(name, vers uint32) *Viewporter {
	v := &Viewporter{dsp: reg.dsp, hnd: (*C.struct_wp_viewporter)(reg.bind(name, viewporterInterface, vers)), vers: int(vers)}
	reg.dsp.add((*C.struct_wl_proxy)(v.hnd), v)
	return v
}

func (v *Viewporter) Version() int { return v.vers }

func (v *Viewporter) Destroy() {
	C.wp_viewporter_destroy(v.hnd)
	v.dsp.forget((*C.struct_wl_proxy)(v.hnd))
}

func (v *Viewporter) GetViewport(surface *Surface) *Viewport {
	vp := &Viewport{dsp: v.dsp, hnd: C.wp_viewporter_get_viewport(v.hnd, surface.hnd)}
	v.dsp.add((*C.struct_wl_proxy)(vp.hnd), vp)
	return vp
}

// Viewport rescales a surface's buffer-space contents into a
// destination size given in logical (surface-space) coordinates.
type Viewport struct {
	dsp *Display
	hnd *C.struct_wp_viewport
}

func (vp *Viewport) Destroy() {
	C.wp_viewport_destroy(vp.hnd)
	vp.dsp.forget((*C.struct_wl_proxy)(vp.hnd))
}

// SetDestination sets the surface's logical size; -1,-1 removes any
// override and reverts to the buffer's natural size.
func (vp *Viewport) SetDestination(width, height int32) {
	C.wp_viewport_set_destination(vp.hnd, C.int32_t(width), C.int32_t(height))
}

func (vp *Viewport) SetSource(x, y, width, height Fixed) {
	C.wp_viewport_set_source(vp.hnd, C.wl_fixed_t(x), C.wl_fixed_t(y), C.wl_fixed_t(width), C.wl_fixed_t(height))
}
