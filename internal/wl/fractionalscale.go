package wl

// #cgo pkg-config: wayland-client
// #include <wayland-client.h>
// #include "fractional-scale-v1-client-protocol.h"
import "C"

var fractionalScaleManagerInterface = &C.wp_fractional_scale_manager_v1_interface

// FractionalScaleManager binds wp_fractional_scale_manager_v1. When
// present, it's preferred over wl_surface's integer preferred_buffer_scale
// event since spec.md §4.5 requires matching a non-integer scale factor
// exactly to avoid visible seams at the overlay's edges.
type FractionalScaleManager struct {
	dsp  *Display
	hnd  *C.struct_wp_fractional_scale_manager_v1
	vers int
}

func (reg *Registry) BindFractionalScaleManager(name, vers uint32) *FractionalScaleManager {
	m := &FractionalScaleManager{dsp: reg.dsp, hnd: (*C.struct_wp_fractional_scale_manager_v1)(reg.bind(name, fractionalScaleManagerInterface, vers)), vers: int(vers)}
	reg.dsp.add((*C.struct_wl_proxy)(m.hnd), m)
	return m
}

func (m *FractionalScaleManager) Version() int { return m.vers }

func (m *FractionalScaleManager) Destroy() {
	C.wp_fractional_scale_manager_v1_destroy(m.hnd)
	m.dsp.forget((*C.struct_wl_proxy)(m.hnd))
}

func (m *FractionalScaleManager) GetFractionalScale(surface *Surface) *FractionalScale {
	fs := &FractionalScale{dsp: m.dsp, hnd: C.wp_fractional_scale_manager_v1_get_fractional_scale(m.hnd, surface.hnd)}
	m.dsp.add((*C.struct_wl_proxy)(fs.hnd), fs)
	return fs
}

// FractionalScale reports a surface's preferred scale as a fixed-point
// 120ths-of-a-unit value (scale-120 in the protocol's own terms); divide
// by 120.0 to get the multiplier internal/overlay applies to its render
// buffer allocation.
type FractionalScale struct {
	dsp *Display
	hnd *C.struct_wp_fractional_scale_v1

	OnPreferred_scale func(scale120 uint32)
}

func (fs *FractionalScale) Destroy() {
	C.wp_fractional_scale_v1_destroy(fs.hnd)
	fs.dsp.forget((*C.struct_wl_proxy)(fs.hnd))
}
