package wl

// #cgo pkg-config: wayland-client
// #include <wayland-client.h>
// #include "cursor-shape-v1-client-protocol.h"
import "C"

var cursorShapeManagerInterface = &C.wp_cursor_shape_manager_v1_interface

// CursorShapeManager binds wp_cursor_shape_manager_v1, through which
// internal/seat's SetCursorShape can ask the compositor for a standard
// cursor shape instead of shipping a cursor surface (spec.md §4.7). No
// picker calls SetCursorShape, so the pointer keeps the compositor's
// current cursor over the overlays.
type CursorShapeManager struct {
	dsp  *Display
	hnd  *C.struct_wp_cursor_shape_manager_v1
	vers int
}

func (reg *Registry) BindCursorShapeManager(name, vers uint32) *CursorShapeManager {
	m := &CursorShapeManager{dsp: reg.dsp, hnd: (*C.struct_wp_cursor_shape_manager_v1)(reg.bind(name, cursorShapeManagerInterface, vers)), vers: int(vers)}
	reg.dsp.add((*C.struct_wl_proxy)(m.hnd), m)
	return m
}

func (m *CursorShapeManager) Version() int { return m.vers }

func (m *CursorShapeManager) Destroy() {
	C.wp_cursor_shape_manager_v1_destroy(m.hnd)
	m.dsp.forget((*C.struct_wl_proxy)(m.hnd))
}

func (m *CursorShapeManager) GetPointer(pointer *Pointer) *CursorShapeDevice {
	d := &CursorShapeDevice{dsp: m.dsp, hnd: C.wp_cursor_shape_manager_v1_get_pointer(m.hnd, pointer.hnd)}
	m.dsp.add((*C.struct_wl_proxy)(d.hnd), d)
	return d
}

// CursorShapeDevice lets a seat set the pointer's shape without a cursor
// surface of its own.
type CursorShapeDevice struct {
	dsp *Display
	hnd *C.struct_wp_cursor_shape_device_v1
}

func (d *CursorShapeDevice) Destroy() {
	C.wp_cursor_shape_device_v1_destroy(d.hnd)
	d.dsp.forget((*C.struct_wl_proxy)(d.hnd))
}

// CursorShape mirrors wp_cursor_shape_device_v1.shape; only the subset a
// region picker would use (crosshair, move, resize handles) is named.
type CursorShape uint32

const (
	CursorShapeDefault      CursorShape = 1
	CursorShapeCrosshair    CursorShape = 8
	CursorShapeMove         CursorShape = 13
	CursorShapeNResize      CursorShape = 19
	CursorShapeSResize      CursorShape = 22
	CursorShapeEResize      CursorShape = 18
	CursorShapeWResize      CursorShape = 25
	CursorShapeNeResize     CursorShape = 20
	CursorShapeNwResize     CursorShape = 21
	CursorShapeSeResize     CursorShape = 23
	CursorShapeSwResize     CursorShape = 24
)

func (d *CursorShapeDevice) SetShape(serial uint32, shape CursorShape) {
	C.wp_cursor_shape_device_v1_set_shape(d.hnd, C.uint32_t(serial), C.uint32_t(shape))
}
