package wl

// #cgo pkg-config: wayland-client
// #include <wayland-client.h>
// #include "wlr-screencopy-unstable-v1-client-protocol.h"
import "C"

var screencopyManagerInterface = &C.zwlr_screencopy_manager_v1_interface

// ScreencopyManager binds zwlr_screencopy_manager_v1, the older of the two
// capture backends internal/capture supports (spec.md §4.6).
type ScreencopyManager struct {
	dsp  *Display
	hnd  *C.struct_zwlr_screencopy_manager_v1
	vers int
}

func (reg *Registry) BindScreencopyManager(name, vers uint32) *ScreencopyManager {
	m := &ScreencopyManager{dsp: reg.dsp, hnd: (*C.struct_zwlr_screencopy_manager_v1)(reg.bind(name, screencopyManagerInterface, vers)), vers: int(vers)}
	reg.dsp.add((*C.struct_wl_proxy)(m.hnd), m)
	return m
}

func (m *ScreencopyManager) Version() int { return m.vers }

func (m *ScreencopyManager) Destroy() {
	C.zwlr_screencopy_manager_v1_destroy(m.hnd)
	m.dsp.forget((*C.struct_wl_proxy)(m.hnd))
}

// CaptureOutput requests one frame of the whole output; a nonzero
// overlayCursor asks the compositor to composite the cursor into it
// (internal/capture passes 0).
func (m *ScreencopyManager) CaptureOutput(overlayCursor int32, output *Output) *ScreencopyFrame {
	f := &ScreencopyFrame{dsp: m.dsp, hnd: C.zwlr_screencopy_manager_v1_capture_output(m.hnd, C.int32_t(overlayCursor), output.hnd)}
	m.dsp.add((*C.struct_wl_proxy)(f.hnd), f)
	return f
}

// ScreencopyFrame walks through Buffer(s)→[BufferDone]→Ready once per
// capture. spec.md §4.6's format negotiation reads every Buffer event
// before deciding which Shm format to allocate and calling Copy.
type ScreencopyFrame struct {
	dsp *Display
	hnd *C.struct_zwlr_screencopy_frame_v1

	OnBuffer      func(format ShmFormat, width, height, stride uint32)
	OnFlags       func(flags uint32)
	OnReady       func(tvSecHi, tvSecLo, tvNsec uint32)
	OnFailed      func()
	OnDamage      func(x, y, width, height uint32)
	OnLinux_dmabuf func(format uint32, width, height uint32)
	OnBuffer_done  func()
}

func (f *ScreencopyFrame) Destroy() {
	C.zwlr_screencopy_frame_v1_destroy(f.hnd)
	f.dsp.forget((*C.struct_wl_proxy)(f.hnd))
}

func (f *ScreencopyFrame) Copy(buffer *Buffer) {
	C.zwlr_screencopy_frame_v1_copy(f.hnd, buffer.hnd)
}
