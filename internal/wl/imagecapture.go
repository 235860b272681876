package wl

// #cgo pkg-config: wayland-client
// #include <wayland-client.h>
// #include "ext-image-capture-source-v1-client-protocol.h"
// #include "ext-image-copy-capture-v1-client-protocol.h"
import "C"

var (
	outputImageCaptureSourceManagerInterface = &C.ext_output_image_capture_source_manager_v1_interface
	imageCopyCaptureManagerInterface         = &C.ext_image_copy_capture_manager_v1_interface
)

// OutputImageCaptureSourceManager turns a wl_output into a capture source
// for the newer ext-image-copy-capture backend (spec.md §4.6). Unlike
// zwlr_screencopy_manager_v1, sources are reference counted by the
// compositor, so internal/capture keeps exactly one alive per output for
// as long as any session might still need it.
type OutputImageCaptureSourceManager struct {
	dsp  *Display
	hnd  *C.struct_ext_output_image_capture_source_manager_v1
	vers int
}

func (reg *Registry) BindOutputImageCaptureSourceManager(name, vers uint32) *OutputImageCaptureSourceManager {
	m := &OutputImageCaptureSourceManager{dsp: reg.dsp, hnd: (*C.struct_ext_output_image_capture_source_manager_v1)(reg.bind(name, outputImageCaptureSourceManagerInterface, vers)), vers: int(vers)}
	reg.dsp.add((*C.struct_wl_proxy)(m.hnd), m)
	return m
}

func (m *OutputImageCaptureSourceManager) Version() int { return m.vers }

func (m *OutputImageCaptureSourceManager) Destroy() {
	C.ext_output_image_capture_source_manager_v1_destroy(m.hnd)
	m.dsp.forget((*C.struct_wl_proxy)(m.hnd))
}

func (m *OutputImageCaptureSourceManager) CreateSource(output *Output) *ImageCaptureSource {
	s := &ImageCaptureSource{dsp: m.dsp, hnd: (*C.struct_ext_image_capture_source_v1)(C.ext_output_image_capture_source_manager_v1_create_source(m.hnd, output.hnd))}
	m.dsp.add((*C.struct_wl_proxy)(s.hnd), s)
	return s
}

// ImageCaptureSource is an ext_image_capture_source_v1 handle, opaque to
// spaceshot beyond its lifetime.
type ImageCaptureSource struct {
	dsp *Display
	hnd *C.struct_ext_image_capture_source_v1
}

func (s *ImageCaptureSource) Destroy() {
	C.ext_image_capture_source_v1_destroy(s.hnd)
	s.dsp.forget((*C.struct_wl_proxy)(s.hnd))
}

// ImageCopyCaptureManager binds ext_image_copy_capture_manager_v1.
type ImageCopyCaptureManager struct {
	dsp  *Display
	hnd  *C.struct_ext_image_copy_capture_manager_v1
	vers int
}

func (reg *Registry) BindImageCopyCaptureManager(name, vers uint32) *ImageCopyCaptureManager {
	m := &ImageCopyCaptureManager{dsp: reg.dsp, hnd: (*C.struct_ext_image_copy_capture_manager_v1)(reg.bind(name, imageCopyCaptureManagerInterface, vers)), vers: int(vers)}
	reg.dsp.add((*C.struct_wl_proxy)(m.hnd), m)
	return m
}

func (m *ImageCopyCaptureManager) Version() int { return m.vers }

func (m *ImageCopyCaptureManager) Destroy() {
	C.ext_image_copy_capture_manager_v1_destroy(m.hnd)
	m.dsp.forget((*C.struct_wl_proxy)(m.hnd))
}

const imageCopyCaptureOptionsPaintCursors = 1

// CreateSession opens a capture session against source that stays alive
// across multiple frames, unlike a screencopy Frame which is single-shot
// (spec.md §4.6).
func (m *ImageCopyCaptureManager) CreateSession(source *ImageCaptureSource, options uint32) *ImageCopyCaptureSession {
	s := &ImageCopyCaptureSession{dsp: m.dsp, hnd: C.ext_image_copy_capture_manager_v1_create_session(m.hnd, source.hnd, C.uint32_t(options))}
	m.dsp.add((*C.struct_wl_proxy)(s.hnd), s)
	return s
}

// ImageCopyCaptureSession negotiates buffer constraints once and then
// hands out one ImageCopyCaptureFrame per capture via CreateFrame.
type ImageCopyCaptureSession struct {
	dsp *Display
	hnd *C.struct_ext_image_copy_capture_session_v1

	OnBuffer_size     func(width, height uint32)
	OnShm_format      func(format ShmFormat)
	OnDmabuf_device   func(device []byte)
	OnDmabuf_format   func(format uint32, modifiers []uint32)
	OnDone           func()
	OnStopped        func()
}

func (s *ImageCopyCaptureSession) Destroy() {
	C.ext_image_copy_capture_session_v1_destroy(s.hnd)
	s.dsp.forget((*C.struct_wl_proxy)(s.hnd))
}

func (s *ImageCopyCaptureSession) CreateFrame() *ImageCopyCaptureFrame {
	f := &ImageCopyCaptureFrame{dsp: s.dsp, hnd: C.ext_image_copy_capture_session_v1_create_frame(s.hnd)}
	s.dsp.add((*C.struct_wl_proxy)(f.hnd), f)
	return f
}

// ImageCopyCaptureFrame mirrors ScreencopyFrame's role but for the ext
// protocol: AttachBuffer + DamageBuffer + Capture, then wait for OnReady
// or OnFailed.
type ImageCopyCaptureFrame struct {
	dsp *Display
	hnd *C.struct_ext_image_copy_capture_frame_v1

	OnTransform   func(transform uint32)
	OnDamage      func(x, y, width, height int32)
	OnPresentation_time func(tvSecHi, tvSecLo, tvNsec uint32)
	OnReady       func()
	OnFailed      func(reason uint32)
}

func (f *ImageCopyCaptureFrame) Destroy() {
	C.ext_image_copy_capture_frame_v1_destroy(f.hnd)
	f.dsp.forget((*C.struct_wl_proxy)(f.hnd))
}

func (f *ImageCopyCaptureFrame) AttachBuffer(buffer *Buffer) {
	C.ext_image_copy_capture_frame_v1_attach_buffer(f.hnd, buffer.hnd)
}

func (f *ImageCopyCaptureFrame) DamageBuffer(x, y, width, height int32) {
	C.ext_image_copy_capture_frame_v1_damage_buffer(f.hnd, C.int32_t(x), C.int32_t(y), C.int32_t(width), C.int32_t(height))
}

func (f *ImageCopyCaptureFrame) Capture() {
	C.ext_image_copy_capture_frame_v1_capture(f.hnd)
}
