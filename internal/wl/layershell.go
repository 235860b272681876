package wl

// #cgo pkg-config: wayland-client
// #include <wayland-client.h>
// #include "wlr-layer-shell-unstable-v1-client-protocol.h"
import "C"

var layerShellInterface = &C.zwlr_layer_shell_v1_interface

// LayerShellLayer mirrors zwlr_layer_shell_v1.layer. Overlay Surfaces use
// LayerOverlay so the selection UI draws above every other client (spec.md
// §4.5).
type LayerShellLayer uint32

const (
	LayerBackground LayerShellLayer = 0
	LayerBottom     LayerShellLayer = 1
	LayerTop        LayerShellLayer = 2
	LayerOverlay    LayerShellLayer = 3
)

// LayerSurfaceAnchor mirrors zwlr_layer_surface_v1.anchor; spaceshot
// anchors every overlay to all four edges to cover the whole output.
type LayerSurfaceAnchor uint32

const (
	AnchorTop    LayerSurfaceAnchor = 1
	AnchorBottom LayerSurfaceAnchor = 2
	AnchorLeft   LayerSurfaceAnchor = 4
	AnchorRight  LayerSurfaceAnchor = 8
)

// LayerSurfaceKeyboardInteractivity mirrors the request of the same name.
// The pickers need Escape/Enter, so internal/overlay asks for
// KeyboardInteractivityExclusive on every overlay it creates.
type LayerSurfaceKeyboardInteractivity uint32

const (
	KeyboardInteractivityNone      LayerSurfaceKeyboardInteractivity = 0
	KeyboardInteractivityExclusive LayerSurfaceKeyboardInteractivity = 1
	KeyboardInteractivityOnDemand  LayerSurfaceKeyboardInteractivity = 2
)

// LayerShell binds zwlr_layer_shell_v1.
type LayerShell struct {
	dsp  *Display
	hnd  *C.struct_zwlr_layer_shell_v1
	vers int
}

func (reg *Registry) BindLayerShell(name, vers uint32) *LayerShell {
	l := &LayerShell{dsp: reg.dsp, hnd: (*C.struct_zwlr_layer_shell_v1)(reg.bind(name, layerShellInterface, vers)), vers: int(vers)}
	reg.dsp.add((*C.struct_wl_proxy)(l.hnd), l)
	return l
}

func (l *LayerShell) Destroy() {
	C.zwlr_layer_shell_v1_destroy(l.hnd)
	l.dsp.forget((*C.struct_wl_proxy)(l.hnd))
}

// GetLayerSurface gives surface the layer_surface role, scoped to output
// (nil picks the compositor's default output) and tagged with namespace
// (spaceshot uses "spaceshot" for every overlay it creates).
func (l *LayerShell) GetLayerSurface(surface *Surface, output *Output, layer LayerShellLayer, namespace string) *LayerSurface {
	cstr := C.CString(namespace)
	defer cFree(cstr)
	var outHnd *C.struct_wl_output
	if output != nil {
		outHnd = output.hnd
	}
	ls := &LayerSurface{dsp: l.dsp, hnd: C.zwlr_layer_shell_v1_get_layer_surface(l.hnd, surface.hnd, outHnd, C.uint32_t(layer), cstr)}
	l.dsp.add((*C.struct_wl_proxy)(ls.hnd), ls)
	return ls
}

// LayerSurface is the Overlay Surface's role object: it negotiates size
// with the compositor via Configure/AckConfigure before the first buffer
// is attached (spec.md §4.5).
type LayerSurface struct {
	dsp *Display
	hnd *C.struct_zwlr_layer_surface_v1

	OnConfigure func(serial uint32, width, height uint32)
	OnClosed    func()
}

func (ls *LayerSurface) Destroy() {
	C.zwlr_layer_surface_v1_destroy(ls.hnd)
	ls.dsp.forget((*C.struct_wl_proxy)(ls.hnd))
}

func (ls *LayerSurface) SetSize(width, height uint32) {
	C.zwlr_layer_surface_v1_set_size(ls.hnd, C.uint32_t(width), C.uint32_t(height))
}

func (ls *LayerSurface) SetAnchor(anchor LayerSurfaceAnchor) {
	C.zwlr_layer_surface_v1_set_anchor(ls.hnd, C.uint32_t(anchor))
}

func (ls *LayerSurface) SetExclusiveZone(zone int32) {
	C.zwlr_layer_surface_v1_set_exclusive_zone(ls.hnd, C.int32_t(zone))
}

func (ls *LayerSurface) SetKeyboardInteractivity(mode LayerSurfaceKeyboardInteractivity) {
	C.zwlr_layer_surface_v1_set_keyboard_interactivity(ls.hnd, C.uint32_t(mode))
}

func (ls *LayerSurface) AckConfigure(serial uint32) {
	C.zwlr_layer_surface_v1_ack_configure(ls.hnd, C.uint32_t(serial))
}
