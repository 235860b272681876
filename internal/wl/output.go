package wl

// #cgo pkg-config: wayland-client
// #include <wayland-client.h>
// #include "xdg-output-unstable-v1-client-protocol.h"
import "C"

var xdgOutputManagerInterface = &C.zxdg_output_manager_v1_interface

// Output is a wl_output: one physical display. The logical geometry
// (position/size in compositor space) comes from the xdg-output
// extension, not from wl_output's own physical-pixel geometry event,
// matching spec.md §3's Wrapped Output.
type Output struct {
	dsp  *Display
	hnd  *C.struct_wl_output
	vers int
	Name uint32

	OnGeometry func(x, y int32, physWidth, physHeight int32, subpixel int32, make_, model string, transform int32)
	OnMode     func(flags uint32, width, height int32, refresh int32)
	OnScale    func(factor int32)
	OnName     func(name string)
	OnDescription func(description string)
	OnDone     func()
}

func (o *Output) Version() int { return o.vers }

func (o *Output) Destroy() {
	C.wl_output_destroy(o.hnd)
	o.dsp.forget((*C.struct_wl_proxy)(o.hnd))
}

// XdgOutputManager binds zxdg_output_manager_v1, which hands out one
// XdgOutput per wl_output to describe its logical bounds.
type XdgOutputManager struct {
	dsp  *Display
	hnd  *C.struct_zxdg_output_manager_v1
	vers int
}

func (reg *Registry) BindXdgOutputManager(name, vers uint32) *XdgOutputManager {
	m := &XdgOutputManager{dsp: reg.dsp, hnd: (*C.struct_zxdg_output_manager_v1)(reg.bind(name, xdgOutputManagerInterface, vers)), vers: int(vers)}
	reg.dsp.add((*C.struct_wl_proxy)(m.hnd), m)
	return m
}

func (m *XdgOutputManager) Destroy() {
	C.zxdg_output_manager_v1_destroy(m.hnd)
	m.dsp.forget((*C.struct_wl_proxy)(m.hnd))
}

func (m *XdgOutputManager) GetXdgOutput(output *Output) *XdgOutput {
	x := &XdgOutput{dsp: m.dsp, hnd: C.zxdg_output_manager_v1_get_xdg_output(m.hnd, output.hnd)}
	m.dsp.add((*C.struct_wl_proxy)(x.hnd), x)
	return x
}

// XdgOutput carries the logical position/size events spec.md §3 and §4
// need: a Wrapped Output's create-callback fires once name, logical
// position and logical size have all arrived.
type XdgOutput struct {
	dsp *Display
	hnd *C.struct_zxdg_output_v1

	OnLogical_position func(x, y int32)
	OnLogical_size      func(width, height int32)
	OnDone              func()
	OnName              func(name string)
	OnDescription       func(description string)
}

func (x *XdgOutput) Destroy() {
	C.zxdg_output_v1_destroy(x.hnd)
	x.dsp.forget((*C.struct_wl_proxy)(x.hnd))
}
