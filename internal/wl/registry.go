package wl

// #include <wayland-client.h>
import "C"

var (
	compositorInterface  = &C.wl_compositor_interface
	shmInterface         = &C.wl_shm_interface
	seatInterface        = &C.wl_seat_interface
	outputInterface      = &C.wl_output_interface
	dataDeviceMgrIface   = &C.wl_data_device_manager_interface
)

// Registry announces and removes compositor globals.
type Registry struct {
	dsp *Display
	hnd *C.struct_wl_registry

	OnGlobal       func(name uint32, iface string, version uint32)
	OnGlobalRemove func(name uint32)
}

func (reg *Registry) Destroy() {
	C.wl_registry_destroy(reg.hnd)
	reg.dsp.forget((*C.struct_wl_proxy)(reg.hnd))
	reg.hnd = nil
}

func (reg *Registry) bind(name uint32, iface *C.struct_wl_interface, vers uint32) *C.struct_wl_proxy {
	return (*C.struct_wl_proxy)(C.wl_registry_bind(reg.hnd, C.uint(name), iface, C.uint(vers)))
}

func (reg *Registry) BindCompositor(name, vers uint32) *Compositor {
	c := &Compositor{dsp: reg.dsp, hnd: (*C.struct_wl_compositor)(reg.bind(name, compositorInterface, vers)), vers: int(vers)}
	reg.dsp.add((*C.struct_wl_proxy)(c.hnd), c)
	return c
}

func (reg *Registry) BindShm(name, vers uint32) *Shm {
	s := &Shm{dsp: reg.dsp, hnd: (*C.struct_wl_shm)(reg.bind(name, shmInterface, vers)), vers: int(vers)}
	reg.dsp.add((*C.struct_wl_proxy)(s.hnd), s)
	return s
}

func (reg *Registry) BindSeat(name, vers uint32) *Seat {
	s := &Seat{dsp: reg.dsp, hnd: (*C.struct_wl_seat)(reg.bind(name, seatInterface, vers)), vers: int(vers)}
	reg.dsp.add((*C.struct_wl_proxy)(s.hnd), s)
	return s
}

func (reg *Registry) BindOutput(name, vers uint32) *Output {
	o := &Output{dsp: reg.dsp, hnd: (*C.struct_wl_output)(reg.bind(name, outputInterface, vers)), vers: int(vers), Name: name}
	reg.dsp.add((*C.struct_wl_proxy)(o.hnd), o)
	return o
}

func (reg *Registry) BindDataDeviceManager(name, vers uint32) *DataDeviceManager {
	m := &DataDeviceManager{dsp: reg.dsp, hnd: (*C.struct_wl_data_device_manager)(reg.bind(name, dataDeviceMgrIface, vers)), vers: int(vers)}
	reg.dsp.add((*C.struct_wl_proxy)(m.hnd), m)
	return m
}
