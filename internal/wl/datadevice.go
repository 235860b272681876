package wl

// #include <wayland-client.h>
import "C"

// DataDeviceManager creates the one DataDevice spaceshot needs to serve
// clipboard offers (internal/clipboard, spec.md §4.9).
type DataDeviceManager struct {
	dsp  *Display
	hnd  *C.struct_wl_data_device_manager
	vers int
}

func (m *DataDeviceManager) Version() int { return m.vers }

func (m *DataDeviceManager) Destroy() {
	C.wl_data_device_manager_destroy(m.hnd)
	m.dsp.forget((*C.struct_wl_proxy)(m.hnd))
}

func (m *DataDeviceManager) CreateDataSource() *DataSource {
	s := &DataSource{dsp: m.dsp, hnd: C.wl_data_device_manager_create_data_source(m.hnd)}
	m.dsp.add((*C.struct_wl_proxy)(s.hnd), s)
	return s
}

func (m *DataDeviceManager) GetDataDevice(seat *Seat) *DataDevice {
	d := &DataDevice{dsp: m.dsp, hnd: C.wl_data_device_manager_get_data_device(m.hnd, seat.hnd)}
	m.dsp.add((*C.struct_wl_proxy)(d.hnd), d)
	return d
}

// DataDevice is the seat's clipboard/drag endpoint. spaceshot only ever
// offers data (it never accepts a drop), so none of the event fields are
// set; a superseded Data Source is noticed through its own OnCancelled.
type DataDevice struct {
	dsp *Display
	hnd *C.struct_wl_data_device

	OnData_offer func(id uint32)
	OnEnter     func(serial uint32, surface uint32, x, y Fixed, id uint32)
	OnLeave     func()
	OnMotion    func(time uint32, x, y Fixed)
	OnDrop      func()
	OnSelection func(id uint32)
}

func (d *DataDevice) Destroy() {
	C.wl_data_device_release(d.hnd)
	d.dsp.forget((*C.struct_wl_proxy)(d.hnd))
}

func (d *DataDevice) SetSelection(source *DataSource, serial uint32) {
	var h *C.struct_wl_data_source
	if source != nil {
		h = source.hnd
	}
	C.wl_data_device_set_selection(d.hnd, h, C.uint32_t(serial))
}

// DataSource is the Link Buffer's clipboard-side owner: OnSend streams the
// buffered PNG bytes to the requesting fd, OnCancelled tells
// internal/clipboard its buffer can be freed (spec.md §4.9).
type DataSource struct {
	dsp *Display
	hnd *C.struct_wl_data_source

	OnTarget             func(mimeType string)
	OnSend               func(mimeType string, fd int32)
	OnCancelled          func()
	OnDnd_drop_performed func()
	OnDnd_finished       func()
	OnAction             func(action uint32)
}

func (s *DataSource) Destroy() {
	C.wl_data_source_destroy(s.hnd)
	s.dsp.forget((*C.struct_wl_proxy)(s.hnd))
}

func (s *DataSource) Offer(mimeType string) {
	cstr := C.CString(mimeType)
	defer cFree(cstr)
	C.wl_data_source_offer(s.hnd, cstr)
}

// DataOffer represents an inbound offer (from another client's selection).
// spaceshot never reads the clipboard, so only Destroy is exposed; the
// type exists for completeness of the wl_data_device event it arrives on.
type DataOffer struct {
	dsp *Display
	hnd *C.struct_wl_data_offer

	OnOffer func(mimeType string)
}

func (o *DataOffer) Destroy() {
	C.wl_data_offer_destroy(o.hnd)
	o.dsp.forget((*C.struct_wl_proxy)(o.hnd))
}
