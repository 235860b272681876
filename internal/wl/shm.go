package wl

// #include <wayland-client.h>
import "C"

// Shm is the wl_shm global: a factory for shared-memory pools.
type Shm struct {
	dsp  *Display
	hnd  *C.struct_wl_shm
	vers int

	OnFormat func(format ShmFormat)
}

func (s *Shm) Version() int { return s.vers }

func (s *Shm) Destroy() {
	C.wl_shm_destroy(s.hnd)
	s.dsp.forget((*C.struct_wl_proxy)(s.hnd))
}

func (s *Shm) CreatePool(fd int32, size int32) *ShmPool {
	p := &ShmPool{dsp: s.dsp, hnd: C.wl_shm_create_pool(s.hnd, C.int(fd), C.int(size)), vers: s.vers}
	s.dsp.add((*C.struct_wl_proxy)(p.hnd), p)
	return p
}

// ShmPool is discarded right after creating its one Buffer (spec.md
// §4.1: "each buffer owns its own pool").
type ShmPool struct {
	dsp  *Display
	hnd  *C.struct_wl_shm_pool
	vers int
}

func (p *ShmPool) Destroy() {
	C.wl_shm_pool_destroy(p.hnd)
	p.dsp.forget((*C.struct_wl_proxy)(p.hnd))
}

func (p *ShmPool) CreateBuffer(offset, width, height, stride int32, format ShmFormat) *Buffer {
	b := &Buffer{dsp: p.dsp, hnd: C.wl_shm_pool_create_buffer(p.hnd, C.int(offset), C.int(width), C.int(height), C.int(stride), C.uint32_t(format)), vers: p.vers}
	p.dsp.add((*C.struct_wl_proxy)(b.hnd), b)
	return b
}

// Buffer is a wl_buffer backing a Render Buffer's pixels (spec.md §4.1).
type Buffer struct {
	dsp       *Display
	hnd       *C.struct_wl_buffer
	vers      int
	OnRelease func()
}

func (b *Buffer) Version() int { return b.vers }

func (b *Buffer) Destroy() {
	C.wl_buffer_destroy(b.hnd)
	b.dsp.forget((*C.struct_wl_proxy)(b.hnd))
	b.hnd = nil
}

// ShmFormat mirrors wl_shm.format; only the subset spec.md §3 names plus a
// few common negotiation fallbacks are bound.
type ShmFormat uint32

const (
	ShmFormatArgb8888    ShmFormat = 0
	ShmFormatXrgb8888    ShmFormat = 1
	ShmFormatXbgr8888    ShmFormat = 0x34324258
	ShmFormatAbgr8888    ShmFormat = 0x34324241
	ShmFormatXrgb2101010 ShmFormat = 0x30335258
	ShmFormatXbgr2101010 ShmFormat = 0x30334258
	ShmFormatArgb2101010 ShmFormat = 0x30335241
	ShmFormatAbgr2101010 ShmFormat = 0x30334241
)

func (f ShmFormat) String() string {
	switch f {
	case ShmFormatArgb8888:
		return "ARGB8888"
	case ShmFormatXrgb8888:
		return "XRGB8888"
	case ShmFormatXbgr8888:
		return "XBGR8888"
	case ShmFormatAbgr8888:
		return "ABGR8888"
	case ShmFormatXrgb2101010:
		return "XRGB2101010"
	case ShmFormatXbgr2101010:
		return "XBGR2101010"
	case ShmFormatArgb2101010:
		return "ARGB2101010"
	case ShmFormatAbgr2101010:
		return "ABGR2101010"
	default:
		return "unknown"
	}
}
