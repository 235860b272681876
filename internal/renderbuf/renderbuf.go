// Package renderbuf implements the Render Buffer: a shared-memory pixel
// buffer paired with a wl_buffer and a drawing context, plus the
// is_busy bookkeeping an Overlay Surface needs to know which of its two
// buffers the compositor still owns (spec.md §4.1).
package renderbuf

import (
	"fmt"

	"github.com/Mabi19/spaceshot/internal/drawctx"
	"github.com/Mabi19/spaceshot/internal/image"
	"github.com/Mabi19/spaceshot/internal/sharedbuf"
	"github.com/Mabi19/spaceshot/internal/wl"
)

// Buffer owns one wl_shm-backed buffer: the shared memory, the wl_buffer
// protocol object, and a drawing Context over its pixels. Release sets
// Busy back to false; Attach/Commit on the owning surface sets it true.
type Buffer struct {
	Shared *sharedbuf.Buffer
	Wl     *wl.Buffer
	Ctx    *drawctx.Context
	Busy   bool
}

// New allocates a Render Buffer of the given size in format, creating a
// fresh memfd-backed pool sized exactly to one buffer (spec.md §4.1: "no
// pool is shared between buffers").
func New(shm *wl.Shm, format image.Format, width, height int) (*Buffer, error) {
	wlFormat, err := toWlFormat(format)
	if err != nil {
		return nil, err
	}

	shared, err := sharedbuf.NewTightlyPacked(format, width, height)
	if err != nil {
		return nil, fmt.Errorf("allocating render buffer: %w", err)
	}

	pool := shm.CreatePool(int32(shared.Fd), int32(len(shared.Mapped)))
	wlBuf := pool.CreateBuffer(0, int32(width), int32(height), int32(shared.Stride), wlFormat)
	pool.Destroy()

	b := &Buffer{
		Shared: shared,
		Wl:     wlBuf,
		Ctx:    drawctx.New(shared.AsImage()),
	}
	wlBuf.OnRelease = func() { b.Busy = false }
	return b, nil
}

// Close releases the wl_buffer and unmaps the backing memory. The caller
// must already know the compositor is done with it (Busy is false).
func (b *Buffer) Close() error {
	b.Wl.Destroy()
	return b.Shared.Close()
}

func toWlFormat(f image.Format) (wl.ShmFormat, error) {
	switch f {
	case image.XRGB8888:
		return wl.ShmFormatXrgb8888, nil
	case image.ARGB8888:
		return wl.ShmFormatArgb8888, nil
	case image.XRGB2101010:
		return wl.ShmFormatXrgb2101010, nil
	case image.XBGR2101010:
		return wl.ShmFormatXbgr2101010, nil
	default:
		return 0, fmt.Errorf("renderbuf: format %s has no wl_shm equivalent", f)
	}
}

// FromWlFormat is the inverse mapping, used when a capture backend
// negotiates a format advertised by the compositor rather than choosing
// one itself.
func FromWlFormat(f wl.ShmFormat) (image.Format, bool) {
	switch f {
	case wl.ShmFormatXrgb8888:
		return image.XRGB8888, true
	case wl.ShmFormatArgb8888:
		return image.ARGB8888, true
	case wl.ShmFormatXrgb2101010:
		return image.XRGB2101010, true
	case wl.ShmFormatXbgr2101010:
		return image.XBGR2101010, true
	default:
		return 0, false
	}
}
