// Package sharedbuf allocates anonymous POSIX shared memory and maps it
// read-write, implementing spec.md §4.1's new_shared_buffer in two
// halves: this file is the OS-level allocate/map/unmap/close half, and
// internal/wl's Shm bindings turn a Buffer's fd into a wl_buffer.
//
// golang.org/x/sys/unix provides memfd_create/mmap/munmap, the same way
// gioui-gio, helixml-helix and IntuitionAmiga-IntuitionEngine's go.mod all
// depend on golang.org/x/sys for raw syscalls the standard library
// doesn't expose.
package sharedbuf

import (
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sys/unix"

	"github.com/Mabi19/spaceshot/internal/image"
)

// Buffer is a single anonymous shared-memory allocation of exactly
// Stride*Height bytes (no sub-allocation, per spec.md §4.1: "one buffer
// per region").
type Buffer struct {
	Fd            int
	Width, Height int
	Stride        int
	Format        image.Format
	Mapped        []byte
}

// strideFor returns the stride a drawing library would pick for format at
// the given width: tightly packed except GRAY8, which uses width exactly
// per spec.md §4.1.
func strideFor(format image.Format, width int) int {
	return width * format.BytesPerPixel()
}

// New allocates, sizes and maps a new shared-memory segment for an image
// of the given format and dimensions using an explicit stride (the caller
// may want compositor-aligned padding; pass strideFor(format,width) for
// the tightly packed default). Every failure path releases whatever it
// had already acquired, per spec.md §4.1.
func New(format image.Format, width, height, stride int) (buf *Buffer, err error) {
	size := stride * height
	if size <= 0 {
		return nil, fmt.Errorf("sharedbuf: invalid size %dx%d stride %d", width, height, stride)
	}

	name := "/spaceshot-" + uuid.NewString()
	fd, err := unix.MemfdCreate(name, unix.MFD_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("sharedbuf: memfd_create: %w", err)
	}
	ok := false
	defer func() {
		if !ok {
			unix.Close(fd)
		}
	}()

	if err := unix.Ftruncate(fd, int64(size)); err != nil {
		return nil, fmt.Errorf("sharedbuf: ftruncate: %w", err)
	}

	mapped, err := unix.Mmap(fd, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("sharedbuf: mmap: %w", err)
	}

	ok = true
	return &Buffer{
		Fd:     fd,
		Width:  width,
		Height: height,
		Stride: stride,
		Format: format,
		Mapped: mapped,
	}, nil
}

// NewTightlyPacked is New with the default stride for format.
func NewTightlyPacked(format image.Format, width, height int) (*Buffer, error) {
	return New(format, width, height, strideFor(format, width))
}

// AsImage returns an *image.Image aliasing this buffer's mapped memory,
// so drawing into it is visible to the compositor without a copy.
func (b *Buffer) AsImage() *image.Image {
	return &image.Image{
		Format: b.Format,
		Width:  b.Width,
		Height: b.Height,
		Stride: b.Stride,
		Pixels: b.Mapped,
	}
}

// Close unmaps and closes the backing fd. Safe to call once; a second
// call is a caller bug (matches the teacher's "double close" panics
// elsewhere in the binding layer).
func (b *Buffer) Close() error {
	if b.Mapped == nil {
		return fmt.Errorf("sharedbuf: double close")
	}
	err := unix.Munmap(b.Mapped)
	b.Mapped = nil
	if cerr := unix.Close(b.Fd); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
