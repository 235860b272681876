// Package linkbuf implements an append-only singly-linked list of
// fixed-size byte chunks, used as the PNG encoder's write sink and as the
// byte source a clipboard data-source streams to a requester. It is
// grounded on original_source/src/link-buffer.c, generalized from that
// file's raw malloc'd chunk list into a Go slice-of-chunks with the same
// "only the tail chunk is partially filled" invariant.
package linkbuf

import "io"

// chunkSize matches the original implementation's ~64 KiB chunks.
const chunkSize = 64 * 1024

type chunk struct {
	data [chunkSize]byte
	used int
}

// Buffer is an append-only byte sink. The zero value is ready to use.
type Buffer struct {
	chunks []*chunk
	total  int
}

// Write appends p to the buffer, allocating new chunks as needed. It
// always returns len(p), nil: Buffer never fails to grow.
func (b *Buffer) Write(p []byte) (int, error) {
	n := len(p)
	b.total += n
	for len(p) > 0 {
		if len(b.chunks) == 0 || b.chunks[len(b.chunks)-1].used == chunkSize {
			b.chunks = append(b.chunks, &chunk{})
		}
		tail := b.chunks[len(b.chunks)-1]
		room := chunkSize - tail.used
		k := room
		if k > len(p) {
			k = len(p)
		}
		copy(tail.data[tail.used:tail.used+k], p[:k])
		tail.used += k
		p = p[k:]
	}
	return n, nil
}

// Len returns the total number of bytes written.
func (b *Buffer) Len() int { return b.total }

// WriteTo streams every chunk, in order, to w. It satisfies io.WriterTo so
// a Buffer can be handed straight to a file handle or a clipboard pipe.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	var n int64
	for _, c := range b.chunks {
		written, err := w.Write(c.data[:c.used])
		n += int64(written)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// Bytes concatenates every chunk into a single slice. Prefer WriteTo for
// large buffers (the file and clipboard paths both use WriteTo); Bytes is
// convenient for tests.
func (b *Buffer) Bytes() []byte {
	out := make([]byte, 0, b.total)
	for _, c := range b.chunks {
		out = append(out, c.data[:c.used]...)
	}
	return out
}

// Reset discards all chunks, returning the Buffer to its zero state.
// Matches link_buffer_destroy's effect without requiring a fresh
// allocation at the call site.
func (b *Buffer) Reset() {
	b.chunks = nil
	b.total = 0
}
