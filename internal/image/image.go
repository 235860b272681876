// Package image owns captured and cropped pixel data: a (format, width,
// height, stride, bytes) tuple that can be copied, cropped, converted
// between the formats the compositor and the PNG encoder understand, and
// exposed as a drawing surface aliasing the same memory. It is grounded on
// original_source/src/image.c, generalized from that file's fixed XRGB8888
// assumption to the full format set spec.md §3 requires.
package image

import "fmt"

// Format identifies a pixel layout. The zero value is invalid.
type Format int

const (
	// XRGB8888 is 32-bit little-endian 0xXXRRGGBB (so in memory:
	// B,G,R,X), the common 8-bit compositor format.
	XRGB8888 Format = iota + 1
	// ARGB8888 is XRGB8888 with a meaningful alpha channel.
	ARGB8888
	// XRGB2101010 is 32-bit little-endian 10-bit-per-channel X:R:G:B.
	XRGB2101010
	// XBGR2101010 is the same layout with R and B swapped.
	XBGR2101010
	// GRAY8 is single-channel 8-bit luminance, used by the smart-border
	// mask.
	GRAY8
)

// info describes the static properties of a Format.
type info struct {
	bytesPerPixel int
	// flipped is true when the channel order is B,G,R rather than
	// R,G,B; consulted whenever a color literal (given in R,G,B,A) is
	// drawn onto a surface of this format.
	flipped bool
	name    string
}

var formatInfo = map[Format]info{
	XRGB8888:    {4, true, "XRGB8888"},
	ARGB8888:    {4, true, "ARGB8888"},
	XRGB2101010: {4, true, "XRGB2101010"},
	XBGR2101010: {4, false, "XBGR2101010"},
	GRAY8:       {1, false, "GRAY8"},
}

// BytesPerPixel returns the storage width of one pixel in f.
func (f Format) BytesPerPixel() int { return formatInfo[f].bytesPerPixel }

// Flipped reports whether f stores channels in B,G,R order rather than
// R,G,B order.
func (f Format) Flipped() bool { return formatInfo[f].flipped }

func (f Format) String() string {
	if i, ok := formatInfo[f]; ok {
		return i.name
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// HasAlpha reports whether f carries a meaningful alpha channel.
func (f Format) HasAlpha() bool { return f == ARGB8888 }

// Image is a rectangle of pixels in some Format, with an explicit stride
// so that cropping is a zero-copy slice operation. Invariant (spec.md §3):
// len(Pixels) >= Stride*Height, and Stride >= Width*BytesPerPixel(Format).
type Image struct {
	Format        Format
	Width, Height int
	Stride        int
	Pixels        []byte
}

// New allocates a zeroed Image of the given format and dimensions, using
// the minimum valid stride (Width*bpp). Callers that need a
// compositor-picked stride (e.g. for a shared buffer) should build the
// Image with a struct literal instead.
func New(format Format, width, height int) *Image {
	stride := width * format.BytesPerPixel()
	return &Image{
		Format: format,
		Width:  width,
		Height: height,
		Stride: stride,
		Pixels: make([]byte, stride*height),
	}
}

// Row returns the byte slice for pixel row y.
func (img *Image) Row(y int) []byte {
	start := y * img.Stride
	return img.Pixels[start : start+img.Width*img.Format.BytesPerPixel()]
}

// Clone deep-copies an Image, tightening the stride to Width*bpp.
func (img *Image) Clone() *Image {
	out := New(img.Format, img.Width, img.Height)
	bpp := img.Format.BytesPerPixel()
	rowBytes := img.Width * bpp
	for y := 0; y < img.Height; y++ {
		srcStart := y * img.Stride
		dstStart := y * out.Stride
		copy(out.Pixels[dstStart:dstStart+rowBytes], img.Pixels[srcStart:srcStart+rowBytes])
	}
	return out
}

// Crop returns a new Image containing the pixels of the rectangle
// (x,y,w,h), which must lie within img's bounds. The result owns its own
// memory (not an alias of img.Pixels), matching original_source's
// image_crop which allocates a fresh XRGB8888 buffer.
func (img *Image) Crop(x, y, w, h int) (*Image, error) {
	if x < 0 || y < 0 || w <= 0 || h <= 0 || x+w > img.Width || y+h > img.Height {
		return nil, fmt.Errorf("image: crop rect (%d,%d,%d,%d) out of bounds for %dx%d image", x, y, w, h, img.Width, img.Height)
	}
	out := New(img.Format, w, h)
	bpp := img.Format.BytesPerPixel()
	rowBytes := w * bpp
	for row := 0; row < h; row++ {
		srcStart := (y+row)*img.Stride + x*bpp
		dstStart := row * out.Stride
		copy(out.Pixels[dstStart:dstStart+rowBytes], img.Pixels[srcStart:srcStart+rowBytes])
	}
	return out, nil
}

// RGBA is the canonical linear pixel representation every Format can
// convert through without loss of precision relevant to an 8-bit or
// 10-bit PNG: four uint16 channels in R,G,B,A order, full scale 0xFFFF.
type RGBA struct {
	R, G, B, A uint16
}

// At decodes pixel (x,y) into the canonical RGBA model.
func (img *Image) At(x, y int) RGBA {
	bpp := img.Format.BytesPerPixel()
	off := y*img.Stride + x*bpp
	switch img.Format {
	case XRGB8888, ARGB8888:
		b := img.Pixels[off]
		g := img.Pixels[off+1]
		r := img.Pixels[off+2]
		a := byte(0xFF)
		if img.Format == ARGB8888 {
			a = img.Pixels[off+3]
		}
		return RGBA{R: widen8(r), G: widen8(g), B: widen8(b), A: widen8(a)}
	case XRGB2101010:
		v := le32(img.Pixels[off:])
		r := uint16((v >> 20) & 0x3FF)
		g := uint16((v >> 10) & 0x3FF)
		b := uint16(v & 0x3FF)
		return RGBA{R: widen10(r), G: widen10(g), B: widen10(b), A: 0xFFFF}
	case XBGR2101010:
		v := le32(img.Pixels[off:])
		b := uint16((v >> 20) & 0x3FF)
		g := uint16((v >> 10) & 0x3FF)
		r := uint16(v & 0x3FF)
		return RGBA{R: widen10(r), G: widen10(g), B: widen10(b), A: 0xFFFF}
	case GRAY8:
		v := widen8(img.Pixels[off])
		return RGBA{R: v, G: v, B: v, A: 0xFFFF}
	default:
		return RGBA{}
	}
}

// Set encodes c into pixel (x,y) using img's Format, taking the format's
// "flipped" bit into account so the same RGBA constant is stored in the
// channel order the format expects.
func (img *Image) Set(x, y int, c RGBA) {
	bpp := img.Format.BytesPerPixel()
	off := y*img.Stride + x*bpp
	switch img.Format {
	case XRGB8888, ARGB8888:
		img.Pixels[off] = narrow8(c.B)
		img.Pixels[off+1] = narrow8(c.G)
		img.Pixels[off+2] = narrow8(c.R)
		if img.Format == ARGB8888 {
			img.Pixels[off+3] = narrow8(c.A)
		}
	case XRGB2101010:
		v := (uint32(narrow10(c.R)) << 20) | (uint32(narrow10(c.G)) << 10) | uint32(narrow10(c.B))
		putLE32(img.Pixels[off:], v)
	case XBGR2101010:
		v := (uint32(narrow10(c.B)) << 20) | (uint32(narrow10(c.G)) << 10) | uint32(narrow10(c.R))
		putLE32(img.Pixels[off:], v)
	case GRAY8:
		// Rec. 601 luma, matching the smart-border grayscale
		// conversion in spec.md §4.6.
		lum := (uint32(c.R)*299 + uint32(c.G)*587 + uint32(c.B)*114) / 1000
		img.Pixels[off] = narrow8(uint16(lum))
	}
}

// Convert returns a new Image with every pixel of img re-encoded into
// dstFormat. Converting through RGBA and back is exact for any pair of
// formats that both fully cover RGB without dropping alpha, satisfying
// the convert(convert(img,F),G) == convert(img,G) property in spec.md §8.
func (img *Image) Convert(dstFormat Format) *Image {
	out := New(dstFormat, img.Width, img.Height)
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			out.Set(x, y, img.At(x, y))
		}
	}
	return out
}

func widen8(v byte) uint16  { return uint16(v)<<8 | uint16(v) }
func widen10(v uint16) uint16 {
	// Replicate the top 6 bits into the low 6 to fill 16 bits, same
	// bit-replication libpng's bit-depth promotion uses.
	return v<<6 | v>>4
}
func narrow8(v uint16) byte    { return byte(v >> 8) }
func narrow10(v uint16) uint16 { return v >> 6 }

func le32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
func putLE32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}
