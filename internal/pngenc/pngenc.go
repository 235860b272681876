// Package pngenc streams an *image.Image into a linkbuf.Buffer as a
// standard RGB PNG (no alpha channel), at configurable zlib compression,
// with bit depth and an sBIT chunk chosen from the source pixel format
// (spec.md §4.2). Chunk framing (length/type/CRC) is grounded on
// other_examples' shutej-apng writer.go, which writes raw PNG chunks by
// hand the same way; the zlib stream for IDAT uses compress/zlib exactly
// as that file does (CompressionLevel.zlib()).
package pngenc

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"hash/crc32"

	"github.com/Mabi19/spaceshot/internal/image"
	"github.com/Mabi19/spaceshot/internal/linkbuf"
)

// Options configures the encoder. Level follows compress/zlib's constants
// (DefaultCompression == -1, NoCompression == 0, BestSpeed == 1 ..
// BestCompression == 9); 4 is the spec.md-documented default.
type Options struct {
	Level int
}

// DefaultOptions matches original_source/config's default compression
// level of 4.
var DefaultOptions = Options{Level: 4}

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// Encode renders img as a PNG into a fresh linkbuf.Buffer.
func Encode(img *image.Image, opts Options) (*linkbuf.Buffer, error) {
	buf := &linkbuf.Buffer{}
	if _, err := buf.Write(pngSignature); err != nil {
		return nil, err
	}

	bitDepth, sigBits := formatDepth(img.Format)

	if err := writeChunk(buf, "IHDR", ihdrPayload(uint32(img.Width), uint32(img.Height), bitDepth)); err != nil {
		return nil, err
	}
	if err := writeChunk(buf, "sBIT", sbitPayload(sigBits)); err != nil {
		return nil, err
	}

	idat, err := encodeIDAT(img, bitDepth, opts)
	if err != nil {
		return nil, err
	}
	if err := writeChunk(buf, "IDAT", idat); err != nil {
		return nil, err
	}
	if err := writeChunk(buf, "IEND", nil); err != nil {
		return nil, err
	}
	return buf, nil
}

// formatDepth returns the PNG bit depth and the per-channel significant
// bit count for the sBIT chunk, per the table in spec.md §4.2.
func formatDepth(f image.Format) (bitDepth byte, sigBits byte) {
	switch f {
	case image.XRGB8888, image.ARGB8888:
		return 8, 8
	case image.XRGB2101010, image.XBGR2101010:
		return 16, 10
	default:
		return 8, 8
	}
}

func ihdrPayload(width, height uint32, bitDepth byte) []byte {
	b := make([]byte, 13)
	binary.BigEndian.PutUint32(b[0:4], width)
	binary.BigEndian.PutUint32(b[4:8], height)
	b[8] = bitDepth
	b[9] = 2 // color type: truecolor (RGB, no alpha is written per spec.md §6)
	b[10] = 0
	b[11] = 0
	b[12] = 0
	return b
}

func sbitPayload(sig byte) []byte {
	return []byte{sig, sig, sig}
}

// encodeIDAT walks every row of img, converts it into PNG row data with a
// leading "None" filter-type byte, and deflates the whole stream.
func encodeIDAT(img *image.Image, bitDepth byte, opts Options) ([]byte, error) {
	var raw bytes.Buffer
	bytesPerSample := 1
	if bitDepth == 16 {
		bytesPerSample = 2
	}
	rowBuf := make([]byte, 1+img.Width*3*bytesPerSample)

	for y := 0; y < img.Height; y++ {
		rowBuf[0] = 0 // filter type None
		off := 1
		for x := 0; x < img.Width; x++ {
			r, g, b := sourceToRGB(img, x, y)
			if bitDepth == 8 {
				rowBuf[off] = byte(r)
				rowBuf[off+1] = byte(g)
				rowBuf[off+2] = byte(b)
				off += 3
			} else {
				binary.BigEndian.PutUint16(rowBuf[off:], r)
				binary.BigEndian.PutUint16(rowBuf[off+2:], g)
				binary.BigEndian.PutUint16(rowBuf[off+4:], b)
				off += 6
			}
		}
		if _, err := raw.Write(rowBuf); err != nil {
			return nil, err
		}
	}

	var compressed bytes.Buffer
	level := opts.Level
	zw, err := zlib.NewWriterLevel(&compressed, clampZlibLevel(level))
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(raw.Bytes()); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return compressed.Bytes(), nil
}

func clampZlibLevel(l int) int {
	if l < zlib.HuffmanOnly || l > zlib.BestCompression {
		return zlib.DefaultCompression
	}
	return l
}

// sourceToRGB extracts the three color channels for pixel (x,y), widened
// to a 16-bit value per spec.md §4.2's "left-shifted by 6" rule for 10-bit
// sources, and reordered into the R,G,B order PNG truecolor data
// requires regardless of the source format's native byte order (the
// "swap to BGR"/"already in R,G,B order" language in spec.md §4.2
// describes this same reordering from the perspective of the source
// format's internal field layout; see DESIGN.md for the resolved
// ambiguity). For 8-bit sources the returned values are 0..255 widened
// into the low byte of a uint16 so callers can use one code path for
// both bit depths.
func sourceToRGB(img *image.Image, x, y int) (r, g, b uint16) {
	c := img.At(x, y)
	switch img.Format {
	case image.XRGB8888, image.ARGB8888:
		return c.R >> 8, c.G >> 8, c.B >> 8
	case image.XRGB2101010, image.XBGR2101010:
		// img.At already widened the native 10-bit samples to 16
		// bits via bit replication for the lossless Convert()
		// algebra (spec.md §8); the PNG encoder instead uses a pure
		// left shift by 6, per spec.md §4.2, so recover the 10-bit
		// value and re-widen here.
		return narrow10(c.R) << 6, narrow10(c.G) << 6, narrow10(c.B) << 6
	default:
		return c.R >> 8, c.G >> 8, c.B >> 8
	}
}

func narrow10(v uint16) uint16 { return v >> 6 }

func writeChunk(buf *linkbuf.Buffer, typ string, payload []byte) error {
	var length [4]byte
	binary.BigEndian.PutUint32(length[:], uint32(len(payload)))
	if _, err := buf.Write(length[:]); err != nil {
		return err
	}
	typBytes := []byte(typ)
	if _, err := buf.Write(typBytes); err != nil {
		return err
	}
	if len(payload) > 0 {
		if _, err := buf.Write(payload); err != nil {
			return err
		}
	}
	crc := crc32.NewIEEE()
	crc.Write(typBytes)
	crc.Write(payload)
	var sum [4]byte
	binary.BigEndian.PutUint32(sum[:], crc.Sum32())
	_, err := buf.Write(sum[:])
	return err
}
