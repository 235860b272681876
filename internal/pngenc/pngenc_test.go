package pngenc

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"io"
	"testing"

	"github.com/Mabi19/spaceshot/internal/image"
)

func TestIHDRMatchesSourceDimensions(t *testing.T) {
	img := image.New(image.XRGB8888, 7, 5)
	buf, err := Encode(img, DefaultOptions)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	data := buf.Bytes()
	if !bytes.Equal(data[:8], pngSignature) {
		t.Fatal("missing PNG signature")
	}
	// IHDR chunk: 4-byte length, "IHDR", payload, 4-byte CRC.
	ihdr := data[8:33]
	if string(ihdr[4:8]) != "IHDR" {
		t.Fatalf("expected IHDR chunk, got %q", ihdr[4:8])
	}
	width := binary.BigEndian.Uint32(ihdr[8:12])
	height := binary.BigEndian.Uint32(ihdr[12:16])
	if width != 7 || height != 5 {
		t.Errorf("IHDR dims = %dx%d, want 7x5", width, height)
	}
	bitDepth := ihdr[16]
	if bitDepth != 8 {
		t.Errorf("bit depth = %d, want 8 for XRGB8888", bitDepth)
	}
}

func TestIDATPixelCount(t *testing.T) {
	const w, h = 4, 3
	img := image.New(image.XRGB8888, w, h)
	raw, err := encodeIDAT(img, 8, DefaultOptions)
	if err != nil {
		t.Fatalf("encodeIDAT: %v", err)
	}
	zr, err := zlib.NewReader(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("zlib.NewReader: %v", err)
	}
	decoded, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("reading inflated IDAT: %v", err)
	}
	// Each row: 1 filter byte + w*3 color bytes.
	wantLen := h * (1 + w*3)
	if len(decoded) != wantLen {
		t.Fatalf("decoded IDAT length = %d, want %d", len(decoded), wantLen)
	}
	pixelCount := 0
	for y := 0; y < h; y++ {
		row := decoded[y*(1+w*3) : (y+1)*(1+w*3)]
		if row[0] != 0 {
			t.Errorf("row %d filter byte = %d, want 0 (None)", y, row[0])
		}
		pixelCount += (len(row) - 1) / 3
	}
	if pixelCount != w*h {
		t.Errorf("decoded pixel count = %d, want %d", pixelCount, w*h)
	}
}

func TestByteSwapBGRXToRGB(t *testing.T) {
	img := image.New(image.XRGB8888, 1, 1)
	// Memory order for XRGB8888 is B,G,R,X.
	img.Pixels[0] = 0x10 // B
	img.Pixels[1] = 0x20 // G
	img.Pixels[2] = 0x30 // R
	img.Pixels[3] = 0xFF // X
	r, g, b := sourceToRGB(img, 0, 0)
	if r != 0x30 || g != 0x20 || b != 0x10 {
		t.Errorf("sourceToRGB = (%#x,%#x,%#x), want (0x30,0x20,0x10)", r, g, b)
	}
}

func TestSBitChunkPresent(t *testing.T) {
	img := image.New(image.XRGB2101010, 2, 2)
	buf, err := Encode(img, DefaultOptions)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("sBIT")) {
		t.Error("expected an sBIT chunk in output")
	}
}
