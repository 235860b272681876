package sharedbuf

import (
	"testing"

	"github.com/Mabi19/spaceshot/internal/image"
)

func TestMappedLengthMatchesStrideTimesHeight(t *testing.T) {
	buf, err := NewTightlyPacked(image.XRGB8888, 100, 50)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer buf.Close()

	if len(buf.Mapped) != buf.Stride*buf.Height {
		t.Errorf("len(Mapped) = %d, want %d", len(buf.Mapped), buf.Stride*buf.Height)
	}
}

func TestAsImageAliasesMappedMemory(t *testing.T) {
	buf, err := NewTightlyPacked(image.XRGB8888, 4, 4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer buf.Close()

	img := buf.AsImage()
	img.Set(0, 0, image.RGBA{R: 0xFFFF, G: 0, B: 0, A: 0xFFFF})
	if buf.Mapped[2] == 0 {
		t.Error("writing through AsImage should mutate the mapped bytes (red channel at offset 2 for XRGB8888)")
	}
}

func TestDoubleCloseErrors(t *testing.T) {
	buf, err := NewTightlyPacked(image.GRAY8, 8, 8)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := buf.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := buf.Close(); err == nil {
		t.Error("expected error on double close")
	}
}
