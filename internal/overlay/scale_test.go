package overlay

import "testing"

// bufferScale/physicalSize aren't exported, but their formula is small
// enough to re-derive here the way spec.md §8 states it:
// device = round(logical * scale120 / 120) once a fractional-scale
// value is known, else device = logical * intScale.

func TestBufferScaleFractional(t *testing.T) {
	s := &Surface{width: 100, height: 50, intScale: 1, scale120: 180}
	got := s.bufferScale()
	want := 180.0 / 120.0
	if got != want {
		t.Errorf("bufferScale() = %v, want %v", got, want)
	}
}

func TestBufferScaleIntegerFallback(t *testing.T) {
	s := &Surface{width: 100, height: 50, intScale: 2}
	if got := s.bufferScale(); got != 2 {
		t.Errorf("bufferScale() = %v, want 2 (no fractional scale reported yet)", got)
	}
}

func TestPhysicalSizeScalesBothDimensions(t *testing.T) {
	s := &Surface{width: 100, height: 40, intScale: 1, scale120: 150}
	w, h := s.physicalSize()
	if w != 125 || h != 50 {
		t.Errorf("physicalSize() = %dx%d, want 125x50 (scale 1.25)", w, h)
	}
}

// A scale that doesn't divide the logical size evenly must round to the
// nearest device pixel rather than truncate (spec.md §8:
// device = round(logical*scale120/120)); 7*150/120 = 8.75, which
// truncates to 8 but must round to 9.
func TestPhysicalSizeRoundsFractionalResults(t *testing.T) {
	s := &Surface{width: 7, height: 7, intScale: 1, scale120: 150}
	w, h := s.physicalSize()
	if w != 9 || h != 9 {
		t.Errorf("physicalSize() = %dx%d, want 9x9 (8.75 rounds up)", w, h)
	}
}

func TestFreeBufferNilForEmptyPool(t *testing.T) {
	s := &Surface{}
	if s.freeBuffer() != nil {
		t.Fatalf("freeBuffer() on empty pool should be nil")
	}
}
