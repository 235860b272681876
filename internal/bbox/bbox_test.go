package bbox

import (
	"math"
	"testing"
)

func approxEqual(a, b Box) bool {
	const eps = 1e-4
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps &&
		math.Abs(a.Width-b.Width) < eps && math.Abs(a.Height-b.Height) < eps
}

func TestRoundIdempotent(t *testing.T) {
	boxes := []Box{
		{X: 1.2, Y: 3.7, Width: 10.4, Height: 5.6},
		{X: -4.5, Y: 0, Width: 100, Height: 200.9},
		{X: 0, Y: 0, Width: 0, Height: 0},
	}
	for _, b := range boxes {
		r1 := Round(b)
		r2 := Round(r1)
		if !approxEqual(r1, r2) {
			t.Errorf("Round not idempotent for %+v: %+v != %+v", b, r1, r2)
		}
	}
}

func TestExpandToGridContains(t *testing.T) {
	b := Box{X: 1.2, Y: 3.7, Width: 10.4, Height: 5.6}
	e := ExpandToGrid(b)
	if !Contains(e, b) {
		t.Errorf("ExpandToGrid(%+v) = %+v does not contain original", b, e)
	}
}

func TestConstrainSubsetOfOuter(t *testing.T) {
	outer := Box{X: 0, Y: 0, Width: 100, Height: 100}
	inner := Box{X: -10, Y: 50, Width: 200, Height: 10}
	c := Constrain(inner, outer)
	if !Contains(outer, c) {
		t.Errorf("Constrain(%+v, %+v) = %+v not contained in outer", inner, outer, c)
	}
}

func TestContainsImpliesConstrainIdentity(t *testing.T) {
	outer := Box{X: 0, Y: 0, Width: 100, Height: 100}
	inner := Box{X: 10, Y: 10, Width: 20, Height: 20}
	if !Contains(outer, inner) {
		t.Fatal("test setup invalid: outer does not contain inner")
	}
	c := Constrain(inner, outer)
	if !approxEqual(c, inner) {
		t.Errorf("Constrain(%+v, %+v) = %+v, want %+v", inner, outer, c, inner)
	}
}

func TestParseStringifyRoundTrip(t *testing.T) {
	boxes := []Box{
		{X: 100, Y: 200, Width: 300, Height: 400},
		{X: 0, Y: 0, Width: 1920, Height: 1080},
		{X: 12.5, Y: 7.25, Width: 50.125, Height: 99.9},
	}
	for _, b := range boxes {
		s := Stringify(b)
		got, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", s, err)
		}
		if !approxEqual(got, b) {
			t.Errorf("round trip mismatch: got %+v, want %+v (via %q)", got, b, s)
		}
	}
}

func TestParseRejectsTrailingGarbage(t *testing.T) {
	if _, err := Parse("100,200 300x400extra"); err == nil {
		t.Error("expected error for trailing garbage")
	}
}

func TestParseNegativeCoordinates(t *testing.T) {
	b, err := Parse("-10,-20 50x60")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := Box{X: -10, Y: -20, Width: 50, Height: 60}
	if !approxEqual(b, want) {
		t.Errorf("got %+v, want %+v", b, want)
	}
}

func TestDamageRegionNoChange(t *testing.T) {
	b := Box{X: 10, Y: 10, Width: 20, Height: 20}
	d := DamageRegion(b, b)
	if d.Width != 0 || d.Height != 0 {
		t.Errorf("expected empty damage for unchanged box, got %+v", d)
	}
}

func TestDamageRegionFirstSelection(t *testing.T) {
	empty := Box{}
	cur := Box{X: 10, Y: 10, Width: 20, Height: 20}
	d := DamageRegion(empty, cur)
	if !approxEqual(d, cur) {
		t.Errorf("first-selection damage = %+v, want %+v", d, cur)
	}
}

func TestAreaThreshold(t *testing.T) {
	b := Box{X: 0, Y: 0, Width: 1, Height: 1}
	if b.Area() > 2 {
		t.Error("expected area <= 2 to flag as cancel-worthy click")
	}
	b2 := Box{X: 0, Y: 0, Width: 2, Height: 2}
	if b2.Area() <= 2 {
		t.Error("expected area > 2 for a real drag")
	}
}
