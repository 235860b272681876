package paths

import (
	"testing"
	"time"
)

func TestStrftimeBasicFields(t *testing.T) {
	when := time.Date(2026, 8, 1, 9, 5, 3, 0, time.UTC)
	got := strftime("%Y-%m-%d_%H%M%S.png", when)
	want := "2026-08-01_090503.png"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestResolveDashPassesThrough(t *testing.T) {
	got, err := Resolve("-", time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "-" {
		t.Fatalf("got %q", got)
	}
}

func TestResolveHomePrefix(t *testing.T) {
	t.Setenv("HOME", "/home/example")
	got, err := Resolve("~/shot-%Y.png", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "/home/example/shot-2026.png"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestPicturesDirMissingFileIsError(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if _, err := PicturesDir(); err == nil {
		t.Fatal("expected error when user-dirs.dirs is absent")
	}
}
