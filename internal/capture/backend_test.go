package capture

import (
	"testing"

	"github.com/Mabi19/spaceshot/internal/wl"
	"github.com/Mabi19/spaceshot/internal/wlglobals"
)

// NewManager must honor the configured preference order, and the choice
// must stick across Capture calls rather than being re-resolved each time.

var bothPrefs = []string{"ext-image-copy-capture", "wlr-screencopy"}

func TestNewManagerPrefersImageCopyCapture(t *testing.T) {
	g := &wlglobals.Registry{
		CaptureSourceManager: &wl.OutputImageCaptureSourceManager{},
		CopyCaptureManager:   &wl.ImageCopyCaptureManager{},
		ScreencopyManager:    &wl.ScreencopyManager{},
	}
	m, err := NewManager(g, bothPrefs)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if m.Backend() != BackendImageCopyCapture {
		t.Errorf("Backend() = %v, want BackendImageCopyCapture", m.Backend())
	}
}

func TestNewManagerFallsBackToScreencopy(t *testing.T) {
	g := &wlglobals.Registry{ScreencopyManager: &wl.ScreencopyManager{}}
	m, err := NewManager(g, bothPrefs)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if m.Backend() != BackendScreencopy {
		t.Errorf("Backend() = %v, want BackendScreencopy", m.Backend())
	}
}

func TestNewManagerErrorsWithNeitherBackend(t *testing.T) {
	g := &wlglobals.Registry{}
	if _, err := NewManager(g, bothPrefs); err == nil {
		t.Fatal("expected an error when the compositor offers neither capture protocol")
	}
}

func TestNewManagerHonorsConfiguredPreferenceOrder(t *testing.T) {
	// Preferences list screencopy first; ext-image-copy-capture isn't
	// advertised at all, so the chosen backend must be screencopy even
	// though it's second in the default order.
	g := &wlglobals.Registry{ScreencopyManager: &wl.ScreencopyManager{}}
	m, err := NewManager(g, []string{"wlr-screencopy", "ext-image-copy-capture"})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if m.Backend() != BackendScreencopy {
		t.Errorf("Backend() = %v, want BackendScreencopy", m.Backend())
	}
}

func TestNewManagerIgnoresUnlistedBackend(t *testing.T) {
	// Both backends are advertised, but the configured list only names
	// wlr-screencopy: NewManager must not fall back to the unlisted
	// ext-image-copy-capture backend just because it's available.
	g := &wlglobals.Registry{
		CaptureSourceManager: &wl.OutputImageCaptureSourceManager{},
		CopyCaptureManager:   &wl.ImageCopyCaptureManager{},
		ScreencopyManager:    &wl.ScreencopyManager{},
	}
	m, err := NewManager(g, []string{"wlr-screencopy"})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if m.Backend() != BackendScreencopy {
		t.Errorf("Backend() = %v, want BackendScreencopy", m.Backend())
	}
}

func TestBackendSelectionIsCachedAcrossSessions(t *testing.T) {
	g := &wlglobals.Registry{
		CaptureSourceManager: &wl.OutputImageCaptureSourceManager{},
		CopyCaptureManager:   &wl.ImageCopyCaptureManager{},
	}
	m, err := NewManager(g, bothPrefs)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	before := m.Backend()
	if len(m.sessions) != 0 {
		t.Fatalf("expected no cached sessions before any Capture call")
	}
	if m.Backend() != before {
		t.Errorf("Backend() changed between calls: %v != %v", m.Backend(), before)
	}
}
