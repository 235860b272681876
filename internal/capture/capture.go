// Package capture grabs a still frame of a wl_output's contents, backed
// by either zwlr_screencopy_manager_v1 or the newer
// ext_image_copy_capture_manager_v1 (spec.md §4.6). Backend selection is
// resolved once and cached: a compositor that advertises both protocols
// doesn't get asked which one to use for every shot.
package capture

import (
	"errors"
	"fmt"

	"github.com/Mabi19/spaceshot/internal/image"
	"github.com/Mabi19/spaceshot/internal/renderbuf"
	"github.com/Mabi19/spaceshot/internal/wl"
	"github.com/Mabi19/spaceshot/internal/wlglobals"
)

// Backend identifies which protocol a Manager resolved to.
type Backend int

const (
	BackendNone Backend = iota
	BackendScreencopy
	BackendImageCopyCapture
)

// Manager captures frames of a set of outputs, reusing one
// ext-image-copy-capture session (and its reference-counted capture
// source) per output across repeated captures.
type Manager struct {
	globals *wlglobals.Registry
	backend Backend

	sessions map[*wl.Output]*ecSession
}

type ecSession struct {
	source  *wl.ImageCaptureSource
	session *wl.ImageCopyCaptureSession
	format  image.Format
	width, height int
}

// NewManager resolves which capture backend to use by walking prefs (the
// configured [capture] backends order) and picking the first one the
// compositor actually advertises (spec.md §4.6).
func NewManager(globals *wlglobals.Registry, prefs []string) (*Manager, error) {
	m := &Manager{globals: globals, sessions: make(map[*wl.Output]*ecSession)}
	for _, pref := range prefs {
		switch pref {
		case "ext-image-copy-capture":
			if globals.CaptureSourceManager != nil && globals.CopyCaptureManager != nil {
				m.backend = BackendImageCopyCapture
			}
		case "wlr-screencopy":
			if globals.ScreencopyManager != nil {
				m.backend = BackendScreencopy
			}
		}
		if m.backend != BackendNone {
			return m, nil
		}
	}
	return nil, errors.New("compositor supports neither screencopy protocol spaceshot knows")
}

func (m *Manager) Backend() Backend { return m.backend }

// Capture grabs one frame of output into a freshly allocated shared
// buffer, returning its image view. The caller owns the returned
// renderbuf.Buffer and must Close it.
func (m *Manager) Capture(dsp *wl.Display, output *wl.Output) (*renderbuf.Buffer, error) {
	switch m.backend {
	case BackendScreencopy:
		return m.captureScreencopy(dsp, output)
	case BackendImageCopyCapture:
		return m.captureImageCopyCapture(dsp, output)
	default:
		return nil, errors.New("capture.Manager not initialized")
	}
}

func (m *Manager) captureScreencopy(dsp *wl.Display, output *wl.Output) (*renderbuf.Buffer, error) {
	frame := m.globals.ScreencopyManager.CaptureOutput(0, output)
	defer frame.Destroy()

	var format image.Format
	var width, height, stride uint32
	var gotBuffer bool
	var failed bool
	frame.OnBuffer = func(f wl.ShmFormat, w, h, s uint32) {
		if gotBuffer {
			return
		}
		conv, ok := renderbuf.FromWlFormat(f)
		if !ok {
			return
		}
		format, width, height, stride = conv, w, h, s
		gotBuffer = true
	}
	frame.OnFailed = func() { failed = true }

	done := false
	frame.OnReady = func(uint32, uint32, uint32) { done = true }
	frame.OnBuffer_done = func() {}

	for !done && !failed {
		if dsp.Dispatch() < 0 {
			return nil, errors.New("connection lost waiting for screencopy buffer format")
		}
		if gotBuffer && !done && !failed {
			break
		}
	}
	if failed {
		return nil, errors.New("zwlr_screencopy_manager_v1 capture failed")
	}
	if !gotBuffer {
		return nil, fmt.Errorf("compositor offered no usable shm format")
	}
	_ = stride

	buf, err := renderbuf.New(m.globals.Shm, format, int(width), int(height))
	if err != nil {
		return nil, err
	}
	frame.Copy(buf.Wl)

	done = false
	for !done && !failed {
		if dsp.Dispatch() < 0 {
			buf.Close()
			return nil, errors.New("connection lost waiting for screencopy frame")
		}
	}
	if failed {
		buf.Close()
		return nil, errors.New("zwlr_screencopy_manager_v1 copy failed")
	}
	return buf, nil
}

func (m *Manager) captureImageCopyCapture(dsp *wl.Display, output *wl.Output) (*renderbuf.Buffer, error) {
	sess, ok := m.sessions[output]
	if !ok {
		source := m.globals.CaptureSourceManager.CreateSource(output)
		ecSess := &ecSession{source: source}
		ecSess.session = m.globals.CopyCaptureManager.CreateSession(source, 0)
		ecSess.session.OnShm_format = func(f wl.ShmFormat) {
			if conv, ok := renderbuf.FromWlFormat(f); ok && ecSess.format == 0 {
				ecSess.format = conv
			}
		}
		ecSess.session.OnBuffer_size = func(w, h uint32) {
			ecSess.width, ecSess.height = int(w), int(h)
		}
		if _, err := dsp.Roundtrip(); err != nil {
			return nil, err
		}
		if ecSess.format == 0 || ecSess.width == 0 {
			return nil, errors.New("ext_image_copy_capture_session_v1 negotiated no usable format")
		}
		m.sessions[output] = ecSess
		sess = ecSess
	}

	buf, err := renderbuf.New(m.globals.Shm, sess.format, sess.width, sess.height)
	if err != nil {
		return nil, err
	}

	frame := sess.session.CreateFrame()
	defer frame.Destroy()
	frame.AttachBuffer(buf.Wl)
	frame.DamageBuffer(0, 0, int32(sess.width), int32(sess.height))

	done, failed := false, false
	frame.OnReady = func() { done = true }
	frame.OnFailed = func(uint32) { failed = true }
	frame.Capture()

	for !done && !failed {
		if dsp.Dispatch() < 0 {
			buf.Close()
			return nil, errors.New("connection lost waiting for image-copy-capture frame")
		}
	}
	if failed {
		buf.Close()
		return nil, errors.New("ext_image_copy_capture_frame_v1 capture failed")
	}
	return buf, nil
}

// Close releases every cached ext-image-copy-capture session.
func (m *Manager) Close() {
	for _, s := range m.sessions {
		s.session.Destroy()
		s.source.Destroy()
	}
	m.sessions = nil
}
