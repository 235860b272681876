// Package overlay implements the Overlay Surface: a fullscreen,
// frame-callback-driven layer-shell surface with a two-buffer pool and
// damage-tracked redraw, used by both the region picker and the output
// picker (spec.md §4.5).
package overlay

import (
	"math"

	"github.com/Mabi19/spaceshot/internal/bbox"
	"github.com/Mabi19/spaceshot/internal/drawctx"
	"github.com/Mabi19/spaceshot/internal/image"
	"github.com/Mabi19/spaceshot/internal/renderbuf"
	"github.com/Mabi19/spaceshot/internal/wl"
)

// Surface owns a layer-shell surface anchored to all four edges of one
// output, redrawing through whichever of its two Render Buffers isn't
// still owned by the compositor.
type Surface struct {
	wlSurface    *wl.Surface
	layerSurface *wl.LayerSurface
	viewport     *wl.Viewport
	fracScale    *wl.FractionalScale

	shm *wl.Shm

	width, height int // logical size
	scale120      uint32 // 0 until a fractional-scale event arrives
	intScale      int32  // wl_surface.set_buffer_scale fallback

	buffers  [2]*renderbuf.Buffer
	damage   bbox.Box
	hasFrame bool
	frameCb  *wl.Callback

	// Draw is called to repaint the current back buffer right before it's
	// committed; r is the accumulated damage rectangle in logical
	// coordinates since the last draw.
	Draw func(ctx *drawctx.Context, r bbox.Box)
}

// New creates a layer-shell overlay on output sized to its full logical
// bounds.
func New(compositor *wl.Compositor, shm *wl.Shm, layerShell *wl.LayerShell, viewporter *wl.Viewporter, fracScaleMgr *wl.FractionalScaleManager, output *wl.Output, width, height int, namespace string) *Surface {
	s := &Surface{shm: shm, width: width, height: height, intScale: 1}

	s.wlSurface = compositor.CreateSurface()
	s.wlSurface.OnPreferred_buffer_scale = func(scale int) {
		if s.scale120 == 0 {
			s.intScale = int32(scale)
		}
	}

	s.layerSurface = layerShell.GetLayerSurface(s.wlSurface, output, wl.LayerOverlay, namespace)
	s.layerSurface.SetAnchor(wl.AnchorTop | wl.AnchorBottom | wl.AnchorLeft | wl.AnchorRight)
	s.layerSurface.SetExclusiveZone(-1)
	s.layerSurface.SetKeyboardInteractivity(wl.KeyboardInteractivityExclusive)
	s.layerSurface.SetSize(uint32(width), uint32(height))
	s.layerSurface.OnConfigure = func(serial uint32, w, h uint32) {
		s.layerSurface.AckConfigure(serial)
		s.width, s.height = int(w), int(h)
	}

	if viewporter != nil {
		s.viewport = viewporter.GetViewport(s.wlSurface)
	}
	if fracScaleMgr != nil {
		s.fracScale = fracScaleMgr.GetFractionalScale(s.wlSurface)
		s.fracScale.OnPreferred_scale = func(scale120 uint32) { s.scale120 = scale120 }
	}

	s.wlSurface.Commit()
	return s
}

// bufferScale returns the physical-pixel multiplier to allocate Render
// Buffers at: the fractional value when known, else the integer
// preferred-buffer-scale fallback.
func (s *Surface) bufferScale() float64 {
	if s.scale120 != 0 {
		return float64(s.scale120) / 120.0
	}
	return float64(s.intScale)
}

func (s *Surface) physicalSize() (int, int) {
	scale := s.bufferScale()
	return int(math.Round(float64(s.width) * scale)), int(math.Round(float64(s.height) * scale))
}

// Ensure allocates both pool buffers (or reallocates them, if the
// physical size has changed since last call) at the given format.
func (s *Surface) Ensure(format image.Format) error {
	pw, ph := s.physicalSize()
	for i := range s.buffers {
		if s.buffers[i] != nil && s.buffers[i].Shared.Width == pw && s.buffers[i].Shared.Height == ph {
			continue
		}
		if s.buffers[i] != nil {
			s.buffers[i].Close()
		}
		buf, err := renderbuf.New(s.shm, format, pw, ph)
		if err != nil {
			return err
		}
		s.buffers[i] = buf
	}
	return nil
}

// Damage accumulates r (logical coordinates) into the pending redraw
// region; Commit clips the actual paint to the union (spec.md §4.5).
func (s *Surface) Damage(r bbox.Box) {
	s.damage = bbox.Union(s.damage, r)
}

// freeBuffer returns whichever buffer isn't Busy, or nil if both are
// still owned by the compositor (a caller should wait for a frame
// callback in that case).
func (s *Surface) freeBuffer() *renderbuf.Buffer {
	for _, b := range s.buffers {
		if b != nil && !b.Busy {
			return b
		}
	}
	return nil
}

// Commit paints the accumulated damage into a free buffer, attaches it and
// commits the surface; it does nothing while both buffers are busy. The
// frame callback for the next redraw is requested by RequestRedraw.
func (s *Surface) Commit() {
	buf := s.freeBuffer()
	if buf == nil {
		return
	}
	if s.Draw != nil {
		damage := s.damage
		if damage.Width == 0 && damage.Height == 0 {
			damage = bbox.Box{X: 0, Y: 0, Width: float64(s.width), Height: float64(s.height)}
		}
		scale := s.bufferScale()
		buf.Ctx.Scale = scale
		clip := bbox.Scale(damage, scale)
		buf.Ctx.SetClip(&clip)
		s.Draw(buf.Ctx, damage)
		buf.Ctx.SetClip(nil)
	}
	buf.Busy = true
	s.wlSurface.Attach(buf.Wl)
	if s.viewport != nil {
		s.viewport.SetDestination(int32(s.width), int32(s.height))
	} else {
		s.wlSurface.SetBufferScale(int(s.intScale))
	}
	pw, ph := s.physicalSize()
	s.wlSurface.Damage(0, 0, int32(pw), int32(ph))
	s.damage = bbox.Box{}
	s.wlSurface.Commit()
}

// RequestRedraw accumulates r into the pending damage and repaints: right
// away if no frame callback is currently outstanding, or on the next
// frame callback otherwise, so a burst of pointer-move damage collapses
// into a single repaint per compositor frame (spec.md §4.5).
func (s *Surface) RequestRedraw(r bbox.Box) {
	s.Damage(r)
	if s.hasFrame {
		return
	}
	s.commitAndArm()
}

func (s *Surface) commitAndArm() {
	s.hasFrame = true
	s.frameCb = s.wlSurface.Frame(func(uint32) {
		s.hasFrame = false
		if s.damage.Width != 0 || s.damage.Height != 0 {
			s.commitAndArm()
		}
	})
	s.Commit()
}

// Destroy tears down every protocol object and buffer this overlay owns.
func (s *Surface) Destroy() {
	for _, b := range s.buffers {
		if b != nil {
			b.Close()
		}
	}
	if s.viewport != nil {
		s.viewport.Destroy()
	}
	if s.fracScale != nil {
		s.fracScale.Destroy()
	}
	s.layerSurface.Destroy()
	s.wlSurface.Destroy()
}
