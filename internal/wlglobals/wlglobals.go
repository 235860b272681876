// Package wlglobals tracks the compositor globals spaceshot cares about:
// the singletons bound once at startup, and the per-output registry whose
// entries only become visible once their logical geometry has fully
// arrived (spec.md §3, Wrapped Output).
package wlglobals

import (
	"fmt"

	"github.com/Mabi19/spaceshot/internal/bbox"
	"github.com/Mabi19/spaceshot/internal/wl"
)

// Output pairs a wl_output/xdg_output pair with the logical geometry
// spaceshot actually needs: where it sits in the shared logical space and
// how big it is there. Created fires exactly once, after Name, the first
// Logical_position and the first Logical_size have all been seen and the
// output's xdg_output has sent Done (spec.md §3).
type Output struct {
	WlOutput  *wl.Output
	XdgOutput *wl.XdgOutput
	Name      string
	Bounds    bbox.Box
	Scale     int32

	sawPosition bool
	sawSize     bool
}

// Registry tracks every live Output plus the singleton globals bound from
// the registry listing.
type Registry struct {
	Display *wl.Display
	wlReg   *wl.Registry

	Compositor             *wl.Compositor
	Shm                    *wl.Shm
	Seat                   *wl.Seat
	LayerShell             *wl.LayerShell
	ScreencopyManager      *wl.ScreencopyManager
	CaptureSourceManager   *wl.OutputImageCaptureSourceManager
	CopyCaptureManager     *wl.ImageCopyCaptureManager
	Viewporter             *wl.Viewporter
	FractionalScaleManager *wl.FractionalScaleManager
	CursorShapeManager     *wl.CursorShapeManager
	DataDeviceManager      *wl.DataDeviceManager
	XdgOutputManager       *wl.XdgOutputManager

	Outputs []*Output

	// OnOutputCreated fires once an Output's Created invariant is
	// satisfied, after the Output is appended to Outputs. Both callbacks
	// are optional and nothing in this program sets them; consumers read
	// Outputs directly.
	OnOutputCreated func(*Output)
	OnOutputRemoved func(*Output)

	outputsByName map[uint32]*Output
	shmFormats    map[wl.ShmFormat]bool
}

// Bind walks the registry listing once, binding every interface spaceshot
// recognizes and deferring per-output geometry to a roundtrip so all
// Outputs are Created before the caller proceeds (spec.md §4's startup
// sequence).
func Bind(dsp *wl.Display) (*Registry, error) {
	r := &Registry{
		Display:       dsp,
		outputsByName: make(map[uint32]*Output),
		shmFormats:    make(map[wl.ShmFormat]bool),
	}
	r.wlReg = dsp.Registry()
	r.wlReg.OnGlobal = r.onGlobal
	r.wlReg.OnGlobalRemove = r.onGlobalRemove

	if _, err := dsp.Roundtrip(); err != nil {
		return nil, fmt.Errorf("binding globals: %w", err)
	}
	// A second roundtrip lets every xdg_output's Done event (and every
	// wl_shm format advertisement) arrive before callers rely on them.
	if _, err := dsp.Roundtrip(); err != nil {
		return nil, fmt.Errorf("binding globals: %w", err)
	}

	if r.Compositor == nil || r.Shm == nil || r.LayerShell == nil {
		return nil, fmt.Errorf("compositor is missing a required protocol (wl_compositor, wl_shm or zwlr_layer_shell_v1)")
	}
	return r, nil
}

func (r *Registry) onGlobal(name uint32, iface string, version uint32) {
	switch iface {
	case "wl_compositor":
		r.Compositor = r.wlReg.BindCompositor(name, clampVersion(version, 4))
	case "wl_shm":
		r.Shm = r.wlReg.BindShm(name, clampVersion(version, 1))
		r.Shm.OnFormat = func(f wl.ShmFormat) { r.shmFormats[f] = true }
	case "wl_seat":
		r.Seat = r.wlReg.BindSeat(name, clampVersion(version, 5))
	case "wl_output":
		r.addOutput(name, version)
	case "zxdg_output_manager_v1":
		r.XdgOutputManager = r.wlReg.BindXdgOutputManager(name, clampVersion(version, 3))
		r.attachPendingXdgOutputs()
	case "zwlr_layer_shell_v1":
		r.LayerShell = r.wlReg.BindLayerShell(name, clampVersion(version, 4))
	case "zwlr_screencopy_manager_v1":
		r.ScreencopyManager = r.wlReg.BindScreencopyManager(name, clampVersion(version, 3))
	case "ext_output_image_capture_source_manager_v1":
		r.CaptureSourceManager = r.wlReg.BindOutputImageCaptureSourceManager(name, clampVersion(version, 1))
	case "ext_image_copy_capture_manager_v1":
		r.CopyCaptureManager = r.wlReg.BindImageCopyCaptureManager(name, clampVersion(version, 1))
	case "wp_viewporter":
		r.Viewporter = r.wlReg.BindViewporter(name, clampVersion(version, 1))
	case "wp_fractional_scale_manager_v1":
		r.FractionalScaleManager = r.wlReg.BindFractionalScaleManager(name, clampVersion(version, 1))
	case "wp_cursor_shape_manager_v1":
		r.CursorShapeManager = r.wlReg.BindCursorShapeManager(name, clampVersion(version, 1))
	case "wl_data_device_manager":
		r.DataDeviceManager = r.wlReg.BindDataDeviceManager(name, clampVersion(version, 3))
	}
}

func (r *Registry) onGlobalRemove(name uint32) {
	out, ok := r.outputsByName[name]
	if !ok {
		return
	}
	delete(r.outputsByName, name)
	for i, o := range r.Outputs {
		if o == out {
			r.Outputs = append(r.Outputs[:i], r.Outputs[i+1:]...)
			break
		}
	}
	if r.OnOutputRemoved != nil {
		r.OnOutputRemoved(out)
	}
}

func (r *Registry) addOutput(name, version uint32) {
	wlOut := r.wlReg.BindOutput(name, clampVersion(version, 4))
	out := &Output{WlOutput: wlOut}
	wlOut.OnName = func(n string) { out.Name = n }
	wlOut.OnScale = func(scale int32) { out.Scale = scale }
	out.Scale = 1
	r.outputsByName[name] = out

	if r.XdgOutputManager != nil {
		r.attachXdgOutput(out)
	}
	// else: attached once zxdg_output_manager_v1 itself is bound, via
	// attachPendingXdgOutputs, since wl_output can arrive first.
}

func (r *Registry) attachPendingXdgOutputs() {
	for _, out := range r.outputsByName {
		if out.XdgOutput == nil {
			r.attachXdgOutput(out)
		}
	}
}

func (r *Registry) attachXdgOutput(out *Output) {
	xdgOut := r.XdgOutputManager.GetXdgOutput(out.WlOutput)
	out.XdgOutput = xdgOut
	xdgOut.OnLogical_position = func(x, y int32) {
		out.Bounds.X = float64(x)
		out.Bounds.Y = float64(y)
		out.sawPosition = true
	}
	xdgOut.OnLogical_size = func(w, h int32) {
		out.Bounds.Width = float64(w)
		out.Bounds.Height = float64(h)
		out.sawSize = true
	}
	xdgOut.OnDone = func() {
		if !out.sawPosition || !out.sawSize || out.Name == "" {
			return
		}
		for _, existing := range r.Outputs {
			if existing == out {
				return
			}
		}
		r.Outputs = append(r.Outputs, out)
		if r.OnOutputCreated != nil {
			r.OnOutputCreated(out)
		}
	}
}

// SupportsShmFormat reports whether the compositor advertised format on
// wl_shm. The manager negotiates capture formats against this set rather
// than assuming XRGB8888 is always present (spec.md §4.6).
func (r *Registry) SupportsShmFormat(f wl.ShmFormat) bool { return r.shmFormats[f] }

func clampVersion(advertised, want uint32) uint32 {
	if advertised < want {
		return advertised
	}
	return want
}
