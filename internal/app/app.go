// Package app is the Main Coordinator: it owns the Wayland connection,
// wires every subsystem together for each of the three top-level modes
// (output, region, defer), and runs the two sequential dispatch loops
// spec.md §5 describes — one driving the interactive picker UI, a second
// driving capture and save/clipboard/notify once a target is chosen.
package app

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/Mabi19/spaceshot/internal/args"
	"github.com/Mabi19/spaceshot/internal/bbox"
	"github.com/Mabi19/spaceshot/internal/capture"
	"github.com/Mabi19/spaceshot/internal/clipboard"
	"github.com/Mabi19/spaceshot/internal/config"
	"github.com/Mabi19/spaceshot/internal/drawctx"
	"github.com/Mabi19/spaceshot/internal/image"
	"github.com/Mabi19/spaceshot/internal/linkbuf"
	"github.com/Mabi19/spaceshot/internal/log"
	"github.com/Mabi19/spaceshot/internal/notify"
	"github.com/Mabi19/spaceshot/internal/overlay"
	"github.com/Mabi19/spaceshot/internal/paths"
	picker_output "github.com/Mabi19/spaceshot/internal/picker/output"
	picker_region "github.com/Mabi19/spaceshot/internal/picker/region"
	"github.com/Mabi19/spaceshot/internal/pngenc"
	"github.com/Mabi19/spaceshot/internal/seat"
	"github.com/Mabi19/spaceshot/internal/smartborder"
	"github.com/Mabi19/spaceshot/internal/wl"
	"github.com/Mabi19/spaceshot/internal/wlglobals"
)

// ExitCode mirrors spec.md §6: 0 success, 1 cancellation or fatal error.
type ExitCode int

const (
	ExitSuccess      ExitCode = 0
	ExitCancelOrFail ExitCode = 1
)

// Run executes one invocation of spaceshot end to end and returns the
// process exit code.
func Run(prog string, argv []string) ExitCode {
	parsed, err := args.Parse(prog, argv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return ExitCancelOrFail
	}

	switch parsed.Mode {
	case args.ModeHelp:
		printHelp(prog)
		return ExitSuccess
	case args.ModeVersion:
		fmt.Println("spaceshot (reimplementation)")
		return ExitSuccess
	case args.ModeDefer:
		return runDefer(prog, parsed)
	default:
		return runCapture(prog, parsed)
	}
}

func printHelp(prog string) {
	fmt.Printf("Usage: %s <mode> <mode parameters> [options]\n", prog)
	fmt.Print(`Modes:
  - output <output-name>: screenshot an entire output
  - region [region] [output-name]: screenshot a region
    region format is 'X,Y WxH'
    if output-name is specified, the region is relative to that output
    if region is not specified, opens the region picker
  - defer: wait on stdin for a NUL-delimited argv, then run it
`)
}

// runDefer implements spec.md §6's defer protocol: print "ready\n" to
// stdout, then read stdin to EOF as a NUL-separated argv to re-parse and
// execute as if it had been given on the command line originally. It
// prints "ready" before connecting to the compositor; nothing is
// captured until the deferred argv has been read.
func runDefer(prog string, _ *args.Arguments) ExitCode {
	fmt.Fprint(log.Writer(), "ready\n")

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		log.Fatal("reading deferred arguments: %v", err)
	}
	fields := strings.Split(strings.TrimRight(string(data), "\x00"), "\x00")
	fields[len(fields)-1] = strings.TrimSuffix(fields[len(fields)-1], "\n")

	parsed, parseErr := args.ParseDeferredArgv(prog, fields)
	if parseErr != nil {
		fmt.Fprintln(os.Stderr, parseErr.Error())
		return ExitCancelOrFail
	}
	return runCapture(prog, parsed)
}

// session bundles everything live for the duration of one capture.
type session struct {
	cfg        *config.Config
	dsp        *wl.Display
	globals    *wlglobals.Registry
	seatD      *seat.Dispatcher
	captureMgr *capture.Manager
}

func runCapture(prog string, a *args.Arguments) ExitCode {
	cfg, err := config.Load(a.ConfigFile)
	if err != nil {
		log.Fatal("%v", err)
	}
	log.Init(prog, a.Verbose)
	if a.NotifyExplicit {
		cfg.NotifyEnabled = a.Notify
	}
	if a.CopyExplicit {
		cfg.CopyToClipboard = a.Copy
	}

	if a.Background && os.Getenv("_SPACESHOT_DAEMONIZED") != "1" {
		if daemonize() {
			return ExitSuccess
		}
	}

	dsp, err := wl.Connect()
	if err != nil {
		log.Fatal("%v", err)
	}
	defer dsp.Disconnect()

	globals, err := wlglobals.Bind(dsp)
	if err != nil {
		log.Fatal("%v", err)
	}

	var seatD *seat.Dispatcher
	if globals.Seat != nil {
		seatD = seat.New(globals.Seat, globals.CursorShapeManager)
	}

	captureMgr, err := capture.NewManager(globals, cfg.CapturePreferences)
	if err != nil {
		log.Fatal("%v", err)
	}
	defer captureMgr.Close()

	s := &session{cfg: cfg, dsp: dsp, globals: globals, seatD: seatD, captureMgr: captureMgr}

	var target bbox.Box
	var haveTarget bool

	switch a.Mode {
	case args.ModeOutput:
		out := findOutputByName(globals, a.OutputName)
		if out == nil {
			log.Fatal("no such output: %s", a.OutputName)
		}
		target, haveTarget = out.Bounds, true
	case args.ModeRegion:
		if a.HasRegion {
			target = a.Region
			if a.RegionOutputName != "" {
				out := findOutputByName(globals, a.RegionOutputName)
				if out == nil {
					log.Fatal("no such output: %s", a.RegionOutputName)
				}
				target = bbox.Translate(target, out.Bounds.X, out.Bounds.Y)
			}
			haveTarget = true
		} else {
			target, haveTarget = s.pickRegion()
		}
	}

	if !haveTarget {
		fmt.Println("selection cancelled")
		return ExitCancelOrFail
	}

	return s.finish(prog, a, target)
}

// pickOverlayFormat chooses the shm format overlay buffers allocate at,
// preferring XRGB8888 since it's near-universally supported and the
// picker never needs more than 8 bits per channel for its own drawing.
func pickOverlayFormat(globals *wlglobals.Registry) image.Format {
	if globals.SupportsShmFormat(wl.ShmFormatXrgb8888) {
		return image.XRGB8888
	}
	return image.ARGB8888
}

func findOutputByName(globals *wlglobals.Registry, name string) *wlglobals.Output {
	for _, o := range globals.Outputs {
		if o.Name == name {
			return o
		}
	}
	return nil
}

// pickRegion drives the region-picker dispatch loop across every output,
// returning the chosen logical rectangle (and false if cancelled).
func (s *session) pickRegion() (bbox.Box, bool) {
	bounds := bbox.Box{}
	for i, o := range s.globals.Outputs {
		if i == 0 {
			bounds = o.Bounds
		} else {
			bounds = bbox.Union(bounds, o.Bounds)
		}
	}

	var result bbox.Box
	var ok bool
	done := false

	var sw *smartborder.Worker
	var bg *image.Image
	if s.cfg.BorderSmart {
		refs := new(int)
		sw = smartborder.NewWorker(refs)
		defer sw.Release()
		bg = s.captureComposite(bounds, func(o *wlglobals.Output, err error) {
			log.Warning("smart border: capturing output %s: %v", o.Name, err)
		})
	}

	overlays := make([]*overlay.Surface, 0, len(s.globals.Outputs))
	var p *picker_region.Picker
	p = picker_region.New(bounds, func(r bbox.Box) {
		if sw != nil && bg != nil {
			if sel, have := p.Selection(); have {
				sw.Sample(bg, sel, smartborder.BlurRadiusFor(120))
			}
		}
		for _, ov := range overlays {
			ov.RequestRedraw(r)
		}
	})
	p.BorderWidth = s.cfg.BorderWidth
	if !s.cfg.BorderSmart {
		p.BorderColor = s.cfg.BorderColor
	}
	format := pickOverlayFormat(s.globals)
	for _, o := range s.globals.Outputs {
		ov := overlay.New(s.globals.Compositor, s.globals.Shm, s.globals.LayerShell, s.globals.Viewporter, s.globals.FractionalScaleManager, o.WlOutput, int(o.Bounds.Width), int(o.Bounds.Height), "spaceshot")
		if err := ov.Ensure(format); err != nil {
			log.Warning("allocating overlay buffers: %v", err)
		}
		outBounds := o.Bounds
		ov.Draw = func(ctx *drawctx.Context, _ bbox.Box) {
			if sw != nil {
				if c, sampled := sw.Result(); sampled {
					p.BorderColor = c
				}
			}
			ctx.Origin = bbox.Box{X: outBounds.X, Y: outBounds.Y}
			p.Render(ctx)
		}
		overlays = append(overlays, ov)
	}
	p.Done = func(r bbox.Box, confirmed bool) {
		result, ok, done = r, confirmed, true
	}

	if s.seatD != nil {
		l := s.seatD.Listen(p.OnPointer, p.OnKey)
		defer l.Remove()
	}

	for _, ov := range overlays {
		ov.RequestRedraw(bounds)
	}
	for !done {
		if s.dsp.Dispatch() < 0 {
			break
		}
	}
	for _, ov := range overlays {
		ov.Destroy()
	}
	return result, ok
}

// pickOutput drives the output-picker loop when a future caller wants an
// interactive "click a monitor" mode (spec.md §4.7's sibling mode; no
// current CLI entry point requests it directly, since `output` takes an
// explicit name, but internal/picker/output is wired here for
// completeness and reuse from a future TUI/IPC front-end).
func (s *session) pickOutput() (*wlglobals.Output, bool) {
	entries := make([]picker_output.Entry, len(s.globals.Outputs))
	for i, o := range s.globals.Outputs {
		entries[i] = picker_output.Entry{Name: o.Name, Bounds: o.Bounds}
	}
	p := picker_output.New(entries, nil)

	var chosen *wlglobals.Output
	done := false
	p.Done = func(e picker_output.Entry, ok bool) {
		done = true
		if !ok {
			return
		}
		for _, o := range s.globals.Outputs {
			if o.Name == e.Name {
				chosen = o
			}
		}
	}
	if s.seatD != nil {
		l := s.seatD.Listen(p.OnPointer, p.OnKey)
		defer l.Remove()
	}
	for !done {
		if s.dsp.Dispatch() < 0 {
			break
		}
	}
	return chosen, chosen != nil
}

// captureComposite captures every output overlapping target and blits
// each into a single composed image in target's own coordinate space,
// reporting per-output capture failures through onErr rather than
// aborting the whole composite. It returns nil if nothing could be
// captured.
func (s *session) captureComposite(target bbox.Box, onErr func(o *wlglobals.Output, err error)) *image.Image {
	var composed *image.Image
	for _, o := range s.globals.Outputs {
		overlap := bbox.Intersect(o.Bounds, target)
		if overlap.Width <= 0 || overlap.Height <= 0 {
			continue
		}
		buf, err := s.captureMgr.Capture(s.dsp, o.WlOutput)
		if err != nil {
			if onErr != nil {
				onErr(o, err)
			}
			continue
		}
		if composed == nil {
			composed = image.New(buf.Shared.Format, int(target.Width), int(target.Height))
		}
		blitRegion(composed, buf.Shared.AsImage(), o.Bounds, target)
		buf.Close()
	}
	return composed
}

// finish captures target, encodes it, writes/copies/notifies per cfg and
// a's flags, and returns the final exit code.
func (s *session) finish(prog string, a *args.Arguments, target bbox.Box) ExitCode {
	composed := s.captureComposite(target, func(o *wlglobals.Output, err error) {
		fmt.Fprintf(os.Stderr, "%s: capture of output %s failed: %v\n", prog, o.Name, err)
	})
	if composed == nil {
		log.Fatal("no output could be captured")
	}

	s.dsp.Flush()
	enc, err := pngenc.Encode(composed, pngenc.Options{Level: s.cfg.Compression})
	if err != nil {
		log.Fatal("encoding PNG: %v", err)
	}

	outPath := "~~/spaceshot-%Y%m%d-%H%M%S.png"
	if a.OutputFile != "" {
		outPath = a.OutputFile
	}
	resolved, err := paths.Resolve(outPath, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", prog, err)
	} else {
		if writeErr := writeOutput(resolved, enc); writeErr != nil {
			fmt.Fprintf(os.Stderr, "%s: writing %s: %v\n", prog, resolved, writeErr)
		} else if s.cfg.NotifyEnabled && resolved != "-" {
			notify.Send(resolved)
		}
	}

	if s.cfg.CopyToClipboard && s.globals.DataDeviceManager != nil && s.globals.Seat != nil {
		device := s.globals.DataDeviceManager.GetDataDevice(s.globals.Seat)
		clipboard.Offer(s.globals.DataDeviceManager, device, 0, enc)
		for {
			if s.dsp.Dispatch() < 0 {
				break
			}
		}
	}

	return ExitSuccess
}

func writeOutput(path string, buf *linkbuf.Buffer) error {
	if path == "-" {
		_, err := buf.WriteTo(os.Stdout)
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = buf.WriteTo(f)
	return err
}

// blitRegion copies the part of src (an output's captured frame, at
// output's logical bounds) that falls within target into dst, placed at
// target's own local coordinates.
func blitRegion(dst, src *image.Image, outputBounds, target bbox.Box) {
	for y := 0; y < dst.Height; y++ {
		for x := 0; x < dst.Width; x++ {
			srcX := int(target.X) + x - int(outputBounds.X)
			srcY := int(target.Y) + y - int(outputBounds.Y)
			if srcX < 0 || srcY < 0 || srcX >= src.Width || srcY >= src.Height {
				continue
			}
			dst.Set(x, y, src.At(srcX, srcY))
		}
	}
}

// daemonize re-executes the current invocation in a new session, detached
// from the controlling terminal, and returns control to the calling
// shell immediately. This is the Go-idiomatic substitute for the
// original's double-fork+setsid (spec.md §5, -b/--background): a process
// with cgo state and multiple OS threads cannot safely call a bare
// fork(), so the child is a fresh exec instead of a copy-on-write clone.
// The child inherits stdout/stderr so its messages still reach the
// original terminal even after the parent exits. It reports whether the
// child was started; on false the caller carries on in the foreground.
func daemonize() bool {
	exe, err := os.Executable()
	if err != nil {
		log.Warning("couldn't background (%v); continuing in the foreground", err)
		return false
	}
	cmd := exec.Command(exe, os.Args[1:]...)
	cmd.Env = append(os.Environ(), "_SPACESHOT_DAEMONIZED=1")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		log.Fatal("backgrounding: %v", err)
	}
	return true
}
