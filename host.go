// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package nativehost

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/gogpu/nativehost/input"
	"github.com/gogpu/nativehost/internal/logging"
	"github.com/gogpu/nativehost/platform"
	"github.com/gogpu/nativehost/store"
	"github.com/gogpu/nativehost/surface"
	"github.com/gogpu/nativehost/ui"
	"github.com/gogpu/nativehost/viewport"
)

// Host coordinates the window, the GPU surface, input translation and the
// ui program. It implements platform.Handler and must only be used from
// the loop goroutine.
type Host struct {
	opts       options
	newProgram func() ui.Program

	state State
	err   error

	// Live while Active.
	window platform.Window
	ctx    surface.Context
	surf   *surface.Manager
	rend   renderer

	vp      viewport.Viewport
	input   input.State
	program ui.Program
	ui      *ui.Host

	// redrawNeeded is set when a drain or resize changed what is on
	// screen and cleared when a frame completes. redrawRequested is true
	// while a RedrawRequested is outstanding.
	redrawNeeded    atomic.Bool
	redrawRequested bool
	cursor          platform.CursorIcon
}

var _ platform.Handler = (*Host)(nil)

// New returns a host that creates its program with newProgram on the
// first resume. The program then lives as long as the host.
func New(newProgram func() ui.Program, opts ...Option) *Host {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.backend == nil {
		o.backend = surface.NewHALBackend()
	}
	return &Host{opts: o, newProgram: newProgram}
}

// State returns the lifecycle state.
func (h *Host) State() State { return h.state }

// Err returns the error that stopped the loop, if the host stopped it.
func (h *Host) Err() error { return h.err }

// Program returns the ui program, or nil before the first resume.
func (h *Host) Program() ui.Program { return h.program }

// Viewport returns the current viewport.
func (h *Host) Viewport() viewport.Viewport { return h.vp }

// RedrawNeeded reports whether the next idle cycle will request a frame.
func (h *Host) RedrawNeeded() bool { return h.redrawNeeded.Load() }

// Resumed implements platform.Handler. It acquires the window, device and
// surface and, on the first resume, creates the program.
func (h *Host) Resumed(l *platform.Loop) {
	switch h.state {
	case Active, Exiting:
		return
	}
	if err := h.acquire(l); err != nil {
		h.releaseGPU()
		logging.L().Error("nativehost: startup failed", "err", err)
		h.fail(l, fmt.Errorf("%w: %w", ErrStartup, err))
		return
	}

	if h.program == nil {
		h.program = h.newProgram()
		h.restore()
		h.ui = ui.NewHost(h.program, h.bounds(), h.opts.hostOpts...)
	} else {
		h.ui.Resize(h.bounds())
	}

	h.state = Active
	logging.L().Info("nativehost: active", "viewport", h.vp.String())
	h.redrawNeeded.Store(true)
	h.requestRedraw()
}

func (h *Host) acquire(l *platform.Loop) error {
	w, err := l.CreateWindow()
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	h.window = w
	w.SetIMEAllowed(true)

	ctx, err := h.opts.backend.Open(w)
	if err != nil {
		return fmt.Errorf("open gpu: %w", err)
	}
	h.ctx = ctx

	surf, err := surface.NewManager(ctx, h.opts.surface)
	if err != nil {
		return err
	}
	h.surf = surf

	width, height := w.InnerSize()
	h.vp = viewport.New(viewport.Size{Width: width, Height: height}, w.ScaleFactor())
	if err := surf.Configure(h.vp.Physical()); err != nil {
		if !errors.Is(err, surface.ErrZeroSize) {
			return err
		}
		// Nothing to show yet; the first non-zero resize configures.
		logging.L().Info("nativehost: window has no size yet")
	}

	rend, err := h.opts.newRenderer(ctx, surf.Format())
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	h.rend = rend
	h.input.Reset()
	h.cursor = platform.CursorDefault
	return nil
}

// Suspended implements platform.Handler. All GPU state and the window are
// dropped; the program stays in memory.
func (h *Host) Suspended(l *platform.Loop) {
	if h.state != Active {
		return
	}
	h.save()
	h.releaseGPU()
	h.input.Reset()
	h.redrawRequested = false
	h.state = Suspended
}

// releaseGPU drops renderer, surface, device and window, in that order.
func (h *Host) releaseGPU() {
	if h.rend != nil {
		h.rend.Close()
		h.rend = nil
	}
	if h.surf != nil {
		h.surf.Release()
		h.surf = nil
	}
	if h.ctx != nil {
		h.ctx.Release()
		h.ctx = nil
	}
	h.window = nil
}

// WindowEvent implements platform.Handler.
func (h *Host) WindowEvent(l *platform.Loop, ev platform.Event) {
	logging.L().Debug("nativehost: window event", "event", fmt.Sprintf("%T", ev))
	if h.state != Active {
		return
	}
	switch ev := ev.(type) {
	case platform.RedrawRequested:
		h.redrawRequested = false
		h.redraw(l)
		return
	case platform.Resized:
		h.vp = viewport.New(viewport.Size{Width: ev.Width, Height: ev.Height}, h.vp.ScaleFactor())
		h.surf.RequestResize(h.vp.Physical())
		h.ui.Resize(h.bounds())
		h.redrawNeeded.Store(true)
	case platform.ScaleFactorChanged:
		h.vp = viewport.New(h.vp.Physical(), ev.Scale)
		h.ui.Resize(h.bounds())
		h.redrawNeeded.Store(true)
	case platform.CloseRequested:
		return
	}
	if uiev, ok := input.Translate(ev, h.vp, &h.input); ok {
		h.ui.QueueEvent(uiev)
	}
}

// AboutToWait implements platform.Handler. It drains pending ui events
// in one update and requests a frame if anything changed.
func (h *Host) AboutToWait(l *platform.Loop) {
	if h.state != Active {
		return
	}
	if !h.ui.IsQueueEmpty() {
		cmds := h.ui.Update(h.bounds(), h.input.Cursor(h.vp), h.opts.clipboard)
		for _, cmd := range h.filterKeyboard(cmds) {
			l.Post(cmd)
		}
		h.redrawNeeded.Store(true)
	}
	if h.redrawNeeded.Load() && !h.redrawRequested {
		h.requestRedraw()
	}
}

// filterKeyboard applies the keyboard policy to the commands of one
// update.
func (h *Host) filterKeyboard(cmds []ui.Command) []ui.Command {
	if h.opts.keyboard != KeyboardLastWins {
		return cmds
	}
	last := -1
	for i, c := range cmds {
		if c.IsKeyboard() {
			last = i
		}
	}
	out := cmds[:0:0]
	for i, c := range cmds {
		if !c.IsKeyboard() || i == last {
			out = append(out, c)
		}
	}
	return out
}

// UserEvent implements platform.Handler. Posted commands reach the
// Bridge here, one loop iteration after the update that produced them.
func (h *Host) UserEvent(l *platform.Loop, v any) {
	cmd, ok := v.(ui.Command)
	if !ok || cmd.IsNone() {
		logging.L().Debug("nativehost: ignored user event", "value", v)
		return
	}
	if h.opts.bridge == nil {
		logging.L().Debug("nativehost: no bridge for action", "action", cmd.Name())
		return
	}
	h.opts.bridge.Invoke(cmd.Name())
}

// Exiting implements platform.Handler.
func (h *Host) Exiting(l *platform.Loop) {
	if h.state == Exiting {
		return
	}
	h.save()
	h.releaseGPU()
	h.state = Exiting
	logging.L().Info("nativehost: exiting")
}

func (h *Host) requestRedraw() {
	h.redrawRequested = true
	h.window.RequestRedraw()
}

// redraw renders one frame: apply a pending resize, acquire, record scene
// and overlay, submit, present, then update the cursor.
func (h *Host) redraw(l *platform.Loop) {
	if _, err := h.surf.ApplyPendingResize(); err != nil {
		if errors.Is(err, surface.ErrZeroSize) {
			h.redrawNeeded.Store(false)
			return
		}
		h.frameFailed(l, "reconfigure", err)
		return
	}
	if !h.surf.Configured() {
		// Still zero-sized. The next non-zero Resized asks for a frame
		// again.
		h.redrawNeeded.Store(false)
		return
	}

	frame, err := h.surf.Acquire()
	if err != nil {
		h.frameFailed(l, "acquire", err)
		return
	}
	if err := h.rend.Render(frame, h.program.BackgroundColor(), h.ui, h.vp); err != nil {
		h.surf.Discard(frame)
		h.frameFailed(l, "render", err)
		return
	}
	if err := h.surf.Present(frame); err != nil {
		h.frameFailed(l, "present", err)
		return
	}

	h.setCursor(cursorIcon(h.ui.MouseInteraction()))
	h.redrawNeeded.Store(false)
}

// frameFailed stops the loop on fatal errors and otherwise asks for one
// more frame.
func (h *Host) frameFailed(l *platform.Loop, stage string, err error) {
	if surface.IsFatal(err) {
		logging.L().Error("nativehost: fatal frame error", "stage", stage, "err", err)
		h.fail(l, fmt.Errorf("%w: %s: %w", ErrFatalFrame, stage, err))
		return
	}
	logging.L().Warn("nativehost: frame skipped", "stage", stage, "err", err)
	h.redrawNeeded.Store(true)
	h.requestRedraw()
}

func (h *Host) fail(l *platform.Loop, err error) {
	if h.err == nil {
		h.err = err
	}
	l.Fail(err)
}

func (h *Host) setCursor(icon platform.CursorIcon) {
	if icon == h.cursor {
		return
	}
	h.cursor = icon
	h.window.SetCursor(icon)
}

func cursorIcon(i ui.Interaction) platform.CursorIcon {
	switch i {
	case ui.Pointer:
		return platform.CursorPointer
	case ui.Text:
		return platform.CursorText
	case ui.Grab:
		return platform.CursorGrab
	case ui.Grabbing:
		return platform.CursorGrabbing
	default:
		return platform.CursorDefault
	}
}

func (h *Host) bounds() ui.Size {
	l := h.vp.Logical()
	return ui.Size{Width: l.Width, Height: l.Height}
}

// save writes a program snapshot to the store, if both exist.
func (h *Host) save() {
	s, ok := h.program.(ui.Snapshotter)
	if !ok || h.opts.store == nil {
		return
	}
	data, err := s.Snapshot()
	if err != nil {
		logging.L().Error("nativehost: snapshot failed", "err", err)
		return
	}
	if err := h.opts.store.Save(h.opts.snapshotKey, data); err != nil {
		logging.L().Error("nativehost: saving snapshot failed", "err", err)
		return
	}
	logging.L().Debug("nativehost: snapshot saved", "key", h.opts.snapshotKey, "bytes", len(data))
}

// restore loads the program's last snapshot after a cold start.
func (h *Host) restore() {
	s, ok := h.program.(ui.Snapshotter)
	if !ok || h.opts.store == nil {
		return
	}
	data, err := h.opts.store.Load(h.opts.snapshotKey)
	if errors.Is(err, store.ErrNotFound) {
		return
	}
	if err != nil {
		logging.L().Error("nativehost: loading snapshot failed", "err", err)
		return
	}
	if err := s.Restore(data); err != nil {
		logging.L().Error("nativehost: restoring snapshot failed", "err", err)
		return
	}
	logging.L().Info("nativehost: program restored", "key", h.opts.snapshotKey)
}
