// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/nativehost/internal/logging"
	"github.com/gogpu/nativehost/viewport"
)

// Frame is an acquired surface texture and a view to render into.
type Frame struct {
	Texture    hal.SurfaceTexture
	View       hal.TextureView
	Width      uint32
	Height     uint32
	Suboptimal bool
}

// Presenter is the backend side of a surface.
type Presenter interface {
	Capabilities() Capabilities
	Configure(cfg Config) error
	Unconfigure()
	AcquireFrame() (*Frame, error)
	Present(f *Frame) error
	DiscardFrame(f *Frame)
}

// Manager applies configuration policy to a Presenter. It is used from
// the dispatch goroutine only.
type Manager struct {
	p          Presenter
	cfg        Config
	configured bool

	pending    viewport.Size
	hasPending bool
	invalid    bool
}

// NewManager returns a manager for p. The format and automatic modes in
// cfg are resolved against p's capabilities.
func NewManager(p Presenter, cfg Config) (*Manager, error) {
	cfg = Resolve(cfg, p.Capabilities())
	if cfg.Format == gputypes.TextureFormatUndefined {
		return nil, ErrNoFormat
	}
	return &Manager{p: p, cfg: cfg}, nil
}

// Config returns the current configuration.
func (m *Manager) Config() Config { return m.cfg }

// Format returns the negotiated surface format.
func (m *Manager) Format() gputypes.TextureFormat { return m.cfg.Format }

// Size returns the configured physical size.
func (m *Manager) Size() viewport.Size {
	return viewport.Size{Width: m.cfg.Width, Height: m.cfg.Height}
}

// Configured reports whether the surface has been configured.
func (m *Manager) Configured() bool { return m.configured }

// Configure configures the surface at size now and drops any pending
// resize. A zero size leaves the surface as it was.
func (m *Manager) Configure(size viewport.Size) error {
	if size.IsZero() {
		return fmt.Errorf("%w: %s", ErrZeroSize, size)
	}
	cfg := m.cfg
	cfg.Width, cfg.Height = size.Width, size.Height
	if err := m.p.Configure(cfg); err != nil {
		return fmt.Errorf("surface: configure %s: %w", size, err)
	}
	m.cfg = cfg
	m.configured = true
	m.hasPending = false
	m.invalid = false
	logging.L().Info("surface: configured",
		"size", size.String(),
		"format", cfg.Format,
		"present_mode", cfg.PresentMode.String(),
		"alpha_mode", cfg.AlphaMode.String())
	return nil
}

// RequestResize records size as the size for the next frame. Only the
// last request before ApplyPendingResize takes effect.
func (m *Manager) RequestResize(size viewport.Size) {
	m.pending = size
	m.hasPending = true
}

// ResizePending reports whether a resize or reconfiguration is waiting.
func (m *Manager) ResizePending() bool { return m.hasPending || m.invalid }

// Invalidate forces a reconfiguration at the current size on the next
// ApplyPendingResize.
func (m *Manager) Invalidate() { m.invalid = true }

// ApplyPendingResize reconfigures the surface if a resize was requested
// or the surface was invalidated. It reports whether it reconfigured.
func (m *Manager) ApplyPendingResize() (bool, error) {
	switch {
	case m.hasPending:
		if m.pending.IsZero() {
			// A minimized window; keep the old configuration until a real
			// size arrives.
			m.hasPending = false
			return false, nil
		}
		return true, m.Configure(m.pending)
	case m.invalid && m.configured:
		return true, m.Configure(m.Size())
	}
	return false, nil
}

// Acquire returns the next frame. Errors that need a reconfiguration
// invalidate the surface so the next ApplyPendingResize repairs it.
func (m *Manager) Acquire() (*Frame, error) {
	if !m.configured {
		return nil, ErrNotConfigured
	}
	f, err := m.p.AcquireFrame()
	if err != nil {
		if NeedsReconfigure(err) {
			m.invalid = true
		}
		return nil, err
	}
	if f.Suboptimal {
		m.invalid = true
	}
	return f, nil
}

// Present queues f for display.
func (m *Manager) Present(f *Frame) error {
	if err := m.p.Present(f); err != nil {
		if NeedsReconfigure(err) {
			m.invalid = true
		}
		return err
	}
	return nil
}

// Discard returns an acquired frame without presenting it.
func (m *Manager) Discard(f *Frame) {
	if f != nil {
		m.p.DiscardFrame(f)
	}
}

// Release unconfigures the surface.
func (m *Manager) Release() {
	if m.configured {
		m.p.Unconfigure()
		m.configured = false
	}
	m.hasPending = false
	m.invalid = false
}
