// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	// Registers the Vulkan backend with hal.GetBackend.
	_ "github.com/gogpu/wgpu/hal/vulkan"

	"github.com/gogpu/nativehost/internal/logging"
)

// Target is a native window a surface can be created for.
type Target interface {
	NativeHandle() (display, window uintptr)
}

// Context is an opened device, queue and surface for one window.
type Context interface {
	Presenter
	// Release destroys the surface, device and instance.
	Release()
}

// Backend opens a Context for a window. Opening blocks until the device
// is ready.
type Backend interface {
	Open(t Target) (Context, error)
}

// HALBackendOption configures a HALBackend.
type HALBackendOption func(*halOptions)

type halOptions struct {
	backends     []gputypes.Backend
	preferDevice []gputypes.DeviceType
	frameTimeout time.Duration
}

// WithBackends sets the backends tried in order. The default is Vulkan
// then GLES.
func WithBackends(b ...gputypes.Backend) HALBackendOption {
	return func(o *halOptions) { o.backends = b }
}

// WithPreferredDeviceTypes sets the adapter types preferred, in order,
// when several adapters can present to the window.
func WithPreferredDeviceTypes(t ...gputypes.DeviceType) HALBackendOption {
	return func(o *halOptions) { o.preferDevice = t }
}

// WithFrameTimeout bounds the wait for the oldest in-flight frame.
func WithFrameTimeout(d time.Duration) HALBackendOption {
	return func(o *halOptions) { o.frameTimeout = d }
}

// HALBackend opens surfaces with github.com/gogpu/wgpu/hal.
type HALBackend struct {
	opts halOptions
}

// NewHALBackend returns a backend with the given options.
func NewHALBackend(opts ...HALBackendOption) *HALBackend {
	o := halOptions{
		backends:     []gputypes.Backend{gputypes.BackendVulkan, gputypes.BackendGL},
		preferDevice: []gputypes.DeviceType{gputypes.DeviceTypeIntegratedGPU, gputypes.DeviceTypeDiscreteGPU},
		frameTimeout: time.Second,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &HALBackend{opts: o}
}

// Open creates an instance, a surface for t, and a device on an adapter
// that can present to it.
func (b *HALBackend) Open(t Target) (Context, error) {
	display, window := t.NativeHandle()
	var errs []error
	for _, kind := range b.opts.backends {
		ctx, err := b.open(kind, display, window)
		if err == nil {
			return ctx, nil
		}
		logging.L().Warn("surface: backend unavailable", "backend", kind, "err", err)
		errs = append(errs, err)
	}
	return nil, fmt.Errorf("surface: open: %w", errors.Join(append(errs, ErrNoAdapter)...))
}

func (b *HALBackend) open(kind gputypes.Backend, display, window uintptr) (*HALContext, error) {
	backend, ok := hal.GetBackend(kind)
	if !ok {
		return nil, fmt.Errorf("backend %v not available", kind)
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}
	surface, err := instance.CreateSurface(display, window)
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("create surface: %w", err)
	}

	adapters := instance.EnumerateAdapters(surface)
	selected := b.pickAdapter(adapters, surface)
	if selected == nil {
		surface.Destroy()
		instance.Destroy()
		return nil, ErrNoAdapter
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		surface.Destroy()
		instance.Destroy()
		return nil, fmt.Errorf("open device: %w", mapError(err))
	}
	logging.L().Info("surface: adapter selected", "name", selected.Info.Name, "type", selected.Info.DeviceType, "backend", kind)
	return &HALContext{
		instance: instance,
		adapter:  selected.Adapter,
		surface:  surface,
		device:   openDev.Device,
		queue:    openDev.Queue,
		info:     selected.Info,
		timeout:  b.opts.frameTimeout,
	}, nil
}

func (b *HALBackend) pickAdapter(adapters []hal.ExposedAdapter, surface hal.Surface) *hal.ExposedAdapter {
	var usable []*hal.ExposedAdapter
	for i := range adapters {
		caps := adapters[i].Adapter.SurfaceCapabilities(surface)
		if caps != nil && len(caps.Formats) > 0 {
			usable = append(usable, &adapters[i])
		}
	}
	for _, want := range b.opts.preferDevice {
		for _, a := range usable {
			if a.Info.DeviceType == want {
				return a
			}
		}
	}
	if len(usable) > 0 {
		return usable[0]
	}
	return nil
}

// HALContext is a hal device, queue and surface for one window. It
// implements gpucontext.DeviceProvider and exposes the hal objects through
// HalDevice and HalQueue.
type HALContext struct {
	instance hal.Instance
	adapter  hal.Adapter
	surface  hal.Surface
	device   hal.Device
	queue    hal.Queue

	info       gputypes.AdapterInfo
	format     gputypes.TextureFormat
	configured bool
	latency    int
	timeout    time.Duration
	frames     inflight
	released   bool
}

var _ gpucontext.DeviceProvider = (*HALContext)(nil)

// HalDevice returns the hal.Device.
func (c *HALContext) HalDevice() any { return c.device }

// HalQueue returns the hal.Queue.
func (c *HALContext) HalQueue() any { return c.queue }

// Device implements gpucontext.DeviceProvider.
func (c *HALContext) Device() gpucontext.Device { return halDevice{c} }

// Queue implements gpucontext.DeviceProvider.
func (c *HALContext) Queue() gpucontext.Queue { return halQueue{} }

// Adapter implements gpucontext.DeviceProvider.
func (c *HALContext) Adapter() gpucontext.Adapter { return halAdapter{} }

// SurfaceFormat implements gpucontext.DeviceProvider.
func (c *HALContext) SurfaceFormat() gputypes.TextureFormat { return c.format }

// AdapterInfo implements gpucontext.DeviceProvider.
func (c *HALContext) AdapterInfo() gpucontext.AdapterInfo { return adapterInfo(c.info) }

func adapterInfo(info gputypes.AdapterInfo) gpucontext.AdapterInfo {
	t := gpucontext.AdapterTypeUnknown
	switch info.DeviceType {
	case gputypes.DeviceTypeDiscreteGPU:
		t = gpucontext.AdapterTypeDiscrete
	case gputypes.DeviceTypeIntegratedGPU:
		t = gpucontext.AdapterTypeIntegrated
	case gputypes.DeviceTypeCPU:
		t = gpucontext.AdapterTypeSoftware
	}
	return gpucontext.AdapterInfo{Name: info.Name, Type: t}
}

type halDevice struct{ c *HALContext }

func (d halDevice) Poll(wait bool) {
	if wait {
		_ = d.c.waitIdle()
	}
}

// Destroy is a no-op; the device belongs to the HALContext.
func (d halDevice) Destroy() {}

type halQueue struct{}

type halAdapter struct{}

// Capabilities implements Presenter.
func (c *HALContext) Capabilities() Capabilities {
	caps := c.adapter.SurfaceCapabilities(c.surface)
	if caps == nil {
		return Capabilities{}
	}
	out := Capabilities{Formats: append([]gputypes.TextureFormat(nil), caps.Formats...)}
	for _, m := range caps.PresentModes {
		out.PresentModes = append(out.PresentModes, fromHALPresentMode(m))
	}
	for _, m := range caps.AlphaModes {
		out.AlphaModes = append(out.AlphaModes, fromHALAlphaMode(m))
	}
	return out
}

// Configure implements Presenter.
func (c *HALContext) Configure(cfg Config) error {
	if c.released {
		return ErrReleased
	}
	// In-flight frames still reference the old swapchain images.
	if err := c.waitIdle(); err != nil {
		return err
	}
	err := c.surface.Configure(c.device, &hal.SurfaceConfiguration{
		Width:       cfg.Width,
		Height:      cfg.Height,
		Format:      cfg.Format,
		Usage:       cfg.Usage,
		PresentMode: toHALPresentMode(cfg.PresentMode),
		AlphaMode:   toHALAlphaMode(cfg.AlphaMode),
		ViewFormats: cfg.ViewFormats,
	})
	if err != nil {
		return mapError(err)
	}
	c.format = cfg.Format
	c.latency = max(int(cfg.MaxFrameLatency), 1)
	c.configured = true
	return nil
}

// Unconfigure implements Presenter.
func (c *HALContext) Unconfigure() {
	if !c.configured || c.released {
		return
	}
	_ = c.waitIdle()
	c.surface.Unconfigure(c.device)
	c.configured = false
}

// AcquireFrame implements Presenter. It first waits until fewer than
// MaxFrameLatency submissions are in flight.
func (c *HALContext) AcquireFrame() (*Frame, error) {
	if c.released {
		return nil, ErrReleased
	}
	if err := c.throttle(); err != nil {
		return nil, err
	}
	acquired, err := c.surface.AcquireTexture(nil)
	if err != nil {
		return nil, mapError(err)
	}
	view, err := c.device.CreateTextureView(acquired.Texture, &hal.TextureViewDescriptor{
		Label:         "nativehost_frame_view",
		Format:        c.format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		c.surface.DiscardTexture(acquired.Texture)
		return nil, fmt.Errorf("surface: frame view: %w", mapError(err))
	}
	return &Frame{Texture: acquired.Texture, View: view, Suboptimal: acquired.Suboptimal}, nil
}

// Submit submits one command buffer and records its submission index
// for frame pacing.
func (c *HALContext) Submit(cmd hal.CommandBuffer) error {
	if c.released {
		return ErrReleased
	}
	idx, err := c.queue.Submit([]hal.CommandBuffer{cmd})
	if err != nil {
		return fmt.Errorf("surface: submit: %w", mapError(err))
	}
	c.frames.add(idx)
	return nil
}

// FreeCommandBuffer releases a command buffer whose submission finished.
func (c *HALContext) FreeCommandBuffer(cmd hal.CommandBuffer) {
	c.device.FreeCommandBuffer(cmd)
}

// Present implements Presenter.
func (c *HALContext) Present(f *Frame) error {
	defer c.device.DestroyTextureView(f.View)
	// A nil damage list presents the whole frame.
	if err := c.queue.Present(c.surface, f.Texture, nil); err != nil {
		return mapError(err)
	}
	return nil
}

// DiscardFrame implements Presenter.
func (c *HALContext) DiscardFrame(f *Frame) {
	c.device.DestroyTextureView(f.View)
	c.surface.DiscardTexture(f.Texture)
}

// throttle waits until fewer than MaxFrameLatency submissions are in
// flight.
func (c *HALContext) throttle() error {
	if err := c.frames.waitBelow(c.latency, c.queue.PollCompleted, c.timeout); err != nil {
		return fmt.Errorf("surface: wait frame: %w", err)
	}
	return nil
}

func (c *HALContext) waitIdle() error {
	if len(c.frames.pending) == 0 {
		return nil
	}
	if err := c.device.WaitIdle(); err != nil {
		return fmt.Errorf("surface: wait idle: %w", mapError(err))
	}
	c.frames.reset()
	return nil
}

// Release implements Context. Resources are destroyed surface first,
// instance last.
func (c *HALContext) Release() {
	if c.released {
		return
	}
	_ = c.waitIdle()
	if c.configured {
		c.surface.Unconfigure(c.device)
		c.configured = false
	}
	c.surface.Destroy()
	c.device.Destroy()
	c.instance.Destroy()
	c.released = true
}

// mapError translates hal errors into this package's sentinels.
func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, hal.ErrDeviceOutOfMemory):
		return fmt.Errorf("%w: %w", ErrOutOfMemory, err)
	case errors.Is(err, hal.ErrDeviceLost):
		return fmt.Errorf("%w: %w", ErrDeviceLost, err)
	case errors.Is(err, hal.ErrSurfaceOutdated):
		return fmt.Errorf("%w: %w", ErrOutdated, err)
	case errors.Is(err, hal.ErrSurfaceLost):
		return fmt.Errorf("%w: %w", ErrLost, err)
	case errors.Is(err, hal.ErrTimeout):
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return err
}

func toHALPresentMode(m PresentMode) hal.PresentMode {
	switch m {
	case PresentModeFifoRelaxed:
		return hal.PresentModeFifoRelaxed
	case PresentModeMailbox:
		return hal.PresentModeMailbox
	case PresentModeImmediate:
		return hal.PresentModeImmediate
	default:
		return hal.PresentModeFifo
	}
}

func fromHALPresentMode(m hal.PresentMode) PresentMode {
	switch m {
	case hal.PresentModeFifoRelaxed:
		return PresentModeFifoRelaxed
	case hal.PresentModeMailbox:
		return PresentModeMailbox
	case hal.PresentModeImmediate:
		return PresentModeImmediate
	default:
		return PresentModeFifo
	}
}

func toHALAlphaMode(m AlphaMode) hal.CompositeAlphaMode {
	switch m {
	case AlphaModePremultiplied:
		return hal.CompositeAlphaModePremultiplied
	case AlphaModeUnpremultiplied:
		return hal.CompositeAlphaModeUnpremultiplied
	case AlphaModeInherit:
		return hal.CompositeAlphaModeInherit
	default:
		return hal.CompositeAlphaModeOpaque
	}
}

func fromHALAlphaMode(m hal.CompositeAlphaMode) AlphaMode {
	switch m {
	case hal.CompositeAlphaModePremultiplied:
		return AlphaModePremultiplied
	case hal.CompositeAlphaModeUnpremultiplied:
		return AlphaModeUnpremultiplied
	case hal.CompositeAlphaModeInherit:
		return AlphaModeInherit
	default:
		return AlphaModeOpaque
	}
}
