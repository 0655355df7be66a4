// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package overlay

import (
	"errors"
	"image/color"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/nativehost/paint"
	"github.com/gogpu/nativehost/viewport"
)

func TestBlitShaderCompilation(t *testing.T) {
	if blitShaderWGSL == "" {
		t.Fatal("blit shader source is empty")
	}
	spirv, err := naga.Compile(blitShaderWGSL)
	if err != nil {
		t.Fatalf("failed to compile blit shader: %v", err)
	}
	if len(spirv) == 0 {
		t.Error("SPIR-V output is empty")
	}
}

type plainProvider struct{}

func (plainProvider) Device() gpucontext.Device             { return nil }
func (plainProvider) Queue() gpucontext.Queue               { return nil }
func (plainProvider) Adapter() gpucontext.Adapter           { return nil }
func (plainProvider) SurfaceFormat() gputypes.TextureFormat { return gputypes.TextureFormatBGRA8Unorm }
func (plainProvider) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Type: gpucontext.AdapterTypeUnknown}
}

func TestNewRequiresHAL(t *testing.T) {
	if _, err := New(plainProvider{}, gputypes.TextureFormatBGRA8Unorm); !errors.Is(err, ErrNoHAL) {
		t.Errorf("New error = %v, want ErrNoHAL", err)
	}
}

func TestLayerFormat(t *testing.T) {
	tests := []struct {
		target, want gputypes.TextureFormat
	}{
		{gputypes.TextureFormatBGRA8UnormSrgb, gputypes.TextureFormatRGBA8UnormSrgb},
		{gputypes.TextureFormatRGBA8UnormSrgb, gputypes.TextureFormatRGBA8UnormSrgb},
		{gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatRGBA8Unorm},
	}
	for _, tt := range tests {
		if got := layerFormat(tt.target); got != tt.want {
			t.Errorf("layerFormat(%v) = %v, want %v", tt.target, got, tt.want)
		}
	}
}

// box paints a fixed logical rectangle and counts draws.
type box struct {
	draws int
	gen   uint64
}

func (b *box) Draw(c *paint.Canvas) {
	b.draws++
	c.FillRect(paint.Rect{X: 1, Y: 1, W: 2, H: 2}, color.NRGBA{G: 255, A: 255})
}

func (b *box) Generation() uint64 { return b.gen }

type unversioned struct{ draws int }

func (u *unversioned) Draw(*paint.Canvas) { u.draws++ }

func TestLayerCaching(t *testing.T) {
	vp := viewport.New(viewport.Size{Width: 10, Height: 10}, 2)
	var l layer
	b := &box{}

	img, changed := l.update(b, vp)
	if !changed || b.draws != 1 {
		t.Fatalf("first update: changed=%v draws=%d", changed, b.draws)
	}
	if img.Bounds().Dx() != 10 || img.Bounds().Dy() != 10 {
		t.Errorf("layer size = %v, want physical 10x10", img.Bounds())
	}
	// Logical (1,1)-(3,3) at 2x covers physical 2..6.
	if a := img.RGBAAt(3, 3).A; a != 255 {
		t.Errorf("pixel (3,3) alpha = %d", a)
	}
	if a := img.RGBAAt(7, 7).A; a != 0 {
		t.Errorf("pixel (7,7) alpha = %d", a)
	}

	if _, changed := l.update(b, vp); changed || b.draws != 1 {
		t.Errorf("unchanged drawable repainted: changed=%v draws=%d", changed, b.draws)
	}

	b.gen++
	if _, changed := l.update(b, vp); !changed || b.draws != 2 {
		t.Errorf("new generation not repainted: changed=%v draws=%d", changed, b.draws)
	}

	vp2 := viewport.New(viewport.Size{Width: 20, Height: 10}, 2)
	img, changed = l.update(b, vp2)
	if !changed || img.Bounds().Dx() != 20 {
		t.Errorf("resize: changed=%v bounds=%v", changed, img.Bounds())
	}

	l.invalidate()
	if _, changed := l.update(b, vp2); !changed {
		t.Error("invalidated layer not repainted")
	}
}

func TestLayerUnversionedAlwaysRepaints(t *testing.T) {
	vp := viewport.New(viewport.Size{Width: 4, Height: 4}, 1)
	var l layer
	u := &unversioned{}
	l.update(u, vp)
	l.update(u, vp)
	if u.draws != 2 {
		t.Errorf("draws = %d, want 2", u.draws)
	}
}

type noopProvider struct {
	plainProvider
	device hal.Device
	queue  hal.Queue
}

func (p noopProvider) HalDevice() any { return p.device }
func (p noopProvider) HalQueue() any  { return p.queue }

func newNoopProvider(t *testing.T) noopProvider {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		openDev.Device.Destroy()
		instance.Destroy()
	})
	return noopProvider{device: openDev.Device, queue: openDev.Queue}
}

func composite(t *testing.T, o *Overlay, p noopProvider, d Drawable, vp viewport.Viewport) {
	t.Helper()
	encoder, err := p.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "test"})
	if err != nil {
		t.Fatalf("CreateCommandEncoder: %v", err)
	}
	if err := encoder.BeginEncoding("test"); err != nil {
		t.Fatalf("BeginEncoding: %v", err)
	}
	tex, err := p.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "target",
		Size:          hal.Extent3D{Width: 1, Height: 1, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatBGRA8UnormSrgb,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}
	defer p.device.DestroyTexture(tex)
	view, err := p.device.CreateTextureView(tex, &hal.TextureViewDescriptor{Label: "target_view"})
	if err != nil {
		t.Fatalf("CreateTextureView: %v", err)
	}
	defer p.device.DestroyTextureView(view)

	if err := o.Composite(encoder, view, d, vp); err != nil {
		t.Fatalf("Composite: %v", err)
	}
	cmd, err := encoder.EndEncoding()
	if err != nil {
		t.Fatalf("EndEncoding: %v", err)
	}
	p.device.FreeCommandBuffer(cmd)
}

func TestCompositeUploadsOnlyChanges(t *testing.T) {
	p := newNoopProvider(t)
	o, err := New(p, gputypes.TextureFormatBGRA8UnormSrgb)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer o.Close()

	b := &box{}
	vp := viewport.New(viewport.Size{Width: 40, Height: 20}, 2)
	composite(t, o, p, b, vp)
	composite(t, o, p, b, vp)
	if b.draws != 1 {
		t.Errorf("draws after two unchanged frames = %d, want 1", b.draws)
	}
	if o.texSize != vp.Physical() {
		t.Errorf("layer texture size = %v", o.texSize)
	}

	bigger := viewport.New(viewport.Size{Width: 80, Height: 40}, 2)
	composite(t, o, p, b, bigger)
	if b.draws != 2 || o.texSize != bigger.Physical() {
		t.Errorf("after resize: draws=%d texture %v", b.draws, o.texSize)
	}

	composite(t, o, p, b, viewport.New(viewport.Size{}, 2))
	if b.draws != 2 {
		t.Errorf("zero-size viewport painted")
	}
}

// failingQueue rejects texture uploads.
type failingQueue struct {
	hal.Queue
	writes int
}

var errUpload = errors.New("upload rejected")

func (q *failingQueue) WriteTexture(*hal.ImageCopyTexture, []byte, *hal.ImageDataLayout, *hal.Extent3D) error {
	q.writes++
	return errUpload
}

func TestCompositeUploadError(t *testing.T) {
	p := newNoopProvider(t)
	fq := &failingQueue{Queue: p.queue}
	p.queue = fq
	o, err := New(p, gputypes.TextureFormatBGRA8UnormSrgb)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer o.Close()

	encoder, err := p.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "test"})
	if err != nil {
		t.Fatalf("CreateCommandEncoder: %v", err)
	}
	if err := encoder.BeginEncoding("test"); err != nil {
		t.Fatalf("BeginEncoding: %v", err)
	}
	defer encoder.DiscardEncoding()

	b := &box{}
	vp := viewport.New(viewport.Size{Width: 4, Height: 4}, 1)
	for i := range 2 {
		err := o.Composite(encoder, nil, b, vp)
		if !errors.Is(err, errUpload) {
			t.Fatalf("Composite %d = %v, want upload error", i, err)
		}
	}
	// A failed upload leaves the layer dirty, so the next frame repaints.
	if b.draws != 2 || fq.writes != 2 {
		t.Errorf("draws=%d writes=%d, want 2 each", b.draws, fq.writes)
	}
}
