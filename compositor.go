// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package nativehost

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/nativehost/overlay"
	"github.com/gogpu/nativehost/scene"
	"github.com/gogpu/nativehost/surface"
	"github.com/gogpu/nativehost/ui"
	"github.com/gogpu/nativehost/viewport"
)

// renderer records and submits one frame into an acquired surface frame.
type renderer interface {
	Render(f *surface.Frame, background ui.Color, d overlay.Drawable, vp viewport.Viewport) error
	Close()
}

type rendererFactory func(ctx surface.Context, format gputypes.TextureFormat) (renderer, error)

// errNotHAL is returned when the surface context cannot record commands.
var errNotHAL = errors.New("nativehost: surface context does not expose HAL device and submit")

// compositor draws the scene and then the ui overlay into one command
// buffer.
type compositor struct {
	device hal.Device
	submit interface {
		Submit(cmd hal.CommandBuffer) error
		FreeCommandBuffer(cmd hal.CommandBuffer)
	}
	srgb    bool
	scene   *scene.Scene
	overlay *overlay.Overlay
}

func newCompositor(ctx surface.Context, format gputypes.TextureFormat) (renderer, error) {
	provider, ok := ctx.(gpucontext.DeviceProvider)
	if !ok {
		return nil, errNotHAL
	}
	hp, ok := ctx.(interface{ HalDevice() any })
	if !ok {
		return nil, errNotHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, errNotHAL
	}
	sub, ok := ctx.(interface {
		Submit(cmd hal.CommandBuffer) error
		FreeCommandBuffer(cmd hal.CommandBuffer)
	})
	if !ok {
		return nil, errNotHAL
	}

	sc, err := scene.New(provider, format)
	if err != nil {
		return nil, err
	}
	ov, err := overlay.New(provider, format)
	if err != nil {
		sc.Close()
		return nil, err
	}
	return &compositor{
		device:  device,
		submit:  sub,
		srgb:    surface.IsSRGB(format),
		scene:   sc,
		overlay: ov,
	}, nil
}

// clearColor converts the program's sRGB background to what the target
// expects: linear values for sRGB formats, which encode on write.
func clearColor(c ui.Color, srgb bool) gputypes.Color {
	if srgb {
		l := c.Linear()
		return gputypes.Color{R: l[0], G: l[1], B: l[2], A: l[3]}
	}
	return gputypes.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B), A: float64(c.A)}
}

func (c *compositor) Render(f *surface.Frame, background ui.Color, d overlay.Drawable, vp viewport.Viewport) error {
	encoder, err := c.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "nativehost_frame_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("nativehost_frame"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	pass := c.scene.Clear(f.View, encoder, clearColor(background, c.srgb))
	c.scene.Draw(pass)
	pass.End()

	if err := c.overlay.Composite(encoder, f.View, d, vp); err != nil {
		encoder.DiscardEncoding()
		return err
	}

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer c.submit.FreeCommandBuffer(cmdBuf)
	return c.submit.Submit(cmdBuf)
}

func (c *compositor) Close() {
	c.overlay.Close()
	c.scene.Close()
}
