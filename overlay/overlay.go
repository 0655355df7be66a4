// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package overlay composites the UI drawable tree over the scene.
//
// The tree is rasterized on the CPU with package paint at the physical
// size of the frame, uploaded to a texture, and blended over the frame in
// a second render pass recorded into the same encoder as the scene, so
// both land in one submission.
package overlay

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/nativehost/viewport"
)

//go:embed shaders/blit.wgsl
var blitShaderWGSL string

// ErrNoHAL is returned when the provider does not expose hal objects.
var ErrNoHAL = errors.New("overlay: provider does not expose HAL device and queue")

// Overlay owns the blit pipeline and the layer texture.
type Overlay struct {
	device hal.Device
	queue  hal.Queue

	shader      hal.ShaderModule
	layout      hal.BindGroupLayout
	pipeLayout  hal.PipelineLayout
	pipeline    hal.RenderPipeline
	sampler     hal.Sampler
	layerFormat gputypes.TextureFormat

	tex       hal.Texture
	view      hal.TextureView
	bindGroup hal.BindGroup
	texSize   viewport.Size

	layer layer
}

// New creates the overlay pipeline for targets of the given format. The
// provider must implement HalDevice() any and HalQueue() any.
func New(provider gpucontext.DeviceProvider, format gputypes.TextureFormat) (*Overlay, error) {
	hp, ok := provider.(interface {
		HalDevice() any
		HalQueue() any
	})
	if !ok {
		return nil, ErrNoHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, ErrNoHAL
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, ErrNoHAL
	}

	if _, err := naga.Compile(blitShaderWGSL); err != nil {
		return nil, fmt.Errorf("overlay: validate shader: %w", err)
	}

	o := &Overlay{device: device, queue: queue, layerFormat: layerFormat(format)}
	if err := o.createPipeline(format); err != nil {
		o.Close()
		return nil, err
	}
	return o, nil
}

// layerFormat picks the layer texture format. The canvas holds
// sRGB-encoded bytes; on an sRGB target they are decoded on sampling so
// the target's encoding does not apply twice.
func layerFormat(target gputypes.TextureFormat) gputypes.TextureFormat {
	switch target {
	case gputypes.TextureFormatRGBA8UnormSrgb, gputypes.TextureFormatBGRA8UnormSrgb:
		return gputypes.TextureFormatRGBA8UnormSrgb
	default:
		return gputypes.TextureFormatRGBA8Unorm
	}
}

func (o *Overlay) createPipeline(format gputypes.TextureFormat) error {
	shader, err := o.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "overlay_blit_shader",
		Source: hal.ShaderSource{WGSL: blitShaderWGSL},
	})
	if err != nil {
		return fmt.Errorf("overlay: compile shader: %w", err)
	}
	o.shader = shader

	layout, err := o.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "overlay_layer_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("overlay: create bind group layout: %w", err)
	}
	o.layout = layout

	pipeLayout, err := o.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "overlay_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{o.layout},
	})
	if err != nil {
		return fmt.Errorf("overlay: create pipeline layout: %w", err)
	}
	o.pipeLayout = pipeLayout

	// The layer maps 1:1 onto the frame, so filtering only matters on
	// fractional viewports.
	sampler, err := o.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "overlay_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
	})
	if err != nil {
		return fmt.Errorf("overlay: create sampler: %w", err)
	}
	o.sampler = sampler

	premulBlend := gputypes.BlendStatePremultiplied()
	pipeline, err := o.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "overlay_blit_pipeline",
		Layout: o.pipeLayout,
		Vertex: hal.VertexState{
			Module:     o.shader,
			EntryPoint: "vs_main",
		},
		Fragment: &hal.FragmentState{
			Module:     o.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    format,
					Blend:     &premulBlend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("overlay: create pipeline: %w", err)
	}
	o.pipeline = pipeline
	return nil
}

// ensureTexture (re)creates the layer texture and its bind group at size.
func (o *Overlay) ensureTexture(size viewport.Size) error {
	if o.tex != nil && o.texSize == size {
		return nil
	}
	o.destroyTexture()

	tex, err := o.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "overlay_layer",
		Size:          hal.Extent3D{Width: size.Width, Height: size.Height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        o.layerFormat,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("overlay: create layer texture: %w", err)
	}
	o.tex = tex

	view, err := o.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "overlay_layer_view",
		Format:        o.layerFormat,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		o.destroyTexture()
		return fmt.Errorf("overlay: create layer view: %w", err)
	}
	o.view = view

	bg, err := o.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "overlay_layer_bind",
		Layout: o.layout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.TextureViewBinding{TextureView: view.NativeHandle()}},
			{Binding: 1, Resource: gputypes.SamplerBinding{Sampler: o.sampler.NativeHandle()}},
		},
	})
	if err != nil {
		o.destroyTexture()
		return fmt.Errorf("overlay: create bind group: %w", err)
	}
	o.bindGroup = bg
	o.texSize = size
	o.layer.invalidate()
	return nil
}

// Composite rasterizes d at the viewport's physical size, uploads it if it
// changed, and records a pass blending it over view into encoder.
func (o *Overlay) Composite(encoder hal.CommandEncoder, view hal.TextureView, d Drawable, vp viewport.Viewport) error {
	size := vp.Physical()
	if size.IsZero() {
		return nil
	}
	if err := o.ensureTexture(size); err != nil {
		return err
	}

	img, changed := o.layer.update(d, vp)
	if changed {
		err := o.queue.WriteTexture(
			&hal.ImageCopyTexture{Texture: o.tex, MipLevel: 0, Aspect: gputypes.TextureAspectAll},
			img.Pix,
			&hal.ImageDataLayout{
				Offset:       0,
				BytesPerRow:  uint32(img.Stride),
				RowsPerImage: size.Height,
			},
			&hal.Extent3D{Width: size.Width, Height: size.Height, DepthOrArrayLayers: 1},
		)
		if err != nil {
			// Repaint next frame; the texture holds stale pixels.
			o.layer.invalidate()
			return fmt.Errorf("overlay: upload layer: %w", err)
		}
	}

	pass := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "overlay_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:    view,
				LoadOp:  gputypes.LoadOpLoad,
				StoreOp: gputypes.StoreOpStore,
			},
		},
	})
	pass.SetPipeline(o.pipeline)
	pass.SetBindGroup(0, o.bindGroup, nil)
	pass.Draw(3, 1, 0, 0)
	pass.End()
	return nil
}

func (o *Overlay) destroyTexture() {
	if o.bindGroup != nil {
		o.device.DestroyBindGroup(o.bindGroup)
		o.bindGroup = nil
	}
	if o.view != nil {
		o.device.DestroyTextureView(o.view)
		o.view = nil
	}
	if o.tex != nil {
		o.device.DestroyTexture(o.tex)
		o.tex = nil
	}
	o.texSize = viewport.Size{}
}

// Close releases all GPU resources.
func (o *Overlay) Close() {
	if o.device == nil {
		return
	}
	o.destroyTexture()
	if o.pipeline != nil {
		o.device.DestroyRenderPipeline(o.pipeline)
		o.pipeline = nil
	}
	if o.sampler != nil {
		o.device.DestroySampler(o.sampler)
		o.sampler = nil
	}
	if o.pipeLayout != nil {
		o.device.DestroyPipelineLayout(o.pipeLayout)
		o.pipeLayout = nil
	}
	if o.layout != nil {
		o.device.DestroyBindGroupLayout(o.layout)
		o.layout = nil
	}
	if o.shader != nil {
		o.device.DestroyShaderModule(o.shader)
		o.shader = nil
	}
}
