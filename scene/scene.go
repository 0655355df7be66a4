// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package scene renders the fixed GPU background of a frame: a render
// pass that clears to the UI program's background color and draws one
// triangle.
//
// A Scene never owns the surface and never submits; it only records into
// the encoder it is given.
package scene

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/scene.wgsl
var sceneShaderWGSL string

// ErrNoHAL is returned when the provider does not expose hal objects.
var ErrNoHAL = errors.New("scene: provider does not expose HAL device")

// Scene holds the render pipeline for one target format.
type Scene struct {
	device hal.Device

	shader     hal.ShaderModule
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline
}

// New creates the scene pipeline on the provider's device for targets of
// the given format. The provider must implement HalDevice() any returning
// a hal.Device.
func New(provider gpucontext.DeviceProvider, format gputypes.TextureFormat) (*Scene, error) {
	hp, ok := provider.(interface{ HalDevice() any })
	if !ok {
		return nil, ErrNoHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, ErrNoHAL
	}

	if _, err := naga.Compile(sceneShaderWGSL); err != nil {
		return nil, fmt.Errorf("scene: validate shader: %w", err)
	}

	s := &Scene{device: device}
	if err := s.createPipeline(format); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Scene) createPipeline(format gputypes.TextureFormat) error {
	shader, err := s.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "scene_shader",
		Source: hal.ShaderSource{WGSL: sceneShaderWGSL},
	})
	if err != nil {
		return fmt.Errorf("scene: compile shader: %w", err)
	}
	s.shader = shader

	pipeLayout, err := s.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label: "scene_pipe_layout",
	})
	if err != nil {
		return fmt.Errorf("scene: create pipeline layout: %w", err)
	}
	s.pipeLayout = pipeLayout

	pipeline, err := s.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "scene_pipeline",
		Layout: s.pipeLayout,
		Vertex: hal.VertexState{
			Module:     s.shader,
			EntryPoint: "vs_main",
		},
		Fragment: &hal.FragmentState{
			Module:     s.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    format,
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
		return fmt.Errorf("scene: create pipeline: %w", err)
	}
	s.pipeline = pipeline
	return nil
}

// Clear begins a render pass on view that clears it to color. The caller
// draws into the returned pass and ends it.
func (s *Scene) Clear(view hal.TextureView, encoder hal.CommandEncoder, color gputypes.Color) hal.RenderPassEncoder {
	return encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "scene_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     gputypes.LoadOpClear,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: color,
			},
		},
	})
}

// Draw records the scene into pass.
func (s *Scene) Draw(pass hal.RenderPassEncoder) {
	pass.SetPipeline(s.pipeline)
	pass.Draw(3, 1, 0, 0)
}

// Close releases the pipeline in reverse creation order.
func (s *Scene) Close() {
	if s.device == nil {
		return
	}
	if s.pipeline != nil {
		s.device.DestroyRenderPipeline(s.pipeline)
		s.pipeline = nil
	}
	if s.pipeLayout != nil {
		s.device.DestroyPipelineLayout(s.pipeLayout)
		s.pipeLayout = nil
	}
	if s.shader != nil {
		s.device.DestroyShaderModule(s.shader)
		s.shader = nil
	}
}
