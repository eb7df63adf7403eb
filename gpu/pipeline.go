package gpu

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/default.wgsl
var defaultShaderSource string

// vertexStride is the byte stride per vertex in the default pipeline.
// Layout per vertex:
//
//	position   (vec2<f32>) = 8 bytes  (location 0)
//	color      (vec4<f32>) = 16 bytes (location 1)
//	tex coords (vec2<f32>) = 8 bytes  (location 2)
//
// Total = 32 bytes per vertex.
const vertexStride = 32

// uniformSize is the byte size of the default shader's uniform block,
// a single mat4x4<f32>.
const uniformSize = 64

// pipelineKey identifies one render pipeline variant. Topology and blend
// state are immutable pipeline properties in WebGPU, so every distinct
// combination the frame uses needs its own hal.RenderPipeline.
type pipelineKey struct {
	topology gputypes.PrimitiveTopology
	blend    gputypes.BlendState
}

// vertexLayout returns the vertex buffer layout for the default pipeline.
func vertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: vertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},  // position
				{Format: gputypes.VertexFormatFloat32x4, Offset: 8, ShaderLocation: 1},  // color
				{Format: gputypes.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 2}, // tex coords
			},
		},
	}
}

// createShaderResources compiles the default shader module and creates the
// bind group layout and pipeline layout shared by all pipeline variants.
func (d *Device) createShaderResources() error {
	if defaultShaderSource == "" {
		return fmt.Errorf("default shader source is empty")
	}

	shader, err := d.dev.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "gfx_default_shader",
		Source: hal.ShaderSource{WGSL: defaultShaderSource},
	})
	if err != nil {
		return fmt.Errorf("compile default shader: %w", err)
	}
	d.shaderModule = shader

	uniformLayout, err := d.dev.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "gfx_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create uniform layout: %w", err)
	}
	d.uniformLayout = uniformLayout

	pipeLayout, err := d.dev.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "gfx_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{d.uniformLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	d.pipeLayout = pipeLayout

	return nil
}

// ensurePipeline returns the pipeline for the given key, creating it on
// first use.
func (d *Device) ensurePipeline(key pipelineKey) (hal.RenderPipeline, error) {
	if p, ok := d.pipelines[key]; ok {
		return p, nil
	}

	blend := key.blend
	pipeline, err := d.dev.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "gfx_pipeline",
		Layout: d.pipeLayout,
		Vertex: hal.VertexState{
			Module:     d.shaderModule,
			EntryPoint: "vs_main",
			Buffers:    vertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     d.shaderModule,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    d.format,
					Blend:     &blend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: key.topology,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create pipeline variant: %w", err)
	}
	d.pipelines[key] = pipeline
	return pipeline, nil
}

// destroyPipelines releases every cached pipeline variant and the shared
// shader resources in reverse creation order.
func (d *Device) destroyPipelines() {
	for key, p := range d.pipelines {
		d.dev.DestroyRenderPipeline(p)
		delete(d.pipelines, key)
	}
	if d.pipeLayout != nil {
		d.dev.DestroyPipelineLayout(d.pipeLayout)
		d.pipeLayout = nil
	}
	if d.uniformLayout != nil {
		d.dev.DestroyBindGroupLayout(d.uniformLayout)
		d.uniformLayout = nil
	}
	if d.shaderModule != nil {
		d.dev.DestroyShaderModule(d.shaderModule)
		d.shaderModule = nil
	}
}
