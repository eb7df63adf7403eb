package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gfx/render"
)

// Shader is the device's built-in shader program. It owns the uniform
// buffer and bind group consumed by the pipeline variants; binding it
// selects that bind group for the draws recorded afterwards.
//
// The built-in program exposes a single mat4 uniform named "viewport",
// the combined view/projection transform applied in the vertex stage.
type Shader struct {
	dev        *Device
	id         render.ResourceID
	uniformBuf hal.Buffer
	bindGroup  hal.BindGroup
}

// NewShader creates an additional shader instance with its own uniform
// set. Instances share the built-in shader module; separate instances
// let targets carry independent uniform state.
func NewShader(d *Device) (*Shader, error) {
	if d == nil {
		return nil, render.ErrNilDevice
	}
	return newShader(d)
}

// newShader creates the uniform buffer and bind group for one shader
// instance.
func newShader(d *Device) (*Shader, error) {
	uniformBuf, err := d.dev.CreateBuffer(&hal.BufferDescriptor{
		Label: "gfx_shader_uniform",
		Size:  uniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create uniform buffer: %w", err)
	}

	bindGroup, err := d.dev.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "gfx_shader_bind",
		Layout: d.uniformLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: uniformBuf.NativeHandle(), Offset: 0, Size: uniformSize,
			}},
		},
	})
	if err != nil {
		d.dev.DestroyBuffer(uniformBuf)
		return nil, fmt.Errorf("create bind group: %w", err)
	}

	return &Shader{
		dev:        d,
		id:         d.ids.Acquire(),
		uniformBuf: uniformBuf,
		bindGroup:  bindGroup,
	}, nil
}

// Bind records selection of this shader's bind group for the draws
// that follow in the current frame.
func (s *Shader) Bind() {
	s.dev.recordBind(s.bindGroup)
}

// Unbind restores the device's default shader for subsequent draws.
func (s *Shader) Unbind() {
	if s.dev.defShader != nil && s.dev.defShader != s {
		s.dev.recordBind(s.dev.defShader.bindGroup)
	}
}

// SetUniformMat4 writes a column-major 4x4 matrix uniform. The built-in
// program only has the "viewport" uniform.
func (s *Shader) SetUniformMat4(name string, matrix [16]float32) error {
	if name != "viewport" {
		return fmt.Errorf("%w: %q", ErrUnknownUniform, name)
	}
	if err := s.dev.queue.WriteBuffer(s.uniformBuf, 0, packMat4(matrix)); err != nil {
		return fmt.Errorf("write uniform %q: %w", name, err)
	}
	return nil
}

// ID returns the generation-checked handle used for draw batching.
func (s *Shader) ID() render.ResourceID {
	return s.id
}

// Release frees the shader's GPU resources and retires its handle.
// The device releases its default shader itself; only call this on
// shaders created with NewShader.
func (s *Shader) Release() {
	s.release()
}

// release frees the shader's GPU resources and retires its handle.
func (s *Shader) release() {
	if s.bindGroup != nil {
		s.dev.dev.DestroyBindGroup(s.bindGroup)
		s.bindGroup = nil
	}
	if s.uniformBuf != nil {
		s.dev.dev.DestroyBuffer(s.uniformBuf)
		s.uniformBuf = nil
	}
	if s.id.Valid() {
		s.dev.ids.Release(s.id)
		s.id = render.ResourceID{}
	}
}
