package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gfx"
	"github.com/gogpu/gfx/render"
)

// VertexBuffer is GPU-resident vertex storage that persists across
// frames. Unlike per-step batches, the application owns the contents
// and updates them explicitly; drawing one through render.Target skips
// batching entirely.
type VertexBuffer struct {
	dev      *Device
	id       render.BufferID
	buf      hal.Buffer
	ptype    gfx.PrimitiveType
	capacity int
	count    int
}

// NewVertexBuffer allocates GPU storage for up to capacity vertices
// drawn with the given primitive type.
func NewVertexBuffer(d *Device, ptype gfx.PrimitiveType, capacity int) (*VertexBuffer, error) {
	if d == nil {
		return nil, render.ErrNilDevice
	}
	if capacity <= 0 {
		return nil, fmt.Errorf("vertex buffer capacity must be positive, got %d", capacity)
	}

	buf, err := d.dev.CreateBuffer(&hal.BufferDescriptor{
		Label: "gfx_vertex_buffer",
		Size:  uint64(capacity) * vertexStride,
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create vertex buffer: %w", err)
	}

	vb := &VertexBuffer{
		dev:      d,
		buf:      buf,
		ptype:    ptype,
		capacity: capacity,
	}
	vb.id = d.registerBuffer(buf)
	return vb, nil
}

// Update uploads vertices starting at the beginning of the buffer and
// sets the drawn vertex count. The data must fit the allocated capacity.
func (vb *VertexBuffer) Update(vertices []gfx.Vertex) error {
	if vb.buf == nil {
		return fmt.Errorf("vertex buffer is released")
	}
	if len(vertices) > vb.capacity {
		return fmt.Errorf("vertex data exceeds buffer capacity: %d > %d", len(vertices), vb.capacity)
	}
	if len(vertices) == 0 {
		vb.count = 0
		return nil
	}
	if err := vb.dev.queue.WriteBuffer(vb.buf, 0, packVertices(vertices)); err != nil {
		return fmt.Errorf("upload vertex buffer: %w", err)
	}
	vb.count = len(vertices)
	return nil
}

// NativeHandle returns the device-registered buffer handle.
func (vb *VertexBuffer) NativeHandle() render.BufferID {
	return vb.id
}

// PrimitiveType returns the primitive type the buffer is drawn with.
func (vb *VertexBuffer) PrimitiveType() gfx.PrimitiveType {
	return vb.ptype
}

// VertexCount returns the number of vertices set by the last Update.
func (vb *VertexBuffer) VertexCount() int {
	return vb.count
}

// Capacity returns the allocated vertex capacity.
func (vb *VertexBuffer) Capacity() int {
	return vb.capacity
}

// Release frees the GPU storage. The buffer must not be drawn afterwards.
// Safe to call multiple times.
func (vb *VertexBuffer) Release() {
	if vb.buf == nil {
		return
	}
	vb.dev.unregisterBuffer(vb.id)
	vb.dev.dev.DestroyBuffer(vb.buf)
	vb.buf = nil
	vb.id = 0
	vb.count = 0
}
