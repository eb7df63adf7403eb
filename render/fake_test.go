// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"slices"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gfx"
)

// drawCall records one draw invocation issued to the fake device.
type drawCall struct {
	batch    BatchID
	buffer   BufferID
	topology gputypes.PrimitiveTopology
	first    int
	count    int
}

// fakeBatch is the CPU copy of an uploaded batch.
type fakeBatch struct {
	verts []float32
	elems []uint32
}

// fakeDevice records every command for inspection. Batches keep their
// uploaded data so tests can assert on geometry and index synthesis.
type fakeDevice struct {
	nextBatch BatchID
	batches   map[BatchID]fakeBatch

	creates   int
	destroys  []BatchID
	draws     []drawCall
	clears    []gfx.Color
	blends    []gputypes.BlendState
	viewports [][4]int
	presents  int

	failCreate bool

	ids    ResourceIDSource
	shader *fakeShader
}

func newFakeDevice() *fakeDevice {
	d := &fakeDevice{batches: make(map[BatchID]fakeBatch)}
	d.shader = &fakeShader{id: d.ids.Acquire()}
	return d
}

func (d *fakeDevice) CreateBatch(vertices []float32, indices []uint32) (BatchID, error) {
	if d.failCreate {
		return 0, ErrBatchAllocation
	}
	d.creates++
	d.nextBatch++
	d.batches[d.nextBatch] = fakeBatch{
		verts: slices.Clone(vertices),
		elems: slices.Clone(indices),
	}
	return d.nextBatch, nil
}

func (d *fakeDevice) DestroyBatch(id BatchID) {
	if id == 0 {
		return
	}
	d.destroys = append(d.destroys, id)
	delete(d.batches, id)
}

func (d *fakeDevice) Clear(color gfx.Color) {
	d.clears = append(d.clears, color)
}

func (d *fakeDevice) SetBlend(state gputypes.BlendState) {
	d.blends = append(d.blends, state)
}

func (d *fakeDevice) SetViewport(x, y, width, height int) {
	d.viewports = append(d.viewports, [4]int{x, y, width, height})
}

func (d *fakeDevice) DrawBatch(id BatchID, topology gputypes.PrimitiveTopology, indexCount int) {
	d.draws = append(d.draws, drawCall{batch: id, topology: topology, count: indexCount})
}

func (d *fakeDevice) DrawBuffer(id BufferID, topology gputypes.PrimitiveTopology, firstVertex, vertexCount int) {
	d.draws = append(d.draws, drawCall{buffer: id, topology: topology, first: firstVertex, count: vertexCount})
}

func (d *fakeDevice) DefaultShader() Shader {
	return d.shader
}

func (d *fakeDevice) Present() error {
	d.presents++
	return nil
}

// frameDraws returns the draws issued since the last call.
func (d *fakeDevice) frameDraws() []drawCall {
	draws := d.draws
	d.draws = nil
	return draws
}

// fakeShader records bind and uniform traffic.
type fakeShader struct {
	id          ResourceID
	binds       int
	unbinds     int
	uniforms    map[string][16]float32
	failUniform bool
}

func (s *fakeShader) Bind()   { s.binds++ }
func (s *fakeShader) Unbind() { s.unbinds++ }

func (s *fakeShader) SetUniformMat4(name string, matrix [16]float32) error {
	if s.failUniform {
		return fmt.Errorf("uniform %q rejected", name)
	}
	if s.uniforms == nil {
		s.uniforms = make(map[string][16]float32)
	}
	s.uniforms[name] = matrix
	return nil
}

func (s *fakeShader) ID() ResourceID { return s.id }

// fakeTexture carries only the identity the batcher keys on.
type fakeTexture struct {
	id ResourceID
}

func (t *fakeTexture) Bind()                {}
func (t *fakeTexture) NativeHandle() uint64 { return uint64(t.id.Slot) }
func (t *fakeTexture) ID() ResourceID       { return t.id }

// fakeBuffer is an externally owned vertex buffer.
type fakeBuffer struct {
	handle BufferID
	ptype  gfx.PrimitiveType
	count  int
}

func (b *fakeBuffer) NativeHandle() BufferID          { return b.handle }
func (b *fakeBuffer) PrimitiveType() gfx.PrimitiveType { return b.ptype }
func (b *fakeBuffer) VertexCount() int                { return b.count }
