// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"slices"

	"github.com/gogpu/gfx"
)

// vertexScalars is the number of floats one packed vertex occupies:
// x, y, r, g, b, a, s, t.
const vertexScalars = 8

// stepState is the pipeline-configuration key deciding whether
// consecutive draw calls merge into one batch. Texture and shader
// compare by generation-checked identity, primitive kind and blend mode
// by value.
type stepState struct {
	kind    gfx.PrimitiveType // canonical: Points, Lines, or Triangles
	blend   gfx.BlendMode
	texture ResourceID
	shader  ResourceID
}

func newStepState(ptype gfx.PrimitiveType, states RenderStates) stepState {
	return stepState{
		kind:    ptype.Canonical(),
		blend:   states.BlendMode,
		texture: textureID(states.Texture),
		shader:  shaderID(states.Shader),
	}
}

// pendingStep is the open batch: CPU-side interleaved vertex data and
// the index list synthesized for it. It never touches the GPU; closing
// the batch hands it to the step cache, which either discards it on a
// cache hit or uploads it.
type pendingStep struct {
	state stepState
	verts []float32
	elems []uint32
}

func (p *pendingStep) empty() bool {
	return len(p.verts) == 0 || len(p.elems) == 0
}

func (p *pendingStep) reset() {
	p.state = stepState{}
	p.verts = nil
	p.elems = nil
}

// vertexCount returns the number of vertices already packed into the
// batch. Synthesized indices are relative to this whole accumulated
// count, not to the call currently being appended.
func (p *pendingStep) vertexCount() uint32 {
	return uint32(len(p.verts) / vertexScalars)
}

// reserve grows the buffers ahead of an append of count vertices with
// the given requested topology, so appending never reallocates
// mid-batch.
func (p *pendingStep) reserve(count int, ptype gfx.PrimitiveType) {
	p.verts = slices.Grow(p.verts, count*vertexScalars)

	var indexCount int
	switch ptype {
	case gfx.LineStrip:
		indexCount = (count - 1) * 2
	case gfx.TriangleStrip, gfx.TriangleFan:
		indexCount = (count - 2) * 3
	default:
		indexCount = count
	}
	// Extending an open strip or fan batch with fewer vertices than the
	// topology minimum makes the estimate negative; slices.Grow rejects
	// negative growth, so clamp the hint.
	p.elems = slices.Grow(p.elems, max(indexCount, 0))
}

// append transforms, packs, and indexes the vertices of one draw call.
// The caller has already checked the topology minimum and that the
// step's state matches.
func (p *pendingStep) append(vertices []gfx.Vertex, ptype gfx.PrimitiveType, transform gfx.Transform) {
	p.reserve(len(vertices), ptype)

	for i := range vertices {
		idx := p.vertexCount()

		switch ptype {
		case gfx.Points, gfx.Lines, gfx.Triangles:
			p.elems = append(p.elems, idx)

		case gfx.LineStrip:
			// Connect consecutive vertices of this call without
			// duplicating vertex data.
			if i > 0 {
				p.elems = append(p.elems, idx-1, idx)
			}

		case gfx.TriangleFan:
			// Fan around the first vertex of the whole batch.
			if idx >= 2 {
				p.elems = append(p.elems, 0, idx-1, idx)
			}

		case gfx.TriangleStrip:
			// Alternate winding every other triangle to keep the
			// front face consistent across the strip.
			if idx >= 2 {
				if idx%2 == 0 {
					p.elems = append(p.elems, idx-2, idx-1, idx)
				} else {
					p.elems = append(p.elems, idx-1, idx-2, idx)
				}
			}
		}

		pos := transform.TransformPoint(vertices[i].Position)
		r, g, b, a := vertices[i].Color.Normalized()
		p.verts = append(p.verts,
			pos.X, pos.Y,
			r, g, b, a,
			vertices[i].TexCoords.X, vertices[i].TexCoords.Y)
	}
}

// cacheEntry is one closed batch resident in the step cache: either a
// residentStep (CPU geometry plus the uploaded GPU buffers) or an
// overruledStep (a reference into an external buffer).
type cacheEntry interface {
	// release frees whatever GPU resources the entry owns, exactly once.
	release(dev Device)

	// draw issues the entry's single draw invocation.
	draw(dev Device)
}

// residentStep is a batch whose geometry has been uploaded. It retains
// its CPU buffers for positional diffing; the CPU and GPU copies always
// describe the same geometry. The batch handle is exclusively owned:
// release zeroes it so a second release cannot double-free.
type residentStep struct {
	state stepState
	verts []float32
	elems []uint32
	batch BatchID
}

// matches reports whether the pending step carries the same state and
// byte-identical geometry, i.e. whether the resident upload can be
// reused as-is.
func (s *residentStep) matches(p *pendingStep) bool {
	return s.state == p.state &&
		slices.Equal(s.verts, p.verts) &&
		slices.Equal(s.elems, p.elems)
}

func (s *residentStep) release(dev Device) {
	if s.batch != 0 {
		dev.DestroyBatch(s.batch)
		s.batch = 0
	}
}

func (s *residentStep) draw(dev Device) {
	dev.DrawBatch(s.batch, s.state.kind.Topology(), len(s.elems))
}

// overruledStep references a contiguous vertex range of an externally
// owned GPU buffer. It carries no CPU geometry, owns nothing, and never
// participates in content diffing; it is compared by position only.
type overruledStep struct {
	state  stepState
	buffer BufferID
	first  int
	count  int
}

func (s *overruledStep) release(Device) {}

func (s *overruledStep) draw(dev Device) {
	dev.DrawBuffer(s.buffer, s.state.kind.Topology(), s.first, s.count)
}
