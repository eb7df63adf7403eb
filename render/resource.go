// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"sync"

	"github.com/gogpu/gfx"
)

// ResourceID identifies a texture or shader for batching purposes.
// Batches split when the bound resource changes, so the comparison must
// be by identity, not by content. The generation field guards against
// slot reuse: a destroyed and recreated resource receives a new
// generation, so a stale reference never compares equal to the resource
// now occupying its slot.
//
// The zero value means "no resource bound".
type ResourceID struct {
	Slot       uint32
	Generation uint32
}

// Valid reports whether the ID refers to a resource.
func (id ResourceID) Valid() bool {
	return id != ResourceID{}
}

// ResourceIDSource hands out generation-checked resource IDs. Released
// slots are reused with a bumped generation. The zero value is ready to
// use; it is safe for concurrent use.
type ResourceIDSource struct {
	mu   sync.Mutex
	gens []uint32
	free []uint32
}

// Acquire returns a fresh ID. Slots of released IDs are reused, with
// the generation advanced so old IDs stay distinct.
func (s *ResourceIDSource) Acquire() ResourceID {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n := len(s.free); n > 0 {
		idx := s.free[n-1]
		s.free = s.free[:n-1]
		s.gens[idx]++
		return ResourceID{Slot: idx + 1, Generation: s.gens[idx]}
	}

	// Slot 0 is reserved so the zero ResourceID stays "none".
	s.gens = append(s.gens, 1)
	return ResourceID{Slot: uint32(len(s.gens)), Generation: 1}
}

// Release returns the ID's slot to the source. The ID must have been
// acquired from this source and not released before.
func (s *ResourceIDSource) Release(id ResourceID) {
	if !id.Valid() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.free = append(s.free, id.Slot-1)
}

// Texture is the capability the batcher consumes from texture
// implementations. Pixel storage and image decoding live with the
// implementor.
type Texture interface {
	// Bind makes the texture current for subsequent draws.
	Bind()

	// NativeHandle returns the underlying GPU texture handle.
	NativeHandle() uint64

	// ID returns the generation-checked identity used for batching.
	ID() ResourceID
}

// Shader is the capability the batcher consumes from shader programs.
// Compilation, linking, and reflection live with the implementor.
type Shader interface {
	// Bind installs the shader for subsequent draws.
	Bind()

	// Unbind removes the shader.
	Unbind()

	// SetUniformMat4 sets a 4x4 matrix uniform by name.
	SetUniformMat4(name string, matrix [16]float32) error

	// ID returns the generation-checked identity used for batching.
	ID() ResourceID
}

// VertexBuffer is the capability the batcher consumes from externally
// owned GPU vertex buffers. Draws from a VertexBuffer bypass CPU
// accumulation entirely.
type VertexBuffer interface {
	// NativeHandle returns the device handle of the buffer, or the zero
	// BufferID when the buffer has no GPU storage yet.
	NativeHandle() BufferID

	// PrimitiveType returns the topology the buffer's vertices form.
	PrimitiveType() gfx.PrimitiveType

	// VertexCount returns the number of vertices in the buffer.
	VertexCount() int
}

func textureID(t Texture) ResourceID {
	if t == nil {
		return ResourceID{}
	}
	return t.ID()
}

func shaderID(s Shader) ResourceID {
	if s == nil {
		return ResourceID{}
	}
	return s.ID()
}
