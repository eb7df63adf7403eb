// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"

	"github.com/gogpu/gfx"
	"github.com/gogpu/gputypes"
)

// Device errors.
var (
	// ErrBatchAllocation is returned when the device cannot allocate the
	// GPU buffers backing a batch.
	ErrBatchAllocation = errors.New("render: batch buffer allocation failed")

	// ErrNilDevice is returned when a target is created without a device.
	ErrNilDevice = errors.New("render: device is nil")

	// ErrTargetClosed is returned when operating on a closed target.
	ErrTargetClosed = errors.New("render: target has been closed")
)

// BatchID identifies an uploaded batch on the device: one vertex buffer
// and one element buffer, exclusively owned by a single cached draw
// step. The zero value means "not uploaded".
type BatchID uint64

// BufferID identifies an externally owned GPU vertex buffer. The zero
// value means "no buffer".
type BufferID uint64

// Device is the GPU seam the batcher drives. Implementations execute
// commands against a real GPU (see the gpu package) or record them for
// inspection in tests.
//
// Resource lifecycle:
//   - CreateBatch performs the one-time upload of a batch's CPU buffers
//     and returns an exclusively owned handle.
//   - DestroyBatch releases the handle; IDs must not be reused.
//   - Draw commands reference batches by ID and are issued between the
//     per-frame state setup and Present.
//
// Every method must be called from the thread holding the device's
// graphics context current.
type Device interface {
	// CreateBatch uploads interleaved vertex data (x, y, r, g, b, a, s, t
	// per vertex) and an index list, returning a handle to the uploaded
	// buffers. Returns an error when GPU allocation fails.
	CreateBatch(vertices []float32, indices []uint32) (BatchID, error)

	// DestroyBatch releases the GPU buffers behind the handle.
	// Destroying the zero ID is a no-op.
	DestroyBatch(id BatchID)

	// Clear fills the color buffer of the current target with the color.
	Clear(color gfx.Color)

	// SetBlend fixes the blend state for the draws that follow.
	SetBlend(state gputypes.BlendState)

	// SetViewport sets the pixel viewport, origin at the bottom-left.
	SetViewport(x, y, width, height int)

	// DrawBatch issues one draw invocation for an uploaded batch.
	DrawBatch(id BatchID, topology gputypes.PrimitiveTopology, indexCount int)

	// DrawBuffer issues one draw invocation for a contiguous vertex
	// range of an externally owned vertex buffer.
	DrawBuffer(id BufferID, topology gputypes.PrimitiveTopology, firstVertex, vertexCount int)

	// DefaultShader returns the device's built-in minimal shader, bound
	// whenever no user shader is installed on the target.
	DefaultShader() Shader

	// Present submits the recorded frame to the GPU.
	Present() error
}
