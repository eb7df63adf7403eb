// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render converts immediate-mode draw calls into a minimal
// ordered sequence of GPU buffer uploads and draw invocations.
//
// # Key Principle
//
// render RECEIVES a GPU device from the host application through the
// Device interface, it does NOT create its own. The gpu sub-package
// provides a gogpu/wgpu-backed Device; tests inject fakes.
//
// # Batching
//
// Consecutive draw calls sharing the same pipeline state (canonical
// primitive kind, blend mode, texture identity, shader identity) merge
// into one batch: an interleaved CPU vertex buffer plus a synthesized
// index buffer. A state change closes the open batch and opens a new
// one. Drawing from an externally owned GPU vertex buffer always closes
// the open batch and emits a step that references the external buffer
// directly.
//
// # The Draw-Step Cache
//
// Closed batches land in an ordered per-target cache with a cursor. The
// cursor rewinds to zero each frame, but the cached steps survive: when
// the nth batch of the new frame is byte-identical to the nth cached
// step, the GPU buffers uploaded for the previous frame are reused and
// nothing is uploaded. The first mismatch invalidates every cached step
// from that position onward. Steady-state frames therefore upload
// nothing at all.
//
// This positional design assumes stable draw-call ordering across
// frames. Reordered but otherwise identical frames re-upload from the
// first reordered position; this is an accepted limitation, traded for
// zero hashing cost on the hot path.
//
// # Threading
//
// A Target and everything it owns must be driven from the single thread
// holding its graphics context current. Activating a target is tracked
// through a Context value shared by the targets of one native context.
package render
