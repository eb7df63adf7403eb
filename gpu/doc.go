// Package gpu implements the render.Device contract on top of the wgpu
// hardware abstraction layer.
//
// A Device wraps an existing hal.Device and hal.Queue (obtained from the
// host application's adapter setup) and records draw commands issued by
// render.Target into a per-frame command list. Present encodes the list
// into a single render pass against a caller-provided surface texture
// view and submits it.
//
// WebGPU bakes blend state and primitive topology into the render
// pipeline object, so the Device keeps a pipeline cache keyed by
// (topology, blend state) and creates variants lazily on first use.
// Vertex data is interleaved as position (vec2<f32>), color (vec4<f32>),
// and texture coordinates (vec2<f32>), 32 bytes per vertex.
package gpu
