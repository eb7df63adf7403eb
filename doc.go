// Package gfx provides an immediate-mode 2D rendering layer for the
// GoGPU ecosystem.
//
// # Overview
//
// gfx converts an arbitrary sequence of draw calls (raw vertex slices,
// drawable objects, GPU-resident vertex buffers) into a minimal ordered
// sequence of GPU buffer uploads and draw invocations. Geometry and
// pipeline state that repeat from one frame to the next reuse the GPU
// buffers uploaded for the previous frame instead of re-uploading.
//
// # Quick Start
//
//	import (
//		"github.com/gogpu/gfx"
//		"github.com/gogpu/gfx/render"
//	)
//
//	target, _ := render.NewTarget(device, 800, 600)
//	target.Clear(gfx.Black)
//	target.DrawVertices(verts, gfx.Triangles, render.DefaultRenderStates())
//	target.Flush()
//
// # Architecture
//
// The library is organized into:
//   - Public value types: Color, Vertex, Transform, View, BlendMode,
//     PrimitiveType (this package)
//   - render: draw batching, the frame-to-frame draw-step cache, and the
//     Device seam the batcher drives
//   - gpu: a render.Device implementation over gogpu/wgpu
//
// # Coordinate System
//
// World coordinates are mapped through the active View's transform into
// normalized device coordinates. Pixel coordinates have their origin at
// the top-left; the GPU viewport is flipped to match the target's
// bottom-up pixel convention at flush time.
package gfx
