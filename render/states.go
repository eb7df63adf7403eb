// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "github.com/gogpu/gfx"

// RenderStates bundles the pipeline configuration a draw call runs
// with: how fragments blend, how positions are transformed, and which
// texture and shader are bound. Texture and Shader may be nil.
type RenderStates struct {
	BlendMode gfx.BlendMode
	Transform gfx.Transform
	Texture   Texture
	Shader    Shader
}

// DefaultRenderStates returns alpha blending, the identity transform,
// and no texture or shader.
func DefaultRenderStates() RenderStates {
	return RenderStates{
		BlendMode: gfx.BlendAlpha,
		Transform: gfx.IdentityTransform,
	}
}

// Drawable is anything that can draw itself to a target by issuing one
// or more vertex draw calls.
type Drawable interface {
	Draw(target *Target, states RenderStates)
}
