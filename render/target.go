// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"sync/atomic"

	"github.com/chewxy/math32"
	"github.com/gogpu/gfx"
)

// nextTargetID generates unique target IDs for activation tracking.
// IDs start at 1; zero means "no target".
var nextTargetID atomic.Uint64

// TargetOption configures a Target during creation.
type TargetOption func(*Target)

// WithContext attaches the target to an existing graphics context, so
// activation is tracked against the other targets of that context. By
// default each target gets a private context.
func WithContext(ctx *Context) TargetOption {
	return func(t *Target) {
		if ctx != nil {
			t.ctx = ctx
		}
	}
}

// WithShader installs a default shader at creation time, replacing the
// device's built-in one.
func WithShader(s Shader) TargetOption {
	return func(t *Target) {
		if s != nil {
			t.shader = s
		}
	}
}

// Target batches draw calls and renders them through a Device.
//
// Draw calls accumulate into an open batch for as long as their
// pipeline state matches; state changes and buffer draws close the
// batch into the target's draw-step cache, which reuses GPU uploads
// across frames (see the package documentation). Flush replays the
// cache as the frame's draw invocations.
//
// A Target is owned by one thread: the one holding its graphics
// context current. None of its methods are safe for concurrent use.
type Target struct {
	dev Device
	ctx *Context
	id  uint64

	width  int
	height int

	view        gfx.View
	defaultView gfx.View

	current  pendingStep
	cache    stepCache
	shader   Shader // active default shader, never nil
	fallback Shader // device built-in
	closed   bool
}

// NewTarget creates a target of the given pixel size rendering through
// the device. The initial view shows the rectangle (0, 0, width,
// height).
func NewTarget(dev Device, width, height int, opts ...TargetOption) (*Target, error) {
	if dev == nil {
		return nil, ErrNilDevice
	}

	t := &Target{
		dev:      dev,
		ctx:      NewContext(0),
		id:       nextTargetID.Add(1),
		width:    width,
		height:   height,
		fallback: dev.DefaultShader(),
	}
	t.shader = t.fallback
	t.defaultView = gfx.NewViewFromRect(gfx.FloatRect{Left: 0, Top: 0, Width: float32(width), Height: float32(height)})
	t.view = t.defaultView

	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Size returns the pixel size of the target.
func (t *Target) Size() gfx.Vector2i {
	return gfx.Vector2i{X: t.width, Y: t.height}
}

// SetView changes the target's current view.
func (t *Target) SetView(view gfx.View) {
	t.view = view
}

// View returns the target's current view.
func (t *Target) View() gfx.View {
	return t.view
}

// DefaultView returns the view the target was created with, showing
// the whole target at a 1:1 scale.
func (t *Target) DefaultView() gfx.View {
	return t.defaultView
}

// Viewport returns the pixel viewport of a view applied to this
// target: the view's normalized viewport rectangle scaled by the
// target size, rounded to whole pixels.
func (t *Target) Viewport(view *gfx.View) gfx.IntRect {
	width := float32(t.width)
	height := float32(t.height)
	viewport := view.Viewport()

	return gfx.IntRect{
		Left:   int(math32.Round(width * viewport.Left)),
		Top:    int(math32.Round(height * viewport.Top)),
		Width:  int(math32.Round(width * viewport.Width)),
		Height: int(math32.Round(height * viewport.Height)),
	}
}

// MapPixelToCoords converts a pixel position to world coordinates
// using the current view.
func (t *Target) MapPixelToCoords(pixel gfx.Vector2i) gfx.Vector2 {
	view := t.view
	return t.MapPixelToCoordsWithView(pixel, &view)
}

// MapPixelToCoordsWithView converts a pixel position to world
// coordinates as seen through the given view.
func (t *Target) MapPixelToCoordsWithView(pixel gfx.Vector2i, view *gfx.View) gfx.Vector2 {
	// Convert from viewport coordinates to normalized device coordinates.
	viewport := t.Viewport(view).FloatRect()
	normalized := gfx.Vector2{
		X: -1 + 2*(float32(pixel.X)-viewport.Left)/viewport.Width,
		Y: 1 - 2*(float32(pixel.Y)-viewport.Top)/viewport.Height,
	}

	// Transform by the inverse of the view matrix.
	return view.InverseTransform().TransformPoint(normalized)
}

// MapCoordsToPixel converts world coordinates to a pixel position
// using the current view.
func (t *Target) MapCoordsToPixel(point gfx.Vector2) gfx.Vector2i {
	view := t.view
	return t.MapCoordsToPixelWithView(point, &view)
}

// MapCoordsToPixelWithView converts world coordinates to a pixel
// position as seen through the given view.
func (t *Target) MapCoordsToPixelWithView(point gfx.Vector2, view *gfx.View) gfx.Vector2i {
	// Transform the point by the view matrix.
	normalized := view.Transform().TransformPoint(point)

	// Convert to viewport coordinates.
	viewport := t.Viewport(view).FloatRect()
	return gfx.Vector2i{
		X: int((normalized.X+1)/2*viewport.Width + viewport.Left),
		Y: int((-normalized.Y+1)/2*viewport.Height + viewport.Top),
	}
}

// SetActive marks the target as active or inactive on its context.
// The return value reports whether the change took effect; it always
// does for targets that have not been closed.
func (t *Target) SetActive(active bool) bool {
	if t.closed {
		return false
	}
	if active {
		t.ctx.MakeCurrent(t.id)
	} else if t.ctx.Current() == t.id {
		t.ctx.MakeCurrent(0)
	}
	return true
}

// ensureActive makes the target current on its context unless it
// already is. A sibling target having been current in the meantime is
// exactly the situation that requires re-activation.
func (t *Target) ensureActive() bool {
	if t.ctx.Current() == t.id {
		return true
	}
	return t.SetActive(true)
}

// Clear fills the color buffer of the target.
func (t *Target) Clear(color gfx.Color) {
	if t.closed || !t.ensureActive() {
		return
	}
	t.dev.Clear(color)
}

// SetDefaultShader installs the shader bound during flush when draw
// calls carry no shader of their own. Passing nil restores the
// device's built-in minimal shader.
func (t *Target) SetDefaultShader(s Shader) {
	if s != nil {
		t.shader = s
	} else {
		t.shader = t.fallback
	}
}

// Draw renders a drawable object with the given states.
func (t *Target) Draw(drawable Drawable, states RenderStates) {
	drawable.Draw(t, states)
}

// DrawVertices batches a slice of vertices with the given topology and
// states. Calls supplying fewer vertices than the topology's minimum
// are silently ignored. The vertices extend the open batch when the
// implied pipeline state matches it, and close it otherwise.
func (t *Target) DrawVertices(vertices []gfx.Vertex, ptype gfx.PrimitiveType, states RenderStates) {
	if t.closed || len(vertices) < ptype.MinVertexCount() {
		return
	}
	if !t.ensureActive() {
		return
	}

	state := newStepState(ptype, states)
	if t.current.state != state {
		if err := t.cache.commit(t.dev, &t.current); err != nil {
			gfx.Logger().Warn("dropping draw step", "err", err)
		}
		t.current.state = state
	}

	t.current.append(vertices, ptype, states.Transform)
}

// DrawBuffer renders the whole of an externally owned vertex buffer.
func (t *Target) DrawBuffer(vb VertexBuffer, states RenderStates) {
	t.DrawBufferRange(vb, 0, vb.VertexCount(), states)
}

// DrawBufferRange renders a contiguous vertex range of an externally
// owned vertex buffer. The count is clamped to the buffer's remaining
// capacity; nothing happens when the buffer has no GPU storage or the
// range resolves to zero vertices.
//
// A buffer draw always closes the open batch, regardless of state, and
// occupies one cache slot of its own. Its geometry lives on the GPU
// already, so the slot is refreshed each frame without any diffing.
func (t *Target) DrawBufferRange(vb VertexBuffer, firstVertex, vertexCount int, states RenderStates) {
	if t.closed || firstVertex > vb.VertexCount() {
		return
	}

	if rest := vb.VertexCount() - firstVertex; vertexCount > rest {
		vertexCount = rest
	}
	if vertexCount <= 0 || vb.NativeHandle() == 0 {
		return
	}
	if !t.ensureActive() {
		return
	}

	if err := t.cache.commit(t.dev, &t.current); err != nil {
		gfx.Logger().Warn("dropping draw step", "err", err)
	}

	t.cache.insertOverruled(t.dev, &overruledStep{
		state:  newStepState(vb.PrimitiveType(), states),
		buffer: vb.NativeHandle(),
		first:  firstVertex,
		count:  vertexCount,
	})
}

// Flush closes the open batch, rewinds the cache cursor for the next
// frame, and replays the cached draw steps: the blend mode and
// viewport are fixed once, the default shader is bound and fed the
// view transform, and every step issues exactly one draw invocation,
// in order.
func (t *Target) Flush() error {
	if t.closed {
		return ErrTargetClosed
	}

	if err := t.cache.commit(t.dev, &t.current); err != nil {
		return err
	}
	t.cache.rewind()

	if !t.ensureActive() {
		return nil
	}

	blend, err := gfx.BlendAlpha.GPUState()
	if err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	t.dev.SetBlend(blend)

	// Flip the vertical origin: views address the target top-down,
	// the GPU viewport bottom-up.
	viewport := t.Viewport(&t.view)
	top := t.height - (viewport.Top + viewport.Height)
	t.dev.SetViewport(viewport.Left, top, viewport.Width, viewport.Height)

	t.shader.Bind()
	if err := t.shader.SetUniformMat4("viewport", t.view.Transform().Matrix()); err != nil {
		t.shader.Unbind()
		return fmt.Errorf("flush: set view transform: %w", err)
	}

	t.cache.replay(t.dev)
	t.shader.Unbind()

	return t.dev.Present()
}

// Close releases the GPU buffers owned by the target's cache and
// deactivates the target. The target cannot be used afterwards; Close
// is idempotent.
func (t *Target) Close() error {
	if t.closed {
		return nil
	}
	t.cache.releaseAll(t.dev)
	t.SetActive(false)
	t.closed = true
	return nil
}
