package gpu

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gfx"
	"github.com/gogpu/gfx/render"
)

// Device errors.
var (
	// ErrNoSurface is returned by Present when no surface texture view
	// has been installed for the current frame.
	ErrNoSurface = errors.New("gpu: no surface target set")

	// ErrUnknownUniform is returned when setting a uniform the built-in
	// shader does not declare.
	ErrUnknownUniform = errors.New("gpu: unknown uniform")
)

// submitTimeout bounds the fence wait after frame submission.
const submitTimeout = 5 * time.Second

// commandKind discriminates recorded frame commands.
type commandKind uint8

const (
	cmdSetBlend commandKind = iota
	cmdSetViewport
	cmdDrawBatch
	cmdDrawBuffer
	cmdBindShader
)

// frameCommand is one recorded draw or state command, replayed into the
// render pass at Present.
type frameCommand struct {
	kind     commandKind
	blend    gputypes.BlendState
	viewport [4]int
	batch    render.BatchID
	buffer   render.BufferID
	topology gputypes.PrimitiveTopology
	first    int
	count    int
	bind     hal.BindGroup
}

// batchEntry is the GPU storage behind one render.BatchID: a vertex
// buffer and an index buffer, exclusively owned by the batch.
type batchEntry struct {
	vertBuf    hal.Buffer
	idxBuf     hal.Buffer
	indexCount int
}

// Option configures a Device.
type Option func(*Device)

// WithTextureFormat sets the color target format pipelines render into.
// The default is BGRA8Unorm, the common swapchain format.
func WithTextureFormat(format gputypes.TextureFormat) Option {
	return func(d *Device) {
		d.format = format
	}
}

// Device implements render.Device on a wgpu hal device and queue. Draw
// commands accumulate in a frame list; Present encodes them into a
// single render pass against the installed surface view and submits.
//
// The caller owns the hal device, queue, and surface view. Device only
// owns the resources it creates: batches, vertex buffers, pipelines,
// and the default shader.
type Device struct {
	dev   hal.Device
	queue hal.Queue

	format gputypes.TextureFormat

	// Shared pipeline resources, created once.
	shaderModule  hal.ShaderModule
	uniformLayout hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout
	pipelines     map[pipelineKey]hal.RenderPipeline

	ids       render.ResourceIDSource
	defShader *Shader

	batches   map[render.BatchID]*batchEntry
	nextBatch render.BatchID

	buffers    map[render.BufferID]hal.Buffer
	nextBuffer render.BufferID

	// Per-frame state.
	view       hal.TextureView
	width      int
	height     int
	clearColor gputypes.Color
	commands   []frameCommand
}

// NewDevice wraps an existing hal device and queue. The shader module,
// layouts, and default shader are created eagerly; pipeline variants are
// created lazily per (topology, blend) combination.
func NewDevice(dev hal.Device, queue hal.Queue, opts ...Option) (*Device, error) {
	if dev == nil || queue == nil {
		return nil, render.ErrNilDevice
	}

	d := &Device{
		dev:       dev,
		queue:     queue,
		format:    gputypes.TextureFormatBGRA8Unorm,
		pipelines: make(map[pipelineKey]hal.RenderPipeline),
		batches:   make(map[render.BatchID]*batchEntry),
		buffers:   make(map[render.BufferID]hal.Buffer),
	}
	for _, opt := range opts {
		opt(d)
	}

	if err := d.createShaderResources(); err != nil {
		return nil, err
	}

	shader, err := newShader(d)
	if err != nil {
		d.destroyPipelines()
		return nil, fmt.Errorf("create default shader: %w", err)
	}
	d.defShader = shader

	return d, nil
}

// SetSurface installs the texture view Present renders into, with its
// pixel dimensions. The caller retains ownership of the view and is
// responsible for presenting the surface after Present returns. Pass a
// nil view to detach.
func (d *Device) SetSurface(view hal.TextureView, width, height int) {
	d.view = view
	d.width = width
	d.height = height
}

// CreateBatch uploads interleaved vertex data and an index list into a
// fresh vertex/index buffer pair.
func (d *Device) CreateBatch(vertices []float32, indices []uint32) (render.BatchID, error) {
	if len(vertices) == 0 || len(indices) == 0 {
		return 0, fmt.Errorf("%w: empty batch data", render.ErrBatchAllocation)
	}

	vertBuf, err := d.createAndUploadBuffer("gfx_batch_verts", packFloats(vertices),
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", render.ErrBatchAllocation, err)
	}

	idxBuf, err := d.createAndUploadBuffer("gfx_batch_elems", packIndices(indices),
		gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst)
	if err != nil {
		d.dev.DestroyBuffer(vertBuf)
		return 0, fmt.Errorf("%w: %w", render.ErrBatchAllocation, err)
	}

	d.nextBatch++
	id := d.nextBatch
	d.batches[id] = &batchEntry{
		vertBuf:    vertBuf,
		idxBuf:     idxBuf,
		indexCount: len(indices),
	}
	return id, nil
}

// DestroyBatch releases the buffers behind the handle.
func (d *Device) DestroyBatch(id render.BatchID) {
	b, ok := d.batches[id]
	if !ok {
		return
	}
	d.dev.DestroyBuffer(b.idxBuf)
	d.dev.DestroyBuffer(b.vertBuf)
	delete(d.batches, id)
}

// Clear sets the pass clear color and drops commands recorded so far
// this frame. The actual clear happens as the render pass load
// operation at Present.
func (d *Device) Clear(color gfx.Color) {
	r, g, b, a := color.Normalized()
	d.clearColor = gputypes.Color{
		R: float64(r), G: float64(g), B: float64(b), A: float64(a),
	}
	d.commands = d.commands[:0]
}

// SetBlend records the blend state for the draws that follow.
func (d *Device) SetBlend(state gputypes.BlendState) {
	d.commands = append(d.commands, frameCommand{kind: cmdSetBlend, blend: state})
}

// SetViewport records the pixel viewport for the draws that follow.
func (d *Device) SetViewport(x, y, width, height int) {
	d.commands = append(d.commands, frameCommand{
		kind:     cmdSetViewport,
		viewport: [4]int{x, y, width, height},
	})
}

// DrawBatch records one indexed draw of an uploaded batch.
func (d *Device) DrawBatch(id render.BatchID, topology gputypes.PrimitiveTopology, indexCount int) {
	d.commands = append(d.commands, frameCommand{
		kind:     cmdDrawBatch,
		batch:    id,
		topology: topology,
		count:    indexCount,
	})
}

// DrawBuffer records one draw of a vertex range from a registered
// vertex buffer.
func (d *Device) DrawBuffer(id render.BufferID, topology gputypes.PrimitiveTopology, firstVertex, vertexCount int) {
	d.commands = append(d.commands, frameCommand{
		kind:     cmdDrawBuffer,
		buffer:   id,
		topology: topology,
		first:    firstVertex,
		count:    vertexCount,
	})
}

// recordBind records a bind group selection for the draws that follow.
func (d *Device) recordBind(bg hal.BindGroup) {
	d.commands = append(d.commands, frameCommand{kind: cmdBindShader, bind: bg})
}

// DefaultShader returns the built-in shader.
func (d *Device) DefaultShader() render.Shader {
	return d.defShader
}

// Present encodes the recorded frame into one render pass and submits
// it, waiting for completion. The command list is reset afterwards
// whether or not encoding succeeds.
func (d *Device) Present() error {
	defer func() {
		d.commands = d.commands[:0]
	}()

	if d.view == nil {
		return ErrNoSurface
	}

	// Create every pipeline variant the frame needs before encoding so
	// creation errors abort cleanly.
	if err := d.ensureFramePipelines(); err != nil {
		return err
	}

	encoder, err := d.dev.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "gfx_frame_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("gfx_frame"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "gfx_frame_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:       d.view,
				LoadOp:     gputypes.LoadOpClear,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: d.clearColor,
			},
		},
	})
	d.encodeCommands(rp)
	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer d.dev.FreeCommandBuffer(cmdBuf)

	fence, err := d.dev.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer d.dev.DestroyFence(fence)

	if err := d.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit frame: %w", err)
	}
	fenceOK, err := d.dev.Wait(fence, 1, submitTimeout)
	if err != nil {
		return fmt.Errorf("wait for frame: %w", err)
	}
	if !fenceOK {
		return fmt.Errorf("wait for frame: fence not signaled after %v", submitTimeout)
	}
	return nil
}

// ensureFramePipelines walks the recorded commands and creates every
// pipeline variant they will select.
func (d *Device) ensureFramePipelines() error {
	blend := gputypes.BlendStatePremultiplied()
	for _, cmd := range d.commands {
		switch cmd.kind {
		case cmdSetBlend:
			blend = cmd.blend
		case cmdDrawBatch, cmdDrawBuffer:
			if _, err := d.ensurePipeline(pipelineKey{topology: cmd.topology, blend: blend}); err != nil {
				return err
			}
		}
	}
	return nil
}

// encodeCommands replays the frame command list into the render pass.
// Pipeline variants are switched whenever the effective (topology,
// blend) pair changes between draws.
func (d *Device) encodeCommands(rp hal.RenderPassEncoder) {
	rp.SetBindGroup(0, d.defShader.bindGroup, nil)

	blend := gputypes.BlendStatePremultiplied()
	var current pipelineKey
	var bound bool

	for _, cmd := range d.commands {
		switch cmd.kind {
		case cmdSetBlend:
			blend = cmd.blend

		case cmdBindShader:
			rp.SetBindGroup(0, cmd.bind, nil)

		case cmdSetViewport:
			// The viewport arrives with a bottom-left origin; the pass
			// encoder expects top-left.
			x, y := cmd.viewport[0], cmd.viewport[1]
			w, h := cmd.viewport[2], cmd.viewport[3]
			top := d.height - (y + h)
			rp.SetViewport(float32(x), float32(top), float32(w), float32(h), 0, 1)

		case cmdDrawBatch:
			b, ok := d.batches[cmd.batch]
			if !ok {
				continue
			}
			key := pipelineKey{topology: cmd.topology, blend: blend}
			if !bound || key != current {
				rp.SetPipeline(d.pipelines[key])
				current, bound = key, true
			}
			rp.SetVertexBuffer(0, b.vertBuf, 0)
			rp.SetIndexBuffer(b.idxBuf, gputypes.IndexFormatUint32, 0)
			rp.DrawIndexed(uint32(cmd.count), 1, 0, 0, 0)

		case cmdDrawBuffer:
			buf, ok := d.buffers[cmd.buffer]
			if !ok {
				continue
			}
			key := pipelineKey{topology: cmd.topology, blend: blend}
			if !bound || key != current {
				rp.SetPipeline(d.pipelines[key])
				current, bound = key, true
			}
			rp.SetVertexBuffer(0, buf, 0)
			rp.Draw(uint32(cmd.count), 1, uint32(cmd.first), 0)
		}
	}
}

// createAndUploadBuffer creates a GPU buffer and uploads data.
func (d *Device) createAndUploadBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := d.dev.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create buffer %s: %w", label, err)
	}
	if err := d.queue.WriteBuffer(buf, 0, data); err != nil {
		d.dev.DestroyBuffer(buf)
		return nil, fmt.Errorf("upload buffer %s: %w", label, err)
	}
	return buf, nil
}

// registerBuffer assigns a handle to an externally owned vertex buffer
// so recorded draws can reference it.
func (d *Device) registerBuffer(buf hal.Buffer) render.BufferID {
	d.nextBuffer++
	id := d.nextBuffer
	d.buffers[id] = buf
	return id
}

// unregisterBuffer retires a vertex buffer handle.
func (d *Device) unregisterBuffer(id render.BufferID) {
	delete(d.buffers, id)
}

// Destroy releases every GPU resource the device owns. Registered
// vertex buffers are owned by their VertexBuffer and are not destroyed
// here. Safe to call multiple times.
func (d *Device) Destroy() {
	for id := range d.batches {
		d.DestroyBatch(id)
	}
	if d.defShader != nil {
		d.defShader.release()
		d.defShader = nil
	}
	d.destroyPipelines()
	d.commands = nil
	d.view = nil
}
