package gpu

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/glyphpad/glyphpad/render"
)

// Renderer errors.
var (
	// ErrNilTarget is returned when Render is called without a target view.
	ErrNilTarget = errors.New("gpu: nil render target")

	// ErrRendererDestroyed is returned when Render is called after Destroy.
	ErrRendererDestroyed = errors.New("gpu: renderer destroyed")
)

// minInstanceCapacity is the initial instance buffer capacity in glyphs.
const minInstanceCapacity = 256

// DefaultClearColor is the window background.
var DefaultClearColor = gputypes.Color{R: 0.1, G: 0, B: 0.1, A: 1}

// submission is a command buffer the GPU may still be executing.
type submission struct {
	index   uint64
	encoder hal.CommandEncoder
	cmdBuf  hal.CommandBuffer
}

// Renderer draws render.Frame values into a texture view, one instanced
// quad per glyph.
//
// Architecture:
//
//	GlyphAtlas owns the atlas texture, view and sampler (written once)
//	GlyphPipeline owns shader, layouts and pipeline
//	Renderer owns the quad, index, uniform and instance buffers and the
//	bind group, and encodes one render pass per frame
//
// Renderer is not safe for concurrent use.
type Renderer struct {
	device hal.Device
	queue  hal.Queue
	format gputypes.TextureFormat
	cell   render.Metrics
	clear  gputypes.Color

	atlas    *GlyphAtlas
	pipeline *GlyphPipeline

	vertBuf    hal.Buffer
	idxBuf     hal.Buffer
	uniformBuf hal.Buffer
	bindGroup  hal.BindGroup

	instBuf  hal.Buffer
	instCap  int
	instData []byte

	pending   []submission
	destroyed bool
}

// NewRenderer creates every GPU object the editor needs: the glyph atlas
// texture, the pipeline, static quad buffers, the uniform buffer and the
// bind group. On error nothing is leaked.
func NewRenderer(device hal.Device, queue hal.Queue, format gputypes.TextureFormat, atlas *image.RGBA, cell render.Metrics) (*Renderer, error) {
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatBGRA8Unorm
	}
	r := &Renderer{
		device: device,
		queue:  queue,
		format: format,
		cell:   cell,
		clear:  DefaultClearColor,
	}
	if err := r.init(atlas); err != nil {
		r.Destroy()
		return nil, err
	}
	aw, ah := r.atlas.Size()
	slogger().Info("glyph renderer ready", "format", format.String(), "atlas", fmt.Sprintf("%dx%d", aw, ah))
	return r, nil
}

func (r *Renderer) init(atlasImg *image.RGBA) error {
	atlas, err := NewGlyphAtlas(r.device, r.queue, atlasImg)
	if err != nil {
		return err
	}
	r.atlas = atlas

	pipeline, err := NewGlyphPipeline(r.device, r.format)
	if err != nil {
		return err
	}
	r.pipeline = pipeline

	vertData := buildQuadVertexData(r.cell)
	r.vertBuf, err = r.createBuffer("glyph_quad_vertices", vertData, gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	idxData := buildQuadIndexData()
	r.idxBuf, err = r.createBuffer("glyph_quad_indices", idxData, gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	r.uniformBuf, err = r.createBuffer("glyph_uniforms", make([]byte, glyphUniformSize), gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}

	bindGroup, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "glyph_bind_group",
		Layout: r.pipeline.BindLayout(),
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: r.uniformBuf.NativeHandle(), Offset: 0, Size: glyphUniformSize,
			}},
			{Binding: 1, Resource: gputypes.TextureViewBinding{TextureView: r.atlas.View().NativeHandle()}},
			{Binding: 2, Resource: gputypes.SamplerBinding{Sampler: r.atlas.Sampler().NativeHandle()}},
		},
	})
	if err != nil {
		return fmt.Errorf("create glyph bind group: %w", err)
	}
	r.bindGroup = bindGroup

	return r.ensureInstanceCapacity(minInstanceCapacity)
}

// createBuffer creates a buffer and, when data is non-empty, fills it.
func (r *Renderer) createBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	if err := r.queue.WriteBuffer(buf, 0, data); err != nil {
		r.device.DestroyBuffer(buf)
		return nil, fmt.Errorf("write %s: %w", label, err)
	}
	return buf, nil
}

// ensureInstanceCapacity grows the instance buffer to hold at least n
// glyphs. Capacity doubles so growth is amortized.
func (r *Renderer) ensureInstanceCapacity(n int) error {
	if n <= r.instCap && r.instBuf != nil {
		return nil
	}
	newCap := max(r.instCap, minInstanceCapacity)
	for newCap < n {
		newCap *= 2
	}
	buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "glyph_instances",
		Size:  uint64(newCap * glyphInstanceStride), //nolint:gosec // capacity is positive
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("grow glyph instance buffer to %d: %w", newCap, err)
	}
	if r.instBuf != nil {
		// The old buffer may still be read by an in-flight frame.
		if err := r.device.WaitIdle(); err != nil {
			slogger().Warn("wait idle before instance buffer growth", "err", err)
		}
		r.device.DestroyBuffer(r.instBuf)
		slogger().Debug("glyph instance buffer grown", "from", r.instCap, "to", newCap)
	}
	r.instBuf = buf
	r.instCap = newCap
	return nil
}

// SetClearColor sets the color the target is cleared to each frame.
func (r *Renderer) SetClearColor(c gputypes.Color) {
	r.clear = c
}

// InstanceCapacity returns the current instance buffer capacity in glyphs.
func (r *Renderer) InstanceCapacity() int {
	return r.instCap
}

// Render draws f into target. The target is cleared first, so an empty
// frame produces a background-only image.
func (r *Renderer) Render(target hal.TextureView, f *render.Frame) error {
	if r.destroyed {
		return ErrRendererDestroyed
	}
	if target == nil {
		return ErrNilTarget
	}
	r.reclaim()

	if err := r.queue.WriteBuffer(r.uniformBuf, 0, buildGlyphUniform(f)); err != nil {
		return fmt.Errorf("write glyph uniforms: %w", err)
	}
	n := len(f.Glyphs)
	if n > 0 {
		if err := r.ensureInstanceCapacity(n); err != nil {
			return err
		}
		r.instData = appendInstanceData(r.instData[:0], f.Glyphs)
		if err := r.queue.WriteBuffer(r.instBuf, 0, r.instData); err != nil {
			return fmt.Errorf("write glyph instances: %w", err)
		}
	}

	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "glyph_frame"})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("glyph_frame"); err != nil {
		encoder.Destroy()
		return fmt.Errorf("begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "glyph_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:       target,
				LoadOp:     gputypes.LoadOpClear,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: r.clear,
			},
		},
	})
	if f.Width > 0 && f.Height > 0 {
		rp.SetViewport(0, 0, float32(f.Width), float32(f.Height), 0, 1)
	}
	if n > 0 {
		rp.SetPipeline(r.pipeline.Pipeline())
		rp.SetBindGroup(0, r.bindGroup, nil)
		rp.SetVertexBuffer(0, r.vertBuf, 0)
		rp.SetVertexBuffer(1, r.instBuf, 0)
		rp.SetIndexBuffer(r.idxBuf, gputypes.IndexFormatUint16, 0)
		// One draw per glyph; firstInstance selects its instance record.
		for i := 0; i < n; i++ {
			rp.DrawIndexed(quadIndexCount, 1, 0, 0, uint32(i)) //nolint:gosec // glyph count fits uint32
		}
	}
	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		encoder.DiscardEncoding()
		encoder.Destroy()
		return fmt.Errorf("end encoding: %w", err)
	}
	idx, err := r.queue.Submit([]hal.CommandBuffer{cmdBuf})
	if err != nil {
		r.device.FreeCommandBuffer(cmdBuf)
		encoder.Destroy()
		return fmt.Errorf("submit glyph frame: %w", err)
	}
	r.pending = append(r.pending, submission{index: idx, encoder: encoder, cmdBuf: cmdBuf})
	return nil
}

// reclaim frees command buffers of submissions the GPU has finished.
func (r *Renderer) reclaim() {
	if len(r.pending) == 0 {
		return
	}
	done := r.queue.PollCompleted()
	kept := r.pending[:0]
	for _, s := range r.pending {
		if s.index <= done {
			r.release(s)
			continue
		}
		kept = append(kept, s)
	}
	r.pending = kept
}

func (r *Renderer) release(s submission) {
	r.device.FreeCommandBuffer(s.cmdBuf)
	s.encoder.Destroy()
}

// Pending returns the number of submissions not yet reclaimed.
func (r *Renderer) Pending() int {
	return len(r.pending)
}

// Destroy waits for the GPU and releases every object in reverse creation
// order. Only the first call has any effect.
func (r *Renderer) Destroy() {
	if r == nil || r.destroyed {
		return
	}
	r.destroyed = true

	if len(r.pending) > 0 {
		if err := r.device.WaitIdle(); err != nil {
			slogger().Warn("wait idle on renderer destroy", "err", err)
		}
		for _, s := range r.pending {
			r.release(s)
		}
		r.pending = nil
	}
	if r.instBuf != nil {
		r.device.DestroyBuffer(r.instBuf)
		r.instBuf = nil
	}
	if r.bindGroup != nil {
		r.device.DestroyBindGroup(r.bindGroup)
		r.bindGroup = nil
	}
	for _, buf := range []*hal.Buffer{&r.uniformBuf, &r.idxBuf, &r.vertBuf} {
		if *buf != nil {
			r.device.DestroyBuffer(*buf)
			*buf = nil
		}
	}
	r.pipeline.Destroy()
	r.pipeline = nil
	r.atlas.Destroy()
	r.atlas = nil
}
