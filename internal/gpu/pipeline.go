package gpu

import (
	_ "embed"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/glyphpad/glyphpad/render"
)

// Embedded glyph shader source.
//
//go:embed shaders/glyph.wgsl
var glyphShaderSource string

// ErrShaderInvalid is returned when the glyph shader fails validation.
var ErrShaderInvalid = errors.New("gpu: invalid glyph shader")

// quadVertexStride is the byte stride of the shared quad vertex buffer.
// Layout per vertex:
//
//	position  (vec2<f32>) = 8 bytes  (location 0)
//	tex_coord (vec2<f32>) = 8 bytes  (location 1)
const quadVertexStride = 16

// glyphInstanceStride is the byte stride of one glyph instance record:
// pen x, pen y, code, unused (vec4<f32>, location 2).
const glyphInstanceStride = 16

// glyphUniformSize is the byte size of GlyphUniforms in glyph.wgsl.
// Layout: projection (mat4x4<f32>) = 64 bytes + offset (vec2<f32>) = 8 bytes
// + zoom (f32) = 4 bytes + bands (f32) = 4 bytes = 80 bytes.
const glyphUniformSize = 80

// quadIndexCount is the number of indices drawn per glyph.
const quadIndexCount = 6

// GlyphPipeline owns the shader, layouts and render pipeline used to draw
// glyph quads. Buffers and bind groups belong to the Renderer.
type GlyphPipeline struct {
	device hal.Device

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline
}

// ValidateShader parses and validates WGSL source.
func ValidateShader(source string) error {
	if source == "" {
		return fmt.Errorf("%w: empty source", ErrShaderInvalid)
	}
	if _, err := naga.Compile(source); err != nil {
		return fmt.Errorf("%w: %w", ErrShaderInvalid, err)
	}
	return nil
}

// NewGlyphPipeline validates the glyph shader and creates the pipeline for
// a color target of the given format.
func NewGlyphPipeline(device hal.Device, format gputypes.TextureFormat) (*GlyphPipeline, error) {
	if err := ValidateShader(glyphShaderSource); err != nil {
		return nil, err
	}

	p := &GlyphPipeline{device: device}
	if err := p.create(format); err != nil {
		p.Destroy()
		return nil, err
	}
	return p, nil
}

func (p *GlyphPipeline) create(format gputypes.TextureFormat) error {
	shader, err := p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "glyph_shader",
		Source: hal.ShaderSource{WGSL: glyphShaderSource},
	})
	if err != nil {
		return fmt.Errorf("compile glyph shader: %w", err)
	}
	p.shader = shader

	// Bind group layout:
	//   Binding 0: GlyphUniforms (uniform buffer, vertex+fragment)
	//   Binding 1: glyph atlas (texture_2d, fragment)
	//   Binding 2: sampler (fragment)
	bindLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "glyph_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    2,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create glyph bind layout: %w", err)
	}
	p.bindLayout = bindLayout

	pipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "glyph_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("create glyph pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	premulBlend := gputypes.BlendStatePremultiplied()
	pipeline, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "glyph_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_main",
			Buffers:    glyphVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    format,
					Blend:     &premulBlend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("create glyph pipeline: %w", err)
	}
	p.pipeline = pipeline
	return nil
}

// BindLayout returns the layout of bind group 0.
func (p *GlyphPipeline) BindLayout() hal.BindGroupLayout { return p.bindLayout }

// Pipeline returns the render pipeline.
func (p *GlyphPipeline) Pipeline() hal.RenderPipeline { return p.pipeline }

// Destroy releases all pipeline resources in reverse creation order. Safe
// to call multiple times.
func (p *GlyphPipeline) Destroy() {
	if p == nil || p.device == nil {
		return
	}
	if p.pipeline != nil {
		p.device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.bindLayout != nil {
		p.device.DestroyBindGroupLayout(p.bindLayout)
		p.bindLayout = nil
	}
	if p.shader != nil {
		p.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}

// glyphVertexLayout returns the vertex buffer layouts of the glyph pipeline.
// Matches VertexInput in glyph.wgsl:
//
//	slot 0, per vertex:   location 0 position, location 1 tex_coord
//	slot 1, per instance: location 2 glyph (pen x, pen y, code, unused)
func glyphVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: quadVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // position
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1}, // tex_coord
			},
		},
		{
			ArrayStride: glyphInstanceStride,
			StepMode:    gputypes.VertexStepModeInstance,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 2}, // glyph
			},
		},
	}
}

// ---- Vertex/index/uniform data builders ----

// buildQuadVertexData serializes the shared glyph quad for upload.
func buildQuadVertexData(m render.Metrics) []byte {
	verts := render.QuadVertices(m)
	data := make([]byte, len(verts)*quadVertexStride)
	for i, v := range verts {
		putFloats(data[i*quadVertexStride:], v.X, v.Y, v.U, v.V)
	}
	return data
}

// buildQuadIndexData serializes the quad indices for upload. The result is
// padded to a multiple of 4 bytes as buffer writes require.
func buildQuadIndexData() []byte {
	idx := render.QuadIndices()
	data := make([]byte, alignUp4(len(idx)*2))
	for i, v := range idx {
		binary.LittleEndian.PutUint16(data[i*2:], v)
	}
	return data
}

// buildGlyphUniform serializes the per-frame uniform block for f.
func buildGlyphUniform(f *render.Frame) []byte {
	buf := make([]byte, glyphUniformSize)
	// WGSL mat4x4 is column-major, the same layout as render.Mat4.
	for i, v := range f.Projection {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	putFloats(buf[64:], float32(f.Offset.X), float32(f.Offset.Y), f.Zoom, render.BandCount)
	return buf
}

// appendInstanceData appends one instance record per glyph to dst.
func appendInstanceData(dst []byte, glyphs []render.Glyph) []byte {
	for _, g := range glyphs {
		var rec [glyphInstanceStride]byte
		putFloats(rec[:], float32(g.X), float32(g.Y), float32(g.Code), 0)
		dst = append(dst, rec[:]...)
	}
	return dst
}

// putFloats writes vals as little-endian float32s into buf.
func putFloats(buf []byte, vals ...float32) {
	for i, v := range vals {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
}

func alignUp4(n int) int {
	return (n + 3) &^ 3
}
