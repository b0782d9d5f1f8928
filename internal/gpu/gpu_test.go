package gpu

import (
	"image"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/glyphpad/glyphpad/render"
)

// createNoopDevice creates a noop device and queue for testing.
// Returns the device, queue, and a cleanup function.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue, func()) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	cleanup := func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	return openDev.Device, openDev.Queue, cleanup
}

// countingDevice counts resource creation and destruction.
type countingDevice struct {
	hal.Device

	buffersCreated, buffersDestroyed int
	textures, views, samplers        int
	bindGroups, pipelines, layouts   int
	shaders, pipeLayouts             int
	waitIdle                         int

	draws     []drawCall
	viewports [][4]float32
}

// drawCall is one recorded DrawIndexed.
type drawCall struct {
	indexCount, instanceCount, firstIndex uint32
	baseVertex                            int32
	firstInstance                         uint32
}

func (d *countingDevice) CreateCommandEncoder(desc *hal.CommandEncoderDescriptor) (hal.CommandEncoder, error) {
	enc, err := d.Device.CreateCommandEncoder(desc)
	if err != nil {
		return nil, err
	}
	return &recordingEncoder{CommandEncoder: enc, dev: d}, nil
}

// recordingEncoder wraps every render pass it begins so draws land on dev.
type recordingEncoder struct {
	hal.CommandEncoder
	dev *countingDevice
}

func (e *recordingEncoder) BeginRenderPass(desc *hal.RenderPassDescriptor) hal.RenderPassEncoder {
	return &recordingPass{RenderPassEncoder: e.CommandEncoder.BeginRenderPass(desc), dev: e.dev}
}

type recordingPass struct {
	hal.RenderPassEncoder
	dev *countingDevice
}

func (p *recordingPass) SetViewport(x, y, width, height, minDepth, maxDepth float32) {
	p.dev.viewports = append(p.dev.viewports, [4]float32{x, y, width, height})
	p.RenderPassEncoder.SetViewport(x, y, width, height, minDepth, maxDepth)
}

func (p *recordingPass) DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32) {
	p.dev.draws = append(p.dev.draws, drawCall{indexCount, instanceCount, firstIndex, baseVertex, firstInstance})
	p.RenderPassEncoder.DrawIndexed(indexCount, instanceCount, firstIndex, baseVertex, firstInstance)
}

func (d *countingDevice) CreateBuffer(desc *hal.BufferDescriptor) (hal.Buffer, error) {
	d.buffersCreated++
	return d.Device.CreateBuffer(desc)
}

func (d *countingDevice) DestroyBuffer(b hal.Buffer) {
	d.buffersDestroyed++
	d.Device.DestroyBuffer(b)
}

func (d *countingDevice) DestroyTexture(t hal.Texture) {
	d.textures++
	d.Device.DestroyTexture(t)
}

func (d *countingDevice) DestroyTextureView(v hal.TextureView) {
	d.views++
	d.Device.DestroyTextureView(v)
}

func (d *countingDevice) DestroySampler(s hal.Sampler) {
	d.samplers++
	d.Device.DestroySampler(s)
}

func (d *countingDevice) DestroyBindGroup(g hal.BindGroup) {
	d.bindGroups++
	d.Device.DestroyBindGroup(g)
}

func (d *countingDevice) DestroyRenderPipeline(p hal.RenderPipeline) {
	d.pipelines++
	d.Device.DestroyRenderPipeline(p)
}

func (d *countingDevice) DestroyPipelineLayout(l hal.PipelineLayout) {
	d.pipeLayouts++
	d.Device.DestroyPipelineLayout(l)
}

func (d *countingDevice) DestroyBindGroupLayout(l hal.BindGroupLayout) {
	d.layouts++
	d.Device.DestroyBindGroupLayout(l)
}

func (d *countingDevice) DestroyShaderModule(m hal.ShaderModule) {
	d.shaders++
	d.Device.DestroyShaderModule(m)
}

func (d *countingDevice) WaitIdle() error {
	d.waitIdle++
	return d.Device.WaitIdle()
}

// recordingQueue keeps the last bytes written to each buffer.
type recordingQueue struct {
	hal.Queue

	writes   map[hal.Buffer][]byte
	textures int
}

func newRecordingQueue(q hal.Queue) *recordingQueue {
	return &recordingQueue{Queue: q, writes: make(map[hal.Buffer][]byte)}
}

func (q *recordingQueue) WriteBuffer(buf hal.Buffer, offset uint64, data []byte) error {
	q.writes[buf] = append([]byte(nil), data...)
	return q.Queue.WriteBuffer(buf, offset, data)
}

func (q *recordingQueue) WriteTexture(dst *hal.ImageCopyTexture, data []byte, layout *hal.ImageDataLayout, size *hal.Extent3D) error {
	q.textures++
	return q.Queue.WriteTexture(dst, data, layout, size)
}

// testAtlas returns a blank atlas image of the default cell layout.
func testAtlas() *image.RGBA {
	m := render.DefaultMetrics()
	return image.NewRGBA(image.Rect(0, 0, m.CellWidth, m.CellHeight*render.BandCount))
}
