package gpu

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// ErrEmptyAtlas is returned when the atlas image has no pixels.
var ErrEmptyAtlas = errors.New("gpu: empty glyph atlas")

// GlyphAtlas is the immutable GPU copy of the glyph atlas: one RGBA8 texture
// holding every glyph band, its view and the sampler used to read it.
//
// The texture is written exactly once, in NewGlyphAtlas.
type GlyphAtlas struct {
	device  hal.Device
	texture hal.Texture
	view    hal.TextureView
	sampler hal.Sampler

	width, height uint32
	destroyed     bool
}

// NewGlyphAtlas uploads img to a new texture.
func NewGlyphAtlas(device hal.Device, queue hal.Queue, img *image.RGBA) (*GlyphAtlas, error) {
	if img == nil || img.Rect.Empty() {
		return nil, ErrEmptyAtlas
	}
	w := uint32(img.Rect.Dx()) //nolint:gosec // image dimensions are positive
	h := uint32(img.Rect.Dy()) //nolint:gosec // image dimensions are positive

	a := &GlyphAtlas{device: device, width: w, height: h}

	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "glyph_atlas",
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create glyph atlas texture: %w", err)
	}
	a.texture = tex

	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "glyph_atlas_view",
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		a.Destroy()
		return nil, fmt.Errorf("create glyph atlas view: %w", err)
	}
	a.view = view

	// Nearest magnification keeps the bitmap edges sharp at integer zoom.
	sampler, err := device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "glyph_atlas_sampler",
		AddressModeU: gputypes.AddressModeRepeat,
		AddressModeV: gputypes.AddressModeRepeat,
		AddressModeW: gputypes.AddressModeRepeat,
		MagFilter:    gputypes.FilterModeNearest,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeNearest,
	})
	if err != nil {
		a.Destroy()
		return nil, fmt.Errorf("create glyph atlas sampler: %w", err)
	}
	a.sampler = sampler

	err = queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
		},
		packedPixels(img),
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  w * 4,
			RowsPerImage: h,
		},
		&hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	)
	if err != nil {
		a.Destroy()
		return nil, fmt.Errorf("upload glyph atlas: %w", err)
	}

	slogger().Debug("glyph atlas uploaded", "width", w, "height", h)
	return a, nil
}

// packedPixels returns the pixels of img with no row padding.
func packedPixels(img *image.RGBA) []byte {
	rowBytes := img.Rect.Dx() * 4
	if img.Stride == rowBytes && len(img.Pix) == rowBytes*img.Rect.Dy() {
		return img.Pix
	}
	out := make([]byte, 0, rowBytes*img.Rect.Dy())
	for y := img.Rect.Min.Y; y < img.Rect.Max.Y; y++ {
		off := img.PixOffset(img.Rect.Min.X, y)
		out = append(out, img.Pix[off:off+rowBytes]...)
	}
	return out
}

// Size returns the texture size in pixels.
func (a *GlyphAtlas) Size() (width, height uint32) {
	return a.width, a.height
}

// View returns the texture view bound by the glyph pipeline.
func (a *GlyphAtlas) View() hal.TextureView { return a.view }

// Sampler returns the atlas sampler.
func (a *GlyphAtlas) Sampler() hal.Sampler { return a.sampler }

// Destroy releases the sampler, view and texture. Only the first call has
// any effect.
func (a *GlyphAtlas) Destroy() {
	if a == nil || a.destroyed {
		return
	}
	a.destroyed = true
	if a.sampler != nil {
		a.device.DestroySampler(a.sampler)
		a.sampler = nil
	}
	if a.view != nil {
		a.device.DestroyTextureView(a.view)
		a.view = nil
	}
	if a.texture != nil {
		a.device.DestroyTexture(a.texture)
		a.texture = nil
	}
}
