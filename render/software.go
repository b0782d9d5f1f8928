package render

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// Software draws frames into an RGBA image on the CPU. It produces the same
// pixels as the GPU path for integer zoom factors and is used for headless
// output and tests.
type Software struct {
	atlas      *image.RGBA
	background color.Color
}

// NewSoftware returns a CPU backend sampling glyphs from atlas, a single
// column of BandCount cells as produced by psf.Font.Atlas.
func NewSoftware(atlas *image.RGBA, background color.Color) *Software {
	return &Software{atlas: atlas, background: background}
}

// Render clears dst and draws every glyph of f. Projection is not used:
// the CPU path works in window pixels directly.
func (s *Software) Render(dst *image.RGBA, f *Frame) error {
	if dst == nil {
		return ErrNilTarget
	}
	draw.Draw(dst, dst.Bounds(), image.NewUniform(s.background), image.Point{}, draw.Src)

	ab := s.atlas.Bounds()
	ah := float32(ab.Dy())
	for _, g := range f.Glyphs {
		dr := f.GlyphRect(g)
		if !dr.Overlaps(dst.Bounds()) {
			continue
		}
		// Same band selection as the vertex shader.
		top := ab.Min.Y + int(TexCoordV(0, g.Code)*ah)
		bottom := ab.Min.Y + int(TexCoordV(1, g.Code)*ah)
		sr := image.Rect(ab.Min.X, top, ab.Min.X+f.Metrics.CellWidth, bottom)
		xdraw.NearestNeighbor.Scale(dst, dr, s.atlas, sr, xdraw.Over, nil)
	}
	return nil
}
