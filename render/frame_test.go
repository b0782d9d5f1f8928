package render

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestQuadGeometry(t *testing.T) {
	v := QuadVertices(DefaultMetrics())
	want := [4]QuadVertex{
		{0, 16, 0, 1},
		{8, 16, 1, 1},
		{8, 0, 1, 0},
		{0, 0, 0, 0},
	}
	if v != want {
		t.Errorf("QuadVertices = %v, want %v", v, want)
	}
	if QuadIndices() != [6]uint16{0, 1, 2, 0, 2, 3} {
		t.Errorf("QuadIndices = %v", QuadIndices())
	}
}

func TestGlyphRect(t *testing.T) {
	f := &Frame{Metrics: DefaultMetrics(), Zoom: 2, Offset: image.Pt(0, -50)}
	got := f.GlyphRect(Glyph{Code: 'c', X: 8, Y: 16})
	want := image.Rect(16, -18, 32, 14)
	if got != want {
		t.Errorf("GlyphRect = %v, want %v", got, want)
	}
}

// testAtlas builds a BandCount-tall atlas where only band code is opaque.
func testAtlas(code byte) *image.RGBA {
	m := DefaultMetrics()
	img := image.NewRGBA(image.Rect(0, 0, m.CellWidth, m.CellHeight*BandCount))
	top := int(code) * m.CellHeight
	for y := top; y < top+m.CellHeight; y++ {
		for x := 0; x < m.CellWidth; x++ {
			img.SetRGBA(x, y, color.RGBA{255, 255, 255, 255})
		}
	}
	return img
}

func TestSoftwareRender(t *testing.T) {
	bg := color.RGBA{25, 0, 25, 255}
	sw := NewSoftware(testAtlas('#'), bg)
	m := DefaultMetrics()
	f := &Frame{
		Glyphs:     AppendGlyphs(nil, []byte("#.\n#"), m),
		Metrics:    m,
		Projection: ScreenProjection(64, 64),
		Zoom:       2,
		Width:      64,
		Height:     64,
	}
	dst := image.NewRGBA(f.Bounds())
	if err := sw.Render(dst, f); err != nil {
		t.Fatal(err)
	}

	white := color.RGBA{255, 255, 255, 255}
	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{0, 0, white},   // '#' at (0,0)
		{15, 31, white}, // last pixel of the zoomed cell
		{16, 0, bg},     // '.' band is transparent
		{0, 32, white},  // '#' on the second row
		{16, 32, bg},    // nothing drawn there
		{63, 63, bg},    // corner
	}
	for _, tt := range tests {
		if got := dst.RGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestSoftwareRenderOffset(t *testing.T) {
	bg := color.RGBA{0, 0, 0, 255}
	sw := NewSoftware(testAtlas('x'), bg)
	m := DefaultMetrics()
	f := &Frame{
		Glyphs:  []Glyph{{Code: 'x'}},
		Metrics: m,
		Zoom:    1,
		Offset:  image.Pt(0, -10),
		Width:   16,
		Height:  16,
	}
	dst := image.NewRGBA(f.Bounds())
	if err := sw.Render(dst, f); err != nil {
		t.Fatal(err)
	}
	if got := dst.RGBAAt(0, 5); got.R != 255 {
		t.Errorf("pixel (0,5) = %v, want glyph", got)
	}
	if got := dst.RGBAAt(0, 6); got != bg {
		t.Errorf("pixel (0,6) = %v, want background", got)
	}
}

func TestSoftwareRenderNilTarget(t *testing.T) {
	sw := NewSoftware(testAtlas(0), color.Black)
	err := sw.Render(nil, &Frame{Metrics: DefaultMetrics(), Zoom: 1})
	if !errors.Is(err, ErrNilTarget) {
		t.Errorf("Render(nil) = %v, want ErrNilTarget", err)
	}
}
