package render

import (
	"errors"
	"image"
)

// ErrNilTarget is returned when a backend is asked to draw into nothing.
var ErrNilTarget = errors.New("render: nil target")

// QuadVertex is one corner of the shared glyph quad: a cell-local position
// in unscaled pixels and a cell-local texture coordinate.
type QuadVertex struct {
	X, Y float32
	U, V float32
}

// QuadVertices returns the four corners of the glyph quad for m, in the
// order bottom-left, bottom-right, top-right, top-left.
func QuadVertices(m Metrics) [4]QuadVertex {
	w, h := float32(m.CellWidth), float32(m.CellHeight)
	return [4]QuadVertex{
		{X: 0, Y: h, U: 0, V: 1},
		{X: w, Y: h, U: 1, V: 1},
		{X: w, Y: 0, U: 1, V: 0},
		{X: 0, Y: 0, U: 0, V: 0},
	}
}

// QuadIndices returns the two triangles of the glyph quad.
func QuadIndices() [6]uint16 {
	return [6]uint16{0, 1, 2, 0, 2, 3}
}

// Frame is everything a backend needs to draw one editor frame.
type Frame struct {
	Glyphs     []Glyph
	Metrics    Metrics
	Projection Mat4

	// Offset is the view scroll offset in window pixels.
	Offset image.Point

	// Zoom scales every glyph about the pen origin.
	Zoom float32

	// Width and Height are the size of the target in pixels.
	Width, Height int
}

// GlyphRect returns the window-pixel rectangle covered by g in f.
func (f *Frame) GlyphRect(g Glyph) image.Rectangle {
	x0 := float32(g.X)*f.Zoom + float32(f.Offset.X)
	y0 := float32(g.Y)*f.Zoom + float32(f.Offset.Y)
	x1 := float32(g.X+f.Metrics.CellWidth)*f.Zoom + float32(f.Offset.X)
	y1 := float32(g.Y+f.Metrics.CellHeight)*f.Zoom + float32(f.Offset.Y)
	return image.Rect(int(x0), int(y0), int(x1), int(y1))
}

// Bounds returns the target rectangle of f.
func (f *Frame) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.Width, f.Height)
}
