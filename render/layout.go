package render

import "github.com/glyphpad/glyphpad/psf"

// Metrics describes the fixed character cell used for layout.
type Metrics struct {
	// CellWidth is the pen advance per glyph, in unscaled pixels.
	CellWidth int

	// CellHeight is the pen advance per line, in unscaled pixels.
	CellHeight int

	// TabWidth is the number of space glyphs drawn for a tab.
	TabWidth int
}

// DefaultMetrics returns the 8×16 cell of the bundled PSF fonts with
// four-space tabs.
func DefaultMetrics() Metrics {
	return Metrics{
		CellWidth:  psf.GlyphWidth,
		CellHeight: psf.GlyphHeight,
		TabWidth:   4,
	}
}

// Glyph is one quad to draw: an atlas band and an unscaled pen position.
type Glyph struct {
	Code byte
	X, Y int
}

// Layout walks text and calls emit for every glyph quad, in order.
//
// Tabs expand to TabWidth spaces from the current pen position, not to the
// next tab stop.
func Layout(text []byte, m Metrics, emit func(Glyph)) {
	x, y := 0, 0
	for _, c := range text {
		switch c {
		case '\n':
			x = 0
			y += m.CellHeight
		case '\r':
		case '\t':
			for i := 0; i < m.TabWidth; i++ {
				emit(Glyph{Code: ' ', X: x, Y: y})
				x += m.CellWidth
			}
		default:
			emit(Glyph{Code: c, X: x, Y: y})
			x += m.CellWidth
		}
	}
}

// AppendGlyphs appends the glyphs of text to dst and returns the result.
// Passing the previous frame's slice with length zero reuses its storage.
func AppendGlyphs(dst []Glyph, text []byte, m Metrics) []Glyph {
	Layout(text, m, func(g Glyph) {
		dst = append(dst, g)
	})
	return dst
}
