package render

import "github.com/glyphpad/glyphpad/psf"

// BandCount is the number of glyph bands stacked in the atlas.
const BandCount = psf.GlyphCount

// BandOffset returns the normalized vertical texture offset of the band
// for code.
func BandOffset(code byte) float32 {
	return float32(code) / BandCount
}

// TexCoordV maps a cell-local vertical texture coordinate (0 at the top of
// the cell, 1 at the bottom) to the atlas: (localV + code) / BandCount.
// The vertex shader performs the same computation.
func TexCoordV(localV float32, code byte) float32 {
	return localV/BandCount + BandOffset(code)
}
