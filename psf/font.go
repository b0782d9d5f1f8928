// Package psf loads PSF1 bitmap console fonts and expands them into a glyph
// atlas suitable for GPU upload.
//
// Only one variant is accepted: 256 glyphs, 1 bit per pixel, 8×16 cells.
// That is the layout of the VGA console fonts this editor ships with.
//
// The atlas is a single column of glyph bands stacked by code:
//
//	y = code*GlyphHeight ... code*GlyphHeight + GlyphHeight-1
//
// Set bits become opaque white, unset bits fully transparent black.
package psf

import (
	"fmt"
	"image"
	"os"
)

// PSF1 layout constants.
const (
	// Magic0 and Magic1 are the PSF1 signature bytes.
	Magic0 = 0x36
	Magic1 = 0x04

	// Mode256 is the only accepted mode: 256 glyphs, 1 bit per pixel.
	Mode256 = 2

	// HeaderSize is the size of the magic, mode and size fields.
	HeaderSize = 4

	// GlyphCount is the number of glyphs in a Mode256 font.
	GlyphCount = 256

	// GlyphWidth is the cell width in pixels.
	GlyphWidth = 8

	// GlyphHeight is the cell height in pixels, and the bytes per glyph.
	GlyphHeight = 16

	// RowBytes is the packed size of one glyph row (GlyphWidth rounded up
	// to a byte boundary).
	RowBytes = (GlyphWidth + 7) / 8
)

// glyphBytes is the packed size of a single glyph.
const glyphBytes = GlyphHeight * RowBytes

// Font is a parsed PSF1 font. It is immutable after Parse.
type Font struct {
	glyphs []byte // GlyphCount * glyphBytes, owned copy
}

// Parse validates a PSF1 font and returns its glyph table.
//
// The header is checked field by field before any glyph byte is read.
// Bytes after the glyph table (such as a unicode table) are ignored.
func Parse(data []byte) (*Font, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes, need %d", ErrShortHeader, len(data), HeaderSize)
	}
	if data[0] != Magic0 || data[1] != Magic1 {
		return nil, fmt.Errorf("%w: %#02x %#02x", ErrBadMagic, data[0], data[1])
	}
	mode, size := data[2], data[3]
	if mode != Mode256 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedMode, mode)
	}
	if size != GlyphHeight {
		return nil, fmt.Errorf("%w: %d bytes per glyph, want %d", ErrGlyphSize, size, GlyphHeight)
	}

	body := data[HeaderSize:]
	need := GlyphCount * glyphBytes
	if len(body) < need {
		return nil, fmt.Errorf("%w: %d glyph bytes, need %d", ErrTruncated, len(body), need)
	}

	glyphs := make([]byte, need)
	copy(glyphs, body[:need])
	return &Font{glyphs: glyphs}, nil
}

// Load reads and parses the font file at path.
func Load(path string) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("psf: read font: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Glyph returns the packed rows of the glyph for code.
// The returned slice aliases the font and must not be modified.
func (f *Font) Glyph(code byte) []byte {
	off := int(code) * glyphBytes
	return f.glyphs[off : off+glyphBytes : off+glyphBytes]
}

// Set reports whether pixel (x, y) of the glyph for code is set.
// Coordinates outside the cell report false.
func (f *Font) Set(code byte, x, y int) bool {
	if x < 0 || x >= GlyphWidth || y < 0 || y >= GlyphHeight {
		return false
	}
	row := f.Glyph(code)[y*RowBytes+x/8]
	return row&(0x80>>(x%8)) != 0
}

// Atlas expands every glyph into RGBA pixels.
//
// The image is GlyphWidth wide and GlyphHeight*GlyphCount tall; its Pix
// slice is exactly GlyphWidth*GlyphHeight*GlyphCount*4 bytes, row-major,
// with bands in code order.
func (f *Font) Atlas() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, GlyphWidth, GlyphHeight*GlyphCount))
	i := 0
	for code := 0; code < GlyphCount; code++ {
		for y := 0; y < GlyphHeight; y++ {
			for x := 0; x < GlyphWidth; x++ {
				if f.Set(byte(code), x, y) {
					img.Pix[i+0] = 255
					img.Pix[i+1] = 255
					img.Pix[i+2] = 255
					img.Pix[i+3] = 255
				}
				// Unset pixels keep the zero value (0,0,0,0).
				i += 4
			}
		}
	}
	return img
}
