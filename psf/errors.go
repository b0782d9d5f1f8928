package psf

import "errors"

// Sentinel errors for the psf package. Parse wraps them with the offending
// values, so callers should match with errors.Is.
var (
	// ErrShortHeader is returned when the data is smaller than the 4-byte header.
	ErrShortHeader = errors.New("psf: short header")

	// ErrBadMagic is returned when the first two bytes are not 0x36 0x04.
	ErrBadMagic = errors.New("psf: bad magic")

	// ErrUnsupportedMode is returned for any mode other than 256 glyphs, 1 bpp.
	ErrUnsupportedMode = errors.New("psf: unsupported mode")

	// ErrGlyphSize is returned when the per-glyph byte size is not GlyphHeight.
	ErrGlyphSize = errors.New("psf: unsupported glyph size")

	// ErrTruncated is returned when the glyph table is shorter than 256 glyphs.
	ErrTruncated = errors.New("psf: truncated glyph table")
)
