package psf

import (
	"unicode/utf8"

	"golang.org/x/image/font/basicfont"
	"golang.org/x/text/encoding/charmap"
)

// VGA cell baseline: 12 rows above, 4 rows below.
const (
	faceAscent  = 12
	faceDescent = GlyphHeight - faceAscent
)

// Face returns a fixed-cell font.Face backed by the glyph atlas.
//
// Runes are mapped to glyph codes through cm, the code page the font was
// drawn for. A nil cm maps rune r to code r for r < 256 (Latin-1).
// Runes outside the code page fall back to U+FFFD, which basicfont
// reports as missing unless the code page defines it.
func (f *Font) Face(cm *charmap.Charmap) *basicfont.Face {
	return &basicfont.Face{
		Advance: GlyphWidth,
		Width:   GlyphWidth,
		Height:  GlyphHeight,
		Ascent:  faceAscent,
		Descent: faceDescent,
		Mask:    f.Atlas(),
		Ranges:  codeRanges(cm),
	}
}

// codeRanges builds basicfont ranges from a code page, merging runs of
// consecutive runes that map to consecutive codes.
func codeRanges(cm *charmap.Charmap) []basicfont.Range {
	if cm == nil {
		return []basicfont.Range{{Low: 0, High: GlyphCount, Offset: 0}}
	}
	var ranges []basicfont.Range
	for code := 0; code < GlyphCount; code++ {
		r := cm.DecodeByte(byte(code))
		if r == utf8.RuneError {
			continue
		}
		if n := len(ranges); n > 0 {
			last := &ranges[n-1]
			if last.High == r && last.Offset+int(last.High-last.Low) == code {
				last.High++
				continue
			}
		}
		ranges = append(ranges, basicfont.Range{Low: r, High: r + 1, Offset: code})
	}
	return ranges
}
