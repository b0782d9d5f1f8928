// Package render turns editor text into positioned glyph quads and holds the
// geometry shared by the GPU and CPU backends.
//
// The per-frame flow is:
//
//	text -> Layout -> []Glyph -> Frame -> backend (internal/gpu or Software)
//
// Layout walks the bytes with a pen starting at (0, 0). A newline resets
// the pen to the start of the next row, a carriage return is skipped, a tab
// draws four space glyphs, and any other byte draws one glyph.
//
// Every glyph is the same unit quad (QuadVertices, QuadIndices) placed at
// its pen position, scaled by the frame zoom, shifted by the view offset and
// finally mapped to clip space by the projection:
//
//	pixel = (local + pen) * zoom + offset
//	clip  = Projection * pixel
//
// Texture coordinates select the glyph band in the atlas with TexCoordV.
package render
