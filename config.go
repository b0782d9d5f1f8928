package glyphpad

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/gogpu/gputypes"
	"golang.org/x/text/encoding/charmap"

	"github.com/glyphpad/glyphpad/psf"
	"github.com/glyphpad/glyphpad/render"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("glyphpad: invalid config")

// Config holds the editor settings. The zero value is not usable; start from
// DefaultConfig and chain With* calls:
//
//	cfg := glyphpad.DefaultConfig().
//		WithTitle("notes").
//		WithZoom(3)
type Config struct {
	// Title is the window title.
	Title string

	// Width and Height are the initial window size in pixels.
	Width, Height int

	// FontPath is the PSF1 font loaded at startup.
	FontPath string

	// Zoom scales every glyph.
	Zoom float32

	// ScrollStep is the pixel offset per unit of wheel movement.
	ScrollStep float64

	// TabWidth is the number of spaces drawn for a tab.
	TabWidth int

	// Charset maps typed runes to glyph codes.
	Charset *charmap.Charmap

	// ClearColor is the window background.
	ClearColor gputypes.Color
}

// DefaultConfig returns the stock editor settings: a 600×600 window titled
// "Text Editor", the bundled VGA font at zoom 2, code page 437 input and a
// dark purple background.
func DefaultConfig() Config {
	return Config{
		Title:      "Text Editor",
		Width:      600,
		Height:     600,
		FontPath:   "fonts/vga16.psf",
		Zoom:       2,
		ScrollStep: 50,
		TabWidth:   4,
		Charset:    charmap.CodePage437,
		ClearColor: gputypes.Color{R: 0.1, G: 0, B: 0.1, A: 1},
	}
}

// WithTitle returns a copy of c with the window title set.
func (c Config) WithTitle(title string) Config {
	c.Title = title
	return c
}

// WithSize returns a copy of c with the initial window size set.
func (c Config) WithSize(width, height int) Config {
	c.Width, c.Height = width, height
	return c
}

// WithFontPath returns a copy of c loading the font at path.
func (c Config) WithFontPath(path string) Config {
	c.FontPath = path
	return c
}

// WithZoom returns a copy of c with the glyph zoom set.
func (c Config) WithZoom(zoom float32) Config {
	c.Zoom = zoom
	return c
}

// WithScrollStep returns a copy of c with the scroll step set.
func (c Config) WithScrollStep(step float64) Config {
	c.ScrollStep = step
	return c
}

// WithTabWidth returns a copy of c with the tab width set.
func (c Config) WithTabWidth(n int) Config {
	c.TabWidth = n
	return c
}

// WithCharset returns a copy of c with the input code page set.
func (c Config) WithCharset(cm *charmap.Charmap) Config {
	c.Charset = cm
	return c
}

// WithClearColor returns a copy of c with the background set.
func (c Config) WithClearColor(col gputypes.Color) Config {
	c.ClearColor = col
	return c
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.FontPath == "":
		return fmt.Errorf("%w: empty font path", ErrInvalidConfig)
	case c.Zoom <= 0:
		return fmt.Errorf("%w: zoom %v", ErrInvalidConfig, c.Zoom)
	case c.TabWidth < 0:
		return fmt.Errorf("%w: tab width %d", ErrInvalidConfig, c.TabWidth)
	case c.Charset == nil:
		return fmt.Errorf("%w: nil charset", ErrInvalidConfig)
	}
	return nil
}

// Metrics returns the layout cell for the bundled font with the configured
// tab width.
func (c Config) Metrics() render.Metrics {
	return render.Metrics{
		CellWidth:  psf.GlyphWidth,
		CellHeight: psf.GlyphHeight,
		TabWidth:   c.TabWidth,
	}
}

// ClearRGBA returns ClearColor as 8-bit RGBA for the CPU backend.
func (c Config) ClearRGBA() color.RGBA {
	to8 := func(v float64) uint8 {
		v = min(max(v, 0), 1)
		return uint8(v*255 + 0.5)
	}
	return color.RGBA{
		R: to8(c.ClearColor.R),
		G: to8(c.ClearColor.G),
		B: to8(c.ClearColor.B),
		A: to8(c.ClearColor.A),
	}
}
