// Command glyphdump renders text or a font atlas to PNG without a window.
//
// Modes:
//
//	frame  lay out -text the way the editor does and draw it on the CPU
//	face   draw -text with the font as a golang.org/x/image/font.Face
//	atlas  write the raw glyph atlas, one 8×16 band per code
package main

import (
	"flag"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"log"
	"os"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/glyphpad/glyphpad"
	"github.com/glyphpad/glyphpad/psf"
	"github.com/glyphpad/glyphpad/render"
)

func main() {
	defaults := glyphpad.DefaultConfig()
	var (
		fontPath = flag.String("font", defaults.FontPath, "PSF1 font file")
		text     = flag.String("text", "Hello, glyphpad!\n\tÇa va?", "text to draw")
		mode     = flag.String("mode", "frame", "frame, face or atlas")
		width    = flag.Int("width", defaults.Width, "image width")
		height   = flag.Int("height", defaults.Height, "image height")
		zoom     = flag.Float64("zoom", float64(defaults.Zoom), "glyph zoom factor (frame mode)")
		scroll   = flag.Float64("scroll", 0, "wheel units applied before drawing (frame mode)")
		output   = flag.String("output", "glyphs.png", "output file")
	)
	flag.Parse()

	fnt, err := psf.Load(*fontPath)
	if err != nil {
		log.Fatalf("Failed to load font: %v", err)
	}

	cfg := defaults.
		WithFontPath(*fontPath).
		WithSize(*width, *height).
		WithZoom(float32(*zoom))
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Bad options: %v", err)
	}

	var img image.Image
	switch *mode {
	case "frame":
		img, err = drawFrame(cfg, fnt, *text, *scroll)
	case "face":
		img = drawFace(cfg, fnt, *text)
	case "atlas":
		img = fnt.Atlas()
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Fatalf("Failed to draw: %v", err)
	}

	if err := savePNG(*output, img); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("%s saved to %s (%dx%d)\n", *mode, *output, img.Bounds().Dx(), img.Bounds().Dy())
}

// drawFrame replays text through an editor and renders its frame.
func drawFrame(cfg glyphpad.Config, fnt *psf.Font, text string, scroll float64) (*image.RGBA, error) {
	ed := glyphpad.NewEditor(cfg)
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			ed.Handle(glyphpad.KeyEvent{Key: glyphpad.KeyEnter})
		}
		ed.Handle(glyphpad.TextInput{Text: line})
	}
	if scroll != 0 {
		ed.Handle(glyphpad.Scroll{DY: scroll})
	}

	dst := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	sw := render.NewSoftware(fnt.Atlas(), cfg.ClearRGBA())
	if err := sw.Render(dst, ed.Frame()); err != nil {
		return nil, err
	}
	return dst, nil
}

// drawFace draws text line by line through the font.Face adapter at 1×.
func drawFace(cfg glyphpad.Config, fnt *psf.Font, text string) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(cfg.ClearRGBA()), image.Point{}, draw.Src)

	face := fnt.Face(cfg.Charset)
	d := &font.Drawer{Dst: dst, Src: image.White, Face: face}
	lineHeight := face.Metrics().Height
	dot := fixed.Point26_6{Y: face.Metrics().Ascent}
	for _, line := range strings.Split(text, "\n") {
		d.Dot = dot
		d.DrawString(strings.ReplaceAll(line, "\t", strings.Repeat(" ", cfg.TabWidth)))
		dot.Y += lineHeight
	}
	return dst
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
