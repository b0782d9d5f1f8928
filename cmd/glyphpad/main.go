// Command glyphpad is a minimal bitmap-font text editor.
//
// Type to insert text at the cursor; Enter, Backspace, Delete, Left and
// Right edit and move; the mouse wheel scrolls the view. Closing the
// window exits. Held editing keys repeat. Set GLYPHPAD_LOG=debug for verbose logging on stderr.
package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"

	"github.com/glyphpad/glyphpad"
	"github.com/glyphpad/glyphpad/internal/gpu"
	"github.com/glyphpad/glyphpad/psf"
)

func main() {
	defaults := glyphpad.DefaultConfig()
	var (
		fontPath = flag.String("font", defaults.FontPath, "PSF1 font file")
		zoom     = flag.Float64("zoom", float64(defaults.Zoom), "glyph zoom factor")
		tabWidth = flag.Int("tab", defaults.TabWidth, "spaces drawn per tab")
	)
	flag.Parse()

	glyphpad.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(os.Getenv("GLYPHPAD_LOG")),
	})))
	log := glyphpad.Logger()

	cfg := defaults.
		WithFontPath(*fontPath).
		WithZoom(float32(*zoom)).
		WithTabWidth(*tabWidth)
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	font, err := psf.Load(cfg.FontPath)
	if err != nil {
		log.Error("cannot load font", "path", cfg.FontPath, "err", err)
		os.Exit(1)
	}
	atlas := font.Atlas()
	log.Info("font loaded", "path", cfg.FontPath, "atlas", atlas.Bounds().Size())

	ed := glyphpad.NewEditor(cfg)

	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle(cfg.Title).
		WithSize(cfg.Width, cfg.Height).
		WithContinuousRender(false))

	input := newRouter(ed, app.RequestRedraw, func() func() {
		return app.StartAnimation().Stop
	})

	var renderer *gpu.Renderer

	app.OnDraw(func(dc *gogpu.Context) {
		input.tick(time.Now())

		fbw, fbh := dc.FramebufferSize()
		ed.Handle(glyphpad.Resize{
			Width:             dc.Width(),
			Height:            dc.Height(),
			FramebufferWidth:  fbw,
			FramebufferHeight: fbh,
		})
		if w, h := ed.Size(); w <= 0 || h <= 0 {
			return
		}

		if renderer == nil {
			provider := app.GPUContextProvider()
			if provider == nil {
				return
			}
			device, queue, err := halDevice(provider)
			if err != nil {
				log.Error("cannot access GPU device", "err", err)
				os.Exit(1)
			}
			renderer, err = gpu.NewRenderer(device, queue, provider.SurfaceFormat(), atlas, cfg.Metrics())
			if err != nil {
				log.Error("cannot create renderer", "err", err)
				os.Exit(1)
			}
			renderer.SetClearColor(cfg.ClearColor)
			log.Info("renderer ready", "backend", dc.Backend(), "format", provider.SurfaceFormat())
		}

		view, err := halSurfaceView(dc.SurfaceView())
		if err != nil {
			log.Warn("frame skipped", "err", err)
			return
		}
		if err := renderer.Render(view, ed.Frame()); err != nil {
			log.Warn("render failed", "err", err)
			return
		}
		ed.ClearDirty()
	})

	events := app.EventSource()
	events.OnTextInput(func(text string) {
		input.dispatch(glyphpad.TextInput{Text: text})
	})
	events.OnKeyPress(func(key gpucontext.Key, _ gpucontext.Modifiers) {
		input.press(editorKey(key), time.Now())
	})
	events.OnKeyRelease(func(key gpucontext.Key, _ gpucontext.Modifiers) {
		input.release(editorKey(key))
	})
	events.OnScroll(func(_, dy float64) {
		input.dispatch(glyphpad.Scroll{DY: dy})
	})

	app.OnClose(func() {
		input.halt()
		renderer.Destroy()
		log.Info("renderer released")
	})

	if err := app.Run(); err != nil {
		log.Error("event loop", "err", err)
		os.Exit(1)
	}
}
