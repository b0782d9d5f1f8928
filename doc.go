// Package glyphpad is a minimal bitmap-font text editor.
//
// # Overview
//
// glyphpad keeps one editable byte buffer with a single cursor and draws
// every byte as a textured quad sampled from a glyph atlas built from a PSF1
// console font. The window, event loop and surface come from gogpu; the
// drawing goes through the wgpu HAL.
//
// # Quick Start
//
//	cfg := glyphpad.DefaultConfig()
//	ed := glyphpad.NewEditor(cfg)
//
//	ed.Handle(glyphpad.TextInput{Text: "hi"})
//	ed.Handle(glyphpad.KeyEvent{Key: glyphpad.KeyEnter})
//	ed.Handle(glyphpad.Scroll{DY: -1})
//
//	frame := ed.Frame() // glyph quads, projection, offset, zoom
//
// # Input
//
// Window callbacks are translated into the Event types (TextInput,
// KeyEvent, Scroll, Resize) and dispatched with Editor.Handle, which reports
// whether a redraw is needed. Typed runes are mapped to glyph codes through
// the configured code page (code page 437 by default); runes outside it are
// dropped.
//
// # Packages
//
//   - psf: PSF1 font parsing and atlas expansion
//   - buffer: the text buffer and cursor
//   - render: layout, projection and the CPU backend
//   - internal/gpu: the GPU backend
//   - cmd/glyphpad: the editor binary
//   - cmd/glyphdump: PNG previews of fonts and text
//
// # Logging
//
// Nothing is logged by default. Call SetLogger with a *slog.Logger to
// enable output; the logger is shared with the GPU renderer.
package glyphpad
