package glyphpad

import (
	"image"
	"unicode"

	"github.com/glyphpad/glyphpad/buffer"
	"github.com/glyphpad/glyphpad/render"
)

// Editor is the whole application state: the text buffer, the view and the
// projection. It is driven by Handle and read by Frame, both from the window
// thread; it has no locks.
type Editor struct {
	cfg     Config
	metrics render.Metrics
	buf     *buffer.Buffer

	offset     image.Point
	projection render.Mat4
	width      int
	height     int
	fbWidth    int
	fbHeight   int
	dirty      bool

	glyphs []render.Glyph
}

// NewEditor returns an editor for a window of cfg.Width × cfg.Height.
// The first frame is marked dirty.
func NewEditor(cfg Config, opts ...EditorOption) *Editor {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.buffer == nil {
		o.buffer = &buffer.Buffer{}
	}
	e := &Editor{
		cfg:     cfg,
		metrics: cfg.Metrics(),
		buf:     o.buffer,
		dirty:   true,
	}
	e.resize(Resize{Width: cfg.Width, Height: cfg.Height})
	return e
}

// Handle applies ev and reports whether the editor needs to be redrawn.
func (e *Editor) Handle(ev Event) bool {
	var changed bool
	switch ev := ev.(type) {
	case TextInput:
		changed = e.typeText(ev.Text)
	case KeyEvent:
		changed = e.pressKey(ev)
	case Scroll:
		changed = e.scroll(ev.DY)
	case Resize:
		changed = e.resize(ev)
	default:
		Logger().Debug("unhandled event", "type", ev)
	}
	if changed {
		e.dirty = true
	}
	return changed
}

func (e *Editor) typeText(text string) bool {
	changed := false
	for _, r := range text {
		if unicode.IsControl(r) && r != '\t' {
			continue
		}
		c, ok := e.cfg.Charset.EncodeRune(r)
		if !ok {
			Logger().Debug("rune not in code page", "rune", string(r), "code", int(r))
			continue
		}
		if e.buf.InsertAtCursor(c) {
			changed = true
		}
	}
	return changed
}

func (e *Editor) pressKey(ev KeyEvent) bool {
	if ev.Action == Release {
		return false
	}
	switch ev.Key {
	case KeyEnter:
		return e.buf.InsertNewlineAtCursor()
	case KeyBackspace:
		return e.buf.DeleteBeforeCursor()
	case KeyDelete:
		return e.buf.DeleteAtCursor()
	case KeyLeft:
		return e.buf.MoveCursorLeft()
	case KeyRight:
		return e.buf.MoveCursorRight()
	}
	return false
}

func (e *Editor) scroll(dy float64) bool {
	step := int(dy * e.cfg.ScrollStep)
	if step == 0 {
		return false
	}
	e.offset.Y += step
	return true
}

// resize records the window size. A minimised window reports zero; the
// projection then keeps its last valid value.
func (e *Editor) resize(ev Resize) bool {
	width, height := ev.Width, ev.Height
	fbWidth, fbHeight := ev.FramebufferWidth, ev.FramebufferHeight
	if fbWidth == 0 && fbHeight == 0 {
		fbWidth, fbHeight = width, height
	}
	if width == e.width && height == e.height && fbWidth == e.fbWidth && fbHeight == e.fbHeight {
		return false
	}
	e.width, e.height = width, height
	e.fbWidth, e.fbHeight = fbWidth, fbHeight
	if width > 0 && height > 0 {
		e.projection = render.ScreenProjection(width, height)
	} else {
		Logger().Debug("degenerate window size, projection kept", "width", width, "height", height)
	}
	return true
}

// Frame lays out the buffer for drawing. The returned frame shares storage
// with the editor and is valid until the next call.
func (e *Editor) Frame() *render.Frame {
	e.glyphs = render.AppendGlyphs(e.glyphs[:0], e.buf.Bytes(), e.metrics)
	return &render.Frame{
		Glyphs:     e.glyphs,
		Metrics:    e.metrics,
		Projection: e.projection,
		Offset:     e.offset,
		Zoom:       e.cfg.Zoom,
		Width:      e.fbWidth,
		Height:     e.fbHeight,
	}
}

// Buffer returns the text buffer.
func (e *Editor) Buffer() *buffer.Buffer { return e.buf }

// Config returns the editor configuration.
func (e *Editor) Config() Config { return e.cfg }

// Offset returns the view scroll offset in window pixels.
func (e *Editor) Offset() image.Point { return e.offset }

// Projection returns the current window projection.
func (e *Editor) Projection() render.Mat4 { return e.projection }

// Size returns the last reported layout size.
func (e *Editor) Size() (width, height int) { return e.width, e.height }

// FramebufferSize returns the last reported size in physical pixels.
func (e *Editor) FramebufferSize() (width, height int) { return e.fbWidth, e.fbHeight }

// Dirty reports whether anything changed since the last ClearDirty.
func (e *Editor) Dirty() bool { return e.dirty }

// ClearDirty marks the current state as drawn.
func (e *Editor) ClearDirty() { e.dirty = false }
