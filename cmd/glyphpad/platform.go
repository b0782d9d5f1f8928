package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu"
	"github.com/gogpu/wgpu/hal"

	"github.com/glyphpad/glyphpad"
)

var (
	errNoProvider    = errors.New("glyphpad: no GPU device provider")
	errForeignDevice = errors.New("glyphpad: provider device is not a wgpu device")
	errNoSurface     = errors.New("glyphpad: no surface view")
)

// halDevice unwraps the HAL device and queue shared by the window.
func halDevice(provider gpucontext.DeviceProvider) (hal.Device, hal.Queue, error) {
	if provider == nil {
		return nil, nil, errNoProvider
	}
	dev, ok := provider.Device().(*wgpu.Device)
	if !ok || dev == nil {
		return nil, nil, fmt.Errorf("%w: %T", errForeignDevice, provider.Device())
	}
	device, queue := dev.HalDevice(), dev.HalQueue()
	if device == nil || queue == nil {
		return nil, nil, fmt.Errorf("%w: HAL device unavailable", errForeignDevice)
	}
	return device, queue, nil
}

// halSurfaceView unwraps the current swapchain view. The window hands out
// nil when no frame is acquired.
func halSurfaceView(sv *wgpu.TextureView) (hal.TextureView, error) {
	if sv == nil {
		return nil, errNoSurface
	}
	view := sv.HalTextureView()
	if view == nil {
		return nil, errNoSurface
	}
	return view, nil
}

// Key repeat timing used when the window system does not repeat held keys.
const (
	repeatDelay    = 500 * time.Millisecond
	repeatInterval = 33 * time.Millisecond
)

// router feeds window events into the editor and asks for a redraw when
// one changed the buffer or the view. The window only draws on request,
// so a held editing key keeps an animation running and tick produces the
// Repeat events. If the window system repeats the key itself (a second
// press without a release), the synthetic repeat stays off for that hold.
type router struct {
	ed      *glyphpad.Editor
	redraw  func()
	animate func() (stop func())

	held     glyphpad.Key
	next     time.Time
	osRepeat bool
	stop     func()
}

func newRouter(ed *glyphpad.Editor, redraw func(), animate func() (stop func())) *router {
	return &router{ed: ed, redraw: redraw, animate: animate}
}

// dispatch hands ev to the editor. Dirty stays set until a frame is
// presented, so a failed frame is requested again on the next event.
func (r *router) dispatch(ev glyphpad.Event) {
	r.ed.Handle(ev)
	if r.ed.Dirty() {
		r.redraw()
	}
}

func (r *router) press(k glyphpad.Key, now time.Time) {
	if k == glyphpad.KeyUnknown {
		return
	}
	if k == r.held {
		r.osRepeat = true
		r.dispatch(glyphpad.KeyEvent{Key: k, Action: glyphpad.Repeat})
		return
	}
	r.dispatch(glyphpad.KeyEvent{Key: k, Action: glyphpad.Press})
	r.held = k
	r.next = now.Add(repeatDelay)
	r.osRepeat = false
	r.halt()
	r.stop = r.animate()
}

func (r *router) release(k glyphpad.Key) {
	if k == glyphpad.KeyUnknown {
		return
	}
	r.dispatch(glyphpad.KeyEvent{Key: k, Action: glyphpad.Release})
	if k == r.held {
		r.held = glyphpad.KeyUnknown
		r.halt()
	}
}

// tick runs once per drawn frame and emits at most one Repeat.
func (r *router) tick(now time.Time) {
	if r.held == glyphpad.KeyUnknown || r.osRepeat || now.Before(r.next) {
		return
	}
	r.dispatch(glyphpad.KeyEvent{Key: r.held, Action: glyphpad.Repeat})
	r.next = now.Add(repeatInterval)
}

// halt stops the running animation, if any.
func (r *router) halt() {
	if r.stop != nil {
		r.stop()
		r.stop = nil
	}
}

// editorKey maps a window key to an editing key. Keys the editor does not
// use map to KeyUnknown.
func editorKey(k gpucontext.Key) glyphpad.Key {
	switch k {
	case gpucontext.KeyEnter:
		return glyphpad.KeyEnter
	case gpucontext.KeyBackspace:
		return glyphpad.KeyBackspace
	case gpucontext.KeyDelete:
		return glyphpad.KeyDelete
	case gpucontext.KeyLeft:
		return glyphpad.KeyLeft
	case gpucontext.KeyRight:
		return glyphpad.KeyRight
	}
	return glyphpad.KeyUnknown
}

// parseLevel reads a GLYPHPAD_LOG value. Unknown or empty values select
// info.
func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
