package main

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/glyphpad/glyphpad"
)

// fakeProvider hands out a device that is not a wgpu device.
type fakeProvider struct{}

func (fakeProvider) Device() gpucontext.Device             { return struct{}{} }
func (fakeProvider) Queue() gpucontext.Queue               { return struct{}{} }
func (fakeProvider) Adapter() gpucontext.Adapter           { return nil }
func (fakeProvider) AdapterInfo() gpucontext.AdapterInfo   { return gpucontext.AdapterInfo{} }
func (fakeProvider) SurfaceFormat() gputypes.TextureFormat { return gputypes.TextureFormatBGRA8Unorm }

func TestEditorKey(t *testing.T) {
	tests := []struct {
		in   gpucontext.Key
		want glyphpad.Key
	}{
		{gpucontext.KeyEnter, glyphpad.KeyEnter},
		{gpucontext.KeyBackspace, glyphpad.KeyBackspace},
		{gpucontext.KeyDelete, glyphpad.KeyDelete},
		{gpucontext.KeyLeft, glyphpad.KeyLeft},
		{gpucontext.KeyRight, glyphpad.KeyRight},
		{gpucontext.KeySpace, glyphpad.KeyUnknown},
	}
	for _, tt := range tests {
		if got := editorKey(tt.in); got != tt.want {
			t.Errorf("editorKey(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"info", slog.LevelInfo},
		{"DEBUG", slog.LevelDebug},
		{" warn ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestHalDeviceErrors(t *testing.T) {
	if _, _, err := halDevice(nil); !errors.Is(err, errNoProvider) {
		t.Errorf("halDevice(nil) = %v, want errNoProvider", err)
	}
	if _, _, err := halDevice(fakeProvider{}); !errors.Is(err, errForeignDevice) {
		t.Errorf("halDevice(fake) = %v, want errForeignDevice", err)
	}
}

func TestHalSurfaceViewNil(t *testing.T) {
	if _, err := halSurfaceView(nil); !errors.Is(err, errNoSurface) {
		t.Errorf("halSurfaceView(nil) = %v, want errNoSurface", err)
	}
}

// fakeWindow counts redraw requests and running animations.
type fakeWindow struct {
	redraws int
	running int
	started int
}

func (w *fakeWindow) redraw() { w.redraws++ }

func (w *fakeWindow) animate() func() {
	w.running++
	w.started++
	return func() { w.running-- }
}

func newTestRouter(text string) (*router, *fakeWindow) {
	ed := glyphpad.NewEditor(glyphpad.DefaultConfig(), glyphpad.WithText([]byte(text)))
	ed.ClearDirty()
	w := &fakeWindow{}
	return newRouter(ed, w.redraw, w.animate), w
}

func TestRouterRedrawsOnChange(t *testing.T) {
	r, w := newTestRouter("")

	r.dispatch(glyphpad.TextInput{Text: "€"})
	if w.redraws != 0 {
		t.Errorf("redraws = %d after dropped input, want 0", w.redraws)
	}
	r.dispatch(glyphpad.TextInput{Text: "a"})
	if w.redraws != 1 {
		t.Errorf("redraws = %d after insert, want 1", w.redraws)
	}
	r.ed.ClearDirty()
	r.dispatch(glyphpad.Scroll{DY: 1})
	if w.redraws != 2 {
		t.Errorf("redraws = %d after scroll, want 2", w.redraws)
	}
}

func TestRouterTimedRepeat(t *testing.T) {
	r, w := newTestRouter("")
	t0 := time.Unix(0, 0)

	r.press(glyphpad.KeyEnter, t0)
	if got := r.ed.Buffer().String(); got != "\n" {
		t.Fatalf("after press buffer = %q, want one newline", got)
	}
	if w.running != 1 {
		t.Fatalf("running animations = %d, want 1", w.running)
	}

	steps := []struct {
		at   time.Duration
		want int
	}{
		{100 * time.Millisecond, 1},
		{repeatDelay - time.Millisecond, 1},
		{repeatDelay, 2},
		{repeatDelay + 10*time.Millisecond, 2},
		{repeatDelay + repeatInterval, 3},
		// A late frame emits one repeat, not a backlog.
		{repeatDelay + 10*repeatInterval, 4},
	}
	for _, s := range steps {
		r.tick(t0.Add(s.at))
		if got := len(r.ed.Buffer().String()); got != s.want {
			t.Errorf("tick at %v: %d newlines, want %d", s.at, got, s.want)
		}
	}

	r.release(glyphpad.KeyEnter)
	if w.running != 0 {
		t.Errorf("running animations = %d after release, want 0", w.running)
	}
	r.tick(t0.Add(time.Hour))
	if got := len(r.ed.Buffer().String()); got != 4 {
		t.Errorf("tick after release changed buffer: %d newlines", got)
	}
}

func TestRouterWindowSystemRepeat(t *testing.T) {
	r, w := newTestRouter("abc")
	t0 := time.Unix(0, 0)

	r.press(glyphpad.KeyBackspace, t0)
	r.press(glyphpad.KeyBackspace, t0.Add(repeatDelay))
	if got := r.ed.Buffer().String(); got != "a" {
		t.Fatalf("buffer = %q, want %q", got, "a")
	}
	if w.started != 1 {
		t.Errorf("animations started = %d, want 1", w.started)
	}

	// The window system repeats, so frames add nothing.
	r.tick(t0.Add(time.Second))
	if got := r.ed.Buffer().String(); got != "a" {
		t.Errorf("tick repeated a window-repeated key: %q", got)
	}
}

func TestRouterKeySwitch(t *testing.T) {
	r, w := newTestRouter("abc")
	t0 := time.Unix(0, 0)

	r.press(glyphpad.KeyLeft, t0)
	r.press(glyphpad.KeyBackspace, t0.Add(time.Millisecond))
	if w.started != 2 || w.running != 1 {
		t.Errorf("started %d running %d, want 2 and 1", w.started, w.running)
	}

	// Releasing the earlier key leaves the newer one repeating.
	r.release(glyphpad.KeyLeft)
	if w.running != 1 {
		t.Errorf("running = %d after releasing the old key, want 1", w.running)
	}
	r.tick(t0.Add(time.Millisecond + repeatDelay))
	if got := r.ed.Buffer().String(); got != "c" {
		t.Errorf("buffer = %q, want %q", got, "c")
	}

	r.press(glyphpad.KeyUnknown, t0)
	if w.started != 2 {
		t.Error("unknown key started an animation")
	}
}
