package glyphpad

// Event is an input event delivered to Editor.Handle. The concrete types
// are TextInput, KeyEvent, Scroll and Resize.
type Event interface {
	isEvent()
}

// TextInput is text typed by the user after keyboard layout and input
// method processing.
type TextInput struct {
	Text string
}

// Key identifies an editing key.
type Key int

// Editing keys. Printable characters arrive as TextInput instead.
const (
	KeyUnknown Key = iota
	KeyEnter
	KeyBackspace
	KeyDelete
	KeyLeft
	KeyRight
)

var keyNames = [...]string{
	KeyUnknown:   "Unknown",
	KeyEnter:     "Enter",
	KeyBackspace: "Backspace",
	KeyDelete:    "Delete",
	KeyLeft:      "Left",
	KeyRight:     "Right",
}

func (k Key) String() string {
	if k < 0 || int(k) >= len(keyNames) {
		return "Unknown"
	}
	return keyNames[k]
}

// Action is the key transition.
type Action int

// Key actions. Release is delivered but never edits.
const (
	Press Action = iota
	Repeat
	Release
)

// KeyEvent is an editing key transition.
type KeyEvent struct {
	Key    Key
	Action Action
}

// Scroll is wheel movement; positive DY scrolls content down.
type Scroll struct {
	DX, DY float64
}

// Resize reports the new window size. Width and Height are the layout
// size the projection maps; FramebufferWidth and FramebufferHeight are the
// physical pixels the viewport covers. A zero framebuffer size means the
// same as the layout size.
type Resize struct {
	Width, Height                       int
	FramebufferWidth, FramebufferHeight int
}

func (TextInput) isEvent() {}
func (KeyEvent) isEvent()  {}
func (Scroll) isEvent()    {}
func (Resize) isEvent()    {}
