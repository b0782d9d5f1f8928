package glyphpad

import "github.com/glyphpad/glyphpad/buffer"

// EditorOption configures an Editor during creation.
//
// Example:
//
//	// Start with some text loaded
//	ed := glyphpad.NewEditor(cfg, glyphpad.WithText([]byte("hello")))
type EditorOption func(*editorOptions)

// editorOptions holds optional configuration for Editor creation.
type editorOptions struct {
	buffer *buffer.Buffer
}

// defaultOptions returns the default editor options.
func defaultOptions() editorOptions {
	return editorOptions{
		buffer: nil, // Will be created empty if nil
	}
}

// WithBuffer makes the editor operate on b instead of a new empty buffer.
func WithBuffer(b *buffer.Buffer) EditorOption {
	return func(o *editorOptions) {
		o.buffer = b
	}
}

// WithText starts the editor with a copy of text, cursor at the end.
func WithText(text []byte) EditorOption {
	return func(o *editorOptions) {
		o.buffer = buffer.New(text)
	}
}
