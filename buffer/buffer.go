// Package buffer implements the editable text of the editor: an ordered
// sequence of single-byte character cells with one insertion cursor.
//
// The cursor always satisfies 0 <= Cursor() <= Len(). Every operation is
// total: edits at a boundary are no-ops instead of errors. Each operation
// reports whether it changed the content or the cursor, which callers use
// to decide whether a redraw is needed.
//
// Buffer is slice backed, so mid-buffer edits are O(n). It is not safe for
// concurrent use.
package buffer

// Newline is the cell inserted by InsertNewlineAtCursor.
const Newline byte = '\n'

// Buffer is a byte sequence with an insertion cursor.
// The zero value is an empty buffer with the cursor at 0.
type Buffer struct {
	cells  []byte
	cursor int
}

// New returns a buffer holding a copy of text with the cursor at the end.
func New(text []byte) *Buffer {
	cells := make([]byte, len(text))
	copy(cells, text)
	return &Buffer{cells: cells, cursor: len(cells)}
}

// Len returns the number of cells.
func (b *Buffer) Len() int {
	return len(b.cells)
}

// Cursor returns the cursor index.
func (b *Buffer) Cursor() int {
	return b.cursor
}

// Bytes returns the buffer content. The slice aliases the buffer and is
// valid only until the next edit.
func (b *Buffer) Bytes() []byte {
	return b.cells
}

// String returns a copy of the content.
func (b *Buffer) String() string {
	return string(b.cells)
}

// InsertAtCursor inserts c immediately before the cursor and advances the
// cursor past it.
func (b *Buffer) InsertAtCursor(c byte) bool {
	b.cells = append(b.cells, 0)
	copy(b.cells[b.cursor+1:], b.cells[b.cursor:])
	b.cells[b.cursor] = c
	b.cursor++
	return true
}

// InsertNewlineAtCursor inserts a newline cell at the cursor.
func (b *Buffer) InsertNewlineAtCursor() bool {
	return b.InsertAtCursor(Newline)
}

// DeleteBeforeCursor removes the cell before the cursor and moves the
// cursor back. It is a no-op at the start of the buffer.
func (b *Buffer) DeleteBeforeCursor() bool {
	if b.cursor == 0 {
		return false
	}
	b.cursor--
	b.remove(b.cursor)
	return true
}

// DeleteAtCursor removes the cell at the cursor. The cursor does not move.
// It is a no-op at the end of the buffer.
func (b *Buffer) DeleteAtCursor() bool {
	if b.cursor == len(b.cells) {
		return false
	}
	b.remove(b.cursor)
	return true
}

// MoveCursorLeft moves the cursor one cell left, stopping at 0.
func (b *Buffer) MoveCursorLeft() bool {
	if b.cursor == 0 {
		return false
	}
	b.cursor--
	return true
}

// MoveCursorRight moves the cursor one cell right, stopping at Len.
func (b *Buffer) MoveCursorRight() bool {
	if b.cursor == len(b.cells) {
		return false
	}
	b.cursor++
	return true
}

func (b *Buffer) remove(i int) {
	copy(b.cells[i:], b.cells[i+1:])
	b.cells = b.cells[:len(b.cells)-1]
}
