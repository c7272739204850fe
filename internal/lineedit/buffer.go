// Package lineedit implements an interactive single-line editor on top of a
// raw mode terminal, with cursor movement and history recall.
package lineedit

// Buffer is an editable line of text with a cursor. The cursor is a rune
// index in [0, Len()].
type Buffer struct {
	text   []rune
	cursor int
}

// String returns the buffer contents.
func (b *Buffer) String() string {
	return string(b.text)
}

// Len returns the number of runes in the buffer.
func (b *Buffer) Len() int {
	return len(b.text)
}

// Cursor returns the cursor position.
func (b *Buffer) Cursor() int {
	return b.cursor
}

// Tail returns the text from the cursor to the end of the line.
func (b *Buffer) Tail() string {
	return string(b.text[b.cursor:])
}

// Insert places r at the cursor and advances the cursor past it.
func (b *Buffer) Insert(r rune) {
	if b.cursor == len(b.text) {
		b.text = append(b.text, r)
	} else {
		b.text = append(b.text, 0)
		copy(b.text[b.cursor+1:], b.text[b.cursor:])
		b.text[b.cursor] = r
	}
	b.cursor++
}

// Backspace deletes the rune before the cursor. It reports false, leaving the
// buffer untouched, when the cursor is at the start of the line.
func (b *Buffer) Backspace() bool {
	if b.cursor == 0 {
		return false
	}
	copy(b.text[b.cursor-1:], b.text[b.cursor:])
	b.text = b.text[:len(b.text)-1]
	b.cursor--
	return true
}

// Move shifts the cursor by delta, clamping to the line bounds. It returns
// the rune crossed by a single step and whether the cursor moved at all.
func (b *Buffer) Move(delta int) (rune, bool) {
	pos := min(max(b.cursor+delta, 0), len(b.text))
	if pos == b.cursor {
		return 0, false
	}

	var crossed rune
	if pos < b.cursor {
		crossed = b.text[pos]
	} else {
		crossed = b.text[b.cursor]
	}
	b.cursor = pos
	return crossed, true
}

// Set replaces the contents and moves the cursor to the end.
func (b *Buffer) Set(s string) {
	b.text = []rune(s)
	b.cursor = len(b.text)
}
