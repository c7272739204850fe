package lineedit

import (
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// renderer draws the prompt and buffer on a raw mode terminal. It only
// repaints the current line and positions the cursor with relative moves.
type renderer struct {
	out    io.Writer
	prompt string
}

// redraw erases the line, prints the prompt and buffer, then moves the
// terminal cursor back over the text that follows the buffer cursor.
func (r *renderer) redraw(b *Buffer) error {
	var sb strings.Builder
	sb.WriteString(ansi.EraseEntireLine)
	sb.WriteByte('\r')
	sb.WriteString(r.prompt)
	sb.WriteString(b.String())
	if cols := runewidth.StringWidth(b.Tail()); cols > 0 {
		sb.WriteString(ansi.CursorBackward(cols))
	}
	return r.write(sb.String())
}

func (r *renderer) left(cols int) error {
	if cols <= 0 {
		return nil
	}
	return r.write(ansi.CursorBackward(cols))
}

func (r *renderer) right(cols int) error {
	if cols <= 0 {
		return nil
	}
	return r.write(ansi.CursorForward(cols))
}

func (r *renderer) write(s string) error {
	_, err := io.WriteString(r.out, s)
	return err
}
