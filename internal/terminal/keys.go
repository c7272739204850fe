// Package terminal handles raw terminal input: raw mode control, key decoding,
// and the background reader that feeds decoded keys to the line editor.
package terminal

import "fmt"

// KeyKind identifies the logical key carried by a KeyEvent.
type KeyKind int

const (
	KeyUnrecognized KeyKind = iota
	KeyChar
	KeyEnter
	KeyBackspace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyInterrupt
	// KeyError is the poison event sent when the input stream fails.
	KeyError
)

func (k KeyKind) String() string {
	switch k {
	case KeyChar:
		return "char"
	case KeyEnter:
		return "enter"
	case KeyBackspace:
		return "backspace"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyInterrupt:
		return "interrupt"
	case KeyError:
		return "error"
	default:
		return "unrecognized"
	}
}

// KeyEvent is a single decoded keystroke.
type KeyEvent struct {
	Kind KeyKind
	Rune rune  // set for KeyChar
	Err  error // set for KeyError
}

func (e KeyEvent) String() string {
	switch e.Kind {
	case KeyChar:
		return fmt.Sprintf("char(%q)", e.Rune)
	case KeyError:
		return fmt.Sprintf("error(%v)", e.Err)
	default:
		return e.Kind.String()
	}
}

// Char returns a KeyChar event for r.
func Char(r rune) KeyEvent {
	return KeyEvent{Kind: KeyChar, Rune: r}
}

// Key returns an event of the given kind with no payload.
func Key(kind KeyKind) KeyEvent {
	return KeyEvent{Kind: kind}
}
