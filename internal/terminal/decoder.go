package terminal

import "unicode/utf8"

// Input bytes with special meaning in raw mode.
const (
	byteInterrupt = 0x03 // Ctrl+C
	byteBackspace = 0x08
	byteNewline   = 0x0A
	byteReturn    = 0x0D
	byteEscape    = 0x1B
	byteBracket   = '['
	byteDelete    = 0x7F
)

type decodeState int

const (
	stateNormal decodeState = iota
	stateEscape
	stateBracket
)

func (s decodeState) String() string {
	switch s {
	case stateEscape:
		return "seen-escape"
	case stateBracket:
		return "seen-bracket"
	default:
		return "normal"
	}
}

// Decoder turns raw input bytes into key events. It recognizes the CSI
// arrow sequences (ESC [ A..D) and UTF-8 encoded characters. The zero value
// is ready to use.
//
// An ESC followed by anything other than '[' is dropped together with that
// byte, so a lone ESC keystroke never produces an event.
type Decoder struct {
	state   decodeState
	pending []byte // partial UTF-8 sequence
}

// Feed consumes one byte and appends the keys it completes to dst. Most
// bytes complete at most one key; a byte that breaks off a partial UTF-8
// sequence yields an unrecognized key for the sequence followed by its own.
func (d *Decoder) Feed(dst []KeyEvent, b byte) []KeyEvent {
	switch d.state {
	case stateEscape:
		d.state = stateNormal
		if b == byteBracket {
			d.state = stateBracket
		}
		return dst

	case stateBracket:
		d.state = stateNormal
		switch b {
		case 'A':
			return append(dst, Key(KeyUp))
		case 'B':
			return append(dst, Key(KeyDown))
		case 'C':
			return append(dst, Key(KeyRight))
		case 'D':
			return append(dst, Key(KeyLeft))
		default:
			return dst
		}
	}

	if len(d.pending) > 0 {
		if !utf8.RuneStart(b) {
			return d.feedUTF8(dst, b)
		}
		d.pending = d.pending[:0]
		dst = append(dst, Key(KeyUnrecognized))
	}

	switch {
	case b == byteEscape:
		d.state = stateEscape
		return dst
	case b == byteReturn || b == byteNewline:
		return append(dst, Key(KeyEnter))
	case b == byteDelete || b == byteBackspace:
		return append(dst, Key(KeyBackspace))
	case b == byteInterrupt:
		return append(dst, Key(KeyInterrupt))
	case b < 0x20:
		return append(dst, Key(KeyUnrecognized))
	case b < utf8.RuneSelf:
		return append(dst, Char(rune(b)))
	default:
		return d.feedUTF8(dst, b)
	}
}

// State reports the current decoder state, for diagnostics.
func (d *Decoder) State() string {
	return d.state.String()
}

// feedUTF8 accumulates a multi-byte character. A sequence that does not
// decode is reported as a single unrecognized key.
func (d *Decoder) feedUTF8(dst []KeyEvent, b byte) []KeyEvent {
	d.pending = append(d.pending, b)
	if !utf8.FullRune(d.pending) {
		return dst
	}

	r, _ := utf8.DecodeRune(d.pending)
	d.pending = d.pending[:0]
	if r == utf8.RuneError {
		return append(dst, Key(KeyUnrecognized))
	}
	return append(dst, Char(r))
}
