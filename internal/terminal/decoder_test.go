package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func decodeAll(input []byte) []KeyEvent {
	var (
		d   Decoder
		out []KeyEvent
	)
	for _, b := range input {
		out = d.Feed(out, b)
	}
	return out
}

func TestDecoder_Feed(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  []KeyEvent
	}{
		{
			name:  "printable characters",
			input: []byte("get"),
			want:  []KeyEvent{Char('g'), Char('e'), Char('t')},
		},
		{
			name:  "carriage return is enter",
			input: []byte{'a', 0x0D},
			want:  []KeyEvent{Char('a'), Key(KeyEnter)},
		},
		{
			name:  "line feed is enter",
			input: []byte{0x0A},
			want:  []KeyEvent{Key(KeyEnter)},
		},
		{
			name:  "delete and backspace",
			input: []byte{0x7F, 0x08},
			want:  []KeyEvent{Key(KeyBackspace), Key(KeyBackspace)},
		},
		{
			name:  "ctrl c is interrupt",
			input: []byte{0x03},
			want:  []KeyEvent{Key(KeyInterrupt)},
		},
		{
			name:  "arrow keys",
			input: []byte("\x1b[A\x1b[B\x1b[C\x1b[D"),
			want:  []KeyEvent{Key(KeyUp), Key(KeyDown), Key(KeyRight), Key(KeyLeft)},
		},
		{
			name:  "escape followed by non bracket drops both bytes",
			input: []byte("\x1bxa"),
			want:  []KeyEvent{Char('a')},
		},
		{
			name:  "unknown csi final byte is discarded",
			input: []byte("\x1b[Zb"),
			want:  []KeyEvent{Char('b')},
		},
		{
			name:  "delete key sequence leaves tilde",
			input: []byte("\x1b[3~"),
			want:  []KeyEvent{Char('~')},
		},
		{
			name:  "other control bytes are unrecognized",
			input: []byte{0x01, 0x04},
			want:  []KeyEvent{Key(KeyUnrecognized), Key(KeyUnrecognized)},
		},
		{
			name:  "multi byte utf8",
			input: []byte("é→"),
			want:  []KeyEvent{Char('é'), Char('→')},
		},
		{
			name:  "stray continuation byte",
			input: []byte{0x80, 'a'},
			want:  []KeyEvent{Key(KeyUnrecognized), Char('a')},
		},
		{
			name:  "truncated utf8 sequence",
			input: []byte{0xE2, 'a', 'b'},
			want:  []KeyEvent{Key(KeyUnrecognized), Char('a'), Char('b')},
		},
		{
			name:  "interrupt after partial utf8 still interrupts",
			input: []byte{0xC3, 0x03},
			want:  []KeyEvent{Key(KeyUnrecognized), Key(KeyInterrupt)},
		},
		{
			name:  "enter after partial utf8 still submits",
			input: []byte{0xC3, 0x0D},
			want:  []KeyEvent{Key(KeyUnrecognized), Key(KeyEnter)},
		},
		{
			name:  "arrow after partial utf8 is decoded",
			input: []byte{0xC3, 0x1B, '[', 'A'},
			want:  []KeyEvent{Key(KeyUnrecognized), Key(KeyUp)},
		},
		{
			name:  "new lead byte restarts the sequence",
			input: []byte{0xE2, 0xC3, 0xA9},
			want:  []KeyEvent{Key(KeyUnrecognized), Char('é')},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decodeAll(tt.input))
		})
	}
}

func TestDecoder_States(t *testing.T) {
	var d Decoder
	assert.Equal(t, "normal", d.State())

	assert.Empty(t, d.Feed(nil, 0x1B))
	assert.Equal(t, "seen-escape", d.State())

	assert.Empty(t, d.Feed(nil, '['))
	assert.Equal(t, "seen-bracket", d.State())

	assert.Equal(t, []KeyEvent{Key(KeyUp)}, d.Feed(nil, 'A'))
	assert.Equal(t, "normal", d.State())
}
