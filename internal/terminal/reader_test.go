package terminal

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, q *Queue) []KeyEvent {
	t.Helper()
	q.Close()

	var out []KeyEvent
	for {
		ev, err := q.Pop(context.Background())
		if errors.Is(err, ErrQueueClosed) {
			return out
		}
		require.NoError(t, err)
		out = append(out, ev)
	}
}

func TestKeyReader_PublishesEventsThenEOF(t *testing.T) {
	q := NewQueue()
	r := NewKeyReader(strings.NewReader("ab\x1b[D\r"), q, zerolog.Nop())

	require.NoError(t, r.Run(context.Background()))

	events := drain(t, q)
	require.Len(t, events, 5)
	assert.Equal(t, Char('a'), events[0])
	assert.Equal(t, Char('b'), events[1])
	assert.Equal(t, Key(KeyLeft), events[2])
	assert.Equal(t, Key(KeyEnter), events[3])
	assert.Equal(t, KeyError, events[4].Kind)
	assert.ErrorIs(t, events[4].Err, io.EOF)
}

func TestKeyReader_StopsAtInterrupt(t *testing.T) {
	q := NewQueue()
	r := NewKeyReader(strings.NewReader("a\x03bcd"), q, zerolog.Nop())

	require.NoError(t, r.Run(context.Background()))

	events := drain(t, q)
	assert.Equal(t, []KeyEvent{Char('a'), Key(KeyInterrupt)}, events)
}

func TestKeyReader_InterruptAfterPartialCharacter(t *testing.T) {
	q := NewQueue()
	r := NewKeyReader(strings.NewReader("\xc3\x03bcd"), q, zerolog.Nop())

	require.NoError(t, r.Run(context.Background()))

	events := drain(t, q)
	assert.Equal(t, []KeyEvent{Key(KeyUnrecognized), Key(KeyInterrupt)}, events)
}

type failingReader struct{ err error }

func (f failingReader) Read([]byte) (int, error) { return 0, f.err }

func TestKeyReader_ReadFailureIsPublished(t *testing.T) {
	boom := errors.New("device gone")
	q := NewQueue()
	r := NewKeyReader(failingReader{err: boom}, q, zerolog.Nop())

	err := r.Run(context.Background())
	require.ErrorIs(t, err, boom)

	events := drain(t, q)
	require.Len(t, events, 1)
	assert.Equal(t, KeyError, events[0].Kind)
	assert.ErrorIs(t, events[0].Err, boom)
}

func TestKeyReader_CanceledContext(t *testing.T) {
	q := NewQueue()
	r := NewKeyReader(strings.NewReader("abc"), q, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, r.Run(ctx))
	assert.Equal(t, 0, q.Len())
}
