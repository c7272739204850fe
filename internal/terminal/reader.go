package terminal

import (
	"context"
	"errors"
	"io"

	"github.com/muesli/cancelreader"
	"github.com/rs/zerolog"
)

// KeyReader reads raw input one byte at a time, decodes it and publishes the
// resulting key events to a Queue. A KeyReader serves a single line-editing
// session.
type KeyReader struct {
	in    io.Reader
	queue *Queue
	log   zerolog.Logger
	dec   Decoder
}

// NewKeyReader creates a reader publishing events decoded from in to q.
func NewKeyReader(in io.Reader, q *Queue, log zerolog.Logger) *KeyReader {
	return &KeyReader{in: in, queue: q, log: log}
}

// Run reads until the input is canceled, fails, or an interrupt key is seen.
// A read failure is published as a KeyError event before Run returns it, so
// the consumer never waits on a reader that has stopped.
func (r *KeyReader) Run(ctx context.Context) error {
	buf := make([]byte, 1)
	var events []KeyEvent

	for {
		if ctx.Err() != nil {
			return nil
		}

		n, err := r.in.Read(buf)
		if n == 1 {
			events = r.dec.Feed(events[:0], buf[0])
			for _, ev := range events {
				r.log.Trace().Stringer("key", ev).Msg("key decoded")
				r.queue.Push(ev)
				if ev.Kind == KeyInterrupt {
					return nil
				}
			}
		}

		if err != nil {
			if errors.Is(err, cancelreader.ErrCanceled) {
				r.log.Debug().Msg("key reader canceled")
				return nil
			}
			r.queue.Push(KeyEvent{Kind: KeyError, Err: err})
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}
