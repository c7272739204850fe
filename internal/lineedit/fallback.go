package lineedit

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/muesli/cancelreader"
	"golang.org/x/sync/errgroup"
)

type lineResult struct {
	line string
	err  error
}

// lineFeed reads whole lines on its own goroutine so a buffered read can be
// abandoned when the context ends. It lives as long as the Editor.
type lineFeed struct {
	lines chan lineResult
	stop  chan struct{}
	cr    cancelreader.CancelReader // nil when the input cannot be canceled
	g     errgroup.Group
}

func (e *Editor) startLines() {
	f := &lineFeed{
		lines: make(chan lineResult),
		stop:  make(chan struct{}),
	}

	in := e.in
	if _, ok := e.in.(interface{ Fd() uintptr }); ok {
		// Regular files cannot be polled; they never block either.
		cr, err := cancelreader.NewReader(e.in)
		if err != nil {
			e.log.Debug().Err(err).Msg("buffered input is not cancelable")
		} else {
			f.cr = cr
			in = cr
		}
	}

	br := bufio.NewReader(in)
	f.g.Go(func() error {
		defer close(f.lines)
		for {
			line, err := br.ReadString('\n')
			if errors.Is(err, cancelreader.ErrCanceled) {
				return nil
			}

			res := lineResult{line: strings.TrimRight(line, "\r\n")}
			if err != nil {
				res.line = strings.TrimRight(line, "\r")
				// A final line without a trailing newline is still a line.
				if !errors.Is(err, io.EOF) || line == "" {
					res = lineResult{err: fmt.Errorf("read input: %w", err)}
				}
			}

			select {
			case f.lines <- res:
			case <-f.stop:
				return nil
			}
			if res.err != nil {
				return nil
			}
		}
	})

	e.lines = f
}

// close stops the feed. A reader that cannot be canceled is left blocked
// until its next line.
func (f *lineFeed) close() error {
	close(f.stop)
	if f.cr == nil {
		return nil
	}
	if f.cr.Cancel() {
		_ = f.g.Wait()
	}
	return f.cr.Close()
}

// readBuffered reads a line without raw mode. The terminal echoes and edits
// the line itself, so there is no history navigation here.
func (e *Editor) readBuffered(ctx context.Context) (string, error) {
	if e.lines == nil {
		e.startLines()
	}

	if _, err := io.WriteString(e.out, e.prompt); err != nil {
		return "", fmt.Errorf("write prompt: %w", err)
	}

	select {
	case res, ok := <-e.lines.lines:
		if !ok {
			return "", fmt.Errorf("read input: %w", io.EOF)
		}
		return res.line, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
