package lineedit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/cancelreader"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/hay-kot/curlbaby/internal/core/history"
	"github.com/hay-kot/curlbaby/internal/terminal"
)

// ErrInterrupted is returned by ReadLine when the user presses Ctrl+C. The
// terminal has already been restored when it is returned.
var ErrInterrupted = errors.New("interrupted")

// RawModeFunc enters raw mode and returns the function that leaves it. It
// returns an error wrapping terminal.ErrTerminalUnavailable when raw mode is
// not supported, which makes the editor fall back to buffered input.
type RawModeFunc func() (release func() error, err error)

// Options configures an Editor.
type Options struct {
	In      io.Reader // defaults to os.Stdin
	Out     io.Writer // defaults to os.Stdout
	Prompt  string
	History *history.History // optional; submitted lines are added to it
	RawMode RawModeFunc      // defaults to raw mode on In when it is a terminal
	Logger  zerolog.Logger
}

// Editor reads lines from a terminal with in-line editing and history
// navigation. A single Editor must not be used by more than one goroutine.
type Editor struct {
	in      io.Reader
	out     io.Writer
	prompt  string
	history *history.History
	rawMode RawModeFunc
	log     zerolog.Logger

	buffered bool      // raw mode was unavailable; use lines
	lines    *lineFeed // line reader kept across fallback reads
	queue    *terminal.Queue
	pump     *pump // key reader kept across raw sessions
}

// New creates an Editor from opts.
func New(opts Options) *Editor {
	e := &Editor{
		in:      opts.In,
		out:     opts.Out,
		prompt:  opts.Prompt,
		history: opts.History,
		rawMode: opts.RawMode,
		log:     opts.Logger,
		queue:   terminal.NewQueue(),
	}
	if e.in == nil {
		e.in = os.Stdin
	}
	if e.out == nil {
		e.out = os.Stdout
	}
	if e.rawMode == nil {
		e.rawMode = rawModeFor(e.in)
	}
	return e
}

// SetPrompt sets the prompt printed before the line.
func (e *Editor) SetPrompt(prompt string) {
	e.prompt = prompt
}

// ReadLine reads one line of input. The returned line is exactly what was
// typed; it is not trimmed. Non-blank lines are recorded in the history.
//
// ReadLine returns ErrInterrupted on Ctrl+C and an error wrapping io.EOF when
// the input ends.
func (e *Editor) ReadLine(ctx context.Context) (string, error) {
	var (
		line string
		err  error
	)

	if !e.buffered {
		line, err = e.readRaw(ctx)
		if errors.Is(err, terminal.ErrTerminalUnavailable) {
			e.log.Debug().Err(err).Msg("raw mode unavailable, falling back to buffered input")
			e.buffered = true
		}
	}

	if e.buffered {
		line, err = e.readBuffered(ctx)
	}

	if err != nil {
		return "", err
	}

	if e.history != nil {
		e.history.Add(ctx, line)
	}
	return line, nil
}

// readRaw runs one interactive session: raw mode is held and a key reader
// goroutine feeds the queue until the line is submitted.
func (e *Editor) readRaw(ctx context.Context) (string, error) {
	release, err := e.rawMode()
	if err != nil {
		return "", err
	}
	defer func() {
		if err := release(); err != nil {
			e.log.Warn().Err(err).Msg("failed to restore terminal mode")
		}
	}()

	p, err := e.pumpFor(ctx)
	if err != nil {
		return "", err
	}
	defer e.park(p)

	s := &session{
		r:    renderer{out: e.out, prompt: e.prompt},
		hist: e.history,
		log:  e.log,
	}
	return s.run(ctx, e.queue)
}

// pump is a key reader goroutine feeding the editor queue.
type pump struct {
	cr   cancelreader.CancelReader // nil when the input cannot be canceled
	g    errgroup.Group
	done chan struct{}
}

func (p *pump) stopped() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// cancel stops the reader goroutine and reports whether it will return.
func (p *pump) cancel() bool {
	if p.cr == nil || !p.cr.Cancel() {
		return false
	}
	_ = p.g.Wait()
	return true
}

func (p *pump) close() error {
	if p.cr == nil {
		return nil
	}
	return p.cr.Close()
}

// pumpFor returns the reader for the next session. A pump kept from an
// earlier session is reused while it is still running. Keys queued after a
// submitted line carry over to the next session.
func (e *Editor) pumpFor(ctx context.Context) (*pump, error) {
	if p := e.pump; p != nil {
		e.pump = nil
		if !p.stopped() {
			return p, nil
		}
		_ = p.close()
	}

	p := &pump{done: make(chan struct{})}

	in := e.in
	if _, ok := e.in.(interface{ Fd() uintptr }); ok {
		cr, err := cancelreader.NewReader(e.in)
		if err != nil {
			return nil, fmt.Errorf("create input reader: %w", err)
		}
		p.cr = cr
		in = cr
	}

	reader := terminal.NewKeyReader(in, e.queue, e.log)
	p.g.Go(func() error {
		defer close(p.done)
		err := reader.Run(context.WithoutCancel(ctx))
		if err != nil {
			e.log.Debug().Err(err).Msg("key reader stopped with error")
		}
		return err
	})
	return p, nil
}

// park stops the pump after a session. A reader that cannot be canceled
// stays blocked until the next byte, so it is kept for the next session.
func (e *Editor) park(p *pump) {
	if !p.cancel() {
		e.pump = p
		return
	}
	_ = p.close()
}

// Close stops any reader kept between reads.
func (e *Editor) Close() error {
	var errs []error
	if f := e.lines; f != nil {
		e.lines = nil
		errs = append(errs, f.close())
	}
	if p := e.pump; p != nil {
		e.pump = nil
		p.cancel()
		errs = append(errs, p.close())
	}
	return errors.Join(errs...)
}

func rawModeFor(in io.Reader) RawModeFunc {
	return func() (func() error, error) {
		f, ok := in.(interface{ Fd() uintptr })
		if !ok {
			return nil, fmt.Errorf("%w: input is not a file", terminal.ErrTerminalUnavailable)
		}

		g, err := terminal.Acquire(int(f.Fd()))
		if err != nil {
			return nil, err
		}
		return g.Release, nil
	}
}

// session owns the line buffer for one ReadLine call.
type session struct {
	buf  Buffer
	r    renderer
	hist *history.History
	log  zerolog.Logger
}

func (s *session) run(ctx context.Context, q *terminal.Queue) (string, error) {
	if s.hist != nil {
		s.hist.Reset()
	}

	if err := s.r.redraw(&s.buf); err != nil {
		return "", fmt.Errorf("draw prompt: %w", err)
	}

	for {
		ev, err := q.Pop(ctx)
		if err != nil {
			return "", err
		}

		switch ev.Kind {
		case terminal.KeyChar:
			s.buf.Insert(ev.Rune)
			err = s.r.redraw(&s.buf)
		case terminal.KeyBackspace:
			if s.buf.Backspace() {
				err = s.r.redraw(&s.buf)
			}
		case terminal.KeyLeft:
			if r, ok := s.buf.Move(-1); ok {
				err = s.r.left(runewidth.RuneWidth(r))
			}
		case terminal.KeyRight:
			if r, ok := s.buf.Move(1); ok {
				err = s.r.right(runewidth.RuneWidth(r))
			}
		case terminal.KeyUp:
			if s.hist != nil && s.hist.Len() > 0 {
				err = s.load(s.hist.Previous())
			}
		case terminal.KeyDown:
			// Only moves while navigating; an edited line is not cleared.
			if s.hist != nil && s.hist.Navigating() {
				err = s.load(s.hist.Next())
			}
		case terminal.KeyEnter:
			return s.buf.String(), s.r.write("\r\n")
		case terminal.KeyInterrupt:
			_ = s.r.write("^C\r\n")
			return "", ErrInterrupted
		case terminal.KeyError:
			_ = s.r.write("\r\n")
			return "", fmt.Errorf("read input: %w", ev.Err)
		default:
			s.log.Trace().Msg("ignoring unrecognized key")
		}

		if err != nil {
			return "", fmt.Errorf("redraw line: %w", err)
		}
	}
}

// load replaces the buffer with a history entry.
func (s *session) load(text string) error {
	s.buf.Set(text)
	return s.r.redraw(&s.buf)
}
