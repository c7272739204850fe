// Package shell runs the interactive read-eval loop: it renders the prompt,
// reads a line, handles the built-in commands and passes everything else to
// a Dispatcher.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog"

	"github.com/hay-kot/curlbaby/internal/core/history"
	"github.com/hay-kot/curlbaby/internal/lineedit"
	"github.com/hay-kot/curlbaby/internal/printer"
	"github.com/hay-kot/curlbaby/internal/styles"
	"github.com/hay-kot/curlbaby/pkg/tmpl"
)

// ExitInterrupted is the process status used when the user presses Ctrl+C.
const ExitInterrupted = 130

// LineReader reads one line of user input.
type LineReader interface {
	ReadLine(ctx context.Context) (string, error)
	SetPrompt(prompt string)
}

// Dispatcher executes a command the shell does not handle itself.
type Dispatcher interface {
	Dispatch(ctx context.Context, line string) error
}

// DispatcherFunc adapts a function to Dispatcher.
type DispatcherFunc func(ctx context.Context, line string) error

// Dispatch calls f.
func (f DispatcherFunc) Dispatch(ctx context.Context, line string) error {
	return f(ctx, line)
}

// UnknownCommand is the Dispatcher used when none is configured.
var UnknownCommand = DispatcherFunc(func(_ context.Context, line string) error {
	name, _, _ := strings.Cut(line, " ")
	return fmt.Errorf("unknown command %q, type 'help' for a list of commands", name)
})

// Options configures a Shell.
type Options struct {
	Reader     LineReader
	History    *history.History
	Dispatcher Dispatcher       // defaults to UnknownCommand
	Out        io.Writer        // defaults to os.Stdout
	Printer    *printer.Printer // defaults to a printer on Out
	Prompt     string           // prompt template, see tmpl.PromptData
	Banner     bool
	// Interactive is set when the terminal supports in-line editing, which
	// enables the history navigation tip.
	Interactive bool
	// Exit terminates the process; defaults to os.Exit.
	Exit   func(code int)
	Logger zerolog.Logger
}

// Shell is the interactive command loop.
type Shell struct {
	reader      LineReader
	history     *history.History
	dispatcher  Dispatcher
	out         io.Writer
	p           *printer.Printer
	prompt      string
	banner      bool
	interactive bool
	exit        func(int)
	log         zerolog.Logger
}

// New creates a Shell from opts.
func New(opts Options) *Shell {
	s := &Shell{
		reader:      opts.Reader,
		history:     opts.History,
		dispatcher:  opts.Dispatcher,
		out:         opts.Out,
		prompt:      opts.Prompt,
		banner:      opts.Banner,
		interactive: opts.Interactive,
		p:           opts.Printer,
		exit:        opts.Exit,
		log:         opts.Logger,
	}
	if s.history == nil {
		s.history = history.New(history.Options{Logger: opts.Logger})
	}
	if s.dispatcher == nil {
		s.dispatcher = UnknownCommand
	}
	if s.out == nil {
		s.out = os.Stdout
	}
	if s.prompt == "" {
		s.prompt = "> "
	}
	if s.exit == nil {
		s.exit = os.Exit
	}
	if s.p == nil {
		s.p = printer.New(s.out)
	}
	return s
}

// Run reads and executes commands until the user exits, input ends or ctx
// is canceled. History is closed before Run returns. On Ctrl+C the exit
// function is called with ExitInterrupted after history is flushed.
func (s *Shell) Run(ctx context.Context) error {
	s.greet()

	for {
		s.reader.SetPrompt(s.renderPrompt())

		line, err := s.reader.ReadLine(ctx)
		if err != nil {
			return s.stop(ctx, err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if done := s.execute(ctx, line); done {
			s.p.Infof("Goodbye!")
			s.closeHistory(ctx)
			return nil
		}
	}
}

// stop handles the error that ended the loop.
func (s *Shell) stop(ctx context.Context, err error) error {
	s.closeHistory(ctx)

	switch {
	case errors.Is(err, lineedit.ErrInterrupted):
		s.log.Debug().Msg("interrupted")
		s.exit(ExitInterrupted)
		return err
	case errors.Is(err, io.EOF):
		s.p.Infof("Goodbye!")
		return nil
	case ctx.Err() != nil:
		s.log.Debug().Err(ctx.Err()).Msg("shell canceled")
		return nil
	default:
		return fmt.Errorf("read line: %w", err)
	}
}

// execute runs a trimmed, non-empty line and reports whether the shell
// should exit.
func (s *Shell) execute(ctx context.Context, line string) bool {
	fields := strings.Fields(line)

	switch strings.ToLower(fields[0]) {
	case "exit", "quit":
		return true
	case "help":
		s.help()
	case "clear", "cls":
		_, _ = io.WriteString(s.out, ansi.EraseEntireScreen+ansi.CursorHomePosition)
	case "history":
		s.historyCmd(ctx, fields[1:])
	default:
		if err := s.dispatcher.Dispatch(ctx, line); err != nil {
			s.p.Errorf("%v", err)
		}
	}
	return false
}

func (s *Shell) historyCmd(ctx context.Context, args []string) {
	switch {
	case len(args) == 0:
		entries := s.history.Entries()
		if len(entries) == 0 {
			s.p.Hintf("No command history yet")
			return
		}
		width := len(fmt.Sprint(len(entries)))
		for i, cmd := range entries {
			s.p.Printf("%*d  %s", width, i+1, cmd)
		}
	case len(args) == 1 && strings.EqualFold(args[0], "clear"):
		if err := s.history.Clear(ctx); err != nil {
			s.p.Errorf("%v", err)
			return
		}
		s.p.Successf("Command history cleared")
	default:
		s.p.Errorf("usage: history [clear]")
	}
}

func (s *Shell) help() {
	builtins := []struct{ name, desc string }{
		{"help", "show this help"},
		{"history", "list previous commands"},
		{"history clear", "delete all saved commands"},
		{"clear, cls", "clear the screen"},
		{"exit, quit", "leave curlbaby"},
	}

	s.p.Printf("%s", s.p.Bold("Built-in commands"))
	for _, b := range builtins {
		s.p.Printf("  %s %s", styles.CommandStyle.Render(fmt.Sprintf("%-14s", b.name)), b.desc)
	}
	if s.interactive {
		s.p.Printf("")
		s.p.Hintf("Keys: ←/→ move the cursor, ↑/↓ browse history, Ctrl+C quits")
	}
}

func (s *Shell) greet() {
	if s.banner {
		_, _ = fmt.Fprintln(s.out, styles.BannerStyle.Render(styles.Banner))
		_, _ = fmt.Fprintln(s.out, styles.TaglineStyle.Render(" an interactive HTTP client"))
		_, _ = fmt.Fprintln(s.out)
	}
	if s.interactive {
		s.p.Hintf("Use ↑/↓ to browse command history. Type 'help' for commands.")
	}
}

// renderPrompt renders the prompt template. A template that fails to render
// falls back to the raw template text.
func (s *Shell) renderPrompt() string {
	text, err := tmpl.Render(s.prompt, tmpl.NewPromptData(s.history.Len()))
	if err != nil {
		s.log.Debug().Err(err).Msg("failed to render prompt")
		text = s.prompt
	}
	return styles.PromptStyle.Render(text)
}

func (s *Shell) closeHistory(ctx context.Context) {
	if err := s.history.Close(context.WithoutCancel(ctx)); err != nil {
		s.log.Warn().Err(err).Msg("failed to save command history")
	}
}
