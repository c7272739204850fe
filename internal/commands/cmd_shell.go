package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/curlbaby/internal/lineedit"
	"github.com/hay-kot/curlbaby/internal/printer"
	"github.com/hay-kot/curlbaby/internal/shell"
)

type ShellCmd struct {
	flags *Flags

	noBanner bool
}

// NewShellCmd creates the interactive shell command
func NewShellCmd(flags *Flags) *ShellCmd {
	return &ShellCmd{flags: flags}
}

// Flags returns the shell flags for registration on the root command
func (cmd *ShellCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "no-banner",
			Usage:       "do not print the banner on startup",
			Sources:     cli.EnvVars("CURLBABY_NO_BANNER"),
			Destination: &cmd.noBanner,
		},
	}
}

// Run executes the shell. Exported for use as default command.
func (cmd *ShellCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *ShellCmd) run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config
	if cfg == nil {
		return fmt.Errorf("configuration not loaded")
	}

	// Signals end the shell through ctx so the terminal is restored by the
	// editor and history is flushed on the way out.
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	var (
		hist = openHistory(ctx, cfg, log.With().Str("component", "history").Logger())
		out  = c.Root().Writer
	)
	if out == nil {
		out = os.Stdout
	}

	editor := lineedit.New(lineedit.Options{
		In:      os.Stdin,
		Out:     out,
		History: hist,
		Logger:  log.With().Str("component", "lineedit").Logger(),
	})
	defer func() { _ = editor.Close() }()

	sh := shell.New(shell.Options{
		Reader:      editor,
		History:     hist,
		Out:         out,
		Printer:     printer.New(out),
		Prompt:      cfg.Prompt,
		Banner:      cfg.Banner && !cmd.noBanner,
		Interactive: term.IsTerminal(int(os.Stdin.Fd())),
		// The exit status is returned to main so deferred logs are flushed.
		Exit:   func(int) {},
		Logger: log.With().Str("component", "shell").Logger(),
	})

	err := sh.Run(ctx)
	if errors.Is(err, lineedit.ErrInterrupted) {
		return cli.Exit("", shell.ExitInterrupted)
	}
	return err
}
