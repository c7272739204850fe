package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/MakeNowJust/heredoc"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/curlbaby/internal/core/history"
	"github.com/hay-kot/curlbaby/internal/printer"
)

type HistoryCmd struct {
	flags *Flags

	// Command-specific flags
	clear bool
	limit int
}

// NewHistoryCmd creates a new history command
func NewHistoryCmd(flags *Flags) *HistoryCmd {
	return &HistoryCmd{flags: flags}
}

// Register adds the history command to the application
func (cmd *HistoryCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "history",
		Usage:     "View or clear saved shell history",
		UsageText: "curlbaby history [options]",
		Description: heredoc.Doc(`
			Lists the commands saved by the interactive shell, oldest first.

			Use --limit to show only the most recent commands and --clear to
			delete the saved history. The history backend and file are taken
			from the configuration.
		`),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "clear",
				Usage:       "delete all saved commands",
				Destination: &cmd.clear,
			},
			&cli.IntFlag{
				Name:        "limit",
				Aliases:     []string{"n"},
				Usage:       "show only the last N commands (0 shows all)",
				Destination: &cmd.limit,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *HistoryCmd) run(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	if cmd.flags.Config == nil {
		return fmt.Errorf("configuration not loaded")
	}

	store, err := openStore(ctx, cmd.flags.Config)
	if err != nil {
		return err
	}
	if store == nil {
		p.Warnf("History backend is memory; nothing is saved between runs")
		return nil
	}
	defer func() { _ = store.Close() }()

	if cmd.clear {
		return cmd.runClear(ctx, p, store)
	}

	return cmd.runList(ctx, c, p, store)
}

func (cmd *HistoryCmd) runList(ctx context.Context, c *cli.Command, p *printer.Printer, store history.Store) error {
	commands, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	if len(commands) == 0 {
		p.Infof("No command history")
		return nil
	}

	start := 0
	if cmd.limit > 0 && cmd.limit < len(commands) {
		start = len(commands) - cmd.limit
	}

	w := tabwriter.NewWriter(c.Root().Writer, 0, 0, 2, ' ', 0)
	for i := start; i < len(commands); i++ {
		_, _ = fmt.Fprintf(w, "%d\t%s\n", i+1, commands[i])
	}

	return w.Flush()
}

func (cmd *HistoryCmd) runClear(ctx context.Context, p *printer.Printer, store history.Store) error {
	if err := store.Clear(ctx); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}

	p.Successf("Command history cleared")
	return nil
}
