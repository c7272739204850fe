package commands

import (
	"context"
	"encoding/json"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/curlbaby/internal/commands/doctor"
	"github.com/hay-kot/curlbaby/internal/core/history"
	"github.com/hay-kot/curlbaby/internal/printer"
)

type DoctorCmd struct {
	flags  *Flags
	format string
}

func NewDoctorCmd(flags *Flags) *DoctorCmd {
	return &DoctorCmd{flags: flags}
}

func (cmd *DoctorCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "doctor",
		Usage:       "Check the terminal, configuration and history store",
		UsageText:   "curlbaby doctor [options]",
		Description: "Runs diagnostic checks on the configuration, raw mode support and the history backend.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *DoctorCmd) run(ctx context.Context, c *cli.Command) error {
	checks := []doctor.Check{
		doctor.NewConfigCheck(cmd.flags.Config, cmd.flags.ConfigPath),
		doctor.NewTerminalCheck(os.Stdin, os.Stdout),
	}

	if cfg := cmd.flags.Config; cfg != nil {
		checks = append(checks, doctor.NewHistoryCheck(
			cfg.History.Backend,
			cfg.HistoryPath(),
			cfg.History.MaxEntries,
			func(ctx context.Context) (history.Store, error) { return openStore(ctx, cfg) },
		))
	}

	reports := doctor.Run(ctx, checks...)
	tally := doctor.Count(reports)

	var err error
	if cmd.format == "json" {
		err = cmd.writeJSON(c, reports, tally)
	} else {
		cmd.writeText(ctx, reports, tally)
	}
	if err != nil {
		return err
	}

	if !tally.Healthy() {
		return cli.Exit("", 1)
	}
	return nil
}

func (cmd *DoctorCmd) writeJSON(c *cli.Command, reports []doctor.Report, tally doctor.Tally) error {
	out := struct {
		Healthy bool            `json:"healthy"`
		Summary doctor.Tally    `json:"summary"`
		Checks  []doctor.Report `json:"checks"`
	}{
		Healthy: tally.Healthy(),
		Summary: tally,
		Checks:  reports,
	}

	enc := json.NewEncoder(c.Root().Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func (cmd *DoctorCmd) writeText(ctx context.Context, reports []doctor.Report, tally doctor.Tally) {
	p := printer.Ctx(ctx)

	for _, report := range reports {
		p.Section(report.Name)

		for _, f := range report.Findings {
			switch f.Status {
			case doctor.StatusPass:
				p.CheckItem(f.Label, f.Detail)
			case doctor.StatusWarn:
				p.WarnItem(f.Label, f.Detail)
			case doctor.StatusFail:
				p.FailItem(f.Label, f.Detail)
			}
		}

		p.Printf("")
	}

	p.Printf("Summary: %d passed, %d warnings, %d failed", tally.Passed, tally.Warned, tally.Failed)
}
