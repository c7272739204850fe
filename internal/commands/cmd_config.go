package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MakeNowJust/heredoc"
	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/hay-kot/curlbaby/internal/core/config"
	"github.com/hay-kot/curlbaby/internal/printer"
)

type ConfigCmd struct {
	flags  *Flags
	format string
}

// NewConfigCmd creates the config command group.
func NewConfigCmd(flags *Flags) *ConfigCmd {
	return &ConfigCmd{flags: flags}
}

// Register adds the config commands to the application.
func (cmd *ConfigCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:      "validate",
				Usage:     "Validate configuration file",
				UsageText: "curlbaby config validate [options]",
				Description: heredoc.Doc(`
					Checks the configuration file: the history backend, the
					retention limit, ignore patterns and the prompt template.
				`),
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.runValidate,
			},
			{
				Name:      "show",
				Usage:     "Print the effective configuration",
				UsageText: "curlbaby config show",
				Action:    cmd.runShow,
			},
		},
	})

	return app
}

func (cmd *ConfigCmd) runShow(ctx context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config
	if cfg == nil {
		return fmt.Errorf("configuration not loaded")
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	p := printer.Ctx(ctx)
	p.Hintf("# %s", cmd.flags.ConfigPath)
	_, err = c.Root().Writer.Write(out)
	return err
}

func (cmd *ConfigCmd) runValidate(ctx context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config
	if cfg == nil {
		return fmt.Errorf("configuration not loaded")
	}

	validationErr := cfg.Validate()
	warnings := cfg.Warnings()

	if cmd.format == "json" {
		return cmd.outputJSON(c, validationErr, warnings)
	}

	return cmd.outputText(printer.Ctx(ctx), validationErr, warnings)
}

func (cmd *ConfigCmd) outputJSON(c *cli.Command, validationErr error, warnings []config.Warning) error {
	type fieldError struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	}

	out := struct {
		Valid    bool             `json:"valid"`
		Errors   []fieldError     `json:"errors,omitempty"`
		Warnings []config.Warning `json:"warnings,omitempty"`
	}{
		Valid:    validationErr == nil,
		Warnings: warnings,
	}

	for _, fe := range extractFieldErrors(validationErr) {
		out.Errors = append(out.Errors, fieldError{Field: fe.Field, Message: fe.Err.Error()})
	}

	enc := json.NewEncoder(c.Root().Writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return err
	}
	if validationErr != nil {
		return cli.Exit("", 1)
	}
	return nil
}

// extractFieldErrors extracts field errors from a validation error.
func extractFieldErrors(err error) criterio.FieldErrors {
	if err == nil {
		return nil
	}
	var fieldErrs criterio.FieldErrors
	if errors.As(err, &fieldErrs) {
		return fieldErrs
	}
	return criterio.FieldErrors{{Err: err}}
}

func (cmd *ConfigCmd) outputText(p *printer.Printer, validationErr error, warnings []config.Warning) error {
	fieldErrs := extractFieldErrors(validationErr)

	for _, fe := range fieldErrs {
		if fe.Field != "" {
			p.Errorf("%s: %s", fe.Field, fe.Err.Error())
		} else {
			p.Errorf("%s", fe.Err.Error())
		}
	}
	for _, warn := range warnings {
		p.Warnf("%s: %s", warn.Field, warn.Message)
	}

	if validationErr == nil {
		if len(warnings) > 0 {
			p.Successf("Configuration is valid (%d warning(s))", len(warnings))
		} else {
			p.Successf("Configuration is valid")
		}
		return nil
	}

	p.Printf("")
	p.Printf("%d error(s), %d warning(s)", len(fieldErrs), len(warnings))
	return cli.Exit("", 1)
}
