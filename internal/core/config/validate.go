package config

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"

	"github.com/hay-kot/curlbaby/pkg/tmpl"
)

// Warning is a non-fatal configuration issue.
type Warning struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validate checks that the configuration is valid. All problems are reported
// together as criterio.FieldErrors.
func (c *Config) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if c.DataDir == "" {
		errs = errs.Append("data_dir", fmt.Errorf("cannot be empty"))
	}

	if err := tmpl.Validate(c.Prompt); err != nil {
		errs = errs.Append("prompt", err)
	}

	switch c.History.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		errs = errs.Append("history.backend",
			fmt.Errorf("unknown backend %q (want %s, %s or %s)", c.History.Backend, BackendFile, BackendSQLite, BackendMemory))
	}

	if c.History.MaxEntries < -1 {
		errs = errs.Append("history.max_entries", fmt.Errorf("must be -1 or a positive number, got %d", c.History.MaxEntries))
	}

	for i, pattern := range c.History.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			errs = errs.Append(fmt.Sprintf("history.ignore[%d]", i), fmt.Errorf("invalid glob pattern %q", pattern))
		}
	}

	return errs.ToError()
}

// Warnings returns configuration choices that are valid but likely unintended.
func (c *Config) Warnings() []Warning {
	var warnings []Warning

	if c.History.Backend == BackendMemory && c.History.File != "" {
		warnings = append(warnings, Warning{
			Field:   "history.file",
			Message: "ignored because history.backend is memory",
		})
	}
	if c.History.MaxEntries == -1 {
		warnings = append(warnings, Warning{
			Field:   "history.max_entries",
			Message: "history grows without limit",
		})
	}

	return warnings
}
