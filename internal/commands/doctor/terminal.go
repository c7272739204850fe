package doctor

import (
	"context"
	"errors"
	"os"

	"golang.org/x/term"

	"github.com/hay-kot/curlbaby/internal/terminal"
)

// TerminalCheck reports whether the shell can use raw mode line editing.
type TerminalCheck struct {
	in  *os.File
	out *os.File
}

// NewTerminalCheck checks the given input and output files.
func NewTerminalCheck(in, out *os.File) *TerminalCheck {
	return &TerminalCheck{in: in, out: out}
}

func (c *TerminalCheck) Name() string {
	return "Terminal"
}

func (c *TerminalCheck) Run(ctx context.Context) Report {
	report := Report{Name: c.Name()}

	if !term.IsTerminal(int(c.out.Fd())) {
		report.warn("Output", "not a terminal, colors and redraws are disabled")
	} else {
		report.pass("Output", "terminal")
	}

	guard, err := terminal.Acquire(int(c.in.Fd()))
	switch {
	case errors.Is(err, terminal.ErrTerminalUnavailable):
		report.warn("Raw mode", "input is not a terminal, line editing and history keys are disabled")
		return report
	case err != nil:
		report.fail("Raw mode", err.Error())
		return report
	}

	if err := guard.Release(); err != nil {
		report.fail("Raw mode", "terminal not restored: "+err.Error())
		return report
	}
	report.pass("Raw mode", "available")

	return report
}
