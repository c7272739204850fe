// Package printer writes status lines for the curlbaby shell and CLI.
package printer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hay-kot/criterio"
	"golang.org/x/term"
)

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorGray   = "\033[90m"
	ColorBold   = "\033[1m"
)

// Symbols
const (
	Check = "✓"
	Cross = "✗"
	Warn  = "⚠"
	Info  = "ℹ"
)

type ctxKey struct{}

// Printer handles formatted output with colors and styles
type Printer struct {
	writer  io.Writer
	noColor bool
}

// New creates a Printer that writes to w. Colors are disabled when w is a
// file that is not a terminal, or when NO_COLOR is set.
func New(w io.Writer) *Printer {
	p := &Printer{writer: w}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		p.noColor = true
	}
	if f, ok := w.(interface{ Fd() uintptr }); ok && !term.IsTerminal(int(f.Fd())) {
		p.noColor = true
	}
	return p
}

// NewPlain creates a Printer that never emits color codes.
func NewPlain(w io.Writer) *Printer {
	return &Printer{writer: w, noColor: true}
}

// NewContext returns a context with the printer attached
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx retrieves the printer from context, or creates a default one
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return New(os.Stderr)
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.writer
}

// FatalError prints a formatted error box and does NOT exit
// Caller should handle exit code
func (p *Printer) FatalError(err error) {
	if err == nil {
		return
	}

	var fieldErrs criterio.FieldErrors
	if errors.As(err, &fieldErrs) {
		p.printValidationErrors(err, fieldErrs)
		return
	}

	lines := []string{
		p.colorize(ColorRed, "╭ Error"),
		p.colorize(ColorRed, "│") + " " + err.Error(),
		p.colorize(ColorRed, "╵"),
	}
	p.write(strings.Join(lines, "\n"))
}

// printValidationErrors lists each field error under the context of the
// wrapping error, e.g. "load config: invalid config".
func (p *Printer) printValidationErrors(wrappedErr error, fieldErrs criterio.FieldErrors) {
	errStr := wrappedErr.Error()

	errContext := ""
	if idx := strings.Index(errStr, fieldErrs.Error()); idx > 0 {
		errContext = strings.TrimSuffix(errStr[:idx], ": ")
	}

	p.write(p.colorize(ColorRed, "╭ Invalid configuration"))
	if errContext != "" {
		p.write(p.colorize(ColorRed, "│") + " " + p.colorize(ColorGray, errContext))
		p.write(p.colorize(ColorRed, "│"))
	}

	for _, fe := range fieldErrs {
		line := p.colorize(ColorRed, "│") + " " + p.colorize(ColorRed, Cross) + " "
		if fe.Field != "" {
			line += p.colorize(ColorBold, fe.Field) + ": "
		}
		line += fe.Err.Error()
		p.write(line)
	}

	p.write(p.colorize(ColorRed, "╵"))
}

// Errorf prints an error message in red
func (p *Printer) Errorf(format string, args ...any) {
	p.write(p.colorize(ColorRed, Cross+" "+fmt.Sprintf(format, args...)))
}

// Successf prints a success message in green
func (p *Printer) Successf(format string, args ...any) {
	p.write(p.colorize(ColorGreen, Check+" "+fmt.Sprintf(format, args...)))
}

// Infof prints an info message in blue
func (p *Printer) Infof(format string, args ...any) {
	p.write(p.colorize(ColorBlue, Info+" "+fmt.Sprintf(format, args...)))
}

// Warnf prints a warning message in yellow
func (p *Printer) Warnf(format string, args ...any) {
	p.write(p.colorize(ColorYellow, Warn+" "+fmt.Sprintf(format, args...)))
}

// Hintf prints a dimmed message.
func (p *Printer) Hintf(format string, args ...any) {
	p.write(p.colorize(ColorGray, fmt.Sprintf(format, args...)))
}

// Printf prints a plain message without colors
func (p *Printer) Printf(format string, args ...any) {
	p.write(fmt.Sprintf(format, args...))
}

// Bold makes text bold
func (p *Printer) Bold(text string) string {
	return p.colorize(ColorBold, text)
}

// Section prints a bold section header
func (p *Printer) Section(title string) {
	p.write(p.colorize(ColorBold, title))
}

// CheckItem prints a success item with green checkmark
func (p *Printer) CheckItem(label, detail string) {
	p.printItem(ColorGreen, Check, label, detail)
}

// WarnItem prints a warning item with yellow sign
func (p *Printer) WarnItem(label, detail string) {
	p.printItem(ColorYellow, Warn, label, detail)
}

// FailItem prints a failure item with red cross
func (p *Printer) FailItem(label, detail string) {
	p.printItem(ColorRed, Cross, label, detail)
}

func (p *Printer) printItem(color, symbol, label, detail string) {
	line := "  " + p.colorize(color, symbol) + " " + label
	if detail != "" {
		line += ": " + detail
	}
	p.write(line)
}

func (p *Printer) colorize(color, text string) string {
	if p.noColor {
		return text
	}
	return color + text + ColorReset
}

func (p *Printer) write(line string) {
	_, _ = io.WriteString(p.writer, line+"\n")
}
