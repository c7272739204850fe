package printer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
)

func TestPrinter_StatusLines(t *testing.T) {
	tests := []struct {
		name  string
		print func(p *Printer)
		want  string
	}{
		{name: "success", print: func(p *Printer) { p.Successf("saved %d", 2) }, want: "✓ saved 2\n"},
		{name: "error", print: func(p *Printer) { p.Errorf("boom") }, want: "✗ boom\n"},
		{name: "warn", print: func(p *Printer) { p.Warnf("careful") }, want: "⚠ careful\n"},
		{name: "info", print: func(p *Printer) { p.Infof("note") }, want: "ℹ note\n"},
		{name: "hint", print: func(p *Printer) { p.Hintf("type help") }, want: "type help\n"},
		{name: "plain", print: func(p *Printer) { p.Printf("%s=%d", "a", 1) }, want: "a=1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.print(NewPlain(&buf))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPrinter_Colorize(t *testing.T) {
	var buf bytes.Buffer
	p := &Printer{writer: &buf}

	p.Successf("ok")
	assert.Equal(t, ColorGreen+"✓ ok"+ColorReset+"\n", buf.String())
	assert.Equal(t, ColorBold+"x"+ColorReset, p.Bold("x"))
}

func TestPrinter_FatalError(t *testing.T) {
	var buf bytes.Buffer
	NewPlain(&buf).FatalError(errors.New("open history: permission denied"))

	assert.Equal(t, "╭ Error\n│ open history: permission denied\n╵\n", buf.String())
}

func TestPrinter_FatalErrorFieldErrors(t *testing.T) {
	var errs criterio.FieldErrorsBuilder
	errs = errs.Append("history.backend", errors.New("unknown backend"))
	err := fmt.Errorf("load config: %w", errs.ToError())

	var buf bytes.Buffer
	NewPlain(&buf).FatalError(err)

	out := buf.String()
	assert.Contains(t, out, "╭ Invalid configuration")
	assert.Contains(t, out, "│ load config")
	assert.Contains(t, out, "✗ history.backend: unknown backend")
}

func TestPrinter_FatalErrorNil(t *testing.T) {
	var buf bytes.Buffer
	NewPlain(&buf).FatalError(nil)
	assert.Empty(t, buf.String())
}

func TestCtx(t *testing.T) {
	var buf bytes.Buffer
	p := NewPlain(&buf)

	ctx := NewContext(context.Background(), p)
	assert.Same(t, p, Ctx(ctx))
	assert.NotNil(t, Ctx(context.Background()))
}

func TestPrinter_Items(t *testing.T) {
	var buf bytes.Buffer
	p := NewPlain(&buf)

	p.Section("History")
	p.CheckItem("Backend file", "/tmp/history")
	p.WarnItem("Entries", "")
	p.FailItem("Readable", "permission denied")

	assert.Equal(t, "History\n  ✓ Backend file: /tmp/history\n  ⚠ Entries\n  ✗ Readable: permission denied\n", buf.String())
}
