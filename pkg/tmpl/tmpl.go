// Package tmpl renders the text/template strings used for the shell prompt.
package tmpl

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// PromptData defines the fields available to prompt templates.
type PromptData struct {
	Cwd   string // working directory
	Dir   string // last element of Cwd
	Count int    // commands recorded in history
}

// NewPromptData fills PromptData for the current process.
func NewPromptData(count int) PromptData {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = ""
	}
	return PromptData{Cwd: cwd, Dir: filepath.Base(cwd), Count: count}
}

// tildeHome replaces the home directory prefix of path with ~.
func tildeHome(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if path == home {
		return "~"
	}
	if rest, ok := strings.CutPrefix(path, home+string(filepath.Separator)); ok {
		return "~" + string(filepath.Separator) + rest
	}
	return path
}

var funcs = template.FuncMap{
	"base": filepath.Base,
	"home": tildeHome,
}

// Render executes a Go template string with the given data.
// Returns an error if the template is invalid or references undefined keys.
//
// Available template functions:
//   - base: last element of a path
//   - home: abbreviate the home directory as ~
func Render(tmpl string, data any) (string, error) {
	t, err := template.New("").Funcs(funcs).Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}

	return buf.String(), nil
}

// Validate reports whether tmpl renders against PromptData.
func Validate(tmpl string) error {
	_, err := Render(tmpl, PromptData{})
	return err
}
