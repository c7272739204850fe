package doctor

import (
	"context"
	"fmt"

	"github.com/hay-kot/curlbaby/internal/core/history"
)

// OpenStoreFunc opens the configured history store. It returns nil for
// backends that do not persist.
type OpenStoreFunc func(ctx context.Context) (history.Store, error)

// HistoryCheck verifies the history backend can be opened and read.
type HistoryCheck struct {
	backend string
	path    string
	max     int
	open    OpenStoreFunc
}

// NewHistoryCheck creates a history check for the given backend.
func NewHistoryCheck(backend, path string, maxEntries int, open OpenStoreFunc) *HistoryCheck {
	return &HistoryCheck{backend: backend, path: path, max: maxEntries, open: open}
}

func (c *HistoryCheck) Name() string {
	return "History"
}

func (c *HistoryCheck) Run(ctx context.Context) Report {
	report := Report{Name: c.Name()}

	store, err := c.open(ctx)
	if err != nil {
		report.fail("Backend "+c.backend, err.Error())
		return report
	}
	if store == nil {
		report.warn("Backend "+c.backend, "commands are not saved between runs")
		return report
	}
	defer func() { _ = store.Close() }()

	report.pass("Backend "+c.backend, c.path)

	commands, err := store.Load(ctx)
	if err != nil {
		report.fail("Readable", err.Error())
		return report
	}

	detail := fmt.Sprintf("%d command(s)", len(commands))
	if c.max > 0 && len(commands) > c.max {
		report.warn("Entries", fmt.Sprintf("%s, trimmed to %d when the shell exits", detail, c.max))
	} else {
		report.pass("Entries", detail)
	}

	return report
}
