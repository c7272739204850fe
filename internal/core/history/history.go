// Package history keeps the navigable record of commands entered at the
// shell prompt, optionally persisted through a Store.
package history

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
)

// DefaultMaxEntries is the number of commands retained when no limit is set.
const DefaultMaxEntries = 100

// notNavigating is the cursor sentinel, logically just past the newest entry.
const notNavigating = -1

// Options configures a History.
type Options struct {
	// MaxEntries caps the number of retained commands. Zero means
	// DefaultMaxEntries; a negative value disables the cap.
	MaxEntries int
	// Ignore lists glob patterns; matching commands are not recorded.
	Ignore []string
	Logger zerolog.Logger
}

// History is an append-only list of commands with a navigation cursor.
// It is not safe for concurrent use.
type History struct {
	entries []string
	cursor  int
	max     int
	ignore  []string
	store   Store
	log     zerolog.Logger
}

// New creates an in-memory History.
func New(opts Options) *History {
	limit := opts.MaxEntries
	if limit == 0 {
		limit = DefaultMaxEntries
	}

	return &History{
		cursor: notNavigating,
		max:    limit,
		ignore: opts.Ignore,
		log:    opts.Logger,
	}
}

// Open creates a History backed by store and loads its commands. A store
// that cannot be read is logged and dropped; the returned History then works
// in memory only.
func Open(ctx context.Context, store Store, opts Options) *History {
	h := New(opts)

	commands, err := store.Load(ctx)
	if err != nil {
		h.log.Warn().Err(err).Msg("failed to load command history, continuing without persistence")
		_ = store.Close()
		return h
	}

	h.store = store
	for _, cmd := range commands {
		h.push(cmd)
	}

	h.log.Debug().Int("count", len(h.entries)).Msg("loaded command history")
	return h
}

// Persistent reports whether commands are being written to a store.
func (h *History) Persistent() bool {
	return h.store != nil
}

// Add records a command. Blank commands, repeats of the newest entry and
// commands matching an ignore pattern are skipped. Add reports whether the
// command was recorded; recording one resets the navigation cursor.
func (h *History) Add(ctx context.Context, command string) bool {
	if strings.TrimSpace(command) == "" {
		return false
	}
	if n := len(h.entries); n > 0 && h.entries[n-1] == command {
		return false
	}
	if h.ignored(command) {
		return false
	}

	h.cursor = notNavigating
	if h.store != nil {
		if err := h.store.Append(ctx, command); err != nil {
			h.log.Warn().Err(err).Msg("failed to save command, history will not be persisted")
			h.detach()
		}
	}

	h.push(command)
	return true
}

// Previous moves the cursor toward older commands and returns the command
// under it. The first call after a reset returns the newest command; the
// cursor stops at the oldest one. An empty history returns "".
func (h *History) Previous() string {
	if len(h.entries) == 0 {
		return ""
	}

	switch {
	case h.cursor == notNavigating:
		h.cursor = len(h.entries) - 1
	case h.cursor > 0:
		h.cursor--
	}

	return h.entries[h.cursor]
}

// Next moves the cursor toward newer commands and returns the command under
// it. Moving past the newest command ends navigation and returns "", as does
// calling Next while not navigating.
func (h *History) Next() string {
	if h.cursor == notNavigating || len(h.entries) == 0 {
		return ""
	}

	h.cursor++
	if h.cursor >= len(h.entries) {
		h.cursor = notNavigating
		return ""
	}

	return h.entries[h.cursor]
}

// Navigating reports whether the cursor is on an entry.
func (h *History) Navigating() bool {
	return h.cursor != notNavigating
}

// Reset ends navigation.
func (h *History) Reset() {
	h.cursor = notNavigating
}

// Len returns the number of recorded commands.
func (h *History) Len() int {
	return len(h.entries)
}

// Entries returns a copy of the commands, oldest first.
func (h *History) Entries() []string {
	return slices.Clone(h.entries)
}

// Clear removes all commands from memory and from the store.
func (h *History) Clear(ctx context.Context) error {
	h.entries = nil
	h.cursor = notNavigating

	if h.store == nil {
		return nil
	}
	if err := h.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear history store: %w", err)
	}
	return nil
}

// Close trims the store to the retention limit and closes it. The History
// keeps working in memory afterwards. Close is safe to call more than once.
func (h *History) Close(ctx context.Context) error {
	if h.store == nil {
		return nil
	}

	store := h.store
	h.store = nil

	var truncErr error
	if h.max > 0 {
		if err := store.Truncate(ctx, h.max); err != nil {
			truncErr = fmt.Errorf("truncate history store: %w", err)
		}
	}

	if err := store.Close(); err != nil {
		return fmt.Errorf("close history store: %w", err)
	}
	return truncErr
}

func (h *History) push(command string) {
	h.entries = append(h.entries, command)
	if h.max > 0 && len(h.entries) > h.max {
		h.entries = slices.Delete(h.entries, 0, len(h.entries)-h.max)
	}
}

func (h *History) ignored(command string) bool {
	for _, pattern := range h.ignore {
		ok, err := matchIgnore(pattern, command)
		if err != nil {
			h.log.Debug().Err(err).Str("pattern", pattern).Msg("invalid history ignore pattern")
			continue
		}
		if ok {
			return true
		}
	}
	return false
}

// matchIgnore matches like HISTIGNORE: '*' also spans '/', so patterns work
// on commands carrying URLs.
func matchIgnore(pattern, command string) (bool, error) {
	return doublestar.Match(
		strings.ReplaceAll(pattern, "/", "\x00"),
		strings.ReplaceAll(command, "/", "\x00"),
	)
}

func (h *History) detach() {
	if err := h.store.Close(); err != nil {
		h.log.Debug().Err(err).Msg("failed to close history store")
	}
	h.store = nil
}
