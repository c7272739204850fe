// Package textfile persists command history as a plain text file with one
// command per line.
package textfile

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hay-kot/curlbaby/internal/core/history"
)

var _ history.Store = (*HistoryStore)(nil)

// HistoryStore implements history.Store on a newline delimited file.
type HistoryStore struct {
	path   string
	mu     sync.Mutex
	closed bool
}

// New creates a history store at path. The file and its directory are
// created on the first write.
func New(path string) *HistoryStore {
	return &HistoryStore{path: path}
}

// Path returns the file the store writes to.
func (s *HistoryStore) Path() string {
	return s.path
}

// Load returns the stored commands, oldest first. A missing file is an empty
// history. Blank lines are skipped.
func (s *HistoryStore) Load(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, history.ErrClosed
	}
	return s.load()
}

// Append writes command to the end of the file and syncs it to disk.
func (s *HistoryStore) Append(ctx context.Context, command string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return history.ErrClosed
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create history directory: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open history file: %w", err)
	}

	if _, err := f.WriteString(flatten(command) + "\n"); err != nil {
		_ = f.Close()
		return fmt.Errorf("write history file: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("sync history file: %w", err)
	}
	return f.Close()
}

// Truncate rewrites the file keeping only the newest keep commands.
func (s *HistoryStore) Truncate(ctx context.Context, keep int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return history.ErrClosed
	}

	commands, err := s.load()
	if err != nil {
		return err
	}
	if len(commands) <= keep {
		return nil
	}

	return s.save(commands[len(commands)-max(keep, 0):])
}

// Clear empties the file.
func (s *HistoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return history.ErrClosed
	}
	return s.save(nil)
}

// Close marks the store closed. Further calls return history.ErrClosed.
func (s *HistoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}

func (s *HistoryStore) load() ([]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open history file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var commands []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		commands = append(commands, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read history file: %w", err)
	}

	return commands, nil
}

// save writes the history file to disk atomically.
func (s *HistoryStore) save(commands []string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create history directory: %w", err)
	}

	var sb strings.Builder
	for _, c := range commands {
		sb.WriteString(c)
		sb.WriteByte('\n')
	}

	tmp := s.path + ".tmp"
	if err := writeSynced(tmp, sb.String()); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write history temp file: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename history file: %w", err)
	}

	return nil
}

// writeSynced writes data and flushes it to disk before returning.
func writeSynced(path, data string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// flatten keeps a command on a single line.
func flatten(command string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(command)
}
