// Package sqlite persists command history in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/hay-kot/curlbaby/internal/core/history"
	"github.com/hay-kot/curlbaby/pkg/randid"
)

var _ history.Store = (*HistoryStore)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS command_history (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	command    TEXT NOT NULL,
	session    TEXT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`

// HistoryStore implements history.Store on a SQLite table. Each store tags
// the rows it appends with a session id.
type HistoryStore struct {
	db      *sql.DB
	session string

	mu     sync.Mutex
	closed bool
}

// Open opens or creates the database at path and ensures the schema exists.
func Open(ctx context.Context, path string) (*HistoryStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}

	return &HistoryStore{db: db, session: randid.Session()}, nil
}

// Session returns the id attached to rows appended by this store.
func (s *HistoryStore) Session() string {
	return s.session
}

// Load returns all stored commands, oldest first.
func (s *HistoryStore) Load(ctx context.Context) ([]string, error) {
	if err := s.check(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT command FROM command_history ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var commands []string
	for rows.Next() {
		var cmd string
		if err := rows.Scan(&cmd); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		commands = append(commands, cmd)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read history rows: %w", err)
	}

	return commands, nil
}

// Append inserts a command.
func (s *HistoryStore) Append(ctx context.Context, command string) error {
	if err := s.check(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO command_history (command, session) VALUES (?, ?)`,
		command, s.session,
	)
	if err != nil {
		return fmt.Errorf("insert history: %w", err)
	}
	return nil
}

// Truncate deletes all but the newest keep rows.
func (s *HistoryStore) Truncate(ctx context.Context, keep int) error {
	if err := s.check(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		DELETE FROM command_history
		WHERE id NOT IN (
			SELECT id FROM command_history ORDER BY id DESC LIMIT ?
		)`, max(keep, 0))
	if err != nil {
		return fmt.Errorf("truncate history: %w", err)
	}
	return nil
}

// Clear deletes every row.
func (s *HistoryStore) Clear(ctx context.Context) error {
	if err := s.check(); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM command_history`); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

// Close closes the database. It is safe to call more than once.
func (s *HistoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if err := s.db.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("close history database: %w", err)
	}
	return nil
}

func (s *HistoryStore) check() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return history.ErrClosed
	}
	return nil
}
