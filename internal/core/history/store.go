package history

import (
	"context"
	"errors"
)

// ErrClosed is returned by stores used after Close.
var ErrClosed = errors.New("history store closed")

// Store defines durable persistence for command history. Implementations
// keep commands in the order they were appended.
type Store interface {
	// Load returns all stored commands, oldest first.
	Load(ctx context.Context) ([]string, error)
	// Append durably records a command before returning.
	Append(ctx context.Context, command string) error
	// Truncate discards all but the newest keep commands.
	Truncate(ctx context.Context, keep int) error
	// Clear removes all stored commands.
	Clear(ctx context.Context) error
	// Close releases resources held by the store.
	Close() error
}
