package terminal

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/term"
)

var (
	// ErrTerminalUnavailable is returned when raw mode cannot be entered,
	// either because the descriptor is not a terminal or the platform does
	// not support it.
	ErrTerminalUnavailable = errors.New("terminal unavailable")

	// ErrAlreadyAcquired is returned when raw mode is already held.
	ErrAlreadyAcquired = errors.New("raw mode already acquired")
)

// held tracks the single process-wide raw mode acquisition.
var held atomic.Bool

// Guard is an active raw mode acquisition. Release restores the terminal.
type Guard struct {
	fd    int
	state *term.State
	once  sync.Once
	err   error
}

// Acquire puts the terminal referenced by fd into raw mode: no echo, no line
// buffering, no signal generation. Only one Guard may be active at a time.
func Acquire(fd int) (*Guard, error) {
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("%w: fd %d is not a terminal", ErrTerminalUnavailable, fd)
	}

	if !held.CompareAndSwap(false, true) {
		return nil, ErrAlreadyAcquired
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		held.Store(false)
		return nil, fmt.Errorf("%w: %w", ErrTerminalUnavailable, err)
	}

	return &Guard{fd: fd, state: state}, nil
}

// Release restores the terminal mode captured by Acquire. It is safe to call
// more than once; only the first call has an effect.
func (g *Guard) Release() error {
	g.once.Do(func() {
		defer held.Store(false)
		if err := term.Restore(g.fd, g.state); err != nil {
			g.err = fmt.Errorf("restore terminal: %w", err)
		}
	})
	return g.err
}

// Held reports whether a raw mode acquisition is currently active.
func Held() bool {
	return held.Load()
}
