package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hay-kot/curlbaby/internal/core/config"
	"github.com/hay-kot/curlbaby/internal/core/history"
	"github.com/hay-kot/curlbaby/internal/store/sqlite"
	"github.com/hay-kot/curlbaby/internal/store/textfile"
)

// openStore opens the history backend selected by cfg. The memory backend
// has no store and returns nil.
func openStore(ctx context.Context, cfg *config.Config) (history.Store, error) {
	switch cfg.History.Backend {
	case config.BackendMemory:
		return nil, nil
	case config.BackendSQLite:
		s, err := sqlite.Open(ctx, cfg.HistoryPath())
		if err != nil {
			return nil, fmt.Errorf("open sqlite history: %w", err)
		}
		return s, nil
	case config.BackendFile:
		return textfile.New(cfg.HistoryPath()), nil
	default:
		return nil, fmt.Errorf("unknown history backend %q", cfg.History.Backend)
	}
}

// openHistory builds the shell history. A backend that cannot be opened is
// logged and the shell continues with in-memory history.
func openHistory(ctx context.Context, cfg *config.Config, logger zerolog.Logger) *history.History {
	opts := history.Options{
		MaxEntries: cfg.History.MaxEntries,
		Ignore:     cfg.History.Ignore,
		Logger:     logger,
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		logger.Warn().Err(err).Msg("command history will not be saved")
		return history.New(opts)
	}
	if store == nil {
		return history.New(opts)
	}

	logger.Debug().
		Str("backend", cfg.History.Backend).
		Str("path", cfg.HistoryPath()).
		Msg("opening command history")

	return history.Open(ctx, store, opts)
}
