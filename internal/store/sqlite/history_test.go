package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/curlbaby/internal/core/history"
)

func openStore(t *testing.T, path string) *HistoryStore {
	t.Helper()

	s, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestHistoryStore_AppendAndLoad(t *testing.T) {
	s := openStore(t, filepath.Join(t.TempDir(), "history.db"))
	ctx := context.Background()

	commands, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, commands)

	require.NoError(t, s.Append(ctx, "get a.com"))
	require.NoError(t, s.Append(ctx, "post b.com\n{}"))

	commands, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"get a.com", "post b.com\n{}"}, commands)
}

func TestHistoryStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "history.db")
	ctx := context.Background()

	first := openStore(t, path)
	require.NoError(t, first.Append(ctx, "get a.com"))
	require.NoError(t, first.Close())

	second := openStore(t, path)
	assert.NotEqual(t, first.Session(), second.Session())

	commands, err := second.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"get a.com"}, commands)
}

func TestHistoryStore_Truncate(t *testing.T) {
	s := openStore(t, filepath.Join(t.TempDir(), "history.db"))
	ctx := context.Background()

	for _, c := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, s.Append(ctx, c))
	}
	require.NoError(t, s.Truncate(ctx, 3))

	commands, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "d", "e"}, commands)
}

func TestHistoryStore_Clear(t *testing.T) {
	s := openStore(t, filepath.Join(t.TempDir(), "history.db"))
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, "a"))
	require.NoError(t, s.Clear(ctx))

	commands, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, commands)
}

func TestHistoryStore_Closed(t *testing.T) {
	s := openStore(t, filepath.Join(t.TempDir(), "history.db"))
	ctx := context.Background()

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	_, err := s.Load(ctx)
	require.ErrorIs(t, err, history.ErrClosed)
	require.ErrorIs(t, s.Append(ctx, "a"), history.ErrClosed)
}
