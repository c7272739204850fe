package commands

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/curlbaby/internal/core/config"
	"github.com/hay-kot/curlbaby/internal/printer"
	"github.com/hay-kot/curlbaby/internal/store/sqlite"
	"github.com/hay-kot/curlbaby/internal/store/textfile"
)

func testConfig(t *testing.T, backend string) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.History.Backend = backend
	return &cfg
}

func runHistory(t *testing.T, cfg *config.Config, args ...string) (stdout, stderr string) {
	t.Helper()

	var out, status bytes.Buffer
	app := &cli.Command{Name: "curlbaby", Writer: &out}
	app = NewHistoryCmd(&Flags{Config: cfg}).Register(app)

	ctx := printer.NewContext(context.Background(), printer.NewPlain(&status))
	require.NoError(t, app.Run(ctx, append([]string{"curlbaby", "history"}, args...)))
	return out.String(), status.String()
}

func seedFile(t *testing.T, cfg *config.Config, commands ...string) {
	t.Helper()
	s := textfile.New(cfg.HistoryPath())
	for _, c := range commands {
		require.NoError(t, s.Append(context.Background(), c))
	}
}

func TestHistoryCmd_List(t *testing.T) {
	cfg := testConfig(t, config.BackendFile)
	seedFile(t, cfg, "get a.com", "post b.com")

	out, _ := runHistory(t, cfg)
	assert.Equal(t, "1  get a.com\n2  post b.com\n", out)
}

func TestHistoryCmd_Limit(t *testing.T) {
	cfg := testConfig(t, config.BackendFile)
	seedFile(t, cfg, "a", "b", "c")

	out, _ := runHistory(t, cfg, "--limit", "2")
	assert.Equal(t, "2  b\n3  c\n", out)
}

func TestHistoryCmd_Empty(t *testing.T) {
	cfg := testConfig(t, config.BackendFile)

	out, status := runHistory(t, cfg)
	assert.Empty(t, out)
	assert.Contains(t, status, "No command history")
}

func TestHistoryCmd_Clear(t *testing.T) {
	cfg := testConfig(t, config.BackendFile)
	seedFile(t, cfg, "get a.com")

	_, status := runHistory(t, cfg, "--clear")
	assert.Contains(t, status, "Command history cleared")

	commands, err := textfile.New(cfg.HistoryPath()).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, commands)
}

func TestHistoryCmd_SQLite(t *testing.T) {
	cfg := testConfig(t, config.BackendSQLite)

	s, err := sqlite.Open(context.Background(), cfg.HistoryPath())
	require.NoError(t, err)
	require.NoError(t, s.Append(context.Background(), "get a.com"))
	require.NoError(t, s.Close())

	out, _ := runHistory(t, cfg)
	assert.Equal(t, "1  get a.com\n", out)
}

func TestHistoryCmd_Memory(t *testing.T) {
	cfg := testConfig(t, config.BackendMemory)

	out, status := runHistory(t, cfg)
	assert.Empty(t, out)
	assert.Contains(t, status, "nothing is saved")
}

func TestOpenHistory(t *testing.T) {
	ctx := context.Background()

	t.Run("file backend persists", func(t *testing.T) {
		cfg := testConfig(t, config.BackendFile)
		h := openHistory(ctx, cfg, zerolog.Nop())
		assert.True(t, h.Persistent())
		h.Add(ctx, "get a.com")
		require.NoError(t, h.Close(ctx))

		assert.Equal(t, []string{"get a.com"}, openHistory(ctx, cfg, zerolog.Nop()).Entries())
	})

	t.Run("memory backend", func(t *testing.T) {
		h := openHistory(ctx, testConfig(t, config.BackendMemory), zerolog.Nop())
		assert.False(t, h.Persistent())
	})

	t.Run("unopenable sqlite falls back to memory", func(t *testing.T) {
		cfg := testConfig(t, config.BackendSQLite)
		seedFile(t, cfg, "x")
		cfg.History.File = filepath.Join(cfg.HistoryPath(), "nested.db")

		h := openHistory(ctx, cfg, zerolog.Nop())
		assert.False(t, h.Persistent())
	})
}
