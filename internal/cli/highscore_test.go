package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"quiz-widget/internal/app"
	"quiz-widget/internal/config"
	"quiz-widget/internal/infra/sqlite"
)

func TestHighScoreCommandReadsAndResets(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "scores.db")
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("store:\n  driver: sqlite\n  sqlite:\n    path: "+dbPath+"\n"), 0o600))

	store, err := sqlite.Open(testContext(t), dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Set(testContext(t), app.HighScoreKey, "505"))
	require.NoError(t, store.Close())

	out := execute(t, "--config", cfgPath, "highscore")
	assert.Equal(t, "high score: 505\n", out)

	out = execute(t, "--config", cfgPath, "highscore", "--reset")
	assert.Equal(t, "high score cleared\n", out)

	out = execute(t, "--config", cfgPath, "highscore")
	assert.Equal(t, "high score: 0\n", out)
}

func TestOpenStoreDrivers(t *testing.T) {
	ctx := context.Background()

	store, closeStore, err := openStore(ctx, config.Config{}, config.DriverMemory)
	require.NoError(t, err)
	closeStore()
	assert.NotNil(t, store)

	var cfg config.Config
	cfg.Store.Driver = "etcd"
	_, _, err = openStore(ctx, cfg, config.DriverMemory)
	assert.ErrorContains(t, err, `unknown store driver "etcd"`)

	cfg.Store.Driver = config.DriverPostgres
	_, _, err = openStore(ctx, cfg, config.DriverMemory)
	assert.ErrorContains(t, err, "postgres url not configured")
}

func TestMigrateRequiresPostgresURL(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "missing.yaml")
	err := runMigrations(context.Background(), cfgPath)
	assert.EqualError(t, err, "postgres url not configured")
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.ExecuteContext(testContext(t)))
	return out.String()
}

// testContext mirrors testing.T.Context (Go 1.24+): canceled when the test finishes.
func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
