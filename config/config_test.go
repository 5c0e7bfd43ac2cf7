// ABOUTME: Tests for configuration loading and layering
// ABOUTME: Covers defaults, YAML files, env overrides and validation
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
backend: badger
db_path: /tmp/activator-badger
http_addr: ":9090"
seed: true
log:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendBadger, cfg.Backend)
	assert.Equal(t, "/tmp/activator-badger", cfg.StoragePath())
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.True(t, cfg.Seed)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	cfg, err := Load(writeConfig(t, "backend: memory\n"))
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.Backend)
	assert.Equal(t, Default().HTTPAddr, cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.StoragePath())
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "backend: sqlite\nhttp_addr: \":9090\"\n")
	t.Setenv("ACTIVATOR_BACKEND", "memory")
	t.Setenv("ACTIVATOR_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.Backend)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "backend: [oops"))
	assert.Error(t, err)

	cfg, err := Load(writeConfig(t, "backend: postgres\n"))
	require.NoError(t, err)
	assert.ErrorContains(t, cfg.Validate(), "unknown backend")

	t.Setenv("ACTIVATOR_SEED", "not-a-bool")
	_, err = Load(writeConfig(t, "backend: memory\n"))
	assert.ErrorContains(t, err, "parse env:")
}

func TestStoragePathDefaults(t *testing.T) {
	sqlite := Config{Backend: BackendSQLite}
	assert.Equal(t, filepath.Join(DataDir(), "activator.db"), sqlite.StoragePath())

	badger := Config{Backend: BackendBadger}
	assert.Equal(t, filepath.Join(DataDir(), "badger"), badger.StoragePath())
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	want := Default()
	want.Backend = BackendBadger
	want.Seed = true

	require.NoError(t, want.Save(path))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
