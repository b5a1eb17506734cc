package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.True(t, cfg.Server.Gateway)
	assert.Equal(t, "leveldb", cfg.Cache.Driver)
	assert.Equal(t, "app", cfg.Cache.Prefix)
	assert.Equal(t, 8, cfg.Sync.Concurrency)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SYNC_ORIGIN", "https://app.example.com")
	t.Setenv("CACHE_DRIVER", "memory")
	t.Setenv("SYNC_CONCURRENCY", "3")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "https://app.example.com", cfg.Sync.Origin)
	assert.Equal(t, "memory", cfg.Cache.Driver)
	assert.Equal(t, 3, cfg.Sync.Concurrency)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("CACHE_PREFIX=shop\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("CACHE_PREFIX") })

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "shop", cfg.Cache.Prefix)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("CACHE_DRIVER", "redis")

	_, err := LoadConfig(t.TempDir())
	assert.ErrorContains(t, err, "Driver")
}

func TestValidate_Origin(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	cfg.Sync.Origin = "not a url"
	assert.Error(t, cfg.Validate())
}
