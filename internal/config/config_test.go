package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FileWithDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	content := `
env: local
database:
  driver: sqlite
badge:
  platform_name: "Test Directory"
  cache_ttl: 2m
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "Test Directory", cfg.Badge.PlatformName)
	assert.Equal(t, 2*time.Minute, cfg.Badge.CacheTTL)

	// defaults
	assert.Equal(t, 60*time.Second, cfg.Badge.StaleWindow)
	assert.Equal(t, 3*time.Second, cfg.Badge.LookupTimeout)
	assert.Equal(t, 10, cfg.Badge.ClickRateLimit)
	assert.Equal(t, 30, cfg.Analytics.StatsWindowDays)
	assert.Equal(t, 5, cfg.Analytics.TopReferrers)
	assert.Equal(t, ":8080", cfg.HTTPServer.Address)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoad_EnvOnlyWhenFileMissing(t *testing.T) {
	t.Setenv("BADGE_BASE_URL", "https://example.com")
	t.Setenv("DB_DRIVER", "memory")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	assert.Equal(t, "https://example.com", cfg.Badge.BaseURL)
	assert.Equal(t, "memory", cfg.Database.Driver)
	assert.Equal(t, "/products/", cfg.Badge.ProductPath)
}
