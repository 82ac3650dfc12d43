package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/pageforge/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.DefaultPath)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_OverridesDefaults(t *testing.T) {
	key := strings.Repeat("ab", 32)
	path := writeConfig(t, `
log_level: debug
history_limit: 10
server:
  port: 9090
  metrics: true
store:
  backend: redis
  redis:
    addr: cache:6379
    ttl: 24h
    lock: true
security:
  encryption_key: `+key+`
  scrub_patterns: ["email"]
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 10, cfg.HistoryLimit)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.Server.Metrics)
	assert.Equal(t, config.BackendRedis, cfg.Store.Backend)
	assert.Equal(t, "cache:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, "pageforge:session:", cfg.Store.Redis.Prefix, "unset keys keep defaults")
	assert.Equal(t, 24*time.Hour, cfg.Store.Redis.TTL)
	assert.True(t, cfg.Store.Redis.Lock)
	assert.Equal(t, []string{"email"}, cfg.Security.ScrubPatterns)

	active, fallback, err := cfg.Keys()
	require.NoError(t, err)
	assert.Len(t, active, 32)
	assert.Empty(t, fallback)
}

func TestLoad_Invalid(t *testing.T) {
	path := writeConfig(t, `
log_level: loud
history_limit: 0
store:
  backend: s3
security:
  encryption_key: abcd
`)
	_, err := config.Load(path)
	require.Error(t, err)
	for _, want := range []string{"loud", "history_limit", "s3", "32 bytes"} {
		assert.Contains(t, err.Error(), want)
	}

	_, err = config.Load(writeConfig(t, "server: ["))
	assert.Error(t, err)
}
