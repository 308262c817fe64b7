package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "dialect.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"
  shutdown_timeout: "3s"
  max_batch: 25

tables:
  path: "/etc/dialect/en.yaml"
  reload_interval: "5m"

cache:
  backend: "redis"
  ttl: "30m"
  redis_url: "redis://localhost:6379/0"
  key_prefix: "test:"
  snapshot_file: "/var/lib/dialect/cache.json"

rate_limit:
  enabled: true
  rps: 2.5
  burst: 5

log:
  level: "debug"
  format: "json"
`

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DIALECT_CONFIG", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
	assert.Equal(t, 100, cfg.Server.MaxBatch)

	assert.Empty(t, cfg.Tables.Path)
	assert.Empty(t, cfg.Tables.URL)
	assert.Zero(t, cfg.Tables.ReloadInterval)

	assert.Equal(t, CacheMemory, cfg.Cache.Backend)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 10000, cfg.Cache.MaxEntries)
	assert.Equal(t, "dialect:", cfg.Cache.KeyPrefix)

	assert.True(t, cfg.RateLimit.Enabled)
	assert.InDelta(t, 10.0, cfg.RateLimit.RPS, 0.001)
	assert.Equal(t, 20, cfg.RateLimit.Burst)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, LogFormatAuto, cfg.Log.Format)
}

func TestLoad_YAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout, "unset keys keep their defaults")
	assert.Equal(t, 25, cfg.Server.MaxBatch)
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr())

	assert.Equal(t, "/etc/dialect/en.yaml", cfg.Tables.Path)
	assert.Equal(t, 5*time.Minute, cfg.Tables.ReloadInterval)

	assert.Equal(t, CacheRedis, cfg.Cache.Backend)
	assert.Equal(t, 30*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Cache.RedisURL)
	assert.Equal(t, "test:", cfg.Cache.KeyPrefix)
	assert.Equal(t, "/var/lib/dialect/cache.json", cfg.Cache.SnapshotFile)

	assert.InDelta(t, 2.5, cfg.RateLimit.RPS, 0.001)
	assert.Equal(t, 5, cfg.RateLimit.Burst)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, LogFormatJSON, cfg.Log.Format)
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("DIALECT_SERVER_PORT", "7070")
	t.Setenv("DIALECT_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_PathFromEnv(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("DIALECT_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_InvalidConfig(t *testing.T) {
	path := writeYAML(t, t.TempDir(), "cache:\n  backend: \"memcached\"\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown backend")
}

func validConfig() *Config {
	return &Config{
		Server:    ServerConfig{Host: "0.0.0.0", Port: 3000, MaxBodyBytes: 1 << 20, MaxBatch: 100},
		Cache:     CacheConfig{Backend: CacheMemory, TTL: time.Hour, MaxEntries: 100},
		RateLimit: RateLimitConfig{Enabled: true, RPS: 10, Burst: 20},
		Log:       LogConfig{Level: "info", Format: LogFormatAuto},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"body limit", func(c *Config) { c.Server.MaxBodyBytes = 0 }, "max_body_bytes"},
		{"batch limit", func(c *Config) { c.Server.MaxBatch = 0 }, "max_batch"},
		{"path and url", func(c *Config) { c.Tables.Path = "a"; c.Tables.URL = "http://b" }, "mutually exclusive"},
		{"reload without source", func(c *Config) { c.Tables.ReloadInterval = time.Minute }, "requires path or url"},
		{"reload with url", func(c *Config) { c.Tables.URL = "http://b"; c.Tables.ReloadInterval = time.Minute }, ""},
		{"redis without url", func(c *Config) { c.Cache.Backend = CacheRedis }, "redis_url"},
		{"no cache", func(c *Config) { c.Cache.Backend = CacheNone }, ""},
		{"negative ttl", func(c *Config) { c.Cache.TTL = -time.Second }, "ttl"},
		{"zero rps", func(c *Config) { c.RateLimit.RPS = 0 }, "rps"},
		{"zero burst", func(c *Config) { c.RateLimit.Burst = 0 }, "burst"},
		{"limiter disabled", func(c *Config) { c.RateLimit = RateLimitConfig{} }, ""},
		{"bad level", func(c *Config) { c.Log.Level = "verbose" }, "level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
