// Package config loads the dialect service configuration.
package config

import (
	"net"
	"strconv"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Tables    TablesConfig    `yaml:"tables"`
	Cache     CacheConfig     `yaml:"cache"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"DIALECT_SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"DIALECT_SERVER_PORT"             env-default:"3000"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"DIALECT_SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"DIALECT_SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"DIALECT_SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"DIALECT_SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"   env:"DIALECT_SERVER_MAX_BODY_BYTES"   env-default:"1048576"`
	MaxBatch        int           `yaml:"max_batch"        env:"DIALECT_SERVER_MAX_BATCH"        env-default:"100"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// TablesConfig selects where lookup tables come from. With neither Path nor
// URL set the bundled tables are used.
type TablesConfig struct {
	Path           string        `yaml:"path"            env:"DIALECT_TABLES_PATH"`
	URL            string        `yaml:"url"             env:"DIALECT_TABLES_URL"`
	ReloadInterval time.Duration `yaml:"reload_interval" env:"DIALECT_TABLES_RELOAD_INTERVAL" env-default:"0s"`
}

// Cache backends.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheNone   = "none"
)

// CacheConfig holds result cache settings.
type CacheConfig struct {
	Backend      string        `yaml:"backend"       env:"DIALECT_CACHE_BACKEND"       env-default:"memory"`
	TTL          time.Duration `yaml:"ttl"           env:"DIALECT_CACHE_TTL"           env-default:"1h"`
	MaxEntries   int           `yaml:"max_entries"   env:"DIALECT_CACHE_MAX_ENTRIES"   env-default:"10000"`
	RedisURL     string        `yaml:"redis_url"     env:"DIALECT_CACHE_REDIS_URL"`
	KeyPrefix    string        `yaml:"key_prefix"    env:"DIALECT_CACHE_KEY_PREFIX"    env-default:"dialect:"`
	SnapshotFile string        `yaml:"snapshot_file" env:"DIALECT_CACHE_SNAPSHOT_FILE"`
}

// RateLimitConfig holds per-client request limits.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" env:"DIALECT_RATE_LIMIT_ENABLED" env-default:"true"`
	RPS     float64 `yaml:"rps"     env:"DIALECT_RATE_LIMIT_RPS"     env-default:"10"`
	Burst   int     `yaml:"burst"   env:"DIALECT_RATE_LIMIT_BURST"   env-default:"20"`
}

// Log formats.
const (
	LogFormatAuto    = "auto"
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"DIALECT_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"DIALECT_LOG_FORMAT" env-default:"auto"`
}
