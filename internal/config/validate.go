package config

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Validate checks the loaded configuration for invalid values and
// combinations. Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be > 0 (got %d)", c.Server.MaxBodyBytes)
	}
	if c.Server.MaxBatch <= 0 {
		return fmt.Errorf("server.max_batch must be > 0 (got %d)", c.Server.MaxBatch)
	}

	if err := c.Tables.validate(); err != nil {
		return fmt.Errorf("tables: %w", err)
	}
	if err := c.Cache.validate(); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	if err := c.RateLimit.validate(); err != nil {
		return fmt.Errorf("rate_limit: %w", err)
	}
	if err := c.Log.validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	return nil
}

func (t *TablesConfig) validate() error {
	if t.Path != "" && t.URL != "" {
		return errors.New("path and url are mutually exclusive")
	}
	if t.ReloadInterval < 0 {
		return fmt.Errorf("reload_interval must be >= 0 (got %s)", t.ReloadInterval)
	}
	if t.ReloadInterval > 0 && t.Path == "" && t.URL == "" {
		return errors.New("reload_interval requires path or url")
	}
	return nil
}

func (c *CacheConfig) validate() error {
	switch c.Backend {
	case CacheMemory, CacheNone:
	case CacheRedis:
		if c.RedisURL == "" {
			return errors.New("redis_url is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown backend %q (want memory, redis or none)", c.Backend)
	}
	if c.TTL < 0 {
		return fmt.Errorf("ttl must be >= 0 (got %s)", c.TTL)
	}
	if c.MaxEntries < 0 {
		return fmt.Errorf("max_entries must be >= 0 (got %d)", c.MaxEntries)
	}
	return nil
}

func (r *RateLimitConfig) validate() error {
	if !r.Enabled {
		return nil
	}
	if r.RPS <= 0 {
		return fmt.Errorf("rps must be > 0 (got %v)", r.RPS)
	}
	if r.Burst < 1 {
		return fmt.Errorf("burst must be >= 1 (got %d)", r.Burst)
	}
	return nil
}

func (l *LogConfig) validate() error {
	if _, err := zerolog.ParseLevel(l.Level); err != nil {
		return fmt.Errorf("level: %w", err)
	}
	switch l.Format {
	case LogFormatAuto, LogFormatConsole, LogFormatJSON:
		return nil
	default:
		return fmt.Errorf("unknown format %q (want auto, console or json)", l.Format)
	}
}
