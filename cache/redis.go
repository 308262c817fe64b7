package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces every key written by RedisCache.
const DefaultKeyPrefix = "dialect:"

// scanBatch is the COUNT hint passed to SCAN when enumerating entries.
const scanBatch = 256

// RedisCache is a Redis-backed translation cache shared between processes.
type RedisCache struct {
	client    *redis.Client
	ttl       time.Duration
	keyPrefix string
}

// RedisConfig holds configuration for the Redis cache.
type RedisConfig struct {
	URL       string // Redis connection URL (e.g., "redis://localhost:6379/0")
	TTL       int    // TTL in seconds (0 = no expiration)
	KeyPrefix string // Prefix for all keys (default: "dialect:")
}

// NewRedisCache connects to Redis and verifies the connection.
func NewRedisCache(ctx context.Context, cfg RedisConfig) (*RedisCache, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return NewRedisCacheFromClient(client, cfg.TTL, cfg.KeyPrefix), nil
}

// NewRedisCacheFromClient creates a RedisCache from an existing Redis client.
func NewRedisCacheFromClient(client *redis.Client, ttlSeconds int, keyPrefix string) *RedisCache {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}

	ttl := time.Duration(ttlSeconds) * time.Second
	if ttlSeconds <= 0 {
		ttl = 0
	}

	return &RedisCache{
		client:    client,
		ttl:       ttl,
		keyPrefix: keyPrefix,
	}
}

// Get retrieves a value from Redis. Errors are reported as misses.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}

// Set stores a value in Redis with the configured TTL.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte) error {
	return c.client.Set(ctx, c.keyPrefix+key, value, c.ttl).Err()
}

// Entries walks the key space under the prefix with SCAN and returns every
// entry with the prefix removed. Keys expiring mid-walk are skipped.
func (c *RedisCache) Entries(ctx context.Context) (map[string][]byte, error) {
	result := make(map[string][]byte)
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, scanPattern(c.keyPrefix), scanBatch).Result()
		if err != nil {
			return nil, fmt.Errorf("scanning keys: %w", err)
		}
		for _, fullKey := range keys {
			val, err := c.client.Get(ctx, fullKey).Bytes()
			if errors.Is(err, redis.Nil) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("reading %s: %w", fullKey, err)
			}
			result[strings.TrimPrefix(fullKey, c.keyPrefix)] = val
		}
		if next == 0 {
			return result, nil
		}
		cursor = next
	}
}

// globEscaper backslash-escapes the characters Redis MATCH patterns treat
// specially.
var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

// scanPattern matches every key that starts with prefix, taken literally.
func scanPattern(prefix string) string {
	return globEscaper.Replace(prefix) + "*"
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Ping tests the Redis connection.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

var _ ExportableCache = (*RedisCache)(nil)
