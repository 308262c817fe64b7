// Package cache provides translation result caching implementations.
package cache

import "context"

// TranslationCache stores encoded translation results by key.
type TranslationCache interface {
	// Get retrieves a cached value. Returns nil and false if not found or expired.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores a value in the cache.
	Set(ctx context.Context, key string, value []byte) error
}

// ExportableCache is implemented by caches whose contents can be enumerated.
type ExportableCache interface {
	TranslationCache

	// Entries returns every live entry.
	Entries(ctx context.Context) (map[string][]byte, error)
}
