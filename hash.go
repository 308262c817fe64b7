package dialect

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashText computes the SHA-256 hash of text.
// Whitespace is significant: the engine preserves it, so the hash does too.
func HashText(text string) string {
	hash := sha256.Sum256([]byte(text))
	return hex.EncodeToString(hash[:])
}

// CacheKey generates a cache key from a text hash and a direction.
func CacheKey(hash string, dir Direction) string {
	return hash + ":" + string(dir)
}

// CacheKeyExtended generates a cache key that also pins the table snapshot.
// Use this whenever tables can be reloaded while cached results are live.
func CacheKeyExtended(hash string, dir Direction, fingerprint string) string {
	return hash + ":" + string(dir) + ":" + fingerprint
}
