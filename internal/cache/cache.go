// Package cache memoizes per-URL retrieval results with TTL expiry and a
// bounded entry count. A cache failure always degrades to a miss, never to
// an error visible to retrieval.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the byte-level caching interface
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a stable cache key from a source URL
func Key(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "veritas:v1:" + hex.EncodeToString(hash[:])
}
