// Package cache stores fetched live-page text. The memory layer dedups
// repeated fetches of the same origin URL within a run; the disk layer
// optionally carries pages across runs with a TTL.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for page caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// PageKey generates a cache key from an origin URL
func PageKey(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "lexdrift:v1:" + hex.EncodeToString(hash[:])
}
