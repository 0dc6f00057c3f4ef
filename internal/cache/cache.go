package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Cache defines the interface for user-context caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// ContextKey generates a cache key for a username's gathered context.
// Usernames are case-insensitive on X, so the key is case-folded.
func ContextKey(username string) string {
	hash := sha256.Sum256([]byte(strings.ToLower(username)))
	return "feedlens:ctx:v1:" + hex.EncodeToString(hash[:])
}
