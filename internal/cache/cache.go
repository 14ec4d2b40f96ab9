package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Cache stores per-category verdicts keyed by strategy text
type Cache interface {
	Get(text string) ([]bool, bool)
	Set(text string, verdict []bool)
	Len() int
}

// Key generates a cache key from a strategy text
func Key(text string) string {
	hash := sha256.Sum256([]byte(text))
	return "stratclass:v1:" + hex.EncodeToString(hash[:])
}
