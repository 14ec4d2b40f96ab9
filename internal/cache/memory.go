package cache

import (
	"sync/atomic"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache keeps verdicts in memory for the lifetime of a run
type MemoryCache struct {
	cache  *gocache.Cache
	hits   atomic.Int64
	misses atomic.Int64
}

// NewMemoryCache creates a memory cache whose entries never expire
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(gocache.NoExpiration, 0),
	}
}

// Get retrieves the verdict for a text
func (c *MemoryCache) Get(text string) ([]bool, bool) {
	if val, found := c.cache.Get(Key(text)); found {
		c.hits.Add(1)
		return val.([]bool), true
	}
	c.misses.Add(1)
	return nil, false
}

// Set stores the verdict for a text. The slice must not be modified afterwards.
func (c *MemoryCache) Set(text string, verdict []bool) {
	c.cache.Set(Key(text), verdict, gocache.NoExpiration)
}

// Len returns the number of cached texts
func (c *MemoryCache) Len() int {
	return c.cache.ItemCount()
}

// Stats returns hit and miss counts
func (c *MemoryCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Clear removes all entries
func (c *MemoryCache) Clear() {
	c.cache.Flush()
	c.hits.Store(0)
	c.misses.Store(0)
}
