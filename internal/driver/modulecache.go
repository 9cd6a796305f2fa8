package driver

import (
	"sync"

	"mslayout/internal/project"
	"mslayout/internal/resolver"
)

// MemoryCache keeps resolvers built during this process, keyed like the disk
// cache. Long-running callers (the inspector, batch runs over many tops) hit
// it before touching the disk.
type MemoryCache struct {
	mu    sync.RWMutex
	byKey map[project.Digest]*resolver.Resolver
}

// NewMemoryCache creates a MemoryCache with the given capacity hint.
func NewMemoryCache(capHint int) *MemoryCache {
	return &MemoryCache{byKey: make(map[project.Digest]*resolver.Resolver, capHint)}
}

// Get retrieves a resolver by key.
func (c *MemoryCache) Get(key project.Digest) (*resolver.Resolver, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	r, ok := c.byKey[key]
	c.mu.RUnlock()
	return r, ok
}

// Put stores a resolver. Resolvers are read-only, so sharing is safe.
func (c *MemoryCache) Put(key project.Digest, r *resolver.Resolver) {
	if c == nil || r == nil {
		return
	}
	c.mu.Lock()
	c.byKey[key] = r
	c.mu.Unlock()
}

// Len reports the number of cached resolvers.
func (c *MemoryCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byKey)
}
