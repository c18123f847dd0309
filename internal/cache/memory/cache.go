// Package memory provides an in-memory cache.Cache implementation.
// Intended for tests and the local CLI harness.
package memory

import (
	"context"
	"sync"
)

// Cache is an in-memory cache.Cache.
type Cache struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewCache creates an empty in-memory cache.
func NewCache() *Cache {
	return &Cache{values: make(map[string][]byte)}
}

// Get returns a copy of the blob stored under key.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Set stores a copy of the blob under key.
func (c *Cache) Set(ctx context.Context, key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.values[key] = append([]byte(nil), value...)
	return nil
}
