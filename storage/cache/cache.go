package cache

import (
	"sync"
)

// Cache is a concurrency safe in-memory store keyed by string. Sealed base
// blocks are immutable, so readers can serve cached copies without
// revalidation.
type Cache struct {
	mu    sync.RWMutex
	items map[string]interface{}
}

func New() *Cache {
	return &Cache{items: make(map[string]interface{})}
}

func (c *Cache) Set(k string, x interface{}) {
	c.mu.Lock()
	c.items[k] = x
	c.mu.Unlock()
}

func (c *Cache) Get(k string) (interface{}, bool) {
	c.mu.RLock()
	x, found := c.items[k]
	c.mu.RUnlock()
	return x, found
}

func (c *Cache) Delete(k string) {
	c.mu.Lock()
	delete(c.items, k)
	c.mu.Unlock()
}

func (c *Cache) Len() int {
	c.mu.RLock()
	n := len(c.items)
	c.mu.RUnlock()
	return n
}
