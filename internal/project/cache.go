package project

import "sync"

// DirCache memoizes extracted canonical paths per project
// identifier. It is purely an optimization: a miss recomputes
// the same value a hit would return, so concurrent population
// races are harmless. Invalidation happens whenever the registry
// changes or the watcher sees store activity.
type DirCache struct {
	mu    sync.RWMutex
	paths map[string]string
}

// NewDirCache returns an empty DirCache.
func NewDirCache() *DirCache {
	return &DirCache{paths: make(map[string]string)}
}

// Get returns the cached path for identifier, if present.
func (c *DirCache) Get(identifier string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	path, ok := c.paths[identifier]
	return path, ok
}

// Put stores the extracted path for identifier.
func (c *DirCache) Put(identifier, path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paths[identifier] = path
}

// Invalidate drops one identifier's entry.
func (c *DirCache) Invalidate(identifier string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.paths, identifier)
}

// Clear drops every entry.
func (c *DirCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paths = make(map[string]string)
}
