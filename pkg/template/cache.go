package template

import "sync"

// cacheKey identifies one compiled render function. Locale and engine are part
// of the key because the same field compiles differently per translation and
// per engine.
type cacheKey struct {
	templateID string
	channel    string
	field      string
	locale     string
	engine     string
}

// renderCache holds compiled render functions for the lifetime of the process.
// It is safe to race: a duplicate compile is wasted work, not a correctness
// problem. Entries are purged wholesale per template on update or removal;
// the cache is never persisted and is idempotent to rebuild.
type renderCache struct {
	entries map[cacheKey]RenderFunc
	mu      sync.RWMutex
}

func newRenderCache() *renderCache {
	return &renderCache{
		entries: make(map[cacheKey]RenderFunc),
	}
}

func (c *renderCache) get(key cacheKey) (RenderFunc, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fn, ok := c.entries[key]
	return fn, ok
}

func (c *renderCache) put(key cacheKey, fn RenderFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = fn
}

// invalidateTemplate removes every cached entry compiled from the template.
// An in-flight render may still finish with a stale compiled function; that
// staleness is acceptable since the content it was compiled from was valid
// when the render started.
func (c *renderCache) invalidateTemplate(templateID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if key.templateID == templateID {
			delete(c.entries, key)
		}
	}
}
