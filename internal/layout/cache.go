package layout

type cacheEntry struct {
	Layout Layout
	Err    *LayoutError
}

type cache struct {
	byType map[string]cacheEntry
}

func newCache() *cache {
	return &cache{byType: make(map[string]cacheEntry, 256)}
}

func (c *cache) get(t string) (cacheEntry, bool) {
	if c == nil {
		return cacheEntry{}, false
	}
	l, ok := c.byType[t]
	return l, ok
}

func (c *cache) put(t string, l *cacheEntry) {
	if c == nil {
		return
	}
	if l == nil {
		delete(c.byType, t)
		return
	}
	c.byType[t] = *l
}
