package track

import (
	"context"
	"sync"
)

// TabCache remembers the most recently reported focused-tab URL. Idle
// transitions carry no URL, so the tracker re-resolves the focused tab from
// here when the user becomes active again. The RPC layer records every
// reported tab, including those seen while the tracker was idle.
type TabCache struct {
	mu  sync.Mutex
	url string
}

// NewTabCache creates an empty cache.
func NewTabCache() *TabCache {
	return &TabCache{}
}

// Record stores the latest focused-tab URL.
func (c *TabCache) Record(url string) {
	if url == "" {
		return
	}
	c.mu.Lock()
	c.url = url
	c.mu.Unlock()
}

// ActiveTab returns the last recorded URL, if any.
func (c *TabCache) ActiveTab(_ context.Context) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.url, c.url != ""
}
