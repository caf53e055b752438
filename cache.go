package pagedesk

import (
	"sync"
	"time"

	"github.com/eringen/pagedesk/page"
)

// PageLister is the read side of the store the menu is built from.
type PageLister interface {
	FindPages() ([]page.Summary, error)
}

// MenuCache is an in-memory cache of the page summaries shown in the site
// navigation, with TTL. It implements editor.MenuRefresher.
type MenuCache struct {
	mu      sync.RWMutex
	pages   []page.Summary
	fetched time.Time
	ttl     time.Duration
	store   PageLister
	loads   int
}

// NewMenuCache creates a MenuCache backed by the given store.
func NewMenuCache(s PageLister, ttl time.Duration) *MenuCache {
	return &MenuCache{store: s, ttl: ttl}
}

func (c *MenuCache) valid() bool {
	return c.pages != nil && time.Since(c.fetched) < c.ttl
}

// Refresh clears the cache so the next read reloads the menu from the store.
func (c *MenuCache) Refresh() {
	c.mu.Lock()
	c.pages = nil
	c.mu.Unlock()
}

// Pages returns the cached summaries, reloading them when stale. It tries a
// read lock first and only takes the write lock to reload.
func (c *MenuCache) Pages() ([]page.Summary, error) {
	c.mu.RLock()
	if c.valid() {
		pages := c.pages
		c.mu.RUnlock()
		return pages, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.pages, nil
	}
	pages, err := c.store.FindPages()
	if err != nil {
		return nil, err
	}
	if pages == nil {
		pages = []page.Summary{}
	}
	c.pages = pages
	c.fetched = time.Now()
	c.loads++
	return c.pages, nil
}
