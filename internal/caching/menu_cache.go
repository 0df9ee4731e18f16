package caching

import (
	"sync"
	"time"

	"menuboard/internal/models"
)

// menuTTL is how long a cached category list stays valid.
const menuTTL = 5 * time.Minute

// MenuCache is a single-slot cache for the full category list (items
// populated). It is owned exclusively by the menu service; replacement is
// wholesale and a slot past its TTL is treated as absent. The mutex keeps
// the slot all-or-nothing under concurrent requests.
type MenuCache struct {
	mu         sync.Mutex
	categories []*models.Category
	valid      bool
	capturedAt time.Time
	now        func() time.Time
}

func NewMenuCache() *MenuCache {
	return &MenuCache{now: time.Now}
}

// Get returns the cached list if present and younger than the TTL. A stale
// slot is cleared as a side effect. Presence is tracked separately from the
// list itself, so an empty menu caches like any other.
func (c *MenuCache) Get() ([]*models.Category, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.valid {
		return nil, false
	}
	if c.now().Sub(c.capturedAt) > menuTTL {
		c.clear()
		return nil, false
	}
	return c.categories, true
}

// Set replaces the slot wholesale and stamps the capture instant. It always
// succeeds, including for an empty list.
func (c *MenuCache) Set(categories []*models.Category) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.categories = categories
	c.valid = true
	c.capturedAt = c.now()
}

// Invalidate clears the slot unconditionally. Idempotent.
func (c *MenuCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clear()
}

func (c *MenuCache) clear() {
	c.categories = nil
	c.valid = false
	c.capturedAt = time.Time{}
}
