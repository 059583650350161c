package anubis

import (
	"sync"
	"time"

	"github.com/riskibarqy/arena-scrim/internal/domain/user"
)

type principalEntry struct {
	principal user.Principal
	expiresAt time.Time
}

// principalCache keeps introspection results keyed by token hash so a
// session does not cost one identity round trip per request.
type principalCache struct {
	mu         sync.RWMutex
	entries    map[string]principalEntry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

func newPrincipalCache(ttl time.Duration, maxEntries int) *principalCache {
	return &principalCache{
		entries:    make(map[string]principalEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (c *principalCache) Get(key string) (user.Principal, bool) {
	now := c.now()

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return user.Principal{}, false
	}
	if !entry.expiresAt.After(now) {
		c.Delete(key)
		return user.Principal{}, false
	}
	return entry.principal, true
}

func (c *principalCache) Set(key string, principal user.Principal) {
	if c.ttl <= 0 {
		return
	}
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		c.evictExpiredLocked(now)
		if len(c.entries) >= c.maxEntries {
			c.evictSoonestLocked()
		}
	}
	c.entries[key] = principalEntry{principal: principal, expiresAt: now.Add(c.ttl)}
}

func (c *principalCache) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

func (c *principalCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *principalCache) evictExpiredLocked(now time.Time) {
	for key, entry := range c.entries {
		if !entry.expiresAt.After(now) {
			delete(c.entries, key)
		}
	}
}

func (c *principalCache) evictSoonestLocked() {
	var (
		victim string
		oldest time.Time
	)
	for key, entry := range c.entries {
		if victim == "" || entry.expiresAt.Before(oldest) {
			victim, oldest = key, entry.expiresAt
		}
	}
	delete(c.entries, victim)
}
