package cache

import (
	"context"
	"sync"
	"time"

	"github.com/tradeerp/backend/internal/domain/catalog"
)

type entry struct {
	info      catalog.TaxInfo
	expiresAt time.Time
}

// InMemoryTaxInfoCache keeps tax info in a process local map.
// Entries are not shared across instances.
type InMemoryTaxInfoCache struct {
	mu        sync.RWMutex
	entries   map[string]entry
	ttl       time.Duration
	now       func() time.Time
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryTaxInfoCache creates the cache and starts a goroutine that evicts expired entries
func NewInMemoryTaxInfoCache(ttl time.Duration) *InMemoryTaxInfoCache {
	c := &InMemoryTaxInfoCache{
		entries:  make(map[string]entry),
		ttl:      ttl,
		now:      time.Now,
		stopChan: make(chan struct{}),
	}

	c.wg.Add(1)
	go c.cleanupLoop()

	return c
}

// GetTaxInfo returns the cached tax info, or nil on a miss or after expiry
func (c *InMemoryTaxInfoCache) GetTaxInfo(_ context.Context, serialNumber string) (*catalog.TaxInfo, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[serialNumber]
	if !ok || !c.now().Before(e.expiresAt) {
		return nil, nil
	}
	info := e.info
	return &info, nil
}

// SetTaxInfo caches info for the configured TTL
func (c *InMemoryTaxInfoCache) SetTaxInfo(_ context.Context, info catalog.TaxInfo) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[info.SerialNumber] = entry{info: info, expiresAt: c.now().Add(c.ttl)}
	return nil
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (c *InMemoryTaxInfoCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopChan)
		c.wg.Wait()
	})
	return nil
}

func (c *InMemoryTaxInfoCache) cleanupLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

func (c *InMemoryTaxInfoCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, key)
		}
	}
}

// Size returns the number of entries, expired ones included until the next cleanup
func (c *InMemoryTaxInfoCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Ensure InMemoryTaxInfoCache implements TaxInfoStore
var _ TaxInfoStore = (*InMemoryTaxInfoCache)(nil)
