package cache

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tradeops/backend/internal/domain/shared/valueobject"
)

type rateEntry struct {
	rate      decimal.Decimal
	expiresAt time.Time
}

// InMemoryRateCache is a process-local rate cache for single-instance
// deployments and tests. State is not shared across instances.
type InMemoryRateCache struct {
	mu      sync.RWMutex
	entries map[valueobject.Currency]map[string]rateEntry
	ttl     time.Duration
}

// NewInMemoryRateCache creates an in-memory rate cache. A zero ttl disables
// expiry.
func NewInMemoryRateCache(ttl time.Duration) *InMemoryRateCache {
	return &InMemoryRateCache{
		entries: make(map[valueobject.Currency]map[string]rateEntry),
		ttl:     ttl,
	}
}

// Get returns the cached rate for a period, if present and unexpired
func (c *InMemoryRateCache) Get(_ context.Context, period valueobject.Period, target valueobject.Currency) (decimal.Decimal, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[target][period.String()]
	if !ok {
		return decimal.Zero, false
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		return decimal.Zero, false
	}
	return entry.rate, true
}

// Set caches a rate for a period
func (c *InMemoryRateCache) Set(_ context.Context, period valueobject.Period, target valueobject.Currency, rate decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.entries[target] == nil {
		c.entries[target] = make(map[string]rateEntry)
	}
	var expiresAt time.Time
	if c.ttl > 0 {
		expiresAt = time.Now().Add(c.ttl)
	}
	c.entries[target][period.String()] = rateEntry{rate: rate, expiresAt: expiresAt}
}

// InvalidateTarget drops every cached period for a target currency
func (c *InMemoryRateCache) InvalidateTarget(_ context.Context, target valueobject.Currency) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, target)
	return nil
}
