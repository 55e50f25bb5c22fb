package cache

import (
	"sync"
	"time"

	"fxconvert/internal/domain"

	"github.com/jonboulle/clockwork"
)

type entry struct {
	rate       float64
	recordedAt time.Time
}

// RateCache keeps the last fetched rate per pair for a fixed TTL.
// Expired entries are invisible to Get but stay in the map until overwritten or swept.
type RateCache struct {
	mu      sync.RWMutex
	entries map[domain.PairKey]entry
	ttl     time.Duration
	clock   clockwork.Clock
}

func NewRateCache(ttl time.Duration, clock clockwork.Clock) *RateCache {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &RateCache{
		entries: make(map[domain.PairKey]entry),
		ttl:     ttl,
		clock:   clock,
	}
}

func (c *RateCache) Get(key domain.PairKey) (float64, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || !c.live(e) {
		return 0, false
	}
	return e.rate, true
}

func (c *RateCache) Set(key domain.PairKey, rate float64) {
	c.mu.Lock()
	c.entries[key] = entry{rate: rate, recordedAt: c.clock.Now()}
	c.mu.Unlock()
}

// Sweep deletes expired entries and reports how many were removed.
func (c *RateCache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, e := range c.entries {
		if !c.live(e) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Len counts stored entries, expired ones included.
func (c *RateCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *RateCache) TTL() time.Duration { return c.ttl }

func (c *RateCache) live(e entry) bool {
	return c.clock.Since(e.recordedAt) < c.ttl
}
