package cache

import (
	"fmt"
	"time"

	"fxconvert/internal/domain"

	"github.com/dgraph-io/ristretto"
)

// BoundedRateCache caps the number of remembered pairs. Admission is decided by
// ristretto, so a Set may be dropped under pressure and the next lookup refetches.
type BoundedRateCache struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

func NewBoundedRateCache(maxItems int64, ttl time.Duration) (*BoundedRateCache, error) {
	if maxItems <= 0 {
		return nil, fmt.Errorf("max items must be positive, got %d", maxItems)
	}
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxItems,
		MaxCost:     maxItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create bounded rate cache failed: %w", err)
	}
	return &BoundedRateCache{cache: c, ttl: ttl}, nil
}

func (c *BoundedRateCache) Get(key domain.PairKey) (float64, bool) {
	if v, ok := c.cache.Get(string(key)); ok {
		rate, ok := v.(float64)
		return rate, ok
	}
	return 0, false
}

func (c *BoundedRateCache) Set(key domain.PairKey, rate float64) {
	c.cache.SetWithTTL(string(key), rate, 1, c.ttl)
	// make the write visible to the next Get
	c.cache.Wait()
}

func (c *BoundedRateCache) Close() { c.cache.Close() }
