package adapters

import (
	"context"
	"fxconvert/internal/domain"
)

type RateClient interface {
	FetchPairRate(ctx context.Context, source string, target string) (float64, error)
	FetchAllRates(ctx context.Context, base string) (map[string]float64, error)
}

type RateCache interface {
	Get(key domain.PairKey) (float64, bool)
	Set(key domain.PairKey, rate float64)
}

// ExpiredSweeper is implemented by caches that can drop expired entries on demand.
type ExpiredSweeper interface {
	Sweep() int
}
