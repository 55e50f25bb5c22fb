package rate

import (
	"context"
	"fmt"
	"math"
	"time"

	"fxconvert/internal/adapters"
	"fxconvert/internal/domain"
	"fxconvert/internal/metrics"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// Service answers pair lookups cache-aside: a live cached rate is returned without
// touching the network, a miss goes to the rate client and is stored on success.
//
// Lookups are not atomic as a whole. Two concurrent misses for one pair both reach the
// client and the later Set wins, unless the service is built WithCoalescing.
type Service struct {
	client  adapters.RateClient
	cache   adapters.RateCache
	metrics *metrics.Metrics

	coalesce bool
	inflight singleflight.Group
}

type Option func(*Service)

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithCoalescing makes concurrent misses on the same pair share a single client call.
// The shared call runs with the context of whichever caller started it.
func WithCoalescing() Option {
	return func(s *Service) { s.coalesce = true }
}

func (s *Service) FetchRate(ctx context.Context, source string, target string) (float64, error) {
	key := domain.NewPairKey(source, target)
	if rate, ok := s.cache.Get(key); ok {
		s.metrics.CacheHit()
		logrus.WithField("pair", key).Debug("rate served from cache")
		return rate, nil
	}
	s.metrics.CacheMiss()

	if !s.coalesce {
		return s.fetchAndStore(ctx, key, source, target)
	}

	v, err, shared := s.inflight.Do(string(key), func() (any, error) {
		return s.fetchAndStore(ctx, key, source, target)
	})
	if err != nil {
		return 0, err
	}
	if shared {
		logrus.WithField("pair", key).Debug("joined in-flight rate fetch")
	}
	return v.(float64), nil
}

// fetchAndStore must not be called with any cache lock held.
func (s *Service) fetchAndStore(ctx context.Context, key domain.PairKey, source string, target string) (float64, error) {
	start := time.Now()
	rate, err := s.client.FetchPairRate(ctx, source, target)
	s.metrics.Upstream(metrics.OperationPairRate, time.Since(start).Seconds(), err)
	if err != nil {
		logrus.WithError(err).WithField("pair", key).Debug("rate fetch failed, nothing cached")
		return 0, err
	}

	if !validRate(rate) {
		return 0, &domain.APIResponseError{Message: fmt.Sprintf("invalid rate %v for pair %s", rate, key)}
	}

	s.cache.Set(key, rate)
	logrus.WithFields(logrus.Fields{"pair": key, "rate": rate}).Debug("rate fetched and cached")
	return rate, nil
}

// FetchAllRates always goes to the rate client; full tables are never cached.
func (s *Service) FetchAllRates(ctx context.Context, base string) (map[string]float64, error) {
	start := time.Now()
	rates, err := s.client.FetchAllRates(ctx, base)
	s.metrics.Upstream(metrics.OperationAllRates, time.Since(start).Seconds(), err)
	return rates, err
}

func (s *Service) Convert(ctx context.Context, source string, target string, amount float64) (domain.Conversion, error) {
	if err := ValidateAmount(amount); err != nil {
		return domain.Conversion{}, err
	}

	rate, err := s.FetchRate(ctx, source, target)
	if err != nil {
		return domain.Conversion{}, err
	}

	amt := decimal.NewFromFloat(amount)
	return domain.Conversion{
		Source:    source,
		Target:    target,
		Amount:    amt,
		Rate:      rate,
		Converted: amt.Mul(decimal.NewFromFloat(rate)),
	}, nil
}

func validRate(rate float64) bool {
	return !math.IsNaN(rate) && !math.IsInf(rate, 0) && rate >= 0
}

func NewService(client adapters.RateClient, cache adapters.RateCache, opts ...Option) *Service {
	s := &Service{client: client, cache: cache}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
