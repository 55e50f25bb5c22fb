package rate

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"
	"time"

	"fxconvert/internal/domain"
	"fxconvert/internal/metrics"

	"github.com/sirupsen/logrus"
)

const numWorkers = 5
const perRequestTimeout = 5 * time.Second

var ErrNothingWarmed = errors.New("no pairs were warmed")

type pairRate struct {
	Pair  domain.RatePair
	Value float64
}

// WarmPairs prefetches pairs into the cache with one upstream call per distinct source.
// A pair whose reverse is also requested is derived as 1/rate from the same response.
func (s *Service) WarmPairs(ctx context.Context, execID string, pairs []domain.RatePair) (int, error) {
	if len(pairs) == 0 {
		return 0, nil
	}

	// STEP 1: drop duplicates and reversed pairs ("EUR/USD" is skipped when "USD/EUR" is present)
	pairSet := getUniquePairs(pairs)

	// STEP 2: one request per distinct source, fanned out over the worker pool
	pairValueMap := s.processInParallel(ctx, pairSet)

	// STEP 3: write every requested pair that got a value
	warmed := 0
	for _, p := range pairs {
		value, ok := resolvePairValue(p, pairValueMap)
		if !ok {
			logrus.Warnf("Pair '%s' wasn't warmed, it'll be fetched on first lookup; execID: %s", p.Key(), execID)
			continue
		}
		s.cache.Set(p.Key(), value)
		warmed++
	}

	if warmed == 0 {
		return 0, fmt.Errorf("%w out of %d; execID: %s", ErrNothingWarmed, len(pairs), execID)
	}
	logrus.Infof("%d of %d pairs warmed; execID: %s", warmed, len(pairs), execID)
	return warmed, nil
}

func getUniquePairs(pairs []domain.RatePair) map[domain.RatePair]struct{} {
	pairSet := make(map[domain.RatePair]struct{}, len(pairs))
	for _, pair := range pairs {
		if _, ok := pairSet[pair.Reversed()]; ok {
			continue
		}
		pairSet[pair] = struct{}{}
	}
	return pairSet
}

func getUniqueSources(pairs map[domain.RatePair]struct{}) map[string]struct{} {
	sourceSet := make(map[string]struct{})
	for p := range pairs {
		sourceSet[p.Source] = struct{}{}
	}
	return sourceSet
}

func resolvePairValue(p domain.RatePair, values map[domain.RatePair]float64) (float64, bool) {
	if v, ok := values[p]; ok && validRate(v) {
		return v, true
	}
	if v, ok := values[p.Reversed()]; ok && validRate(v) && v > 0 {
		return 1 / v, true
	}
	return 0, false
}

func (s *Service) processInParallel(ctx context.Context, pairs map[domain.RatePair]struct{}) map[domain.RatePair]float64 {
	sources := getUniqueSources(pairs)

	workQueue := make(chan string, len(sources))
	for source := range maps.Keys(sources) {
		workQueue <- source
	}
	close(workQueue)

	resultsCh := make(chan pairRate, len(pairs))

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			s.runWorker(ctx, workerID, workQueue, pairs, resultsCh)
		}(i)
	}

	wg.Wait()
	close(resultsCh)

	pairValueMap := make(map[domain.RatePair]float64, len(pairs))
	for r := range resultsCh {
		pairValueMap[r.Pair] = r.Value
	}
	return pairValueMap
}

func (s *Service) runWorker(ctx context.Context, workerID int, workQueue <-chan string, pairs map[domain.RatePair]struct{}, resultsCh chan<- pairRate) {
	for {
		select {
		case <-ctx.Done():
			return
		case source, ok := <-workQueue:
			if !ok {
				return
			}
			s.processSource(ctx, workerID, source, pairs, resultsCh)
		}
	}
}

// processSource fetches the full table for source and emits the requested pairs found in it
func (s *Service) processSource(ctx context.Context, workerID int, source string, pairs map[domain.RatePair]struct{}, resultsCh chan<- pairRate) {
	reqCtx, cancel := context.WithTimeout(ctx, perRequestTimeout)
	defer cancel()

	start := time.Now()
	ratesMap, err := s.client.FetchAllRates(reqCtx, source)
	s.metrics.Upstream(metrics.OperationAllRates, time.Since(start).Seconds(), err)
	if err != nil {
		logrus.Warnf("Source '%s' wasn't processed by worker %d as external api call returned error: %s", source, workerID, err)
		return
	}

	for target, v := range ratesMap {
		p := domain.RatePair{Source: source, Target: target}
		if _, ok := pairs[p]; ok {
			resultsCh <- pairRate{Pair: p, Value: v}
		}
	}
}
