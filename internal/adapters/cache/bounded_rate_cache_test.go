package cache

import (
	"testing"
	"time"

	"fxconvert/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestBoundedRateCache_RejectsNonPositiveSize(t *testing.T) {
	_, err := NewBoundedRateCache(0, time.Hour)
	require.Error(t, err)
	require.Contains(t, err.Error(), "max items must be positive")
}

func TestBoundedRateCache_SetAndGet(t *testing.T) {
	c, err := NewBoundedRateCache(128, time.Hour)
	require.NoError(t, err)
	defer c.Close()

	c.Set(domain.NewPairKey("USD", "EUR"), 0.92)

	got, ok := c.Get(domain.NewPairKey("USD", "EUR"))
	require.True(t, ok)
	require.InDelta(t, 0.92, got, 1e-9)
}

func TestBoundedRateCache_GetMissWhenEmpty(t *testing.T) {
	c, err := NewBoundedRateCache(64, time.Hour)
	require.NoError(t, err)
	defer c.Close()

	rate, ok := c.Get(domain.NewPairKey("EUR", "USD"))
	require.False(t, ok)
	require.Zero(t, rate)
}

func TestBoundedRateCache_PairsAreIsolated(t *testing.T) {
	c, err := NewBoundedRateCache(256, time.Hour)
	require.NoError(t, err)
	defer c.Close()

	c.Set(domain.NewPairKey("USD", "EUR"), 0.92)

	_, ok := c.Get(domain.NewPairKey("USD", "GBP"))
	require.False(t, ok)
	_, ok = c.Get(domain.NewPairKey("EUR", "USD"))
	require.False(t, ok)
}

func TestBoundedRateCache_EntryExpires(t *testing.T) {
	c, err := NewBoundedRateCache(64, 50*time.Millisecond)
	require.NoError(t, err)
	defer c.Close()

	key := domain.NewPairKey("USD", "JPY")
	c.Set(key, 150.0)

	require.Eventually(t, func() bool {
		_, ok := c.Get(key)
		return !ok
	}, 2*time.Second, 10*time.Millisecond)
}
