package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPairKey_ConcatenatesWithSeparator(t *testing.T) {
	require.Equal(t, PairKey("USD_EUR"), NewPairKey("USD", "EUR"))
	require.Equal(t, PairKey("usd_EUR"), NewPairKey("usd", "EUR"))
}

func TestRatePair_KeyAndReversed(t *testing.T) {
	p := RatePair{Source: "GBP", Target: "JPY"}
	require.Equal(t, PairKey("GBP_JPY"), p.Key())
	require.Equal(t, RatePair{Source: "JPY", Target: "GBP"}, p.Reversed())
	require.NotEqual(t, p.Key(), p.Reversed().Key())
}

func TestAPIResponseError_MessageAndErrorsAs(t *testing.T) {
	err := fmt.Errorf("failed to fetch: %w", &APIResponseError{StatusCode: 503, Message: "unavailable"})

	var apiErr *APIResponseError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, 503, apiErr.StatusCode)
	require.EqualError(t, apiErr, "api response error (status 503): unavailable")
	require.EqualError(t, &APIResponseError{Message: "invalid-key"}, "api response error: invalid-key")
}
