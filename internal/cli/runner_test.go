package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"fxconvert/internal/adapters/cache"
	"fxconvert/internal/domain"
	"fxconvert/internal/rate"

	"github.com/stretchr/testify/require"
)

type stubClient struct {
	mu    sync.Mutex
	calls map[string]int
	rates map[string]float64
	err   error
}

func newStubClient(rates map[string]float64) *stubClient {
	return &stubClient{calls: map[string]int{}, rates: rates}
}

func (c *stubClient) FetchPairRate(_ context.Context, source string, target string) (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls[source+"_"+target]++
	if c.err != nil {
		return 0, c.err
	}
	v, ok := c.rates[target]
	if !ok {
		return 0, domain.ErrCurrencyNotFound
	}
	return v, nil
}

func (c *stubClient) FetchAllRates(_ context.Context, base string) (map[string]float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls[base]++
	if c.err != nil {
		return nil, c.err
	}
	return c.rates, nil
}

func newRunner(client *stubClient) (*Runner, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	svc := rate.NewService(client, cache.NewRateCache(2*time.Hour, nil))
	return NewRunner(svc, rate.NewValidator(nil), &out, &errOut), &out, &errOut
}

func TestRenderError(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{
			err:  fmt.Errorf("dial: %w", domain.ErrNetwork),
			want: "Failed to reach the currency conversion API. Please check your network connection.",
		},
		{
			err:  fmt.Errorf("wrapped: %w", &domain.APIResponseError{StatusCode: 403, Message: "invalid-key"}),
			want: "API Error: invalid-key",
		},
		{
			err:  domain.ErrCurrencyNotFound,
			want: "One or both specified currencies are not supported.",
		},
		{
			err:  rate.ErrInvalidAmount,
			want: "Invalid input: amount must be a positive number",
		},
		{
			err:  errors.New("boom"),
			want: "An unexpected error occurred: boom",
		},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, RenderError(tc.err))
	}
}

func TestRunner_Convert_PrintsRateAndAmount(t *testing.T) {
	r, out, errOut := newRunner(newStubClient(map[string]float64{"EUR": 0.92}))

	err := r.Convert(context.Background(), "usd", "eur", 100)
	require.NoError(t, err)
	require.Equal(t, "Exchange Rate: 0.92\nConverted Amount: 92\n", out.String())
	require.Empty(t, errOut.String())
}

func TestRunner_Convert_RendersErrors(t *testing.T) {
	client := newStubClient(map[string]float64{"EUR": 0.92})
	r, out, errOut := newRunner(client)

	err := r.Convert(context.Background(), "USD", "XYZ", 1)
	require.ErrorIs(t, err, domain.ErrCurrencyNotFound)
	require.Empty(t, out.String())
	require.Equal(t, "One or both specified currencies are not supported.\n", errOut.String())
}

func TestRunner_Convert_RejectsInvalidInputWithoutFetching(t *testing.T) {
	client := newStubClient(map[string]float64{"EUR": 0.92})
	r, _, errOut := newRunner(client)

	err := r.Convert(context.Background(), "US", "EUR", 1)
	require.ErrorIs(t, err, rate.ErrInvalidCode)

	err = r.Convert(context.Background(), "USD", "EUR", -1)
	require.ErrorIs(t, err, rate.ErrInvalidAmount)

	require.Empty(t, client.calls)
	require.Contains(t, errOut.String(), "Invalid input")
}

func TestRunner_ListRates_SortedWithDefaultBase(t *testing.T) {
	client := newStubClient(map[string]float64{"JPY": 150, "EUR": 0.92, "GBP": 0.79})
	r, out, _ := newRunner(client)

	require.NoError(t, r.ListRates(context.Background(), ""))
	require.Equal(t,
		"Exchange rates for USD:\n  EUR: 0.92\n  GBP: 0.79\n  JPY: 150\n",
		out.String())
	require.Equal(t, 1, client.calls["USD"])
}

func TestRunner_ListRates_NetworkError(t *testing.T) {
	client := newStubClient(nil)
	client.err = fmt.Errorf("refused: %w", domain.ErrNetwork)
	r, out, errOut := newRunner(client)

	err := r.ListRates(context.Background(), "eur")
	require.ErrorIs(t, err, domain.ErrNetwork)
	require.Empty(t, out.String())
	require.Contains(t, errOut.String(), "Failed to reach the currency conversion API")
	require.Equal(t, 1, client.calls["EUR"])
}

func TestRunner_Interactive_RepeatedPairHitsCache(t *testing.T) {
	client := newStubClient(map[string]float64{"EUR": 0.5})
	r, out, errOut := newRunner(client)

	input := strings.NewReader("usd\neur\n10\nUSD\nEUR\n4\nquit\n")
	require.NoError(t, r.Interactive(context.Background(), input))

	require.Equal(t, 1, client.calls["USD_EUR"])
	require.Contains(t, out.String(), "Converted Amount: 5\n")
	require.Contains(t, out.String(), "Converted Amount: 2\n")
	require.Empty(t, errOut.String())
}

func TestRunner_Interactive_ContinuesAfterErrors(t *testing.T) {
	client := newStubClient(map[string]float64{"EUR": 0.5})
	r, out, errOut := newRunner(client)

	// bad amount, unknown currency, then a good conversion and EOF
	input := strings.NewReader("USD\nEUR\nlots\nUSD\nXYZ\n1\nUSD\nEUR\n2\n")
	require.NoError(t, r.Interactive(context.Background(), input))

	require.Contains(t, errOut.String(), "Invalid input: amount must be a positive number")
	require.Contains(t, errOut.String(), "One or both specified currencies are not supported.")
	require.Contains(t, out.String(), "Converted Amount: 1\n")
}

func TestRunner_Interactive_StopsOnCanceledContext(t *testing.T) {
	r, _, _ := newRunner(newStubClient(nil))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.Interactive(ctx, strings.NewReader("USD\nEUR\n1\n"))
	require.ErrorIs(t, err, context.Canceled)
}
