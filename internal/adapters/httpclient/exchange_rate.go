package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"fxconvert/internal/domain"
)

const unsupportedCodeErrorType = "unsupported-code"

type ExchangeRateClient struct {
	http    *http.Client
	baseURL string
}

type apiResponse struct {
	Result          string             `json:"result"`
	ErrorType       string             `json:"error-type"`
	BaseCode        string             `json:"base_code"`
	ConversionRates map[string]float64 `json:"conversion_rates"`
}

func (c *ExchangeRateClient) FetchPairRate(ctx context.Context, source string, target string) (float64, error) {
	rates, err := c.FetchAllRates(ctx, source)
	if err != nil {
		return 0, err
	}
	rate, ok := rates[target]
	if !ok {
		return 0, fmt.Errorf("no %q rate for currency %q: %w", target, source, domain.ErrCurrencyNotFound)
	}
	return rate, nil
}

func (c *ExchangeRateClient) FetchAllRates(ctx context.Context, base string) (map[string]float64, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + url.PathEscape(base)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for currency %q: %w", base, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request for currency %q: %w: %w", base, domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	var body apiResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if decodeErr == nil && body.ErrorType == unsupportedCodeErrorType {
			return nil, fmt.Errorf("currency %q rejected by api: %w", base, domain.ErrCurrencyNotFound)
		}
		return nil, &domain.APIResponseError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("unexpected status code %d for currency %q: %s", resp.StatusCode, base, resp.Status),
		}
	}

	if decodeErr != nil {
		return nil, &domain.APIResponseError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("failed to decode response for currency %q: %v", base, decodeErr),
		}
	}

	if body.Result != "success" {
		if body.ErrorType == unsupportedCodeErrorType {
			return nil, fmt.Errorf("currency %q rejected by api: %w", base, domain.ErrCurrencyNotFound)
		}
		return nil, &domain.APIResponseError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("api returned non-success result for currency %q: %s", base, strings.TrimSpace(body.Result+" "+body.ErrorType)),
		}
	}

	if body.ConversionRates == nil {
		body.ConversionRates = map[string]float64{}
	}
	return body.ConversionRates, nil
}

// NewExchangeRateClient expects baseURL to already carry the api key,
// e.g. https://v6.exchangerate-api.com/v6/<key>/latest.
func NewExchangeRateClient(httpClient *http.Client, baseURL string) *ExchangeRateClient {
	return &ExchangeRateClient{http: httpClient, baseURL: baseURL}
}
