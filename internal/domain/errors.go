package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNetwork          = errors.New("network failure")
	ErrCurrencyNotFound = errors.New("currency not found")
)

// APIResponseError is returned when the quote service was reached but answered
// with a non-success status or a body that could not be used.
type APIResponseError struct {
	StatusCode int
	Message    string
}

func (e *APIResponseError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("api response error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api response error: %s", e.Message)
}
