package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"fxconvert/internal/domain"
	"fxconvert/internal/rate"
)

type Validator interface {
	ValidateCode(code string) error
	ValidatePair(source, target string) error
	SupportedCodes() []string
}

type Service interface {
	FetchRate(ctx context.Context, source string, target string) (float64, error)
	FetchAllRates(ctx context.Context, base string) (map[string]float64, error)
	Convert(ctx context.Context, source string, target string, amount float64) (domain.Conversion, error)
}

type Handler struct {
	validator Validator
	service   Service
}

func NewRateHandler(validator Validator, service Service) *Handler {
	return &Handler{validator: validator, service: service}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	writeJSON(w, statusCode, errorResponse{Error: errorMsg})
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// errorStatus maps service errors onto a response status and a client-safe message.
func errorStatus(err error) (int, string) {
	var apiErr *domain.APIResponseError
	switch {
	case errors.Is(err, rate.ErrInvalidAmount):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrCurrencyNotFound):
		return http.StatusNotFound, "one or both currencies are not supported"
	case errors.Is(err, domain.ErrNetwork):
		return http.StatusBadGateway, "failed to reach the rate provider"
	case errors.As(err, &apiErr):
		return http.StatusBadGateway, "rate provider error: " + apiErr.Message
	default:
		return http.StatusInternalServerError, "ups, couldn't get rate this time"
	}
}
