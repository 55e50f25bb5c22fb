package handler

import (
	"net/http"

	"fxconvert/internal/rate"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type GetAllRatesResponse struct {
	Base  string             `json:"base" example:"USD"`
	Rates map[string]float64 `json:"rates"`
}

// GetAllRates godoc
// @Summary Get every rate for a base currency
// @Description Always queried from the rate provider, never cached
// @Tags Rates
// @Produce json
// @Param base path string true "Base currency code" example(USD)
// @Success 200 {object} GetAllRatesResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Router /rates/{base} [get]
func (h *Handler) GetAllRates(w http.ResponseWriter, r *http.Request) {
	base := rate.NormalizeCode(chi.URLParam(r, "base"))

	if err := h.validator.ValidateCode(base); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rates, err := h.service.FetchAllRates(r.Context(), base)
	if err != nil {
		status, msg := errorStatus(err)
		if status >= http.StatusInternalServerError {
			logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetAllRates", "base": base}).Error(msg)
		}
		writeError(w, status, msg)
		return
	}

	writeJSON(w, http.StatusOK, GetAllRatesResponse{Base: base, Rates: rates})
}
