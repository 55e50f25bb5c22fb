package handler

import (
	"net/http"

	"fxconvert/internal/rate"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type GetRateResponse struct {
	Source string  `json:"source" example:"USD"`
	Target string  `json:"target" example:"EUR"`
	Rate   float64 `json:"rate" example:"0.92"`
}

// GetRate godoc
// @Summary Get a pair rate
// @Description Returns the rate for one unit of source in target, served from cache while fresh
// @Tags Rates
// @Produce json
// @Param source path string true "Source currency code" example(USD)
// @Param target path string true "Target currency code" example(EUR)
// @Success 200 {object} GetRateResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /rates/{source}/{target} [get]
func (h *Handler) GetRate(w http.ResponseWriter, r *http.Request) {
	source := rate.NormalizeCode(chi.URLParam(r, "source"))
	target := rate.NormalizeCode(chi.URLParam(r, "target"))

	if err := h.validator.ValidatePair(source, target); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	value, err := h.service.FetchRate(r.Context(), source, target)
	if err != nil {
		status, msg := errorStatus(err)
		if status >= http.StatusInternalServerError {
			logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetRate", "source": source, "target": target}).Error(msg)
		}
		writeError(w, status, msg)
		return
	}

	writeJSON(w, http.StatusOK, GetRateResponse{Source: source, Target: target, Rate: value})
}
