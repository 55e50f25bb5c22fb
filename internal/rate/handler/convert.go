package handler

import (
	"net/http"
	"strconv"

	"fxconvert/internal/rate"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type ConvertResponse struct {
	Source    string          `json:"source" example:"USD"`
	Target    string          `json:"target" example:"EUR"`
	Amount    decimal.Decimal `json:"amount" swaggertype:"string" example:"100"`
	Rate      float64         `json:"rate" example:"0.92"`
	Converted decimal.Decimal `json:"converted" swaggertype:"string" example:"92"`
}

// Convert godoc
// @Summary Convert an amount
// @Description Converts amount of source into target using the cached pair rate
// @Tags Rates
// @Produce json
// @Param source path string true "Source currency code" example(USD)
// @Param target path string true "Target currency code" example(EUR)
// @Param amount query number true "Amount of source currency" example(100)
// @Success 200 {object} ConvertResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Router /convert/{source}/{target} [get]
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	source := rate.NormalizeCode(chi.URLParam(r, "source"))
	target := rate.NormalizeCode(chi.URLParam(r, "target"))

	if err := h.validator.ValidatePair(source, target); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	amount, err := strconv.ParseFloat(r.URL.Query().Get("amount"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, rate.ErrInvalidAmount.Error())
		return
	}
	if err = rate.ValidateAmount(amount); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	conv, err := h.service.Convert(r.Context(), source, target, amount)
	if err != nil {
		status, msg := errorStatus(err)
		if status >= http.StatusInternalServerError {
			logrus.WithError(err).WithFields(logrus.Fields{"handler": "Convert", "source": source, "target": target}).Error(msg)
		}
		writeError(w, status, msg)
		return
	}

	writeJSON(w, http.StatusOK, ConvertResponse{
		Source:    conv.Source,
		Target:    conv.Target,
		Amount:    conv.Amount,
		Rate:      conv.Rate,
		Converted: conv.Converted,
	})
}
