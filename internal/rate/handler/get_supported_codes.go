package handler

import (
	"net/http"
)

type GetSupportedCodesResponse struct {
	Codes []string `json:"codes" example:"USD,EUR,JPY"`
}

// GetSupportedCodes godoc
// @Summary List supported currencies
// @Description Configured currency allow-list; empty means any three letter code is passed through
// @Tags Rates
// @Produce json
// @Success 200 {object} GetSupportedCodesResponse
// @Router /rates/supported-currencies [get]
func (h *Handler) GetSupportedCodes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, GetSupportedCodesResponse{
		Codes: h.validator.SupportedCodes(),
	})
}
