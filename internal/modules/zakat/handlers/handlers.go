// Package handlers provides the HTTP handler for the zakat calculator.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/aristath/investa/internal/modules/zakat"
	"github.com/aristath/investa/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handler handles zakat HTTP requests
type Handler struct {
	log zerolog.Logger
}

// NewHandler creates a new zakat handler
func NewHandler(log zerolog.Logger) *Handler {
	return &Handler{log: log.With().Str("handler", "zakat").Logger()}
}

// CalculateRequest holds the holdings to assess. Omitted fields count as zero.
type CalculateRequest struct {
	Gold       json.Number `json:"gold"`
	Cash       json.Number `json:"cash"`
	Stocks     json.Number `json:"stocks"`
	RealEstate json.Number `json:"real_estate"`
	Other      json.Number `json:"other"`
}

// HandleCalculate handles POST /zakat
func (h *Handler) HandleCalculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, h.log, err)
		return
	}

	in, err := zakat.ParseInput(map[string]string{
		"gold":        req.Gold.String(),
		"cash":        req.Cash.String(),
		"stocks":      req.Stocks.String(),
		"real_estate": req.RealEstate.String(),
		"other":       req.Other.String(),
	})
	if err != nil {
		utils.WriteError(w, h.log, err)
		return
	}

	result, err := zakat.Calculate(in)
	if err != nil {
		utils.WriteError(w, h.log, err)
		return
	}

	utils.WriteData(w, http.StatusOK, result)
}

// RegisterRoutes registers zakat routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/zakat", h.HandleCalculate)
}
