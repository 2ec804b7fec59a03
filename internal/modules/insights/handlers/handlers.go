// Package handlers provides the HTTP handler for the insights summary.
package handlers

import (
	"errors"
	"net/http"

	"github.com/aristath/investa/internal/modules/insights"
	"github.com/aristath/investa/internal/session"
	"github.com/aristath/investa/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handler handles insights HTTP requests
type Handler struct {
	service *insights.Service
	log     zerolog.Logger
}

// NewHandler creates a new insights handler
func NewHandler(service *insights.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "insights").Logger(),
	}
}

// HandleGetSummary handles GET /insights
func (h *Handler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	s, ok := session.FromContext(r.Context())
	if !ok {
		utils.WriteError(w, h.log, errors.New("request has no session"))
		return
	}

	summary, err := h.service.Summarize(s)
	if err != nil {
		utils.WriteError(w, h.log, err)
		return
	}
	utils.WriteData(w, http.StatusOK, summary)
}

// RegisterRoutes registers insights routes on a per-user router
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/insights", h.HandleGetSummary)
}
