package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers risk routes on a per-user router
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/risk", func(r chi.Router) {
		r.Get("/", h.HandleGetReport)
		r.Get("/score", h.HandleGetScore)
		r.Get("/distribution", h.HandleGetDistribution)
	})
}

// RegisterPublicRoutes registers routes that need no user
func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/risk/weights", h.HandleGetWeights)
}
