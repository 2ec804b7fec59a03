package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers goal routes on a per-user router
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/goals", func(r chi.Router) {
		r.Get("/", h.HandleList)
		r.Post("/", h.HandleCreate)
		r.Delete("/{index}", h.HandleDelete)
	})
}
