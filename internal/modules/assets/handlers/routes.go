package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers asset routes on a per-user router
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/assets", func(r chi.Router) {
		r.Get("/", h.HandleList)
		r.Post("/", h.HandleCreate)
		r.Delete("/", h.HandleClear)
		r.Put("/{index}", h.HandleUpdate)
		r.Delete("/{index}", h.HandleDelete)
	})
}
