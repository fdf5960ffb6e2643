package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all industry resolution routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/industry", func(r chi.Router) {
		r.Get("/{symbol}", h.HandleResolve)
	})
}
