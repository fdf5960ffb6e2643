package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all factor evaluation routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/factors", func(r chi.Router) {
		r.Post("/evaluate", h.HandleEvaluate)
		r.Post("/peer-stats", h.HandlePeerStats)

		r.Route("/definitions", func(r chi.Router) {
			r.Get("/", h.HandleListDefinitions)
			r.Get("/{key}", h.HandleGetDefinition)
		})
	})
}
