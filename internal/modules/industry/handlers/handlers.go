// Package handlers provides HTTP handlers for industry resolution.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/quantdash/quantdash/internal/modules/industry"
)

// maxPeersReturned bounds the peer list in API responses. The resolver
// itself never truncates; the cap is this caller's policy.
const maxPeersReturned = 5

// Handler handles industry resolution HTTP requests.
type Handler struct {
	resolver *industry.Resolver
	log      zerolog.Logger
}

// NewHandler creates a new industry handler.
func NewHandler(resolver *industry.Resolver, log zerolog.Logger) *Handler {
	return &Handler{
		resolver: resolver,
		log:      log.With().Str("handler", "industry").Logger(),
	}
}

// ResolveResponse is the industry context returned for one symbol.
type ResolveResponse struct {
	Symbol   string   `json:"symbol"`
	Industry string   `json:"industry"`
	Theme    string   `json:"theme"`
	Peers    []string `json:"peers"`
	Known    bool     `json:"known"`
}

// HandleResolve handles GET /api/industry/{symbol}
func (h *Handler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	if symbol == "" {
		h.writeError(w, http.StatusBadRequest, "No symbol provided")
		return
	}

	mapping := h.resolver.Resolve(symbol)

	peers := mapping.Peers
	if len(peers) > maxPeersReturned {
		peers = peers[:maxPeersReturned]
	}

	h.writeJSON(w, http.StatusOK, ResolveResponse{
		Symbol:   mapping.Symbol,
		Industry: mapping.Industry,
		Theme:    mapping.Theme,
		Peers:    peers,
		Known:    h.resolver.Known(symbol),
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{
		"error": message,
	})
}
