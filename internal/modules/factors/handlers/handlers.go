// Package handlers provides HTTP handlers for factor evaluation.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/quantdash/quantdash/internal/modules/factors"
	"github.com/quantdash/quantdash/internal/modules/industry"
)

// maxPeerComparison caps the peer set used for batch comparison. The
// resolver returns the full configured list; bounding it is caller
// policy.
const maxPeerComparison = 5

// Handler handles factor evaluation HTTP requests.
type Handler struct {
	registry *factors.Registry
	resolver *industry.Resolver
	log      zerolog.Logger
}

// NewHandler creates a new factors handler.
func NewHandler(registry *factors.Registry, resolver *industry.Resolver, log zerolog.Logger) *Handler {
	return &Handler{
		registry: registry,
		resolver: resolver,
		log:      log.With().Str("handler", "factors").Logger(),
	}
}

// EvaluateRequest carries one symbol's factor readings from the
// upstream analytics service. Null values are explicit missing markers.
type EvaluateRequest struct {
	Symbol  string              `json:"symbol"`
	Factors map[string]*float64 `json:"factors"`
}

// CategoryGroup holds the evaluations for one display category.
type CategoryGroup struct {
	Category factors.Category     `json:"category"`
	Label    string               `json:"label"`
	Factors  []factors.Evaluation `json:"factors"`
}

// EvaluateResponse is the grouped evaluation result for one symbol.
type EvaluateResponse struct {
	RunID  string          `json:"run_id"`
	Symbol string          `json:"symbol"`
	Groups []CategoryGroup `json:"groups"`
}

// HandleEvaluate handles POST /api/factors/evaluate
func (h *Handler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	var request EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if len(request.Factors) == 0 {
		h.writeError(w, http.StatusBadRequest, "No factor readings provided")
		return
	}

	readings := make([]factors.FactorReading, 0, len(request.Factors))
	for key, value := range request.Factors {
		readings = append(readings, factors.FactorReading{Key: key, Value: value})
	}
	evals := h.registry.EvaluateAll(readings)

	response := EvaluateResponse{
		RunID:  uuid.New().String(),
		Symbol: request.Symbol,
		Groups: groupByCategory(evals),
	}

	h.log.Debug().
		Str("symbol", request.Symbol).
		Int("factors", len(evals)).
		Str("run_id", response.RunID).
		Msg("Evaluated factor readings")

	h.writeJSON(w, http.StatusOK, response)
}

// groupByCategory buckets evaluations by their registry-assigned
// category, preserving evaluation order within and across groups.
func groupByCategory(evals []factors.Evaluation) []CategoryGroup {
	var groups []CategoryGroup
	index := make(map[factors.Category]int)

	for _, eval := range evals {
		cat := eval.Category
		if cat == "" {
			cat = "other"
		}
		i, ok := index[cat]
		if !ok {
			i = len(groups)
			index[cat] = i
			label := factors.CategoryLabel(cat)
			if cat == "other" {
				label = "其他"
			}
			groups = append(groups, CategoryGroup{Category: cat, Label: label})
		}
		groups[i].Factors = append(groups[i].Factors, eval)
	}

	return groups
}

// HandleListDefinitions handles GET /api/factors/definitions
func (h *Handler) HandleListDefinitions(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"factors": h.registry.Definitions(),
	})
}

// HandleGetDefinition handles GET /api/factors/definitions/{key}
func (h *Handler) HandleGetDefinition(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	def, ok := h.registry.Lookup(key)
	if !ok {
		h.writeError(w, http.StatusNotFound, "Unknown factor key: "+key)
		return
	}

	h.writeJSON(w, http.StatusOK, def)
}

// PeerStatsRequest carries one factor's readings across a set of
// symbols, keyed by symbol.
type PeerStatsRequest struct {
	Symbol string             `json:"symbol"`
	Factor string             `json:"factor"`
	Values map[string]float64 `json:"values"`
}

// PeerStatsResponse wraps the comparison with the peer set it was
// computed over.
type PeerStatsResponse struct {
	Factor     string                 `json:"factor"`
	Industry   string                 `json:"industry"`
	Theme      string                 `json:"theme"`
	Peers      []string               `json:"peers"`
	Comparison factors.PeerComparison `json:"comparison"`
}

// HandlePeerStats handles POST /api/factors/peer-stats
func (h *Handler) HandlePeerStats(w http.ResponseWriter, r *http.Request) {
	var request PeerStatsRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if request.Symbol == "" {
		h.writeError(w, http.StatusBadRequest, "No symbol provided")
		return
	}

	mapping := h.resolver.Resolve(request.Symbol)

	// Bound the comparison set and keep only peers we have readings for.
	peers := mapping.Peers
	if len(peers) > maxPeerComparison {
		peers = peers[:maxPeerComparison]
	}
	peerValues := make(map[string]float64, len(peers))
	for _, peer := range peers {
		if v, ok := request.Values[peer]; ok {
			peerValues[peer] = v
		}
	}

	response := PeerStatsResponse{
		Factor:     request.Factor,
		Industry:   mapping.Industry,
		Theme:      mapping.Theme,
		Peers:      peers,
		Comparison: factors.ComparePeers(request.Symbol, peerValues),
	}

	h.writeJSON(w, http.StatusOK, response)
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
