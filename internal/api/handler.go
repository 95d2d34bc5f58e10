// Package api implements the setscored REST API. It exposes prediction
// CRUD, scoring, share-link decoding and save-slot endpoints over the
// local prediction store.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/setscore/setscore/internal/catalog"
	"github.com/setscore/setscore/internal/store"
	"github.com/setscore/setscore/pkg/scoring"
)

// Handler is the top-level API handler for the setscored daemon.
type Handler struct {
	store   *store.PredictionStore
	catalog *catalog.Cache
	rules   scoring.Rules
	log     zerolog.Logger
}

// NewHandler creates a new API handler. A nil catalog cache resolves
// every song id to itself.
func NewHandler(st *store.PredictionStore, cache *catalog.Cache, rules scoring.Rules, log zerolog.Logger) *Handler {
	if cache == nil {
		cache = catalog.NewCache(func(context.Context) (*catalog.Catalog, error) {
			return catalog.Empty(), nil
		})
	}
	return &Handler{
		store:   st,
		catalog: cache,
		rules:   rules,
		log:     log,
	}
}

// RegisterRoutes registers all API routes on the given ServeMux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.handleHealth)

	// Prediction endpoints
	mux.HandleFunc("GET /api/v1/predictions", h.handleListPredictions)
	mux.HandleFunc("POST /api/v1/predictions", h.handleCreatePrediction)
	mux.HandleFunc("GET /api/v1/predictions/{id}", h.handleGetPrediction)
	mux.HandleFunc("DELETE /api/v1/predictions/{id}", h.handleDeletePrediction)
	mux.HandleFunc("POST /api/v1/predictions/{id}/activate", h.handleActivatePrediction)
	mux.HandleFunc("POST /api/v1/predictions/{id}/score", h.handleScorePrediction)

	// Share and slot endpoints
	mux.HandleFunc("POST /api/v1/share/decode", h.handleDecodeShare)
	mux.HandleFunc("GET /api/v1/slots", h.handleListSlots)

	// Settings
	mux.HandleFunc("GET /api/v1/settings", h.handleGetSettings)
	mux.HandleFunc("PUT /api/v1/settings", h.handlePutSettings)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
