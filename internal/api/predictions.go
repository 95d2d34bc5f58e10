package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/setscore/setscore/internal/store"
	"github.com/setscore/setscore/pkg/setlist"
)

type predictionSummary struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	PerformanceID   string `json:"performance_id,omitempty"`
	PerformanceName string `json:"performance_name,omitempty"`
	SongCount       int    `json:"song_count"`
	Favorite        bool   `json:"favorite"`
	Scored          bool   `json:"scored"`
	Active          bool   `json:"active"`
	UpdatedAt       string `json:"updated_at"`
}

func (h *Handler) summarize(sp *store.SavedPrediction, activeID string, name func(string) string) predictionSummary {
	p := &sp.Prediction
	return predictionSummary{
		ID:              p.ID,
		Name:            p.Name,
		PerformanceID:   p.PerformanceID,
		PerformanceName: name(p.PerformanceID),
		SongCount:       p.Setlist.CountSongs(),
		Favorite:        p.IsFavorite,
		Scored:          sp.Score != nil,
		Active:          p.ID == activeID,
		UpdatedAt:       p.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func (h *Handler) performanceNamer(r *http.Request) func(string) string {
	cat, err := h.catalog.Get(r.Context())
	if err != nil {
		h.log.Warn().Err(err).Msg("catalog unavailable, falling back to raw ids")
		return func(id string) string { return id }
	}
	return cat.PerformanceName
}

func (h *Handler) handleListPredictions(w http.ResponseWriter, r *http.Request) {
	saved, err := h.store.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list predictions: "+err.Error())
		return
	}
	activeID, _ := h.store.ActiveID()
	name := h.performanceNamer(r)

	result := []predictionSummary{}
	for i := range saved {
		result = append(result, h.summarize(&saved[i], activeID, name))
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleCreatePrediction(w http.ResponseWriter, r *http.Request) {
	var p setlist.Prediction
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "decode prediction: "+err.Error())
		return
	}
	if p.ID == "" {
		p.ID = setlist.NewPredictionID(p.PerformanceID)
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	if res := setlist.ValidatePrediction(&p); !res.Valid {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "invalid prediction",
			"detail": res.Errors,
		})
		return
	}
	if err := h.store.Save(store.SavedPrediction{Prediction: p}); err != nil {
		writeError(w, http.StatusInternalServerError, "save prediction: "+err.Error())
		return
	}
	h.log.Info().Str("prediction_id", p.ID).Str("name", p.Name).Msg("prediction saved")
	writeJSON(w, http.StatusCreated, map[string]string{"id": p.ID})
}

func (h *Handler) handleGetPrediction(w http.ResponseWriter, r *http.Request) {
	sp, err := h.store.Get(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "prediction not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sp)
}

func (h *Handler) handleDeletePrediction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := h.store.Get(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "prediction not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := h.store.Delete(id); err != nil {
		writeError(w, http.StatusInternalServerError, "delete prediction: "+err.Error())
		return
	}
	h.log.Info().Str("prediction_id", id).Msg("prediction deleted")
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleActivatePrediction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := h.store.Get(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "prediction not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := h.store.SetActive(id); err != nil {
		writeError(w, http.StatusInternalServerError, "activate prediction: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"active": id})
}

func (h *Handler) handleListSlots(w http.ResponseWriter, r *http.Request) {
	slots, err := h.store.Slots()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "list slots: "+err.Error())
		return
	}
	if slots == nil {
		slots = []store.SaveSlot{}
	}
	writeJSON(w, http.StatusOK, slots)
}

func (h *Handler) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.store.Settings()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "load settings: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (h *Handler) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var settings store.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeError(w, http.StatusBadRequest, "decode settings: "+err.Error())
		return
	}
	if err := settings.Rules.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "scoring rules: "+err.Error())
		return
	}
	if err := h.store.SaveSettings(settings); err != nil {
		writeError(w, http.StatusInternalServerError, "save settings: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, settings)
}
