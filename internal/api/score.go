package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/setscore/setscore/internal/store"
	"github.com/setscore/setscore/pkg/scoring"
	"github.com/setscore/setscore/pkg/setlist"
	"github.com/setscore/setscore/pkg/share"
	"github.com/setscore/setscore/pkg/transfer"
)

// scoreRequest carries the actual setlist to score against. Exactly one
// of setlist and text must be set: a structured setlist, or the raw text
// of a setlist report to parse. Rules default to the daemon's configured
// rules.
type scoreRequest struct {
	Setlist *setlist.Setlist `json:"setlist,omitempty"`
	Text    string           `json:"text,omitempty"`
	Rules   *scoring.Rules   `json:"rules,omitempty"`
}

func (h *Handler) handleScorePrediction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	sp, err := h.store.Get(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "prediction not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "decode score request: "+err.Error())
		return
	}

	actual := req.Setlist
	if actual == nil {
		if strings.TrimSpace(req.Text) == "" {
			writeError(w, http.StatusBadRequest, "either setlist or text is required")
			return
		}
		actual = transfer.ParseActualSetlistAsSetlist(req.Text, sp.Prediction.PerformanceID)
	}

	rules := h.rules
	if req.Rules != nil {
		rules = *req.Rules
	}

	started := time.Now()
	result, err := scoring.Score(&sp.Prediction.Setlist, actual, rules)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "score: "+err.Error())
		return
	}
	h.log.Info().
		Str("prediction_id", id).
		Int("total", result.TotalScore).
		Int("max", result.MaxPossibleScore).
		Dur("elapsed", time.Since(started)).
		Msg("prediction scored")

	sp.Score = result
	sp.Prediction.UpdatedAt = time.Now().UTC()
	if err := h.store.Save(*sp); err != nil {
		writeError(w, http.StatusInternalServerError, "save score: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type decodeShareRequest struct {
	Data string `json:"data,omitempty"`
	URL  string `json:"url,omitempty"`
}

// handleDecodeShare expands a share payload (or a full share URL) back
// into a prediction without persisting it.
func (h *Handler) handleDecodeShare(w http.ResponseWriter, r *http.Request) {
	var req decodeShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "decode request: "+err.Error())
		return
	}

	var (
		p   *setlist.Prediction
		err error
	)
	switch {
	case req.Data != "":
		p, err = share.Decompress(req.Data)
	case req.URL != "":
		p, err = share.ParseShareURL(req.URL)
	default:
		writeError(w, http.StatusBadRequest, "either data or url is required")
		return
	}
	if err != nil {
		if errors.Is(err, share.ErrNoData) || errors.Is(err, share.ErrCorrupted) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, p)
}
