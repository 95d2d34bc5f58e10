package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/setscore/setscore/pkg/scoring"
	"github.com/setscore/setscore/pkg/setlist"
)

// Key layout. All values are JSON-serialized strings.
const (
	keyPredictionPrefix  = "prediction:"
	keyActivePrediction  = "active_prediction"
	keySaveSlots         = "save_slots"
	keySettings          = "settings"
	keyPerformancePrefix = "performance_cache:"
)

// SavedPrediction couples a prediction with its most recent score, if one
// has been computed.
type SavedPrediction struct {
	Prediction setlist.Prediction `json:"prediction"`
	Score      *scoring.Result    `json:"score,omitempty"`
}

// SaveSlot associates one performance with the predictions saved for it.
type SaveSlot struct {
	Slot          int      `json:"slot"`
	PerformanceID string   `json:"performanceId"`
	PredictionIDs []string `json:"predictionIds"`
}

// Settings are the persisted user preferences.
type Settings struct {
	Language string        `json:"language"`
	Theme    string        `json:"theme"`
	Autosave bool          `json:"autosave"`
	Rules    scoring.Rules `json:"defaultScoringRules"`
}

// PredictionStore is the persistence facade over the KV gateway.
type PredictionStore struct {
	kv KV
}

// NewPredictionStore wraps a KV gateway.
func NewPredictionStore(kv KV) *PredictionStore {
	return &PredictionStore{kv: kv}
}

// Save persists a prediction (with its score, when present).
func (s *PredictionStore) Save(sp SavedPrediction) error {
	if r := setlist.ValidatePrediction(&sp.Prediction); !r.Valid {
		return fmt.Errorf("refusing to save invalid prediction: %s", strings.Join(r.Errors, "; "))
	}
	data, err := json.Marshal(sp)
	if err != nil {
		return fmt.Errorf("encoding prediction %s: %w", sp.Prediction.ID, err)
	}
	if err := s.kv.Set(keyPredictionPrefix+sp.Prediction.ID, string(data)); err != nil {
		return fmt.Errorf("saving prediction %s: %w", sp.Prediction.ID, err)
	}
	return nil
}

// Get loads a prediction by id.
func (s *PredictionStore) Get(id string) (*SavedPrediction, error) {
	raw, ok, err := s.kv.Get(keyPredictionPrefix + id)
	if err != nil {
		return nil, fmt.Errorf("loading prediction %s: %w", id, err)
	}
	if !ok {
		return nil, fmt.Errorf("prediction %s: %w", id, ErrNotFound)
	}
	var sp SavedPrediction
	if err := json.Unmarshal([]byte(raw), &sp); err != nil {
		return nil, fmt.Errorf("decoding prediction %s: %w", id, err)
	}
	return &sp, nil
}

// List returns every saved prediction, newest first.
func (s *PredictionStore) List() ([]SavedPrediction, error) {
	keys, err := s.kv.Keys(keyPredictionPrefix)
	if err != nil {
		return nil, fmt.Errorf("listing predictions: %w", err)
	}
	out := make([]SavedPrediction, 0, len(keys))
	for _, key := range keys {
		raw, ok, err := s.kv.Get(key)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", key, err)
		}
		if !ok {
			continue
		}
		var sp SavedPrediction
		if err := json.Unmarshal([]byte(raw), &sp); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", key, err)
		}
		out = append(out, sp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Prediction.UpdatedAt.After(out[j].Prediction.UpdatedAt)
	})
	return out, nil
}

// Delete removes a prediction, detaches it from every save slot, and
// clears the active pointer when it pointed here.
func (s *PredictionStore) Delete(id string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.kv.Delete(keyPredictionPrefix + id); err != nil {
		return fmt.Errorf("deleting prediction %s: %w", id, err)
	}

	if active, err := s.ActiveID(); err == nil && active == id {
		if err := s.kv.Delete(keyActivePrediction); err != nil {
			return fmt.Errorf("clearing active pointer: %w", err)
		}
	}

	slots, err := s.Slots()
	if err != nil {
		return err
	}
	changed := false
	for i := range slots {
		kept := slots[i].PredictionIDs[:0]
		for _, pid := range slots[i].PredictionIDs {
			if pid != id {
				kept = append(kept, pid)
			} else {
				changed = true
			}
		}
		slots[i].PredictionIDs = kept
	}
	if changed {
		return s.writeSlots(slots)
	}
	return nil
}

// SetActive marks the prediction the builder is currently editing.
func (s *PredictionStore) SetActive(id string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.kv.Set(keyActivePrediction, id); err != nil {
		return fmt.Errorf("setting active prediction: %w", err)
	}
	return nil
}

// ActiveID returns the active prediction id, or ErrNotFound.
func (s *PredictionStore) ActiveID() (string, error) {
	id, ok, err := s.kv.Get(keyActivePrediction)
	if err != nil {
		return "", fmt.Errorf("loading active pointer: %w", err)
	}
	if !ok || id == "" {
		return "", ErrNotFound
	}
	return id, nil
}

// AssignSlot attaches a prediction to a numbered save slot for a
// performance, creating the slot as needed.
func (s *PredictionStore) AssignSlot(slot int, performanceID, predictionID string) error {
	if slot < 0 {
		return fmt.Errorf("slot number must be >= 0, got %d", slot)
	}
	if _, err := s.Get(predictionID); err != nil {
		return err
	}

	slots, err := s.Slots()
	if err != nil {
		return err
	}
	for i := range slots {
		if slots[i].Slot == slot {
			slots[i].PerformanceID = performanceID
			for _, pid := range slots[i].PredictionIDs {
				if pid == predictionID {
					return s.writeSlots(slots)
				}
			}
			slots[i].PredictionIDs = append(slots[i].PredictionIDs, predictionID)
			return s.writeSlots(slots)
		}
	}
	slots = append(slots, SaveSlot{
		Slot:          slot,
		PerformanceID: performanceID,
		PredictionIDs: []string{predictionID},
	})
	return s.writeSlots(slots)
}

// ClearSlot removes a save slot entirely.
func (s *PredictionStore) ClearSlot(slot int) error {
	slots, err := s.Slots()
	if err != nil {
		return err
	}
	for i := range slots {
		if slots[i].Slot == slot {
			return s.writeSlots(append(slots[:i], slots[i+1:]...))
		}
	}
	return fmt.Errorf("slot %d: %w", slot, ErrNotFound)
}

// Slots returns the save-slot manager state, ordered by slot number.
func (s *PredictionStore) Slots() ([]SaveSlot, error) {
	raw, ok, err := s.kv.Get(keySaveSlots)
	if err != nil {
		return nil, fmt.Errorf("loading save slots: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var slots []SaveSlot
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		return nil, fmt.Errorf("decoding save slots: %w", err)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].Slot < slots[j].Slot })
	return slots, nil
}

func (s *PredictionStore) writeSlots(slots []SaveSlot) error {
	data, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("encoding save slots: %w", err)
	}
	if err := s.kv.Set(keySaveSlots, string(data)); err != nil {
		return fmt.Errorf("saving slots: %w", err)
	}
	return nil
}

// Settings returns the persisted user settings, or defaults when none
// have been saved yet.
func (s *PredictionStore) Settings() (Settings, error) {
	defaults := Settings{
		Language: "en",
		Theme:    "system",
		Autosave: true,
		Rules:    scoring.DefaultRules(),
	}
	raw, ok, err := s.kv.Get(keySettings)
	if err != nil {
		return defaults, fmt.Errorf("loading settings: %w", err)
	}
	if !ok {
		return defaults, nil
	}
	var out Settings
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return defaults, fmt.Errorf("decoding settings: %w", err)
	}
	return out, nil
}

// SaveSettings persists user settings.
func (s *PredictionStore) SaveSettings(settings Settings) error {
	if err := settings.Rules.Validate(); err != nil {
		return fmt.Errorf("settings rules: %w", err)
	}
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if err := s.kv.Set(keySettings, string(data)); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	return nil
}

// CachePerformance stores fetched performance metadata for offline reuse.
func (s *PredictionStore) CachePerformance(id string, payload json.RawMessage) error {
	if err := s.kv.Set(keyPerformancePrefix+id, string(payload)); err != nil {
		return fmt.Errorf("caching performance %s: %w", id, err)
	}
	return nil
}

// CachedPerformance returns previously cached performance metadata.
func (s *PredictionStore) CachedPerformance(id string) (json.RawMessage, error) {
	raw, ok, err := s.kv.Get(keyPerformancePrefix + id)
	if err != nil {
		return nil, fmt.Errorf("loading cached performance %s: %w", id, err)
	}
	if !ok {
		return nil, fmt.Errorf("performance %s: %w", id, ErrNotFound)
	}
	return json.RawMessage(raw), nil
}
