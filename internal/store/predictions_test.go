package store_test

import (
	"errors"
	"testing"

	"github.com/setscore/setscore/internal/store"
	"github.com/setscore/setscore/pkg/setlist"
)

func saved(t *testing.T, name string) store.SavedPrediction {
	t.Helper()
	p := setlist.NewPrediction(name, "perf-1", nil)
	it := &setlist.SongItem{ItemMeta: setlist.ItemMeta{ID: setlist.NewItemID()}, SongID: "song-1"}
	if err := p.AddItem(it, 0); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	return store.SavedPrediction{Prediction: *p}
}

func TestSaveGetList(t *testing.T) {
	ps := store.NewPredictionStore(store.NewMemory())

	a := saved(t, "first")
	b := saved(t, "second")
	for _, sp := range []store.SavedPrediction{a, b} {
		if err := ps.Save(sp); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	got, err := ps.Get(a.Prediction.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Prediction.Name != "first" {
		t.Errorf("name = %q, want first", got.Prediction.Name)
	}

	all, err := ps.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("List = %d predictions, want 2", len(all))
	}
}

func TestSaveRejectsInvalid(t *testing.T) {
	ps := store.NewPredictionStore(store.NewMemory())
	bad := store.SavedPrediction{Prediction: setlist.Prediction{}}
	if err := ps.Save(bad); err == nil {
		t.Error("expected error saving an invalid prediction")
	}
}

func TestGetMissing(t *testing.T) {
	ps := store.NewPredictionStore(store.NewMemory())
	_, err := ps.Get("pred-nope")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestActivePointer(t *testing.T) {
	ps := store.NewPredictionStore(store.NewMemory())
	sp := saved(t, "active one")
	if err := ps.Save(sp); err != nil {
		t.Fatal(err)
	}

	if _, err := ps.ActiveID(); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound before any activation, got %v", err)
	}
	if err := ps.SetActive("pred-ghost"); err == nil {
		t.Error("expected error activating a missing prediction")
	}
	if err := ps.SetActive(sp.Prediction.ID); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	id, err := ps.ActiveID()
	if err != nil || id != sp.Prediction.ID {
		t.Errorf("ActiveID = %q, %v", id, err)
	}
}

func TestDeleteDetachesEverywhere(t *testing.T) {
	ps := store.NewPredictionStore(store.NewMemory())
	sp := saved(t, "doomed")
	keep := saved(t, "kept")
	for _, p := range []store.SavedPrediction{sp, keep} {
		if err := ps.Save(p); err != nil {
			t.Fatal(err)
		}
	}
	if err := ps.SetActive(sp.Prediction.ID); err != nil {
		t.Fatal(err)
	}
	if err := ps.AssignSlot(1, "perf-1", sp.Prediction.ID); err != nil {
		t.Fatal(err)
	}
	if err := ps.AssignSlot(1, "perf-1", keep.Prediction.ID); err != nil {
		t.Fatal(err)
	}

	if err := ps.Delete(sp.Prediction.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := ps.Get(sp.Prediction.ID); !errors.Is(err, store.ErrNotFound) {
		t.Error("prediction still present after delete")
	}
	if _, err := ps.ActiveID(); !errors.Is(err, store.ErrNotFound) {
		t.Error("active pointer should be cleared by delete")
	}
	slots, err := ps.Slots()
	if err != nil {
		t.Fatal(err)
	}
	if len(slots) != 1 || len(slots[0].PredictionIDs) != 1 || slots[0].PredictionIDs[0] != keep.Prediction.ID {
		t.Errorf("slot not detached: %+v", slots)
	}
}

func TestAssignSlotIdempotent(t *testing.T) {
	ps := store.NewPredictionStore(store.NewMemory())
	sp := saved(t, "slotted")
	if err := ps.Save(sp); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := ps.AssignSlot(2, "perf-1", sp.Prediction.ID); err != nil {
			t.Fatalf("AssignSlot: %v", err)
		}
	}
	slots, err := ps.Slots()
	if err != nil {
		t.Fatal(err)
	}
	if len(slots) != 1 || len(slots[0].PredictionIDs) != 1 {
		t.Errorf("repeated assignment must not duplicate: %+v", slots)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	ps := store.NewPredictionStore(store.NewMemory())

	defaults, err := ps.Settings()
	if err != nil {
		t.Fatalf("Settings: %v", err)
	}
	if defaults.Language != "en" || !defaults.Autosave {
		t.Errorf("unexpected defaults: %+v", defaults)
	}

	defaults.Language = "ja"
	defaults.Rules.CloseTolerance = 1
	if err := ps.SaveSettings(defaults); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}
	back, err := ps.Settings()
	if err != nil {
		t.Fatal(err)
	}
	if back.Language != "ja" || back.Rules.CloseTolerance != 1 {
		t.Errorf("settings lost: %+v", back)
	}
}
