package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/setscore/setscore/internal/store"
	"github.com/setscore/setscore/pkg/scoring"
	"github.com/setscore/setscore/pkg/setlist"
	"github.com/setscore/setscore/pkg/share"
)

func newTestServer(t *testing.T) (*httptest.Server, *store.PredictionStore) {
	t.Helper()
	st := store.NewPredictionStore(store.NewMemory())
	h := NewHandler(st, nil, scoring.DefaultRules(), zerolog.Nop())
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, st
}

func testPrediction(t *testing.T, songIDs ...string) *setlist.Prediction {
	t.Helper()
	p := setlist.NewPrediction("Tour Final Guess", "perf-1", nil)
	for i, id := range songIDs {
		it := &setlist.SongItem{
			ItemMeta: setlist.ItemMeta{ID: setlist.NewItemID()},
			SongID:   id,
		}
		if err := p.AddItem(it, i); err != nil {
			t.Fatalf("AddItem: %v", err)
		}
	}
	return p
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestCreateAndGetPrediction(t *testing.T) {
	srv, _ := newTestServer(t)

	p := testPrediction(t, "song-1", "song-2")
	resp := postJSON(t, srv.URL+"/api/v1/predictions", p)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", resp.StatusCode)
	}
	var created map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	if created["id"] != p.ID {
		t.Errorf("created id = %q, want %q", created["id"], p.ID)
	}

	getResp, err := http.Get(srv.URL + "/api/v1/predictions/" + p.ID)
	if err != nil {
		t.Fatal(err)
	}
	defer getResp.Body.Close()
	if getResp.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d, want 200", getResp.StatusCode)
	}
	var saved store.SavedPrediction
	if err := json.NewDecoder(getResp.Body).Decode(&saved); err != nil {
		t.Fatal(err)
	}
	if saved.Prediction.Name != "Tour Final Guess" {
		t.Errorf("name = %q", saved.Prediction.Name)
	}
	if saved.Prediction.Setlist.CountSongs() != 2 {
		t.Errorf("song count = %d, want 2", saved.Prediction.Setlist.CountSongs())
	}
}

func TestCreatePredictionRejectsInvalid(t *testing.T) {
	srv, _ := newTestServer(t)

	// No items and no event reference.
	resp := postJSON(t, srv.URL+"/api/v1/predictions", map[string]any{"name": ""})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", resp.StatusCode)
	}
}

func TestGetPredictionNotFound(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, err := http.Get(srv.URL + "/api/v1/predictions/pred-missing")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestDeletePrediction(t *testing.T) {
	srv, st := newTestServer(t)
	p := testPrediction(t, "song-1")
	if err := st.Save(store.SavedPrediction{Prediction: *p}); err != nil {
		t.Fatal(err)
	}

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/v1/predictions/"+p.ID, nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", resp.StatusCode)
	}

	if _, err := st.Get(p.ID); err == nil {
		t.Error("prediction still present after delete")
	}
}

func TestActivatePrediction(t *testing.T) {
	srv, st := newTestServer(t)
	p := testPrediction(t, "song-1")
	if err := st.Save(store.SavedPrediction{Prediction: *p}); err != nil {
		t.Fatal(err)
	}

	resp := postJSON(t, srv.URL+"/api/v1/predictions/"+p.ID+"/activate", map[string]string{})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("activate status = %d, want 200", resp.StatusCode)
	}
	active, err := st.ActiveID()
	if err != nil {
		t.Fatal(err)
	}
	if active != p.ID {
		t.Errorf("active = %q, want %q", active, p.ID)
	}
}

func TestScorePredictionFromText(t *testing.T) {
	srv, st := newTestServer(t)
	p := setlist.NewPrediction("Guess", "perf-1", nil)
	for i, name := range []string{"Opening Anthem", "Closing Waltz"} {
		it := &setlist.SongItem{
			ItemMeta:       setlist.ItemMeta{ID: setlist.NewItemID()},
			IsCustomSong:   true,
			CustomSongName: name,
		}
		if err := p.AddItem(it, i); err != nil {
			t.Fatal(err)
		}
	}
	if err := st.Save(store.SavedPrediction{Prediction: *p}); err != nil {
		t.Fatal(err)
	}

	body := map[string]string{"text": "1. Opening Anthem\n2. Closing Waltz"}
	resp := postJSON(t, srv.URL+"/api/v1/predictions/"+p.ID+"/score", body)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("score status = %d, want 200", resp.StatusCode)
	}
	var result scoring.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if result.Accuracy != 100 {
		t.Errorf("accuracy = %v, want 100", result.Accuracy)
	}

	// The score is persisted alongside the prediction.
	saved, err := st.Get(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if saved.Score == nil || saved.Score.TotalScore != result.TotalScore {
		t.Errorf("persisted score = %+v, want total %d", saved.Score, result.TotalScore)
	}
}

func TestScorePredictionRequiresInput(t *testing.T) {
	srv, st := newTestServer(t)
	p := testPrediction(t, "song-1")
	if err := st.Save(store.SavedPrediction{Prediction: *p}); err != nil {
		t.Fatal(err)
	}

	resp := postJSON(t, srv.URL+"/api/v1/predictions/"+p.ID+"/score", map[string]string{})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestDecodeShare(t *testing.T) {
	srv, _ := newTestServer(t)

	p := setlist.NewPrediction("Shared Guess", "perf-1", nil)
	it := &setlist.SongItem{
		ItemMeta: setlist.ItemMeta{ID: setlist.NewItemID()},
		SongID:   "song-1",
	}
	if err := p.AddItem(it, 0); err != nil {
		t.Fatal(err)
	}
	data, err := share.Compress(p)
	if err != nil {
		t.Fatal(err)
	}

	resp := postJSON(t, srv.URL+"/api/v1/share/decode", map[string]string{"data": data})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("decode status = %d, want 200", resp.StatusCode)
	}
	var decoded setlist.Prediction
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Name != "Shared Guess" {
		t.Errorf("decoded name = %q", decoded.Name)
	}

	bad := postJSON(t, srv.URL+"/api/v1/share/decode", map[string]string{"data": "!!not-base64!!"})
	defer bad.Body.Close()
	if bad.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("corrupted data status = %d, want 422", bad.StatusCode)
	}
}

func TestListPredictions(t *testing.T) {
	srv, st := newTestServer(t)
	for i := 0; i < 3; i++ {
		p := testPrediction(t, fmt.Sprintf("song-%d", i))
		p.Name = fmt.Sprintf("Guess %d", i)
		if err := st.Save(store.SavedPrediction{Prediction: *p}); err != nil {
			t.Fatal(err)
		}
	}

	resp, err := http.Get(srv.URL + "/api/v1/predictions")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var list []predictionSummary
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 {
		t.Errorf("list length = %d, want 3", len(list))
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	srv, _ := newTestServer(t)

	want := store.Settings{Language: "ja", Theme: "dark", Autosave: true, Rules: scoring.DefaultRules()}
	buf, _ := json.Marshal(want)
	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/v1/settings", bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("put settings status = %d, want 200", resp.StatusCode)
	}

	getResp, err := http.Get(srv.URL + "/api/v1/settings")
	if err != nil {
		t.Fatal(err)
	}
	defer getResp.Body.Close()
	var got store.Settings
	if err := json.NewDecoder(getResp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Language != "ja" || got.Theme != "dark" {
		t.Errorf("settings = %+v", got)
	}
}

func TestAPIKeyAuth(t *testing.T) {
	st := store.NewPredictionStore(store.NewMemory())
	h := NewHandler(st, nil, scoring.DefaultRules(), zerolog.Nop())
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	srv := httptest.NewServer(APIKeyAuth("secret-key")(mux))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("no key status = %d, want 401", resp.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	req.Header.Set("X-API-Key", "secret-key")
	authed, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	authed.Body.Close()
	if authed.StatusCode != http.StatusOK {
		t.Errorf("keyed status = %d, want 200", authed.StatusCode)
	}
}
