package surface_test

import (
	"strings"
	"testing"

	"github.com/setscore/setscore/pkg/scoring"
	"github.com/setscore/setscore/pkg/setlist"
	"github.com/setscore/setscore/pkg/surface"
)

func scoredPrediction(t *testing.T) (*setlist.Prediction, *scoring.Result) {
	t.Helper()
	p := setlist.NewPrediction("Dome Guess", "perf-1", nil)
	items := []setlist.Item{
		&setlist.SongItem{ItemMeta: setlist.ItemMeta{ID: setlist.NewItemID()}, SongID: "song-1"},
		&setlist.SongItem{ItemMeta: setlist.ItemMeta{ID: setlist.NewItemID()}, SongID: "song-2"},
	}
	for i, it := range items {
		if err := p.AddItem(it, i); err != nil {
			t.Fatal(err)
		}
	}

	actual := &setlist.Setlist{ID: "a", Items: []setlist.Item{
		&setlist.SongItem{ItemMeta: setlist.ItemMeta{ID: "a-1", Position: 0}, SongID: "song-1"},
		&setlist.SongItem{ItemMeta: setlist.ItemMeta{ID: "a-2", Position: 1}, SongID: "song-9"},
	}}
	res, err := scoring.Score(&p.Setlist, actual, scoring.DefaultRules())
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	return p, res
}

func TestBuildReportRowsLineUp(t *testing.T) {
	p, res := scoredPrediction(t)
	rep := surface.BuildReport(p, "Dome Night 1", res, func(id string) string {
		if id == "song-1" {
			return "Opening Anthem"
		}
		return ""
	})

	if len(rep.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rep.Rows))
	}
	if rep.Rows[0].Label != "Opening Anthem" {
		t.Errorf("row 0 label = %q, want resolved title", rep.Rows[0].Label)
	}
	if rep.Rows[1].Label != "song-2" {
		t.Errorf("row 1 label = %q, want raw id fallback", rep.Rows[1].Label)
	}
	if !rep.Rows[0].Matched || rep.Rows[0].Match != scoring.MatchExact {
		t.Errorf("row 0 should be an exact match: %+v", rep.Rows[0])
	}
	if rep.Rows[1].Matched {
		t.Errorf("row 1 should be unmatched: %+v", rep.Rows[1])
	}
}

func TestTerminalRenderer(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	p, res := scoredPrediction(t)
	rep := surface.BuildReport(p, "Dome Night 1", res, nil)

	var out strings.Builder
	if err := (&surface.TerminalRenderer{}).Render(&out, rep); err != nil {
		t.Fatalf("Render: %v", err)
	}
	text := out.String()
	for _, want := range []string{"Dome Guess", "Dome Night 1", "song-1", "exact", "miss"} {
		if !strings.Contains(text, want) {
			t.Errorf("terminal output missing %q:\n%s", want, text)
		}
	}
}

func TestJSONRenderer(t *testing.T) {
	p, res := scoredPrediction(t)
	rep := surface.BuildReport(p, "", res, nil)

	var out strings.Builder
	if err := (&surface.JSONRenderer{}).Render(&out, rep); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out.String(), `"predictionName": "Dome Guess"`) {
		t.Errorf("json output missing prediction name:\n%s", out.String())
	}
}
