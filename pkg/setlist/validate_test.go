package setlist_test

import (
	"strings"
	"testing"

	"github.com/setscore/setscore/pkg/setlist"
)

func song(id string, pos int, songID string) *setlist.SongItem {
	return &setlist.SongItem{
		ItemMeta: setlist.ItemMeta{ID: id, Position: pos},
		SongID:   songID,
	}
}

func mc(id string, pos int, title string) *setlist.BreakItem {
	return &setlist.BreakItem{
		ItemMeta:  setlist.ItemMeta{ID: id, Position: pos},
		BreakKind: setlist.KindMC,
		Title:     title,
	}
}

func TestValidateItem(t *testing.T) {
	tests := []struct {
		name    string
		item    setlist.Item
		wantErr string
	}{
		{
			name: "valid catalog song",
			item: song("item-1", 0, "song-1"),
		},
		{
			name: "valid custom song",
			item: &setlist.SongItem{
				ItemMeta:       setlist.ItemMeta{ID: "item-1", Position: 0},
				IsCustomSong:   true,
				CustomSongName: "Unreleased Track",
			},
		},
		{
			name:    "missing id",
			item:    song("", 0, "song-1"),
			wantErr: "missing an id",
		},
		{
			name:    "negative position",
			item:    song("item-1", -1, "song-1"),
			wantErr: "negative position",
		},
		{
			name:    "song without reference or custom data",
			item:    song("item-1", 0, ""),
			wantErr: "neither a song reference",
		},
		{
			name: "custom song without name",
			item: &setlist.SongItem{
				ItemMeta:     setlist.ItemMeta{ID: "item-1", Position: 0},
				IsCustomSong: true,
			},
			wantErr: "missing a name",
		},
		{
			name:    "break without title",
			item:    mc("item-1", 0, ""),
			wantErr: "missing a title",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setlist.ValidateItem(tt.item)
			if tt.wantErr == "" {
				if !r.Valid {
					t.Fatalf("expected valid, got errors: %v", r.Errors)
				}
				return
			}
			if r.Valid {
				t.Fatalf("expected invalid result")
			}
			found := false
			for _, e := range r.Errors {
				if strings.Contains(e, tt.wantErr) {
					found = true
				}
			}
			if !found {
				t.Errorf("expected an error containing %q, got %v", tt.wantErr, r.Errors)
			}
		})
	}
}

func TestValidateSetlistPositionGaps(t *testing.T) {
	s := &setlist.Setlist{
		ID:    "setlist-x",
		Items: []setlist.Item{song("a", 0, "song-1"), song("b", 2, "song-2")},
	}
	r := setlist.ValidateSetlist(s)
	if r.Valid {
		t.Fatal("expected gaps error for positions 0,2")
	}
	if !strings.Contains(r.Errors[0], "gaps") {
		t.Errorf("expected gaps error, got %v", r.Errors)
	}
}

func TestValidateSetlistEmpty(t *testing.T) {
	r := setlist.ValidateSetlist(&setlist.Setlist{ID: "setlist-x"})
	if r.Valid {
		t.Fatal("expected empty setlist to be invalid")
	}
}

func TestValidatePredictionAggregatesErrors(t *testing.T) {
	p := &setlist.Prediction{
		Setlist: setlist.Setlist{
			Items: []setlist.Item{song("", 0, ""), mc("item-2", 1, "")},
		},
	}
	r := setlist.ValidatePrediction(p)
	if r.Valid {
		t.Fatal("expected invalid prediction")
	}
	// id, performance, name, plus three item errors; nothing short-circuits
	if len(r.Errors) < 5 {
		t.Errorf("expected aggregated errors, got %d: %v", len(r.Errors), r.Errors)
	}
}

func TestValidatePredictionCustomPerformance(t *testing.T) {
	p := setlist.NewPrediction("My Guess", "", &setlist.CustomPerformance{Name: "Fan Meetup 2026"})
	if err := p.AddItem(song("item-1", 0, "song-1"), 0); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if r := setlist.ValidatePrediction(p); !r.Valid {
		t.Fatalf("custom performance prediction should be valid, got %v", r.Errors)
	}
}
