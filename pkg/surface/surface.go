// Package surface defines output rendering for scoring results.
// Implementations handle different output targets: terminal and JSON.
package surface

import (
	"io"

	"github.com/setscore/setscore/pkg/scoring"
	"github.com/setscore/setscore/pkg/setlist"
)

// Row is a display line for one predicted item.
type Row struct {
	Position int               `json:"position"`
	Label    string            `json:"label"`
	Kind     setlist.Kind      `json:"kind"`
	Match    scoring.MatchType `json:"matchType,omitempty"`
	Matched  bool              `json:"matched"`
	Points   int               `json:"points"`
	Remarks  string            `json:"remarks,omitempty"`
}

// Report is a score result paired with the display context a renderer
// needs.
type Report struct {
	PredictionName  string          `json:"predictionName"`
	PerformanceName string          `json:"performanceName,omitempty"`
	Result          *scoring.Result `json:"result"`
	Rows            []Row           `json:"rows"`
}

// Renderer produces formatted output from a score report.
type Renderer interface {
	Render(w io.Writer, report *Report) error
}

// SongNamer resolves catalog song ids to titles; nil falls back to ids.
type SongNamer func(songID string) string

// BuildReport joins a prediction and its score into renderable rows.
// Item scores line up with predicted items by setlist order.
func BuildReport(p *setlist.Prediction, performanceName string, result *scoring.Result, namer SongNamer) *Report {
	rep := &Report{
		PredictionName:  p.Name,
		PerformanceName: performanceName,
		Result:          result,
	}
	for i, it := range p.Setlist.Items {
		row := Row{
			Position: it.Meta().Position,
			Kind:     it.Kind(),
			Remarks:  it.Meta().Remarks,
		}
		switch v := it.(type) {
		case *setlist.SongItem:
			row.Label = v.DisplayName()
			if !v.IsCustomSong && namer != nil {
				if title := namer(v.SongID); title != "" {
					row.Label = title
				}
			}
		case *setlist.BreakItem:
			row.Label = v.Title
		}
		if result != nil && i < len(result.ItemScores) {
			row.Match = result.ItemScores[i].Match
			row.Matched = result.ItemScores[i].Matched
			row.Points = result.ItemScores[i].Points
		}
		rep.Rows = append(rep.Rows, row)
	}
	return rep
}
