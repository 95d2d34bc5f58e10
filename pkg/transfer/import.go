// Package transfer converts predictions and setlists between the internal
// model and external representations: JSON, CSV, markdown, plain text, and
// the free-text format fans paste from live reports.
package transfer

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/setscore/setscore/pkg/setlist"
)

// CSVHeader is the exact header row of the CSV interchange format.
var CSVHeader = []string{"Position", "Type", "Song ID", "Title", "Remarks"}

// ImportResult is the outcome of an import. Imports never panic or throw;
// problems come back as messages.
type ImportResult struct {
	Success    bool                `json:"success"`
	Prediction *setlist.Prediction `json:"prediction,omitempty"`
	Errors     []string            `json:"errors,omitempty"`
}

func importFailure(errs ...string) ImportResult {
	return ImportResult{Success: false, Errors: errs}
}

// ImportJSON parses a prediction from its JSON export. The payload must
// carry a setlist with an items array; all validation problems are
// aggregated in the result.
func ImportJSON(text string) ImportResult {
	if strings.TrimSpace(text) == "" {
		return importFailure("input is empty")
	}

	var p setlist.Prediction
	if err := json.Unmarshal([]byte(text), &p); err != nil {
		return importFailure(fmt.Sprintf("invalid JSON: %v", err))
	}
	if len(p.Setlist.Items) == 0 {
		return importFailure("payload has no setlist items")
	}

	// Regenerate anything the export may have dropped.
	if p.ID == "" {
		p.ID = setlist.NewPredictionID(p.PerformanceID)
	}
	if p.Setlist.ID == "" {
		p.Setlist.ID = setlist.NewSetlistID(p.PerformanceID)
	}
	for _, it := range p.Setlist.Items {
		if it.Meta().ID == "" {
			it.Meta().ID = setlist.NewItemID()
		}
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	p.UpdatedAt = time.Now().UTC()
	normalize(&p.Setlist)

	if r := setlist.ValidatePrediction(&p); !r.Valid {
		return importFailure(r.Errors...)
	}
	return ImportResult{Success: true, Prediction: &p}
}

// ImportCSV parses the CSV interchange format: the exact header followed
// by one row per item in position order. Header-only input is a failure.
func ImportCSV(text string) ImportResult {
	if strings.TrimSpace(text) == "" {
		return importFailure("input is empty")
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = len(CSVHeader)

	header, err := reader.Read()
	if err != nil {
		return importFailure(fmt.Sprintf("reading header: %v", err))
	}
	for i, want := range CSVHeader {
		if !strings.EqualFold(strings.TrimSpace(header[i]), want) {
			return importFailure(fmt.Sprintf("unexpected header column %d: got %q, want %q", i, header[i], want))
		}
	}

	p := setlist.NewPrediction("Imported Setlist", "", &setlist.CustomPerformance{Name: "Imported Setlist"})
	var errs []string
	row := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			errs = append(errs, fmt.Sprintf("row %d: %v", row, err))
			continue
		}
		it, err := itemFromCSVRow(record)
		if err != nil {
			errs = append(errs, fmt.Sprintf("row %d: %v", row, err))
			continue
		}
		if err := p.AddItem(it, len(p.Setlist.Items)); err != nil {
			errs = append(errs, fmt.Sprintf("row %d: %v", row, err))
		}
	}

	if len(errs) > 0 {
		return importFailure(errs...)
	}
	if len(p.Setlist.Items) == 0 {
		return importFailure("no data rows after the header")
	}
	return ImportResult{Success: true, Prediction: p}
}

func itemFromCSVRow(record []string) (setlist.Item, error) {
	kind := strings.ToLower(strings.TrimSpace(record[1]))
	songID := strings.TrimSpace(record[2])
	title := strings.TrimSpace(record[3])
	meta := setlist.ItemMeta{ID: setlist.NewItemID(), Remarks: strings.TrimSpace(record[4])}

	switch kind {
	case "song", "encore": // "encore" rows are a legacy alias for songs
		if songID != "" {
			return &setlist.SongItem{ItemMeta: meta, SongID: songID}, nil
		}
		if title != "" {
			return &setlist.SongItem{ItemMeta: meta, IsCustomSong: true, CustomSongName: title}, nil
		}
		return nil, fmt.Errorf("song row needs a song id or a title")
	case "mc":
		if title == "" {
			return nil, fmt.Errorf("mc row needs a title")
		}
		return &setlist.BreakItem{ItemMeta: meta, BreakKind: setlist.KindMC, Title: title}, nil
	case "other":
		if title == "" {
			return nil, fmt.Errorf("other row needs a title")
		}
		return &setlist.BreakItem{ItemMeta: meta, BreakKind: setlist.KindOther, Title: title}, nil
	default:
		return nil, fmt.Errorf("unknown item type %q", record[1])
	}
}

// normalize renumbers declared positions into array order and refreshes
// the derived song count.
func normalize(s *setlist.Setlist) {
	for i, it := range s.Items {
		it.Meta().Position = i
	}
	s.TotalSongs = s.CountSongs()
}
