package transfer

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/setscore/setscore/pkg/setlist"
)

// PerformanceInfo carries the event context an export may include. The
// caller resolves it from the catalog; exports degrade gracefully when it
// is absent.
type PerformanceInfo struct {
	Name  string
	Venue string
	Date  string
}

// SongNamer resolves a catalog song id to a display title. Exports fall
// back to the raw id when the resolver is nil or returns "".
type SongNamer func(songID string) string

func itemLabel(it setlist.Item, namer SongNamer) string {
	switch v := it.(type) {
	case *setlist.SongItem:
		if v.IsCustomSong {
			return v.CustomSongName
		}
		if namer != nil {
			if name := namer(v.SongID); name != "" {
				return name
			}
		}
		return v.SongID
	case *setlist.BreakItem:
		return v.Title
	}
	return ""
}

// ExportJSON renders the prediction as indented JSON, the same layout
// ImportJSON accepts.
func ExportJSON(p *setlist.Prediction) (string, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding prediction: %w", err)
	}
	return string(data), nil
}

// ExportCSV renders the CSV interchange format: the exact header followed
// by one row per item in position order. Round-trips with ImportCSV.
func ExportCSV(p *setlist.Prediction) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(CSVHeader); err != nil {
		return "", fmt.Errorf("writing header: %w", err)
	}
	for _, it := range p.Setlist.Items {
		m := it.Meta()
		record := []string{strconv.Itoa(m.Position), string(it.Kind()), "", "", m.Remarks}
		switch v := it.(type) {
		case *setlist.SongItem:
			if v.IsCustomSong {
				record[3] = v.CustomSongName
			} else {
				record[2] = v.SongID
			}
		case *setlist.BreakItem:
			record[3] = v.Title
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("writing item %s: %w", m.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flushing csv: %w", err)
	}
	return buf.String(), nil
}

// ExportText renders a plain-text setlist for pasting into chats.
func ExportText(p *setlist.Prediction, perf *PerformanceInfo, authorName string, namer SongNamer) string {
	var b strings.Builder

	b.WriteString(p.Name + "\n")
	if perf != nil {
		b.WriteString(perf.Name)
		if perf.Venue != "" {
			b.WriteString(" @ " + perf.Venue)
		}
		if perf.Date != "" {
			b.WriteString(" (" + perf.Date + ")")
		}
		b.WriteString("\n")
	}
	if authorName != "" {
		b.WriteString("predicted by " + authorName + "\n")
	}
	b.WriteString("\n")

	song := 0
	for _, it := range p.Setlist.Items {
		label := itemLabel(it, namer)
		if it.Kind() == setlist.KindSong {
			song++
			b.WriteString(fmt.Sprintf("%d. %s", song, label))
		} else {
			b.WriteString(label)
		}
		if r := it.Meta().Remarks; r != "" {
			b.WriteString(" (" + r + ")")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// ExportMarkdown renders the prediction as a markdown document.
func ExportMarkdown(p *setlist.Prediction, perf *PerformanceInfo, authorName string, namer SongNamer) string {
	var b strings.Builder

	b.WriteString("# " + p.Name + "\n\n")
	if perf != nil {
		b.WriteString("**" + perf.Name + "**")
		if perf.Venue != "" {
			b.WriteString(" — " + perf.Venue)
		}
		if perf.Date != "" {
			b.WriteString(" — " + perf.Date)
		}
		b.WriteString("\n\n")
	}
	if p.Description != "" {
		b.WriteString(p.Description + "\n\n")
	}

	song := 0
	for _, it := range p.Setlist.Items {
		label := itemLabel(it, namer)
		switch it.Kind() {
		case setlist.KindSong:
			song++
			b.WriteString(fmt.Sprintf("%d. %s", song, label))
		case setlist.KindMC:
			b.WriteString("- _" + label + "_")
		default:
			b.WriteString("- **" + label + "**")
		}
		if r := it.Meta().Remarks; r != "" {
			b.WriteString(" _(" + r + ")_")
		}
		b.WriteString("\n")
	}
	if authorName != "" {
		b.WriteString("\n_predicted by " + authorName + "_\n")
	}
	return b.String()
}
