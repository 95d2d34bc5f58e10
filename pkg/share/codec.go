// Package share implements the compact, reversible encoding used for
// prediction share URLs: a minimal payload, deflate-compressed and
// base64url-encoded so the value needs no extra percent-encoding.
package share

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"

	"github.com/setscore/setscore/pkg/setlist"
)

// ErrCorrupted marks share data that failed to decode. Callers must
// surface it as "invalid or corrupted share URL", never as an empty
// prediction.
var ErrCorrupted = errors.New("share data is invalid or corrupted")

// payloadVersion guards the wire layout; bump when the payload changes.
const payloadVersion = 1

// payload is the minimal field set needed to rebuild a prediction.
// IDs and timestamps are deliberately absent: the receiver mints fresh
// ones.
type payload struct {
	Version       int              `json:"v"`
	PerformanceID string           `json:"p,omitempty"`
	CustomName    string           `json:"cn,omitempty"`
	CustomVenue   string           `json:"cv,omitempty"`
	CustomDate    string           `json:"cd,omitempty"`
	Name          string           `json:"n"`
	Description   string           `json:"d,omitempty"`
	Items         []itemPayload    `json:"i"`
	Sections      []sectionPayload `json:"s,omitempty"`
}

type itemPayload struct {
	Type    string `json:"t"`           // s, m, o
	SongID  string `json:"g,omitempty"` // catalog reference
	Custom  string `json:"c,omitempty"` // custom song name
	Title   string `json:"l,omitempty"` // break title
	Remarks string `json:"r,omitempty"`
}

type sectionPayload struct {
	Name  string `json:"n"`
	Type  string `json:"t"`
	Start int    `json:"a"`
	End   int    `json:"b"`
}

// Compress serializes a prediction into a URL-safe string.
func Compress(p *setlist.Prediction) (string, error) {
	if p == nil {
		return "", fmt.Errorf("prediction is nil")
	}

	pl := payload{
		Version:       payloadVersion,
		PerformanceID: p.PerformanceID,
		Name:          p.Name,
		Description:   p.Description,
	}
	if p.CustomPerformance != nil {
		pl.CustomName = p.CustomPerformance.Name
		pl.CustomVenue = p.CustomPerformance.Venue
		pl.CustomDate = p.CustomPerformance.Date
	}
	for _, it := range p.Setlist.Items {
		ip := itemPayload{Remarks: it.Meta().Remarks}
		switch v := it.(type) {
		case *setlist.SongItem:
			ip.Type = "s"
			if v.IsCustomSong {
				ip.Custom = v.CustomSongName
			} else {
				ip.SongID = v.SongID
			}
		case *setlist.BreakItem:
			ip.Type = "o"
			if v.BreakKind == setlist.KindMC {
				ip.Type = "m"
			}
			ip.Title = v.Title
		}
		pl.Items = append(pl.Items, ip)
	}
	for _, sec := range p.Setlist.Sections {
		pl.Sections = append(pl.Sections, sectionPayload{
			Name:  sec.Name,
			Type:  string(sec.Type),
			Start: sec.StartIndex,
			End:   sec.EndIndex,
		})
	}

	raw, err := json.Marshal(pl)
	if err != nil {
		return "", fmt.Errorf("encoding payload: %w", err)
	}

	var buf bytes.Buffer
	fw, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return "", fmt.Errorf("creating compressor: %w", err)
	}
	if _, err := fw.Write(raw); err != nil {
		return "", fmt.Errorf("compressing payload: %w", err)
	}
	if err := fw.Close(); err != nil {
		return "", fmt.Errorf("compressing payload: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

// Decompress rebuilds a prediction from share data. The result carries a
// fresh id and timestamps; malformed input yields ErrCorrupted.
func Decompress(data string) (*setlist.Prediction, error) {
	if data == "" {
		return nil, fmt.Errorf("%w: empty payload", ErrCorrupted)
	}

	compressed, err := base64.RawURLEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}

	raw, err := io.ReadAll(flate.NewReader(bytes.NewReader(compressed)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}

	var pl payload
	if err := json.Unmarshal(raw, &pl); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}
	if pl.Version != payloadVersion {
		return nil, fmt.Errorf("%w: unsupported payload version %d", ErrCorrupted, pl.Version)
	}
	if pl.Name == "" || len(pl.Items) == 0 {
		return nil, fmt.Errorf("%w: payload is missing required fields", ErrCorrupted)
	}

	var custom *setlist.CustomPerformance
	if pl.CustomName != "" {
		custom = &setlist.CustomPerformance{
			Name:  pl.CustomName,
			Venue: pl.CustomVenue,
			Date:  pl.CustomDate,
		}
	}

	p := setlist.NewPrediction(pl.Name, pl.PerformanceID, custom)
	p.Description = pl.Description

	for i, ip := range pl.Items {
		meta := setlist.ItemMeta{ID: setlist.NewItemID(), Position: i, Remarks: ip.Remarks}
		var it setlist.Item
		switch ip.Type {
		case "s":
			it = &setlist.SongItem{
				ItemMeta:       meta,
				SongID:         ip.SongID,
				IsCustomSong:   ip.Custom != "",
				CustomSongName: ip.Custom,
			}
		case "m":
			it = &setlist.BreakItem{ItemMeta: meta, BreakKind: setlist.KindMC, Title: ip.Title}
		case "o":
			it = &setlist.BreakItem{ItemMeta: meta, BreakKind: setlist.KindOther, Title: ip.Title}
		default:
			return nil, fmt.Errorf("%w: unknown item type %q", ErrCorrupted, ip.Type)
		}
		if err := p.AddItem(it, i); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
		}
	}
	for _, sp := range pl.Sections {
		sec := setlist.Section{
			Name:       sp.Name,
			Type:       setlist.SectionType(sp.Type),
			StartIndex: sp.Start,
			EndIndex:   sp.End,
		}
		if err := p.AddSection(sec); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
		}
	}

	return p, nil
}
