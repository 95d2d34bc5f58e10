// Package setlist defines the core data model for setscore: setlist items,
// setlists, and predictions. These types are the shared vocabulary across
// all modules.
package setlist

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Kind discriminates setlist item variants.
type Kind string

const (
	KindSong  Kind = "song"
	KindMC    Kind = "mc"
	KindOther Kind = "other"
)

// ItemMeta holds the fields shared by every item variant.
type ItemMeta struct {
	ID       string `json:"id"`
	Position int    `json:"position"` // dense index into the setlist, renumbered on every mutation
	Remarks  string `json:"remarks,omitempty"`
}

// Item is a single entry in a setlist. It is a closed sum: the only
// implementations are SongItem and BreakItem, so a non-song item can never
// carry a song reference and a song item can never lack one.
type Item interface {
	Kind() Kind
	Meta() *ItemMeta
}

// SongItem is a performed song, either a catalog reference (SongID set)
// or a custom song (IsCustomSong with CustomSongName).
type SongItem struct {
	ItemMeta
	SongID         string `json:"songId,omitempty"`
	IsCustomSong   bool   `json:"isCustomSong,omitempty"`
	CustomSongName string `json:"customSongName,omitempty"`
}

func (s *SongItem) Kind() Kind      { return KindSong }
func (s *SongItem) Meta() *ItemMeta { return &s.ItemMeta }

// MatchKey returns the identity used when comparing songs across setlists.
// Catalog songs compare by id; custom songs by case-folded name.
func (s *SongItem) MatchKey() string {
	if s.IsCustomSong {
		return "custom:" + strings.ToLower(strings.TrimSpace(s.CustomSongName))
	}
	return s.SongID
}

// DisplayName returns the best human-readable label the item itself can
// provide. Catalog titles come from a lookup layer, not from here.
func (s *SongItem) DisplayName() string {
	if s.IsCustomSong {
		return s.CustomSongName
	}
	return s.SongID
}

// BreakItem is a non-song entry: an MC segment, a divider line, or any
// free-form item. BreakKind is KindMC or KindOther.
type BreakItem struct {
	ItemMeta
	BreakKind Kind   `json:"-"`
	Title     string `json:"title"`
}

func (b *BreakItem) Kind() Kind      { return b.BreakKind }
func (b *BreakItem) Meta() *ItemMeta { return &b.ItemMeta }

// IsDivider reports whether the item's title marks a structural break,
// such as an encore banner or a horizontal rule pasted from a fan report.
func (b *BreakItem) IsDivider() bool {
	return IsDividerTitle(b.Title)
}

// IsDividerTitle recognizes the divider conventions seen in pasted
// setlists: heavy or plain rules, and the word ENCORE in any case.
func IsDividerTitle(title string) bool {
	if strings.Contains(title, "━━") ||
		strings.Contains(title, "---") ||
		strings.Contains(title, "===") {
		return true
	}
	return strings.Contains(strings.ToUpper(title), "ENCORE")
}

// IsEncoreTitle reports whether a divider title specifically announces an
// encore, as opposed to a plain rule between blocks.
func IsEncoreTitle(title string) bool {
	return strings.Contains(strings.ToUpper(title), "ENCORE")
}

// SectionType classifies a named sub-range of a setlist.
type SectionType string

const (
	SectionMain    SectionType = "main"
	SectionEncore  SectionType = "encore"
	SectionSpecial SectionType = "special"
)

// Section is an index range over a setlist's items, used for bonus scoring.
// StartIndex and EndIndex are inclusive positions.
type Section struct {
	Name       string      `json:"name"`
	Type       SectionType `json:"type"`
	StartIndex int         `json:"startIndex"`
	EndIndex   int         `json:"endIndex"`
}

// Setlist is an ordered sequence of items. Array order is authoritative;
// Position mirrors it and is kept dense by the mutation helpers.
type Setlist struct {
	ID            string    `json:"id"`
	PerformanceID string    `json:"performanceId,omitempty"`
	Items         []Item    `json:"items"`
	Sections      []Section `json:"sections,omitempty"`
	TotalSongs    int       `json:"totalSongs"`
	IsActual      bool      `json:"isActual,omitempty"`
}

// Songs returns the song-only subsequence in setlist order.
func (s *Setlist) Songs() []*SongItem {
	var songs []*SongItem
	for _, it := range s.Items {
		if song, ok := it.(*SongItem); ok {
			songs = append(songs, song)
		}
	}
	return songs
}

// CountSongs returns the number of song items.
func (s *Setlist) CountSongs() int {
	n := 0
	for _, it := range s.Items {
		if it.Kind() == KindSong {
			n++
		}
	}
	return n
}

// EncoreStart returns the item index where the encore begins: the start of
// the first encore section, or failing that the first divider item that
// announces an encore. Returns -1 when the setlist has no encore marker.
func (s *Setlist) EncoreStart() int {
	for _, sec := range s.Sections {
		if sec.Type == SectionEncore {
			return sec.StartIndex
		}
	}
	for i, it := range s.Items {
		if b, ok := it.(*BreakItem); ok && IsEncoreTitle(b.Title) {
			return i
		}
	}
	return -1
}

// CustomPerformance identifies an ad-hoc event that has no catalog entry.
type CustomPerformance struct {
	Name  string `json:"name"`
	Venue string `json:"venue,omitempty"`
	Date  string `json:"date,omitempty"`
}

// Prediction is a user-authored guess at a performance's setlist.
type Prediction struct {
	ID                string             `json:"id"`
	PerformanceID     string             `json:"performanceId,omitempty"`
	CustomPerformance *CustomPerformance `json:"customPerformance,omitempty"`
	Name              string             `json:"name"`
	Description       string             `json:"description,omitempty"`
	Setlist           Setlist            `json:"setlist"`
	IsFavorite        bool               `json:"isFavorite,omitempty"`
	UserID            string             `json:"userId,omitempty"`
	CreatedAt         time.Time          `json:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt"`
}

// EventName returns the performance reference or the custom event name.
func (p *Prediction) EventName() string {
	if p.CustomPerformance != nil && p.CustomPerformance.Name != "" {
		return p.CustomPerformance.Name
	}
	return p.PerformanceID
}

// itemWire is the serialized form of the Item sum type, discriminated by
// the type field.
type itemWire struct {
	Type           Kind   `json:"type"`
	ID             string `json:"id"`
	Position       int    `json:"position"`
	Remarks        string `json:"remarks,omitempty"`
	SongID         string `json:"songId,omitempty"`
	IsCustomSong   bool   `json:"isCustomSong,omitempty"`
	CustomSongName string `json:"customSongName,omitempty"`
	Title          string `json:"title,omitempty"`
}

func itemToWire(it Item) itemWire {
	m := it.Meta()
	w := itemWire{
		Type:     it.Kind(),
		ID:       m.ID,
		Position: m.Position,
		Remarks:  m.Remarks,
	}
	switch v := it.(type) {
	case *SongItem:
		w.SongID = v.SongID
		w.IsCustomSong = v.IsCustomSong
		w.CustomSongName = v.CustomSongName
	case *BreakItem:
		w.Title = v.Title
	}
	return w
}

func itemFromWire(w itemWire) (Item, error) {
	meta := ItemMeta{ID: w.ID, Position: w.Position, Remarks: w.Remarks}
	switch w.Type {
	case KindSong, "encore": // "encore" is a legacy alias for song rows
		return &SongItem{
			ItemMeta:       meta,
			SongID:         w.SongID,
			IsCustomSong:   w.IsCustomSong,
			CustomSongName: w.CustomSongName,
		}, nil
	case KindMC, KindOther:
		return &BreakItem{ItemMeta: meta, BreakKind: w.Type, Title: w.Title}, nil
	default:
		return nil, fmt.Errorf("unknown item type %q", w.Type)
	}
}

type setlistWire struct {
	ID            string     `json:"id"`
	PerformanceID string     `json:"performanceId,omitempty"`
	Items         []itemWire `json:"items"`
	Sections      []Section  `json:"sections,omitempty"`
	TotalSongs    int        `json:"totalSongs"`
	IsActual      bool       `json:"isActual,omitempty"`
}

// MarshalJSON encodes items through the tagged wire form.
func (s Setlist) MarshalJSON() ([]byte, error) {
	w := setlistWire{
		ID:            s.ID,
		PerformanceID: s.PerformanceID,
		Items:         make([]itemWire, 0, len(s.Items)),
		Sections:      s.Sections,
		TotalSongs:    s.TotalSongs,
		IsActual:      s.IsActual,
	}
	for _, it := range s.Items {
		w.Items = append(w.Items, itemToWire(it))
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes the tagged wire form back into the sum type.
func (s *Setlist) UnmarshalJSON(data []byte) error {
	var w setlistWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	items := make([]Item, 0, len(w.Items))
	for _, iw := range w.Items {
		it, err := itemFromWire(iw)
		if err != nil {
			return fmt.Errorf("item %q: %w", iw.ID, err)
		}
		items = append(items, it)
	}
	*s = Setlist{
		ID:            w.ID,
		PerformanceID: w.PerformanceID,
		Items:         items,
		Sections:      w.Sections,
		TotalSongs:    w.TotalSongs,
		IsActual:      w.IsActual,
	}
	return nil
}
