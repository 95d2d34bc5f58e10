// Package catalog provides read-only lookups over the bundled song,
// artist, and performance reference datasets. Lookups by id may come back
// empty; callers render a fallback label instead of failing.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

// Song is a catalog song entry.
type Song struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Artist string `json:"artist,omitempty"`
	Series string `json:"series,omitempty"`
}

// Performance is a catalog concert entry.
type Performance struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Venue string `json:"venue,omitempty"`
	Date  string `json:"date,omitempty"`
}

// Catalog is an immutable snapshot of the reference datasets.
type Catalog struct {
	songs        map[string]Song
	performances map[string]Performance
}

type catalogFile struct {
	Songs        []Song        `json:"songs"`
	Performances []Performance `json:"performances"`
}

// Load reads a catalog JSON file from disk.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return Parse(data)
}

// Parse builds a catalog from raw JSON.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	c := &Catalog{
		songs:        make(map[string]Song, len(f.Songs)),
		performances: make(map[string]Performance, len(f.Performances)),
	}
	for _, s := range f.Songs {
		c.songs[s.ID] = s
	}
	for _, p := range f.Performances {
		c.performances[p.ID] = p
	}
	return c, nil
}

// Empty returns a catalog with no entries; every lookup falls back.
func Empty() *Catalog {
	return &Catalog{
		songs:        map[string]Song{},
		performances: map[string]Performance{},
	}
}

// Song looks up a song by id.
func (c *Catalog) Song(id string) (Song, bool) {
	s, ok := c.songs[id]
	return s, ok
}

// Performance looks up a performance by id.
func (c *Catalog) Performance(id string) (Performance, bool) {
	p, ok := c.performances[id]
	return p, ok
}

// SongTitle returns the display title for a song id, falling back to the
// raw id when the catalog has no entry.
func (c *Catalog) SongTitle(id string) string {
	if s, ok := c.songs[id]; ok && s.Title != "" {
		return s.Title
	}
	return id
}

// PerformanceName returns the display name for a performance id, falling
// back to the raw id.
func (c *Catalog) PerformanceName(id string) string {
	if p, ok := c.performances[id]; ok && p.Name != "" {
		return p.Name
	}
	return id
}
