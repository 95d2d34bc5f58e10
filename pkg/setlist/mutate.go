package setlist

import (
	"fmt"
	"time"
)

// Builder mutations. Every operation either fully applies — including
// position renumbering, the TotalSongs recount, and the UpdatedAt stamp —
// or rejects its arguments before touching any field.

// renumber rewrites item positions to match array order and refreshes
// the derived song count.
func (s *Setlist) renumber() {
	for i, it := range s.Items {
		it.Meta().Position = i
	}
	s.TotalSongs = s.CountSongs()
}

func (p *Prediction) touch() {
	p.UpdatedAt = time.Now().UTC()
}

// AddItem appends an item, or inserts it at index when 0 <= index <= len.
func (p *Prediction) AddItem(it Item, index int) error {
	if it == nil {
		return fmt.Errorf("item is nil")
	}
	if index < 0 || index > len(p.Setlist.Items) {
		return fmt.Errorf("insert index %d out of range [0,%d]", index, len(p.Setlist.Items))
	}
	items := p.Setlist.Items
	items = append(items, nil)
	copy(items[index+1:], items[index:])
	items[index] = it
	p.Setlist.Items = items
	p.Setlist.renumber()
	p.touch()
	return nil
}

// RemoveItem deletes the item with the given id.
func (p *Prediction) RemoveItem(itemID string) error {
	idx := p.Setlist.indexOf(itemID)
	if idx < 0 {
		return fmt.Errorf("item %s not found", itemID)
	}
	p.Setlist.Items = append(p.Setlist.Items[:idx], p.Setlist.Items[idx+1:]...)
	p.Setlist.renumber()
	p.touch()
	return nil
}

// UpdateItem replaces the item with the given id in place. The
// replacement keeps the original id; a replacement carrying a different
// id is rejected because ids are immutable once assigned.
func (p *Prediction) UpdateItem(itemID string, replacement Item) error {
	if replacement == nil {
		return fmt.Errorf("replacement item is nil")
	}
	if rid := replacement.Meta().ID; rid != "" && rid != itemID {
		return fmt.Errorf("item ids are immutable: cannot replace %s with %s", itemID, rid)
	}
	idx := p.Setlist.indexOf(itemID)
	if idx < 0 {
		return fmt.Errorf("item %s not found", itemID)
	}
	replacement.Meta().ID = itemID
	p.Setlist.Items[idx] = replacement
	p.Setlist.renumber()
	p.touch()
	return nil
}

// MoveItem moves the item with the given id to the target index.
func (p *Prediction) MoveItem(itemID string, to int) error {
	if to < 0 || to >= len(p.Setlist.Items) {
		return fmt.Errorf("move index %d out of range [0,%d)", to, len(p.Setlist.Items))
	}
	from := p.Setlist.indexOf(itemID)
	if from < 0 {
		return fmt.Errorf("item %s not found", itemID)
	}
	items := p.Setlist.Items
	it := items[from]
	items = append(items[:from], items[from+1:]...)
	items = append(items, nil)
	copy(items[to+1:], items[to:])
	items[to] = it
	p.Setlist.Items = items
	p.Setlist.renumber()
	p.touch()
	return nil
}

// AddSection declares a named index range. The range must lie within the
// current items.
func (p *Prediction) AddSection(sec Section) error {
	n := len(p.Setlist.Items)
	if sec.StartIndex < 0 || sec.EndIndex < sec.StartIndex || sec.EndIndex >= n {
		return fmt.Errorf("section range [%d,%d] invalid for %d items", sec.StartIndex, sec.EndIndex, n)
	}
	switch sec.Type {
	case SectionMain, SectionEncore, SectionSpecial:
	default:
		return fmt.Errorf("unknown section type %q", sec.Type)
	}
	p.Setlist.Sections = append(p.Setlist.Sections, sec)
	p.touch()
	return nil
}

// RemoveSection deletes the section with the given name.
func (p *Prediction) RemoveSection(name string) error {
	for i, sec := range p.Setlist.Sections {
		if sec.Name == name {
			p.Setlist.Sections = append(p.Setlist.Sections[:i], p.Setlist.Sections[i+1:]...)
			p.touch()
			return nil
		}
	}
	return fmt.Errorf("section %s not found", name)
}

// SetMetadata updates the prediction's name and description.
func (p *Prediction) SetMetadata(name, description string) error {
	if name == "" {
		return fmt.Errorf("prediction name cannot be empty")
	}
	p.Name = name
	p.Description = description
	p.touch()
	return nil
}

// SetFavorite toggles the favorite flag.
func (p *Prediction) SetFavorite(fav bool) {
	p.IsFavorite = fav
	p.touch()
}

func (s *Setlist) indexOf(itemID string) int {
	for i, it := range s.Items {
		if it.Meta().ID == itemID {
			return i
		}
	}
	return -1
}

// NewPrediction creates an empty prediction for a performance (or a custom
// event when performanceID is empty and custom is set).
func NewPrediction(name, performanceID string, custom *CustomPerformance) *Prediction {
	now := time.Now().UTC()
	return &Prediction{
		ID:                NewPredictionID(performanceID),
		PerformanceID:     performanceID,
		CustomPerformance: custom,
		Name:              name,
		Setlist: Setlist{
			ID:            NewSetlistID(performanceID),
			PerformanceID: performanceID,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
