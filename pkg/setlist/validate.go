package setlist

import (
	"fmt"
	"sort"
)

// Result is the outcome of a validation check. Errors aggregates every
// problem found so a caller can show all of them at once.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

func newResult(errs []string) Result {
	return Result{Valid: len(errs) == 0, Errors: errs}
}

// ValidateItem checks the structural invariants of a single item.
func ValidateItem(it Item) Result {
	var errs []string
	if it == nil {
		return newResult([]string{"item is nil"})
	}
	m := it.Meta()
	if m.ID == "" {
		errs = append(errs, "item is missing an id")
	}
	if m.Position < 0 {
		errs = append(errs, fmt.Sprintf("item %s has negative position %d", m.ID, m.Position))
	}
	switch v := it.(type) {
	case *SongItem:
		if v.IsCustomSong {
			if v.CustomSongName == "" {
				errs = append(errs, fmt.Sprintf("custom song %s is missing a name", m.ID))
			}
		} else if v.SongID == "" {
			errs = append(errs, fmt.Sprintf("song %s has neither a song reference nor custom song data", m.ID))
		}
	case *BreakItem:
		if v.Title == "" {
			errs = append(errs, fmt.Sprintf("%s item %s is missing a title", v.BreakKind, m.ID))
		}
		if v.BreakKind != KindMC && v.BreakKind != KindOther {
			errs = append(errs, fmt.Sprintf("item %s has invalid kind %q", m.ID, v.BreakKind))
		}
	}
	return newResult(errs)
}

// ValidateSetlist checks a setlist's declared item positions. The check
// runs over the positions the items carry, not their array index, so a
// caller must renumber before persisting unless gaps should be an error.
func ValidateSetlist(s *Setlist) Result {
	var errs []string
	if s == nil {
		return newResult([]string{"setlist is nil"})
	}
	if len(s.Items) == 0 {
		errs = append(errs, "setlist has no items")
		return newResult(errs)
	}

	positions := make([]int, 0, len(s.Items))
	for _, it := range s.Items {
		positions = append(positions, it.Meta().Position)
	}
	sort.Ints(positions)
	for i, p := range positions {
		if p != i {
			errs = append(errs, fmt.Sprintf("item positions have gaps: expected %d, found %d", i, p))
			break
		}
	}
	return newResult(errs)
}

// ValidatePrediction checks a prediction and every item it contains,
// aggregating all error messages without short-circuiting.
func ValidatePrediction(p *Prediction) Result {
	var errs []string
	if p == nil {
		return newResult([]string{"prediction is nil"})
	}
	if p.ID == "" {
		errs = append(errs, "prediction is missing an id")
	}
	if p.PerformanceID == "" && (p.CustomPerformance == nil || p.CustomPerformance.Name == "") {
		errs = append(errs, "prediction has neither a performance reference nor a custom performance")
	}
	if p.Name == "" {
		errs = append(errs, "prediction is missing a name")
	}
	for _, it := range p.Setlist.Items {
		if r := ValidateItem(it); !r.Valid {
			errs = append(errs, r.Errors...)
		}
	}
	return newResult(errs)
}
