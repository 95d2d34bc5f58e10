package transfer

import (
	"regexp"
	"strings"

	"github.com/setscore/setscore/pkg/setlist"
)

var (
	// "1. Song Name", "2) Song Name", full-width dot accepted.
	numberedLine = regexp.MustCompile(`^\s*\d+\s*[.)、．]\s*(.+)$`)
	// "MC", "MC①", "MC2", "[MC]", optionally with a trailing note.
	mcLine = regexp.MustCompile(`(?i)^\s*(?:\[\s*MC\s*\]|MC[①-⑳0-9]*)\s*(.*)$`)
)

// ParseActualSetlist parses a human-pasted setlist into items. Numbered
// lines become songs in order, MC markers become mc items, divider lines
// become other items. Blank lines are skipped and anything unrecognized is
// kept as a free-form item, so partial or mixed input never fails; empty
// input yields an empty item list.
func ParseActualSetlist(text string) []setlist.Item {
	var items []setlist.Item

	add := func(it setlist.Item) {
		it.Meta().Position = len(items)
		items = append(items, it)
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if m := numberedLine.FindStringSubmatch(line); m != nil {
			title := strings.TrimSpace(m[1])
			add(&setlist.SongItem{
				ItemMeta:       setlist.ItemMeta{ID: setlist.NewItemID()},
				IsCustomSong:   true,
				CustomSongName: title,
			})
			continue
		}

		if setlist.IsDividerTitle(line) {
			add(&setlist.BreakItem{
				ItemMeta:  setlist.ItemMeta{ID: setlist.NewItemID()},
				BreakKind: setlist.KindOther,
				Title:     line,
			})
			continue
		}

		if mcLine.MatchString(line) {
			add(&setlist.BreakItem{
				ItemMeta:  setlist.ItemMeta{ID: setlist.NewItemID()},
				BreakKind: setlist.KindMC,
				Title:     line,
			})
			continue
		}

		add(&setlist.BreakItem{
			ItemMeta:  setlist.ItemMeta{ID: setlist.NewItemID()},
			BreakKind: setlist.KindOther,
			Title:     line,
		})
	}

	return items
}

// ParseActualSetlistAsSetlist wraps ParseActualSetlist in a ground-truth
// setlist ready for scoring.
func ParseActualSetlistAsSetlist(text, performanceID string) *setlist.Setlist {
	s := &setlist.Setlist{
		ID:            setlist.NewSetlistID(performanceID),
		PerformanceID: performanceID,
		Items:         ParseActualSetlist(text),
		IsActual:      true,
	}
	s.TotalSongs = s.CountSongs()
	return s
}
