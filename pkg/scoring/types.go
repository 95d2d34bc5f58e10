// Package scoring implements the setscore prediction scoring engine.
// It matches a predicted setlist against the actual one and produces an
// auditable, deterministic points breakdown.
package scoring

// MatchType classifies how a predicted item lined up with the actual
// setlist.
type MatchType string

const (
	// MatchExact: same song at the identical song-sequence index.
	MatchExact MatchType = "exact"
	// MatchClose: same song within the configured position tolerance.
	MatchClose MatchType = "close"
	// MatchPresent: same song somewhere in the actual setlist.
	MatchPresent MatchType = "present"
	// MatchSection: a non-song item credited through section matching,
	// currently the encore marker.
	MatchSection MatchType = "section"
)

// ItemScore records the outcome for a single item.
type ItemScore struct {
	ItemID       string    `json:"itemId"`
	ActualItemID string    `json:"actualItemId,omitempty"`
	Matched      bool      `json:"matched"`
	Match        MatchType `json:"matchType,omitempty"`
	Points       int       `json:"points"`
}

// BonusAwards holds the bonus points actually awarded.
type BonusAwards struct {
	OpeningSong int `json:"openingSong,omitempty"`
	ClosingSong int `json:"closingSong,omitempty"`
	EncoreBreak int `json:"encoreBreak,omitempty"`
}

// Breakdown summarizes match counts and point subtotals per category.
type Breakdown struct {
	ExactMatches   int         `json:"exactMatches"`
	CloseMatches   int         `json:"closeMatches"`
	PresentMatches int         `json:"presentMatches"`
	ExactPoints    int         `json:"exactPoints"`
	ClosePoints    int         `json:"closePoints"`
	PresentPoints  int         `json:"presentPoints"`
	Bonus          BonusAwards `json:"bonusPoints"`
}

// Result is the complete output of scoring a prediction.
// Immutable once computed.
type Result struct {
	TotalScore       int         `json:"totalScore"`
	MaxPossibleScore int         `json:"maxPossibleScore"`
	Accuracy         float64     `json:"accuracy"` // 0-100
	Breakdown        Breakdown   `json:"breakdown"`
	ItemScores       []ItemScore `json:"itemScores"`
	// ActualAnnotations marks actual-side songs whose song appears
	// elsewhere in the prediction. Display only; never worth points.
	ActualAnnotations []ItemScore `json:"actualAnnotations,omitempty"`
}
