package scoring

import "fmt"

// Bonuses holds the point values for section-aware bonuses.
type Bonuses struct {
	OpeningSong int `json:"openingSong" yaml:"opening_song"`
	ClosingSong int `json:"closingSong" yaml:"closing_song"`
	EncoreBreak int `json:"encoreBreak" yaml:"encore_break"`
}

// Rules carries every tunable of the scoring algorithm. The engine bakes
// in none of these numbers; callers pass DefaultRules() or their own.
type Rules struct {
	ExactMatch     int     `json:"exactMatch" yaml:"exact_match"`
	CloseMatch     int     `json:"closeMatch" yaml:"close_match"`
	CloseTolerance int     `json:"closeTolerance" yaml:"close_tolerance"` // max song-sequence distance
	PresentMatch   int     `json:"presentMatch" yaml:"present_match"`
	Bonuses        Bonuses `json:"bonuses" yaml:"bonuses"`
}

// DefaultRules returns the standard rule set.
func DefaultRules() Rules {
	return Rules{
		ExactMatch:     10,
		CloseMatch:     5,
		CloseTolerance: 2,
		PresentMatch:   2,
		Bonuses: Bonuses{
			OpeningSong: 5,
			ClosingSong: 5,
			EncoreBreak: 3,
		},
	}
}

// Validate rejects rule sets the engine cannot meaningfully apply.
func (r Rules) Validate() error {
	if r.ExactMatch <= 0 {
		return fmt.Errorf("exact match points must be positive, got %d", r.ExactMatch)
	}
	if r.CloseTolerance < 0 {
		return fmt.Errorf("close tolerance must be >= 0, got %d", r.CloseTolerance)
	}
	if r.CloseMatch < 0 || r.PresentMatch < 0 {
		return fmt.Errorf("match points must be >= 0")
	}
	return nil
}
