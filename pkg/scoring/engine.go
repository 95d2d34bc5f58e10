package scoring

import (
	"fmt"

	"github.com/setscore/setscore/pkg/setlist"
)

// Score evaluates a predicted setlist against the actual one. It is pure:
// the same inputs always produce the same result, and neither setlist is
// mutated.
func Score(predicted, actual *setlist.Setlist, rules Rules) (*Result, error) {
	if predicted == nil || actual == nil {
		return nil, fmt.Errorf("predicted and actual setlists are required")
	}
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}

	m := newMatcher(predicted, actual, rules.CloseTolerance)
	m.run()

	result := &Result{}

	// Per-item records for the predicted side, in setlist order. Bonus
	// points live in the breakdown, not on individual items.
	songSeq := 0
	encoreCredited := false
	predEncore := predicted.EncoreStart()
	actEncore := actual.EncoreStart()
	encoreMatched := predEncore >= 0 && predEncore == actEncore

	for i, it := range predicted.Items {
		score := ItemScore{ItemID: it.Meta().ID}
		switch it.(type) {
		case *setlist.SongItem:
			if aSeq := m.matchedTo[songSeq]; aSeq >= 0 {
				score.Matched = true
				score.Match = m.matchKind[songSeq]
				score.ActualItemID = m.actual[aSeq].item.ID
				switch score.Match {
				case MatchExact:
					score.Points = rules.ExactMatch
					result.Breakdown.ExactMatches++
					result.Breakdown.ExactPoints += rules.ExactMatch
				case MatchClose:
					score.Points = rules.CloseMatch
					result.Breakdown.CloseMatches++
					result.Breakdown.ClosePoints += rules.CloseMatch
				case MatchPresent:
					score.Points = rules.PresentMatch
					result.Breakdown.PresentMatches++
					result.Breakdown.PresentPoints += rules.PresentMatch
				}
			}
			songSeq++
		case *setlist.BreakItem:
			if encoreMatched && !encoreCredited && i == predEncore {
				score.Matched = true
				score.Match = MatchSection
				encoreCredited = true
			}
		}
		result.ItemScores = append(result.ItemScores, score)
	}

	// Actual-side annotations: songs the prediction placed elsewhere.
	predKeys := m.predictedKeySet()
	for _, a := range m.actual {
		if m.consumed[a.seq] {
			continue
		}
		if predKeys[a.item.MatchKey()] {
			result.ActualAnnotations = append(result.ActualAnnotations, ItemScore{
				ItemID: a.item.ID,
				Match:  MatchPresent,
			})
		}
	}

	applyBonuses(result, m, rules, encoreMatched)

	result.TotalScore = result.Breakdown.ExactPoints +
		result.Breakdown.ClosePoints +
		result.Breakdown.PresentPoints +
		result.Breakdown.Bonus.OpeningSong +
		result.Breakdown.Bonus.ClosingSong +
		result.Breakdown.Bonus.EncoreBreak

	result.MaxPossibleScore = maxPossible(m, actual, rules)
	if result.MaxPossibleScore > 0 {
		result.Accuracy = float64(result.TotalScore) / float64(result.MaxPossibleScore) * 100
	}

	return result, nil
}

func applyBonuses(result *Result, m *matcher, rules Rules, encoreMatched bool) {
	if len(m.predicted) > 0 && len(m.actual) > 0 {
		if m.predicted[0].item.MatchKey() == m.actual[0].item.MatchKey() {
			result.Breakdown.Bonus.OpeningSong = rules.Bonuses.OpeningSong
		}
		last := len(m.predicted) - 1
		if m.predicted[last].item.MatchKey() == m.actual[len(m.actual)-1].item.MatchKey() {
			result.Breakdown.Bonus.ClosingSong = rules.Bonuses.ClosingSong
		}
	}
	if encoreMatched {
		result.Breakdown.Bonus.EncoreBreak = rules.Bonuses.EncoreBreak
	}
}

// maxPossible is the score a perfect prediction of this actual setlist
// would earn: every actual song matched exactly, plus each bonus that is
// structurally attainable.
func maxPossible(m *matcher, actual *setlist.Setlist, rules Rules) int {
	max := len(m.actual) * rules.ExactMatch
	if len(m.actual) > 0 && len(m.predicted) > 0 {
		max += rules.Bonuses.OpeningSong + rules.Bonuses.ClosingSong
	}
	if actual.EncoreStart() >= 0 {
		max += rules.Bonuses.EncoreBreak
	}
	return max
}
