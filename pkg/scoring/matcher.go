package scoring

import "github.com/setscore/setscore/pkg/setlist"

// songRef pins a song item to its index in the song-only subsequence.
// All matching happens over song-sequence indices, so MC breaks and
// dividers never shift a song's matching position.
type songRef struct {
	item *setlist.SongItem
	seq  int
}

func songRefs(s *setlist.Setlist) []songRef {
	var refs []songRef
	for _, song := range s.Songs() {
		refs = append(refs, songRef{item: song, seq: len(refs)})
	}
	return refs
}

// matcher runs the exact/close/present passes. Duplicate songs are handled
// with a per-song queue of unconsumed actual indices: every consumption
// pops the first available occurrence, so a single actual item can never
// be counted twice and the result is independent of anything but the
// arrays' own order.
type matcher struct {
	predicted []songRef
	actual    []songRef
	tolerance int

	queues    map[string][]int // match key -> unconsumed actual seq indices, ascending
	consumed  []bool           // indexed by actual seq
	matchedTo []int            // predicted seq -> actual seq, -1 when unmatched
	matchKind []MatchType      // predicted seq -> match quality
}

func newMatcher(predicted, actual *setlist.Setlist, tolerance int) *matcher {
	m := &matcher{
		predicted: songRefs(predicted),
		actual:    songRefs(actual),
		tolerance: tolerance,
		queues:    make(map[string][]int),
	}
	m.consumed = make([]bool, len(m.actual))
	m.matchedTo = make([]int, len(m.predicted))
	m.matchKind = make([]MatchType, len(m.predicted))
	for i := range m.matchedTo {
		m.matchedTo[i] = -1
	}
	for _, ref := range m.actual {
		key := ref.item.MatchKey()
		m.queues[key] = append(m.queues[key], ref.seq)
	}
	return m
}

func (m *matcher) run() {
	m.exactPass()
	m.closePass()
	m.presentPass()
}

// exactPass matches songs sitting at the identical song-sequence index,
// greedy left to right.
func (m *matcher) exactPass() {
	for _, p := range m.predicted {
		if p.seq >= len(m.actual) {
			break
		}
		a := m.actual[p.seq]
		if m.consumed[a.seq] {
			continue
		}
		if a.item.MatchKey() != p.item.MatchKey() {
			continue
		}
		m.take(p.seq, a.seq, MatchExact)
	}
}

// closePass matches remaining songs within the position tolerance,
// preferring the smallest distance; equidistant candidates resolve to the
// earlier actual occurrence.
func (m *matcher) closePass() {
	for _, p := range m.predicted {
		if m.matchedTo[p.seq] >= 0 {
			continue
		}
		best := -1
		bestDist := m.tolerance + 1
		for _, aSeq := range m.queues[p.item.MatchKey()] {
			dist := aSeq - p.seq
			if dist < 0 {
				dist = -dist
			}
			if dist < bestDist {
				best = aSeq
				bestDist = dist
			}
		}
		if best >= 0 {
			m.take(p.seq, best, MatchClose)
		}
	}
}

// presentPass consumes any remaining occurrence of a predicted song, no
// matter where it sits in the actual setlist.
func (m *matcher) presentPass() {
	for _, p := range m.predicted {
		if m.matchedTo[p.seq] >= 0 {
			continue
		}
		queue := m.queues[p.item.MatchKey()]
		if len(queue) == 0 {
			continue
		}
		m.take(p.seq, queue[0], MatchPresent)
	}
}

// take consumes the actual occurrence for the predicted song and removes
// it from its queue.
func (m *matcher) take(pSeq, aSeq int, kind MatchType) {
	m.matchedTo[pSeq] = aSeq
	m.matchKind[pSeq] = kind
	m.consumed[aSeq] = true

	key := m.actual[aSeq].item.MatchKey()
	queue := m.queues[key]
	for i, v := range queue {
		if v == aSeq {
			m.queues[key] = append(queue[:i], queue[i+1:]...)
			break
		}
	}
}

// predictedKeySet returns the set of song keys the prediction contains.
func (m *matcher) predictedKeySet() map[string]bool {
	keys := make(map[string]bool, len(m.predicted))
	for _, p := range m.predicted {
		keys[p.item.MatchKey()] = true
	}
	return keys
}
