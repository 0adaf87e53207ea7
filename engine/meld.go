package engine

import "sort"

// Validate reports whether the sequence is a meld that may sit on the
// table: either a set of identical ranks in distinct suits, or a run of
// consecutive ranks in one suit. Jokers stand for any card.
//
// An empty sequence is never valid. A sequence of jokers only is always
// valid. Anything else needs at least three cards.
//
// When a run is accepted the sequence is rewritten into run order, with
// each joker placed at the gap it fills and spare jokers trailing. A
// rejected sequence is left untouched, so callers can roll the cards back
// to where they came from.
func (s *Sequence) Validate() bool {
	n := len(s.cards)
	if n == 0 {
		return false
	}
	jokers := 0
	for _, c := range s.cards {
		if c.IsJoker() {
			jokers++
		}
	}
	if jokers == n {
		return true
	}
	if n < 3 {
		return false
	}
	if s.validSet() {
		return true
	}
	return s.validRun(jokers)
}

// validSet checks the identical-rank rule: every regular card shares one
// rank and no suit appears twice.
func (s *Sequence) validSet() bool {
	var rank uint8
	var seen [5]bool
	for _, c := range s.cards {
		if c.IsJoker() {
			continue
		}
		if rank == 0 {
			rank = c.Rank()
		} else if c.Rank() != rank {
			return false
		}
		if seen[c.Suit()] {
			return false
		}
		seen[c.Suit()] = true
	}
	return true
}

// validRun checks the consecutive-rank rule. The regular cards must share a
// suit; they are sorted by rank and the jokers are spent on the gaps. An
// Ace sorts low, but a leading Ace followed by anything other than a 2 is
// first tried at the high end (rank 14), which makes Queen-King-Ace the one
// permitted wrap.
func (s *Sequence) validRun(jokers int) bool {
	regulars := make([]Card, 0, len(s.cards)-jokers)
	for _, c := range s.cards {
		if !c.IsJoker() {
			regulars = append(regulars, c)
		}
	}
	suit := regulars[0].Suit()
	for _, c := range regulars[1:] {
		if c.Suit() != suit {
			return false
		}
	}
	sort.Slice(regulars, func(i, j int) bool { return regulars[i].Rank() < regulars[j].Rank() })

	if len(regulars) > 1 && regulars[0].Rank() == 1 && regulars[1].Rank() != 2 {
		aceHigh := append(append(make([]Card, 0, len(regulars)), regulars[1:]...), regulars[0])
		if ordered, ok := fillRunGaps(aceHigh, jokers, true); ok {
			s.cards = ordered
			return true
		}
	}
	ordered, ok := fillRunGaps(regulars, jokers, false)
	if !ok {
		return false
	}
	s.cards = ordered
	return true
}

// fillRunGaps walks rank-sorted regular cards and spends jokers on the rank
// gaps between neighbours. aceHigh marks a relocated trailing Ace, read as
// rank 14. It returns the cards in run order with the jokers inserted at
// the gaps they fill and any spare jokers appended.
func fillRunGaps(regulars []Card, jokers int, aceHigh bool) ([]Card, bool) {
	ranks := make([]int, len(regulars))
	for i, c := range regulars {
		ranks[i] = int(c.Rank())
	}
	if aceHigh {
		ranks[len(ranks)-1] = int(MaxRank) + 1
	}

	ordered := make([]Card, 0, len(regulars)+jokers)
	ordered = append(ordered, regulars[0])
	for i := 1; i < len(regulars); i++ {
		gap := ranks[i] - ranks[i-1] - 1
		if gap < 0 || gap > jokers {
			return nil, false
		}
		jokers -= gap
		for ; gap > 0; gap-- {
			ordered = append(ordered, Joker)
		}
		ordered = append(ordered, regulars[i])
	}
	for ; jokers > 0; jokers-- {
		ordered = append(ordered, Joker)
	}
	return ordered, true
}
