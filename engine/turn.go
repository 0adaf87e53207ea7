package engine

import "fmt"

// PenaltyDraw is the number of cards drawn when a player gives up on a
// table rearrangement.
const PenaltyDraw = 3

// Turn is the state machine for one player's turn. It mutates the hand,
// deck and table it was built on, keeps snapshots of the hand and table as
// they were at the start, and tracks the cards borrowed from the table so
// the turn cannot end while any remain unplayed.
type Turn struct {
	hand  *Sequence
	deck  *Sequence
	table *Table

	jokerRule bool

	hand0    *Sequence
	table0   *Table
	borrowed *Sequence
	done     bool
}

// NewTurn starts a turn for the player holding hand. jokerRule enables the
// house rule that jokers in hand block ending the turn.
func NewTurn(hand, deck *Sequence, table *Table, jokerRule bool) *Turn {
	return &Turn{
		hand:      hand,
		deck:      deck,
		table:     table,
		jokerRule: jokerRule,
		hand0:     hand.Clone(),
		table0:    table.Clone(),
		borrowed:  NewSequence(),
	}
}

// Done reports whether the turn has ended.
func (t *Turn) Done() bool { return t.done }

// Borrowed returns the cards currently taken from the table.
func (t *Turn) Borrowed() *Sequence { return t.borrowed }

// Hand returns the player's hand.
func (t *Turn) Hand() *Sequence { return t.hand }

// EndTurn finishes the turn. It is rejected while borrowed cards remain,
// and under the joker house rule while a joker is in hand. If the player
// changed nothing this turn, one card is drawn; an empty deck then yields
// ErrNoMoreCards, which is informational — the turn still ends.
func (t *Turn) EndTurn() (drawn Card, drew bool, err error) {
	if t.done {
		return Joker, false, ErrTurnOver
	}
	if t.borrowed.Len() > 0 {
		return Joker, false, ErrBorrowedNotReplayed
	}
	if t.jokerRule && t.hand.ContainsJoker() {
		return Joker, false, ErrJokersMustBePlayed
	}
	if t.hand.Matches(t.hand0) {
		c, ok := t.deck.Draw()
		if !ok {
			t.done = true
			return Joker, false, ErrNoMoreCards
		}
		t.hand.Append(c)
		t.done = true
		return c, true, nil
	}
	t.done = true
	return Joker, false, nil
}

// takeCombined removes the card at index n of the hand and borrowed cards
// numbered as one list, hand first.
func (t *Turn) takeCombined(n int) (Card, bool) {
	if n <= t.hand.Len() {
		return t.hand.Take(n)
	}
	return t.borrowed.Take(n - t.hand.Len())
}

// collectCards moves the cards at the given 1-based combined indices into
// dst, in the order given. Indices refer to the numbering the player was
// shown, so each is shifted down by the indices already taken below it.
// Out-of-range indices are skipped.
func (t *Turn) collectCards(indices []int, dst *Sequence) {
	var taken []int
	for _, n := range indices {
		shift := 0
		for _, prev := range taken {
			if prev < n {
				shift++
			}
		}
		c, ok := t.takeCombined(n - shift)
		if !ok {
			continue
		}
		dst.Append(c)
		taken = append(taken, n)
	}
}

// PlayMeld lays the cards at the given indices on the table as a new meld.
// On an invalid meld every card goes back where it came from. The turn
// completes when the hand and the borrowed cards are both empty.
func (t *Turn) PlayMeld(indices []int) error {
	if t.done {
		return ErrTurnOver
	}
	handBefore := t.hand.Clone()
	borrowedBefore := t.borrowed.Clone()

	meld := NewSequence()
	t.collectCards(indices, meld)
	if !meld.Validate() {
		t.hand.resetTo(handBefore)
		t.borrowed.resetTo(borrowedBefore)
		return fmt.Errorf("%s: %w", meld, ErrInvalidMeld)
	}
	t.table.Add(meld)
	if t.hand.Len() == 0 && t.borrowed.Len() == 0 {
		t.done = true
	}
	return nil
}

// TakeMelds borrows the melds at the given 1-based table positions,
// left to right. Each position is shifted down by the positions already
// taken below it, so the numbers the player saw stay valid. One error is
// returned per position that has no meld; the rest are taken regardless.
func (t *Turn) TakeMelds(positions []int) []error {
	if t.done {
		return []error{ErrTurnOver}
	}
	var errs []error
	var taken []int
	for _, pos := range positions {
		shift := 0
		for _, prev := range taken {
			if prev < pos {
				shift++
			}
		}
		seq, ok := t.table.Take(pos - shift)
		if !ok {
			errs = append(errs, fmt.Errorf("position %d: %w", pos, ErrNoSuchMeld))
			continue
		}
		t.borrowed.Merge(seq)
		taken = append(taken, pos)
	}
	return errs
}

// AddToMeld extends the meld at table position pos with the cards at the
// given indices and revalidates it. On success the grown meld keeps its
// position; on failure the meld and the moved cards are restored exactly.
func (t *Turn) AddToMeld(pos int, indices []int) error {
	if t.done {
		return ErrTurnOver
	}
	meld, ok := t.table.Take(pos)
	if !ok {
		return fmt.Errorf("position %d: %w", pos, ErrNoSuchMeld)
	}
	handBefore := t.hand.Clone()
	borrowedBefore := t.borrowed.Clone()
	meldBefore := meld.Clone()

	t.collectCards(indices, meld)
	if !meld.Validate() {
		t.hand.resetTo(handBefore)
		t.borrowed.resetTo(borrowedBefore)
		t.table.InsertAt(pos, meldBefore)
		return fmt.Errorf("%s: %w", meld, ErrInvalidMeld)
	}
	t.table.InsertAt(pos, meld)
	return nil
}

// SortByRank sorts the hand and the borrowed cards by rank.
func (t *Turn) SortByRank() {
	t.hand.SortByRank()
	t.borrowed.SortByRank()
}

// SortBySuit sorts the hand and the borrowed cards by suit.
func (t *Turn) SortBySuit() {
	t.hand.SortBySuit()
	t.borrowed.SortBySuit()
}

// GiveUp abandons a table rearrangement: the hand and table are restored
// to their state at the start of the turn, the borrowed cards are
// discarded with them, and the player draws up to PenaltyDraw cards. Only
// allowed while borrowed cards are held. The turn ends. Returns the number
// of penalty cards actually drawn, which falls short if the deck empties.
func (t *Turn) GiveUp() (int, error) {
	if t.done {
		return 0, ErrTurnOver
	}
	if t.borrowed.Len() == 0 {
		return 0, ErrNothingBorrowed
	}
	t.hand.resetTo(t.hand0.Clone())
	t.table.resetTo(t.table0.Clone())
	t.borrowed = NewSequence()

	drawn := 0
	for i := 0; i < PenaltyDraw; i++ {
		c, ok := t.deck.Draw()
		if !ok {
			break
		}
		t.hand.Append(c)
		drawn++
	}
	t.done = true
	return drawn, nil
}
