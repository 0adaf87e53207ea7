package engine

import (
	"fmt"
	"sort"
	"strings"
)

// Sequence is an ordered list of cards addressed by 1-based index. It backs
// every card container in the game: hands, the deck, melds on the table and
// the buffer of cards borrowed from the table during a turn.
type Sequence struct {
	cards []Card
}

// NewSequence returns an empty sequence.
func NewSequence() *Sequence {
	return &Sequence{}
}

// SequenceOf builds a sequence from cards in order.
func SequenceOf(cards ...Card) *Sequence {
	s := &Sequence{cards: make([]Card, len(cards))}
	copy(s.cards, cards)
	return s
}

// Len returns the number of cards.
func (s *Sequence) Len() int { return len(s.cards) }

// At returns the card at 1-based index i. ok is false when i is out of
// range.
func (s *Sequence) At(i int) (Card, bool) {
	if i < 1 || i > len(s.cards) {
		return Joker, false
	}
	return s.cards[i-1], true
}

// Append adds a card at the end.
func (s *Sequence) Append(c Card) {
	s.cards = append(s.cards, c)
}

// Draw removes and returns the last card. ok is false on an empty sequence.
func (s *Sequence) Draw() (Card, bool) {
	if len(s.cards) == 0 {
		return Joker, false
	}
	c := s.cards[len(s.cards)-1]
	s.cards = s.cards[:len(s.cards)-1]
	return c, true
}

// Take removes and returns the card at 1-based index i, shifting the cards
// after it. ok is false when i is out of range.
func (s *Sequence) Take(i int) (Card, bool) {
	if i < 1 || i > len(s.cards) {
		return Joker, false
	}
	c := s.cards[i-1]
	s.cards = append(s.cards[:i-1], s.cards[i:]...)
	return c, true
}

// Merge drains other into s. Cards are drawn from other's end one by one,
// so they arrive reversed and a sequence merged back into a hand keeps the
// order it was displayed in.
func (s *Sequence) Merge(other *Sequence) {
	for {
		c, ok := other.Draw()
		if !ok {
			return
		}
		s.Append(c)
	}
}

// Clone returns a deep copy.
func (s *Sequence) Clone() *Sequence {
	return SequenceOf(s.cards...)
}

// resetTo replaces s's cards with those of the snapshot. The snapshot must
// not be used again afterwards.
func (s *Sequence) resetTo(snapshot *Sequence) {
	s.cards = snapshot.cards
}

func (s *Sequence) counts() map[Card]int {
	m := make(map[Card]int, len(s.cards))
	for _, c := range s.cards {
		m[c]++
	}
	return m
}

// Contains reports whether s holds at least the cards of other, counted
// with multiplicity. Order is ignored.
func (s *Sequence) Contains(other *Sequence) bool {
	have := s.counts()
	for _, c := range other.cards {
		if have[c] == 0 {
			return false
		}
		have[c]--
	}
	return true
}

// Matches reports whether s and other hold exactly the same cards, counted
// with multiplicity. Order is ignored, so a sorted hand still matches its
// unsorted snapshot.
func (s *Sequence) Matches(other *Sequence) bool {
	return len(s.cards) == len(other.cards) && s.Contains(other)
}

// ContainsJoker reports whether any card is the wildcard.
func (s *Sequence) ContainsJoker() bool {
	for _, c := range s.cards {
		if c.IsJoker() {
			return true
		}
	}
	return false
}

// SortByRank stably sorts jokers first, then by rank, then by suit.
func (s *Sequence) SortByRank() {
	sort.SliceStable(s.cards, func(i, j int) bool {
		a, b := s.cards[i], s.cards[j]
		if a.Rank() != b.Rank() {
			return a.Rank() < b.Rank()
		}
		return a.Suit() < b.Suit()
	})
}

// SortBySuit stably sorts jokers first, then by suit, then by rank. The
// card encoding already orders (suit, rank), so this is a sort on the raw
// byte.
func (s *Sequence) SortBySuit() {
	sort.SliceStable(s.cards, func(i, j int) bool {
		return s.cards[i] < s.cards[j]
	})
}

// Bytes returns the cards as their byte codes, in order.
func (s *Sequence) Bytes() []byte {
	b := make([]byte, len(s.cards))
	for i, c := range s.cards {
		b[i] = byte(c)
	}
	return b
}

// SequenceFromBytes rebuilds a sequence from card codes, rejecting any byte
// that is not a legal code.
func SequenceFromBytes(b []byte) (*Sequence, error) {
	s := &Sequence{cards: make([]Card, len(b))}
	for i, v := range b {
		c := Card(v)
		if !c.Valid() {
			return nil, fmt.Errorf("byte %d: invalid card code %d", i, v)
		}
		s.cards[i] = c
	}
	return s, nil
}

// String renders the cards separated by spaces.
func (s *Sequence) String() string {
	parts := make([]string, len(s.cards))
	for i, c := range s.cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// Enumerate renders the cards with their 1-based indices, starting at
// offset+1, for prompts that ask the player to pick cards by number.
func (s *Sequence) Enumerate(offset int) string {
	parts := make([]string, len(s.cards))
	for i, c := range s.cards {
		parts[i] = fmt.Sprintf("%d:%s", offset+i+1, c)
	}
	return strings.Join(parts, "  ")
}
