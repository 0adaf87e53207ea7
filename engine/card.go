// Package engine implements the Machiavelli rules: cards, sequences, meld
// validation, the shared table, the per-turn state machine and the session
// bookkeeping (dealing, rotation, save games).
//
// The package is deliberately dependency-free so the rules can be embedded
// and tested without the network layer.
package engine

import "fmt"

// Suit codes. The numeric order is part of the save-file format.
const (
	SuitHeart uint8 = iota + 1
	SuitClub
	SuitDiamond
	SuitSpade
)

// MaxRank is the highest rank in a suit (King). Rank 1 is the Ace.
const MaxRank uint8 = 13

// Card is one card packed into a byte: 0 is the Joker, any other value is
// (suit-1)*13 + rank with Heart=1, Club=2, Diamond=3, Spade=4 and ranks 1
// (Ace) through 13 (King). The byte value doubles as the wire and save-file
// encoding, and always stays below the table sentinel.
type Card uint8

// Joker is the suit-less, rank-less wildcard.
const Joker Card = 0

// MaxCardCode is the highest valid card code (the King of Spades).
const MaxCardCode = Card(4 * 13)

// NewCard builds a regular card. Suit and rank are not range-checked;
// callers hold the invariant.
func NewCard(suit, rank uint8) Card {
	return Card((suit-1)*13 + rank)
}

// IsJoker reports whether the card is the wildcard.
func (c Card) IsJoker() bool { return c == Joker }

// Valid reports whether the byte is a legal card code.
func (c Card) Valid() bool { return c <= MaxCardCode }

// Suit returns the suit code, or 0 for the Joker.
func (c Card) Suit() uint8 {
	if c == Joker {
		return 0
	}
	return uint8((c-1)/13) + 1
}

// Rank returns 1 (Ace) through 13 (King), or 0 for the Joker.
func (c Card) Rank() uint8 {
	if c == Joker {
		return 0
	}
	return uint8((c-1)%13) + 1
}

var suitGlyphs = [...]string{"?", "♥", "♣", "♦", "♠"}

var rankLabels = [...]string{"?", "A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

// String renders the card the way the terminal client shows it: suit glyph
// followed by the rank label, or a star for the Joker.
func (c Card) String() string {
	if c.IsJoker() {
		return "★"
	}
	if !c.Valid() {
		return fmt.Sprintf("card(%d)", uint8(c))
	}
	return suitGlyphs[c.Suit()] + rankLabels[c.Rank()]
}
