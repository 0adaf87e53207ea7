package engine

import "testing"

func TestCardCodes(t *testing.T) {
	cases := []struct {
		card Card
		suit uint8
		rank uint8
	}{
		{NewCard(SuitHeart, 1), SuitHeart, 1},
		{NewCard(SuitHeart, 13), SuitHeart, 13},
		{NewCard(SuitClub, 1), SuitClub, 1},
		{NewCard(SuitDiamond, 7), SuitDiamond, 7},
		{NewCard(SuitSpade, 13), SuitSpade, 13},
	}
	for _, tc := range cases {
		if got := tc.card.Suit(); got != tc.suit {
			t.Errorf("card %d: suit = %d, want %d", tc.card, got, tc.suit)
		}
		if got := tc.card.Rank(); got != tc.rank {
			t.Errorf("card %d: rank = %d, want %d", tc.card, got, tc.rank)
		}
	}
}

func TestCardCodesAreDense(t *testing.T) {
	// Every code 1..52 maps to a unique (suit, rank) and back.
	seen := make(map[[2]uint8]bool)
	for code := Card(1); code <= MaxCardCode; code++ {
		key := [2]uint8{code.Suit(), code.Rank()}
		if seen[key] {
			t.Fatalf("duplicate suit/rank for code %d", code)
		}
		seen[key] = true
		if got := NewCard(code.Suit(), code.Rank()); got != code {
			t.Fatalf("NewCard(%d, %d) = %d, want %d", code.Suit(), code.Rank(), got, code)
		}
	}
}

func TestJoker(t *testing.T) {
	if !Joker.IsJoker() {
		t.Error("Joker.IsJoker() = false")
	}
	if Joker.Suit() != 0 || Joker.Rank() != 0 {
		t.Errorf("joker suit/rank = %d/%d, want 0/0", Joker.Suit(), Joker.Rank())
	}
	if NewCard(SuitHeart, 1).IsJoker() {
		t.Error("ace of hearts reported as joker")
	}
}

func TestCardValid(t *testing.T) {
	if !Joker.Valid() || !MaxCardCode.Valid() {
		t.Error("legal codes reported invalid")
	}
	if Card(53).Valid() || Card(255).Valid() {
		t.Error("out-of-range codes reported valid")
	}
}

func TestCardString(t *testing.T) {
	cases := []struct {
		card Card
		want string
	}{
		{Joker, "★"},
		{NewCard(SuitHeart, 1), "♥A"},
		{NewCard(SuitClub, 10), "♣10"},
		{NewCard(SuitDiamond, 11), "♦J"},
		{NewCard(SuitSpade, 13), "♠K"},
	}
	for _, tc := range cases {
		if got := tc.card.String(); got != tc.want {
			t.Errorf("card %d: String() = %q, want %q", tc.card, got, tc.want)
		}
	}
}
