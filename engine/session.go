package engine

// Session holds everything shared across turns: the table, the hands, the
// deck, the player names and whose turn it is. The network layer owns one
// Session per game and drives it from a single goroutine.
type Session struct {
	Config Config
	Table  *Table
	Hands  []*Sequence
	Deck   *Sequence
	Names  []string

	// Starting is the player who opened the current round; Current is the
	// player whose turn it is. Both are zero-based slots.
	Starting int
	Current  int

	rng uint64
}

// NewSession deals a fresh game from the config. The seed drives the
// shuffle; equal seeds deal equal games.
func NewSession(cfg Config, seed uint64) *Session {
	s := &Session{Config: cfg, Names: make([]string, cfg.Players), rng: seed}
	if s.rng == 0 {
		s.rng = 0x9E3779B97F4A7C15
	}
	s.deal()
	return s
}

// nextRand advances the xorshift64 state.
func (s *Session) nextRand() uint64 {
	x := s.rng
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	s.rng = x
	return x
}

// randN returns a pseudo-random number in [0, n).
func (s *Session) randN(n uint64) uint64 {
	return s.nextRand() % n
}

// deal builds the full shuffled deck and deals CardsToStart cards to each
// player, leaving the table empty.
func (s *Session) deal() {
	cards := make([]Card, 0, s.Config.TotalCards())
	for d := uint8(0); d < s.Config.Decks; d++ {
		for suit := SuitHeart; suit <= SuitSpade; suit++ {
			for rank := uint8(1); rank <= MaxRank; rank++ {
				cards = append(cards, NewCard(suit, rank))
			}
		}
		for j := uint8(0); j < s.Config.Jokers; j++ {
			cards = append(cards, Joker)
		}
	}
	// Fisher-Yates.
	for i := len(cards) - 1; i > 0; i-- {
		j := int(s.randN(uint64(i + 1)))
		cards[i], cards[j] = cards[j], cards[i]
	}

	s.Deck = SequenceOf(cards...)
	s.Table = NewTable()
	s.Hands = make([]*Sequence, s.Config.Players)
	for p := range s.Hands {
		hand := NewSequence()
		for i := uint16(0); i < s.Config.CardsToStart; i++ {
			c, ok := s.Deck.Draw()
			if !ok {
				break
			}
			hand.Append(c)
		}
		s.Hands[p] = hand
	}
}

// Redeal starts the next round: the starting player advances round-robin
// and a fresh game is dealt.
func (s *Session) Redeal() {
	s.Starting = (s.Starting + 1) % int(s.Config.Players)
	s.Current = s.Starting
	s.deal()
}

// BeginTurn starts the current player's turn.
func (s *Session) BeginTurn() *Turn {
	return NewTurn(s.Hands[s.Current], s.Deck, s.Table, s.Config.JokerRule)
}

// AdvanceTurn rotates to the next player.
func (s *Session) AdvanceTurn() {
	s.Current = (s.Current + 1) % int(s.Config.Players)
}

// DeckEmpty reports whether the deck has run out, which ends the round in
// a draw before the next turn starts.
func (s *Session) DeckEmpty() bool {
	return s.Deck.Len() == 0
}

// CurrentHandEmpty reports whether the current player has emptied their
// hand, which wins the round.
func (s *Session) CurrentHandEmpty() bool {
	return s.Hands[s.Current].Len() == 0
}
