package engine

import (
	"encoding/binary"
	"fmt"
)

// Config holds the rule parameters of a game. It round-trips through a
// fixed 6-byte encoding at the head of every save file.
type Config struct {
	Decks        uint8  // number of 52-card decks
	Jokers       uint8  // jokers added per deck
	CardsToStart uint16 // hand size dealt to each player
	JokerRule    bool   // jokers in hand block ending the turn
	Players      uint8
}

// DefaultConfig returns the standard game parameters.
func DefaultConfig() Config {
	return Config{
		Decks:        2,
		Jokers:       2,
		CardsToStart: 13,
		JokerRule:    false,
		Players:      2,
	}
}

// TotalCards returns the size of the shuffled deck before dealing.
func (c Config) TotalCards() int {
	return int(c.Decks) * (52 + int(c.Jokers))
}

// Validate checks that a game can actually be dealt from the parameters.
func (c Config) Validate() error {
	if c.Decks == 0 {
		return fmt.Errorf("at least one deck is required")
	}
	if c.Players == 0 {
		return fmt.Errorf("at least one player is required")
	}
	if c.CardsToStart == 0 {
		return fmt.Errorf("the starting hand cannot be empty")
	}
	if need := int(c.CardsToStart) * int(c.Players); need > c.TotalCards() {
		return fmt.Errorf("cannot deal %d cards to %d players from %d cards",
			c.CardsToStart, c.Players, c.TotalCards())
	}
	return nil
}

// configEncodedLen is the size of the fixed config encoding.
const configEncodedLen = 6

// Bytes encodes the config: decks, jokers, hand size as big-endian u16,
// joker rule flag, players.
func (c Config) Bytes() []byte {
	b := make([]byte, configEncodedLen)
	b[0] = c.Decks
	b[1] = c.Jokers
	binary.BigEndian.PutUint16(b[2:4], c.CardsToStart)
	if c.JokerRule {
		b[4] = 1
	}
	b[5] = c.Players
	return b
}

// ConfigFromBytes decodes a config from its 6-byte encoding.
func ConfigFromBytes(b []byte) (Config, error) {
	if len(b) != configEncodedLen {
		return Config{}, fmt.Errorf("config must be %d bytes, got %d", configEncodedLen, len(b))
	}
	if b[4] > 1 {
		return Config{}, fmt.Errorf("joker rule flag must be 0 or 1, got %d", b[4])
	}
	return Config{
		Decks:        b[0],
		Jokers:       b[1],
		CardsToStart: binary.BigEndian.Uint16(b[2:4]),
		JokerRule:    b[4] == 1,
		Players:      b[5],
	}, nil
}
