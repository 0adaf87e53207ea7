package engine

import (
	"reflect"
	"testing"
)

func TestConfigBytes(t *testing.T) {
	cfg := Config{Decks: 2, Jokers: 4, CardsToStart: 13, JokerRule: false, Players: 2}
	want := []byte{2, 4, 0, 13, 0, 2}
	if got := cfg.Bytes(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Bytes() = %v, want %v", got, want)
	}

	cfg = Config{Decks: 3, Jokers: 2, CardsToStart: 300, JokerRule: true, Players: 5}
	got, err := ConfigFromBytes(cfg.Bytes())
	if err != nil {
		t.Fatalf("ConfigFromBytes: %v", err)
	}
	if got != cfg {
		t.Fatalf("round trip = %+v, want %+v", got, cfg)
	}
}

func TestConfigFromBytesRejects(t *testing.T) {
	if _, err := ConfigFromBytes([]byte{2, 4, 0, 13, 0}); err == nil {
		t.Error("short input accepted")
	}
	if _, err := ConfigFromBytes([]byte{2, 4, 0, 13, 2, 2}); err == nil {
		t.Error("rule flag 2 accepted")
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	cases := []struct {
		name string
		mut  func(*Config)
	}{
		{"no decks", func(c *Config) { c.Decks = 0 }},
		{"no players", func(c *Config) { c.Players = 0 }},
		{"empty hand", func(c *Config) { c.CardsToStart = 0 }},
		{"not enough cards", func(c *Config) { c.Decks = 1; c.Players = 5; c.CardsToStart = 13 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mut(&cfg)
			if cfg.Validate() == nil {
				t.Error("invalid config accepted")
			}
		})
	}
}

func TestTotalCards(t *testing.T) {
	cfg := Config{Decks: 3, Jokers: 2}
	if got := cfg.TotalCards(); got != 162 {
		t.Errorf("TotalCards() = %d, want 162", got)
	}
}
