package engine

import (
	"reflect"
	"testing"
)

func sampleSession() *Session {
	s := NewSession(DefaultConfig(), 99)
	s.Names[0] = "alice"
	s.Names[1] = "bob"
	s.Starting = 1
	s.Current = 0
	s.Table.Add(run(SuitClub, 4, 5, 6))
	s.Table.Add(SequenceOf(NewCard(SuitHeart, 9), Joker, NewCard(SuitHeart, 11)))
	return s
}

func TestSessionBytesRoundTrip(t *testing.T) {
	s := sampleSession()
	b, err := s.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	got, err := SessionFromBytes(b, 1)
	if err != nil {
		t.Fatalf("SessionFromBytes: %v", err)
	}

	if got.Config != s.Config {
		t.Errorf("config = %+v, want %+v", got.Config, s.Config)
	}
	if got.Starting != 1 || got.Current != 0 {
		t.Errorf("starting/current = %d/%d, want 1/0", got.Starting, got.Current)
	}
	if !reflect.DeepEqual(got.Names, s.Names) {
		t.Errorf("names = %v, want %v", got.Names, s.Names)
	}
	for p := range s.Hands {
		if !reflect.DeepEqual(got.Hands[p].Bytes(), s.Hands[p].Bytes()) {
			t.Errorf("player %d hand differs", p+1)
		}
	}
	if !reflect.DeepEqual(got.Deck.Bytes(), s.Deck.Bytes()) {
		t.Error("deck differs")
	}
	if !reflect.DeepEqual(got.Table.Bytes(), s.Table.Bytes()) {
		t.Error("table differs")
	}
}

func TestSessionFromBytesRejectsCorrupt(t *testing.T) {
	s := sampleSession()
	good, err := s.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}

	cases := []struct {
		name string
		mut  func([]byte) []byte
	}{
		{"empty", func(b []byte) []byte { return nil }},
		{"truncated config", func(b []byte) []byte { return b[:4] }},
		{"truncated mid-hand", func(b []byte) []byte { return b[:12] }},
		{"player index out of range", func(b []byte) []byte { b[6] = 9; return b }},
		{"bad card code in hand", func(b []byte) []byte { b[10] = 200; return b }},
		{"missing meld sentinel", func(b []byte) []byte { return b[:len(b)-1] }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := append([]byte(nil), good...)
			if _, err := SessionFromBytes(tc.mut(b), 1); err == nil {
				t.Error("corrupt save accepted")
			}
		})
	}
}

func TestSessionBytesRejectsLongName(t *testing.T) {
	s := sampleSession()
	s.Names[0] = string(make([]byte, 300))
	if _, err := s.Bytes(); err == nil {
		t.Error("300-byte name accepted")
	}
}

func TestXORInvolution(t *testing.T) {
	data := []byte("the save file body")
	orig := append([]byte(nil), data...)
	key := []byte("machiavelli.sav")

	XOR(data, key)
	if reflect.DeepEqual(data, orig) {
		t.Fatal("XOR with a key left the data unchanged")
	}
	XOR(data, key)
	if !reflect.DeepEqual(data, orig) {
		t.Fatal("double XOR did not restore the data")
	}

	XOR(data, nil)
	if !reflect.DeepEqual(data, orig) {
		t.Fatal("empty key changed the data")
	}
}

func TestRestoredSessionPlays(t *testing.T) {
	s := sampleSession()
	b, err := s.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	got, err := SessionFromBytes(b, 5)
	if err != nil {
		t.Fatalf("SessionFromBytes: %v", err)
	}

	turn := got.BeginTurn()
	if _, drew, err := turn.EndTurn(); err != nil || !drew {
		t.Fatalf("EndTurn on restored session: drew=%v err=%v", drew, err)
	}
	got.Redeal() // exercises the reseeded RNG
	if got.Hands[0].Len() != int(got.Config.CardsToStart) {
		t.Error("redeal after restore dealt a bad hand")
	}
}
