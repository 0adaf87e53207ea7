package engine

import (
	"reflect"
	"testing"
)

func TestSequenceDraw(t *testing.T) {
	s := SequenceOf(NewCard(SuitHeart, 1), NewCard(SuitClub, 2))
	c, ok := s.Draw()
	if !ok || c != NewCard(SuitClub, 2) {
		t.Fatalf("Draw() = %v, %v; want club 2", c, ok)
	}
	c, ok = s.Draw()
	if !ok || c != NewCard(SuitHeart, 1) {
		t.Fatalf("Draw() = %v, %v; want heart ace", c, ok)
	}
	if _, ok := s.Draw(); ok {
		t.Fatal("Draw() on empty sequence reported ok")
	}
}

func TestSequenceTake(t *testing.T) {
	s := SequenceOf(NewCard(SuitHeart, 1), NewCard(SuitHeart, 2), NewCard(SuitHeart, 3))
	c, ok := s.Take(2)
	if !ok || c != NewCard(SuitHeart, 2) {
		t.Fatalf("Take(2) = %v, %v; want heart 2", c, ok)
	}
	want := SequenceOf(NewCard(SuitHeart, 1), NewCard(SuitHeart, 3))
	if !reflect.DeepEqual(s.Bytes(), want.Bytes()) {
		t.Fatalf("after Take(2): %s, want %s", s, want)
	}
	if _, ok := s.Take(0); ok {
		t.Error("Take(0) reported ok")
	}
	if _, ok := s.Take(3); ok {
		t.Error("Take(3) on two cards reported ok")
	}
}

func TestSequenceMergeReverses(t *testing.T) {
	dst := SequenceOf(NewCard(SuitHeart, 1))
	src := SequenceOf(NewCard(SuitClub, 1), NewCard(SuitClub, 2), NewCard(SuitClub, 3))
	dst.Merge(src)
	want := SequenceOf(
		NewCard(SuitHeart, 1),
		NewCard(SuitClub, 3), NewCard(SuitClub, 2), NewCard(SuitClub, 1),
	)
	if !reflect.DeepEqual(dst.Bytes(), want.Bytes()) {
		t.Fatalf("merge: %s, want %s", dst, want)
	}
	if src.Len() != 0 {
		t.Fatalf("merge left %d cards in the source", src.Len())
	}
}

func TestSequenceContains(t *testing.T) {
	s := SequenceOf(Joker, NewCard(SuitHeart, 5), NewCard(SuitHeart, 5), NewCard(SuitSpade, 9))
	if !s.Contains(SequenceOf(NewCard(SuitHeart, 5), NewCard(SuitHeart, 5))) {
		t.Error("duplicate cards not found with multiplicity")
	}
	if s.Contains(SequenceOf(NewCard(SuitHeart, 5), NewCard(SuitHeart, 5), NewCard(SuitHeart, 5))) {
		t.Error("three heart 5s found in a sequence holding two")
	}
	if !s.Contains(NewSequence()) {
		t.Error("empty sequence not contained")
	}
}

func TestSequenceMatchesIgnoresOrder(t *testing.T) {
	a := SequenceOf(NewCard(SuitHeart, 5), Joker, NewCard(SuitSpade, 9))
	b := SequenceOf(NewCard(SuitSpade, 9), NewCard(SuitHeart, 5), Joker)
	if !a.Matches(b) {
		t.Error("reordered sequences do not match")
	}
	b.Append(Joker)
	if a.Matches(b) {
		t.Error("sequences of different length match")
	}
}

func TestSequenceSortByRank(t *testing.T) {
	s := SequenceOf(
		NewCard(SuitSpade, 3),
		Joker,
		NewCard(SuitHeart, 3),
		NewCard(SuitClub, 1),
	)
	s.SortByRank()
	want := SequenceOf(
		Joker,
		NewCard(SuitClub, 1),
		NewCard(SuitHeart, 3),
		NewCard(SuitSpade, 3),
	)
	if !reflect.DeepEqual(s.Bytes(), want.Bytes()) {
		t.Fatalf("SortByRank: %s, want %s", s, want)
	}
}

func TestSequenceSortBySuit(t *testing.T) {
	s := SequenceOf(
		NewCard(SuitSpade, 3),
		NewCard(SuitHeart, 9),
		Joker,
		NewCard(SuitHeart, 2),
	)
	s.SortBySuit()
	want := SequenceOf(
		Joker,
		NewCard(SuitHeart, 2),
		NewCard(SuitHeart, 9),
		NewCard(SuitSpade, 3),
	)
	if !reflect.DeepEqual(s.Bytes(), want.Bytes()) {
		t.Fatalf("SortBySuit: %s, want %s", s, want)
	}
}

func TestSequenceBytesRoundTrip(t *testing.T) {
	s := SequenceOf(Joker, NewCard(SuitHeart, 1), NewCard(SuitSpade, 13))
	got, err := SequenceFromBytes(s.Bytes())
	if err != nil {
		t.Fatalf("SequenceFromBytes: %v", err)
	}
	if !reflect.DeepEqual(got.Bytes(), s.Bytes()) {
		t.Fatalf("round trip: %s, want %s", got, s)
	}
}

func TestSequenceFromBytesRejectsBadCode(t *testing.T) {
	if _, err := SequenceFromBytes([]byte{1, 53}); err == nil {
		t.Error("code 53 accepted")
	}
	if _, err := SequenceFromBytes([]byte{255}); err == nil {
		t.Error("sentinel byte accepted as a card")
	}
}

func TestSequenceCloneIsIndependent(t *testing.T) {
	s := SequenceOf(NewCard(SuitHeart, 1))
	c := s.Clone()
	c.Append(Joker)
	if s.Len() != 1 {
		t.Fatal("appending to a clone changed the original")
	}
}

func TestSequenceEnumerate(t *testing.T) {
	s := SequenceOf(NewCard(SuitHeart, 1), Joker)
	if got := s.Enumerate(0); got != "1:♥A  2:★" {
		t.Errorf("Enumerate(0) = %q", got)
	}
	if got := s.Enumerate(3); got != "4:♥A  5:★" {
		t.Errorf("Enumerate(3) = %q", got)
	}
}
