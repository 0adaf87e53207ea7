package engine

import (
	"fmt"
	"strings"
)

// meldSentinel terminates each meld in the table byte encoding. Card codes
// top out at MaxCardCode, so the value cannot collide.
const meldSentinel byte = 255

// Table is the ordered list of melds shared by all players. Position 1 is
// the most recently added meld.
type Table struct {
	melds []*Sequence
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{}
}

// Len returns the number of melds.
func (t *Table) Len() int { return len(t.melds) }

// Add puts a meld at the front, position 1.
func (t *Table) Add(seq *Sequence) {
	t.melds = append([]*Sequence{seq}, t.melds...)
}

// Take removes and returns the meld at 1-based position pos, shifting the
// melds after it. ok is false when pos is out of range.
func (t *Table) Take(pos int) (*Sequence, bool) {
	if pos < 1 || pos > len(t.melds) {
		return nil, false
	}
	seq := t.melds[pos-1]
	t.melds = append(t.melds[:pos-1], t.melds[pos:]...)
	return seq, true
}

// InsertAt places a meld so it ends up at 1-based position pos, pushing the
// melds from pos onward back by one. Positions past the end append.
func (t *Table) InsertAt(pos int, seq *Sequence) {
	if pos < 1 {
		pos = 1
	}
	if pos > len(t.melds)+1 {
		pos = len(t.melds) + 1
	}
	t.melds = append(t.melds, nil)
	copy(t.melds[pos:], t.melds[pos-1:])
	t.melds[pos-1] = seq
}

// Meld returns the meld at 1-based position pos without removing it.
func (t *Table) Meld(pos int) (*Sequence, bool) {
	if pos < 1 || pos > len(t.melds) {
		return nil, false
	}
	return t.melds[pos-1], true
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	c := &Table{melds: make([]*Sequence, len(t.melds))}
	for i, seq := range t.melds {
		c.melds[i] = seq.Clone()
	}
	return c
}

// resetTo replaces t's melds with those of the snapshot. The snapshot must
// not be used again afterwards.
func (t *Table) resetTo(snapshot *Table) {
	t.melds = snapshot.melds
}

// Bytes encodes the table as each meld's card codes followed by the
// sentinel byte.
func (t *Table) Bytes() []byte {
	var b []byte
	for _, seq := range t.melds {
		b = append(b, seq.Bytes()...)
		b = append(b, meldSentinel)
	}
	return b
}

// TableFromBytes rebuilds a table from its byte encoding. The input must be
// a whole number of sentinel-terminated melds.
func TableFromBytes(b []byte) (*Table, error) {
	t := NewTable()
	start := 0
	for i, v := range b {
		if v != meldSentinel {
			continue
		}
		seq, err := SequenceFromBytes(b[start:i])
		if err != nil {
			return nil, fmt.Errorf("meld %d: %w", t.Len()+1, err)
		}
		t.melds = append(t.melds, seq)
		start = i + 1
	}
	if start != len(b) {
		return nil, fmt.Errorf("trailing bytes after last meld")
	}
	return t, nil
}

// String renders the table one numbered meld per line.
func (t *Table) String() string {
	var sb strings.Builder
	for i, seq := range t.melds {
		fmt.Fprintf(&sb, "%d: %s\n", i+1, seq)
	}
	return sb.String()
}
