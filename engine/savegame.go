package engine

import (
	"encoding/binary"
	"fmt"
)

// Save-file layout, after XOR de-obfuscation:
//
//	[config: 6 bytes]
//	[starting player][current player]
//	per player: [hand length: u16 big-endian][card codes]
//	per player: [name length: 1 byte][name bytes]
//	[deck length: u16 big-endian][card codes]
//	per table meld: [card codes][255]
//
// The sentinel byte 255 never collides with a card code.

// Bytes encodes the session for a save file.
func (s *Session) Bytes() ([]byte, error) {
	for _, name := range s.Names {
		if len(name) > 255 {
			return nil, fmt.Errorf("player name %q longer than 255 bytes", name)
		}
	}

	b := s.Config.Bytes()
	b = append(b, byte(s.Starting), byte(s.Current))
	for _, hand := range s.Hands {
		b = binary.BigEndian.AppendUint16(b, uint16(hand.Len()))
		b = append(b, hand.Bytes()...)
	}
	for _, name := range s.Names {
		b = append(b, byte(len(name)))
		b = append(b, name...)
	}
	b = binary.BigEndian.AppendUint16(b, uint16(s.Deck.Len()))
	b = append(b, s.Deck.Bytes()...)
	b = append(b, s.Table.Bytes()...)
	return b, nil
}

// saveReader cursors over a save buffer with bounds checking.
type saveReader struct {
	b   []byte
	pos int
}

func (r *saveReader) take(n int) ([]byte, error) {
	if r.pos+n > len(r.b) {
		return nil, fmt.Errorf("truncated at byte %d (want %d more)", r.pos, n)
	}
	chunk := r.b[r.pos : r.pos+n]
	r.pos += n
	return chunk, nil
}

func (r *saveReader) readByte() (byte, error) {
	chunk, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return chunk[0], nil
}

func (r *saveReader) readUint16() (uint16, error) {
	chunk, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(chunk), nil
}

func (r *saveReader) readSequence() (*Sequence, error) {
	n, err := r.readUint16()
	if err != nil {
		return nil, err
	}
	codes, err := r.take(int(n))
	if err != nil {
		return nil, err
	}
	return SequenceFromBytes(codes)
}

// SessionFromBytes rebuilds a session from a save file. Corrupt input
// yields an error, never a panic. The RNG is reseeded by the caller via
// the seed of the next NewSession, so only the dealt state is restored.
func SessionFromBytes(b []byte, seed uint64) (*Session, error) {
	r := &saveReader{b: b}

	head, err := r.take(configEncodedLen)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg, err := ConfigFromBytes(head)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	starting, err := r.readByte()
	if err != nil {
		return nil, fmt.Errorf("starting player: %w", err)
	}
	current, err := r.readByte()
	if err != nil {
		return nil, fmt.Errorf("current player: %w", err)
	}
	if starting >= cfg.Players || current >= cfg.Players {
		return nil, fmt.Errorf("player index out of range (%d players)", cfg.Players)
	}

	s := &Session{
		Config:   cfg,
		Names:    make([]string, cfg.Players),
		Hands:    make([]*Sequence, cfg.Players),
		Starting: int(starting),
		Current:  int(current),
		rng:      seed,
	}
	if s.rng == 0 {
		s.rng = 0x9E3779B97F4A7C15
	}

	for p := range s.Hands {
		hand, err := r.readSequence()
		if err != nil {
			return nil, fmt.Errorf("player %d hand: %w", p+1, err)
		}
		s.Hands[p] = hand
	}
	for p := range s.Names {
		n, err := r.readByte()
		if err != nil {
			return nil, fmt.Errorf("player %d name: %w", p+1, err)
		}
		name, err := r.take(int(n))
		if err != nil {
			return nil, fmt.Errorf("player %d name: %w", p+1, err)
		}
		s.Names[p] = string(name)
	}
	if s.Deck, err = r.readSequence(); err != nil {
		return nil, fmt.Errorf("deck: %w", err)
	}
	if s.Table, err = TableFromBytes(r.b[r.pos:]); err != nil {
		return nil, fmt.Errorf("table: %w", err)
	}
	return s, nil
}

// XOR obfuscates data in place against a keystream built from the key,
// and returns data. Applying it twice with the same key restores the
// original. An empty key leaves the data unchanged.
func XOR(data, key []byte) []byte {
	if len(key) == 0 {
		return data
	}
	for i := range data {
		data[i] ^= key[i%len(key)]
	}
	return data
}
