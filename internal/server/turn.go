package server

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/FlorentCLMichel/Machiavelli/engine"
	"github.com/FlorentCLMichel/Machiavelli/internal/protocol"
)

const actionMenu = `Your move:
  e            end the turn
  p i j ...    play cards i, j, ... as a new sequence
  t m n ...    take sequences m, n, ... from the table
  a m i j ...  add cards i, j, ... to sequence m
  r            sort your cards by rank
  s            sort your cards by suit
  g            give up rearranging and take the penalty`

// playTurn runs one full turn of the current player, including disconnect
// recovery, and persists the session once the turn ends.
func (s *Server) playTurn() error {
	cur := s.session.Current
	name := s.session.Names[cur]
	s.log.WithField("player", name).Info("turn starts")

	turn := s.session.BeginTurn()
	s.showOthers(cur, fmt.Sprintf("%s is playing...", name))

	for !turn.Done() {
		if s.relays[cur] == nil {
			if err := s.recoverPlayer(cur); err != nil {
				return err
			}
		}
		if err := s.relays[cur].ClearPrint(s.situation(cur, turn)); err != nil {
			s.dropRelay(cur, err)
			continue
		}
		reply, err := s.relays[cur].Ask(actionMenu)
		if err != nil {
			s.dropRelay(cur, err)
			continue
		}
		if msg := applyAction(turn, reply); msg != "" {
			if err := s.relays[cur].Print(msg); err != nil {
				s.dropRelay(cur, err)
			}
		}
		if len(reply) > 0 && redrawsOthers(reply[0]) {
			s.showOthers(cur, fmt.Sprintf("%s is playing...", name))
		}
	}

	s.persist()
	return nil
}

// redrawsOthers reports whether an action can change what the other
// players see. Their screens are refreshed after each such action, which
// also shows them the final table when the play empties a hand.
func redrawsOthers(action byte) bool {
	switch action {
	case protocol.ActionPlay, protocol.ActionTake, protocol.ActionAdd, protocol.ActionGiveUp:
		return true
	}
	return false
}

// applyAction parses one framed action and applies it to the turn,
// returning the message to print for the player ("" for silence).
func applyAction(turn *engine.Turn, payload []byte) string {
	if len(payload) == 0 {
		return "Invalid input. Try again."
	}
	args := parseIndices(payload[1:])

	switch payload[0] {
	case protocol.ActionEndTurn:
		drawn, drew, err := turn.EndTurn()
		switch {
		case errors.Is(err, engine.ErrNoMoreCards):
			return "No more cards to draw!"
		case err != nil:
			return rejection(err)
		case drew:
			return fmt.Sprintf("You have picked a %s", drawn)
		default:
			return ""
		}

	case protocol.ActionPlay:
		if err := turn.PlayMeld(args); err != nil {
			return rejection(err)
		}
		return ""

	case protocol.ActionTake:
		if len(args) == 0 {
			return "Give at least one sequence number."
		}
		errs := turn.TakeMelds(args)
		msgs := make([]string, len(errs))
		for i, err := range errs {
			msgs[i] = rejection(err)
		}
		return strings.Join(msgs, "\n")

	case protocol.ActionAdd:
		if len(args) < 2 {
			return "Give a sequence number and at least one card."
		}
		if err := turn.AddToMeld(args[0], args[1:]); err != nil {
			return rejection(err)
		}
		return ""

	case protocol.ActionSortRank:
		turn.SortByRank()
		return ""

	case protocol.ActionSortSuit:
		turn.SortBySuit()
		return ""

	case protocol.ActionGiveUp:
		drawn, err := turn.GiveUp()
		if err != nil {
			return rejection(err)
		}
		return fmt.Sprintf("You took your cards back and drew %d penalty cards.", drawn)

	default:
		return "Invalid input. Try again."
	}
}

// rejection turns an engine error into the message shown to the player.
func rejection(err error) string {
	switch {
	case errors.Is(err, engine.ErrBorrowedNotReplayed):
		return "Play the cards you took from the table before ending your turn!"
	case errors.Is(err, engine.ErrJokersMustBePlayed):
		return "You must play your jokers before ending your turn!"
	case errors.Is(err, engine.ErrInvalidMeld):
		return "Not a valid sequence: " + strings.TrimSuffix(err.Error(), ": "+engine.ErrInvalidMeld.Error())
	case errors.Is(err, engine.ErrNoSuchMeld):
		return "There is no sequence with that number on the table."
	case errors.Is(err, engine.ErrNothingBorrowed):
		return "You can only give up after taking cards from the table."
	default:
		return err.Error()
	}
}

// parseIndices extracts positive 1-based indices from a space-separated
// argument list. Anything unparsable is skipped.
func parseIndices(b []byte) []int {
	var out []int
	for _, field := range strings.Fields(string(b)) {
		n, err := strconv.Atoi(field)
		if err != nil || n < 1 {
			continue
		}
		out = append(out, n)
	}
	return out
}

// situation renders the game as seen by the player in the given slot.
func (s *Server) situation(slot int, turn *engine.Turn) string {
	var sb strings.Builder
	sb.WriteString("Number of cards:\n")
	for p, name := range s.session.Names {
		fmt.Fprintf(&sb, "  %s: %d\n", name, s.session.Hands[p].Len())
	}
	if s.session.Table.Len() > 0 {
		sb.WriteString("\nTable:\n")
		sb.WriteString(s.session.Table.String())
	} else {
		sb.WriteString("\nThe table is empty.\n")
	}
	hand := s.session.Hands[slot]
	sb.WriteString("\nYour hand:\n  ")
	sb.WriteString(hand.Enumerate(0))
	if turn != nil && turn.Borrowed().Len() > 0 {
		sb.WriteString("\nTaken from the table:\n  ")
		sb.WriteString(turn.Borrowed().Enumerate(hand.Len()))
	}
	fmt.Fprintf(&sb, "\n\nCards left in the deck: %d", s.session.Deck.Len())
	return sb.String()
}

// showOthers clears every other player's screen with their view of the
// game plus a status line.
func (s *Server) showOthers(cur int, status string) {
	for slot, r := range s.relays {
		if slot == cur || r == nil {
			continue
		}
		if err := r.ClearPrint(s.situation(slot, nil) + "\n\n" + status); err != nil {
			s.dropRelay(slot, err)
		}
	}
}
