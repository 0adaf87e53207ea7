package engine

import "errors"

// Sentinel errors returned by turn actions. The server matches on them with
// errors.Is to pick the message shown to the player.
var (
	// ErrNoMoreCards reports an empty deck on a draw. From EndTurn it is
	// informational: the turn still ends.
	ErrNoMoreCards = errors.New("no more cards in the deck")

	// ErrBorrowedNotReplayed rejects ending a turn while cards taken from
	// the table have not been played back.
	ErrBorrowedNotReplayed = errors.New("cards taken from the table must be played before ending the turn")

	// ErrJokersMustBePlayed rejects ending a turn with a joker in hand
	// under the joker house rule.
	ErrJokersMustBePlayed = errors.New("jokers in hand must be played")

	// ErrInvalidMeld rejects cards that form neither a set nor a run.
	ErrInvalidMeld = errors.New("not a valid sequence")

	// ErrNoSuchMeld rejects a table position with no meld on it.
	ErrNoSuchMeld = errors.New("no such sequence on the table")

	// ErrNothingBorrowed rejects giving up when no cards were taken from
	// the table.
	ErrNothingBorrowed = errors.New("no cards were taken from the table")

	// ErrTurnOver rejects actions on a finished turn.
	ErrTurnOver = errors.New("the turn is over")
)
