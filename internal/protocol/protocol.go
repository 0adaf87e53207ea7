// Package protocol implements the framed byte protocol spoken between the
// Machiavelli server and its clients.
//
// Every message is framed the same way in both directions: one count byte,
// then that many 50-byte chunks (the payload zero-padded into the last
// chunk), then one ack byte from the receiver. Trailing zero bytes are
// stripped on receipt, so payloads are text and must not end in 0x00.
//
// The server precedes each frame with an instruction byte telling the
// client what to do with it; instructions 4 and 5 carry no frame. Clients
// answer instructions 3 and 4 with a framed reply whose first byte is an
// action code.
package protocol

import "errors"

// Framing limits.
const (
	ChunkSize  = 50
	MaxChunks  = 255
	MaxPayload = ChunkSize * MaxChunks
)

// Server-to-client instruction bytes.
const (
	InstrPrint      byte = 1 // print the payload
	InstrClearPrint byte = 2 // clear the screen, then print the payload
	InstrPrintReply byte = 3 // print the payload, then send a framed reply
	InstrReply      byte = 4 // send a framed reply (no payload)
	InstrClose      byte = 5 // close the connection (no payload)
)

// Client action bytes, the first byte of a turn reply. Arguments follow as
// space-separated 1-based indices.
const (
	ActionEndTurn  byte = 'e'
	ActionPlay     byte = 'p'
	ActionTake     byte = 't'
	ActionAdd      byte = 'a'
	ActionSortRank byte = 'r'
	ActionSortSuit byte = 's'
	ActionGiveUp   byte = 'g'
)

// Name handshake status bytes.
const (
	StatusRejected byte = 0
	StatusAccepted byte = 1
)

const ackByte byte = 0

// ErrPayloadTooLarge reports a payload that does not fit in MaxChunks
// chunks.
var ErrPayloadTooLarge = errors.New("payload exceeds the maximum frame size")
