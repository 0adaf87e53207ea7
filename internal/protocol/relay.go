package protocol

import (
	"bytes"
	"fmt"
	"io"
	"net"
)

// Relay wraps one connection and speaks the framed protocol over it. Both
// the server and the client hold one Relay per connection. A Relay is not
// safe for concurrent use; the coordinator goroutine owns it.
type Relay struct {
	conn net.Conn
}

// NewRelay wraps an established connection.
func NewRelay(conn net.Conn) *Relay {
	return &Relay{conn: conn}
}

// Dial connects to a server and wraps the connection.
func Dial(addr string) (*Relay, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	return NewRelay(conn), nil
}

// Close closes the underlying connection.
func (r *Relay) Close() error {
	return r.conn.Close()
}

// RemoteAddr returns the peer address, for logging.
func (r *Relay) RemoteAddr() net.Addr {
	return r.conn.RemoteAddr()
}

func (r *Relay) writeByte(b byte) error {
	_, err := r.conn.Write([]byte{b})
	return err
}

func (r *Relay) readByte() (byte, error) {
	var b [1]byte
	if _, err := io.ReadFull(r.conn, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

// writeFrame writes the count byte and the zero-padded chunks. The ack is
// collected separately so broadcasts can write to every peer first.
func (r *Relay) writeFrame(payload []byte) error {
	chunks := (len(payload) + ChunkSize - 1) / ChunkSize
	if chunks > MaxChunks {
		return ErrPayloadTooLarge
	}
	buf := make([]byte, 1+chunks*ChunkSize)
	buf[0] = byte(chunks)
	copy(buf[1:], payload)
	_, err := r.conn.Write(buf)
	return err
}

// readFrame reads the count byte and the chunks, strips the padding and
// acks the frame.
func (r *Relay) readFrame() ([]byte, error) {
	chunks, err := r.readByte()
	if err != nil {
		return nil, err
	}
	payload := make([]byte, int(chunks)*ChunkSize)
	if _, err := io.ReadFull(r.conn, payload); err != nil {
		return nil, err
	}
	if err := r.writeByte(ackByte); err != nil {
		return nil, err
	}
	return bytes.TrimRight(payload, "\x00"), nil
}

// readAck consumes the peer's ack byte for a written frame.
func (r *Relay) readAck() error {
	_, err := r.readByte()
	return err
}

// Send frames the payload and blocks until the peer acks it.
func (r *Relay) Send(payload []byte) error {
	if err := r.writeFrame(payload); err != nil {
		return err
	}
	return r.readAck()
}

// Recv reads one framed payload and acks it.
func (r *Relay) Recv() ([]byte, error) {
	return r.readFrame()
}

// Print asks the client to print msg.
func (r *Relay) Print(msg string) error {
	if err := r.writeByte(InstrPrint); err != nil {
		return err
	}
	return r.Send([]byte(msg))
}

// ClearPrint asks the client to clear its screen and print msg.
func (r *Relay) ClearPrint(msg string) error {
	if err := r.writeByte(InstrClearPrint); err != nil {
		return err
	}
	return r.Send([]byte(msg))
}

// Ask prints msg on the client and returns its framed reply.
func (r *Relay) Ask(msg string) ([]byte, error) {
	if err := r.writeByte(InstrPrintReply); err != nil {
		return nil, err
	}
	if err := r.Send([]byte(msg)); err != nil {
		return nil, err
	}
	return r.Recv()
}

// Request returns the client's framed reply without printing anything.
func (r *Relay) Request() ([]byte, error) {
	if err := r.writeByte(InstrReply); err != nil {
		return nil, err
	}
	return r.Recv()
}

// SendClose tells the client to close the connection.
func (r *Relay) SendClose() error {
	return r.writeByte(InstrClose)
}

// SendStatus answers a name handshake.
func (r *Relay) SendStatus(accepted bool) error {
	if accepted {
		return r.writeByte(StatusAccepted)
	}
	return r.writeByte(StatusRejected)
}

// Hello performs the client side of the name handshake: it sends the name
// and returns whether it was accepted, along with the server's message.
func (r *Relay) Hello(name string) (bool, string, error) {
	if err := r.Send([]byte(name)); err != nil {
		return false, "", err
	}
	status, err := r.readByte()
	if err != nil {
		return false, "", err
	}
	msg, err := r.Recv()
	if err != nil {
		return false, "", err
	}
	return status == StatusAccepted, string(msg), nil
}

// NextInstruction blocks for the next server instruction. The payload is
// non-nil only for the printing instructions; after InstrPrintReply or
// InstrReply the caller must Send a reply.
func (r *Relay) NextInstruction() (byte, []byte, error) {
	instr, err := r.readByte()
	if err != nil {
		return 0, nil, err
	}
	switch instr {
	case InstrPrint, InstrClearPrint, InstrPrintReply:
		payload, err := r.Recv()
		if err != nil {
			return 0, nil, err
		}
		return instr, payload, nil
	case InstrReply, InstrClose:
		return instr, nil, nil
	default:
		return 0, nil, fmt.Errorf("unknown instruction byte %d", instr)
	}
}

// Broadcast writes msg to every relay before collecting any ack, so one
// slow client cannot stall the others' writes. Nil relays are skipped. The
// returned slice has one entry per relay; a non-nil entry marks a dead
// connection.
func Broadcast(relays []*Relay, instr byte, msg string) []error {
	errs := make([]error, len(relays))
	for i, r := range relays {
		if r == nil {
			continue
		}
		if err := r.writeByte(instr); err != nil {
			errs[i] = err
			continue
		}
		errs[i] = r.writeFrame([]byte(msg))
	}
	for i, r := range relays {
		if r == nil || errs[i] != nil {
			continue
		}
		errs[i] = r.readAck()
	}
	return errs
}
