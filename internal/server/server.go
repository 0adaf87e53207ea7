// Package server runs a Machiavelli game session: it accepts the player
// connections, drives the turn loop against the engine, recovers from
// mid-turn disconnects and persists the session to the save file.
package server

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/FlorentCLMichel/Machiavelli/engine"
	"github.com/FlorentCLMichel/Machiavelli/internal/config"
	"github.com/FlorentCLMichel/Machiavelli/internal/protocol"
)

// Server owns one game session. All session state is driven from the
// single goroutine running Serve; handshake goroutines only touch the
// mutex-guarded name registry.
type Server struct {
	cfg config.Config
	log *logrus.Entry

	session *engine.Session
	// relays is indexed by player slot. A nil entry is a player whose
	// connection died; their turn pauses until they reconnect.
	relays []*protocol.Relay

	// incoming carries accepted connections from the accept pump. The
	// listener stays open for the whole session so disconnected players
	// can rejoin on the same port. done is closed when Serve returns, so
	// the pump stops feeding connections nobody will receive.
	incoming chan net.Conn
	done     chan struct{}
	restored bool
}

// New builds a server around a freshly dealt session.
func New(cfg config.Config, log *logrus.Logger) *Server {
	id := uuid.New()
	return &Server{
		cfg:     cfg,
		log:     log.WithField("session", id),
		session: engine.NewSession(cfg.Game(), uint64(time.Now().UnixNano())),
	}
}

// Restore builds a server around the session in the save file. Play
// resumes once every saved player has reconnected under their name.
func Restore(cfg config.Config, log *logrus.Logger) (*Server, error) {
	session, err := LoadSession(cfg.SaveFile, uint64(time.Now().UnixNano()))
	if err != nil {
		return nil, fmt.Errorf("restore %s: %w", cfg.SaveFile, err)
	}
	id := uuid.New()
	return &Server{
		cfg:      cfg,
		log:      log.WithField("session", id),
		session:  session,
		restored: true,
	}, nil
}

// Run listens on the configured port and serves the session to completion.
func (s *Server) Run() error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.cfg.Port))
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	defer ln.Close()
	return s.Serve(ln)
}

// Serve runs the session on an existing listener until the players
// decline a replay after a round ends, or a fatal error.
func (s *Server) Serve(ln net.Listener) error {
	s.relays = make([]*protocol.Relay, s.session.Config.Players)
	s.incoming = make(chan net.Conn)
	s.done = make(chan struct{})
	defer close(s.done)
	go s.acceptPump(ln)

	s.log.WithField("players", s.session.Config.Players).Info("waiting for players")
	if s.restored {
		reg := newNameRegistry()
		for slot, name := range s.session.Names {
			reg.add(name, slot)
		}
		if err := s.acceptNamed(reg, len(s.session.Names)); err != nil {
			return err
		}
	} else if err := s.acceptPlayers(); err != nil {
		return err
	}

	s.log.WithField("names", s.session.Names).Info("all players joined")
	s.notifyAll("Everyone is here. The game begins!")

	for {
		if s.session.DeckEmpty() {
			if !s.replayVote("The deck is empty: nobody wins this round.") {
				return s.shutdown()
			}
			continue
		}
		if err := s.playTurn(); err != nil {
			return err
		}
		if s.session.CurrentHandEmpty() {
			winner := s.session.Names[s.session.Current]
			s.log.WithField("winner", winner).Info("round won")
			if !s.replayVote(fmt.Sprintf("%s has no cards left and wins the round!", winner)) {
				return s.shutdown()
			}
			continue
		}
		s.session.AdvanceTurn()
	}
}

// acceptPump feeds accepted connections to the coordinator until the
// listener closes or the session ends.
func (s *Server) acceptPump(ln net.Listener) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			close(s.incoming)
			return
		}
		select {
		case s.incoming <- conn:
		case <-s.done:
			conn.Close()
			return
		}
	}
}

type playerJoin struct {
	slot  int
	name  string
	relay *protocol.Relay
}

// acceptPlayers fills every slot of a fresh game. Handshakes run in their
// own goroutines so one slow client does not block the others; slots are
// assigned in the order names arrive.
func (s *Server) acceptPlayers() error {
	reg := newNameRegistry()
	// Buffered so handshake goroutines finishing after the last seat is
	// taken never block on the send.
	results := make(chan playerJoin, s.session.Config.Players)

	joined := 0
	for joined < int(s.session.Config.Players) {
		select {
		case conn, ok := <-s.incoming:
			if !ok {
				return fmt.Errorf("listener closed while waiting for players")
			}
			go s.greetNewPlayer(protocol.NewRelay(conn), reg, results)
		case j := <-results:
			s.session.Names[joined] = j.name
			s.relays[joined] = j.relay
			joined++
			s.log.WithFields(logrus.Fields{"player": j.name, "addr": j.relay.RemoteAddr()}).Info("player joined")
		}
	}
	return nil
}

// greetNewPlayer runs the name handshake for a fresh game: any non-empty
// name not already claimed is accepted.
func (s *Server) greetNewPlayer(r *protocol.Relay, reg *nameRegistry, results chan<- playerJoin) {
	for {
		raw, err := r.Recv()
		if err != nil {
			r.Close()
			return
		}
		name := strings.TrimSpace(string(raw))
		switch {
		case name == "":
			err = s.rejectName(r, "A name cannot be empty. Try another one.")
		case !reg.claimNew(name):
			err = s.rejectName(r, fmt.Sprintf("The name %q is already taken. Try another one.", name))
		default:
			if err = r.SendStatus(true); err == nil {
				err = r.Send([]byte(fmt.Sprintf("Welcome to Machiavelli, %s! Waiting for the other players...", name)))
			}
			if err != nil {
				r.Close()
				return
			}
			select {
			case results <- playerJoin{name: name, relay: r}:
			default:
				// Every seat was taken while the handshake ran.
				r.Close()
			}
			return
		}
		if err != nil {
			r.Close()
			return
		}
	}
}

func (s *Server) rejectName(r *protocol.Relay, msg string) error {
	if err := r.SendStatus(false); err != nil {
		return err
	}
	return r.Send([]byte(msg))
}

// acceptNamed fills open slots with clients presenting a registered name,
// used both when restoring a saved session and for mid-turn reconnects.
func (s *Server) acceptNamed(reg *nameRegistry, need int) error {
	results := make(chan playerJoin, need)
	filled := 0
	for filled < need {
		select {
		case conn, ok := <-s.incoming:
			if !ok {
				return fmt.Errorf("listener closed while waiting for %d players", need-filled)
			}
			go s.greetNamedPlayer(protocol.NewRelay(conn), reg, results)
		case j := <-results:
			s.relays[j.slot] = j.relay
			filled++
			s.log.WithFields(logrus.Fields{"player": j.name, "addr": j.relay.RemoteAddr()}).Info("player reconnected")
		}
	}
	return nil
}

// greetNamedPlayer runs the name handshake against the registry of saved
// names. Unknown or already-claimed names are rejected and may retry.
func (s *Server) greetNamedPlayer(r *protocol.Relay, reg *nameRegistry, results chan<- playerJoin) {
	for {
		raw, err := r.Recv()
		if err != nil {
			r.Close()
			return
		}
		name := strings.TrimSpace(string(raw))
		slot, ok := reg.claim(name)
		if !ok {
			if err := s.rejectName(r, fmt.Sprintf("No seat is waiting for %q. Try another name.", name)); err != nil {
				r.Close()
				return
			}
			continue
		}
		err = r.SendStatus(true)
		if err == nil {
			err = r.Send([]byte(fmt.Sprintf("Welcome back, %s!", name)))
		}
		if err != nil {
			// The seat opens up again for the next attempt.
			reg.add(name, slot)
			r.Close()
			return
		}
		select {
		case results <- playerJoin{slot: slot, name: name, relay: r}:
		default:
			reg.add(name, slot)
			r.Close()
		}
		return
	}
}

// replayVote broadcasts the round outcome and asks every player for
// another round. Only a unanimous yes redeals; anything else ends the
// session.
func (s *Server) replayVote(outcome string) bool {
	s.notifyAll(outcome)
	all := true
	for slot, r := range s.relays {
		if r == nil {
			all = false
			continue
		}
		reply, err := r.Ask("Play another round? (y/n)")
		if err != nil {
			s.dropRelay(slot, err)
			all = false
			continue
		}
		if !isYes(string(reply)) {
			all = false
		}
	}
	if !all {
		return false
	}
	s.session.Redeal()
	s.persist()
	s.log.WithField("starting", s.session.Names[s.session.Starting]).Info("new round")
	s.notifyAll(fmt.Sprintf("Starting a new round! %s opens.", s.session.Names[s.session.Starting]))
	return true
}

// isYes matches a replay answer against the accepted yes synonyms.
func isYes(reply string) bool {
	switch strings.ToLower(strings.TrimSpace(reply)) {
	case "y", "yes", "o", "oui", "si", "sí", "ja", "da":
		return true
	}
	return false
}

// notifyAll prints msg on every live connection, dropping the dead ones.
func (s *Server) notifyAll(msg string) {
	for slot, err := range protocol.Broadcast(s.relays, protocol.InstrPrint, msg) {
		if err != nil {
			s.dropRelay(slot, err)
		}
	}
}

// dropRelay closes a dead connection and frees its slot. The player gets
// a chance to reconnect when their turn comes around.
func (s *Server) dropRelay(slot int, err error) {
	if s.relays[slot] == nil {
		return
	}
	s.log.WithFields(logrus.Fields{"player": s.session.Names[slot], "error": err}).Warn("connection lost")
	s.relays[slot].Close()
	s.relays[slot] = nil
}

// shutdown ends the session, telling every client to close.
func (s *Server) shutdown() error {
	s.log.Info("session over")
	for _, r := range s.relays {
		if r == nil {
			continue
		}
		_ = r.SendClose()
		r.Close()
	}
	return nil
}
