package server

import (
	"fmt"
	"sync"
)

// nameRegistry is the set of names allowed to claim a seat. Handshake
// goroutines race on it, so every method locks.
type nameRegistry struct {
	mu    sync.Mutex
	seats map[string]int
}

func newNameRegistry() *nameRegistry {
	return &nameRegistry{seats: make(map[string]int)}
}

// add registers (or re-opens) a seat for a name.
func (r *nameRegistry) add(name string, slot int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seats[name] = slot
}

// claim takes the seat registered for name. At most one caller wins.
func (r *nameRegistry) claim(name string) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	slot, ok := r.seats[name]
	if ok {
		delete(r.seats, name)
	}
	return slot, ok
}

// claimNew reserves a name nobody holds yet, for fresh games where every
// seat is open. Reservations are never released.
func (r *nameRegistry) claimNew(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.seats[name]; taken {
		return false
	}
	r.seats[name] = len(r.seats)
	return true
}

// recoverPlayer waits for the player in the given slot to reconnect under
// their saved name, notifying the others meanwhile. The turn in progress
// resumes where it stopped.
func (s *Server) recoverPlayer(slot int) error {
	name := s.session.Names[slot]
	s.log.WithField("player", name).Warn("waiting for the player to reconnect")
	s.notifyAll(fmt.Sprintf("%s lost their connection. Waiting for them to come back...", name))

	reg := newNameRegistry()
	reg.add(name, slot)
	if err := s.acceptNamed(reg, 1); err != nil {
		return err
	}
	s.notifyAll(fmt.Sprintf("%s is back!", name))
	return nil
}
