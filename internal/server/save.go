package server

import (
	"fmt"
	"os"

	"github.com/FlorentCLMichel/Machiavelli/engine"
)

// persist writes the session to the save file after each completed turn.
// The body is XOR-obfuscated against the file name, so the file must be
// loaded under the name it was saved with. Failures are logged and play
// continues; the save file is a convenience, not part of the game.
func (s *Server) persist() {
	b, err := s.session.Bytes()
	if err != nil {
		s.log.WithError(err).Warn("cannot encode the session")
		return
	}
	engine.XOR(b, []byte(s.cfg.SaveFile))
	if err := os.WriteFile(s.cfg.SaveFile, b, 0o600); err != nil {
		s.log.WithError(err).Warn("cannot write the save file")
	}
}

// LoadSession reads a save file written by persist. The seed reseeds the
// shuffle RNG for the rounds that follow.
func LoadSession(path string, seed uint64) (*engine.Session, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	engine.XOR(b, []byte(path))
	session, err := engine.SessionFromBytes(b, seed)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return session, nil
}
