package app

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Sender is the outbound half of an engine connection.
type Sender interface {
	Send(cmd string) error
}

// Synchronizer points the engine at whatever position the timeline is on.
type Synchronizer struct {
	log    zerolog.Logger
	engine Sender
	depth  int
}

func NewSynchronizer(log zerolog.Logger, engine Sender, depth int) *Synchronizer {
	return &Synchronizer{log: log, engine: engine, depth: depth}
}

// Synchronize stops the running search and starts a fixed-depth one on the
// timeline's position. It returns the FEN to draw. Each call supersedes the last;
// the stop is not waited on.
func (s *Synchronizer) Synchronize(tl *Timeline) string {
	s.send(
		"stop",
		PositionCommand(tl.CurrentMoveSequence()),
		fmt.Sprintf("go depth %d", s.depth),
	)
	return tl.rules.FEN()
}

// NewGame lets the engine clear its internal state before a freshly loaded game.
func (s *Synchronizer) NewGame() {
	s.send("ucinewgame", "isready")
}

func (s *Synchronizer) send(cmds ...string) {
	for _, cmd := range cmds {
		if err := s.engine.Send(cmd); err != nil {
			s.log.Warn().Err(err).Str("cmd", cmd).Msg("engine send failed")
			return
		}
	}
}

// PositionCommand builds "position startpos [moves ...]".
func PositionCommand(codes []string) string {
	if len(codes) == 0 {
		return "position startpos"
	}
	return "position startpos moves " + strings.Join(codes, " ")
}
