package app

import (
	"example/analysis-board/app/models"

	"github.com/rs/zerolog"
)

// Analysis reduces engine events into the candidate lines and arrows for the
// position on the board. It is the only writer of its line store.
type Analysis struct {
	log     zerolog.Logger
	rules   Rules
	lines   *CandidateLines
	arrows  []models.Arrow
	side    models.Side
	ready   bool
	onReady func()
}

// NewAnalysis builds the reducer. onReady runs once the engine answers "uciok".
func NewAnalysis(log zerolog.Logger, rules Rules, multiPV int, onReady func()) *Analysis {
	return &Analysis{
		log:     log,
		rules:   rules,
		lines:   NewCandidateLines(multiPV),
		side:    models.White,
		onReady: onReady,
	}
}

// Handle applies one engine event. It never fails; output we can't use is dropped.
func (a *Analysis) Handle(ev Event) {
	switch ev := ev.(type) {
	case ReadyEvent:
		a.ready = true
		if a.onReady != nil {
			a.onReady()
		}
	case InfoEvent:
		a.handleInfo(ev)
	}
}

func (a *Analysis) handleInfo(ev InfoEvent) {
	if ev.NewPass() {
		a.side = a.rules.SideToMove()
		a.lines.Reset()
		a.arrows = nil
	}

	mate := ev.ScoreKind == "mate"
	score := float64(ev.ScoreValue)
	if !mate {
		score /= 100
	}
	if a.side == models.Black {
		score = -score
	}

	rank := ev.MultiPV - 1
	stored := a.lines.Set(rank, models.CandidateLine{
		Moves:     resolveMoves(a.rules, ev.PV),
		Mate:      mate,
		Score:     score,
		ScoreText: ScoreText(mate, score),
	})
	if !stored {
		a.log.Debug().Int("multipv", ev.MultiPV).Int("capacity", a.lines.Cap()).Msg("dropping line outside multipv range")
		return
	}

	a.arrows = ProjectArrows(a.lines.Lines())
}

// resolveMoves replays codes on a copy of the live position to get full moves. If
// any code doesn't replay (the engine may still be talking about an old position)
// every move falls back to squares read straight from its code.
func resolveMoves(rules Rules, codes []string) []models.Move {
	scratch := rules.Clone()
	moves := make([]models.Move, 0, len(codes))
	for _, code := range codes {
		m, err := scratch.ApplyCode(code)
		if err != nil {
			return degradedMoves(codes)
		}
		moves = append(moves, m)
	}
	return moves
}

func degradedMoves(codes []string) []models.Move {
	moves := make([]models.Move, 0, len(codes))
	for _, code := range codes {
		m := models.Move{Code: code}
		if len(code) >= 4 {
			m.From, m.To = code[0:2], code[2:4]
		}
		moves = append(moves, m)
	}
	return moves
}

func (a *Analysis) Lines() []models.CandidateLine { return a.lines.Lines() }

func (a *Analysis) Arrows() []models.Arrow {
	out := make([]models.Arrow, len(a.arrows))
	copy(out, a.arrows)
	return out
}

// Eval is the score of the rank 0 line, or nil when there is none yet.
func (a *Analysis) Eval() *models.Eval {
	best, ok := a.lines.Get(0)
	if !ok {
		return nil
	}
	return &models.Eval{Mate: best.Mate, Score: best.Score, Text: best.ScoreText}
}

// Ready reports whether the engine has completed its handshake.
func (a *Analysis) Ready() bool { return a.ready }
