package app

import (
	"context"
	"errors"
	"fmt"

	"example/analysis-board/app/models"

	"github.com/rs/zerolog"
)

// ErrBoardStopped is returned by board actions once Run has exited.
var ErrBoardStopped = errors.New("board stopped")

// Engine is what the board needs from the analysis process.
type Engine interface {
	Sender
	Lines() <-chan string
}

// Board is one analysis session. Run is its only writer: user actions and engine
// output are applied one at a time, in arrival order, on the Run goroutine.
type Board struct {
	log         zerolog.Logger
	engine      Engine
	rules       Rules
	timeline    *Timeline
	sync        *Synchronizer
	analysis    *Analysis
	orientation models.Side
	fen         string

	actions chan func()
	stopped chan struct{}
}

func NewBoard(log zerolog.Logger, engine Engine, rules Rules, multiPV, depth int) *Board {
	b := &Board{
		log:         log,
		engine:      engine,
		rules:       rules,
		timeline:    NewTimeline(rules),
		sync:        NewSynchronizer(log, engine, depth),
		orientation: models.White,
		fen:         rules.FEN(),
		actions:     make(chan func()),
		stopped:     make(chan struct{}),
	}
	b.analysis = NewAnalysis(log, rules, multiPV, b.synchronize)
	return b
}

// Run processes actions and engine output until ctx ends or the engine goes away.
func (b *Board) Run(ctx context.Context) error {
	defer close(b.stopped)

	lines := b.engine.Lines()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-b.actions:
			fn()
		case line, ok := <-lines:
			if !ok {
				b.log.Error().Msg("engine output closed")
				return ErrEngineClosed
			}
			if ev, ok := ParseLine(line); ok {
				b.analysis.Handle(ev)
			}
		}
	}
}

// do runs fn on the Run goroutine and waits for it.
func (b *Board) do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	select {
	case b.actions <- func() { fn(); close(done) }:
	case <-b.stopped:
		return ErrBoardStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-done:
		return nil
	case <-b.stopped:
		return ErrBoardStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// navigate runs one timeline action and re-synchronizes if the position moved.
func (b *Board) navigate(ctx context.Context, step func() bool) (models.BoardState, error) {
	var st models.BoardState
	err := b.do(ctx, func() {
		if step() {
			b.synchronize()
		}
		st = b.state()
	})
	return st, err
}

func (b *Board) synchronize() {
	b.fen = b.sync.Synchronize(b.timeline)
}

// Load replaces the game with pgn. A PGN that only partly parses is still loaded
// up to the bad move; the parse error is returned alongside the state.
func (b *Board) Load(ctx context.Context, pgn string) (models.BoardState, error) {
	var st models.BoardState
	var loadErr error
	err := b.do(ctx, func() {
		loadErr = b.timeline.LoadMainline(pgn)
		b.sync.NewGame()
		b.synchronize()
		st = b.state()
	})
	if err != nil {
		return st, err
	}
	if loadErr != nil {
		b.log.Info().Err(loadErr).Int("moves", st.Mainline).Msg("pgn partially loaded")
		return st, fmt.Errorf("load pgn: %w", loadErr)
	}
	b.log.Info().Int("moves", st.Mainline).Msg("game loaded")
	return st, nil
}

func (b *Board) Reset(ctx context.Context) (models.BoardState, error) {
	return b.navigate(ctx, func() bool {
		b.timeline.Reset()
		return true
	})
}

func (b *Board) Back(ctx context.Context) (models.BoardState, error) {
	return b.navigate(ctx, b.timeline.StepBackward)
}

func (b *Board) Forward(ctx context.Context) (models.BoardState, error) {
	return b.navigate(ctx, b.timeline.StepForward)
}

func (b *Board) Start(ctx context.Context) (models.BoardState, error) {
	return b.navigate(ctx, b.timeline.JumpToStart)
}

func (b *Board) End(ctx context.Context) (models.BoardState, error) {
	return b.navigate(ctx, b.timeline.JumpToEnd)
}

// Flip turns the board around. The position doesn't change, so neither does the search.
func (b *Board) Flip(ctx context.Context) (models.BoardState, error) {
	return b.navigate(ctx, func() bool {
		b.orientation = b.orientation.Opposite()
		return false
	})
}

// Move plays from-to on the live position. An illegal move reports applied=false
// and leaves everything as it was.
func (b *Board) Move(ctx context.Context, from, to, promo string) (bool, models.BoardState, error) {
	var applied bool
	st, err := b.navigate(ctx, func() bool {
		m, err := b.rules.ApplyMove(from, to, promo)
		if err != nil {
			b.log.Debug().Err(err).Str("from", from).Str("to", to).Msg("move rejected")
			return false
		}
		b.timeline.RecordUserMove(m)
		applied = true
		return true
	})
	return applied, st, err
}

func (b *Board) State(ctx context.Context) (models.BoardState, error) {
	return b.navigate(ctx, func() bool { return false })
}

// state must run on the Run goroutine.
func (b *Board) state() models.BoardState {
	return models.BoardState{
		FEN:         b.fen,
		Orientation: b.orientation,
		SideToMove:  b.rules.SideToMove(),
		EngineReady: b.analysis.Ready(),
		Mainline:    b.timeline.MainlineLen(),
		MainlinePly: b.timeline.MainlineCursor(),
		Branch:      b.timeline.BranchLen(),
		BranchPly:   b.timeline.BranchCursor(),
		Moves:       b.timeline.CurrentMoveSequence(),
		Eval:        b.analysis.Eval(),
		Lines:       b.analysis.Lines(),
		Arrows:      b.analysis.Arrows(),
	}
}
