package app

import (
	"errors"
	"fmt"

	"example/analysis-board/app/models"

	"github.com/notnil/chess"
)

// ErrIllegalMove is returned when a move cannot be played in the current position.
var ErrIllegalMove = errors.New("illegal move")

// Rules is the move-legality collaborator the timeline and analysis drive.
type Rules interface {
	// LoadPGN replaces the game with the moves in pgn. It is best-effort: on a bad
	// token it stops, keeps what parsed and returns the error.
	LoadPGN(pgn string) error
	Reset()
	ApplyMove(from, to, promo string) (models.Move, error)
	ApplyCode(code string) (models.Move, error)
	UndoMove() bool
	History() []models.Move
	FEN() string
	SideToMove() models.Side
	// Clone returns an independent copy for speculative play.
	Clone() Rules
}

var promoPieces = map[string]chess.PieceType{
	"q": chess.Queen,
	"r": chess.Rook,
	"b": chess.Bishop,
	"n": chess.Knight,
}

var promoLetters = map[chess.PieceType]string{
	chess.Queen:  "q",
	chess.Rook:   "r",
	chess.Bishop: "b",
	chess.Knight: "n",
}

// ChessRules keeps a stack of notnil/chess positions; undo pops the stack.
type ChessRules struct {
	positions []*chess.Position
	moves     []models.Move
}

func NewChessRules() *ChessRules {
	r := &ChessRules{}
	r.Reset()
	return r
}

func (r *ChessRules) Reset() {
	r.positions = []*chess.Position{chess.NewGame().Position()}
	r.moves = nil
}

func (r *ChessRules) current() *chess.Position {
	return r.positions[len(r.positions)-1]
}

func (r *ChessRules) LoadPGN(pgn string) error {
	r.Reset()
	for i, tok := range moveTokens(pgn) {
		m, err := chess.AlgebraicNotation{}.Decode(r.current(), tok)
		if err == nil {
			r.push(m)
			continue
		}
		if IsMoveCode(tok) {
			if _, err := r.ApplyCode(tok); err == nil {
				continue
			}
		}
		return fmt.Errorf("pgn token %d %q: %w", i+1, tok, ErrIllegalMove)
	}
	return nil
}

func (r *ChessRules) ApplyMove(from, to, promo string) (models.Move, error) {
	want := chess.NoPieceType
	if promo != "" {
		p, ok := promoPieces[promo]
		if !ok {
			return models.Move{}, fmt.Errorf("%s%s%s: %w", from, to, promo, ErrIllegalMove)
		}
		want = p
	}

	for _, m := range r.current().ValidMoves() {
		if m.S1().String() != from || m.S2().String() != to {
			continue
		}
		if m.Promo() == chess.NoPieceType && want != chess.NoPieceType {
			break
		}
		if m.Promo() != chess.NoPieceType {
			// drag-and-drop promotions default to a queen
			if want == chess.NoPieceType && m.Promo() != chess.Queen {
				continue
			}
			if want != chess.NoPieceType && m.Promo() != want {
				continue
			}
		}
		return r.push(m), nil
	}
	return models.Move{}, fmt.Errorf("%s%s%s: %w", from, to, promo, ErrIllegalMove)
}

func (r *ChessRules) ApplyCode(code string) (models.Move, error) {
	if !IsMoveCode(code) {
		return models.Move{}, fmt.Errorf("%q: %w", code, ErrIllegalMove)
	}
	return r.ApplyMove(code[0:2], code[2:4], code[4:])
}

func (r *ChessRules) push(m *chess.Move) models.Move {
	pos := r.current()
	mv := models.Move{
		From: m.S1().String(),
		To:   m.S2().String(),
		Code: m.S1().String() + m.S2().String() + promoLetters[m.Promo()],
		SAN:  chess.AlgebraicNotation{}.Encode(pos, m),
	}
	r.positions = append(r.positions, pos.Update(m))
	r.moves = append(r.moves, mv)
	return mv
}

func (r *ChessRules) UndoMove() bool {
	if len(r.moves) == 0 {
		return false
	}
	r.positions = r.positions[:len(r.positions)-1]
	r.moves = r.moves[:len(r.moves)-1]
	return true
}

func (r *ChessRules) History() []models.Move {
	out := make([]models.Move, len(r.moves))
	copy(out, r.moves)
	return out
}

func (r *ChessRules) FEN() string {
	return r.current().String()
}

func (r *ChessRules) SideToMove() models.Side {
	if r.current().Turn() == chess.Black {
		return models.Black
	}
	return models.White
}

// positions are never mutated after Update, so sharing them is safe
func (r *ChessRules) Clone() Rules {
	c := &ChessRules{
		positions: make([]*chess.Position, len(r.positions)),
		moves:     make([]models.Move, len(r.moves)),
	}
	copy(c.positions, r.positions)
	copy(c.moves, r.moves)
	return c
}
