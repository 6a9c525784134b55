package models

// Side is a colour: whose turn it is, or which way the board faces.
type Side string

const (
	White Side = "white"
	Black Side = "black"
)

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == Black {
		return White
	}
	return Black
}

// Move is a single ply as produced by the rules engine.
type Move struct {
	From string `json:"from"`
	To   string `json:"to"`
	Code string `json:"code"` // long algebraic, e.g. "e2e4" or "e7e8q"
	SAN  string `json:"san"`  // empty when the move could not be replayed on the board
}

// CandidateLine is one ranked engine result for the position being analyzed.
type CandidateLine struct {
	Rank      int     `json:"rank"` // 0 = best
	Moves     []Move  `json:"moves"`
	Mate      bool    `json:"mate"`
	Score     float64 `json:"score"` // pawns (or moves to mate), positive favours white
	ScoreText string  `json:"score_text"`
}

// Eval is the best line's score, the value an evaluation bar shows.
type Eval struct {
	Mate  bool    `json:"mate"`
	Score float64 `json:"score"` // same scale and sign as CandidateLine.Score
	Text  string  `json:"text"`
}

// Arrow is a board annotation derived from a candidate line's first move.
type Arrow struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Width int    `json:"width"`
	Label string `json:"label"`
}
