package models

// BoardState is what we hand to the front-end after every action.
type BoardState struct {
	FEN         string          `json:"fen"`
	Orientation Side            `json:"orientation"`
	SideToMove  Side            `json:"side_to_move"`
	EngineReady bool            `json:"engine_ready"`
	Mainline    int             `json:"mainline_len"`
	MainlinePly int             `json:"mainline_cursor"`
	Branch      int             `json:"branch_len"`
	BranchPly   int             `json:"branch_cursor"`
	Moves       []string        `json:"moves"` // current move sequence, long algebraic
	Eval        *Eval           `json:"eval"` // nil until the best line arrives
	Lines       []CandidateLine `json:"lines"`
	Arrows      []Arrow         `json:"arrows"`
}
