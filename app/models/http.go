package models

type LoadRequest struct {
	PGN string `json:"pgn"` // empty loads an empty game
}

type MoveRequest struct {
	From      string `json:"from" binding:"required"`
	To        string `json:"to" binding:"required"`
	Promotion string `json:"promotion"` // q, r, b or n; queen when empty
}

type MoveResponse struct {
	Applied bool       `json:"applied"`
	State   BoardState `json:"state"`
}
