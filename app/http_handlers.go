package app

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"example/analysis-board/app/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const actionTimeout = 10 * time.Second

// Handlers serves the board routes.
type Handlers struct {
	log   zerolog.Logger
	board *Board
}

func NewHandlers(log zerolog.Logger, board *Board) *Handlers {
	return &Handlers{log: log, board: board}
}

// Health reports that the process is up.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

func (h *Handlers) GetBoard(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), actionTimeout)
	defer cancel()

	st, err := h.board.State(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// LoadGame replaces the game. A PGN that stops parsing partway is still loaded
// and answered with 422 plus the resulting state.
func (h *Handlers) LoadGame(c *gin.Context) {
	var req models.LoadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), actionTimeout)
	defer cancel()

	st, err := h.board.Load(ctx, req.PGN)
	switch {
	case errors.Is(err, ErrIllegalMove):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "state": st})
	case err != nil:
		h.fail(c, err)
	default:
		c.JSON(http.StatusOK, st)
	}
}

func (h *Handlers) MakeMove(c *gin.Context) {
	var req models.MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), actionTimeout)
	defer cancel()

	applied, st, err := h.board.Move(ctx,
		strings.ToLower(req.From), strings.ToLower(req.To), strings.ToLower(req.Promotion))
	if err != nil {
		h.fail(c, err)
		return
	}
	status := http.StatusOK
	if !applied {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, models.MoveResponse{Applied: applied, State: st})
}

// navigate adapts a board action that takes no input to a handler.
func (h *Handlers) navigate(action func(context.Context) (models.BoardState, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), actionTimeout)
		defer cancel()

		st, err := action(ctx)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, st)
	}
}

func (h *Handlers) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrBoardStopped):
		status = http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	}
	h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("board action failed")
	c.JSON(status, gin.H{"error": err.Error()})
}
