// Package app wires the analysis board behind an HTTP router.
package app

import (
	"time"

	"example/analysis-board/app/config"
	"example/analysis-board/auth"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// NewRouter builds the HTTP surface for one board.
func NewRouter(cfg *config.Config, log zerolog.Logger, board *Board) (*gin.Engine, error) {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log))
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       12 * time.Hour,
	}))

	router.GET("/health", Health)

	var verifier *auth.Verifier
	if !cfg.Auth.Disabled {
		v, err := auth.NewVerifierFromConfig(cfg.Auth)
		if err != nil {
			return nil, err
		}
		verifier = v
	} else {
		log.Warn().Msg("auth disabled, board routes are open")
	}

	h := NewHandlers(log, board)

	read := router.Group("/board")
	read.Use(auth.Middleware(verifier, auth.MiddlewareConfig{
		Log:           log,
		RequireScopes: []string{cfg.Auth.ReadScope},
		Disabled:      cfg.Auth.Disabled,
	}))
	read.GET("", h.GetBoard)

	write := router.Group("/board")
	write.Use(auth.Middleware(verifier, auth.MiddlewareConfig{
		Log:           log,
		RequireScopes: []string{cfg.Auth.WriteScope},
		Disabled:      cfg.Auth.Disabled,
	}))
	write.POST("/load", h.LoadGame)
	write.POST("/move", h.MakeMove)
	write.POST("/reset", h.navigate(board.Reset))
	write.POST("/back", h.navigate(board.Back))
	write.POST("/forward", h.navigate(board.Forward))
	write.POST("/start", h.navigate(board.Start))
	write.POST("/end", h.navigate(board.End))
	write.POST("/flip", h.navigate(board.Flip))

	return router, nil
}

func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	}
}
