package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"example/analysis-board/app"
	"example/analysis-board/app/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		// logger isn't configured yet
		bootLog := app.NewLogger(config.LogConfig{})
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}
	log := app.NewLogger(cfg.Logs)

	engine, err := app.NewUCIEngine(cfg.Engine, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start engine")
	}
	defer engine.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	board := app.NewBoard(log, engine, app.NewChessRules(), cfg.Engine.MultiPV, cfg.Engine.Depth)
	go func() {
		if err := board.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("board stopped")
			stop()
		}
	}()

	router, err := app.NewRouter(cfg, log, board)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize router")
	}

	srv := newHTTPServer(cfg.HTTP.Addr, router)
	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server failed")
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("http shutdown")
	}
}

func newHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
