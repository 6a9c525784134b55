package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"example/analysis-board/app"
	"example/analysis-board/app/config"
)

const defaultWait = 5 * time.Second

// usage: analyze-local <file.pgn> [seconds]
func main() {
	start := time.Now()
	cfg, err := config.LoadConfig()
	if err != nil {
		bootLog := app.NewLogger(config.LogConfig{})
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}
	log := app.NewLogger(cfg.Logs)

	path, wait, err := parseArgs(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("usage: analyze-local <file.pgn> [seconds]")
	}
	pgn, err := os.ReadFile(path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read pgn")
	}

	engine, err := app.NewUCIEngine(cfg.Engine, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start engine")
	}
	defer engine.Close()

	ctx, cancel := context.WithTimeout(context.Background(), wait+5*time.Second)
	defer cancel()

	board := app.NewBoard(log, engine, app.NewChessRules(), cfg.Engine.MultiPV, cfg.Engine.Depth)
	go board.Run(ctx)

	st, err := board.Load(ctx, string(pgn))
	if err != nil && !errors.Is(err, app.ErrIllegalMove) {
		log.Fatal().Err(err).Msg("failed to load game")
	}
	if err != nil {
		log.Warn().Err(err).Int("moves", st.Mainline).Msg("analyzing the part that parsed")
	}

	time.Sleep(wait)
	st, err = board.State(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read board")
	}

	fmt.Printf("%s (%s to move)\n", st.FEN, st.SideToMove)
	for _, l := range st.Lines {
		sans := make([]string, 0, len(l.Moves))
		for _, m := range l.Moves {
			sans = append(sans, m.SAN)
		}
		fmt.Printf("%d. %6s  %v\n", l.Rank+1, l.ScoreText, sans)
	}
	for _, a := range st.Arrows {
		fmt.Printf("arrow %s-%s width %d %s\n", a.From, a.To, a.Width, a.Label)
	}
	log.Info().Dur("took", time.Since(start)).Msg("done")
}

func parseArgs(args []string) (string, time.Duration, error) {
	if len(args) < 1 || args[0] == "" {
		return "", 0, errors.New("missing pgn file")
	}
	wait := defaultWait
	if len(args) > 1 {
		secs, err := strconv.Atoi(args[1])
		if err != nil || secs <= 0 {
			return "", 0, fmt.Errorf("seconds must be a positive integer, got %q", args[1])
		}
		wait = time.Duration(secs) * time.Second
	}
	return args[0], wait, nil
}
