// cmd/wordsearch-tui/main.go
//
// Terminal word search client.
// Responsibilities:
//   - Load config (.env + environment), the word bank and the leaderboard store.
//   - Wire controller, event loop and tcell front-end together.
//   - Keep logs off the terminal: they go to WORDSEARCH_LOG or nowhere.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/internal/config"
	"github.com/robalobadob/wordsearch/internal/game"
	"github.com/robalobadob/wordsearch/internal/kv"
	"github.com/robalobadob/wordsearch/internal/leaderboard"
	"github.com/robalobadob/wordsearch/internal/tui"
	"github.com/robalobadob/wordsearch/internal/words"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	closeLog, err := setupLogging(os.Getenv("WORDSEARCH_LOG"), cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "wordsearch:", err)
		os.Exit(1)
	}
	defer closeLog()

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("exited with error")
		fmt.Fprintln(os.Stderr, "wordsearch:", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bank, err := words.Load(cfg.WordsFile)
	if err != nil {
		return err
	}
	store, err := kv.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	board, err := leaderboard.Open(ctx, store)
	if err != nil {
		return err
	}
	player, err := leaderboard.LoadPlayer(ctx, store)
	if err != nil {
		log.Warn().Err(err).Msg("load player name")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()

	app := tui.New(screen, tui.Options{Sounder: tui.NewChime()})
	ctrl, err := game.NewController(game.Options{
		Bank:       bank,
		TimeLimit:  cfg.TimeLimit,
		Scoreboard: board,
		Player:     player,
		OnPlayer: func(name string) {
			if err := leaderboard.SavePlayer(ctx, store, name); err != nil {
				log.Warn().Err(err).Msg("save player name")
			}
		},
	})
	if err != nil {
		return err
	}

	loop := game.NewLoop(ctrl, game.LoopOptions{Effects: app.Particles(), OnChange: app.Update})
	loopCtx, cancel := context.WithCancel(ctx)
	go loop.Run(loopCtx)
	defer func() {
		cancel()
		<-loop.Done()
	}()

	log.Info().Int("words", len(bank)).Msg("tui started")
	return app.Run(ctx, loop)
}

// setupLogging points the global logger at path, or discards output when
// path is empty so the terminal UI stays clean.
func setupLogging(path, level string) (func(), error) {
	if lvl, err := zerolog.ParseLevel(level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if path == "" {
		log.Logger = zerolog.New(io.Discard)
		return func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return func() { _ = f.Close() }, nil
}
