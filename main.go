package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordsearch/internal/config"
	"github.com/robalobadob/wordsearch/internal/httpserver"
	"github.com/robalobadob/wordsearch/internal/kv"
	"github.com/robalobadob/wordsearch/internal/leaderboard"
	"github.com/robalobadob/wordsearch/internal/words"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := words.Init(cfg.WordsFile); err != nil {
		log.Fatal().Err(err).Msg("failed to load word bank")
	}
	count, longest := words.Stats()
	log.Info().Int("words", count).Int("longest", longest).Msg("word bank loaded")

	store, err := kv.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("failed to open store")
	}
	defer store.Close()

	board, err := leaderboard.Open(context.Background(), store)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load leaderboard")
	}

	srv := httpserver.New(cfg, words.Bank(), board)
	log.Info().Str("port", cfg.Port).Msg("starting wordsearch server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
