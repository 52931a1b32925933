package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordmatch/internal/config"
	"github.com/robalobadob/wordmatch/internal/game"
	"github.com/robalobadob/wordmatch/internal/history"
	"github.com/robalobadob/wordmatch/internal/httpserver"
	"github.com/robalobadob/wordmatch/internal/metrics"
	"github.com/robalobadob/wordmatch/internal/store"
	"github.com/robalobadob/wordmatch/internal/words"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	if err := words.Init(words.Source{List: cfg.WordBank, File: cfg.WordBankFile}); err != nil {
		log.Fatal().Err(err).Msg("failed to load word bank")
	}
	shuffler, err := game.NewShuffler(cfg.ShuffleMode, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("bad SHUFFLE_MODE")
	}

	// The completion log is optional; play continues without it.
	var completions *history.Store
	if db, err := history.Open(cfg.DBPath); err != nil {
		log.Warn().Err(err).Str("path", cfg.DBPath).Msg("completion log disabled")
	} else if err := history.Migrate(db); err != nil {
		log.Warn().Err(err).Msg("completion log disabled: migrate")
		_ = db.Close()
	} else {
		defer db.Close()
		completions = history.NewStore(db)
	}

	srv := httpserver.New(httpserver.Options{
		Bank:         words.Bank(),
		Shuffler:     shuffler,
		Store:        store.NewMemoryStore(),
		History:      completions,
		Metrics:      metrics.New(),
		JWTSecret:    cfg.JWTSecret,
		SessionTTL:   cfg.SessionTTL,
		ClientOrigin: cfg.ClientOrigin,
		Secure:       cfg.Production,
	})
	go srv.RunSweeper(context.Background(), cfg.SweepEvery)

	log.Info().
		Str("port", cfg.Port).
		Int("words", words.Stats()).
		Str("shuffle", cfg.ShuffleMode).
		Msg("starting wordmatch")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
