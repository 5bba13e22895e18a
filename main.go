package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/vaultcrack/internal/config"
	"github.com/robalobadob/vaultcrack/internal/daily"
	"github.com/robalobadob/vaultcrack/internal/events"
	"github.com/robalobadob/vaultcrack/internal/httpserver"
	"github.com/robalobadob/vaultcrack/internal/store"
	"github.com/robalobadob/vaultcrack/internal/words"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	setupLogging(cfg)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	vocab, err := words.Load(cfg.WordsFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.WordsFile).Msg("failed to load vocabulary")
	}
	log.Info().Int("words", vocab.Len()).Str("file", cfg.WordsFile).Msg("vocabulary loaded")

	srv := httpserver.New(httpserver.Options{
		Store:        store.NewMemoryStore(),
		Hub:          events.NewHub(),
		Random:       words.NewRandomSource(vocab, nil),
		Daily:        daily.NewSource(vocab, cfg.DailySalt),
		MaxAttempts:  cfg.MaxAttempts,
		TokenSecret:  []byte(cfg.TokenSecret),
		TokenTTL:     cfg.TokenTTL,
		CookieName:   cfg.CookieName,
		ClientOrigin: cfg.ClientOrigin,
		Secure:       cfg.Production,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go srv.RunSweeper(ctx, cfg.SweepInterval, cfg.SessionIdle)

	log.Info().Str("port", cfg.Port).Int("maxAttempts", cfg.MaxAttempts).Msg("starting vaultcrack")
	if err := srv.Start(ctx, ":"+cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}

// setupLogging applies LOG_LEVEL and LOG_FORMAT to the global zerolog logger.
func setupLogging(cfg *config.Config) {
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}
