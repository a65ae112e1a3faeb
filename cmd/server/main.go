package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nagrik-seva/backend/internal/config"
	"github.com/nagrik-seva/backend/internal/db"
	httpapi "github.com/nagrik-seva/backend/internal/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := log.Level(level).With().Str("service", "nagrik-seva-backend").Logger()

	ctx := context.Background()
	var store db.Store
	if cfg.DatabaseURL == "" {
		mem := db.NewMemStore()
		if err := db.Seed(ctx, mem); err != nil {
			logger.Fatal().Err(err).Msg("failed to seed store")
		}
		store = mem
		logger.Info().Msg("using in-memory store")
	} else {
		pg, err := db.NewPGStore(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect db")
		}
		if err := pg.EnsureSchema(ctx); err != nil {
			logger.Fatal().Err(err).Msg("failed to prepare schema")
		}
		store = pg
		logger.Info().Msg("using postgres store")
	}
	defer store.Close()

	router := httpapi.Router(cfg, store, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("server stopped")
}
