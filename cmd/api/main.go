package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/reelmates/backend/config"
	"github.com/reelmates/backend/internal/database"
	"github.com/reelmates/backend/internal/logging"
	"github.com/reelmates/backend/internal/router"
	"github.com/reelmates/backend/internal/server"
	"github.com/reelmates/backend/internal/tmdb"
)

func main() {
	log := logging.NewLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	db, err := database.New(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}

	if err := database.RunMigrations(db, "migrations"); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}

	// Redis is optional: without it the TMDB response cache and search rate
	// limiting are disabled, everything else works.
	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.WithError(err).Warn("redis unavailable, continuing without response cache")
		redisClient = nil
	}

	tmdbClient := tmdb.NewClient(cfg.TMDBAPIKey, cfg.TMDBBaseURL, cfg.TMDBImageBaseURL)

	r := router.New(db, redisClient, tmdbClient, cfg.JWTSecret, log)
	srv := server.New(r, cfg.ServerPort, log)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.WithError(err).Fatal("server error")
		}
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("server shutdown error")
	}
	log.Info("server stopped")
}
