// Command migrate applies pending database migrations and exits.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/rastreio-bot/internal/adapter/postgres"
	"github.com/heartmarshall/rastreio-bot/internal/app"
	"github.com/heartmarshall/rastreio-bot/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, closeLog := app.NewLogger(cfg.Log)
	defer closeLog() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := app.ConnectDatabase(ctx, logger, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, logger); err != nil {
		logger.Error("migrate", slog.String("error", err.Error()))
		pool.Close()
		os.Exit(1)
	}
	logger.Info("migrations applied")
}
