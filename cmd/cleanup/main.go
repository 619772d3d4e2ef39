// Command cleanup removes conversations, messages, system logs and daily
// interaction counters older than the configured retention period. It is
// meant for an external cron job when housekeeping.purge_cron is unset.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	_ "time/tzdata"

	"github.com/heartmarshall/rastreio-bot/internal/adapter/postgres"
	"github.com/heartmarshall/rastreio-bot/internal/adapter/postgres/conversation"
	"github.com/heartmarshall/rastreio-bot/internal/adapter/postgres/interaction"
	"github.com/heartmarshall/rastreio-bot/internal/adapter/postgres/message"
	"github.com/heartmarshall/rastreio-bot/internal/adapter/postgres/systemlog"
	"github.com/heartmarshall/rastreio-bot/internal/app"
	"github.com/heartmarshall/rastreio-bot/internal/config"
	"github.com/heartmarshall/rastreio-bot/internal/service/housekeeping"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, closeLog := app.NewLogger(cfg.Log)
	defer closeLog() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := app.ConnectDatabase(ctx, logger, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	syslog := systemlog.New(pool)
	hk := housekeeping.NewService(logger,
		conversation.New(pool),
		message.New(pool),
		interaction.New(pool),
		syslog,
		postgres.NewTxManager(pool),
		nil,
		cfg.Bot.IdleWindow,
		cfg.Housekeeping,
	)

	now := time.Now()
	res, err := hk.PurgeOld(ctx, now)
	if err != nil {
		logger.Error("purge failed",
			slog.String("error", err.Error()),
			slog.Time("cutoff", cfg.Housekeeping.RetentionCutoff(now)),
		)
		pool.Close()
		os.Exit(1)
	}

	logger.Info("purge completed",
		slog.Int64("conversations", res.Conversations),
		slog.Int64("messages", res.Messages),
		slog.Int64("system_logs", res.SystemLogs),
		slog.Int64("interactions", res.Interactions),
		slog.Time("cutoff", cfg.Housekeeping.RetentionCutoff(now)),
	)
}
