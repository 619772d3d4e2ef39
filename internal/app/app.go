package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/rastreio-bot/internal/adapter/natsbus"
	"github.com/heartmarshall/rastreio-bot/internal/adapter/postgres"
	"github.com/heartmarshall/rastreio-bot/internal/adapter/postgres/conversation"
	"github.com/heartmarshall/rastreio-bot/internal/adapter/postgres/interaction"
	"github.com/heartmarshall/rastreio-bot/internal/adapter/postgres/message"
	reportrepo "github.com/heartmarshall/rastreio-bot/internal/adapter/postgres/report"
	"github.com/heartmarshall/rastreio-bot/internal/adapter/postgres/systemlog"
	"github.com/heartmarshall/rastreio-bot/internal/adapter/postgres/trackinglog"
	"github.com/heartmarshall/rastreio-bot/internal/adapter/ssw"
	"github.com/heartmarshall/rastreio-bot/internal/auth"
	"github.com/heartmarshall/rastreio-bot/internal/config"
	"github.com/heartmarshall/rastreio-bot/internal/domain"
	"github.com/heartmarshall/rastreio-bot/internal/metrics"
	"github.com/heartmarshall/rastreio-bot/internal/service/chatbot"
	"github.com/heartmarshall/rastreio-bot/internal/service/housekeeping"
	"github.com/heartmarshall/rastreio-bot/internal/service/report"
	"github.com/heartmarshall/rastreio-bot/internal/transport/middleware"
	"github.com/heartmarshall/rastreio-bot/internal/transport/rest"
	"github.com/heartmarshall/rastreio-bot/pkg/retry"
)

// Run is the application entry point. It loads configuration, connects to
// PostgreSQL and NATS, and serves the bot, the housekeeping scheduler and
// the dashboard API until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, closeLog := NewLogger(cfg.Log)
	defer closeLog() //nolint:errcheck

	logger.Info("starting rastreio-bot",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("timezone", cfg.Bot.Timezone),
	)

	pool, err := ConnectDatabase(ctx, logger, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	if cfg.Database.MigrateOnStart {
		if err := postgres.Migrate(ctx, pool, logger); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	bus, err := natsbus.Connect(ctx, logger, cfg.NATS)
	if err != nil {
		return fmt.Errorf("connect nats: %w", err)
	}

	// Repositories.
	txm := postgres.NewTxManager(pool)
	conversations := conversation.New(pool)
	messages := message.New(pool)
	lookups := trackinglog.New(pool)
	interactions := interaction.New(pool)
	syslog := systemlog.New(pool)
	reports := reportrepo.New(pool)

	// Services.
	m := metrics.New()
	gateway := ssw.New(logger, cfg.Tracking)

	bot := chatbot.NewService(logger, conversations, messages, lookups, interactions, syslog, gateway, bus, m, cfg.Bot)
	hk := housekeeping.NewService(logger, conversations, messages, interactions, syslog, txm, m, cfg.Bot.IdleWindow, cfg.Housekeeping)
	reportSvc := report.NewService(logger, reports, conversations, messages, lookups, syslog, cfg.Bot.Location)

	// HTTP.
	limiter := middleware.NewRateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst, time.Minute)
	defer limiter.Stop()

	deps := rest.RouterDeps{
		Logger: logger,
		Health: rest.NewHealthHandler(BuildVersion(),
			rest.Component{Name: "database", Pinger: pool, Critical: true},
			rest.Component{Name: "chat_transport", Pinger: bus, Critical: true},
			rest.Component{Name: "tracking_api", Pinger: gateway},
		),
		Dashboard: rest.NewDashboardHandler(reportSvc, logger),
		Metrics:   m,
		CORS:      cfg.CORS,
		RateLimit: limiter.Middleware(),
	}
	if cfg.Dashboard.AuthEnabled() {
		deps.Auth = middleware.Auth(auth.NewJWTManager(cfg.Dashboard.JWTSecret, cfg.Dashboard.JWTIssuer))
	} else {
		logger.Warn("dashboard API is unauthenticated; set dashboard.jwt_secret to protect it")
	}

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      rest.NewRouter(deps),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	if err := bus.Subscribe(gctx, func(ctx context.Context, ev domain.InboundEvent) {
		bot.HandleEvent(ctx, ev)
	}); err != nil {
		_ = bus.Close(context.Background())
		return err
	}

	g.Go(func() error {
		return NewScheduler(logger, hk, cfg.Housekeeping).Run(gctx)
	})

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		var errs []error
		if err := srv.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("http shutdown: %w", err))
		}
		if err := bus.Close(shutdownCtx); err != nil {
			errs = append(errs, err)
		}
		return errors.Join(errs...)
	})

	if err := syslog.Log(ctx, domain.LogLevelInfo, "bot started", map[string]any{
		"version": Version,
		"subject": cfg.NATS.InboundSubject,
	}); err != nil {
		logger.Warn("write startup entry", slog.String("error", err.Error()))
	}

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("stopped")
	return nil
}

// ConnectDatabase opens the pool, retrying while the database comes up.
func ConnectDatabase(ctx context.Context, logger *slog.Logger, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	pool, err := retry.Do(ctx, logger, retry.Config{MaxAttempts: 5}, "connect database",
		func(ctx context.Context) (*pgxpool.Pool, error) {
			return postgres.NewPool(ctx, cfg)
		})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return pool, nil
}
