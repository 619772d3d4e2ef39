// Package testhelper provides a shared PostgreSQL container for repository
// and end-to-end tests.
package testhelper

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/heartmarshall/rastreio-bot/internal/adapter/postgres"
	"github.com/heartmarshall/rastreio-bot/internal/config"
)

var (
	once      sync.Once
	sharedDSN string
	initErr   error
)

// DatabaseConfig returns the pool settings used for the shared container.
func DatabaseConfig(dsn string) config.DatabaseConfig {
	return config.DatabaseConfig{
		DSN:              dsn,
		MaxConns:         8,
		MinConns:         1,
		MaxConnLifetime:  time.Hour,
		MaxConnIdleTime:  time.Minute,
		StatementTimeout: 30 * time.Second,
	}
}

// SetupTestDB starts a shared PostgreSQL container once per test binary,
// applies the embedded migrations and returns a new pool built by
// postgres.NewPool. The pool is closed via t.Cleanup; the container lives
// until the process exits. Tests using it are skipped under -short.
func SetupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if testing.Short() {
		t.Skip("testhelper: database tests skipped in short mode")
	}

	once.Do(func() {
		sharedDSN, initErr = startContainerAndMigrate()
	})
	if initErr != nil {
		t.Fatalf("testhelper: failed to setup test DB: %v", initErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, DatabaseConfig(sharedDSN))
	if err != nil {
		t.Fatalf("testhelper: open pool: %v", err)
	}
	t.Cleanup(pool.Close)

	return pool
}

func startContainerAndMigrate() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:17-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "rastreio",
				"POSTGRES_PASSWORD": "rastreio",
				"POSTGRES_DB":       "rastreio_test",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return "", fmt.Errorf("start container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("get container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return "", fmt.Errorf("get mapped port: %w", err)
	}

	dsn := fmt.Sprintf("postgres://rastreio:rastreio@%s:%s/rastreio_test?sslmode=disable", host, port.Port())

	pool, err := postgres.NewPool(ctx, DatabaseConfig(dsn))
	if err != nil {
		return "", err
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, slog.New(slog.NewTextHandler(io.Discard, nil))); err != nil {
		return "", err
	}
	return dsn, nil
}
