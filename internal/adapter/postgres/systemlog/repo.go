// Package systemlog implements the operational log using PostgreSQL.
// It provides append-only writes and age-based deletion.
package systemlog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/rastreio-bot/internal/adapter/postgres"
	"github.com/heartmarshall/rastreio-bot/internal/domain"
)

const entity = "system_log"

// Repo provides system log persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new system log repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const logSQL = `INSERT INTO system_logs (level, message, data) VALUES ($1, $2, $3)`

// Log appends an entry. data is marshalled to JSON; nil stores NULL.
func (r *Repo) Log(ctx context.Context, level domain.LogLevel, message string, data any) error {
	var payload []byte
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("%s marshal data: %w", entity, err)
		}
		payload = b
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, logSQL, string(level), message, payload); err != nil {
		return postgres.MapError(err, entity, nil)
	}
	return nil
}

const listRecentSQL = `SELECT id, level, message, data, created_at
FROM system_logs
ORDER BY created_at DESC, id DESC
LIMIT $1`

// ListRecent returns the newest entries first.
func (r *Repo) ListRecent(ctx context.Context, limit int) ([]domain.SystemLog, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, listRecentSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("list system_logs: %w", err)
	}
	defer rows.Close()

	logs := []domain.SystemLog{}
	for rows.Next() {
		var (
			l     domain.SystemLog
			level string
			data  []byte
		)
		if err := rows.Scan(&l.ID, &level, &l.Message, &data, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan system_log: %w", err)
		}
		l.Level = domain.LogLevel(level)
		l.Data = data
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate system_logs: %w", err)
	}

	return logs, nil
}

const deleteBeforeSQL = `DELETE FROM system_logs WHERE created_at < $1`

// DeleteBefore removes entries created before cutoff and returns the count.
func (r *Repo) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, deleteBeforeSQL, cutoff)
	if err != nil {
		return 0, postgres.MapError(err, entity, nil)
	}
	return tag.RowsAffected(), nil
}
