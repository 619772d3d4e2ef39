// Package interaction implements the daily-interaction tracker using
// PostgreSQL. Days are calendar dates chosen by the caller, so the service
// decides which timezone "today" means.
package interaction

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/rastreio-bot/internal/adapter/postgres"
	"github.com/heartmarshall/rastreio-bot/internal/domain"
)

const entity = "daily_interaction"

// Repo provides daily interaction persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new daily interaction repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const existsSQL = `SELECT EXISTS (SELECT 1 FROM daily_interactions WHERE identity = $1 AND day = $2)`

// IsFirstInteractionToday reports whether identity has no interaction recorded on day.
func (r *Repo) IsFirstInteractionToday(ctx context.Context, identity string, day time.Time) (bool, error) {
	var exists bool
	err := postgres.QuerierFromCtx(ctx, r.pool).
		QueryRow(ctx, existsSQL, domain.CanonicalIdentity(identity), dateOnly(day)).
		Scan(&exists)
	if err != nil {
		return false, postgres.MapError(err, entity, identity)
	}
	return !exists, nil
}

const recordSQL = `INSERT INTO daily_interactions (identity, day)
VALUES ($1, $2)
ON CONFLICT (identity, day)
DO UPDATE SET interactions = daily_interactions.interactions + 1, last_at = now()`

// RecordInteraction counts one interaction of identity on day.
func (r *Repo) RecordInteraction(ctx context.Context, identity string, day time.Time) error {
	_, err := postgres.QuerierFromCtx(ctx, r.pool).
		Exec(ctx, recordSQL, domain.CanonicalIdentity(identity), dateOnly(day))
	if err != nil {
		return postgres.MapError(err, entity, identity)
	}
	return nil
}

const deleteBeforeSQL = `DELETE FROM daily_interactions WHERE day < $1`

// DeleteBefore removes interaction counters for days before cutoff.
func (r *Repo) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, deleteBeforeSQL, dateOnly(cutoff))
	if err != nil {
		return 0, postgres.MapError(err, entity, nil)
	}
	return tag.RowsAffected(), nil
}

// dateOnly drops the clock in day's own location so the DATE column stores
// the caller's calendar day.
func dateOnly(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
