// Package conversation implements the conversation store using PostgreSQL.
//
// Identities are matched on the generated identity_digits column, so callers
// may pass any decorated form of a phone number. A partial unique index keeps
// at most one open conversation per identity.
package conversation

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/rastreio-bot/internal/adapter/postgres"
	"github.com/heartmarshall/rastreio-bot/internal/domain"
)

const entity = "conversation"

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const columns = `id, identity, protocol_id, status, service_type, awaiting_input,
	rating, notes, created_at, updated_at, ending_at, end_time`

// Repo provides conversation persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new conversation repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

const getByIDSQL = `SELECT ` + columns + ` FROM conversations WHERE id = $1`

// GetByID returns a conversation by primary key.
// Returns domain.ErrNotFound if it does not exist.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Conversation, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	c, err := ScanConversation(q.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, entity, id)
	}
	return c, nil
}

const identityMatch = `(identity_digits = ANY($1::text[])
       OR ($2::text <> '' AND identity_digits LIKE '%' || $2::text || '%'))`

const identityOrder = `ORDER BY (identity_digits = ANY($1::text[])) DESC, created_at DESC
LIMIT 1`

const findActiveSQL = `SELECT ` + columns + `
FROM conversations
WHERE status <> 'completed'
  AND ` + identityMatch + `
` + identityOrder

const findLatestSQL = `SELECT ` + columns + `
FROM conversations
WHERE ` + identityMatch + `
` + identityOrder

// FindActive returns the most recent open conversation matching q. Exact
// variant matches win over fragment matches.
// Returns domain.ErrNotFound if none is open.
func (r *Repo) FindActive(ctx context.Context, q domain.IdentityQuery) (*domain.Conversation, error) {
	return r.findOne(ctx, findActiveSQL, q)
}

// FindLatest is FindActive without the status filter: it may return a
// completed conversation.
func (r *Repo) FindLatest(ctx context.Context, q domain.IdentityQuery) (*domain.Conversation, error) {
	return r.findOne(ctx, findLatestSQL, q)
}

func (r *Repo) findOne(ctx context.Context, query string, q domain.IdentityQuery) (*domain.Conversation, error) {
	if q.IsEmpty() {
		return nil, fmt.Errorf("%s: empty identity: %w", entity, domain.ErrNotFound)
	}

	variants := q.Variants
	if variants == nil {
		variants = []string{}
	}

	c, err := ScanConversation(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, variants, q.Fragment))
	if err != nil {
		return nil, postgres.MapError(err, entity, q.Variants)
	}
	return c, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

const createSQL = `INSERT INTO conversations (identity, protocol_id, status, service_type, awaiting_input)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + columns

// Create inserts c and returns the stored row.
// Returns domain.ErrAlreadyExists when the identity already has an open conversation.
func (r *Repo) Create(ctx context.Context, c domain.Conversation) (*domain.Conversation, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	status := c.Status
	if status == "" {
		status = domain.StatusActive
	}

	created, err := ScanConversation(q.QueryRow(ctx, createSQL,
		c.Identity, c.ProtocolID, string(status), string(c.ServiceType), string(c.AwaitingInput),
	))
	if err != nil {
		return nil, postgres.MapError(err, entity, c.Identity)
	}
	return created, nil
}

// Update applies patch to an open conversation and bumps updated_at.
// It reports false when the conversation does not exist or is already
// completed. Completed conversations are never modified.
func (r *Repo) Update(ctx context.Context, id int64, patch domain.ConversationPatch) (bool, error) {
	if err := patch.Validate(); err != nil {
		return false, err
	}

	b := psql.Update("conversations").
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.NotEq{"status": string(domain.StatusCompleted)})

	if patch.Status != nil {
		b = b.Set("status", string(*patch.Status))
	}
	if patch.ServiceType != nil {
		b = b.Set("service_type", string(*patch.ServiceType))
	}
	if patch.AwaitingInput != nil {
		b = b.Set("awaiting_input", string(*patch.AwaitingInput))
	}
	if patch.ClearAwaitingInput {
		b = b.Set("awaiting_input", string(domain.AwaitingNone))
	}
	if patch.Rating != nil {
		b = b.Set("rating", *patch.Rating)
	}
	if patch.Notes != nil {
		b = b.Set("notes", *patch.Notes)
	}
	if patch.EndingAt != nil {
		b = b.Set("ending_at", *patch.EndingAt)
	}
	if patch.EndTime != nil {
		b = b.Set("end_time", *patch.EndTime)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return false, fmt.Errorf("build %s update: %w", entity, err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return false, postgres.MapError(err, entity, id)
	}
	return tag.RowsAffected() > 0, nil
}

const touchSQL = `UPDATE conversations SET updated_at = now() WHERE id = $1 AND status <> 'completed'`

// Touch records activity on an open conversation.
func (r *Repo) Touch(ctx context.Context, id int64) error {
	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, touchSQL, id); err != nil {
		return postgres.MapError(err, entity, id)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Sweeps
// ---------------------------------------------------------------------------

const completeIdleEndingSQL = `UPDATE conversations
SET status = 'completed', awaiting_input = '', end_time = $2, updated_at = now()
WHERE status = 'ending' AND COALESCE(ending_at, updated_at) <= $1`

// CompleteIdleEnding finalizes ending conversations whose rating prompt was
// sent at or before cutoff. end_time is set to now. Returns the row count.
func (r *Repo) CompleteIdleEnding(ctx context.Context, cutoff, now time.Time) (int64, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, completeIdleEndingSQL, cutoff, now)
	if err != nil {
		return 0, postgres.MapError(err, entity, nil)
	}
	return tag.RowsAffected(), nil
}

const completeInactiveSQL = `UPDATE conversations
SET status = 'completed', awaiting_input = '', end_time = $2, updated_at = now()
WHERE status IN ('active', 'waiting_attendant') AND updated_at <= $1`

// CompleteInactive closes active and waiting conversations with no activity
// since cutoff. Returns the row count.
func (r *Repo) CompleteInactive(ctx context.Context, cutoff, now time.Time) (int64, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, completeInactiveSQL, cutoff, now)
	if err != nil {
		return 0, postgres.MapError(err, entity, nil)
	}
	return tag.RowsAffected(), nil
}

const deleteCompletedBeforeSQL = `DELETE FROM conversations WHERE status = 'completed' AND created_at < $1`

// DeleteCompletedBefore removes completed conversations created before cutoff.
// Messages and tracking requests go with them via ON DELETE CASCADE.
func (r *Repo) DeleteCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, deleteCompletedBeforeSQL, cutoff)
	if err != nil {
		return 0, postgres.MapError(err, entity, nil)
	}
	return tag.RowsAffected(), nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

// Columns is the projection ScanConversation expects. Shared with the
// report repository.
const Columns = columns

// ScanConversation scans one row selected with Columns.
func ScanConversation(row pgx.Row) (*domain.Conversation, error) {
	var (
		c                                  domain.Conversation
		status, serviceType, awaitingInput string
		rating                             *int16
	)
	err := row.Scan(
		&c.ID, &c.Identity, &c.ProtocolID, &status, &serviceType, &awaitingInput,
		&rating, &c.Notes, &c.CreatedAt, &c.UpdatedAt, &c.EndingAt, &c.EndTime,
	)
	if err != nil {
		return nil, err
	}

	c.Status = domain.Status(status)
	c.ServiceType = domain.ServiceType(serviceType)
	c.AwaitingInput = domain.AwaitingInput(awaitingInput)
	if rating != nil {
		v := int(*rating)
		c.Rating = &v
	}
	return &c, nil
}
