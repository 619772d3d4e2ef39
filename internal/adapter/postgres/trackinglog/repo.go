// Package trackinglog implements the append-only tracking request log using
// PostgreSQL. The normalized result is kept as JSONB; city, sender, document
// number and status are copied into indexed columns for reporting.
package trackinglog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/rastreio-bot/internal/adapter/postgres"
	"github.com/heartmarshall/rastreio-bot/internal/domain"
)

const entity = "tracking_request"

// Repo provides tracking request persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new tracking request repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

const logSQL = `INSERT INTO tracking_requests
	(conversation_id, kind, value, result, success, city, sender, document_number, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id, created_at`

// Log appends req and returns it with ID and CreatedAt filled in.
func (r *Repo) Log(ctx context.Context, req domain.TrackingRequest) (domain.TrackingRequest, error) {
	result, err := json.Marshal(req.Result)
	if err != nil {
		return domain.TrackingRequest{}, fmt.Errorf("%s marshal result: %w", entity, err)
	}

	err = postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, logSQL,
		req.ConversationID, string(req.Kind), req.Value, result, req.Success,
		req.City, req.Sender, req.DocumentNumber, req.Status,
	).Scan(&req.ID, &req.CreatedAt)
	if err != nil {
		return domain.TrackingRequest{}, postgres.MapError(err, entity, req.ConversationID)
	}
	return req, nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

const selectColumns = `id, conversation_id, kind, value, result, success,
	city, sender, document_number, status, created_at`

const lastForConversationSQL = `SELECT ` + selectColumns + `
FROM tracking_requests
WHERE conversation_id = $1
ORDER BY created_at DESC, id DESC
LIMIT 1`

// LastForConversation returns the most recent lookup of a conversation.
// Returns domain.ErrNotFound when the conversation has none.
func (r *Repo) LastForConversation(ctx context.Context, conversationID int64) (*domain.TrackingRequest, error) {
	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, lastForConversationSQL, conversationID)

	req, err := scanRequest(row)
	if err != nil {
		return nil, postgres.MapError(err, entity, conversationID)
	}
	return &req, nil
}

const listByConversationSQL = `SELECT ` + selectColumns + `
FROM tracking_requests
WHERE conversation_id = $1
ORDER BY created_at ASC, id ASC`

// ListByConversation returns every lookup of a conversation, oldest first.
func (r *Repo) ListByConversation(ctx context.Context, conversationID int64) ([]domain.TrackingRequest, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, listByConversationSQL, conversationID)
	if err != nil {
		return nil, fmt.Errorf("list tracking_requests: %w", err)
	}
	defer rows.Close()

	requests := []domain.TrackingRequest{}
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tracking_request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tracking_requests: %w", err)
	}

	return requests, nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func scanRequest(row pgx.Row) (domain.TrackingRequest, error) {
	var (
		req    domain.TrackingRequest
		kind   string
		result []byte
	)
	err := row.Scan(
		&req.ID, &req.ConversationID, &kind, &req.Value, &result, &req.Success,
		&req.City, &req.Sender, &req.DocumentNumber, &req.Status, &req.CreatedAt,
	)
	if err != nil {
		return domain.TrackingRequest{}, err
	}

	req.Kind = domain.TrackingKind(kind)
	if err := json.Unmarshal(result, &req.Result); err != nil {
		return domain.TrackingRequest{}, fmt.Errorf("%s %d unmarshal result: %w", entity, req.ID, err)
	}
	return req, nil
}
