// Package message implements the chat message log using PostgreSQL.
package message

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/rastreio-bot/internal/adapter/postgres"
	"github.com/heartmarshall/rastreio-bot/internal/domain"
)

const entity = "message"

// Repo provides message persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new message repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const logSQL = `INSERT INTO messages (identity, conversation_id, text, is_from_bot, created_at)
VALUES ($1, $2, $3, $4, COALESCE($5, now()))`

// Log appends one message. A zero Timestamp is stored as now().
func (r *Repo) Log(ctx context.Context, m domain.MessageLog) error {
	var ts any
	if !m.Timestamp.IsZero() {
		ts = m.Timestamp
	}

	_, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, logSQL,
		m.Identity, m.ConversationID, m.Text, m.IsFromBot, ts,
	)
	if err != nil {
		return postgres.MapError(err, entity, m.Identity)
	}
	return nil
}

const listByConversationSQL = `SELECT id, identity, conversation_id, text, is_from_bot, created_at
FROM messages
WHERE conversation_id = $1
ORDER BY created_at ASC, id ASC`

// ListByConversation returns the conversation's messages, oldest first.
func (r *Repo) ListByConversation(ctx context.Context, conversationID int64) ([]domain.MessageLog, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, listByConversationSQL, conversationID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	messages := []domain.MessageLog{}
	for rows.Next() {
		var m domain.MessageLog
		if err := rows.Scan(&m.ID, &m.Identity, &m.ConversationID, &m.Text, &m.IsFromBot, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}

	return messages, nil
}

const deleteUnlinkedBeforeSQL = `DELETE FROM messages WHERE conversation_id IS NULL AND created_at < $1`

// DeleteUnlinkedBefore removes messages that belong to no conversation and
// were sent before cutoff. Linked messages are removed with their conversation.
func (r *Repo) DeleteUnlinkedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, deleteUnlinkedBeforeSQL, cutoff)
	if err != nil {
		return 0, postgres.MapError(err, entity, nil)
	}
	return tag.RowsAffected(), nil
}
