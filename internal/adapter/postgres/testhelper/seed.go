package testhelper

import (
	"context"
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/rastreio-bot/internal/domain"
)

// UniqueIdentity returns a random Brazilian-looking identity so parallel
// tests sharing one database never collide.
func UniqueIdentity() string {
	return fmt.Sprintf("55%011d", rand.Int64N(1e11))
}

// SeedConversation inserts a conversation for identity with the given status
// and returns it as stored.
func SeedConversation(t *testing.T, pool *pgxpool.Pool, identity string, status domain.Status) domain.Conversation {
	t.Helper()
	ctx := context.Background()

	c := domain.NewConversation(identity, time.Now())
	c.Status = status

	err := pool.QueryRow(ctx,
		`INSERT INTO conversations (identity, protocol_id, status)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		c.Identity, c.ProtocolID, string(c.Status),
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedConversation insert: %v", err)
	}

	return c
}

// Backdate moves a conversation's activity timestamps into the past.
func Backdate(t *testing.T, pool *pgxpool.Pool, id int64, by time.Duration) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`UPDATE conversations
		 SET created_at = created_at - make_interval(secs => $2),
		     updated_at = updated_at - make_interval(secs => $2),
		     ending_at  = ending_at - make_interval(secs => $2),
		     end_time   = end_time - make_interval(secs => $2)
		 WHERE id = $1`,
		id, by.Seconds(),
	)
	if err != nil {
		t.Fatalf("testhelper: Backdate: %v", err)
	}
}
