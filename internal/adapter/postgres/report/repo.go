// Package report implements the dashboard read model using PostgreSQL.
// All queries are read-only; filters are assembled with squirrel.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/rastreio-bot/internal/adapter/postgres"
	"github.com/heartmarshall/rastreio-bot/internal/adapter/postgres/conversation"
	"github.com/heartmarshall/rastreio-bot/internal/domain"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const (
	topBuckets      = 10
	maxTrackingRows = 1000
)

// Repo provides dashboard queries backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new report repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Stats
// ---------------------------------------------------------------------------

const statsSQL = `SELECT
	(SELECT COUNT(*) FROM conversations),
	(SELECT COUNT(*) FROM conversations WHERE created_at >= $1),
	(SELECT COUNT(*) FROM tracking_requests),
	(SELECT COUNT(*) FROM tracking_requests WHERE created_at >= $1),
	(SELECT COALESCE(AVG(rating), 0)::float8 FROM conversations WHERE rating IS NOT NULL),
	(SELECT COALESCE(AVG(EXTRACT(EPOCH FROM end_time - created_at)) / 60, 0)::float8
	   FROM conversations WHERE status = 'completed' AND end_time IS NOT NULL)`

// Stats returns headline numbers. "Today" starts at todayStart, which the
// caller computes in the business timezone.
func (r *Repo) Stats(ctx context.Context, todayStart time.Time) (domain.Stats, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var s domain.Stats
	err := q.QueryRow(ctx, statsSQL, todayStart).Scan(
		&s.TotalConversations, &s.ConversationsToday,
		&s.TotalTracking, &s.TrackingToday,
		&s.AverageRating, &s.AverageDurationMin,
	)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("stats: %w", err)
	}

	s.RatingDistribution, err = r.buckets(ctx,
		psql.Select("rating::text", "COUNT(*)").From("conversations").
			Where("rating IS NOT NULL").
			GroupBy("rating").OrderBy("rating"))
	if err != nil {
		return domain.Stats{}, fmt.Errorf("rating distribution: %w", err)
	}

	s.ServiceStats, err = r.buckets(ctx,
		psql.Select("service_type", "COUNT(*)").From("conversations").
			Where(squirrel.NotEq{"service_type": ""}).
			GroupBy("service_type").OrderBy("COUNT(*) DESC", "service_type"))
	if err != nil {
		return domain.Stats{}, fmt.Errorf("service stats: %w", err)
	}

	return s, nil
}

// ---------------------------------------------------------------------------
// Conversations
// ---------------------------------------------------------------------------

// ListConversations returns one page of conversations, newest first.
// EndDate is exclusive.
func (r *Repo) ListConversations(ctx context.Context, f domain.ConversationFilter) (domain.ConversationPage, error) {
	f.Normalize()
	where := conversationWhere(f)
	q := postgres.QuerierFromCtx(ctx, r.pool)

	countSQL, countArgs, err := psql.Select("COUNT(*)").From("conversations").Where(where).ToSql()
	if err != nil {
		return domain.ConversationPage{}, fmt.Errorf("build conversation count: %w", err)
	}

	var total int64
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return domain.ConversationPage{}, fmt.Errorf("count conversations: %w", err)
	}

	listSQL, listArgs, err := psql.Select(conversation.Columns).From("conversations").
		Where(where).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset())).
		ToSql()
	if err != nil {
		return domain.ConversationPage{}, fmt.Errorf("build conversation list: %w", err)
	}

	rows, err := q.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return domain.ConversationPage{}, fmt.Errorf("list conversations: %w", err)
	}
	defer rows.Close()

	convs := []domain.Conversation{}
	for rows.Next() {
		c, err := conversation.ScanConversation(rows)
		if err != nil {
			return domain.ConversationPage{}, fmt.Errorf("scan conversation: %w", err)
		}
		convs = append(convs, *c)
	}
	if err := rows.Err(); err != nil {
		return domain.ConversationPage{}, fmt.Errorf("iterate conversations: %w", err)
	}

	return domain.ConversationPage{
		Conversations: convs,
		Total:         total,
		Page:          f.Page,
		Limit:         f.Limit,
		TotalPages:    int((total + int64(f.Limit) - 1) / int64(f.Limit)),
	}, nil
}

func conversationWhere(f domain.ConversationFilter) squirrel.And {
	where := squirrel.And{}
	if f.Status != nil {
		where = append(where, squirrel.Eq{"status": string(*f.Status)})
	}
	if f.StartDate != nil {
		where = append(where, squirrel.GtOrEq{"created_at": *f.StartDate})
	}
	if f.EndDate != nil {
		where = append(where, squirrel.Lt{"created_at": *f.EndDate})
	}
	return where
}

// ---------------------------------------------------------------------------
// Tracking
// ---------------------------------------------------------------------------

// TrackingReport returns filtered lookups, newest first, with top city and
// sender distributions and the full status distribution. EndDate is exclusive;
// City and Sender match case-insensitive substrings.
func (r *Repo) TrackingReport(ctx context.Context, f domain.TrackingFilter) (domain.TrackingReport, error) {
	where := trackingWhere(f)
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rowsSQL, args, err := psql.
		Select("kind", "value", "city", "sender", "document_number", "status", "success", "created_at").
		From("tracking_requests").
		Where(where).
		OrderBy("created_at DESC", "id DESC").
		Limit(maxTrackingRows).
		ToSql()
	if err != nil {
		return domain.TrackingReport{}, fmt.Errorf("build tracking rows: %w", err)
	}

	rows, err := q.Query(ctx, rowsSQL, args...)
	if err != nil {
		return domain.TrackingReport{}, fmt.Errorf("list tracking rows: %w", err)
	}
	defer rows.Close()

	report := domain.TrackingReport{Rows: []domain.TrackingRow{}}
	for rows.Next() {
		var (
			row  domain.TrackingRow
			kind string
		)
		if err := rows.Scan(&kind, &row.Value, &row.City, &row.Sender, &row.DocumentNumber,
			&row.Status, &row.Success, &row.CreatedAt); err != nil {
			return domain.TrackingReport{}, fmt.Errorf("scan tracking row: %w", err)
		}
		row.Kind = domain.TrackingKind(kind)
		report.Rows = append(report.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return domain.TrackingReport{}, fmt.Errorf("iterate tracking rows: %w", err)
	}

	if report.CityStats, err = r.trackingBuckets(ctx, where, "city", topBuckets); err != nil {
		return domain.TrackingReport{}, err
	}
	if report.SenderStats, err = r.trackingBuckets(ctx, where, "sender", topBuckets); err != nil {
		return domain.TrackingReport{}, err
	}
	if report.StatusStats, err = r.trackingBuckets(ctx, where, "status", 0); err != nil {
		return domain.TrackingReport{}, err
	}

	return report, nil
}

func trackingWhere(f domain.TrackingFilter) squirrel.And {
	where := squirrel.And{}
	if f.StartDate != nil {
		where = append(where, squirrel.GtOrEq{"created_at": *f.StartDate})
	}
	if f.EndDate != nil {
		where = append(where, squirrel.Lt{"created_at": *f.EndDate})
	}
	if f.City != "" {
		where = append(where, squirrel.ILike{"city": "%" + f.City + "%"})
	}
	if f.Sender != "" {
		where = append(where, squirrel.ILike{"sender": "%" + f.Sender + "%"})
	}
	return where
}

// trackingBuckets groups the filtered lookups by column. limit 0 returns all groups.
func (r *Repo) trackingBuckets(ctx context.Context, where squirrel.And, column string, limit uint64) ([]domain.BucketCount, error) {
	b := psql.Select(column, "COUNT(*)").From("tracking_requests").
		Where(where).
		Where(squirrel.NotEq{column: nil}).
		GroupBy(column).
		OrderBy("COUNT(*) DESC", column)
	if limit > 0 {
		b = b.Limit(limit)
	}

	out, err := r.buckets(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("%s distribution: %w", column, err)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func (r *Repo) buckets(ctx context.Context, b squirrel.SelectBuilder) ([]domain.BucketCount, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.BucketCount{}
	for rows.Next() {
		var bc domain.BucketCount
		if err := rows.Scan(&bc.Key, &bc.Count); err != nil {
			return nil, err
		}
		out = append(out, bc)
	}
	return out, rows.Err()
}
