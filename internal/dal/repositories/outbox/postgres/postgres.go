package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/wareline/shipping-svc/internal/dal/postgres"
	"github.com/wareline/shipping-svc/internal/service/models/outbox"
)

// PostgresOutboxRepository represents a Postgres outbox repository.
type PostgresOutboxRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewPostgresOutboxRepository creates a new Postgres outbox repository.
func NewPostgresOutboxRepository(conn postgres.Conn) *PostgresOutboxRepository {
	return &PostgresOutboxRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert stores a new outbox message in the same transaction as the state
// change that produced it.
func (r *PostgresOutboxRepository) Insert(ctx context.Context, msg *outbox.Message) error {
	query, args, err := r.sb.Insert("outbox").
		Columns("event_type", "payload", "created_at").
		Values(msg.EventType, []byte(msg.Payload), time.Now()).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build outbox insert: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert outbox message: %w", err)
	}

	return nil
}

// FetchUnprocessed returns up to limit pending messages, oldest first.
func (r *PostgresOutboxRepository) FetchUnprocessed(ctx context.Context, limit int) ([]outbox.Message, error) {
	query, args, err := r.sb.Select("id", "event_type", "payload", "retry_count", "created_at", "processed_at").
		From("outbox").
		Where("processed_at IS NULL").
		OrderBy("id ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build outbox query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query outbox: %w", err)
	}
	defer rows.Close()

	var result []outbox.Message
	for rows.Next() {
		var msg outbox.Message
		var payload []byte
		if err := rows.Scan(&msg.ID, &msg.EventType, &payload, &msg.RetryCount, &msg.CreatedAt, &msg.ProcessedAt); err != nil {
			return nil, fmt.Errorf("failed to scan outbox message: %w", err)
		}
		msg.Payload = payload
		result = append(result, msg)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// MarkProcessed stamps the given messages as published.
func (r *PostgresOutboxRepository) MarkProcessed(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := r.sb.Update("outbox").
		Set("processed_at", time.Now()).
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build outbox update: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to mark outbox messages processed: %w", err)
	}

	return nil
}

// IncrementRetry bumps the retry counter of a message that failed to publish.
func (r *PostgresOutboxRepository) IncrementRetry(ctx context.Context, id int64) error {
	query, args, err := r.sb.Update("outbox").
		Set("retry_count", sq.Expr("retry_count + 1")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build retry update: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to increment outbox retry: %w", err)
	}

	return nil
}
