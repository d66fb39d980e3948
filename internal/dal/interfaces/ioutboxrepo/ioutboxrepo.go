package ioutboxrepo

import (
	"context"

	"github.com/wareline/shipping-svc/internal/service/models/outbox"
)

// IOutboxRepository is an interface for the outbox postgres repository.
type IOutboxRepository interface {
	Insert(ctx context.Context, msg *outbox.Message) error
	FetchUnprocessed(ctx context.Context, limit int) ([]outbox.Message, error)
	MarkProcessed(ctx context.Context, ids []int64) error
	IncrementRetry(ctx context.Context, id int64) error
}
