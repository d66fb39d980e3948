package outbox

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/viper"

	"github.com/wareline/shipping-svc/internal/dal/interfaces/ioutboxrepo"
	"github.com/wareline/shipping-svc/internal/dal/rabbitmq"
)

// Worker relays committed outbox messages to RabbitMQ.
type Worker struct {
	outboxRepo   ioutboxrepo.IOutboxRepository
	rabbitClient *rabbitmq.Client
	queue        string
	pollInterval time.Duration
	batchSize    int
	stopCh       chan struct{}
}

// NewWorker creates a new outbox worker.
func NewWorker(
	outboxRepo ioutboxrepo.IOutboxRepository,
	rabbitClient *rabbitmq.Client,
) *Worker {
	pollIntervalSeconds := viper.GetInt("rabbitmq.outbox.poll_interval_seconds")
	if pollIntervalSeconds == 0 {
		pollIntervalSeconds = 10
	}

	batchSize := viper.GetInt("rabbitmq.outbox.batch_size")
	if batchSize == 0 {
		batchSize = 100
	}

	queue := viper.GetString("rabbitmq.outbox.queue")
	if queue == "" {
		queue = "order.completed"
	}

	return &Worker{
		outboxRepo:   outboxRepo,
		rabbitClient: rabbitClient,
		queue:        queue,
		pollInterval: time.Duration(pollIntervalSeconds) * time.Second,
		batchSize:    batchSize,
		stopCh:       make(chan struct{}),
	}
}

// Start begins relaying messages. It blocks until the context is cancelled or
// Stop is called.
func (w *Worker) Start(ctx context.Context) {
	if _, err := w.rabbitClient.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:    w.queue,
		Durable: true,
	}); err != nil {
		slog.Error("Failed to declare outbox queue", "queue", w.queue, "error", err)

		return
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	slog.Info("Outbox worker started", "poll_interval", w.pollInterval, "batch_size", w.batchSize)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Outbox worker shutting down")

			return
		case <-w.stopCh:
			slog.Info("Outbox worker stopped")

			return
		case <-ticker.C:
			w.processMessages(ctx)
		}
	}
}

// Stop stops the worker.
func (w *Worker) Stop() {
	close(w.stopCh)
}

// processMessages publishes one batch of unprocessed messages. Published ids
// are marked processed together; failed publishes only bump the retry count
// and stay in the table for the next tick.
func (w *Worker) processMessages(ctx context.Context) {
	messages, err := w.outboxRepo.FetchUnprocessed(ctx, w.batchSize)
	if err != nil {
		slog.Error("Failed to fetch unprocessed outbox messages", "error", err)

		return
	}

	if len(messages) == 0 {
		return
	}

	slog.Info("Processing outbox messages", "count", len(messages))

	published := make([]int64, 0, len(messages))
	for _, msg := range messages {
		if err := w.rabbitClient.Publish(w.queue, msg.Payload); err != nil {
			slog.Warn("Failed to publish outbox message, will retry",
				"outbox_id", msg.ID,
				"retry_count", msg.RetryCount+1,
				"error", err,
			)

			if err := w.outboxRepo.IncrementRetry(ctx, msg.ID); err != nil {
				slog.Error("Failed to update retry count", "outbox_id", msg.ID, "error", err)
			}

			continue
		}

		published = append(published, msg.ID)
	}

	if len(published) == 0 {
		return
	}

	if err := w.outboxRepo.MarkProcessed(ctx, published); err != nil {
		slog.Error("Failed to mark outbox messages processed", "error", err)

		return
	}

	slog.Info("Outbox messages published", "count", len(published))
}
