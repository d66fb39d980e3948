package outbox

import (
	"encoding/json"
	"time"
)

// EventOrderCompleted is published when a draft order transitions to completed.
const EventOrderCompleted = "order.completed"

// Message is a pending integration event stored transactionally with the
// state change that produced it.
type Message struct {
	ID          int64           `json:"id"`
	EventType   string          `json:"eventType"`
	Payload     json.RawMessage `json:"payload"`
	RetryCount  int             `json:"retryCount"`
	CreatedAt   time.Time       `json:"createdAt"`
	ProcessedAt *time.Time      `json:"processedAt,omitempty"`
}

// OrderCompletedPayload is the body of an EventOrderCompleted message.
type OrderCompletedPayload struct {
	OrderID    int64  `json:"orderId"`
	CustomerID int64  `json:"customerId"`
	TotalCost  *int64 `json:"totalCost,omitempty"`
}
