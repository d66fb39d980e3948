package iorderrepo

import (
	"context"

	"github.com/wareline/shipping-svc/internal/service/models/order"
)

// IOrderRepository is an interface for the order postgres repository.
type IOrderRepository interface {
	// GetCurrentDraft returns the customer's open draft order, or nil when
	// the customer has none.
	GetCurrentDraft(ctx context.Context, customerID int64) (*order.Order, error)
	// InsertIfNotExist returns the customer's current draft order, creating
	// it first when it does not exist yet.
	InsertIfNotExist(ctx context.Context, customerID int64) (*order.Order, error)
	GetByID(ctx context.Context, id int64) (*order.Order, error)
	FindUsersOrder(ctx context.Context, customerID, orderID int64) (*order.Order, error)
	Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)
	// Update persists the mutable order fields (address, flags, costs).
	Update(ctx context.Context, o *order.Order) error
	// UpdateStatus mutates only the status of the given order row.
	UpdateStatus(ctx context.Context, id int64, status order.Status) error
}
