package icustomerrepo

import (
	"context"

	"github.com/wareline/shipping-svc/internal/service/models/customer"
)

// ICustomerRepository is an interface for the customer postgres repository.
type ICustomerRepository interface {
	// GetByID returns the customer, or nil when the id is unknown.
	GetByID(ctx context.Context, id int64) (*customer.Customer, error)
}
