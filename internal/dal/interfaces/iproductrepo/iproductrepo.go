package iproductrepo

import (
	"context"

	"github.com/wareline/shipping-svc/internal/service/models/product"
)

// IProductRepository is an interface for the product postgres repository.
type IProductRepository interface {
	// GetByID returns the product, or nil when the id is unknown.
	GetByID(ctx context.Context, id int64) (*product.Product, error)
}
