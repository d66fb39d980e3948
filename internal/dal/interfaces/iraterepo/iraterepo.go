package iraterepo

import (
	"context"

	"github.com/wareline/shipping-svc/internal/service/models/enums"
)

// IRateRepository is an interface for the shipping rate table.
type IRateRepository interface {
	// FindRate resolves the shipping cost in minor units for one line item.
	FindRate(ctx context.Context, productType string, domestic, express, additional enums.Flag) (int64, error)
}
