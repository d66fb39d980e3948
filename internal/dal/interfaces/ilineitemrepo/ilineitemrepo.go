package ilineitemrepo

import (
	"context"

	"github.com/wareline/shipping-svc/internal/service/models/lineitem"
)

// ILineItemRepository is an interface for the line item postgres repository.
type ILineItemRepository interface {
	Insert(ctx context.Context, item *lineitem.LineItem) (*lineitem.LineItem, error)
	Query(ctx context.Context, filter *lineitem.QueryLineItemsModel) ([]lineitem.LineItem, error)
	// UpdateShipping persists the aggregator-owned fields (is_additional,
	// is_domestic, is_express, shipping_cost) of every given item.
	UpdateShipping(ctx context.Context, items []lineitem.LineItem) error
}
