package shippingsvc

import (
	"context"
	"fmt"
	"sort"

	"github.com/wareline/shipping-svc/internal/dal/interfaces/iraterepo"
	"github.com/wareline/shipping-svc/internal/service/models/enums"
	"github.com/wareline/shipping-svc/internal/service/models/lineitem"
	"github.com/wareline/shipping-svc/internal/service/models/order"
)

// Aggregator recomputes an order's costs from its full current line item set.
// It never trusts previously stored sums: every relevant mutation triggers a
// complete pass over the items inside one transaction.
type Aggregator struct{}

// Recalculate mutates the order and its items in place:
//  1. within each product group the oldest item (lowest id) is marked as the
//     first unit, the rest as additional units;
//  2. the order's is_domestic/is_express flags are cascaded to every item;
//  3. each item's shipping cost is resolved from the rate table, once both
//     flags are known;
//  4. the order totals are summed from the items. Zero items yield zero
//     costs, not an error.
func (a *Aggregator) Recalculate(
	ctx context.Context,
	o *order.Order,
	items []lineitem.LineItem,
	rates iraterepo.IRateRepository,
) error {
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })

	seen := make(map[int64]bool, len(items))
	for i := range items {
		item := &items[i]

		if seen[item.ProductID] {
			item.IsAdditional = enums.FlagYes
		} else {
			item.IsAdditional = enums.FlagNo
			seen[item.ProductID] = true
		}

		item.IsDomestic = o.IsDomestic
		item.IsExpress = o.IsExpress
	}

	var productCost, shippingCost int64
	for i := range items {
		item := &items[i]

		if item.IsDomestic.IsSet() && item.IsExpress.IsSet() {
			cost, err := rates.FindRate(ctx, item.ProductType, item.IsDomestic, item.IsExpress, item.IsAdditional)
			if err != nil {
				return fmt.Errorf("failed to resolve rate for line item %d: %w", item.ID, err)
			}
			item.ShippingCost = &cost
		} else {
			item.ShippingCost = nil
		}

		productCost += item.ProductCost
		if item.ShippingCost != nil {
			shippingCost += *item.ShippingCost
		}
	}

	totalCost := productCost + shippingCost
	o.ProductCost = &productCost
	o.ShippingCost = &shippingCost
	o.TotalCost = &totalCost
	o.LineItems = items

	return nil
}
