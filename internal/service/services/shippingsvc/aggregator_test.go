package shippingsvc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wareline/shipping-svc/internal/service/models/enums"
	"github.com/wareline/shipping-svc/internal/service/models/lineitem"
	"github.com/wareline/shipping-svc/internal/service/models/order"
)

// fakeRateRepo mirrors the seeded rate table.
type fakeRateRepo struct{}

func (f *fakeRateRepo) FindRate(
	_ context.Context,
	_ string,
	domestic, express, additional enums.Flag,
) (int64, error) {
	switch {
	case domestic == enums.FlagYes && express == enums.FlagYes:
		return 1000, nil
	case domestic == enums.FlagYes:
		if additional == enums.FlagYes {
			return 50, nil
		}

		return 100, nil
	default:
		if additional == enums.FlagYes {
			return 150, nil
		}

		return 300, nil
	}
}

func tshirtCart(orderID int64) []lineitem.LineItem {
	items := make([]lineitem.LineItem, 3)
	for i := range items {
		items[i] = lineitem.LineItem{
			ID:          int64(i + 1),
			OrderID:     orderID,
			ProductID:   10,
			ProductType: "t-shirt",
			ProductCost: 100,
		}
	}

	return items
}

func TestRecalculateDomesticStandard(t *testing.T) {
	o := order.NewDraft(1)
	o.ID = 7
	o.IsDomestic = enums.FlagYes
	o.IsExpress = enums.FlagNo

	agg := &Aggregator{}
	require.NoError(t, agg.Recalculate(context.Background(), o, tshirtCart(o.ID), &fakeRateRepo{}))

	require.Len(t, o.LineItems, 3)
	assert.Equal(t, int64(100), *o.LineItems[0].ShippingCost)
	assert.Equal(t, int64(50), *o.LineItems[1].ShippingCost)
	assert.Equal(t, int64(50), *o.LineItems[2].ShippingCost)

	assert.Equal(t, int64(200), *o.ShippingCost)
	assert.Equal(t, int64(300), *o.ProductCost)
	assert.Equal(t, int64(500), *o.TotalCost)
}

func TestRecalculateInternationalStandard(t *testing.T) {
	o := order.NewDraft(1)
	o.ID = 7
	o.IsDomestic = enums.FlagNo
	o.IsExpress = enums.FlagNo

	agg := &Aggregator{}
	require.NoError(t, agg.Recalculate(context.Background(), o, tshirtCart(o.ID), &fakeRateRepo{}))

	assert.Equal(t, int64(300), *o.LineItems[0].ShippingCost)
	assert.Equal(t, int64(150), *o.LineItems[1].ShippingCost)
	assert.Equal(t, int64(150), *o.LineItems[2].ShippingCost)

	assert.Equal(t, int64(600), *o.ShippingCost)
	assert.Equal(t, int64(300), *o.ProductCost)
	assert.Equal(t, int64(900), *o.TotalCost)
}

func TestRecalculateDomesticExpressFlatRate(t *testing.T) {
	o := order.NewDraft(1)
	o.ID = 7
	o.IsDomestic = enums.FlagYes
	o.IsExpress = enums.FlagYes

	agg := &Aggregator{}
	require.NoError(t, agg.Recalculate(context.Background(), o, tshirtCart(o.ID), &fakeRateRepo{}))

	for _, item := range o.LineItems {
		assert.Equal(t, int64(1000), *item.ShippingCost)
	}

	assert.Equal(t, int64(3000), *o.ShippingCost)
	assert.Equal(t, int64(300), *o.ProductCost)
	assert.Equal(t, int64(3300), *o.TotalCost)
}

func TestRecalculateMarksFirstUnitPerProduct(t *testing.T) {
	o := order.NewDraft(1)
	o.ID = 7
	o.IsDomestic = enums.FlagYes
	o.IsExpress = enums.FlagNo

	items := []lineitem.LineItem{
		{ID: 3, OrderID: o.ID, ProductID: 20, ProductType: "t-shirt", ProductCost: 100},
		{ID: 1, OrderID: o.ID, ProductID: 10, ProductType: "t-shirt", ProductCost: 100},
		{ID: 2, OrderID: o.ID, ProductID: 10, ProductType: "t-shirt", ProductCost: 100},
	}

	agg := &Aggregator{}
	require.NoError(t, agg.Recalculate(context.Background(), o, items, &fakeRateRepo{}))

	// Sorted by id: 1 and 3 are first units of their products, 2 is additional.
	assert.Equal(t, enums.FlagNo, o.LineItems[0].IsAdditional)
	assert.Equal(t, enums.FlagYes, o.LineItems[1].IsAdditional)
	assert.Equal(t, enums.FlagNo, o.LineItems[2].IsAdditional)
}

func TestRecalculateWithoutFlagsLeavesShippingUnset(t *testing.T) {
	o := order.NewDraft(1)
	o.ID = 7

	agg := &Aggregator{}
	require.NoError(t, agg.Recalculate(context.Background(), o, tshirtCart(o.ID), &fakeRateRepo{}))

	for _, item := range o.LineItems {
		assert.Nil(t, item.ShippingCost)
	}

	assert.Equal(t, int64(0), *o.ShippingCost)
	assert.Equal(t, int64(300), *o.ProductCost)
	assert.Equal(t, int64(300), *o.TotalCost)
}

func TestRecalculateEmptyCart(t *testing.T) {
	o := order.NewDraft(1)
	o.ID = 7

	agg := &Aggregator{}
	require.NoError(t, agg.Recalculate(context.Background(), o, nil, &fakeRateRepo{}))

	assert.Equal(t, int64(0), *o.ShippingCost)
	assert.Equal(t, int64(0), *o.ProductCost)
	assert.Equal(t, int64(0), *o.TotalCost)
}
