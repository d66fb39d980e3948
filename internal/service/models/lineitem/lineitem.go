package lineitem

import (
	"time"

	"github.com/wareline/shipping-svc/internal/service/models/enums"
)

// Field names used in error payloads.
const (
	FieldCustomerID = "customer_id"
	FieldProductID  = "product_id"
	FieldSellerID   = "seller_id"
)

// User-facing messages.
const (
	MsgInvalidCustomerID = "Invalid 'customer_id'."
	MsgInvalidProductID  = "Invalid 'product_id'."
	MsgInvalidSellerID   = "Invalid 'seller_id'."
)

// LineItem is one product attached to an order. Product and seller data is a
// snapshot captured when the item is added to the cart. The shipping flags
// and shipping cost are cascaded from the owning order by the aggregator and
// stay unset until then.
type LineItem struct {
	ID           int64      `json:"id"`
	OrderID      int64      `json:"orderId"`
	CustomerID   int64      `json:"customerId"`
	SellerID     int64      `json:"sellerId"`
	ProductID    int64      `json:"productId"`
	ProductTitle string     `json:"productTitle"`
	ProductCost  int64      `json:"productCost"`
	ProductType  string     `json:"productType"`
	IsAdditional enums.Flag `json:"isAdditional,omitempty"`
	IsDomestic   enums.Flag `json:"isDomestic,omitempty"`
	IsExpress    enums.Flag `json:"isExpress,omitempty"`
	ShippingCost *int64     `json:"shippingCost,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}
