package order

import (
	"time"

	"github.com/wareline/shipping-svc/internal/service/errs"
	"github.com/wareline/shipping-svc/internal/service/models/enums"
	"github.com/wareline/shipping-svc/internal/service/models/lineitem"
)

// Status is the order lifecycle state. Orders start as drafts (the customer's
// active cart) and transition exactly once to completed.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusCompleted Status = "completed"
)

// Field names used in error payloads.
const (
	FieldID         = "id"
	FieldOrderID    = "order_id"
	FieldIsDomestic = "is_domestic"
	FieldIsExpress  = "is_express"
	FieldStatus     = "status"
)

// User-facing messages.
const (
	MsgRequireIsDomestic           = "Set `is_domestic` before `is_express`."
	MsgExpressOnlyInDomesticRegion = "Express shipping is allowed only in domestic regions."
	MsgCantCreate                  = "Cannot create a draft order. Please, contact our support."
	MsgMustHaveProducts            = "Must have at least 1 product."
	MsgMustHaveShippingSet         = "The shipping must be set before completing the order."
	MsgInvalidOrder                = "Invalid order."
	MsgOrderAlreadyCompleted       = "The order is already completed."
	MsgInvalidIsDomestic           = "Invalid 'is_domestic'."
	MsgInvalidIsExpress            = "Invalid 'is_express'."
)

// Order is a customer's order. While in draft status it acts as the cart
// container for line items; costs stay nil until the aggregator computes them
// and address fields stay empty until shipping is set. Orders are soft
// deleted only.
type Order struct {
	ID           int64               `json:"id"`
	CustomerID   int64               `json:"customerId"`
	Status       Status              `json:"status"`
	IsDomestic   enums.Flag          `json:"isDomestic,omitempty"`
	IsExpress    enums.Flag          `json:"isExpress,omitempty"`
	ProductCost  *int64              `json:"productCost,omitempty"`
	ShippingCost *int64              `json:"shippingCost,omitempty"`
	TotalCost    *int64              `json:"totalCost,omitempty"`
	Name         string              `json:"name,omitempty"`
	Surname      string              `json:"surname,omitempty"`
	Street       string              `json:"street,omitempty"`
	Country      string              `json:"country,omitempty"`
	Phone        string              `json:"phone,omitempty"`
	State        *string             `json:"state,omitempty"`
	Zip          *string             `json:"zip,omitempty"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
	DeletedAt    *time.Time          `json:"deletedAt,omitempty"`
	LineItems    []lineitem.LineItem `json:"lineItems,omitempty"`
}

// NewDraft creates a draft order owned by the customer, with nothing else set.
func NewDraft(customerID int64) *Order {
	return &Order{
		CustomerID: customerID,
		Status:     StatusDraft,
	}
}

// IsCompleted reports whether the order reached its terminal state.
func (o *Order) IsCompleted() bool {
	return o.Status == StatusCompleted
}

// HasShippingSet reports whether a shipping address has been applied.
func (o *Order) HasShippingSet() bool {
	return o.Name != "" && o.Street != "" && o.Country != ""
}

// SetIsDomestic normalizes and stores the region flag. An unparseable value
// is a recoverable input error, not an internal one.
func (o *Order) SetIsDomestic(v interface{}) error {
	flag, err := enums.ParseFlag(v)
	if err != nil {
		return errs.NewValidationError(0, map[string][]string{
			FieldIsDomestic: {MsgInvalidIsDomestic},
		})
	}
	o.IsDomestic = flag

	return nil
}

// SetIsExpress normalizes and stores the shipping-speed flag. The region flag
// must be set first, and express is forbidden for non-domestic regions.
func (o *Order) SetIsExpress(v interface{}) error {
	flag, err := enums.ParseFlag(v)
	if err != nil {
		return errs.NewValidationError(0, map[string][]string{
			FieldIsExpress: {MsgInvalidIsExpress},
		})
	}

	if !o.IsDomestic.IsSet() {
		return &errs.EligibilityError{
			Code:    errs.CodeRequireIsDomestic,
			Field:   FieldIsExpress,
			Message: MsgRequireIsDomestic,
		}
	}
	if o.IsDomestic == enums.FlagNo && flag == enums.FlagYes {
		return &errs.EligibilityError{
			Code:    errs.CodeExpressOnlyInDomesticRegion,
			Field:   FieldIsExpress,
			Message: MsgExpressOnlyInDomesticRegion,
		}
	}
	o.IsExpress = flag

	return nil
}

// Complete transitions the order from draft to completed. It requires at
// least one line item and a shipping address, and fails on an order that has
// already been completed.
func (o *Order) Complete(itemCount int) error {
	if o.IsCompleted() {
		return &errs.StateError{Field: FieldStatus, Message: MsgOrderAlreadyCompleted}
	}
	if itemCount < 1 {
		return &errs.StateError{Field: FieldStatus, Message: MsgMustHaveProducts}
	}
	if !o.HasShippingSet() {
		return &errs.StateError{Field: FieldStatus, Message: MsgMustHaveShippingSet}
	}
	o.Status = StatusCompleted

	return nil
}
