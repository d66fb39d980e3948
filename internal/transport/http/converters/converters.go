package converters

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/wareline/shipping-svc/internal/service/errs"
	"github.com/wareline/shipping-svc/internal/service/models/lineitem"
	"github.com/wareline/shipping-svc/internal/service/models/order"
)

// OrderView is the public projection of an order. All fields except id are
// optional and omitted while unset.
type OrderView struct {
	ID           int64          `json:"id"`
	Status       string         `json:"status,omitempty"`
	IsDomestic   string         `json:"is_domestic,omitempty"`
	IsExpress    string         `json:"is_express,omitempty"`
	ShippingCost *int64         `json:"shipping_cost,omitempty"`
	ProductCost  *int64         `json:"product_cost,omitempty"`
	TotalCost    *int64         `json:"total_cost,omitempty"`
	Name         string         `json:"name,omitempty"`
	Surname      string         `json:"surname,omitempty"`
	Street       string         `json:"street,omitempty"`
	State        *string        `json:"state,omitempty"`
	Zip          *string        `json:"zip,omitempty"`
	Country      string         `json:"country,omitempty"`
	Phone        string         `json:"phone,omitempty"`
	Products     []LineItemView `json:"products,omitempty"`
}

// LineItemView is the public projection of a line item.
type LineItemView struct {
	ID           int64  `json:"id"`
	OrderID      int64  `json:"order_id"`
	CustomerID   int64  `json:"customer_id"`
	SellerID     int64  `json:"seller_id"`
	ProductID    int64  `json:"product_id"`
	ProductTitle string `json:"product_title"`
	ProductCost  int64  `json:"product_cost"`
	ProductType  string `json:"product_type"`
	IsAdditional string `json:"is_additional,omitempty"`
	IsDomestic   string `json:"is_domestic,omitempty"`
	IsExpress    string `json:"is_express,omitempty"`
	ShippingCost *int64 `json:"shipping_cost,omitempty"`
}

// ToOrderView projects an order; line items are included only when
// withProducts is set.
func ToOrderView(o *order.Order, withProducts bool) OrderView {
	view := OrderView{
		ID:           o.ID,
		Status:       string(o.Status),
		IsDomestic:   o.IsDomestic.String(),
		IsExpress:    o.IsExpress.String(),
		ShippingCost: o.ShippingCost,
		ProductCost:  o.ProductCost,
		TotalCost:    o.TotalCost,
		Name:         o.Name,
		Surname:      o.Surname,
		Street:       o.Street,
		State:        o.State,
		Zip:          o.Zip,
		Country:      o.Country,
		Phone:        o.Phone,
	}

	if withProducts {
		for i := range o.LineItems {
			view.Products = append(view.Products, ToLineItemView(&o.LineItems[i]))
		}
	}

	return view
}

// ToLineItemView projects a line item.
func ToLineItemView(item *lineitem.LineItem) LineItemView {
	return LineItemView{
		ID:           item.ID,
		OrderID:      item.OrderID,
		CustomerID:   item.CustomerID,
		SellerID:     item.SellerID,
		ProductID:    item.ProductID,
		ProductTitle: item.ProductTitle,
		ProductCost:  item.ProductCost,
		ProductType:  item.ProductType,
		IsAdditional: item.IsAdditional.String(),
		IsDomestic:   item.IsDomestic.String(),
		IsExpress:    item.IsExpress.String(),
		ShippingCost: item.ShippingCost,
	}
}

// WriteJSON serializes v with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error sending response", "error", err)
	}
}

// WriteError maps a domain error onto the wire: not-found conditions become
// 404 with a field -> message body, recoverable input and business-rule
// errors become 400 with a field -> [messages] body, anything else is a 500.
func WriteError(w http.ResponseWriter, err error) {
	var validationErr *errs.ValidationError
	if errors.As(err, &validationErr) {
		WriteJSON(w, http.StatusBadRequest, validationErr.Fields)

		return
	}

	var eligibilityErr *errs.EligibilityError
	if errors.As(err, &eligibilityErr) {
		WriteJSON(w, http.StatusBadRequest, map[string][]string{
			eligibilityErr.Field: {eligibilityErr.Message},
		})

		return
	}

	var notFoundErr *errs.NotFoundError
	if errors.As(err, &notFoundErr) {
		WriteJSON(w, http.StatusNotFound, map[string]string{
			notFoundErr.Field: notFoundErr.Message,
		})

		return
	}

	var stateErr *errs.StateError
	if errors.As(err, &stateErr) {
		WriteJSON(w, http.StatusBadRequest, map[string][]string{
			stateErr.Field: {stateErr.Message},
		})

		return
	}

	var creationErr *errs.CreationError
	if errors.As(err, &creationErr) {
		WriteJSON(w, http.StatusBadRequest, map[string][]string{
			creationErr.Field: {creationErr.Message},
		})

		return
	}

	slog.Error("Unhandled service error", "error", err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
