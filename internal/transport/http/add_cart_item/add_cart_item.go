package addcartitem

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/wareline/shipping-svc/internal/service/models/lineitem"
	"github.com/wareline/shipping-svc/internal/transport/http/converters"
)

// service is an interface for the service layer.
type service interface {
	AddCartItem(ctx context.Context, customerID, productID int64) (*lineitem.LineItem, error)
}

type addCartItemRequest struct {
	CustomerID int64 `validate:"required,gt=0"`
	ProductID  int64 `validate:"required,gt=0"`
}

var validate = validator.New()

// AddCartItem handles the add product to cart request.
func AddCartItem(w http.ResponseWriter, r *http.Request, service service) {
	customerID, err := strconv.ParseInt(chi.URLParam(r, "customerId"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid customer id", http.StatusBadRequest)
		slog.Error("Error parsing customer id for add cart item", "error", err)

		return
	}

	productID, err := strconv.ParseInt(chi.URLParam(r, "productId"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid product id", http.StatusBadRequest)
		slog.Error("Error parsing product id for add cart item", "error", err)

		return
	}

	req := addCartItemRequest{CustomerID: customerID, ProductID: productID}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "Invalid request parameters", http.StatusBadRequest)
		slog.Error("Error validating add cart item request", "error", err)

		return
	}

	item, err := service.AddCartItem(r.Context(), req.CustomerID, req.ProductID)
	if err != nil {
		converters.WriteError(w, err)
		slog.Error("Error adding cart item", "error", err)

		return
	}

	converters.WriteJSON(w, http.StatusCreated, converters.ToLineItemView(item))
}
