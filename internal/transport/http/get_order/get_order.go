package getorder

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/wareline/shipping-svc/internal/service/models/order"
	"github.com/wareline/shipping-svc/internal/transport/http/converters"
)

// service is an interface for the service layer.
type service interface {
	GetOrder(ctx context.Context, customerID, orderID int64) (*order.Order, error)
}

// GetOrder handles the get single order request.
func GetOrder(w http.ResponseWriter, r *http.Request, service service) {
	customerID, err := strconv.ParseInt(chi.URLParam(r, "customerId"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid customer id", http.StatusBadRequest)
		slog.Error("Error parsing customer id for get order", "error", err)

		return
	}

	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderId"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid order id", http.StatusBadRequest)
		slog.Error("Error parsing order id for get order", "error", err)

		return
	}

	o, err := service.GetOrder(r.Context(), customerID, orderID)
	if err != nil {
		converters.WriteError(w, err)
		slog.Error("Error getting order", "error", err)

		return
	}

	converters.WriteJSON(w, http.StatusOK, converters.ToOrderView(o, true))
}
