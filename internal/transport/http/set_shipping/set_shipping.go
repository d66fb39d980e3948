package setshipping

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/wareline/shipping-svc/internal/service/models/address"
	"github.com/wareline/shipping-svc/internal/service/models/order"
	"github.com/wareline/shipping-svc/internal/transport/http/converters"
)

// service is an interface for the service layer.
type service interface {
	SetShipping(ctx context.Context, customerID int64, p *address.Payload) (*order.Order, error)
}

// SetShipping handles the set shipping address request.
func SetShipping(w http.ResponseWriter, r *http.Request, service service) {
	customerID, err := strconv.ParseInt(chi.URLParam(r, "customerId"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid customer id", http.StatusBadRequest)
		slog.Error("Error parsing customer id for set shipping", "error", err)

		return
	}

	var payload address.Payload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Failed to decode request body", http.StatusBadRequest)
		slog.Error("Error decoding request body for set shipping", "error", err)

		return
	}

	updated, err := service.SetShipping(r.Context(), customerID, &payload)
	if err != nil {
		converters.WriteError(w, err)
		slog.Error("Error setting shipping address", "error", err)

		return
	}

	converters.WriteJSON(w, http.StatusOK, converters.ToOrderView(updated, true))
}
