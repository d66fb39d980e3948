package completeorder

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
	Complete(ctx context.Context, customerID int64) (*order.Order, error)
}

// Complete handles the complete order request.
func Complete(w http.ResponseWriter, r *http.Request, service service) {
	customerID, err := strconv.ParseInt(chi.URLParam(r, "customerId"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid customer id", http.StatusBadRequest)
		slog.Error("Error parsing customer id for complete order", "error", err)

		return
	}

	completed, err := service.Complete(r.Context(), customerID)
	if err != nil {
		converters.WriteError(w, err)
		slog.Error("Error completing order", "error", err)

		return
	}

	converters.WriteJSON(w, http.StatusOK, converters.ToOrderView(completed, true))
}
