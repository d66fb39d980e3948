package listorders

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/schema"

	"github.com/wareline/shipping-svc/internal/service/models/order"
	"github.com/wareline/shipping-svc/internal/transport/http/converters"
)

// service is an interface for the service layer.
type service interface {
	ListOrders(ctx context.Context, customerID int64, filter *order.QueryOrdersModel) ([]order.Order, error)
}

type listOrdersRequest struct {
	Ids      []int64  `schema:"ids"`
	Statuses []string `schema:"statuses"`
	Limit    int      `schema:"limit"`
	Offset   int      `schema:"offset"`
}

var queryDecoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)

	return d
}()

// ListOrders handles the list customer orders request.
func ListOrders(w http.ResponseWriter, r *http.Request, service service) {
	customerID, err := strconv.ParseInt(chi.URLParam(r, "customerId"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid customer id", http.StatusBadRequest)
		slog.Error("Error parsing customer id for list orders", "error", err)

		return
	}

	var req listOrdersRequest
	if err := queryDecoder.Decode(&req, r.URL.Query()); err != nil {
		http.Error(w, "Invalid query parameters", http.StatusBadRequest)
		slog.Error("Error decoding query parameters for list orders", "error", err)

		return
	}

	filter := &order.QueryOrdersModel{
		Ids:    req.Ids,
		Limit:  req.Limit,
		Offset: req.Offset,
	}
	for _, status := range req.Statuses {
		filter.Statuses = append(filter.Statuses, order.Status(status))
	}

	orders, err := service.ListOrders(r.Context(), customerID, filter)
	if err != nil {
		converters.WriteError(w, err)
		slog.Error("Error listing orders", "error", err)

		return
	}

	views := make([]converters.OrderView, 0, len(orders))
	for i := range orders {
		views = append(views, converters.ToOrderView(&orders[i], true))
	}

	converters.WriteJSON(w, http.StatusOK, views)
}
