package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/wareline/shipping-svc/internal/service/models/address"
	"github.com/wareline/shipping-svc/internal/service/models/lineitem"
	"github.com/wareline/shipping-svc/internal/service/models/order"
	addcartitem "github.com/wareline/shipping-svc/internal/transport/http/add_cart_item"
	completeorder "github.com/wareline/shipping-svc/internal/transport/http/complete_order"
	getorder "github.com/wareline/shipping-svc/internal/transport/http/get_order"
	listorders "github.com/wareline/shipping-svc/internal/transport/http/list_orders"
	setshipping "github.com/wareline/shipping-svc/internal/transport/http/set_shipping"
	"github.com/wareline/shipping-svc/pkg/http/middleware/trace"
	"github.com/wareline/shipping-svc/pkg/logger"
)

type service interface {
	SetShipping(ctx context.Context, customerID int64, p *address.Payload) (*order.Order, error)
	AddCartItem(ctx context.Context, customerID, productID int64) (*lineitem.LineItem, error)
	Complete(ctx context.Context, customerID int64) (*order.Order, error)
	GetOrder(ctx context.Context, customerID, orderID int64) (*order.Order, error)
	ListOrders(ctx context.Context, customerID int64, filter *order.QueryOrdersModel) ([]order.Order, error)
}

type HTTPTransport struct {
	server  *http.Server
	router  *chi.Mux
	service service
}

func NewHTTPTransport(service service) *HTTPTransport {
	router := newRouter()
	server := newServer(router)
	return &HTTPTransport{
		server:  server,
		router:  router,
		service: service,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Route("/users/{customerId}", func(r chi.Router) {
		r.Post("/cart/{productId}", h.addCartItem)
		r.Put("/order/shipping", h.setShipping)
		r.Put("/order/complete", h.completeOrder)
		r.Get("/orders", h.listOrders)
		r.Get("/orders/{orderId}", h.getOrder)
	})

	h.router.Get("/swagger/*", httpSwagger.WrapHandler)
}

func (h *HTTPTransport) addCartItem(w http.ResponseWriter, r *http.Request) {
	addcartitem.AddCartItem(w, r, h.service)
}

func (h *HTTPTransport) setShipping(w http.ResponseWriter, r *http.Request) {
	setshipping.SetShipping(w, r, h.service)
}

func (h *HTTPTransport) completeOrder(w http.ResponseWriter, r *http.Request) {
	completeorder.Complete(w, r, h.service)
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListOrders(w, r, h.service)
}

func (h *HTTPTransport) getOrder(w http.ResponseWriter, r *http.Request) {
	getorder.GetOrder(w, r, h.service)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(trace.NewTraceMiddleware)

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
