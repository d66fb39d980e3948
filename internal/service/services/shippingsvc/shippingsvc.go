package shippingsvc

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/wareline/shipping-svc/internal/dal/interfaces/icustomerrepo"
	"github.com/wareline/shipping-svc/internal/dal/interfaces/ilineitemrepo"
	"github.com/wareline/shipping-svc/internal/dal/interfaces/iorderrepo"
	"github.com/wareline/shipping-svc/internal/dal/interfaces/ioutboxrepo"
	"github.com/wareline/shipping-svc/internal/dal/interfaces/iproductrepo"
	"github.com/wareline/shipping-svc/internal/dal/interfaces/iraterepo"
	"github.com/wareline/shipping-svc/internal/dal/postgres"
	"github.com/wareline/shipping-svc/internal/dal/uow"
	"github.com/wareline/shipping-svc/internal/service/errs"
	"github.com/wareline/shipping-svc/internal/service/models/address"
	"github.com/wareline/shipping-svc/internal/service/models/customer"
	"github.com/wareline/shipping-svc/internal/service/models/lineitem"
	"github.com/wareline/shipping-svc/internal/service/models/order"
	"github.com/wareline/shipping-svc/internal/service/models/outbox"
)

// unitOfWork is the transaction scope the service runs its mutations in.
type unitOfWork interface {
	Begin(ctx context.Context) error
	LockCustomer(ctx context.Context, customerID int64) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() iorderrepo.IOrderRepository
	LineItemRepository() ilineitemrepo.ILineItemRepository
	RateRepository() iraterepo.IRateRepository
	CustomerRepository() icustomerrepo.ICustomerRepository
	ProductRepository() iproductrepo.IProductRepository
	OutboxRepository() ioutboxrepo.IOutboxRepository
}

// ShippingService orchestrates the order lifecycle: cart additions, shipping
// address application with eligibility checks, cost recomputation and the
// draft -> completed transition.
type ShippingService struct {
	pgClient   *postgres.Client
	newUOW     func() unitOfWork
	validator  *address.Validator
	resolver   *EligibilityResolver
	aggregator *Aggregator
}

// option is a function that configures the ShippingService.
type option func(*ShippingService)

// MustNewShippingService creates a new ShippingService.
func MustNewShippingService(opts ...option) *ShippingService {
	s := &ShippingService{
		validator:  address.NewValidator(nil),
		aggregator: &Aggregator{},
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.resolver == nil {
		s.resolver = NewEligibilityResolver("US", s.validator)
	}
	if s.newUOW == nil && s.pgClient != nil {
		s.newUOW = func() unitOfWork { return uow.NewUnitOfWork(s.pgClient) }
	}
	if s.newUOW == nil {
		panic("shippingsvc: a postgres client is required")
	}

	return s
}

// WithPostgresClient sets the Postgres client for the ShippingService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *ShippingService) {
		s.pgClient = pgClient
	}
}

// WithAddressValidator overrides the address rule set.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithAddressValidator(v *address.Validator) option {
	return func(s *ShippingService) {
		s.validator = v
	}
}

// WithHomeCountry sets the country code treated as domestic.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithHomeCountry(code string) option {
	return func(s *ShippingService) {
		s.resolver = NewEligibilityResolver(code, s.validator)
	}
}

// SetShipping validates the address, resolves the region flags, applies them
// and the address to the customer's draft order, cascades to the line items
// and recomputes all costs. It returns the refreshed order.
func (s *ShippingService) SetShipping(ctx context.Context, customerID int64, p *address.Payload) (*order.Order, error) {
	if err := s.validator.Validate(p); err != nil {
		return nil, err
	}

	isDomestic := s.resolver.IsDomestic(p)

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, err
	}
	defer rollback(ctx, work)

	if err := work.LockCustomer(ctx, customerID); err != nil {
		return nil, err
	}

	cust, err := work.CustomerRepository().GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if cust == nil {
		return nil, &errs.NotFoundError{Field: order.FieldID, Message: customer.MsgInvalidUser}
	}

	draft, err := work.OrderRepository().InsertIfNotExist(ctx, cust.ID)
	if err != nil {
		return nil, err
	}

	if err := s.applyAddress(draft, p, isDomestic); err != nil {
		return nil, err
	}
	if err := work.OrderRepository().Update(ctx, draft); err != nil {
		return nil, err
	}

	if err := s.recalculate(ctx, work, draft); err != nil {
		return nil, err
	}

	if err := work.Commit(ctx); err != nil {
		return nil, err
	}

	return s.refresh(ctx, draft.ID)
}

// applyAddress copies the payload onto the order. The region flag must be set
// before the express flag so the order's own eligibility invariant can fire.
func (s *ShippingService) applyAddress(o *order.Order, p *address.Payload, isDomestic interface{}) error {
	if err := o.SetIsDomestic(isDomestic); err != nil {
		return err
	}
	if err := o.SetIsExpress(p.IsExpress); err != nil {
		return err
	}

	o.Name = *p.Name
	o.Surname = *p.Surname
	o.Street = *p.Street
	o.Country = *p.Country
	o.Phone = *p.Phone
	o.State = p.State
	o.Zip = p.Zip

	return nil
}

// AddCartItem attaches a product to the customer's draft order as a new line
// item, snapshotting the product data, and recomputes the order's costs.
func (s *ShippingService) AddCartItem(ctx context.Context, customerID, productID int64) (*lineitem.LineItem, error) {
	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, err
	}
	defer rollback(ctx, work)

	if err := work.LockCustomer(ctx, customerID); err != nil {
		return nil, err
	}

	cust, err := work.CustomerRepository().GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if cust == nil {
		return nil, &errs.NotFoundError{Field: lineitem.FieldCustomerID, Message: lineitem.MsgInvalidCustomerID}
	}

	prod, err := work.ProductRepository().GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if prod == nil {
		return nil, &errs.NotFoundError{Field: lineitem.FieldProductID, Message: lineitem.MsgInvalidProductID}
	}

	seller, err := work.CustomerRepository().GetByID(ctx, prod.OwnerID)
	if err != nil {
		return nil, err
	}
	if seller == nil {
		return nil, &errs.NotFoundError{Field: lineitem.FieldSellerID, Message: lineitem.MsgInvalidSellerID}
	}

	draft, err := work.OrderRepository().InsertIfNotExist(ctx, cust.ID)
	if err != nil {
		return nil, err
	}

	item := &lineitem.LineItem{
		OrderID:      draft.ID,
		CustomerID:   cust.ID,
		SellerID:     seller.ID,
		ProductID:    prod.ID,
		ProductTitle: prod.Title,
		ProductCost:  prod.Cost,
		ProductType:  prod.Type,
	}
	item, err = work.LineItemRepository().Insert(ctx, item)
	if err != nil {
		return nil, err
	}

	if err := s.recalculate(ctx, work, draft); err != nil {
		return nil, err
	}

	if err := work.Commit(ctx); err != nil {
		return nil, err
	}

	return item, nil
}

// Complete transitions the customer's draft order to completed and enqueues
// an order.completed event in the same transaction.
func (s *ShippingService) Complete(ctx context.Context, customerID int64) (*order.Order, error) {
	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, err
	}
	defer rollback(ctx, work)

	if err := work.LockCustomer(ctx, customerID); err != nil {
		return nil, err
	}

	draft, err := work.OrderRepository().GetCurrentDraft(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, &errs.NotFoundError{Field: order.FieldID, Message: order.MsgInvalidOrder}
	}

	items, err := work.LineItemRepository().Query(ctx, &lineitem.QueryLineItemsModel{OrderIds: []int64{draft.ID}})
	if err != nil {
		return nil, err
	}

	// Re-load the authoritative row by id right before mutating the status
	// so a concurrent change is not overwritten.
	current, err := work.OrderRepository().GetByID(ctx, draft.ID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, &errs.NotFoundError{Field: order.FieldID, Message: order.MsgInvalidOrder}
	}

	if err := current.Complete(len(items)); err != nil {
		return nil, err
	}
	if err := work.OrderRepository().UpdateStatus(ctx, current.ID, current.Status); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(outbox.OrderCompletedPayload{
		OrderID:    current.ID,
		CustomerID: current.CustomerID,
		TotalCost:  current.TotalCost,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal completion event: %w", err)
	}
	msg := &outbox.Message{EventType: outbox.EventOrderCompleted, Payload: payload}
	if err := work.OutboxRepository().Insert(ctx, msg); err != nil {
		return nil, err
	}

	if err := work.Commit(ctx); err != nil {
		return nil, err
	}

	return s.refresh(ctx, current.ID)
}

// GetOrder returns the customer's order with its line items attached.
func (s *ShippingService) GetOrder(ctx context.Context, customerID, orderID int64) (*order.Order, error) {
	work := s.newUOW()

	o, err := work.OrderRepository().FindUsersOrder(ctx, customerID, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, &errs.NotFoundError{Field: order.FieldID, Message: order.MsgInvalidOrder}
	}

	items, err := work.LineItemRepository().Query(ctx, &lineitem.QueryLineItemsModel{OrderIds: []int64{o.ID}})
	if err != nil {
		return nil, err
	}
	o.LineItems = items

	return o, nil
}

// ListOrders returns all of the customer's orders with line items attached.
func (s *ShippingService) ListOrders(ctx context.Context, customerID int64, filter *order.QueryOrdersModel) ([]order.Order, error) {
	work := s.newUOW()

	if filter == nil {
		filter = &order.QueryOrdersModel{}
	}
	filter.CustomerIds = []int64{customerID}

	orders, err := work.OrderRepository().Query(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return []order.Order{}, nil
	}

	orderIds := make([]int64, len(orders))
	for i, o := range orders {
		orderIds[i] = o.ID
	}
	items, err := work.LineItemRepository().Query(ctx, &lineitem.QueryLineItemsModel{OrderIds: orderIds})
	if err != nil {
		return nil, err
	}

	for i := range orders {
		for _, item := range items {
			if item.OrderID == orders[i].ID {
				orders[i].LineItems = append(orders[i].LineItems, item)
			}
		}
	}

	return orders, nil
}

// recalculate runs the aggregator over the order's full line item set and
// persists the results, all inside the caller's transaction.
func (s *ShippingService) recalculate(ctx context.Context, work unitOfWork, o *order.Order) error {
	items, err := work.LineItemRepository().Query(ctx, &lineitem.QueryLineItemsModel{OrderIds: []int64{o.ID}})
	if err != nil {
		return err
	}

	if err := s.aggregator.Recalculate(ctx, o, items, work.RateRepository()); err != nil {
		return err
	}

	if err := work.LineItemRepository().UpdateShipping(ctx, o.LineItems); err != nil {
		return err
	}

	return work.OrderRepository().Update(ctx, o)
}

// refresh re-loads the authoritative order record outside the transaction.
func (s *ShippingService) refresh(ctx context.Context, orderID int64) (*order.Order, error) {
	work := s.newUOW()

	o, err := work.OrderRepository().GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, &errs.NotFoundError{Field: order.FieldID, Message: order.MsgInvalidOrder}
	}

	items, err := work.LineItemRepository().Query(ctx, &lineitem.QueryLineItemsModel{OrderIds: []int64{o.ID}})
	if err != nil {
		return nil, err
	}
	o.LineItems = items

	return o, nil
}

// rollback is a no-op after commit; pgx returns ErrTxClosed which we ignore.
func rollback(ctx context.Context, work unitOfWork) {
	if err := work.Rollback(ctx); err != nil {
		slog.Debug("rollback after commit", "error", err)
	}
}
