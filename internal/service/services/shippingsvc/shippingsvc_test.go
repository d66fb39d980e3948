package shippingsvc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wareline/shipping-svc/internal/dal/interfaces/icustomerrepo"
	"github.com/wareline/shipping-svc/internal/dal/interfaces/ilineitemrepo"
	"github.com/wareline/shipping-svc/internal/dal/interfaces/iorderrepo"
	"github.com/wareline/shipping-svc/internal/dal/interfaces/ioutboxrepo"
	"github.com/wareline/shipping-svc/internal/dal/interfaces/iproductrepo"
	"github.com/wareline/shipping-svc/internal/dal/interfaces/iraterepo"
	"github.com/wareline/shipping-svc/internal/service/errs"
	"github.com/wareline/shipping-svc/internal/service/models/address"
	"github.com/wareline/shipping-svc/internal/service/models/customer"
	"github.com/wareline/shipping-svc/internal/service/models/enums"
	"github.com/wareline/shipping-svc/internal/service/models/lineitem"
	"github.com/wareline/shipping-svc/internal/service/models/order"
	"github.com/wareline/shipping-svc/internal/service/models/outbox"
	"github.com/wareline/shipping-svc/internal/service/models/product"
)

// memStore backs the in-memory repositories shared by one test.
type memStore struct {
	orders    map[int64]*order.Order
	nextOrder int64
	items     []lineitem.LineItem
	nextItem  int64
	customers map[int64]*customer.Customer
	products  map[int64]*product.Product
	outbox    []outbox.Message
}

func newMemStore() *memStore {
	return &memStore{
		orders:    map[int64]*order.Order{},
		customers: map[int64]*customer.Customer{},
		products:  map[int64]*product.Product{},
	}
}

type memUOW struct {
	store *memStore
}

func (u *memUOW) Begin(context.Context) error               { return nil }
func (u *memUOW) LockCustomer(context.Context, int64) error { return nil }
func (u *memUOW) Commit(context.Context) error              { return nil }
func (u *memUOW) Rollback(context.Context) error            { return nil }

func (u *memUOW) OrderRepository() iorderrepo.IOrderRepository {
	return &memOrderRepo{store: u.store}
}

func (u *memUOW) LineItemRepository() ilineitemrepo.ILineItemRepository {
	return &memItemRepo{store: u.store}
}

func (u *memUOW) RateRepository() iraterepo.IRateRepository {
	return &fakeRateRepo{}
}

func (u *memUOW) CustomerRepository() icustomerrepo.ICustomerRepository {
	return &memCustomerRepo{store: u.store}
}

func (u *memUOW) ProductRepository() iproductrepo.IProductRepository {
	return &memProductRepo{store: u.store}
}

func (u *memUOW) OutboxRepository() ioutboxrepo.IOutboxRepository {
	return &memOutboxRepo{store: u.store}
}

type memOrderRepo struct {
	store *memStore
}

func (r *memOrderRepo) GetCurrentDraft(_ context.Context, customerID int64) (*order.Order, error) {
	for _, o := range r.store.orders {
		if o.CustomerID == customerID && o.Status == order.StatusDraft && o.DeletedAt == nil {
			cp := *o

			return &cp, nil
		}
	}

	return nil, nil
}

func (r *memOrderRepo) InsertIfNotExist(ctx context.Context, customerID int64) (*order.Order, error) {
	if existing, _ := r.GetCurrentDraft(ctx, customerID); existing != nil {
		return existing, nil
	}

	r.store.nextOrder++
	o := order.NewDraft(customerID)
	o.ID = r.store.nextOrder
	r.store.orders[o.ID] = o
	cp := *o

	return &cp, nil
}

func (r *memOrderRepo) GetByID(_ context.Context, id int64) (*order.Order, error) {
	o, ok := r.store.orders[id]
	if !ok || o.DeletedAt != nil {
		return nil, nil
	}
	cp := *o

	return &cp, nil
}

func (r *memOrderRepo) FindUsersOrder(ctx context.Context, customerID, orderID int64) (*order.Order, error) {
	o, err := r.GetByID(ctx, orderID)
	if err != nil || o == nil || o.CustomerID != customerID {
		return nil, err
	}

	return o, nil
}

func (r *memOrderRepo) Query(_ context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	var result []order.Order
	for _, o := range r.store.orders {
		if len(filter.CustomerIds) > 0 && o.CustomerID != filter.CustomerIds[0] {
			continue
		}
		result = append(result, *o)
	}

	return result, nil
}

func (r *memOrderRepo) Update(_ context.Context, o *order.Order) error {
	stored := r.store.orders[o.ID]
	cp := *o
	cp.LineItems = nil
	cp.Status = stored.Status
	r.store.orders[o.ID] = &cp

	return nil
}

func (r *memOrderRepo) UpdateStatus(_ context.Context, id int64, status order.Status) error {
	r.store.orders[id].Status = status

	return nil
}

type memItemRepo struct {
	store *memStore
}

func (r *memItemRepo) Insert(_ context.Context, item *lineitem.LineItem) (*lineitem.LineItem, error) {
	r.store.nextItem++
	inserted := *item
	inserted.ID = r.store.nextItem
	r.store.items = append(r.store.items, inserted)
	cp := inserted

	return &cp, nil
}

func (r *memItemRepo) Query(_ context.Context, filter *lineitem.QueryLineItemsModel) ([]lineitem.LineItem, error) {
	var result []lineitem.LineItem
	for _, item := range r.store.items {
		if len(filter.OrderIds) > 0 {
			matched := false
			for _, id := range filter.OrderIds {
				if item.OrderID == id {
					matched = true
				}
			}
			if !matched {
				continue
			}
		}
		result = append(result, item)
	}

	return result, nil
}

func (r *memItemRepo) UpdateShipping(_ context.Context, items []lineitem.LineItem) error {
	for _, updated := range items {
		for i := range r.store.items {
			if r.store.items[i].ID == updated.ID {
				r.store.items[i].IsAdditional = updated.IsAdditional
				r.store.items[i].IsDomestic = updated.IsDomestic
				r.store.items[i].IsExpress = updated.IsExpress
				r.store.items[i].ShippingCost = updated.ShippingCost
			}
		}
	}

	return nil
}

type memCustomerRepo struct {
	store *memStore
}

func (r *memCustomerRepo) GetByID(_ context.Context, id int64) (*customer.Customer, error) {
	return r.store.customers[id], nil
}

type memProductRepo struct {
	store *memStore
}

func (r *memProductRepo) GetByID(_ context.Context, id int64) (*product.Product, error) {
	return r.store.products[id], nil
}

type memOutboxRepo struct {
	store *memStore
}

func (r *memOutboxRepo) Insert(_ context.Context, msg *outbox.Message) error {
	r.store.outbox = append(r.store.outbox, *msg)

	return nil
}

func (r *memOutboxRepo) FetchUnprocessed(context.Context, int) ([]outbox.Message, error) {
	return r.store.outbox, nil
}

func (r *memOutboxRepo) MarkProcessed(context.Context, []int64) error { return nil }
func (r *memOutboxRepo) IncrementRetry(context.Context, int64) error  { return nil }

func newTestService(store *memStore) *ShippingService {
	v := address.NewValidator(nil)

	return &ShippingService{
		newUOW:     func() unitOfWork { return &memUOW{store: store} },
		validator:  v,
		resolver:   NewEligibilityResolver("US", v),
		aggregator: &Aggregator{},
	}
}

func seedBuyerSellerProduct(store *memStore) (buyerID, productID int64) {
	store.customers[1] = &customer.Customer{ID: 1, Name: "John", Surname: "Doe"}
	store.customers[2] = &customer.Customer{ID: 2, Name: "Jane", Surname: "Smith"}
	store.products[10] = &product.Product{
		ID: 10, OwnerID: 2, Type: "t-shirt", Title: "Just a T-shirt", Sku: "tee-1", Cost: 100,
	}

	return 1, 10
}

func TestSetShippingUnknownCustomer(t *testing.T) {
	svc := newTestService(newMemStore())

	_, err := svc.SetShipping(context.Background(), 42, usPayload(true))
	require.Error(t, err)

	var notFoundErr *errs.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, order.FieldID, notFoundErr.Field)
	assert.Equal(t, customer.MsgInvalidUser, notFoundErr.Message)
}

func TestSetShippingMissingFields(t *testing.T) {
	svc := newTestService(newMemStore())

	_, err := svc.SetShipping(context.Background(), 1, &address.Payload{})
	require.Error(t, err)

	var validationErr *errs.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Len(t, validationErr.Fields, 6)
}

func TestSetShippingUnparseableExpressFlag(t *testing.T) {
	store := newMemStore()
	buyerID, _ := seedBuyerSellerProduct(store)
	svc := newTestService(store)

	_, err := svc.SetShipping(context.Background(), buyerID, usPayload("maybe"))
	require.Error(t, err)

	var validationErr *errs.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []string{order.MsgInvalidIsExpress}, validationErr.Fields[order.FieldIsExpress])
}

func TestSetShippingExpressInternational(t *testing.T) {
	store := newMemStore()
	buyerID, _ := seedBuyerSellerProduct(store)
	svc := newTestService(store)

	p := usPayload(true)
	p.Country = strPtr("DE")

	_, err := svc.SetShipping(context.Background(), buyerID, p)
	require.Error(t, err)

	var eligibilityErr *errs.EligibilityError
	require.ErrorAs(t, err, &eligibilityErr)
	assert.Equal(t, errs.CodeExpressOnlyInDomesticRegion, eligibilityErr.Code)
}

func TestAddCartItemUnknownCustomer(t *testing.T) {
	svc := newTestService(newMemStore())

	_, err := svc.AddCartItem(context.Background(), 42, 10)
	require.Error(t, err)

	var notFoundErr *errs.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, lineitem.FieldCustomerID, notFoundErr.Field)
	assert.Equal(t, lineitem.MsgInvalidCustomerID, notFoundErr.Message)
}

func TestAddCartItemUnknownProduct(t *testing.T) {
	store := newMemStore()
	buyerID, _ := seedBuyerSellerProduct(store)
	svc := newTestService(store)

	_, err := svc.AddCartItem(context.Background(), buyerID, 999)
	require.Error(t, err)

	var notFoundErr *errs.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, lineitem.FieldProductID, notFoundErr.Field)
	assert.Equal(t, lineitem.MsgInvalidProductID, notFoundErr.Message)
}

func TestCompleteWithoutDraft(t *testing.T) {
	store := newMemStore()
	buyerID, _ := seedBuyerSellerProduct(store)
	svc := newTestService(store)

	_, err := svc.Complete(context.Background(), buyerID)
	require.Error(t, err)

	var notFoundErr *errs.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, order.MsgInvalidOrder, notFoundErr.Message)
}

func TestCompleteWithoutShipping(t *testing.T) {
	store := newMemStore()
	buyerID, productID := seedBuyerSellerProduct(store)
	svc := newTestService(store)

	_, err := svc.AddCartItem(context.Background(), buyerID, productID)
	require.NoError(t, err)

	_, err = svc.Complete(context.Background(), buyerID)
	require.Error(t, err)

	var stateErr *errs.StateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, order.MsgMustHaveShippingSet, stateErr.Message)
}

func TestOrderLifecycle(t *testing.T) {
	store := newMemStore()
	buyerID, productID := seedBuyerSellerProduct(store)
	svc := newTestService(store)
	ctx := context.Background()

	var item *lineitem.LineItem
	for i := 0; i < 3; i++ {
		var err error
		item, err = svc.AddCartItem(ctx, buyerID, productID)
		require.NoError(t, err)
	}
	assert.Equal(t, "Just a T-shirt", item.ProductTitle)
	assert.Equal(t, int64(2), item.SellerID)

	updated, err := svc.SetShipping(ctx, buyerID, usPayload(false))
	require.NoError(t, err)

	assert.Equal(t, enums.FlagYes, updated.IsDomestic)
	assert.Equal(t, enums.FlagNo, updated.IsExpress)
	require.Len(t, updated.LineItems, 3)
	assert.Equal(t, int64(100), *updated.LineItems[0].ShippingCost)
	assert.Equal(t, int64(50), *updated.LineItems[1].ShippingCost)
	assert.Equal(t, int64(50), *updated.LineItems[2].ShippingCost)
	assert.Equal(t, int64(200), *updated.ShippingCost)
	assert.Equal(t, int64(300), *updated.ProductCost)
	assert.Equal(t, int64(500), *updated.TotalCost)

	completed, err := svc.Complete(ctx, buyerID)
	require.NoError(t, err)
	assert.True(t, completed.IsCompleted())

	require.Len(t, store.outbox, 1)
	assert.Equal(t, outbox.EventOrderCompleted, store.outbox[0].EventType)

	// A completed order is no longer the customer's draft.
	_, err = svc.Complete(ctx, buyerID)
	require.Error(t, err)

	fetched, err := svc.GetOrder(ctx, buyerID, completed.ID)
	require.NoError(t, err)
	assert.Equal(t, completed.ID, fetched.ID)
	require.Len(t, fetched.LineItems, 3)

	orders, err := svc.ListOrders(ctx, buyerID, nil)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, order.StatusCompleted, orders[0].Status)
}

func TestGetOrderOfAnotherCustomer(t *testing.T) {
	store := newMemStore()
	buyerID, productID := seedBuyerSellerProduct(store)
	svc := newTestService(store)
	ctx := context.Background()

	item, err := svc.AddCartItem(ctx, buyerID, productID)
	require.NoError(t, err)

	_, err = svc.GetOrder(ctx, 2, item.OrderID)
	require.Error(t, err)

	var notFoundErr *errs.NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, order.MsgInvalidOrder, notFoundErr.Message)
}
