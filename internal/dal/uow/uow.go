package uow

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/wareline/shipping-svc/internal/dal/interfaces/icustomerrepo"
	"github.com/wareline/shipping-svc/internal/dal/interfaces/ilineitemrepo"
	"github.com/wareline/shipping-svc/internal/dal/interfaces/iorderrepo"
	"github.com/wareline/shipping-svc/internal/dal/interfaces/ioutboxrepo"
	"github.com/wareline/shipping-svc/internal/dal/interfaces/iproductrepo"
	"github.com/wareline/shipping-svc/internal/dal/interfaces/iraterepo"
	"github.com/wareline/shipping-svc/internal/dal/postgres"
	customerrepo "github.com/wareline/shipping-svc/internal/dal/repositories/customer/postgres"
	lineitemrepo "github.com/wareline/shipping-svc/internal/dal/repositories/lineitem/postgres"
	orderrepo "github.com/wareline/shipping-svc/internal/dal/repositories/order/postgres"
	outboxrepo "github.com/wareline/shipping-svc/internal/dal/repositories/outbox/postgres"
	productrepo "github.com/wareline/shipping-svc/internal/dal/repositories/product/postgres"
	raterepo "github.com/wareline/shipping-svc/internal/dal/repositories/rate/postgres"
)

// UnitOfWork groups repository writes into one transaction. Repositories are
// re-bound to the transaction on Begin, so every call through them shares the
// same atomic scope and rolls back together.
type UnitOfWork struct {
	client *postgres.Client
	tx     pgx.Tx

	orderRepo    iorderrepo.IOrderRepository
	lineItemRepo ilineitemrepo.ILineItemRepository
	rateRepo     iraterepo.IRateRepository
	customerRepo icustomerrepo.ICustomerRepository
	productRepo  iproductrepo.IProductRepository
	outboxRepo   ioutboxrepo.IOutboxRepository
}

// NewUnitOfWork creates a unit of work with repositories bound to the pool.
func NewUnitOfWork(client *postgres.Client) *UnitOfWork {
	u := &UnitOfWork{client: client}
	u.bind(client.Pool())

	return u
}

func (u *UnitOfWork) bind(conn postgres.Conn) {
	u.orderRepo = orderrepo.NewPostgresOrderRepository(conn)
	u.lineItemRepo = lineitemrepo.NewPostgresLineItemRepository(conn)
	u.rateRepo = raterepo.NewPostgresRateRepository(conn)
	u.customerRepo = customerrepo.NewPostgresCustomerRepository(conn)
	u.productRepo = productrepo.NewPostgresProductRepository(conn)
	u.outboxRepo = outboxrepo.NewPostgresOutboxRepository(conn)
}

// Begin opens a transaction and re-binds all repositories to it.
func (u *UnitOfWork) Begin(ctx context.Context) error {
	tx, err := u.client.Pool().Begin(ctx)
	if err != nil {
		return err
	}

	u.tx = tx
	u.bind(tx)

	return nil
}

// LockCustomer takes a transaction-scoped advisory lock keyed by customer id.
// It serializes draft creation and cost recomputation across concurrent
// requests from the same customer; the lock is released on commit/rollback.
func (u *UnitOfWork) LockCustomer(ctx context.Context, customerID int64) error {
	_, err := u.tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", customerID)

	return err
}

func (u *UnitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}

	return u.tx.Commit(ctx)
}

func (u *UnitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}

	return u.tx.Rollback(ctx)
}

func (u *UnitOfWork) OrderRepository() iorderrepo.IOrderRepository {
	return u.orderRepo
}

func (u *UnitOfWork) LineItemRepository() ilineitemrepo.ILineItemRepository {
	return u.lineItemRepo
}

func (u *UnitOfWork) RateRepository() iraterepo.IRateRepository {
	return u.rateRepo
}

func (u *UnitOfWork) CustomerRepository() icustomerrepo.ICustomerRepository {
	return u.customerRepo
}

func (u *UnitOfWork) ProductRepository() iproductrepo.IProductRepository {
	return u.productRepo
}

func (u *UnitOfWork) OutboxRepository() ioutboxrepo.IOutboxRepository {
	return u.outboxRepo
}
