package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/wareline/shipping-svc/internal/dal/postgres"
	"github.com/wareline/shipping-svc/internal/service/errs"
	"github.com/wareline/shipping-svc/internal/service/models/enums"
	"github.com/wareline/shipping-svc/internal/service/models/lineitem"
	"github.com/wareline/shipping-svc/internal/service/models/order"
)

// orderColumns is the column list shared by every order select.
var orderColumns = []string{
	"id", "customer_id", "status", "is_domestic", "is_express",
	"product_cost", "shipping_cost", "total_cost",
	"name", "surname", "street", "state", "zip", "country", "phone",
	"created_at", "updated_at", "deleted_at",
}

// OrderDal represents order data access layer model.
type OrderDal struct {
	Id           int64      `db:"id"`
	CustomerId   int64      `db:"customer_id"`
	Status       string     `db:"status"`
	IsDomestic   *string    `db:"is_domestic"`
	IsExpress    *string    `db:"is_express"`
	ProductCost  *int64     `db:"product_cost"`
	ShippingCost *int64     `db:"shipping_cost"`
	TotalCost    *int64     `db:"total_cost"`
	Name         *string    `db:"name"`
	Surname      *string    `db:"surname"`
	Street       *string    `db:"street"`
	State        *string    `db:"state"`
	Zip          *string    `db:"zip"`
	Country      *string    `db:"country"`
	Phone        *string    `db:"phone"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at"`
}

func (o *OrderDal) scanFrom(row pgx.Row) error {
	return row.Scan(
		&o.Id, &o.CustomerId, &o.Status, &o.IsDomestic, &o.IsExpress,
		&o.ProductCost, &o.ShippingCost, &o.TotalCost,
		&o.Name, &o.Surname, &o.Street, &o.State, &o.Zip, &o.Country, &o.Phone,
		&o.CreatedAt, &o.UpdatedAt, &o.DeletedAt,
	)
}

// ToModel converts OrderDal to service layer Order model.
func (o *OrderDal) ToModel() *order.Order {
	return &order.Order{
		ID:           o.Id,
		CustomerID:   o.CustomerId,
		Status:       order.Status(o.Status),
		IsDomestic:   flagFromDal(o.IsDomestic),
		IsExpress:    flagFromDal(o.IsExpress),
		ProductCost:  o.ProductCost,
		ShippingCost: o.ShippingCost,
		TotalCost:    o.TotalCost,
		Name:         stringFromDal(o.Name),
		Surname:      stringFromDal(o.Surname),
		Street:       stringFromDal(o.Street),
		State:        o.State,
		Zip:          o.Zip,
		Country:      stringFromDal(o.Country),
		Phone:        stringFromDal(o.Phone),
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
		DeletedAt:    o.DeletedAt,
		LineItems:    []lineitem.LineItem{}, // Populated separately.
	}
}

func flagFromDal(s *string) enums.Flag {
	if s == nil {
		return ""
	}

	return enums.Flag(*s)
}

func stringFromDal(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

func flagToDal(f enums.Flag) *string {
	if !f.IsSet() {
		return nil
	}
	s := f.String()

	return &s
}

func stringToDal(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

// PostgresOrderRepository represents a Postgres order repository.
type PostgresOrderRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderRepository creates a new Postgres order repository.
func NewPostgresOrderRepository(conn postgres.Conn) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// GetCurrentDraft returns the customer's open draft order, or nil when the
// customer has none.
func (r *PostgresOrderRepository) GetCurrentDraft(ctx context.Context, customerID int64) (*order.Order, error) {
	query, args, err := r.sb.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"customer_id": customerID, "status": string(order.StatusDraft)}).
		Where("deleted_at IS NULL").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build draft query: %w", err)
	}

	dal := OrderDal{}
	if err := dal.scanFrom(r.conn.QueryRow(ctx, query, args...)); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to query draft order: %w", err)
	}

	return dal.ToModel(), nil
}

// InsertIfNotExist returns the customer's current draft order, creating a new
// one when it does not exist yet. The caller must hold the per-customer lock
// so two concurrent requests cannot both insert a draft.
func (r *PostgresOrderRepository) InsertIfNotExist(ctx context.Context, customerID int64) (*order.Order, error) {
	existing, err := r.GetCurrentDraft(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	now := time.Now()
	query, args, err := r.sb.Insert("orders").
		Columns("customer_id", "status", "created_at", "updated_at").
		Values(customerID, string(order.StatusDraft), now, now).
		Suffix("RETURNING " + strings.Join(orderColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build draft insert: %w", err)
	}

	dal := OrderDal{}
	if err := dal.scanFrom(r.conn.QueryRow(ctx, query, args...)); err != nil {
		return nil, fmt.Errorf("failed to insert draft order: %w", err)
	}

	created := dal.ToModel()
	if created == nil || created.ID == 0 {
		return nil, &errs.CreationError{Field: order.FieldOrderID, Message: order.MsgCantCreate}
	}

	return created, nil
}

// GetByID re-loads the authoritative order row, or nil when absent.
func (r *PostgresOrderRepository) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	query, args, err := r.sb.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": id}).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build order query: %w", err)
	}

	dal := OrderDal{}
	if err := dal.scanFrom(r.conn.QueryRow(ctx, query, args...)); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	return dal.ToModel(), nil
}

// FindUsersOrder returns the order only when it belongs to the customer.
func (r *PostgresOrderRepository) FindUsersOrder(ctx context.Context, customerID, orderID int64) (*order.Order, error) {
	query, args, err := r.sb.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": orderID, "customer_id": customerID}).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build order query: %w", err)
	}

	dal := OrderDal{}
	if err := dal.scanFrom(r.conn.QueryRow(ctx, query, args...)); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to query user order: %w", err)
	}

	return dal.ToModel(), nil
}

// Query retrieves orders based on filter criteria.
func (r *PostgresOrderRepository) Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	builder := r.sb.Select(orderColumns...).
		From("orders").
		Where("deleted_at IS NULL").
		OrderBy("id ASC")

	if len(filter.Ids) > 0 {
		builder = builder.Where(sq.Eq{"id": filter.Ids})
	}
	if len(filter.CustomerIds) > 0 {
		builder = builder.Where(sq.Eq{"customer_id": filter.CustomerIds})
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		builder = builder.Where(sq.Eq{"status": statuses})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build orders query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var result []order.Order
	for rows.Next() {
		dal := OrderDal{}
		if err := dal.scanFrom(rows); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		result = append(result, *dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Update persists the mutable order fields (address, flags, costs).
func (r *PostgresOrderRepository) Update(ctx context.Context, o *order.Order) error {
	query, args, err := r.sb.Update("orders").
		Set("is_domestic", flagToDal(o.IsDomestic)).
		Set("is_express", flagToDal(o.IsExpress)).
		Set("product_cost", o.ProductCost).
		Set("shipping_cost", o.ShippingCost).
		Set("total_cost", o.TotalCost).
		Set("name", stringToDal(o.Name)).
		Set("surname", stringToDal(o.Surname)).
		Set("street", stringToDal(o.Street)).
		Set("state", o.State).
		Set("zip", o.Zip).
		Set("country", stringToDal(o.Country)).
		Set("phone", stringToDal(o.Phone)).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": o.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build order update: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}

	return nil
}

// UpdateStatus mutates only the status of the given order row.
func (r *PostgresOrderRepository) UpdateStatus(ctx context.Context, id int64, status order.Status) error {
	query, args, err := r.sb.Update("orders").
		Set("status", string(status)).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build status update: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	return nil
}
