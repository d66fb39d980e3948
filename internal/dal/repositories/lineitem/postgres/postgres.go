package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/wareline/shipping-svc/internal/dal/postgres"
	"github.com/wareline/shipping-svc/internal/service/models/enums"
	"github.com/wareline/shipping-svc/internal/service/models/lineitem"
)

var lineItemColumns = []string{
	"id", "order_id", "customer_id", "seller_id", "product_id",
	"product_title", "product_cost", "product_type",
	"is_additional", "is_domestic", "is_express", "shipping_cost",
	"created_at", "updated_at",
}

// LineItemDal represents line item data access layer model.
type LineItemDal struct {
	Id           int64     `db:"id"`
	OrderId      int64     `db:"order_id"`
	CustomerId   int64     `db:"customer_id"`
	SellerId     int64     `db:"seller_id"`
	ProductId    int64     `db:"product_id"`
	ProductTitle string    `db:"product_title"`
	ProductCost  int64     `db:"product_cost"`
	ProductType  string    `db:"product_type"`
	IsAdditional *string   `db:"is_additional"`
	IsDomestic   *string   `db:"is_domestic"`
	IsExpress    *string   `db:"is_express"`
	ShippingCost *int64    `db:"shipping_cost"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (li *LineItemDal) scanFrom(row pgx.Row) error {
	return row.Scan(
		&li.Id, &li.OrderId, &li.CustomerId, &li.SellerId, &li.ProductId,
		&li.ProductTitle, &li.ProductCost, &li.ProductType,
		&li.IsAdditional, &li.IsDomestic, &li.IsExpress, &li.ShippingCost,
		&li.CreatedAt, &li.UpdatedAt,
	)
}

// ToModel converts LineItemDal to service layer LineItem model.
func (li *LineItemDal) ToModel() *lineitem.LineItem {
	return &lineitem.LineItem{
		ID:           li.Id,
		OrderID:      li.OrderId,
		CustomerID:   li.CustomerId,
		SellerID:     li.SellerId,
		ProductID:    li.ProductId,
		ProductTitle: li.ProductTitle,
		ProductCost:  li.ProductCost,
		ProductType:  li.ProductType,
		IsAdditional: flagFromDal(li.IsAdditional),
		IsDomestic:   flagFromDal(li.IsDomestic),
		IsExpress:    flagFromDal(li.IsExpress),
		ShippingCost: li.ShippingCost,
		CreatedAt:    li.CreatedAt,
		UpdatedAt:    li.UpdatedAt,
	}
}

func flagFromDal(s *string) enums.Flag {
	if s == nil {
		return ""
	}

	return enums.Flag(*s)
}

func flagToDal(f enums.Flag) *string {
	if !f.IsSet() {
		return nil
	}
	s := f.String()

	return &s
}

// PostgresLineItemRepository represents a Postgres line item repository.
type PostgresLineItemRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewPostgresLineItemRepository creates a new Postgres line item repository.
func NewPostgresLineItemRepository(conn postgres.Conn) *PostgresLineItemRepository {
	return &PostgresLineItemRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert persists a new line item and returns it with the generated id.
func (r *PostgresLineItemRepository) Insert(ctx context.Context, item *lineitem.LineItem) (*lineitem.LineItem, error) {
	now := time.Now()
	query, args, err := r.sb.Insert("order_line_items").
		Columns(
			"order_id", "customer_id", "seller_id", "product_id",
			"product_title", "product_cost", "product_type",
			"created_at", "updated_at",
		).
		Values(
			item.OrderID, item.CustomerID, item.SellerID, item.ProductID,
			item.ProductTitle, item.ProductCost, item.ProductType,
			now, now,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build line item insert: %w", err)
	}

	inserted := *item
	row := r.conn.QueryRow(ctx, query, args...)
	if err := row.Scan(&inserted.ID, &inserted.CreatedAt, &inserted.UpdatedAt); err != nil {
		return nil, fmt.Errorf("failed to insert line item: %w", err)
	}

	return &inserted, nil
}

// Query retrieves line items based on filter criteria, ordered by id so the
// first unit of a product is always the oldest one.
func (r *PostgresLineItemRepository) Query(ctx context.Context, filter *lineitem.QueryLineItemsModel) ([]lineitem.LineItem, error) {
	builder := r.sb.Select(lineItemColumns...).
		From("order_line_items").
		OrderBy("id ASC")

	if len(filter.Ids) > 0 {
		builder = builder.Where(sq.Eq{"id": filter.Ids})
	}
	if len(filter.OrderIds) > 0 {
		builder = builder.Where(sq.Eq{"order_id": filter.OrderIds})
	}
	if len(filter.ProductIds) > 0 {
		builder = builder.Where(sq.Eq{"product_id": filter.ProductIds})
	}
	if len(filter.CustomerIds) > 0 {
		builder = builder.Where(sq.Eq{"customer_id": filter.CustomerIds})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build line items query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query line items: %w", err)
	}
	defer rows.Close()

	var result []lineitem.LineItem
	for rows.Next() {
		dal := LineItemDal{}
		if err := dal.scanFrom(rows); err != nil {
			return nil, fmt.Errorf("failed to scan line item: %w", err)
		}
		result = append(result, *dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// UpdateShipping persists the aggregator-owned fields of every given item.
func (r *PostgresLineItemRepository) UpdateShipping(ctx context.Context, items []lineitem.LineItem) error {
	for _, item := range items {
		query, args, err := r.sb.Update("order_line_items").
			Set("is_additional", flagToDal(item.IsAdditional)).
			Set("is_domestic", flagToDal(item.IsDomestic)).
			Set("is_express", flagToDal(item.IsExpress)).
			Set("shipping_cost", item.ShippingCost).
			Set("updated_at", time.Now()).
			Where(sq.Eq{"id": item.ID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build line item update: %w", err)
		}

		if _, err := r.conn.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to update line item %d: %w", item.ID, err)
		}
	}

	return nil
}
