package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/wareline/shipping-svc/internal/dal/postgres"
	"github.com/wareline/shipping-svc/internal/service/models/product"
)

// ProductDal represents product data access layer model.
type ProductDal struct {
	Id        int64     `db:"id"`
	OwnerId   int64     `db:"owner_id"`
	Type      string    `db:"type"`
	Title     string    `db:"title"`
	Sku       string    `db:"sku"`
	Cost      int64     `db:"cost"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ToModel converts ProductDal to service layer Product model.
func (p *ProductDal) ToModel() *product.Product {
	return &product.Product{
		ID:        p.Id,
		OwnerID:   p.OwnerId,
		Type:      p.Type,
		Title:     p.Title,
		Sku:       p.Sku,
		Cost:      p.Cost,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// PostgresProductRepository represents a Postgres product repository.
type PostgresProductRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewPostgresProductRepository creates a new Postgres product repository.
func NewPostgresProductRepository(conn postgres.Conn) *PostgresProductRepository {
	return &PostgresProductRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// GetByID returns the product, or nil when the id is unknown.
func (r *PostgresProductRepository) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	query, args, err := r.sb.Select("id", "owner_id", "type", "title", "sku", "cost", "created_at", "updated_at").
		From("products").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build product query: %w", err)
	}

	dal := ProductDal{}
	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&dal.Id, &dal.OwnerId, &dal.Type, &dal.Title, &dal.Sku, &dal.Cost, &dal.CreatedAt, &dal.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return dal.ToModel(), nil
}
