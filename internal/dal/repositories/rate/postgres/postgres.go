package postgresrepo

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/wareline/shipping-svc/internal/dal/postgres"
	"github.com/wareline/shipping-svc/internal/service/models/enums"
	"github.com/wareline/shipping-svc/internal/service/models/rate"
)

// ErrRateNotFound is returned when no shipping rate matches the lookup key.
var ErrRateNotFound = errors.New("shipping rate not found")

// PostgresRateRepository reads the shipping_rates lookup table. The table is
// seeded by migrations and never mutated at runtime.
type PostgresRateRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewPostgresRateRepository creates a new Postgres shipping rate repository.
func NewPostgresRateRepository(conn postgres.Conn) *PostgresRateRepository {
	return &PostgresRateRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// FindRate resolves the shipping cost in minor units for one line item.
func (r *PostgresRateRepository) FindRate(
	ctx context.Context,
	productType string,
	domestic, express, additional enums.Flag,
) (int64, error) {
	query, args, err := r.sb.Select("id", "product_type", "is_domestic", "is_express", "is_additional", "cost").
		From("shipping_rates").
		Where(sq.Eq{
			"product_type":  productType,
			"is_domestic":   domestic.String(),
			"is_express":    express.String(),
			"is_additional": additional.String(),
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build rate query: %w", err)
	}

	matched := rate.Rate{}
	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&matched.ID, &matched.ProductType, &matched.IsDomestic, &matched.IsExpress, &matched.IsAdditional, &matched.Cost,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrRateNotFound
		}

		return 0, fmt.Errorf("failed to query shipping rate: %w", err)
	}

	return matched.Cost, nil
}
