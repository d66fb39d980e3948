package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/wareline/shipping-svc/internal/dal/postgres"
	"github.com/wareline/shipping-svc/internal/service/models/customer"
)

// CustomerDal represents customer data access layer model.
type CustomerDal struct {
	Id        int64     `db:"id"`
	Name      string    `db:"name"`
	Surname   string    `db:"surname"`
	Balance   int64     `db:"balance"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ToModel converts CustomerDal to service layer Customer model.
func (c *CustomerDal) ToModel() *customer.Customer {
	return &customer.Customer{
		ID:        c.Id,
		Name:      c.Name,
		Surname:   c.Surname,
		Balance:   c.Balance,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// PostgresCustomerRepository represents a Postgres customer repository.
type PostgresCustomerRepository struct {
	conn postgres.Conn
	sb   sq.StatementBuilderType
}

// NewPostgresCustomerRepository creates a new Postgres customer repository.
func NewPostgresCustomerRepository(conn postgres.Conn) *PostgresCustomerRepository {
	return &PostgresCustomerRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// GetByID returns the customer, or nil when the id is unknown.
func (r *PostgresCustomerRepository) GetByID(ctx context.Context, id int64) (*customer.Customer, error) {
	query, args, err := r.sb.Select("id", "name", "surname", "balance", "created_at", "updated_at").
		From("customers").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build customer query: %w", err)
	}

	dal := CustomerDal{}
	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&dal.Id, &dal.Name, &dal.Surname, &dal.Balance, &dal.CreatedAt, &dal.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to query customer: %w", err)
	}

	return dal.ToModel(), nil
}
