package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dukkan-app/dukkan_backend/internal/apperrors"
	"github.com/dukkan-app/dukkan_backend/internal/core/domain"
	portsrepo "github.com/dukkan-app/dukkan_backend/internal/core/ports/repositories"
	"github.com/dukkan-app/dukkan_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type customerRepository struct {
	BaseRepository
}

func newCustomerRepository(pool *pgxpool.Pool) portsrepo.CustomerRepositoryFacade {
	return &customerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CustomerRepositoryFacade = (*customerRepository)(nil)

const customerColumns = `customer_id, name, phone, opening_balance, linked_supplier_id, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var c domain.Customer
	var linkedSupplierID sql.NullString
	err := row.Scan(
		&c.CustomerID,
		&c.Name,
		&c.Phone,
		&c.OpeningBalance,
		&linkedSupplierID,
		&c.IsActive,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if linkedSupplierID.Valid {
		c.LinkedSupplierID = &linkedSupplierID.String
	}
	return &c, nil
}

// FindCustomerByID retrieves a customer account by its ID.
func (r *customerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1;`

	customer, err := scanCustomer(r.Pool.QueryRow(ctx, query, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find customer by ID %s: %w", customerID, err)
	}
	return customer, nil
}

// ListCustomers returns a page of customers ordered by name then id, using
// keyset pagination with an opaque cursor token.
func (r *customerRepository) ListCustomers(ctx context.Context, limit int, nextToken *string) ([]domain.Customer, *string, error) {
	query := `SELECT ` + customerColumns + ` FROM customers`
	args := []any{}

	if nextToken != nil && *nextToken != "" {
		afterName, afterID, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		query += ` WHERE (name, customer_id) > ($1, $2)`
		args = append(args, afterName, afterID)
	}
	query += fmt.Sprintf(` ORDER BY name, customer_id LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1) // one extra row to detect the next page

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan customer row: %w", err)
		}
		customers = append(customers, *customer)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating customer rows: %w", err)
	}

	var token *string
	if len(customers) > limit {
		customers = customers[:limit]
		last := customers[len(customers)-1]
		encoded := pagination.EncodeCursor(last.Name, last.CustomerID)
		token = &encoded
	}
	return customers, token, nil
}
