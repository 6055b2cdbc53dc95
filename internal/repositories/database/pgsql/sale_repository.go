package pgsql

import (
	"context"
	"fmt"

	"github.com/dukkan-app/dukkan_backend/internal/apperrors"
	"github.com/dukkan-app/dukkan_backend/internal/core/domain"
	portsrepo "github.com/dukkan-app/dukkan_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type saleRepository struct {
	BaseRepository
}

func newSaleRepository(pool *pgxpool.Pool) portsrepo.SaleRepositoryFacade {
	return &saleRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SaleRepositoryFacade = (*saleRepository)(nil)

// FindSalesByCustomerID retrieves all sale invoices and returns for a
// customer. Order is not significant; the engine re-sorts.
func (r *saleRepository) FindSalesByCustomerID(ctx context.Context, customerID string) ([]domain.Sale, error) {
	query := `
		SELECT sale_id, customer_id, invoice_number, total_amount, kind, sale_date,
		       COALESCE(safe_name, ''), COALESCE(employee_name, ''),
		       created_at, created_by, last_updated_at, last_updated_by
		FROM sales
		WHERE customer_id = $1;
	`
	rows, err := r.Pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying sales for customer %s: %v", apperrors.ErrSourceFetch, customerID, err)
	}
	defer rows.Close()

	sales := []domain.Sale{}
	for rows.Next() {
		var s domain.Sale
		if err := rows.Scan(
			&s.SaleID, &s.CustomerID, &s.InvoiceNumber, &s.TotalAmount, &s.Kind, &s.SaleDate,
			&s.SafeName, &s.EmployeeName,
			&s.CreatedAt, &s.CreatedBy, &s.LastUpdatedAt, &s.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning sale row: %v", apperrors.ErrSourceFetch, err)
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating sale rows: %v", apperrors.ErrSourceFetch, err)
	}
	return sales, nil
}

// SumSaleTotalsByCustomerID sums the stored sale totals. Totals are
// pre-signed at the source, so returns net out without any CASE logic.
func (r *saleRepository) SumSaleTotalsByCustomerID(ctx context.Context, customerID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(total_amount), 0) FROM sales WHERE customer_id = $1;`

	var sum decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, customerID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("%w: summing sale totals for customer %s: %v", apperrors.ErrSourceFetch, customerID, err)
	}
	return sum, nil
}
