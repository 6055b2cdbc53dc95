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

type paymentRepository struct {
	BaseRepository
}

func newPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryFacade {
	return &paymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PaymentRepositoryFacade = (*paymentRepository)(nil)

// FindPaymentsByCustomerID retrieves all payment records for a customer.
func (r *paymentRepository) FindPaymentsByCustomerID(ctx context.Context, customerID string) ([]domain.Payment, error) {
	query := `
		SELECT payment_id, customer_id, amount, COALESCE(notes, ''), payment_date,
		       COALESCE(safe_name, ''), COALESCE(employee_name, ''),
		       created_at, created_by, last_updated_at, last_updated_by
		FROM payments
		WHERE customer_id = $1;
	`
	rows, err := r.Pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying payments for customer %s: %v", apperrors.ErrSourceFetch, customerID, err)
	}
	defer rows.Close()

	payments := []domain.Payment{}
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(
			&p.PaymentID, &p.CustomerID, &p.Amount, &p.Notes, &p.PaymentDate,
			&p.SafeName, &p.EmployeeName,
			&p.CreatedAt, &p.CreatedBy, &p.LastUpdatedAt, &p.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning payment row: %v", apperrors.ErrSourceFetch, err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating payment rows: %v", apperrors.ErrSourceFetch, err)
	}
	return payments, nil
}

// SumPaymentEffectByCustomerID computes the net signed balance effect of
// all payment records in SQL: loan-marked records add to the balance owed,
// ordinary payments subtract from it. The marker test mirrors the
// classification resolver's prefix rule.
func (r *paymentRepository) SumPaymentEffectByCustomerID(ctx context.Context, customerID string, loanMarker string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(
			CASE WHEN $2 <> '' AND TRIM(COALESCE(notes, '')) LIKE $2 || '%'
			     THEN ABS(amount)
			     ELSE -ABS(amount)
			END
		), 0)
		FROM payments
		WHERE customer_id = $1;
	`
	var sum decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, customerID, loanMarker).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("%w: summing payment effect for customer %s: %v", apperrors.ErrSourceFetch, customerID, err)
	}
	return sum, nil
}
