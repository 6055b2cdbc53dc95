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

type linkedPurchaseRepository struct {
	BaseRepository
}

func newLinkedPurchaseRepository(pool *pgxpool.Pool) portsrepo.LinkedPurchaseRepositoryFacade {
	return &linkedPurchaseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LinkedPurchaseRepositoryFacade = (*linkedPurchaseRepository)(nil)

// FindPurchasesBySupplierID retrieves the linked supplier's purchase
// invoices and returns.
func (r *linkedPurchaseRepository) FindPurchasesBySupplierID(ctx context.Context, supplierID string) ([]domain.LinkedPurchase, error) {
	query := `
		SELECT purchase_id, supplier_id, invoice_number, total_amount, kind, purchase_date,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM purchases
		WHERE supplier_id = $1;
	`
	rows, err := r.Pool.Query(ctx, query, supplierID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying purchases for supplier %s: %v", apperrors.ErrSourceFetch, supplierID, err)
	}
	defer rows.Close()

	purchases := []domain.LinkedPurchase{}
	for rows.Next() {
		var p domain.LinkedPurchase
		if err := rows.Scan(
			&p.PurchaseID, &p.SupplierID, &p.InvoiceNumber, &p.TotalAmount, &p.Kind, &p.PurchaseDate,
			&p.CreatedAt, &p.CreatedBy, &p.LastUpdatedAt, &p.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning purchase row: %v", apperrors.ErrSourceFetch, err)
		}
		purchases = append(purchases, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating purchase rows: %v", apperrors.ErrSourceFetch, err)
	}
	return purchases, nil
}

// SumPurchaseEffectBySupplierID computes the linked ledger's net effect on
// the customer balance in SQL: purchases act like payments (negative),
// purchase returns undo them (positive).
func (r *linkedPurchaseRepository) SumPurchaseEffectBySupplierID(ctx context.Context, supplierID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(
			CASE WHEN kind = 'PURCHASE_RETURN' THEN ABS(total_amount) ELSE -ABS(total_amount) END
		), 0)
		FROM purchases
		WHERE supplier_id = $1;
	`
	var sum decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, supplierID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("%w: summing purchase effect for supplier %s: %v", apperrors.ErrSourceFetch, supplierID, err)
	}
	return sum, nil
}
