package repositories

import (
	"context"

	"github.com/dukkan-app/dukkan_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SaleRepositoryFacade is the sale-ledger source adapter contract. Records
// come back in arbitrary order; the engine re-sorts.
type SaleRepositoryFacade interface {
	FindSalesByCustomerID(ctx context.Context, customerID string) ([]domain.Sale, error)
	// SumSaleTotalsByCustomerID returns the sum of the stored (pre-signed)
	// sale totals, so returns net out without building rows.
	SumSaleTotalsByCustomerID(ctx context.Context, customerID string) (decimal.Decimal, error)
}
