package repositories

import (
	"context"

	"github.com/dukkan-app/dukkan_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LinkedPurchaseRepositoryFacade is the linked supplier's purchase-ledger
// contract. Queried by supplier id, only when the customer is linked.
type LinkedPurchaseRepositoryFacade interface {
	FindPurchasesBySupplierID(ctx context.Context, supplierID string) ([]domain.LinkedPurchase, error)
	// SumPurchaseEffectBySupplierID returns the net signed balance effect on
	// the linked customer: purchases negative, purchase returns positive.
	SumPurchaseEffectBySupplierID(ctx context.Context, supplierID string) (decimal.Decimal, error)
}
