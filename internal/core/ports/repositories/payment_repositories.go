package repositories

import (
	"context"

	"github.com/dukkan-app/dukkan_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PaymentRepositoryFacade is the payment-ledger source adapter contract.
type PaymentRepositoryFacade interface {
	FindPaymentsByCustomerID(ctx context.Context, customerID string) ([]domain.Payment, error)
	// SumPaymentEffectByCustomerID returns the net signed balance effect of
	// all payment records: loans (notes prefixed with loanMarker) count
	// positive, ordinary payments negative.
	SumPaymentEffectByCustomerID(ctx context.Context, customerID string, loanMarker string) (decimal.Decimal, error)
}
