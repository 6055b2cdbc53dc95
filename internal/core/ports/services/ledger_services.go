package services

import (
	"context"

	"github.com/dukkan-app/dukkan_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerSvcFacade is the reconciliation engine's consumer contract.
//
// Only a missing customer is a fatal error; every other condition degrades
// and is reported as warnings on the returned statement.
type LedgerSvcFacade interface {
	// GetAccountStatement rebuilds the customer's chronological statement
	// with running balances from all ledger sources.
	GetAccountStatement(ctx context.Context, customerID string) (*domain.AccountStatement, error)
	// GetCurrentBalance computes only the final balance via SQL-side
	// aggregation, without building statement rows.
	GetCurrentBalance(ctx context.Context, customerID string) (decimal.Decimal, error)
	// InvalidateCustomer drops any cached statement snapshot for the
	// customer. Change notifications from the source ledgers call this.
	InvalidateCustomer(customerID string)
}
