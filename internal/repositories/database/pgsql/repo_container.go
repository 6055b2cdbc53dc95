package pgsql

import (
	portsrepo "github.com/dukkan-app/dukkan_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires all pgx repositories onto one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CustomerRepo:       newCustomerRepository(dbPool),
		SaleRepo:           newSaleRepository(dbPool),
		PaymentRepo:        newPaymentRepository(dbPool),
		SettlementRepo:     newSettlementRepository(dbPool),
		LinkedPurchaseRepo: newLinkedPurchaseRepository(dbPool),
	}
}
