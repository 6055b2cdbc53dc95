package repositories

import (
	"context"

	"github.com/dukkan-app/dukkan_backend/internal/core/domain"
)

// SettlementRepositoryFacade is the cash-drawer settlement log contract.
type SettlementRepositoryFacade interface {
	// FindSettlementsBySaleIDs returns all settlement records for the given
	// sales, ordered by arrival (created_at, id) so duplicate resolution is
	// deterministic.
	FindSettlementsBySaleIDs(ctx context.Context, saleIDs []string) ([]domain.Settlement, error)
}
