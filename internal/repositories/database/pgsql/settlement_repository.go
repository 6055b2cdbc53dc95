package pgsql

import (
	"context"
	"fmt"

	"github.com/dukkan-app/dukkan_backend/internal/apperrors"
	"github.com/dukkan-app/dukkan_backend/internal/core/domain"
	portsrepo "github.com/dukkan-app/dukkan_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type settlementRepository struct {
	BaseRepository
}

func newSettlementRepository(pool *pgxpool.Pool) portsrepo.SettlementRepositoryFacade {
	return &settlementRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SettlementRepositoryFacade = (*settlementRepository)(nil)

// FindSettlementsBySaleIDs retrieves the drawer settlement records for a
// set of sales. Rows come back in arrival order (created_at, id) so the
// paid-amount resolver's duplicate handling is deterministic.
func (r *settlementRepository) FindSettlementsBySaleIDs(ctx context.Context, saleIDs []string) ([]domain.Settlement, error) {
	if len(saleIDs) == 0 {
		return []domain.Settlement{}, nil
	}

	query := `
		SELECT settlement_id, sale_id, amount, kind, settled_at,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM settlements
		WHERE sale_id = ANY($1)
		ORDER BY created_at, settlement_id;
	`
	rows, err := r.Pool.Query(ctx, query, saleIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: querying settlements: %v", apperrors.ErrSourceFetch, err)
	}
	defer rows.Close()

	settlements := []domain.Settlement{}
	for rows.Next() {
		var st domain.Settlement
		if err := rows.Scan(
			&st.SettlementID, &st.SaleID, &st.Amount, &st.Kind, &st.SettledAt,
			&st.CreatedAt, &st.CreatedBy, &st.LastUpdatedAt, &st.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning settlement row: %v", apperrors.ErrSourceFetch, err)
		}
		settlements = append(settlements, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating settlement rows: %v", apperrors.ErrSourceFetch, err)
	}
	return settlements, nil
}
