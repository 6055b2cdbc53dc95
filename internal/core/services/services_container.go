package services

import (
	portsrepo "github.com/dukkan-app/dukkan_backend/internal/core/ports/repositories"
	portssvc "github.com/dukkan-app/dukkan_backend/internal/core/ports/services"
	"github.com/dukkan-app/dukkan_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Customer = NewCustomerService(repos.CustomerRepo)
	container.Ledger = NewLedgerService(repos, WithLoanMarker(cfg.LoanNoteMarker))

	return container
}
