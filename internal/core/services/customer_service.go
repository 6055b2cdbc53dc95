package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dukkan-app/dukkan_backend/internal/core/domain"
	portsrepo "github.com/dukkan-app/dukkan_backend/internal/core/ports/repositories"
	portssvc "github.com/dukkan-app/dukkan_backend/internal/core/ports/services"
)

// customerService implements the CustomerSvcFacade interface.
type customerService struct {
	BaseService
	customerRepo portsrepo.CustomerRepositoryFacade
}

// NewCustomerService creates a new customer service.
func NewCustomerService(repo portsrepo.CustomerRepositoryFacade) portssvc.CustomerSvcFacade {
	return &customerService{customerRepo: repo}
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

// GetCustomerByID retrieves a single customer account.
func (s *customerService) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		s.LogDebug(ctx, "Customer lookup failed", slog.String("customer_id", customerID), slog.String("error", err.Error()))
		return nil, err
	}
	return customer, nil
}

// ListCustomers returns a page of customer accounts ordered by name.
func (s *customerService) ListCustomers(ctx context.Context, limit int, nextToken *string) ([]domain.Customer, *string, error) {
	if limit <= 0 || limit > 100 {
		limit = 25
	}
	customers, token, err := s.customerRepo.ListCustomers(ctx, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list customers")
		return nil, nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, token, nil
}
