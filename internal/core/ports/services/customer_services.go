package services

import (
	"context"

	"github.com/dukkan-app/dukkan_backend/internal/core/domain"
)

// CustomerSvcFacade exposes customer account lookup and listing.
type CustomerSvcFacade interface {
	GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context, limit int, nextToken *string) ([]domain.Customer, *string, error)
}
