package repositories

import (
	"context"

	"github.com/dukkan-app/dukkan_backend/internal/core/domain"
)

// CustomerReader defines read operations for customer accounts.
type CustomerReader interface {
	// FindCustomerByID returns apperrors.ErrNotFound when the id does not
	// resolve to an account.
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
}

// CustomerLister defines listing operations for customer accounts.
type CustomerLister interface {
	// ListCustomers returns a page of customers ordered by name then id,
	// plus the token for the next page (nil on the last page).
	ListCustomers(ctx context.Context, limit int, nextToken *string) ([]domain.Customer, *string, error)
}

// CustomerRepositoryFacade combines all customer repository capabilities.
type CustomerRepositoryFacade interface {
	CustomerReader
	CustomerLister
}
