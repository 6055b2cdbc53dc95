package dto

import (
	"github.com/dukkan-app/dukkan_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CustomerResponse is a customer account as rendered to clients.
type CustomerResponse struct {
	CustomerID       string          `json:"customerID"`
	Name             string          `json:"name"`
	Phone            string          `json:"phone,omitempty"`
	OpeningBalance   decimal.Decimal `json:"openingBalance"`
	LinkedSupplierID *string         `json:"linkedSupplierID,omitempty"`
	IsActive         bool            `json:"isActive"`
	// CurrentBalance is attached on single-customer reads; listing
	// responses omit it to keep the list cheap.
	CurrentBalance *decimal.Decimal `json:"currentBalance,omitempty"`
}

// ListCustomersRequest binds the customer listing query parameters.
type ListCustomersRequest struct {
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken string `form:"nextToken"`
}

// ListCustomersResponse is a page of customers plus the next-page token.
type ListCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// ToCustomerResponse converts a domain customer to its response DTO.
func ToCustomerResponse(c domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID:       c.CustomerID,
		Name:             c.Name,
		Phone:            c.Phone,
		OpeningBalance:   c.OpeningBalance,
		LinkedSupplierID: c.LinkedSupplierID,
		IsActive:         c.IsActive,
	}
}

// ToListCustomersResponse converts a page of customers to its response DTO.
func ToListCustomersResponse(customers []domain.Customer, nextToken *string) ListCustomersResponse {
	response := ListCustomersResponse{
		Customers: make([]CustomerResponse, len(customers)),
		NextToken: nextToken,
	}
	for i, c := range customers {
		response.Customers[i] = ToCustomerResponse(c)
	}
	return response
}
