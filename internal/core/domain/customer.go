package domain

import "github.com/shopspring/decimal"

// Customer is a trading-partner account under reconciliation.
// OpeningBalance is signed: positive means the customer owes us.
// CreatedAt (from AuditFields) doubles as the opening-balance entry date.
type Customer struct {
	CustomerID     string          `json:"customerID"`
	Name           string          `json:"name"`
	Phone          string          `json:"phone"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	// LinkedSupplierID references a supplier ledger whose purchase activity
	// nets against this customer's balance. Nil when the customer is not a
	// linked trading partner.
	LinkedSupplierID *string `json:"linkedSupplierID,omitempty"`
	IsActive         bool    `json:"isActive"`
	AuditFields
}

// IsLinked reports whether the customer has a linked supplier ledger.
func (c Customer) IsLinked() bool {
	return c.LinkedSupplierID != nil && *c.LinkedSupplierID != ""
}
