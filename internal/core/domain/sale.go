package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleKind distinguishes a sale invoice from a sale return.
type SaleKind string

const (
	SaleKindSale   SaleKind = "SALE"
	SaleKindReturn SaleKind = "RETURN"
)

// Sale is a raw sale invoice or return as stored by the point of sale.
// TotalAmount is pre-signed at the source: positive for a sale, negative
// for a return.
type Sale struct {
	SaleID        string          `json:"saleID"`
	CustomerID    string          `json:"customerID"`
	InvoiceNumber string          `json:"invoiceNumber"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	Kind          SaleKind        `json:"kind"`
	SaleDate      time.Time       `json:"saleDate"`
	SafeName      string          `json:"safeName,omitempty"`
	EmployeeName  string          `json:"employeeName,omitempty"`
	AuditFields
}
