package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseKind distinguishes a purchase invoice from a purchase return on
// the linked supplier's ledger.
type PurchaseKind string

const (
	PurchaseKindPurchase PurchaseKind = "PURCHASE"
	PurchaseKindReturn   PurchaseKind = "PURCHASE_RETURN"
)

// LinkedPurchase is a purchase invoice or return sourced from the linked
// supplier's own ledger, not the customer's. TotalAmount is stored as an
// absolute value; the kind carries the direction.
type LinkedPurchase struct {
	PurchaseID    string          `json:"purchaseID"`
	SupplierID    string          `json:"supplierID"`
	InvoiceNumber string          `json:"invoiceNumber"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	Kind          PurchaseKind    `json:"kind"`
	PurchaseDate  time.Time       `json:"purchaseDate"`
	AuditFields
}
