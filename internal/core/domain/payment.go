package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultLoanNoteMarker is the note prefix that marks a payment record as
// a loan handed to the customer rather than money collected from them.
const DefaultLoanNoteMarker = "سلفة"

// Payment is a raw payment record. Amount is stored non-negative; the
// classification resolver decides the sign of its balance effect.
type Payment struct {
	PaymentID    string          `json:"paymentID"`
	CustomerID   string          `json:"customerID"`
	Amount       decimal.Decimal `json:"amount"`
	Notes        string          `json:"notes"`
	PaymentDate  time.Time       `json:"paymentDate"`
	SafeName     string          `json:"safeName,omitempty"`
	EmployeeName string          `json:"employeeName,omitempty"`
	AuditFields
}
