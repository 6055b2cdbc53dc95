package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntryKind classifies one row of a reconciliation statement.
type LedgerEntryKind string

const (
	EntryOpeningBalance       LedgerEntryKind = "OPENING_BALANCE"
	EntrySaleInvoice          LedgerEntryKind = "SALE_INVOICE"
	EntrySaleReturn           LedgerEntryKind = "SALE_RETURN"
	EntryPayment              LedgerEntryKind = "PAYMENT"
	EntryLoan                 LedgerEntryKind = "LOAN"
	EntryLinkedPurchase       LedgerEntryKind = "LINKED_PURCHASE"
	EntryLinkedPurchaseReturn LedgerEntryKind = "LINKED_PURCHASE_RETURN"
)

// LedgerEntry is one classified, signed, time-ordered statement row.
// It is derived at read time and never persisted.
//
// GrossValue and PaidValue are absolute display columns (invoice value and
// collected value); only SignedAmount feeds the running balance.
type LedgerEntry struct {
	EntryID        string          `json:"entryID"`
	Timestamp      time.Time       `json:"timestamp"`
	Kind           LedgerEntryKind `json:"kind"`
	Description    string          `json:"description"`
	GrossValue     decimal.Decimal `json:"grossValue"`
	PaidValue      decimal.Decimal `json:"paidValue"`
	SignedAmount   decimal.Decimal `json:"signedAmount"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
	SequenceIndex  int             `json:"sequenceIndex"` // 1-based, assigned after sorting
	SafeName       string          `json:"safeName,omitempty"`
	EmployeeName   string          `json:"employeeName,omitempty"`
}

// WarningCode identifies a non-fatal reconciliation condition.
type WarningCode string

const (
	WarnSourceDegraded      WarningCode = "SOURCE_DEGRADED"
	WarnAmbiguousSettlement WarningCode = "AMBIGUOUS_SETTLEMENT"
	WarnUnrecognizedNote    WarningCode = "UNRECOGNIZED_NOTE"
	WarnBalanceMismatch     WarningCode = "BALANCE_MISMATCH"
)

// ReconciliationWarning surfaces a degraded source, an ambiguous record,
// or a balance cross-check failure on an otherwise usable statement.
type ReconciliationWarning struct {
	Code    WarningCode `json:"code"`
	Source  string      `json:"source,omitempty"` // sales, payments, settlements, linked_purchases
	RefID   string      `json:"refID,omitempty"`  // record the warning refers to
	Message string      `json:"message"`
}

// AccountStatement is the externally consumed reconciliation result:
// the ordered entries plus the final balance. Partial is set when one or
// more sources were degraded to empty.
type AccountStatement struct {
	CustomerID   string                  `json:"customerID"`
	Entries      []LedgerEntry           `json:"entries"`
	FinalBalance decimal.Decimal         `json:"finalBalance"`
	Partial      bool                    `json:"partial"`
	Warnings     []ReconciliationWarning `json:"warnings,omitempty"`
	GeneratedAt  time.Time               `json:"generatedAt"`
}

// LastRunningBalance returns the final entry's running balance, or the
// zero value when the statement has no entries.
func (s AccountStatement) LastRunningBalance() decimal.Decimal {
	if len(s.Entries) == 0 {
		return decimal.Zero
	}
	return s.Entries[len(s.Entries)-1].RunningBalance
}
