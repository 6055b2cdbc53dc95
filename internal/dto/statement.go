package dto

import (
	"time"

	"github.com/dukkan-app/dukkan_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerEntryResponse is one statement row as rendered to clients. The
// date/time split is presentation only; it carries no numeric semantics.
type LedgerEntryResponse struct {
	EntryID        string          `json:"entryID"`
	SequenceIndex  int             `json:"sequenceIndex"`
	Date           string          `json:"date"` // YYYY-MM-DD
	Time           string          `json:"time"` // HH:MM:SS
	Kind           string          `json:"kind"`
	Description    string          `json:"description"`
	GrossValue     decimal.Decimal `json:"grossValue"`
	PaidValue      decimal.Decimal `json:"paidValue"`
	SignedAmount   decimal.Decimal `json:"signedAmount"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
	SafeName       string          `json:"safeName,omitempty"`
	EmployeeName   string          `json:"employeeName,omitempty"`
}

// ReconciliationWarningResponse surfaces a non-fatal condition to clients.
type ReconciliationWarningResponse struct {
	Code    string `json:"code"`
	Source  string `json:"source,omitempty"`
	RefID   string `json:"refID,omitempty"`
	Message string `json:"message"`
}

// StatementResponse is the account statement contract.
type StatementResponse struct {
	CustomerID   string                          `json:"customerID"`
	Entries      []LedgerEntryResponse           `json:"entries"`
	FinalBalance decimal.Decimal                 `json:"finalBalance"`
	Partial      bool                            `json:"partial"`
	Warnings     []ReconciliationWarningResponse `json:"warnings,omitempty"`
	GeneratedAt  string                          `json:"generatedAt"`
}

// BalanceResponse carries just the current balance for badge-style
// consumers.
type BalanceResponse struct {
	CustomerID string          `json:"customerID"`
	Balance    decimal.Decimal `json:"balance"`
}

// ToStatementResponse converts a domain statement to its response DTO,
// splitting each entry timestamp into ISO date and time parts.
func ToStatementResponse(statement *domain.AccountStatement) StatementResponse {
	response := StatementResponse{
		CustomerID:   statement.CustomerID,
		Entries:      make([]LedgerEntryResponse, len(statement.Entries)),
		FinalBalance: statement.FinalBalance,
		Partial:      statement.Partial,
		GeneratedAt:  statement.GeneratedAt.UTC().Format(time.RFC3339),
	}
	for i, entry := range statement.Entries {
		ts := entry.Timestamp.UTC()
		response.Entries[i] = LedgerEntryResponse{
			EntryID:        entry.EntryID,
			SequenceIndex:  entry.SequenceIndex,
			Date:           ts.Format("2006-01-02"),
			Time:           ts.Format("15:04:05"),
			Kind:           string(entry.Kind),
			Description:    entry.Description,
			GrossValue:     entry.GrossValue,
			PaidValue:      entry.PaidValue,
			SignedAmount:   entry.SignedAmount,
			RunningBalance: entry.RunningBalance,
			SafeName:       entry.SafeName,
			EmployeeName:   entry.EmployeeName,
		}
	}
	for _, warning := range statement.Warnings {
		response.Warnings = append(response.Warnings, ReconciliationWarningResponse{
			Code:    string(warning.Code),
			Source:  warning.Source,
			RefID:   warning.RefID,
			Message: warning.Message,
		})
	}
	return response
}
