package accounting

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dukkan-app/dukkan_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceTolerance is the maximum allowed gap between the statement's last
// running balance and the independently aggregated current balance.
var BalanceTolerance = decimal.RequireFromString("0.01")

// WithinTolerance reports whether two balances agree within BalanceTolerance.
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(BalanceTolerance)
}

// ResolvePaidAmount finds the portion of a sale actually collected at the
// drawer. Only settlements of kind SALE count; refunds and adjustments are
// ignored. A sale with no matching settlement was made fully on credit and
// resolves to zero. When more than one settlement matches, the first by
// arrival order wins and a warning is returned.
func ResolvePaidAmount(saleID string, settlements []domain.Settlement) (decimal.Decimal, *domain.ReconciliationWarning) {
	var matches []domain.Settlement
	for _, st := range settlements {
		if st.SaleID == saleID && st.Kind == domain.SettlementKindSale {
			matches = append(matches, st)
		}
	}
	if len(matches) == 0 {
		return decimal.Zero, nil
	}
	paid := matches[0].Amount.Abs()
	if len(matches) > 1 {
		return paid, &domain.ReconciliationWarning{
			Code:    domain.WarnAmbiguousSettlement,
			Source:  "settlements",
			RefID:   saleID,
			Message: fmt.Sprintf("sale %s has %d settlement records, using the first", saleID, len(matches)),
		}
	}
	return paid, nil
}

// ClassifySale maps a raw sale record to a ledger entry. Sale totals are
// the one source that arrives pre-signed (returns negative), so the signed
// amount is the stored total as-is.
func ClassifySale(s domain.Sale, paid decimal.Decimal) domain.LedgerEntry {
	entry := domain.LedgerEntry{
		EntryID:      "sale-" + s.SaleID,
		Timestamp:    s.SaleDate,
		GrossValue:   s.TotalAmount.Abs(),
		SignedAmount: s.TotalAmount,
		SafeName:     s.SafeName,
		EmployeeName: s.EmployeeName,
	}
	if s.Kind == domain.SaleKindReturn {
		entry.Kind = domain.EntrySaleReturn
		entry.Description = fmt.Sprintf("Sale return #%s", s.InvoiceNumber)
		entry.PaidValue = decimal.Zero
	} else {
		entry.Kind = domain.EntrySaleInvoice
		entry.Description = fmt.Sprintf("Sale invoice #%s", s.InvoiceNumber)
		entry.PaidValue = paid
	}
	return entry
}

// ClassifyPayment maps a raw payment record to a ledger entry. A note
// starting with the loan marker makes the record a loan, which increases
// the balance owed; anything else is a payment, which decreases it.
//
// A note that mentions the marker without leading with it is treated as a
// plain payment (the documented default) and flagged, since it may be a
// mis-entered loan.
func ClassifyPayment(p domain.Payment, loanMarker string) (domain.LedgerEntry, *domain.ReconciliationWarning) {
	entry := domain.LedgerEntry{
		EntryID:      "payment-" + p.PaymentID,
		Timestamp:    p.PaymentDate,
		SafeName:     p.SafeName,
		EmployeeName: p.EmployeeName,
	}
	amount := p.Amount.Abs()
	notes := strings.TrimSpace(p.Notes)
	if loanMarker != "" && strings.HasPrefix(notes, loanMarker) {
		entry.Kind = domain.EntryLoan
		entry.Description = notes
		entry.GrossValue = amount
		entry.PaidValue = decimal.Zero
		entry.SignedAmount = amount
		return entry, nil
	}

	entry.Kind = domain.EntryPayment
	entry.Description = "Payment received"
	if notes != "" {
		entry.Description = notes
	}
	entry.GrossValue = decimal.Zero
	entry.PaidValue = amount
	entry.SignedAmount = amount.Neg()

	var warning *domain.ReconciliationWarning
	if loanMarker != "" && strings.Contains(notes, loanMarker) {
		warning = &domain.ReconciliationWarning{
			Code:    domain.WarnUnrecognizedNote,
			Source:  "payments",
			RefID:   p.PaymentID,
			Message: fmt.Sprintf("payment %s mentions the loan marker off-prefix, classified as payment", p.PaymentID),
		}
	}
	return entry, warning
}

// ClassifyLinkedPurchase maps a linked supplier's purchase record to a
// ledger entry. A purchase on the supplier side acts like a payment on the
// customer side (reduces what the customer owes); a purchase return undoes
// that.
func ClassifyLinkedPurchase(p domain.LinkedPurchase) domain.LedgerEntry {
	entry := domain.LedgerEntry{
		EntryID:   "purchase-" + p.PurchaseID,
		Timestamp: p.PurchaseDate,
	}
	total := p.TotalAmount.Abs()
	if p.Kind == domain.PurchaseKindReturn {
		entry.Kind = domain.EntryLinkedPurchaseReturn
		entry.Description = fmt.Sprintf("Supplier purchase return #%s", p.InvoiceNumber)
		entry.GrossValue = total
		entry.PaidValue = decimal.Zero
		entry.SignedAmount = total
	} else {
		entry.Kind = domain.EntryLinkedPurchase
		entry.Description = fmt.Sprintf("Supplier purchase #%s", p.InvoiceNumber)
		entry.GrossValue = decimal.Zero
		entry.PaidValue = total
		entry.SignedAmount = total.Neg()
	}
	return entry
}

// OpeningBalanceEntry builds the statement's seed row. A zero opening
// balance emits no row; the running-balance seed is still zero.
func OpeningBalanceEntry(c domain.Customer) (domain.LedgerEntry, bool) {
	if c.OpeningBalance.IsZero() {
		return domain.LedgerEntry{}, false
	}
	return domain.LedgerEntry{
		EntryID:      "opening-" + c.CustomerID,
		Timestamp:    c.CreatedAt,
		Kind:         domain.EntryOpeningBalance,
		Description:  "Opening balance",
		GrossValue:   c.OpeningBalance.Abs(),
		PaidValue:    decimal.Zero,
		SignedAmount: c.OpeningBalance,
	}, true
}

// SortChronological orders entries ascending by timestamp. The sort is
// stable, so entries sharing a timestamp keep their arrival order; callers
// append sources in the fixed order {opening balance, sales, payments,
// linked purchases}, which is therefore the tie-break order the UI renders.
func SortChronological(entries []domain.LedgerEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.Before(entries[j].Timestamp)
	})
}

// ApplyRunningBalances performs the single left-to-right accumulation
// pass: it applies each entry's signed amount in order, stamps the running
// balance and the 1-based sequence index, and returns the final balance.
//
// The pass starts from zero because a non-zero opening balance is itself
// the first entry (signed amount = the opening balance), and a zero
// opening balance emits no row while seeding the same zero.
func ApplyRunningBalances(entries []domain.LedgerEntry) decimal.Decimal {
	balance := decimal.Zero
	for i := range entries {
		balance = balance.Add(entries[i].SignedAmount)
		entries[i].RunningBalance = balance
		entries[i].SequenceIndex = i + 1
	}
	return balance
}
