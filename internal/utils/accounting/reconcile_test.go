package accounting_test

import (
	"testing"
	"time"

	"github.com/dukkan-app/dukkan_backend/internal/core/domain"
	"github.com/dukkan-app/dukkan_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ts(day int, hour int) time.Time {
	return time.Date(2026, time.March, day, hour, 0, 0, 0, time.UTC)
}

func TestResolvePaidAmount(t *testing.T) {
	settlements := []domain.Settlement{
		{SettlementID: "st-1", SaleID: "sale-a", Amount: dec("80"), Kind: domain.SettlementKindSale},
		{SettlementID: "st-2", SaleID: "sale-a", Amount: dec("75"), Kind: domain.SettlementKindSale},
		{SettlementID: "st-3", SaleID: "sale-b", Amount: dec("30"), Kind: domain.SettlementKindRefund},
		{SettlementID: "st-4", SaleID: "sale-c", Amount: dec("-50"), Kind: domain.SettlementKindSale},
	}

	tests := []struct {
		name        string
		saleID      string
		wantPaid    string
		wantWarning bool
	}{
		{name: "no settlement means fully on credit", saleID: "sale-x", wantPaid: "0", wantWarning: false},
		{name: "refund settlements do not count", saleID: "sale-b", wantPaid: "0", wantWarning: false},
		{name: "duplicate settlements use the first and warn", saleID: "sale-a", wantPaid: "80", wantWarning: true},
		{name: "paid amount is taken as absolute", saleID: "sale-c", wantPaid: "50", wantWarning: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			paid, warning := accounting.ResolvePaidAmount(tc.saleID, settlements)
			assert.True(t, paid.Equal(dec(tc.wantPaid)), "paid = %s, want %s", paid, tc.wantPaid)
			if tc.wantWarning {
				require.NotNil(t, warning)
				assert.Equal(t, domain.WarnAmbiguousSettlement, warning.Code)
				assert.Equal(t, tc.saleID, warning.RefID)
			} else {
				assert.Nil(t, warning)
			}
		})
	}
}

func TestClassifySale(t *testing.T) {
	sale := domain.Sale{
		SaleID:        "s-1",
		InvoiceNumber: "INV-100",
		TotalAmount:   dec("200"),
		Kind:          domain.SaleKindSale,
		SaleDate:      ts(1, 10),
		SafeName:      "Main drawer",
	}
	entry := accounting.ClassifySale(sale, dec("80"))

	assert.Equal(t, domain.EntrySaleInvoice, entry.Kind)
	assert.True(t, entry.SignedAmount.Equal(dec("200")))
	assert.True(t, entry.GrossValue.Equal(dec("200")))
	assert.True(t, entry.PaidValue.Equal(dec("80")))
	assert.Equal(t, "Main drawer", entry.SafeName)
}

func TestClassifySale_ReturnKeepsStoredSign(t *testing.T) {
	ret := domain.Sale{
		SaleID:        "s-2",
		InvoiceNumber: "INV-101",
		TotalAmount:   dec("-75"),
		Kind:          domain.SaleKindReturn,
		SaleDate:      ts(2, 10),
	}
	entry := accounting.ClassifySale(ret, decimal.Zero)

	assert.Equal(t, domain.EntrySaleReturn, entry.Kind)
	assert.True(t, entry.SignedAmount.Equal(dec("-75")), "return totals arrive pre-signed and must not be re-negated")
	assert.True(t, entry.GrossValue.Equal(dec("75")))
	assert.True(t, entry.PaidValue.IsZero())
}

func TestClassifyPayment(t *testing.T) {
	marker := domain.DefaultLoanNoteMarker

	tests := []struct {
		name        string
		notes       string
		wantKind    domain.LedgerEntryKind
		wantSigned  string
		wantWarning bool
	}{
		{name: "plain payment decreases balance", notes: "cash", wantKind: domain.EntryPayment, wantSigned: "-120"},
		{name: "empty note is a payment", notes: "", wantKind: domain.EntryPayment, wantSigned: "-120"},
		{name: "marker prefix makes a loan", notes: marker + " للعميل", wantKind: domain.EntryLoan, wantSigned: "120"},
		{name: "marker off-prefix stays a payment and warns", notes: "دفعة " + marker, wantKind: domain.EntryPayment, wantSigned: "-120", wantWarning: true},
		{name: "surrounding whitespace is trimmed before matching", notes: "  " + marker + " نقدية", wantKind: domain.EntryLoan, wantSigned: "120"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			payment := domain.Payment{PaymentID: "p-1", Amount: dec("120"), Notes: tc.notes, PaymentDate: ts(3, 9)}
			entry, warning := accounting.ClassifyPayment(payment, marker)

			assert.Equal(t, tc.wantKind, entry.Kind)
			assert.True(t, entry.SignedAmount.Equal(dec(tc.wantSigned)), "signed = %s, want %s", entry.SignedAmount, tc.wantSigned)
			if tc.wantWarning {
				require.NotNil(t, warning)
				assert.Equal(t, domain.WarnUnrecognizedNote, warning.Code)
			} else {
				assert.Nil(t, warning)
			}
		})
	}
}

func TestClassifyPayment_EmptyMarkerDisablesLoans(t *testing.T) {
	payment := domain.Payment{PaymentID: "p-2", Amount: dec("40"), Notes: domain.DefaultLoanNoteMarker + " test", PaymentDate: ts(3, 9)}
	entry, warning := accounting.ClassifyPayment(payment, "")

	assert.Equal(t, domain.EntryPayment, entry.Kind)
	assert.True(t, entry.SignedAmount.Equal(dec("-40")))
	assert.Nil(t, warning)
}

func TestClassifyLinkedPurchase(t *testing.T) {
	purchase := domain.LinkedPurchase{PurchaseID: "pu-1", InvoiceNumber: "P-9", TotalAmount: dec("300"), Kind: domain.PurchaseKindPurchase, PurchaseDate: ts(4, 12)}
	entry := accounting.ClassifyLinkedPurchase(purchase)
	assert.Equal(t, domain.EntryLinkedPurchase, entry.Kind)
	assert.True(t, entry.SignedAmount.Equal(dec("-300")), "a supplier purchase reduces what the customer owes")

	ret := domain.LinkedPurchase{PurchaseID: "pu-2", InvoiceNumber: "P-10", TotalAmount: dec("60"), Kind: domain.PurchaseKindReturn, PurchaseDate: ts(4, 13)}
	entry = accounting.ClassifyLinkedPurchase(ret)
	assert.Equal(t, domain.EntryLinkedPurchaseReturn, entry.Kind)
	assert.True(t, entry.SignedAmount.Equal(dec("60")))
}

func TestOpeningBalanceEntry(t *testing.T) {
	customer := domain.Customer{CustomerID: "c-1", OpeningBalance: dec("100")}
	customer.CreatedAt = ts(1, 0)

	entry, ok := accounting.OpeningBalanceEntry(customer)
	require.True(t, ok)
	assert.Equal(t, domain.EntryOpeningBalance, entry.Kind)
	assert.True(t, entry.SignedAmount.Equal(dec("100")))
	assert.Equal(t, ts(1, 0), entry.Timestamp)

	customer.OpeningBalance = decimal.Zero
	_, ok = accounting.OpeningBalanceEntry(customer)
	assert.False(t, ok, "zero opening balance emits no row")
}

// Mirrors the worked example: opening 100, sale of 200, payment of 150.
func TestApplyRunningBalances_WorkedExample(t *testing.T) {
	entries := []domain.LedgerEntry{
		{EntryID: "opening", SignedAmount: dec("100"), Timestamp: ts(1, 0)},
		{EntryID: "sale", SignedAmount: dec("200"), Timestamp: ts(2, 0)},
		{EntryID: "payment", SignedAmount: dec("-150"), Timestamp: ts(3, 0)},
	}

	final := accounting.ApplyRunningBalances(entries)

	assert.True(t, final.Equal(dec("150")))
	assert.True(t, entries[0].RunningBalance.Equal(dec("100")))
	assert.True(t, entries[1].RunningBalance.Equal(dec("300")))
	assert.True(t, entries[2].RunningBalance.Equal(dec("150")))
	assert.Equal(t, 1, entries[0].SequenceIndex)
	assert.Equal(t, 3, entries[2].SequenceIndex)
}

// Each running balance must equal the prefix sum of signed amounts, and
// removing one entry must shift the final balance by exactly that entry's
// signed amount.
func TestApplyRunningBalances_PrefixSumAndRemovalDelta(t *testing.T) {
	amounts := []string{"100", "-30", "250.50", "-99.99", "12.34", "-0.01", "500", "-432.84"}
	entries := make([]domain.LedgerEntry, len(amounts))
	for i, a := range amounts {
		entries[i] = domain.LedgerEntry{SignedAmount: dec(a), Timestamp: ts(1, i)}
	}

	final := accounting.ApplyRunningBalances(entries)

	prefix := decimal.Zero
	for i, entry := range entries {
		prefix = prefix.Add(entry.SignedAmount)
		assert.True(t, entry.RunningBalance.Equal(prefix), "entry %d running balance", i)
	}
	assert.True(t, final.Equal(prefix))

	for removed := range entries {
		reduced := make([]domain.LedgerEntry, 0, len(entries)-1)
		for i, entry := range entries {
			if i != removed {
				reduced = append(reduced, domain.LedgerEntry{SignedAmount: entry.SignedAmount, Timestamp: entry.Timestamp})
			}
		}
		reducedFinal := accounting.ApplyRunningBalances(reduced)
		delta := final.Sub(reducedFinal)
		assert.True(t, delta.Equal(entries[removed].SignedAmount), "removing entry %d should shift the final balance by its signed amount", removed)
	}
}

func TestSortChronological_StableTieBreak(t *testing.T) {
	sameInstant := ts(5, 12)
	entries := []domain.LedgerEntry{
		{EntryID: "opening", Timestamp: sameInstant},
		{EntryID: "sale", Timestamp: sameInstant},
		{EntryID: "later", Timestamp: ts(6, 0)},
		{EntryID: "payment", Timestamp: sameInstant},
		{EntryID: "earlier", Timestamp: ts(4, 0)},
	}

	accounting.SortChronological(entries)

	ids := make([]string, len(entries))
	for i, entry := range entries {
		ids[i] = entry.EntryID
	}
	assert.Equal(t, []string{"earlier", "opening", "sale", "payment", "later"}, ids, "equal timestamps keep arrival order")

	// Sorting again must not reorder anything.
	accounting.SortChronological(entries)
	for i, entry := range entries {
		assert.Equal(t, ids[i], entry.EntryID)
	}
}

func TestWithinTolerance(t *testing.T) {
	assert.True(t, accounting.WithinTolerance(dec("150.00"), dec("150.01")))
	assert.True(t, accounting.WithinTolerance(dec("150.01"), dec("150.00")))
	assert.False(t, accounting.WithinTolerance(dec("150.00"), dec("150.02")))
	assert.True(t, accounting.WithinTolerance(dec("0"), dec("0")))
}
