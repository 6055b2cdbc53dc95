package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettlementKind is the cash-drawer transaction type. Only SALE settlements
// count toward a sale's paid amount; refunds and drawer adjustments do not.
type SettlementKind string

const (
	SettlementKindSale   SettlementKind = "SALE"
	SettlementKindRefund SettlementKind = "REFUND"
)

// Settlement records the portion of a sale actually collected at the
// drawer when the sale was made. A sale without a settlement record was
// made fully on credit.
type Settlement struct {
	SettlementID string          `json:"settlementID"`
	SaleID       string          `json:"saleID"`
	Amount       decimal.Decimal `json:"amount"`
	Kind         SettlementKind  `json:"kind"`
	SettledAt    time.Time       `json:"settledAt"`
	AuditFields
}
