package model

import "github.com/shopspring/decimal"

// MerchantBalance is the incrementally maintained settlement ledger row.
type MerchantBalance struct {
	MerchantID int64
	Available  decimal.Decimal
	Withdrawn  decimal.Decimal
}

// LedgerTotals holds the inputs of the derived balance formula.
type LedgerTotals struct {
	CompletedRevenue decimal.Decimal
	ReservedPayouts  decimal.Decimal
}

// Derived returns completed revenue minus pending and approved withdrawals.
func (t LedgerTotals) Derived() decimal.Decimal {
	return t.CompletedRevenue.Sub(t.ReservedPayouts)
}

// Reconciliation compares the stored ledger row with the derived formula.
type Reconciliation struct {
	MerchantID int64
	Stored     decimal.Decimal
	Derived    decimal.Decimal
}

// Consistent reports whether both balances agree.
func (r Reconciliation) Consistent() bool {
	return r.Stored.Equal(r.Derived)
}
