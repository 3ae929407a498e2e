package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus describes vendor invoice payment state.
type InvoiceStatus string

const (
	InvoiceStatusUnpaid InvoiceStatus = "unpaid"
	InvoiceStatusPaid   InvoiceStatus = "paid"
)

const periodLayout = "2006-01"

// ErrInvalidPeriod is returned for periods not in YYYY-MM form.
var ErrInvalidPeriod = errors.New("period must be formatted as YYYY-MM")

// Period is a billing month.
type Period struct {
	Start time.Time
}

// ParsePeriod parses YYYY-MM into a UTC month.
func ParsePeriod(s string) (Period, error) {
	t, err := time.ParseInLocation(periodLayout, s, time.UTC)
	if err != nil {
		return Period{}, ErrInvalidPeriod
	}
	return Period{Start: t}, nil
}

// End returns the exclusive upper bound of the month.
func (p Period) End() time.Time {
	return p.Start.AddDate(0, 1, 0)
}

func (p Period) String() string {
	return p.Start.Format(periodLayout)
}

// VendorInvoice is the monthly bill owed to the infrastructure vendor.
type VendorInvoice struct {
	Period      string
	TotalGMV    decimal.Decimal
	VariableFee decimal.Decimal
	Status      InvoiceStatus
	CreatedAt   time.Time
	PaidAt      *time.Time
}

// MerchantFee is handling fee revenue attributed to one merchant.
type MerchantFee struct {
	MerchantID  int64
	Orders      int64
	BasePrice   decimal.Decimal
	HandlingFee decimal.Decimal
}
