package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/foodcourt/internal/domain/model"
)

// InvoiceRepository persists vendor invoices.
type InvoiceRepository interface {
	CompletedGMV(ctx context.Context, period model.Period) (decimal.Decimal, error)
	Create(ctx context.Context, invoice *model.VendorInvoice) (*model.VendorInvoice, error)
	GetByPeriod(ctx context.Context, period string) (*model.VendorInvoice, error)
	List(ctx context.Context) ([]model.VendorInvoice, error)
	MarkPaid(ctx context.Context, period string) (*model.VendorInvoice, error)
}

// ReportRepository serves read-only finance reports.
type ReportRepository interface {
	HandlingFeesByMerchant(ctx context.Context, period model.Period) ([]model.MerchantFee, error)
}
