package dto

import (
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/polkiloo/foodcourt/internal/domain/model"
)

// InvoiceRequest selects a billing month.
type InvoiceRequest struct {
	Period string `json:"period"`
}

// InvoiceResponse is a vendor invoice.
type InvoiceResponse struct {
	Period      string          `json:"period"`
	TotalGMV    decimal.Decimal `json:"totalGmv"`
	VariableFee decimal.Decimal `json:"variableFee"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
	PaidAt      *time.Time      `json:"paidAt,omitempty"`
}

// NewInvoiceResponse maps a domain invoice.
func NewInvoiceResponse(inv model.VendorInvoice) InvoiceResponse {
	return InvoiceResponse{
		Period:      inv.Period,
		TotalGMV:    inv.TotalGMV,
		VariableFee: inv.VariableFee,
		Status:      string(inv.Status),
		CreatedAt:   inv.CreatedAt,
		PaidAt:      inv.PaidAt,
	}
}

// NewInvoiceResponses maps a list of invoices.
func NewInvoiceResponses(invoices []model.VendorInvoice) []InvoiceResponse {
	return lo.Map(invoices, func(inv model.VendorInvoice, _ int) InvoiceResponse { return NewInvoiceResponse(inv) })
}

// MerchantFeeResponse is one row of the handling fee report.
type MerchantFeeResponse struct {
	MerchantID  int64           `json:"merchantId"`
	Orders      int64           `json:"orders"`
	BasePrice   decimal.Decimal `json:"basePrice"`
	HandlingFee decimal.Decimal `json:"handlingFee"`
}

// FeeReportResponse is the handling fee revenue of a month.
type FeeReportResponse struct {
	Period           string                `json:"period"`
	TotalHandlingFee decimal.Decimal       `json:"totalHandlingFee"`
	Merchants        []MerchantFeeResponse `json:"merchants"`
}

// NewFeeReportResponse maps report rows and sums the total.
func NewFeeReportResponse(period string, fees []model.MerchantFee) FeeReportResponse {
	return FeeReportResponse{
		Period: period,
		TotalHandlingFee: lo.Reduce(fees, func(acc decimal.Decimal, f model.MerchantFee, _ int) decimal.Decimal {
			return acc.Add(f.HandlingFee)
		}, decimal.Zero),
		Merchants: lo.Map(fees, func(f model.MerchantFee, _ int) MerchantFeeResponse {
			return MerchantFeeResponse{MerchantID: f.MerchantID, Orders: f.Orders, BasePrice: f.BasePrice, HandlingFee: f.HandlingFee}
		}),
	}
}
