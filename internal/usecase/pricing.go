package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/polkiloo/foodcourt/internal/domain/model"
)

var (
	// HandlingFeeRate is the platform markup charged on top of the merchant base price.
	HandlingFeeRate = decimal.RequireFromString("0.15")
	// VendorFeeRate is the share of GMV billed by the infrastructure vendor.
	VendorFeeRate = decimal.RequireFromString("0.023")
)

// Quote is the price breakdown of an order.
type Quote struct {
	BasePrice   decimal.Decimal
	HandlingFee decimal.Decimal
	Total       decimal.Decimal
}

// QuoteItems prices line items. The handling fee is floored to a whole
// currency unit, never rounded.
func QuoteItems(items []model.OrderLineItem) Quote {
	base := decimal.Zero
	for _, item := range items {
		base = base.Add(item.Subtotal())
	}
	fee := HandlingFee(base)
	return Quote{BasePrice: base, HandlingFee: fee, Total: base.Add(fee)}
}

// HandlingFee returns floor(base * 0.15).
func HandlingFee(base decimal.Decimal) decimal.Decimal {
	return base.Mul(HandlingFeeRate).Floor()
}

// VariableFee returns the vendor fee for a GMV, rounded to cents.
func VariableFee(gmv decimal.Decimal) decimal.Decimal {
	return gmv.Mul(VendorFeeRate).Round(2)
}
