package model

import "github.com/shopspring/decimal"

// Food is a catalog entry as seen by order intake.
type Food struct {
	ID         int64
	MerchantID int64
	Name       string
	Price      decimal.Decimal
	Available  bool
}
