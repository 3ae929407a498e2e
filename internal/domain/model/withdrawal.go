package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// WithdrawalStatus describes payout request state.
type WithdrawalStatus string

const (
	WithdrawalStatusPending  WithdrawalStatus = "pending"
	WithdrawalStatusApproved WithdrawalStatus = "approved"
	WithdrawalStatusRejected WithdrawalStatus = "rejected"
)

// IsTerminal reports whether the request can no longer change.
func (s WithdrawalStatus) IsTerminal() bool {
	return s == WithdrawalStatusApproved || s == WithdrawalStatusRejected
}

// PayoutDetails holds the bank account a merchant is paid to.
type PayoutDetails struct {
	BankName      string
	AccountNumber string
	AccountHolder string
}

// Withdrawal represents a merchant payout request.
type Withdrawal struct {
	ID         int64
	MerchantID int64
	Amount     decimal.Decimal
	Status     WithdrawalStatus
	Payout     PayoutDetails
	CreatedAt  time.Time
	ResolvedAt *time.Time
}
