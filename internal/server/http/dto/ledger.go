package dto

import (
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/polkiloo/foodcourt/internal/domain/model"
)

// BalanceResponse is the merchant settlement balance.
type BalanceResponse struct {
	MerchantID int64           `json:"merchantId"`
	Available  decimal.Decimal `json:"available"`
	Withdrawn  decimal.Decimal `json:"withdrawn"`
}

// WithdrawRequest describes a payout request.
type WithdrawRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	BankName      string          `json:"bankName"`
	AccountNumber string          `json:"accountNumber"`
	AccountHolder string          `json:"accountHolder"`
}

// ToModel converts the body into a use case request.
func (r WithdrawRequest) ToModel() model.WithdrawalRequest {
	return model.WithdrawalRequest{
		Amount: r.Amount,
		Payout: model.PayoutDetails{BankName: r.BankName, AccountNumber: r.AccountNumber, AccountHolder: r.AccountHolder},
	}
}

// ResolveWithdrawalRequest approves or rejects a payout.
type ResolveWithdrawalRequest struct {
	Status string `json:"status"`
}

// WithdrawalResponse describes a payout request.
type WithdrawalResponse struct {
	ID            int64           `json:"id"`
	MerchantID    int64           `json:"merchantId"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	BankName      string          `json:"bankName"`
	AccountNumber string          `json:"accountNumber"`
	AccountHolder string          `json:"accountHolder"`
	CreatedAt     time.Time       `json:"createdAt"`
	ResolvedAt    *time.Time      `json:"resolvedAt,omitempty"`
}

// NewWithdrawalResponse maps a domain withdrawal.
func NewWithdrawalResponse(w model.Withdrawal) WithdrawalResponse {
	return WithdrawalResponse{
		ID:            w.ID,
		MerchantID:    w.MerchantID,
		Amount:        w.Amount,
		Status:        string(w.Status),
		BankName:      w.Payout.BankName,
		AccountNumber: w.Payout.AccountNumber,
		AccountHolder: w.Payout.AccountHolder,
		CreatedAt:     w.CreatedAt,
		ResolvedAt:    w.ResolvedAt,
	}
}

// NewWithdrawalResponses maps a list of withdrawals.
func NewWithdrawalResponses(ws []model.Withdrawal) []WithdrawalResponse {
	return lo.Map(ws, func(w model.Withdrawal, _ int) WithdrawalResponse { return NewWithdrawalResponse(w) })
}

// TopUpRequest credits a customer wallet.
type TopUpRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// WalletResponse is the wallet balance after a top-up.
type WalletResponse struct {
	Balance decimal.Decimal `json:"balance"`
}
