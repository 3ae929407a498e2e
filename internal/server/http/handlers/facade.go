package handlers

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/foodcourt/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password string, role model.Role) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (model.Caller, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	PlaceOrder(ctx context.Context, req model.PlaceOrderRequest) (*model.Order, error)
	TransitionOrder(ctx context.Context, caller model.Caller, orderID int64, req model.TransitionRequest) (*model.Order, error)
	Order(ctx context.Context, caller model.Caller, orderID int64) (*model.Order, error)
	Orders(ctx context.Context, caller model.Caller) ([]model.Order, error)
}

// LedgerFacade provides balance, payout and wallet operations.
type LedgerFacade interface {
	Balance(ctx context.Context, merchantID int64) (*model.MerchantBalance, error)
	RequestWithdrawal(ctx context.Context, merchantID int64, req model.WithdrawalRequest) (*model.Withdrawal, error)
	Withdrawals(ctx context.Context, merchantID int64) ([]model.Withdrawal, error)
	ResolveWithdrawal(ctx context.Context, id int64, status string) (*model.Withdrawal, error)
	TopUpWallet(ctx context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error)
}

// AdminFacade exposes vendor billing and finance reports.
type AdminFacade interface {
	GenerateInvoice(ctx context.Context, period string) (*model.VendorInvoice, error)
	MarkInvoicePaid(ctx context.Context, period string) (*model.VendorInvoice, error)
	Invoices(ctx context.Context) ([]model.VendorInvoice, error)
	HandlingFees(ctx context.Context, period string) ([]model.MerchantFee, error)
}

// FoodCourtFacade aggregates the full set of operations used across handlers.
type FoodCourtFacade interface {
	AuthFacade
	OrderFacade
	LedgerFacade
	AdminFacade
}
