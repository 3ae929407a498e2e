package app

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/foodcourt/internal/domain/model"
	"github.com/polkiloo/foodcourt/internal/usecase"
)

// FoodCourtFacade adapts use cases to the narrow interfaces consumed by the
// HTTP handlers and the reconciliation worker.
type FoodCourtFacade struct {
	auth     *usecase.AuthUseCase
	orders   *usecase.OrderUseCase
	ledger   *usecase.LedgerUseCase
	invoices *usecase.InvoiceUseCase
	reports  *usecase.ReportUseCase
}

func NewFoodCourtFacade(
	auth *usecase.AuthUseCase,
	orders *usecase.OrderUseCase,
	ledger *usecase.LedgerUseCase,
	invoices *usecase.InvoiceUseCase,
	reports *usecase.ReportUseCase,
) *FoodCourtFacade {
	return &FoodCourtFacade{auth: auth, orders: orders, ledger: ledger, invoices: invoices, reports: reports}
}

func (f *FoodCourtFacade) Register(ctx context.Context, login, password string, role model.Role) (string, error) {
	_, token, err := f.auth.Register(ctx, login, password, role)
	return token, err
}

func (f *FoodCourtFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *FoodCourtFacade) ParseToken(token string) (model.Caller, error) {
	return f.auth.ParseToken(token)
}

func (f *FoodCourtFacade) PlaceOrder(ctx context.Context, req model.PlaceOrderRequest) (*model.Order, error) {
	return f.orders.Place(ctx, req)
}

func (f *FoodCourtFacade) TransitionOrder(ctx context.Context, caller model.Caller, orderID int64, req model.TransitionRequest) (*model.Order, error) {
	return f.orders.Transition(ctx, caller, orderID, req)
}

func (f *FoodCourtFacade) Order(ctx context.Context, caller model.Caller, orderID int64) (*model.Order, error) {
	return f.orders.Get(ctx, caller, orderID)
}

func (f *FoodCourtFacade) Orders(ctx context.Context, caller model.Caller) ([]model.Order, error) {
	return f.orders.List(ctx, caller)
}

func (f *FoodCourtFacade) Balance(ctx context.Context, merchantID int64) (*model.MerchantBalance, error) {
	return f.ledger.Balance(ctx, merchantID)
}

func (f *FoodCourtFacade) RequestWithdrawal(ctx context.Context, merchantID int64, req model.WithdrawalRequest) (*model.Withdrawal, error) {
	return f.ledger.RequestWithdrawal(ctx, merchantID, req)
}

func (f *FoodCourtFacade) Withdrawals(ctx context.Context, merchantID int64) ([]model.Withdrawal, error) {
	return f.ledger.Withdrawals(ctx, merchantID)
}

func (f *FoodCourtFacade) ResolveWithdrawal(ctx context.Context, id int64, status string) (*model.Withdrawal, error) {
	return f.ledger.ResolveWithdrawal(ctx, id, status)
}

func (f *FoodCourtFacade) TopUpWallet(ctx context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	return f.ledger.TopUp(ctx, userID, amount)
}

func (f *FoodCourtFacade) Balances(ctx context.Context, afterMerchantID int64, limit int) ([]model.MerchantBalance, error) {
	return f.ledger.Balances(ctx, afterMerchantID, limit)
}

func (f *FoodCourtFacade) Reconcile(ctx context.Context, merchantID int64) (*model.Reconciliation, error) {
	return f.ledger.Reconcile(ctx, merchantID)
}

func (f *FoodCourtFacade) GenerateInvoice(ctx context.Context, period string) (*model.VendorInvoice, error) {
	return f.invoices.Generate(ctx, period)
}

func (f *FoodCourtFacade) MarkInvoicePaid(ctx context.Context, period string) (*model.VendorInvoice, error) {
	return f.invoices.MarkPaid(ctx, period)
}

func (f *FoodCourtFacade) Invoices(ctx context.Context) ([]model.VendorInvoice, error) {
	return f.invoices.List(ctx)
}

func (f *FoodCourtFacade) HandlingFees(ctx context.Context, period string) ([]model.MerchantFee, error) {
	return f.reports.HandlingFees(ctx, period)
}
