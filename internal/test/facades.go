package test

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/foodcourt/internal/domain/model"
)

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	PlaceFn      func(context.Context, model.PlaceOrderRequest) (*model.Order, error)
	TransitionFn func(context.Context, model.Caller, int64, model.TransitionRequest) (*model.Order, error)
	OrderFn      func(context.Context, model.Caller, int64) (*model.Order, error)
	OrdersFn     func(context.Context, model.Caller) ([]model.Order, error)
}

// PlaceOrder delegates to provided function or echoes a pending order.
func (s OrderFacadeStub) PlaceOrder(ctx context.Context, in model.PlaceOrderRequest) (*model.Order, error) {
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, in)
	}
	return &model.Order{
		ID:         1,
		CustomerID: in.CustomerID,
		MerchantID: in.MerchantID,
		Status:     model.OrderStatusPending,
		Total:      decimal.NewFromInt(74750),
	}, nil
}

// TransitionOrder delegates to provided function or applies the target status.
func (s OrderFacadeStub) TransitionOrder(ctx context.Context, caller model.Caller, id int64, req model.TransitionRequest) (*model.Order, error) {
	if s.TransitionFn != nil {
		return s.TransitionFn(ctx, caller, id, req)
	}
	return &model.Order{ID: id, Status: model.OrderStatus(req.Status)}, nil
}

// Order returns a single predefined order.
func (s OrderFacadeStub) Order(ctx context.Context, caller model.Caller, id int64) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, caller, id)
	}
	return &model.Order{ID: id, CustomerID: caller.UserID, Status: model.OrderStatusPending}, nil
}

// Orders returns predefined orders for given caller.
func (s OrderFacadeStub) Orders(ctx context.Context, caller model.Caller) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, caller)
	}
	return []model.Order{{ID: 1, CustomerID: caller.UserID, Status: model.OrderStatusPending}}, nil
}

// LedgerFacadeStub simulates balance and payout operations.
type LedgerFacadeStub struct {
	BalanceFn     func(context.Context, int64) (*model.MerchantBalance, error)
	WithdrawFn    func(context.Context, int64, model.WithdrawalRequest) (*model.Withdrawal, error)
	WithdrawalsFn func(context.Context, int64) ([]model.Withdrawal, error)
	ResolveFn     func(context.Context, int64, string) (*model.Withdrawal, error)
	TopUpFn       func(context.Context, int64, decimal.Decimal) (decimal.Decimal, error)
}

// Balance returns stored balance or default data.
func (s LedgerFacadeStub) Balance(ctx context.Context, merchantID int64) (*model.MerchantBalance, error) {
	if s.BalanceFn != nil {
		return s.BalanceFn(ctx, merchantID)
	}
	return &model.MerchantBalance{MerchantID: merchantID, Available: decimal.NewFromInt(100), Withdrawn: decimal.NewFromInt(50)}, nil
}

// RequestWithdrawal executes configured withdrawal handler.
func (s LedgerFacadeStub) RequestWithdrawal(ctx context.Context, merchantID int64, in model.WithdrawalRequest) (*model.Withdrawal, error) {
	if s.WithdrawFn != nil {
		return s.WithdrawFn(ctx, merchantID, in)
	}
	return &model.Withdrawal{ID: 1, MerchantID: merchantID, Amount: in.Amount, Status: model.WithdrawalStatusPending, Payout: in.Payout}, nil
}

// Withdrawals returns preconfigured history.
func (s LedgerFacadeStub) Withdrawals(ctx context.Context, merchantID int64) ([]model.Withdrawal, error) {
	if s.WithdrawalsFn != nil {
		return s.WithdrawalsFn(ctx, merchantID)
	}
	return []model.Withdrawal{{ID: 1, MerchantID: merchantID, Amount: decimal.NewFromInt(10), Status: model.WithdrawalStatusPending, CreatedAt: time.Unix(0, 0)}}, nil
}

// ResolveWithdrawal returns the withdrawal in the requested status.
func (s LedgerFacadeStub) ResolveWithdrawal(ctx context.Context, id int64, status string) (*model.Withdrawal, error) {
	if s.ResolveFn != nil {
		return s.ResolveFn(ctx, id, status)
	}
	return &model.Withdrawal{ID: id, Status: model.WithdrawalStatus(status)}, nil
}

// TopUpWallet returns amount as the new balance.
func (s LedgerFacadeStub) TopUpWallet(ctx context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	if s.TopUpFn != nil {
		return s.TopUpFn(ctx, userID, amount)
	}
	return amount, nil
}

// AdminFacadeStub simulates invoice and report operations.
type AdminFacadeStub struct {
	GenerateFn func(context.Context, string) (*model.VendorInvoice, error)
	PaidFn     func(context.Context, string) (*model.VendorInvoice, error)
	InvoicesFn func(context.Context) ([]model.VendorInvoice, error)
	FeesFn     func(context.Context, string) ([]model.MerchantFee, error)
}

// GenerateInvoice returns an unpaid invoice for period.
func (s AdminFacadeStub) GenerateInvoice(ctx context.Context, period string) (*model.VendorInvoice, error) {
	if s.GenerateFn != nil {
		return s.GenerateFn(ctx, period)
	}
	return &model.VendorInvoice{Period: period, TotalGMV: decimal.NewFromInt(1000000), VariableFee: decimal.NewFromInt(23000), Status: model.InvoiceStatusUnpaid}, nil
}

// MarkInvoicePaid returns a paid invoice for period.
func (s AdminFacadeStub) MarkInvoicePaid(ctx context.Context, period string) (*model.VendorInvoice, error) {
	if s.PaidFn != nil {
		return s.PaidFn(ctx, period)
	}
	now := time.Unix(0, 0)
	return &model.VendorInvoice{Period: period, Status: model.InvoiceStatusPaid, PaidAt: &now}, nil
}

// Invoices returns configured invoices.
func (s AdminFacadeStub) Invoices(ctx context.Context) ([]model.VendorInvoice, error) {
	if s.InvoicesFn != nil {
		return s.InvoicesFn(ctx)
	}
	return nil, nil
}

// HandlingFees returns configured report rows.
func (s AdminFacadeStub) HandlingFees(ctx context.Context, period string) ([]model.MerchantFee, error) {
	if s.FeesFn != nil {
		return s.FeesFn(ctx, period)
	}
	return []model.MerchantFee{{MerchantID: 2, Orders: 1, BasePrice: decimal.NewFromInt(65000), HandlingFee: decimal.NewFromInt(9750)}}, nil
}

// WorkerFacadeStub mimics reconciler interactions with the facade.
type WorkerFacadeStub struct {
	Pages       [][]model.MerchantBalance
	BalancesFn  func(context.Context, int64, int) ([]model.MerchantBalance, error)
	ReconcileFn func(context.Context, int64) (*model.Reconciliation, error)
	Reconciled  []int64
	Afters      []int64

	mu    sync.Mutex
	calls int
}

// Balances returns configured pages in sequence and then empty pages.
func (s *WorkerFacadeStub) Balances(ctx context.Context, after int64, limit int) ([]model.MerchantBalance, error) {
	if s.BalancesFn != nil {
		return s.BalancesFn(ctx, after, limit)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Afters = append(s.Afters, after)
	if s.calls < len(s.Pages) {
		page := s.Pages[s.calls]
		s.calls++
		return page, nil
	}
	return nil, nil
}

// Reconcile records the merchant and reports a consistent ledger.
func (s *WorkerFacadeStub) Reconcile(ctx context.Context, merchantID int64) (*model.Reconciliation, error) {
	s.mu.Lock()
	s.Reconciled = append(s.Reconciled, merchantID)
	s.mu.Unlock()
	if s.ReconcileFn != nil {
		return s.ReconcileFn(ctx, merchantID)
	}
	return &model.Reconciliation{MerchantID: merchantID, Stored: decimal.Zero, Derived: decimal.Zero}, nil
}

// ReconciledIDs returns a snapshot of reconciled merchants.
func (s *WorkerFacadeStub) ReconciledIDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64(nil), s.Reconciled...)
}

// Cursors returns a snapshot of the after-ids Balances was called with.
func (s *WorkerFacadeStub) Cursors() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64(nil), s.Afters...)
}

// NotifierStub records published events.
type NotifierStub struct {
	mu     sync.Mutex
	Events []PublishedEvent
}

// PublishedEvent is a captured Publish call.
type PublishedEvent struct {
	UserID  int64
	Event   string
	Payload any
}

// Publish records the event.
func (n *NotifierStub) Publish(userID int64, event string, payload any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Events = append(n.Events, PublishedEvent{UserID: userID, Event: event, Payload: payload})
}

// Published returns a snapshot of recorded events.
func (n *NotifierStub) Published() []PublishedEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]PublishedEvent(nil), n.Events...)
}
