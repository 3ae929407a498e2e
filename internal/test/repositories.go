package test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/foodcourt/internal/domain/errors"
	"github.com/polkiloo/foodcourt/internal/domain/model"
	"github.com/polkiloo/foodcourt/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, login, passwordHash string, role model.Role) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Login: login, PasswordHash: passwordHash, Role: role, WalletBalance: decimal.Zero}
	s.Next++
	s.Users[login] = user
	s.ByID[user.ID] = user
	return user, nil
}

// Put stores a prepared user, e.g. with a wallet balance.
func (s *UserRepositoryStub) Put(user *model.User) {
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	s.Users[user.Login] = user
	s.ByID[user.ID] = user
}

// GetByLogin fetches user by login or returns not found.
func (s *UserRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[login]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// CreditWallet tops up the stored wallet.
func (s *UserRepositoryStub) CreditWallet(ctx context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	if s.Err != nil {
		return decimal.Zero, s.Err
	}
	user, ok := s.ByID[userID]
	if !ok {
		return decimal.Zero, domainErrors.ErrNotFound
	}
	user.WalletBalance = user.WalletBalance.Add(amount)
	return user.WalletBalance, nil
}

// FoodRepositoryStub serves a fixed catalog.
type FoodRepositoryStub struct {
	Foods map[int64]model.Food
	Err   error
	Calls [][]int64
}

// NewFoodRepositoryStub indexes foods by id.
func NewFoodRepositoryStub(foods ...model.Food) *FoodRepositoryStub {
	s := &FoodRepositoryStub{Foods: make(map[int64]model.Food, len(foods))}
	for _, f := range foods {
		s.Foods[f.ID] = f
	}
	return s
}

// GetByIDs returns known foods, silently skipping unknown ids like the SQL IN lookup.
func (s *FoodRepositoryStub) GetByIDs(ctx context.Context, ids []int64) ([]model.Food, error) {
	s.Calls = append(s.Calls, ids)
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Food
	for _, id := range ids {
		if f, ok := s.Foods[id]; ok {
			result = append(result, f)
		}
	}
	return result, nil
}

// OrderRepositoryStub keeps orders in memory and applies guarded transitions.
type OrderRepositoryStub struct {
	CreateFn     func(context.Context, *model.Order) (*model.Order, error)
	TransitionFn func(context.Context, int64, model.StatusChange) (*model.Order, error)
	ListFn       func(context.Context, repository.OrderFilter) ([]model.Order, error)

	mu      sync.Mutex
	Orders  map[int64]*model.Order
	Next    int64
	Changes []model.StatusChange
	Filters []repository.OrderFilter
}

// NewOrderRepositoryStub constructs an empty in-memory order store.
func NewOrderRepositoryStub(orders ...model.Order) *OrderRepositoryStub {
	s := &OrderRepositoryStub{Orders: make(map[int64]*model.Order), Next: 1}
	for i := range orders {
		o := orders[i]
		s.Orders[o.ID] = &o
		if o.ID >= s.Next {
			s.Next = o.ID + 1
		}
	}
	return s
}

// Create stores the order as pending.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Orders == nil {
		s.Orders = make(map[int64]*model.Order)
	}
	if s.Next == 0 {
		s.Next = 1
	}
	created := *order
	created.ID = s.Next
	created.Status = model.OrderStatusPending
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	for i := range created.Items {
		created.Items[i].OrderID = created.ID
	}
	s.Next++
	s.Orders[created.ID] = &created
	out := created
	return &out, nil
}

// GetByID returns a copy of the stored order.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.Orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	out := *o
	return &out, nil
}

// List filters stored orders newest first.
func (s *OrderRepositoryStub) List(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error) {
	s.mu.Lock()
	s.Filters = append(s.Filters, filter)
	s.mu.Unlock()
	if s.ListFn != nil {
		return s.ListFn(ctx, filter)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Order
	for _, o := range s.Orders {
		if filter.CustomerID > 0 && o.CustomerID != filter.CustomerID {
			continue
		}
		if filter.MerchantID > 0 && o.MerchantID != filter.MerchantID {
			continue
		}
		result = append(result, *o)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

// Transition applies change only when the stored status equals change.From.
func (s *OrderRepositoryStub) Transition(ctx context.Context, orderID int64, change model.StatusChange) (*model.Order, error) {
	s.mu.Lock()
	s.Changes = append(s.Changes, change)
	s.mu.Unlock()
	if s.TransitionFn != nil {
		return s.TransitionFn(ctx, orderID, change)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.Orders[orderID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if o.Status != change.From {
		return nil, domainErrors.ErrConflict
	}
	o.Status = change.To
	if change.RejectionReason != nil {
		o.RejectionReason = change.RejectionReason
	}
	if change.ProofImage != nil {
		o.ProofImage = change.ProofImage
	}
	o.UpdatedAt = time.Now()
	out := *o
	return &out, nil
}

// LedgerRepositoryStub lets tests control balance data.
type LedgerRepositoryStub struct {
	GetBalanceFn   func(context.Context, int64) (*model.MerchantBalance, error)
	TotalsFn       func(context.Context, int64) (*model.LedgerTotals, error)
	ReconcileFn    func(context.Context, int64) (*model.Reconciliation, error)
	ListBalancesFn func(context.Context, int64, int) ([]model.MerchantBalance, error)
}

// GetBalance returns configured balance or a zero row.
func (s *LedgerRepositoryStub) GetBalance(ctx context.Context, merchantID int64) (*model.MerchantBalance, error) {
	if s.GetBalanceFn != nil {
		return s.GetBalanceFn(ctx, merchantID)
	}
	return &model.MerchantBalance{MerchantID: merchantID, Available: decimal.Zero, Withdrawn: decimal.Zero}, nil
}

// Totals returns configured derived-formula inputs.
func (s *LedgerRepositoryStub) Totals(ctx context.Context, merchantID int64) (*model.LedgerTotals, error) {
	if s.TotalsFn != nil {
		return s.TotalsFn(ctx, merchantID)
	}
	return &model.LedgerTotals{CompletedRevenue: decimal.Zero, ReservedPayouts: decimal.Zero}, nil
}

// Reconciliation returns the configured snapshot or combines GetBalance and
// Totals.
func (s *LedgerRepositoryStub) Reconciliation(ctx context.Context, merchantID int64) (*model.Reconciliation, error) {
	if s.ReconcileFn != nil {
		return s.ReconcileFn(ctx, merchantID)
	}
	balance, err := s.GetBalance(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	totals, err := s.Totals(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	return &model.Reconciliation{MerchantID: merchantID, Stored: balance.Available, Derived: totals.Derived()}, nil
}

// ListBalances pages through configured balances.
func (s *LedgerRepositoryStub) ListBalances(ctx context.Context, after int64, limit int) ([]model.MerchantBalance, error) {
	if s.ListBalancesFn != nil {
		return s.ListBalancesFn(ctx, after, limit)
	}
	return nil, nil
}

// WithdrawalRepositoryStub records payout requests.
type WithdrawalRepositoryStub struct {
	CreateFn  func(context.Context, *model.Withdrawal) (*model.Withdrawal, error)
	GetByIDFn func(context.Context, int64) (*model.Withdrawal, error)
	ListFn    func(context.Context, int64) ([]model.Withdrawal, error)
	ResolveFn func(context.Context, int64, model.WithdrawalStatus) (*model.Withdrawal, error)
	Created   []model.Withdrawal
	Items     []model.Withdrawal
}

// Create stores the request as pending.
func (s *WithdrawalRepositoryStub) Create(ctx context.Context, w *model.Withdrawal) (*model.Withdrawal, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, w)
	}
	created := *w
	created.ID = int64(len(s.Created) + 1)
	created.Status = model.WithdrawalStatusPending
	created.CreatedAt = time.Now()
	s.Created = append(s.Created, created)
	return &created, nil
}

// GetByID delegates to override.
func (s *WithdrawalRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Withdrawal, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	return nil, domainErrors.ErrNotFound
}

// ListByMerchant returns configured withdrawals.
func (s *WithdrawalRepositoryStub) ListByMerchant(ctx context.Context, merchantID int64) ([]model.Withdrawal, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, merchantID)
	}
	return s.Items, nil
}

// Resolve delegates to override or echoes the status.
func (s *WithdrawalRepositoryStub) Resolve(ctx context.Context, id int64, status model.WithdrawalStatus) (*model.Withdrawal, error) {
	if s.ResolveFn != nil {
		return s.ResolveFn(ctx, id, status)
	}
	now := time.Now()
	return &model.Withdrawal{ID: id, Status: status, ResolvedAt: &now}, nil
}

// InvoiceRepositoryStub keeps invoices in memory keyed by period.
type InvoiceRepositoryStub struct {
	GMV      decimal.Decimal
	GMVErr   error
	Invoices map[string]*model.VendorInvoice
	Periods  []model.Period
}

// NewInvoiceRepositoryStub returns a stub reporting gmv for every period.
func NewInvoiceRepositoryStub(gmv decimal.Decimal) *InvoiceRepositoryStub {
	return &InvoiceRepositoryStub{GMV: gmv, Invoices: make(map[string]*model.VendorInvoice)}
}

// CompletedGMV returns the configured GMV.
func (s *InvoiceRepositoryStub) CompletedGMV(ctx context.Context, period model.Period) (decimal.Decimal, error) {
	s.Periods = append(s.Periods, period)
	if s.GMVErr != nil {
		return decimal.Zero, s.GMVErr
	}
	return s.GMV, nil
}

// Create stores the invoice unless the period is taken.
func (s *InvoiceRepositoryStub) Create(ctx context.Context, invoice *model.VendorInvoice) (*model.VendorInvoice, error) {
	if _, exists := s.Invoices[invoice.Period]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	created := *invoice
	created.Status = model.InvoiceStatusUnpaid
	created.CreatedAt = time.Now()
	s.Invoices[created.Period] = &created
	out := created
	return &out, nil
}

// GetByPeriod returns the stored invoice.
func (s *InvoiceRepositoryStub) GetByPeriod(ctx context.Context, period string) (*model.VendorInvoice, error) {
	inv, ok := s.Invoices[period]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	out := *inv
	return &out, nil
}

// List returns invoices newest period first.
func (s *InvoiceRepositoryStub) List(ctx context.Context) ([]model.VendorInvoice, error) {
	var result []model.VendorInvoice
	for _, inv := range s.Invoices {
		result = append(result, *inv)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Period > result[j].Period })
	return result, nil
}

// MarkPaid flips an unpaid invoice.
func (s *InvoiceRepositoryStub) MarkPaid(ctx context.Context, period string) (*model.VendorInvoice, error) {
	inv, ok := s.Invoices[period]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if inv.Status != model.InvoiceStatusUnpaid {
		return nil, domainErrors.ErrConflict
	}
	now := time.Now()
	inv.Status = model.InvoiceStatusPaid
	inv.PaidAt = &now
	out := *inv
	return &out, nil
}

// ReportRepositoryStub returns configured fee rows.
type ReportRepositoryStub struct {
	Fees []model.MerchantFee
	Err  error
}

// HandlingFeesByMerchant returns configured fee rows.
func (s *ReportRepositoryStub) HandlingFeesByMerchant(ctx context.Context, period model.Period) ([]model.MerchantFee, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Fees, nil
}

var (
	_ repository.UserRepository       = (*UserRepositoryStub)(nil)
	_ repository.FoodRepository       = (*FoodRepositoryStub)(nil)
	_ repository.OrderRepository      = (*OrderRepositoryStub)(nil)
	_ repository.LedgerRepository     = (*LedgerRepositoryStub)(nil)
	_ repository.WithdrawalRepository = (*WithdrawalRepositoryStub)(nil)
	_ repository.InvoiceRepository    = (*InvoiceRepositoryStub)(nil)
	_ repository.ReportRepository     = (*ReportRepositoryStub)(nil)
)
