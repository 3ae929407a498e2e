package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	domainErrors "github.com/polkiloo/foodcourt/internal/domain/errors"
	"github.com/polkiloo/foodcourt/internal/domain/model"
	"github.com/polkiloo/foodcourt/internal/domain/repository"
)

// LedgerUseCase manages merchant balances, payouts and customer wallets.
type LedgerUseCase struct {
	ledger      repository.LedgerRepository
	withdrawals repository.WithdrawalRepository
	users       repository.UserRepository
	logger      *slog.Logger
}

// NewLedgerUseCase constructs LedgerUseCase.
func NewLedgerUseCase(
	ledger repository.LedgerRepository,
	withdrawals repository.WithdrawalRepository,
	users repository.UserRepository,
	logger *slog.Logger,
) *LedgerUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &LedgerUseCase{ledger: ledger, withdrawals: withdrawals, users: users, logger: logger}
}

// Balance returns the stored ledger row of the merchant.
func (u *LedgerUseCase) Balance(ctx context.Context, merchantID int64) (*model.MerchantBalance, error) {
	return u.ledger.GetBalance(ctx, merchantID)
}

// DerivedBalance recomputes available funds from completed orders and
// reserved withdrawals.
func (u *LedgerUseCase) DerivedBalance(ctx context.Context, merchantID int64) (decimal.Decimal, error) {
	totals, err := u.ledger.Totals(ctx, merchantID)
	if err != nil {
		return decimal.Zero, err
	}
	return totals.Derived(), nil
}

// Reconcile compares stored and derived balances of one merchant as seen by
// a single snapshot, so concurrent settlements cannot show up as drift.
func (u *LedgerUseCase) Reconcile(ctx context.Context, merchantID int64) (result *model.Reconciliation, err error) {
	ctx, span := tracer.Start(ctx, "LedgerUseCase.Reconcile", trace.WithAttributes(attribute.Int64("merchant.id", merchantID)))
	defer func() { endSpan(span, err) }()

	return u.ledger.Reconciliation(ctx, merchantID)
}

// Balances pages through stored ledger rows ordered by merchant id.
func (u *LedgerUseCase) Balances(ctx context.Context, afterMerchantID int64, limit int) ([]model.MerchantBalance, error) {
	return u.ledger.ListBalances(ctx, afterMerchantID, limit)
}

// RequestWithdrawal reserves amount from the merchant balance.
func (u *LedgerUseCase) RequestWithdrawal(ctx context.Context, merchantID int64, in model.WithdrawalRequest) (w *model.Withdrawal, err error) {
	ctx, span := tracer.Start(ctx, "LedgerUseCase.RequestWithdrawal", trace.WithAttributes(attribute.Int64("merchant.id", merchantID)))
	defer func() { endSpan(span, err) }()

	if !validAmount(in.Amount) {
		return nil, domainErrors.ErrInvalidAmount
	}
	payout := model.PayoutDetails{
		BankName:      strings.TrimSpace(in.Payout.BankName),
		AccountNumber: strings.TrimSpace(in.Payout.AccountNumber),
		AccountHolder: strings.TrimSpace(in.Payout.AccountHolder),
	}
	if payout.BankName == "" || payout.AccountNumber == "" || payout.AccountHolder == "" {
		return nil, domainErrors.Validation("bankName, accountNumber and accountHolder are required")
	}

	w, err = u.withdrawals.Create(ctx, &model.Withdrawal{
		MerchantID: merchantID,
		Amount:     in.Amount,
		Status:     model.WithdrawalStatusPending,
		Payout:     payout,
	})
	if err != nil {
		return nil, err
	}
	u.logger.InfoContext(ctx, "withdrawal requested",
		slog.Int64("withdrawal_id", w.ID),
		slog.Int64("merchant_id", merchantID),
		slog.String("amount", w.Amount.String()),
	)
	return w, nil
}

// ResolveWithdrawal approves or rejects a pending withdrawal.
func (u *LedgerUseCase) ResolveWithdrawal(ctx context.Context, id int64, status string) (w *model.Withdrawal, err error) {
	ctx, span := tracer.Start(ctx, "LedgerUseCase.ResolveWithdrawal", trace.WithAttributes(attribute.Int64("withdrawal.id", id)))
	defer func() { endSpan(span, err) }()

	target := model.WithdrawalStatus(strings.TrimSpace(status))
	if !target.IsTerminal() {
		return nil, domainErrors.Validation("status must be approved or rejected")
	}

	w, err = u.withdrawals.Resolve(ctx, id, target)
	if err != nil {
		return nil, err
	}
	u.logger.InfoContext(ctx, "withdrawal resolved", slog.Int64("withdrawal_id", id), slog.String("status", string(target)))
	return w, nil
}

// Withdrawals lists merchant payout requests newest first.
func (u *LedgerUseCase) Withdrawals(ctx context.Context, merchantID int64) ([]model.Withdrawal, error) {
	return u.withdrawals.ListByMerchant(ctx, merchantID)
}

// TopUp credits a customer wallet.
func (u *LedgerUseCase) TopUp(ctx context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	if !validAmount(amount) {
		return decimal.Zero, domainErrors.ErrInvalidAmount
	}
	return u.users.CreditWallet(ctx, userID, amount)
}

// validAmount accepts positive amounts with at most two decimal places that
// fit the money columns.
func validAmount(amount decimal.Decimal) bool {
	return amount.IsPositive() && amount.Equal(amount.Truncate(2)) && !amount.GreaterThan(model.MaxMoney)
}
