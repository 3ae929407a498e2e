package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/foodcourt/internal/domain/errors"
	"github.com/polkiloo/foodcourt/internal/domain/model"
)

// --- LedgerRepository implementation ---

func (r *ledgerRepository) GetBalance(ctx context.Context, merchantID int64) (*model.MerchantBalance, error) {
	const query = `SELECT available, withdrawn FROM merchant_balances WHERE merchant_id=$1`

	balance := model.MerchantBalance{MerchantID: merchantID, Available: decimal.Zero, Withdrawn: decimal.Zero}
	err := r.storage.pool.QueryRow(ctx, query, merchantID).Scan(&balance.Available, &balance.Withdrawn)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	return &balance, nil
}

func (r *ledgerRepository) Totals(ctx context.Context, merchantID int64) (*model.LedgerTotals, error) {
	const query = `SELECT
                       (SELECT COALESCE(SUM(base_price), 0) FROM orders
                        WHERE merchant_id=$1 AND status='completed'),
                       (SELECT COALESCE(SUM(amount), 0) FROM withdrawals
                        WHERE merchant_id=$1 AND status IN ('pending', 'approved'))`

	var totals model.LedgerTotals
	if err := r.storage.pool.QueryRow(ctx, query, merchantID).Scan(&totals.CompletedRevenue, &totals.ReservedPayouts); err != nil {
		return nil, err
	}
	return &totals, nil
}

func (r *ledgerRepository) Reconciliation(ctx context.Context, merchantID int64) (*model.Reconciliation, error) {
	const query = `SELECT
                       COALESCE((SELECT available FROM merchant_balances WHERE merchant_id=$1), 0),
                       (SELECT COALESCE(SUM(base_price), 0) FROM orders
                        WHERE merchant_id=$1 AND status='completed'),
                       (SELECT COALESCE(SUM(amount), 0) FROM withdrawals
                        WHERE merchant_id=$1 AND status IN ('pending', 'approved'))`

	var (
		stored decimal.Decimal
		totals model.LedgerTotals
	)
	err := r.storage.pool.QueryRow(ctx, query, merchantID).Scan(&stored, &totals.CompletedRevenue, &totals.ReservedPayouts)
	if err != nil {
		return nil, err
	}
	return &model.Reconciliation{MerchantID: merchantID, Stored: stored, Derived: totals.Derived()}, nil
}

func (r *ledgerRepository) ListBalances(ctx context.Context, afterMerchantID int64, limit int) ([]model.MerchantBalance, error) {
	query, args, err := psql.Select("merchant_id", "available", "withdrawn").
		From("merchant_balances").
		Where(sq.Gt{"merchant_id": afterMerchantID}).
		OrderBy("merchant_id").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build balances query: %w", err)
	}

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.MerchantBalance
	for rows.Next() {
		var b model.MerchantBalance
		if err := rows.Scan(&b.MerchantID, &b.Available, &b.Withdrawn); err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- WithdrawalRepository implementation ---

const withdrawalColumns = `id, merchant_id, amount, status, bank_name, account_number, account_holder, created_at, resolved_at`

func scanWithdrawal(row pgx.Row) (*model.Withdrawal, error) {
	var w model.Withdrawal
	err := row.Scan(&w.ID, &w.MerchantID, &w.Amount, &w.Status,
		&w.Payout.BankName, &w.Payout.AccountNumber, &w.Payout.AccountHolder, &w.CreatedAt, &w.ResolvedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *withdrawalRepository) Create(ctx context.Context, w *model.Withdrawal) (*model.Withdrawal, error) {
	var created *model.Withdrawal
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		available := decimal.Zero
		const lock = `SELECT available FROM merchant_balances WHERE merchant_id=$1 FOR UPDATE`
		if err := tx.QueryRow(ctx, lock, w.MerchantID).Scan(&available); err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return err
		}
		if w.Amount.GreaterThan(available) {
			return domainErrors.ErrInvalidAmount
		}

		const reserve = `UPDATE merchant_balances SET available = available - $1 WHERE merchant_id=$2`
		if _, err := tx.Exec(ctx, reserve, w.Amount, w.MerchantID); err != nil {
			return fmt.Errorf("reserve payout: %w", err)
		}

		const insert = `INSERT INTO withdrawals (merchant_id, amount, status, bank_name, account_number, account_holder)
                        VALUES ($1, $2, $3, $4, $5, $6)
                        RETURNING ` + withdrawalColumns
		var err error
		created, err = scanWithdrawal(tx.QueryRow(ctx, insert, w.MerchantID, w.Amount, model.WithdrawalStatusPending,
			w.Payout.BankName, w.Payout.AccountNumber, w.Payout.AccountHolder))
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *withdrawalRepository) GetByID(ctx context.Context, id int64) (*model.Withdrawal, error) {
	const query = `SELECT ` + withdrawalColumns + ` FROM withdrawals WHERE id=$1`
	w, err := scanWithdrawal(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return w, nil
}

func (r *withdrawalRepository) ListByMerchant(ctx context.Context, merchantID int64) ([]model.Withdrawal, error) {
	const query = `SELECT ` + withdrawalColumns + ` FROM withdrawals
                   WHERE merchant_id=$1 ORDER BY created_at DESC, id DESC`
	rows, err := r.storage.pool.Query(ctx, query, merchantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Withdrawal
	for rows.Next() {
		w, err := scanWithdrawal(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *withdrawalRepository) Resolve(ctx context.Context, id int64, status model.WithdrawalStatus) (*model.Withdrawal, error) {
	var resolved *model.Withdrawal
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const update = `UPDATE withdrawals SET status=$1, resolved_at=NOW()
                        WHERE id=$2 AND status='pending'
                        RETURNING ` + withdrawalColumns
		var err error
		resolved, err = scanWithdrawal(tx.QueryRow(ctx, update, status, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return missingOrConflict(ctx, tx, `SELECT status FROM withdrawals WHERE id=$1`, id)
			}
			return err
		}

		var settle string
		switch status {
		case model.WithdrawalStatusApproved:
			settle = `UPDATE merchant_balances SET withdrawn = withdrawn + $1 WHERE merchant_id=$2`
		case model.WithdrawalStatusRejected:
			settle = `UPDATE merchant_balances SET available = available + $1 WHERE merchant_id=$2`
		default:
			return domainErrors.Validation("withdrawal status must be approved or rejected")
		}
		if _, err := tx.Exec(ctx, settle, resolved.Amount, resolved.MerchantID); err != nil {
			return fmt.Errorf("settle withdrawal: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resolved, nil
}
