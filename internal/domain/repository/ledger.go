package repository

import (
	"context"

	"github.com/polkiloo/foodcourt/internal/domain/model"
)

// LedgerRepository exposes merchant settlement balances.
type LedgerRepository interface {
	GetBalance(ctx context.Context, merchantID int64) (*model.MerchantBalance, error)
	Totals(ctx context.Context, merchantID int64) (*model.LedgerTotals, error)
	// Reconciliation reads the stored balance and the derived formula inputs
	// from one snapshot.
	Reconciliation(ctx context.Context, merchantID int64) (*model.Reconciliation, error)
	ListBalances(ctx context.Context, afterMerchantID int64, limit int) ([]model.MerchantBalance, error)
}
