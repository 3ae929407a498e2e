package repository

import (
	"context"

	"github.com/polkiloo/foodcourt/internal/domain/model"
)

// WithdrawalRepository manages merchant payout requests.
type WithdrawalRepository interface {
	// Create reserves the amount from the merchant balance and stores a
	// pending request. Returns domain errors.ErrInvalidAmount when the
	// balance does not cover the amount.
	Create(ctx context.Context, w *model.Withdrawal) (*model.Withdrawal, error)
	GetByID(ctx context.Context, id int64) (*model.Withdrawal, error)
	ListByMerchant(ctx context.Context, merchantID int64) ([]model.Withdrawal, error)
	Resolve(ctx context.Context, id int64, status model.WithdrawalStatus) (*model.Withdrawal, error)
}
