package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/foodcourt/internal/domain/model"
)

// UserRepository describes persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, login, passwordHash string, role model.Role) (*model.User, error)
	GetByLogin(ctx context.Context, login string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	// CreditWallet adds amount to the wallet and returns the new balance.
	CreditWallet(ctx context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error)
}
