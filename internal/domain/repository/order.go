package repository

import (
	"context"

	"github.com/polkiloo/foodcourt/internal/domain/model"
)

// OrderFilter narrows order listings. Zero fields are ignored.
type OrderFilter struct {
	CustomerID int64
	MerchantID int64
	Limit      uint64
}

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	// Create stores the order, its line items and the wallet debit for
	// wallet-funded orders in one transaction.
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]model.Order, error)
	// Transition applies change only when the stored status still equals
	// change.From and returns domain errors.ErrConflict otherwise.
	Transition(ctx context.Context, orderID int64, change model.StatusChange) (*model.Order, error)
}
