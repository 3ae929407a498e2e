package repository

import (
	"context"

	"github.com/polkiloo/foodcourt/internal/domain/model"
)

// FoodRepository resolves catalog entries for order intake.
type FoodRepository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]model.Food, error)
}
