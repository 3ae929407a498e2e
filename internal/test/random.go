package test

import (
	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"

	"github.com/polkiloo/foodcourt/internal/domain/model"
)

// RandomASCIIString returns a pseudo-random letter string within the provided bounds.
// When maxLen equals minLen the resulting string always has that exact length.
func RandomASCIIString(minLen, maxLen int) string {
	if minLen <= 0 {
		minLen = 1
	}
	if maxLen < minLen {
		maxLen = minLen
	}
	return gofakeit.LetterN(uint(gofakeit.Number(minLen, maxLen)))
}

// RandomFood builds an available catalog entry of merchantID with a whole price.
func RandomFood(id, merchantID int64) model.Food {
	return model.Food{
		ID:         id,
		MerchantID: merchantID,
		Name:       gofakeit.BeerName(),
		Price:      decimal.NewFromInt(int64(gofakeit.Number(1, 500) * 1000)),
		Available:  true,
	}
}
