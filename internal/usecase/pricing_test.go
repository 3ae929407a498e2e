package usecase

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polkiloo/foodcourt/internal/domain/model"
)

func item(price int64, qty int) model.OrderLineItem {
	return model.OrderLineItem{Price: decimal.NewFromInt(price), Quantity: qty}
}

func TestQuoteItemsScenario(t *testing.T) {
	q := QuoteItems([]model.OrderLineItem{item(25000, 2), item(15000, 1)})

	assert.True(t, q.BasePrice.Equal(decimal.NewFromInt(65000)), "base %s", q.BasePrice)
	assert.True(t, q.HandlingFee.Equal(decimal.NewFromInt(9750)), "fee %s", q.HandlingFee)
	assert.True(t, q.Total.Equal(decimal.NewFromInt(74750)), "total %s", q.Total)
}

func TestHandlingFeeFloors(t *testing.T) {
	cases := map[string]string{
		"0":      "0",
		"1":      "0",
		"6":      "0",
		"7":      "1",
		"99.99":  "14",
		"1000":   "150",
		"10001":  "1500",
		"333.33": "49",
	}
	for base, want := range cases {
		got := HandlingFee(decimal.RequireFromString(base))
		assert.True(t, got.Equal(decimal.RequireFromString(want)), "floor(%s*0.15) = %s, want %s", base, got, want)
	}
}

func TestQuoteInvariantHolds(t *testing.T) {
	faker := gofakeit.New(42)
	for i := 0; i < 200; i++ {
		var items []model.OrderLineItem
		for n := faker.IntRange(1, 6); n > 0; n-- {
			items = append(items, item(int64(faker.IntRange(500, 150000)), faker.IntRange(1, 5)))
		}

		q := QuoteItems(items)
		require.True(t, q.Total.Equal(q.BasePrice.Add(q.HandlingFee)))
		require.True(t, q.HandlingFee.Equal(q.BasePrice.Mul(decimal.RequireFromString("0.15")).Floor()))
		require.True(t, q.HandlingFee.LessThanOrEqual(q.BasePrice.Mul(HandlingFeeRate)))
	}
}

func TestVariableFee(t *testing.T) {
	assert.Equal(t, "23000", VariableFee(decimal.NewFromInt(1000000)).String())
	assert.Equal(t, "0.02", VariableFee(decimal.NewFromInt(1)).String())
	assert.Equal(t, "1719.25", VariableFee(decimal.NewFromInt(74750)).String())
}
