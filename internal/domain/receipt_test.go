package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReceipt_FinalTotalIsDerived(t *testing.T) {
	totalBefore := decimal.RequireFromString("2.10")
	totalDiscount := decimal.RequireFromString("0.40")

	receipt := NewReceipt(nil, nil, totalBefore, totalDiscount)

	assert.True(t, receipt.FinalTotal().Equal(decimal.RequireFromString("1.70")),
		"expected 1.70, got %s", receipt.FinalTotal())
	assert.True(t, receipt.FinalTotal().Equal(receipt.TotalBeforeDiscount().Sub(receipt.TotalDiscount())))
}

func TestNewReceipt_ZeroTotals(t *testing.T) {
	receipt := NewReceipt(nil, nil, decimal.Zero, decimal.Zero)

	assert.True(t, receipt.FinalTotal().IsZero())
	assert.Empty(t, receipt.Items())
	assert.Empty(t, receipt.Discounts())
}

func TestNewReceipt_CopiesInputSequences(t *testing.T) {
	soup := NewItem("Soup", decimal.RequireFromString("0.65"))
	bread := NewItem("Bread", decimal.RequireFromString("0.80"))

	items := []BasketItem{NewBasketItem(soup, 2)}
	discounts := []DiscountedItem{{
		ItemName:       "Bread",
		OriginalPrice:  decimal.RequireFromString("0.80"),
		DiscountAmount: decimal.RequireFromString("0.40"),
		DiscountReason: "half price",
	}}

	receipt := NewReceipt(items, discounts, decimal.RequireFromString("2.10"), decimal.RequireFromString("0.40"))

	items[0] = NewBasketItem(bread, 7)
	discounts[0].ItemName = "Milk"

	require.Len(t, receipt.Items(), 1)
	assert.Equal(t, "Soup", receipt.Items()[0].Item().Name())
	require.Len(t, receipt.Discounts(), 1)
	assert.Equal(t, "Bread", receipt.Discounts()[0].ItemName)
}
