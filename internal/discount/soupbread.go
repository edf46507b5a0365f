package discount

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ruxsilva/basket-app/internal/domain"
)

var breadDiscountRate = decimal.RequireFromString("0.50")

// SoupBreadStrategy gives half price on one loaf of bread for every two
// tins of soup. Only the first soup line and the first bread line count;
// at most one discount record is emitted per basket.
type SoupBreadStrategy struct{}

func (SoupBreadStrategy) ApplyDiscount(items []domain.BasketItem) []domain.DiscountedItem {
	var soupLine, breadLine *domain.BasketItem

	for i := range items {
		switch {
		case soupLine == nil && strings.EqualFold(items[i].Item().Name(), soupName):
			soupLine = &items[i]
		case breadLine == nil && strings.EqualFold(items[i].Item().Name(), breadName):
			breadLine = &items[i]
		}
	}

	if soupLine == nil || breadLine == nil {
		return nil
	}

	soupPairs := soupLine.Quantity() / 2
	breadToDiscount := min(soupPairs, breadLine.Quantity())
	if breadToDiscount <= 0 {
		return nil
	}

	originalPrice := breadLine.Item().Price().Mul(decimal.NewFromInt(int64(breadToDiscount)))

	return []domain.DiscountedItem{{
		ItemName:       breadLine.Item().Name(),
		OriginalPrice:  originalPrice,
		DiscountAmount: originalPrice.Mul(breadDiscountRate),
		DiscountReason: fmt.Sprintf(soupBreadReasonFmt, breadToDiscount),
	}}
}
