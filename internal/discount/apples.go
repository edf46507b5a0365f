package discount

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ruxsilva/basket-app/internal/domain"
)

var appleDiscountRate = decimal.RequireFromString("0.10")

// AppleStrategy gives 10% off every line of apples.
type AppleStrategy struct{}

func (AppleStrategy) ApplyDiscount(items []domain.BasketItem) []domain.DiscountedItem {
	var discounted []domain.DiscountedItem

	for _, line := range items {
		if !strings.EqualFold(line.Item().Name(), applesName) {
			continue
		}

		originalPrice := line.Item().Price().Mul(decimal.NewFromInt(int64(line.Quantity())))
		discounted = append(discounted, domain.DiscountedItem{
			ItemName:       line.Item().Name(),
			OriginalPrice:  originalPrice,
			DiscountAmount: originalPrice.Mul(appleDiscountRate),
			DiscountReason: applesReason,
		})
	}

	return discounted
}
