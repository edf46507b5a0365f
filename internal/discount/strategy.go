package discount

import (
	"github.com/ruxsilva/basket-app/internal/domain"
)

// Strategy applies one promotional rule over a basket's line items and
// returns zero or more discount records. Implementations are pure: they
// never fail, never mutate the lines, and never see another strategy's
// output.
type Strategy interface {
	ApplyDiscount(items []domain.BasketItem) []domain.DiscountedItem
}

// DefaultStrategies is the fixed, ordered strategy set registered at
// process start.
func DefaultStrategies() []Strategy {
	return []Strategy{
		AppleStrategy{},
		SoupBreadStrategy{},
	}
}
