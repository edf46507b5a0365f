package domain

import "github.com/shopspring/decimal"

// DiscountedItem records one promotional discount produced by a strategy.
// It is returned to the client on the receipt but never persisted directly.
type DiscountedItem struct {
	ItemName       string
	OriginalPrice  decimal.Decimal
	DiscountAmount decimal.Decimal
	DiscountReason string
}

// Receipt is the finalized outcome of processing a basket. FinalTotal is
// always derived from the two totals at construction, never set directly.
type Receipt struct {
	items               []BasketItem
	discounts           []DiscountedItem
	totalBeforeDiscount decimal.Decimal
	totalDiscount       decimal.Decimal
	finalTotal          decimal.Decimal
}

func NewReceipt(items []BasketItem, discounts []DiscountedItem, totalBeforeDiscount, totalDiscount decimal.Decimal) Receipt {
	copiedItems := make([]BasketItem, len(items))
	copy(copiedItems, items)
	copiedDiscounts := make([]DiscountedItem, len(discounts))
	copy(copiedDiscounts, discounts)

	return Receipt{
		items:               copiedItems,
		discounts:           copiedDiscounts,
		totalBeforeDiscount: totalBeforeDiscount,
		totalDiscount:       totalDiscount,
		finalTotal:          totalBeforeDiscount.Sub(totalDiscount),
	}
}

func (r Receipt) Items() []BasketItem {
	return r.items
}

func (r Receipt) Discounts() []DiscountedItem {
	return r.discounts
}

func (r Receipt) TotalBeforeDiscount() decimal.Decimal {
	return r.totalBeforeDiscount
}

func (r Receipt) TotalDiscount() decimal.Decimal {
	return r.totalDiscount
}

func (r Receipt) FinalTotal() decimal.Decimal {
	return r.finalTotal
}
