package domain

import "github.com/shopspring/decimal"

// BasketItem is one basket line: a catalog item bound to a quantity.
type BasketItem struct {
	item     Item
	quantity int
}

func NewBasketItem(item Item, quantity int) BasketItem {
	return BasketItem{item: item, quantity: quantity}
}

func (b BasketItem) Item() Item {
	return b.item
}

func (b BasketItem) Quantity() int {
	return b.quantity
}

func (b BasketItem) LineTotal() decimal.Decimal {
	return b.item.Price().Mul(decimal.NewFromInt(int64(b.quantity)))
}

// Basket is an ordered sequence of basket lines. The constructor takes a
// defensive copy, so mutating the caller's slice afterwards does not change
// the basket's contents.
type Basket struct {
	items []BasketItem
}

func NewBasket(items []BasketItem) Basket {
	copied := make([]BasketItem, len(items))
	copy(copied, items)
	return Basket{items: copied}
}

func (b Basket) Items() []BasketItem {
	return b.items
}
