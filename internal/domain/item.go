package domain

import "github.com/shopspring/decimal"

// Item is a catalog entry. Items come from persisted catalog rows and are
// never mutated; identity is the name (case-insensitive) within the catalog.
type Item struct {
	name  string
	price decimal.Decimal
}

func NewItem(name string, price decimal.Decimal) Item {
	return Item{name: name, price: price}
}

func (i Item) Name() string {
	return i.name
}

func (i Item) Price() decimal.Decimal {
	return i.price
}
