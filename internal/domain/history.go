package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BasketHistory is the persisted record of one basket submission: a header
// with totals plus the line items that were bought. Immutable after save
// except for the generated ids.
type BasketHistory struct {
	ID            int64
	UserID        int64
	CreatedAt     time.Time
	TotalAmount   decimal.Decimal
	TotalDiscount decimal.Decimal
	FinalAmount   decimal.Decimal
	Items         []BasketHistoryItem
}

type BasketHistoryItem struct {
	ID              int64
	BasketHistoryID int64
	ItemName        string
	ItemPrice       decimal.Decimal
	Quantity        int
	LineTotal       decimal.Decimal
}

// PaginatedResult is one page of results plus the total row count, a view
// over a query rather than a stored entity.
type PaginatedResult[T any] struct {
	Items      []T
	TotalCount int
}
