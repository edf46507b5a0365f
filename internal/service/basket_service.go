package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ruxsilva/basket-app/internal/discount"
	"github.com/ruxsilva/basket-app/internal/domain"
	"github.com/ruxsilva/basket-app/internal/repository"
)

// RequestedLine is one (name, quantity) pair as submitted by the client,
// before catalog resolution.
type RequestedLine struct {
	Name     string
	Quantity int
}

// CatalogLookup resolves a submitted item name to a catalog item. A lookup
// for an unknown name returns repository.ErrItemNotFound.
type CatalogLookup interface {
	GetItemByName(ctx context.Context, name string) (*domain.Item, error)
}

type BasketService struct {
	catalog    CatalogLookup
	strategies []discount.Strategy
}

func NewBasketService(catalog CatalogLookup, strategies []discount.Strategy) *BasketService {
	return &BasketService{
		catalog:    catalog,
		strategies: strategies,
	}
}

// BuildBasket resolves requested lines against the catalog. Blank names and
// names the catalog does not know are silently skipped, so the resulting
// basket contains only resolvable lines.
func (s *BasketService) BuildBasket(ctx context.Context, lines []RequestedLine) (domain.Basket, error) {
	var items []domain.BasketItem

	for _, line := range lines {
		if strings.TrimSpace(line.Name) == "" {
			continue
		}

		item, err := s.catalog.GetItemByName(ctx, line.Name)
		if errors.Is(err, repository.ErrItemNotFound) {
			continue
		}
		if err != nil {
			return domain.Basket{}, fmt.Errorf("resolve basket line %q: %w", line.Name, err)
		}

		items = append(items, domain.NewBasketItem(*item, line.Quantity))
	}

	return domain.NewBasket(items), nil
}

// ProcessBasket computes the receipt for a basket: the raw total, every
// registered strategy applied to the full line set in registration order,
// and the derived final total. Pure and side-effect free; an empty basket
// yields a zero receipt.
func (s *BasketService) ProcessBasket(basket domain.Basket) domain.Receipt {
	totalBeforeDiscount := decimal.Zero
	for _, line := range basket.Items() {
		totalBeforeDiscount = totalBeforeDiscount.Add(line.LineTotal())
	}

	var allDiscounts []domain.DiscountedItem
	for _, strategy := range s.strategies {
		allDiscounts = append(allDiscounts, strategy.ApplyDiscount(basket.Items())...)
	}

	totalDiscount := decimal.Zero
	for _, d := range allDiscounts {
		totalDiscount = totalDiscount.Add(d.DiscountAmount)
	}

	return domain.NewReceipt(basket.Items(), allDiscounts, totalBeforeDiscount, totalDiscount)
}
