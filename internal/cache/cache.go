package cache

import (
	"context"
	"errors"

	"github.com/ruxsilva/basket-app/internal/domain"
)

// CatalogCache keeps catalog reads off the database. Misses are reported
// via ErrCacheMiss; any other error means the cache itself failed.
type CatalogCache interface {
	GetItems(ctx context.Context) ([]domain.Item, error)
	SetItems(ctx context.Context, items []domain.Item) error
	GetItem(ctx context.Context, name string) (*domain.Item, error)
	SetItem(ctx context.Context, item domain.Item) error
}

var ErrCacheMiss = errors.New("cache miss")
