package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/ruxsilva/basket-app/internal/domain"
)

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client:  client,
		baseTTL: 15 * time.Minute,
	}
}

type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

// cachedItem is the wire form of a catalog item in redis.
type cachedItem struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

func (r RedisCache) GetItems(ctx context.Context) ([]domain.Item, error) {
	data, err := r.client.Get(ctx, itemsKey()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var cached []cachedItem
	if err2 := json.Unmarshal(data, &cached); err2 != nil {
		return nil, fmt.Errorf("unmarshal items failed: %w", err2)
	}

	items := make([]domain.Item, len(cached))
	for i, c := range cached {
		items[i] = domain.NewItem(c.Name, c.Price)
	}
	return items, nil
}

func (r RedisCache) SetItems(ctx context.Context, items []domain.Item) error {
	cached := make([]cachedItem, len(items))
	for i, item := range items {
		cached[i] = cachedItem{Name: item.Name(), Price: item.Price()}
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("marshal items failed: %w", err)
	}

	if ret := r.client.Set(ctx, itemsKey(), string(data), r.ttl()); ret.Err() != nil {
		return fmt.Errorf("redis set failed: %w", ret.Err())
	}
	return nil
}

func (r RedisCache) GetItem(ctx context.Context, name string) (*domain.Item, error) {
	data, err := r.client.Get(ctx, itemKey(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var cached cachedItem
	if err2 := json.Unmarshal(data, &cached); err2 != nil {
		return nil, fmt.Errorf("unmarshal item failed: %w", err2)
	}

	item := domain.NewItem(cached.Name, cached.Price)
	return &item, nil
}

func (r RedisCache) SetItem(ctx context.Context, item domain.Item) error {
	data, err := json.Marshal(cachedItem{Name: item.Name(), Price: item.Price()})
	if err != nil {
		return fmt.Errorf("marshal item failed: %w", err)
	}

	if ret := r.client.Set(ctx, itemKey(item.Name()), string(data), r.ttl()); ret.Err() != nil {
		return fmt.Errorf("redis set failed: %w", ret.Err())
	}
	return nil
}

func (r RedisCache) ttl() time.Duration {
	jitter := time.Duration(rand.Intn(5)) * time.Minute
	return r.baseTTL + jitter
}

func itemsKey() string {
	return "catalog:items"
}

func itemKey(name string) string {
	return fmt.Sprintf("catalog:item:%s", strings.ToLower(name))
}
