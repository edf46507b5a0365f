package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruxsilva/basket-app/internal/cache"
	"github.com/ruxsilva/basket-app/internal/domain"
	"github.com/ruxsilva/basket-app/internal/repository"
)

type mockCatalogRepo struct {
	m     sync.Mutex
	items []domain.Item
	calls int
	err   error
}

func (m *mockCatalogRepo) GetAllItems(context.Context) ([]domain.Item, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.items, nil
}

func (m *mockCatalogRepo) GetItemByName(_ context.Context, name string) (*domain.Item, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	for _, item := range m.items {
		if strings.EqualFold(item.Name(), name) {
			return &item, nil
		}
	}
	return nil, repository.ErrItemNotFound
}

type mockCatalogCache struct {
	m     sync.RWMutex
	items []domain.Item
	byKey map[string]domain.Item
}

func newMockCatalogCache() *mockCatalogCache {
	return &mockCatalogCache{byKey: map[string]domain.Item{}}
}

func (m *mockCatalogCache) GetItems(context.Context) ([]domain.Item, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	if m.items == nil {
		return nil, cache.ErrCacheMiss
	}
	return m.items, nil
}

func (m *mockCatalogCache) SetItems(_ context.Context, items []domain.Item) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.items = items
	return nil
}

func (m *mockCatalogCache) GetItem(_ context.Context, name string) (*domain.Item, error) {
	m.m.RLock()
	defer m.m.RUnlock()
	item, ok := m.byKey[strings.ToLower(name)]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return &item, nil
}

func (m *mockCatalogCache) SetItem(_ context.Context, item domain.Item) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.byKey[strings.ToLower(item.Name())] = item
	return nil
}

func catalogFixture() []domain.Item {
	return []domain.Item{
		domain.NewItem("Soup", decimal.RequireFromString("0.65")),
		domain.NewItem("Bread", decimal.RequireFromString("0.80")),
	}
}

func TestCatalogGetAllItems_CacheMissFallsBackToRepo(t *testing.T) {
	repo := &mockCatalogRepo{items: catalogFixture()}
	c := newMockCatalogCache()
	svc := NewCatalogService(repo, c)

	items, err := svc.GetAllItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Soup", items[0].Name())

	// Cache is filled in the background.
	assert.Eventually(t, func() bool {
		cached, err := c.GetItems(context.Background())
		return err == nil && len(cached) == 2
	}, time.Second, 10*time.Millisecond)
}

func TestCatalogGetAllItems_CacheHitSkipsRepo(t *testing.T) {
	repo := &mockCatalogRepo{items: catalogFixture()}
	c := newMockCatalogCache()
	require.NoError(t, c.SetItems(context.Background(), catalogFixture()))

	svc := NewCatalogService(repo, c)

	items, err := svc.GetAllItems(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 2)

	repo.m.Lock()
	defer repo.m.Unlock()
	assert.Equal(t, 0, repo.calls)
}

func TestCatalogGetItemByName_UnknownNameIsNotCached(t *testing.T) {
	repo := &mockCatalogRepo{items: catalogFixture()}
	c := newMockCatalogCache()
	svc := NewCatalogService(repo, c)

	_, err := svc.GetItemByName(context.Background(), "Cheese")
	assert.ErrorIs(t, err, repository.ErrItemNotFound)

	_, err = c.GetItem(context.Background(), "Cheese")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestCatalogGetItemByName_ReadThrough(t *testing.T) {
	repo := &mockCatalogRepo{items: catalogFixture()}
	c := newMockCatalogCache()
	svc := NewCatalogService(repo, c)

	item, err := svc.GetItemByName(context.Background(), "Bread")
	require.NoError(t, err)
	assert.Equal(t, "Bread", item.Name())

	assert.Eventually(t, func() bool {
		cached, err := c.GetItem(context.Background(), "Bread")
		return err == nil && cached.Name() == "Bread"
	}, time.Second, 10*time.Millisecond)
}
