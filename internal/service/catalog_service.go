package service

import (
	"context"
	"errors"
	"log"

	"golang.org/x/sync/singleflight"

	"github.com/ruxsilva/basket-app/internal/cache"
	"github.com/ruxsilva/basket-app/internal/domain"
	"github.com/ruxsilva/basket-app/internal/repository"
)

// CatalogService serves read-only catalog data through a redis read-through
// cache. Cache failures degrade to the database; misses are filled in the
// background.
type CatalogService struct {
	repo  repository.CatalogRepository
	cache cache.CatalogCache
	sfg   singleflight.Group // Prevents cache stampede
}

func NewCatalogService(repo repository.CatalogRepository, cache cache.CatalogCache) *CatalogService {
	return &CatalogService{
		repo:  repo,
		cache: cache,
	}
}

func (s *CatalogService) GetAllItems(ctx context.Context) ([]domain.Item, error) {
	v, err, _ := s.sfg.Do("catalog:items", func() (interface{}, error) {
		items, err := s.cache.GetItems(ctx)
		if err == nil {
			return items, nil
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("cache get error: %v", err)
		}

		items, errGet := s.repo.GetAllItems(ctx)
		if errGet != nil {
			return nil, errGet
		}

		go func() {
			if errSet := s.cache.SetItems(context.Background(), items); errSet != nil {
				log.Printf("cache set error: %v", errSet)
			}
		}()

		return items, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]domain.Item), nil
}

func (s *CatalogService) GetItemByName(ctx context.Context, name string) (*domain.Item, error) {
	v, err, _ := s.sfg.Do("catalog:item:"+name, func() (interface{}, error) {
		item, err := s.cache.GetItem(ctx, name)
		if err == nil {
			return item, nil
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("cache get error: %v", err)
		}

		item, errGet := s.repo.GetItemByName(ctx, name)
		if errGet != nil {
			return nil, errGet // unknown names are not cached
		}

		go func() {
			if errSet := s.cache.SetItem(context.Background(), *item); errSet != nil {
				log.Printf("cache set error: %v", errSet)
			}
		}()

		return item, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.Item), nil
}
