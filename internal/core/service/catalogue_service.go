package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/toomuch2learn/catalogue-service/internal/core/domain"
	"github.com/toomuch2learn/catalogue-service/internal/port"
)

var ErrItemNotFound = errors.New("catalogue item not found")

// CatalogueService performs CRUD against the catalogue store and, after a
// successful create or update, hands the persisted snapshot to the event
// publisher. Events are never emitted speculatively or on a failed save.
type CatalogueService struct {
	repo   port.CatalogueRepository
	cache  port.CacheRepository
	events port.EventPublisher
	log    *zap.Logger
}

func NewCatalogueService(repo port.CatalogueRepository, cache port.CacheRepository, events port.EventPublisher, log *zap.Logger) *CatalogueService {
	return &CatalogueService{repo: repo, cache: cache, events: events, log: log}
}

// List returns all items sorted by name ascending.
func (s *CatalogueService) List(ctx context.Context) ([]domain.CatalogueItem, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("find all items: %w", err)
	}
	return items, nil
}

// Get returns the item for sku, reading through the cache.
func (s *CatalogueService) Get(ctx context.Context, sku string) (*domain.CatalogueItem, error) {
	cached, ok, err := s.cache.GetItem(ctx, sku)
	if err != nil {
		s.log.Warn("item cache read failed", zap.String("sku", sku), zap.Error(err))
	} else if ok {
		return cached, nil
	}

	item, err := s.repo.FindBySKU(ctx, sku)
	if err != nil {
		return nil, fmt.Errorf("find item by sku: %w", err)
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	if err := s.cache.SetItem(ctx, *item); err != nil {
		s.log.Warn("item cache write failed", zap.String("sku", sku), zap.Error(err))
	}
	return item, nil
}

// Create persists a new item and returns the assigned id. The CREATED event
// carries the snapshot as persisted, including the generated id.
func (s *CatalogueService) Create(ctx context.Context, item domain.CatalogueItem) (int64, error) {
	item.ID = 0
	item.CreatedOn = time.Now().UTC()
	item.UpdatedOn = nil

	id, err := s.repo.Create(ctx, item)
	if err != nil {
		return 0, fmt.Errorf("create item: %w", err)
	}
	item.ID = id

	if err := s.cache.SetItem(ctx, item); err != nil {
		s.log.Warn("item cache write failed", zap.String("sku", item.SKU), zap.Error(err))
	}
	s.events.Publish(domain.ItemEvent{Type: domain.EventCreated, Item: item})
	return id, nil
}

// Update applies name, description, price and inventory from patch onto the
// stored item for sku. Concurrent updates to the same sku are not serialized;
// an update based on a stale read can overwrite a concurrent one.
func (s *CatalogueService) Update(ctx context.Context, sku string, patch domain.CatalogueItem) error {
	existing, err := s.repo.FindBySKU(ctx, sku)
	if err != nil {
		return fmt.Errorf("find item by sku: %w", err)
	}
	if existing == nil {
		return ErrItemNotFound
	}

	existing.Name = patch.Name
	existing.Description = patch.Description
	existing.Price = patch.Price
	existing.Inventory = patch.Inventory
	now := time.Now().UTC()
	existing.UpdatedOn = &now

	if err := s.repo.Update(ctx, *existing); err != nil {
		return fmt.Errorf("update item: %w", err)
	}

	if err := s.cache.SetItem(ctx, *existing); err != nil {
		s.log.Warn("item cache write failed", zap.String("sku", sku), zap.Error(err))
	}
	s.events.Publish(domain.ItemEvent{Type: domain.EventUpdated, Item: *existing})
	return nil
}

// Delete removes the item for sku. No event is emitted for deletes.
func (s *CatalogueService) Delete(ctx context.Context, sku string) error {
	existing, err := s.repo.FindBySKU(ctx, sku)
	if err != nil {
		return fmt.Errorf("find item by sku: %w", err)
	}
	if existing == nil {
		return ErrItemNotFound
	}

	if err := s.repo.Delete(ctx, existing.ID); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if err := s.cache.DeleteItem(ctx, sku); err != nil {
		s.log.Warn("item cache invalidation failed", zap.String("sku", sku), zap.Error(err))
	}
	return nil
}
