package port

import (
	"context"

	"github.com/toomuch2learn/catalogue-service/internal/core/domain"
)

type CacheRepository interface {
	// GetItem returns the cached item for sku, reporting a miss with false
	GetItem(ctx context.Context, sku string) (*domain.CatalogueItem, bool, error)

	// SetItem caches an item snapshot keyed by its sku
	SetItem(ctx context.Context, item domain.CatalogueItem) error

	// DeleteItem drops the cache entry for sku
	DeleteItem(ctx context.Context, sku string) error
}
