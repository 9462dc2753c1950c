package port

import (
	"context"

	"github.com/toomuch2learn/catalogue-service/internal/core/domain"
)

type CatalogueRepository interface {
	// FindAll returns every item sorted by name ascending
	FindAll(ctx context.Context) ([]domain.CatalogueItem, error)

	// FindBySKU returns the item for the given sku, or nil if absent
	FindBySKU(ctx context.Context, sku string) (*domain.CatalogueItem, error)

	// Create inserts a new item and returns the assigned id
	Create(ctx context.Context, item domain.CatalogueItem) (int64, error)

	// Update persists a changed item identified by its id
	Update(ctx context.Context, item domain.CatalogueItem) error

	// Delete removes an item by id
	Delete(ctx context.Context, id int64) error
}
