package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/toomuch2learn/catalogue-service/internal/core/domain"
)

const (
	itemKeyPrefix = "catalogue:item:"
	itemCacheTTL  = 10 * time.Minute
)

// RedisAdapter caches item snapshots keyed by sku. Entries are refreshed on
// every successful write and dropped on delete, so a hit always reflects the
// last write this process observed.
type RedisAdapter struct {
	client *redis.Client
}

func NewRedisAdapter(client *redis.Client) *RedisAdapter {
	return &RedisAdapter{client: client}
}

func (r *RedisAdapter) GetItem(ctx context.Context, sku string) (*domain.CatalogueItem, bool, error) {
	raw, err := r.client.Get(ctx, itemKeyPrefix+sku).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get cached item: %w", err)
	}

	var item domain.CatalogueItem
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, false, fmt.Errorf("decode cached item: %w", err)
	}
	return &item, true, nil
}

func (r *RedisAdapter) SetItem(ctx context.Context, item domain.CatalogueItem) error {
	raw, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("encode item: %w", err)
	}
	if err := r.client.Set(ctx, itemKeyPrefix+item.SKU, raw, itemCacheTTL).Err(); err != nil {
		return fmt.Errorf("set cached item: %w", err)
	}
	return nil
}

func (r *RedisAdapter) DeleteItem(ctx context.Context, sku string) error {
	if err := r.client.Del(ctx, itemKeyPrefix+sku).Err(); err != nil {
		return fmt.Errorf("delete cached item: %w", err)
	}
	return nil
}
