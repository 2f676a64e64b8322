package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/campuscare/clinic-backend/internal/domain/entities"
	"github.com/campuscare/clinic-backend/internal/domain/providers"
	"github.com/campuscare/clinic-backend/internal/domain/repositories"
)

// Cache TTLs (in seconds)
const (
	medicineByIDTTL = 300
	inventoryTTL    = 60
)

const inventoryListCacheKey = "inventory:list"

func medicineCacheKey(id string) string {
	return fmt.Sprintf("medicine:%s", id)
}

// CachedMedicineInventoryAdapter wraps an inventory repository with
// read-through caching. Every write path invalidates, since stale
// quantities would defeat the low-stock threshold check.
type CachedMedicineInventoryAdapter struct {
	adapter repositories.MedicineInventoryRepository
	cache   providers.CacheProvider
}

// NewCachedMedicineInventoryAdapter creates a new cached inventory adapter
func NewCachedMedicineInventoryAdapter(adapter repositories.MedicineInventoryRepository, cache providers.CacheProvider) repositories.MedicineInventoryRepository {
	return &CachedMedicineInventoryAdapter{
		adapter: adapter,
		cache:   cache,
	}
}

// Create adds a new item and invalidates the inventory list
func (a *CachedMedicineInventoryAdapter) Create(ctx context.Context, item *entities.MedicineItem) error {
	if err := a.adapter.Create(ctx, item); err != nil {
		return err
	}
	a.invalidate(ctx, inventoryListCacheKey)
	return nil
}

// GetByID retrieves an inventory item with caching
func (a *CachedMedicineInventoryAdapter) GetByID(ctx context.Context, id string) (*entities.MedicineItem, error) {
	cacheKey := medicineCacheKey(id)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var item entities.MedicineItem
		if err := json.Unmarshal(cached, &item); err == nil {
			return &item, nil
		}
		log.Warn().Err(err).Str("medicine_id", id).Msg("failed to unmarshal cached medicine")
	}

	item, err := a.adapter.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(item); err == nil {
		if err := a.cache.Set(ctx, cacheKey, data, medicineByIDTTL); err != nil {
			log.Warn().Err(err).Str("medicine_id", id).Msg("failed to cache medicine")
		}
	}

	return item, nil
}

// Update updates an item and invalidates its cache entries
func (a *CachedMedicineInventoryAdapter) Update(ctx context.Context, item *entities.MedicineItem) error {
	if err := a.adapter.Update(ctx, item); err != nil {
		return err
	}
	a.invalidate(ctx, medicineCacheKey(item.ID), inventoryListCacheKey)
	return nil
}

// AdjustQuantity adjusts the stock and invalidates the item's cache entries
func (a *CachedMedicineInventoryAdapter) AdjustQuantity(ctx context.Context, id string, delta int) (*entities.MedicineItem, error) {
	item, err := a.adapter.AdjustQuantity(ctx, id, delta)
	if err != nil {
		return nil, err
	}
	a.invalidate(ctx, medicineCacheKey(id), inventoryListCacheKey)
	return item, nil
}

// List retrieves the full inventory with caching
func (a *CachedMedicineInventoryAdapter) List(ctx context.Context) ([]*entities.MedicineItem, error) {
	if cached, err := a.cache.Get(ctx, inventoryListCacheKey); err == nil {
		var items []*entities.MedicineItem
		if err := json.Unmarshal(cached, &items); err == nil {
			return items, nil
		}
		log.Warn().Err(err).Msg("failed to unmarshal cached inventory list")
	}

	items, err := a.adapter.List(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(items); err == nil {
		if err := a.cache.Set(ctx, inventoryListCacheKey, data, inventoryTTL); err != nil {
			log.Warn().Err(err).Msg("failed to cache inventory list")
		}
	}

	return items, nil
}

func (a *CachedMedicineInventoryAdapter) invalidate(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if err := a.cache.Delete(ctx, key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to invalidate cache key")
		}
	}
}
