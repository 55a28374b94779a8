package cache

import (
	"context"
	"sync"

	"github.com/mersinbot/masters-backend/internal/models"
)

// CatalogSource отдаёт справочники целиком. Реализуется каталожным
// репозиторием.
type CatalogSource interface {
	AllCategories(ctx context.Context) ([]models.Category, error)
	Districts(ctx context.Context) ([]models.District, error)
}

// CatalogCache держит в памяти соответствия id<->key для категорий и
// районов. Справочники фиксированные, кеш загружается один раз на старте
// и далее только читается.
type CatalogCache struct {
	mu sync.RWMutex

	categoryKeys map[int64]string
	categoryIDs  map[string]int64
	districtKeys map[int64]string
	districtIDs  map[string]int64
}

// NewCatalogCache создаёт пустой кеш справочников.
func NewCatalogCache() *CatalogCache {
	return &CatalogCache{
		categoryKeys: make(map[int64]string),
		categoryIDs:  make(map[string]int64),
		districtKeys: make(map[int64]string),
		districtIDs:  make(map[string]int64),
	}
}

// Load загружает оба справочника из источника, полностью заменяя
// текущее содержимое.
func (c *CatalogCache) Load(ctx context.Context, src CatalogSource) error {
	categories, err := src.AllCategories(ctx)
	if err != nil {
		return err
	}
	districts, err := src.Districts(ctx)
	if err != nil {
		return err
	}

	categoryKeys := make(map[int64]string, len(categories))
	categoryIDs := make(map[string]int64, len(categories))
	for _, cat := range categories {
		categoryKeys[cat.ID] = cat.Key
		if cat.Key != "" {
			categoryIDs[cat.Key] = cat.ID
		}
	}

	districtKeys := make(map[int64]string, len(districts))
	districtIDs := make(map[string]int64, len(districts))
	for _, d := range districts {
		districtKeys[d.ID] = d.Key
		if d.Key != "" {
			districtIDs[d.Key] = d.ID
		}
	}

	c.mu.Lock()
	c.categoryKeys = categoryKeys
	c.categoryIDs = categoryIDs
	c.districtKeys = districtKeys
	c.districtIDs = districtIDs
	c.mu.Unlock()

	return nil
}

// CategoryID возвращает id категории по ключу.
func (c *CatalogCache) CategoryID(key string) (int64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	id, ok := c.categoryIDs[key]
	return id, ok
}

// CategoryKey возвращает ключ категории по id.
func (c *CatalogCache) CategoryKey(id int64) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	key, ok := c.categoryKeys[id]
	return key, ok
}

// DistrictID возвращает id района по ключу.
func (c *CatalogCache) DistrictID(key string) (int64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	id, ok := c.districtIDs[key]
	return id, ok
}

// DistrictKey возвращает ключ района по id.
func (c *CatalogCache) DistrictKey(id int64) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	key, ok := c.districtKeys[id]
	return key, ok
}

// Sizes возвращает число загруженных категорий и районов.
func (c *CatalogCache) Sizes() (categories, districts int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.categoryKeys), len(c.districtKeys)
}
