package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mersinbot/masters-backend/internal/models"
)

type staticCatalog struct {
	categories []models.Category
	districts  []models.District
}

func (s *staticCatalog) AllCategories(context.Context) ([]models.Category, error) {
	return s.categories, nil
}

func (s *staticCatalog) Districts(context.Context) ([]models.District, error) {
	return s.districts, nil
}

func TestCatalogCache_Load(t *testing.T) {
	src := &staticCatalog{
		categories: []models.Category{
			{ID: 1, Key: "home_living"},
			{ID: 2, Key: "plumbing_repair", ParentID: ptr(int64(1))},
		},
		districts: []models.District{
			{ID: 3, Key: "mezitli"},
			{ID: 4, Key: "erdemli"},
		},
	}

	c := NewCatalogCache()
	require.NoError(t, c.Load(context.Background(), src))

	cats, dists := c.Sizes()
	assert.Equal(t, 2, cats)
	assert.Equal(t, 2, dists)

	id, ok := c.CategoryID("plumbing_repair")
	require.True(t, ok)
	assert.Equal(t, int64(2), id)

	key, ok := c.DistrictKey(3)
	require.True(t, ok)
	assert.Equal(t, "mezitli", key)

	_, ok = c.CategoryID("unknown")
	assert.False(t, ok)
}

func ptr[T any](v T) *T { return &v }
