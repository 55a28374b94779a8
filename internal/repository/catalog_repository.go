package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mersinbot/masters-backend/internal/models"
)

// Ошибки каталога.
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrDistrictNotFound = errors.New("district not found")
)

// CatalogRepository отвечает за справочники категорий и районов.
type CatalogRepository struct {
	db *sqlx.DB
}

// NewCatalogRepository создаёт новый экземпляр.
func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// ListChildren возвращает дочерние категории узла с числом их потомков.
// parentID == nil — корневые группы.
func (r *CatalogRepository) ListChildren(ctx context.Context, parentID *int64) ([]models.CategoryNode, error) {
	var nodes []models.CategoryNode
	var err error

	if parentID == nil {
		query := `
			SELECT c.id, c.parent_id, c.key_field, c.short_key,
			       (SELECT COUNT(*) FROM categories WHERE parent_id = c.id) AS child_count
			FROM categories c
			WHERE c.parent_id IS NULL
			ORDER BY c.key_field
		`
		err = r.db.SelectContext(ctx, &nodes, query)
	} else {
		query := `
			SELECT c.id, c.parent_id, c.key_field, c.short_key,
			       (SELECT COUNT(*) FROM categories WHERE parent_id = c.id) AS child_count
			FROM categories c
			WHERE c.parent_id = $1
			ORDER BY c.key_field
		`
		err = r.db.SelectContext(ctx, &nodes, query, *parentID)
	}
	if err != nil {
		return nil, fmt.Errorf("catalog repository: list children %w", err)
	}
	return nodes, nil
}

// AllCategories возвращает все категории дерева.
func (r *CatalogRepository) AllCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	query := `SELECT id, parent_id, key_field, short_key FROM categories ORDER BY parent_id, key_field`
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, fmt.Errorf("catalog repository: all categories %w", err)
	}
	return categories, nil
}

// GetCategoryByKey возвращает категорию по стабильному ключу.
func (r *CatalogRepository) GetCategoryByKey(ctx context.Context, key string) (*models.Category, error) {
	var category models.Category
	query := `SELECT id, parent_id, key_field, short_key FROM categories WHERE key_field = $1`
	if err := r.db.GetContext(ctx, &category, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("catalog repository: get category by key %w", err)
	}
	return &category, nil
}

// GetCategory возвращает категорию по идентификатору.
func (r *CatalogRepository) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	var category models.Category
	query := `SELECT id, parent_id, key_field, short_key FROM categories WHERE id = $1`
	if err := r.db.GetContext(ctx, &category, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("catalog repository: get category %w", err)
	}
	return &category, nil
}

// Districts возвращает полный список районов.
func (r *CatalogRepository) Districts(ctx context.Context) ([]models.District, error) {
	var districts []models.District
	if err := r.db.SelectContext(ctx, &districts, `SELECT id, key_field FROM districts ORDER BY key_field`); err != nil {
		return nil, fmt.Errorf("catalog repository: districts %w", err)
	}
	return districts, nil
}

// GetDistrictByKey возвращает район по стабильному ключу.
func (r *CatalogRepository) GetDistrictByKey(ctx context.Context, key string) (*models.District, error) {
	var district models.District
	if err := r.db.GetContext(ctx, &district, `SELECT id, key_field FROM districts WHERE key_field = $1`, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDistrictNotFound
		}
		return nil, fmt.Errorf("catalog repository: get district by key %w", err)
	}
	return &district, nil
}
