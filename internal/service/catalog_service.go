package service

import (
	"context"

	"github.com/mersinbot/masters-backend/internal/models"
)

// CatalogRepo — чтение справочников категорий и районов.
type CatalogRepo interface {
	ListChildren(ctx context.Context, parentID *int64) ([]models.CategoryNode, error)
	GetCategoryByKey(ctx context.Context, key string) (*models.Category, error)
	GetCategory(ctx context.Context, id int64) (*models.Category, error)
	Districts(ctx context.Context) ([]models.District, error)
	GetDistrictByKey(ctx context.Context, key string) (*models.District, error)
}

// CatalogService отдаёт справочники: дерево категорий и районы.
type CatalogService struct {
	repo CatalogRepo
}

// NewCatalogService создаёт сервис справочников.
func NewCatalogService(repo CatalogRepo) *CatalogService {
	return &CatalogService{repo: repo}
}

// Children возвращает уровень дерева категорий: parentID=nil — корневые
// группы, иначе — подкатегории группы.
func (s *CatalogService) Children(ctx context.Context, parentID *int64) ([]models.CategoryNode, error) {
	return s.repo.ListChildren(ctx, parentID)
}

// CategoryByKey возвращает категорию по ключу.
func (s *CatalogService) CategoryByKey(ctx context.Context, key string) (*models.Category, error) {
	return s.repo.GetCategoryByKey(ctx, key)
}

// Category возвращает категорию по идентификатору.
func (s *CatalogService) Category(ctx context.Context, id int64) (*models.Category, error) {
	return s.repo.GetCategory(ctx, id)
}

// Districts возвращает список районов.
func (s *CatalogService) Districts(ctx context.Context) ([]models.District, error) {
	return s.repo.Districts(ctx)
}

// DistrictByKey возвращает район по ключу.
func (s *CatalogService) DistrictByKey(ctx context.Context, key string) (*models.District, error) {
	return s.repo.GetDistrictByKey(ctx, key)
}
