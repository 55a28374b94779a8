package service

import (
	"context"
	"fmt"

	"github.com/mersinbot/masters-backend/internal/models"
)

// MasterSearcher — запрос подбора мастеров.
type MasterSearcher interface {
	Search(ctx context.Context, categoryIDs, districtIDs []int64, excludeUserID *int64) ([]models.MasterSearchItem, error)
}

// SearchService выполняет подбор мастеров по категориям и районам.
type SearchService struct {
	masters MasterSearcher
}

// NewSearchService создаёт сервис подбора.
func NewSearchService(masters MasterSearcher) *SearchService {
	return &SearchService{masters: masters}
}

// Find возвращает мастеров, закрывающих хотя бы одну выбранную категорию
// и работающих хотя бы в одном выбранном районе. Пустой набор категорий
// или районов даёт пустую выдачу без обращения к БД.
func (s *SearchService) Find(ctx context.Context, categoryIDs, districtIDs []int64, excludeUserID *int64) ([]models.MasterSearchItem, error) {
	if len(categoryIDs) == 0 || len(districtIDs) == 0 {
		return []models.MasterSearchItem{}, nil
	}

	items, err := s.masters.Search(ctx, categoryIDs, districtIDs, excludeUserID)
	if err != nil {
		return nil, fmt.Errorf("search: подбор мастеров: %w", err)
	}
	return items, nil
}
