package service

import (
	"context"
	"fmt"
	"math"

	"github.com/mersinbot/masters-backend/internal/models"
	"github.com/mersinbot/masters-backend/internal/repository"
)

// ReputationRepo — хранилище критериев и голосов.
type ReputationRepo interface {
	Criteria(ctx context.Context, roleClient bool) ([]models.ReputationCriterion, error)
	SaveVotes(ctx context.Context, fromClient bool, orderID int64, criterionIDs []int64) error
	MasterVotedOrders(ctx context.Context, masterID int64) (int, error)
	MasterCriterionCounts(ctx context.Context, masterID int64) ([]models.CriterionCount, error)
	ClientVotedOrders(ctx context.Context, userID int64) (int, error)
	ClientCriterionCounts(ctx context.Context, userID int64) ([]models.CriterionCount, error)
}

// OrderRepoForReputation — чтение заказа при голосовании.
type OrderRepoForReputation interface {
	GetByID(ctx context.Context, id int64) (*models.Order, error)
}

// ReputationService отвечает за чек-лист репутации: голоса по заказам и
// агрегаты по обеим ролям.
type ReputationService struct {
	repo   ReputationRepo
	orders OrderRepoForReputation
}

// NewReputationService создаёт сервис репутации.
func NewReputationService(repo ReputationRepo, orders OrderRepoForReputation) *ReputationService {
	return &ReputationService{repo: repo, orders: orders}
}

// Criteria возвращает критерии направления. roleClient=true — критерии,
// которыми клиент отмечает мастера.
func (s *ReputationService) Criteria(ctx context.Context, roleClient bool) ([]models.ReputationCriterion, error) {
	return s.repo.Criteria(ctx, roleClient)
}

// SubmitClientVotes записывает отметки клиента о мастере по завершённому
// заказу. Повторная отправка заменяет прежний набор целиком.
func (s *ReputationService) SubmitClientVotes(ctx context.Context, orderID, clientID int64, criterionIDs []int64) error {
	order, err := s.votableOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if order.ClientID != clientID {
		return ErrNotOrderParticipant
	}

	if err := s.checkCriteria(ctx, true, criterionIDs); err != nil {
		return err
	}
	return s.repo.SaveVotes(ctx, true, orderID, criterionIDs)
}

// SubmitMasterVotes записывает отметки мастера о клиенте.
func (s *ReputationService) SubmitMasterVotes(ctx context.Context, orderID, masterID int64, criterionIDs []int64) error {
	order, err := s.votableOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if order.MasterID != masterID {
		return ErrNotOrderParticipant
	}

	if err := s.checkCriteria(ctx, false, criterionIDs); err != nil {
		return err
	}
	return s.repo.SaveVotes(ctx, false, orderID, criterionIDs)
}

// MasterStats возвращает репутацию мастера: знаменатель — число
// различных заказов с голосами клиентов, процент по каждому критерию
// направления. Критерии без голосов присутствуют с нулями.
func (s *ReputationService) MasterStats(ctx context.Context, masterID int64) (*models.ReputationStats, error) {
	total, err := s.repo.MasterVotedOrders(ctx, masterID)
	if err != nil {
		return nil, fmt.Errorf("reputation: заказы с голосами: %w", err)
	}
	counts, err := s.repo.MasterCriterionCounts(ctx, masterID)
	if err != nil {
		return nil, fmt.Errorf("reputation: счётчики критериев: %w", err)
	}
	return s.buildStats(ctx, true, total, counts)
}

// ClientStats возвращает репутацию пользователя как клиента.
func (s *ReputationService) ClientStats(ctx context.Context, userID int64) (*models.ReputationStats, error) {
	total, err := s.repo.ClientVotedOrders(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("reputation: заказы с голосами: %w", err)
	}
	counts, err := s.repo.ClientCriterionCounts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("reputation: счётчики критериев: %w", err)
	}
	return s.buildStats(ctx, false, total, counts)
}

// UserReputation собирает репутацию пользователя в обеих ролях.
// masterID=nil даёт нулевую мастерскую часть с полным набором критериев.
func (s *ReputationService) UserReputation(ctx context.Context, userID int64, masterID *int64) (*models.UserReputation, error) {
	var rep models.UserReputation

	if masterID != nil {
		stats, err := s.MasterStats(ctx, *masterID)
		if err != nil {
			return nil, err
		}
		rep.AsMaster = *stats
	} else {
		stats, err := s.buildStats(ctx, true, 0, nil)
		if err != nil {
			return nil, err
		}
		rep.AsMaster = *stats
	}

	clientStats, err := s.ClientStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	rep.AsClient = *clientStats
	return &rep, nil
}

// votableOrder возвращает заказ, по которому можно голосовать.
func (s *ReputationService) votableOrder(ctx context.Context, orderID int64) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != models.OrderStatusCompleted {
		return nil, repository.ErrOrderNotActive
	}
	return order, nil
}

// checkCriteria проверяет, что все отмеченные критерии принадлежат
// направлению голосования.
func (s *ReputationService) checkCriteria(ctx context.Context, roleClient bool, criterionIDs []int64) error {
	criteria, err := s.repo.Criteria(ctx, roleClient)
	if err != nil {
		return fmt.Errorf("reputation: чтение критериев: %w", err)
	}

	known := make(map[int64]struct{}, len(criteria))
	for _, c := range criteria {
		known[c.ID] = struct{}{}
	}
	for _, id := range criterionIDs {
		if _, ok := known[id]; !ok {
			return fmt.Errorf("неизвестный критерий: %d", id)
		}
	}
	return nil
}

// buildStats раскладывает счётчики по полному набору критериев
// направления. Процент считается от числа различных заказов с голосами
// и округляется до одного знака.
func (s *ReputationService) buildStats(ctx context.Context, roleClient bool, total int, counts []models.CriterionCount) (*models.ReputationStats, error) {
	criteria, err := s.repo.Criteria(ctx, roleClient)
	if err != nil {
		return nil, fmt.Errorf("reputation: чтение критериев: %w", err)
	}

	stats := make(map[string]models.CriterionScore, len(criteria))
	for _, c := range criteria {
		stats[c.CodeKey] = models.CriterionScore{}
	}
	for _, cc := range counts {
		score := models.CriterionScore{Count: cc.Count}
		if total > 0 {
			score.Percent = math.Round(float64(cc.Count)/float64(total)*1000) / 10
		}
		stats[cc.CodeKey] = score
	}

	return &models.ReputationStats{Total: total, Stats: stats}, nil
}
