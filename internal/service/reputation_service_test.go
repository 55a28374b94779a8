package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mersinbot/masters-backend/internal/models"
	"github.com/mersinbot/masters-backend/internal/repository"
)

type mockReputationRepo struct {
	mock.Mock
}

func (m *mockReputationRepo) Criteria(ctx context.Context, roleClient bool) ([]models.ReputationCriterion, error) {
	args := m.Called(ctx, roleClient)
	return args.Get(0).([]models.ReputationCriterion), args.Error(1)
}

func (m *mockReputationRepo) SaveVotes(ctx context.Context, fromClient bool, orderID int64, criterionIDs []int64) error {
	args := m.Called(ctx, fromClient, orderID, criterionIDs)
	return args.Error(0)
}

func (m *mockReputationRepo) MasterVotedOrders(ctx context.Context, masterID int64) (int, error) {
	args := m.Called(ctx, masterID)
	return args.Int(0), args.Error(1)
}

func (m *mockReputationRepo) MasterCriterionCounts(ctx context.Context, masterID int64) ([]models.CriterionCount, error) {
	args := m.Called(ctx, masterID)
	return args.Get(0).([]models.CriterionCount), args.Error(1)
}

func (m *mockReputationRepo) ClientVotedOrders(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *mockReputationRepo) ClientCriterionCounts(ctx context.Context, userID int64) ([]models.CriterionCount, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.CriterionCount), args.Error(1)
}

type mockOrderRepoForReputation struct {
	mock.Mock
}

func (m *mockOrderRepoForReputation) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func masterCriteria() []models.ReputationCriterion {
	return []models.ReputationCriterion{
		{ID: 1, CodeKey: "punctual", GroupKey: "service", RoleClient: true},
		{ID: 2, CodeKey: "quality", GroupKey: "service", RoleClient: true},
		{ID: 3, CodeKey: "polite", GroupKey: "communication", RoleClient: true},
	}
}

func TestReputationService_MasterStats_Percent(t *testing.T) {
	repo := new(mockReputationRepo)
	orders := new(mockOrderRepoForReputation)
	svc := NewReputationService(repo, orders)
	ctx := context.Background()

	repo.On("MasterVotedOrders", ctx, int64(5)).Return(5, nil)
	repo.On("MasterCriterionCounts", ctx, int64(5)).Return([]models.CriterionCount{
		{CodeKey: "punctual", Count: 3},
		{CodeKey: "quality", Count: 5},
	}, nil)
	repo.On("Criteria", ctx, true).Return(masterCriteria(), nil)

	stats, err := svc.MasterStats(ctx, 5)

	assert.NoError(t, err)
	assert.Equal(t, 5, stats.Total)
	// 3 заказа из 5 -> 60.0
	assert.Equal(t, 60.0, stats.Stats["punctual"].Percent)
	assert.Equal(t, 3, stats.Stats["punctual"].Count)
	assert.Equal(t, 100.0, stats.Stats["quality"].Percent)
	// Критерий без голосов присутствует с нулями.
	assert.Contains(t, stats.Stats, "polite")
	assert.Equal(t, 0.0, stats.Stats["polite"].Percent)
	assert.Equal(t, 0, stats.Stats["polite"].Count)
}

func TestReputationService_MasterStats_NoVotes(t *testing.T) {
	repo := new(mockReputationRepo)
	orders := new(mockOrderRepoForReputation)
	svc := NewReputationService(repo, orders)
	ctx := context.Background()

	repo.On("MasterVotedOrders", ctx, int64(5)).Return(0, nil)
	repo.On("MasterCriterionCounts", ctx, int64(5)).Return([]models.CriterionCount{}, nil)
	repo.On("Criteria", ctx, true).Return(masterCriteria(), nil)

	stats, err := svc.MasterStats(ctx, 5)

	assert.NoError(t, err)
	assert.Equal(t, 0, stats.Total)
	assert.Len(t, stats.Stats, 3)
	for key, score := range stats.Stats {
		assert.Equal(t, 0.0, score.Percent, key)
		assert.Equal(t, 0, score.Count, key)
	}
}

func TestReputationService_MasterStats_Rounding(t *testing.T) {
	repo := new(mockReputationRepo)
	orders := new(mockOrderRepoForReputation)
	svc := NewReputationService(repo, orders)
	ctx := context.Background()

	repo.On("MasterVotedOrders", ctx, int64(5)).Return(3, nil)
	repo.On("MasterCriterionCounts", ctx, int64(5)).Return([]models.CriterionCount{
		{CodeKey: "punctual", Count: 1},
	}, nil)
	repo.On("Criteria", ctx, true).Return(masterCriteria(), nil)

	stats, err := svc.MasterStats(ctx, 5)

	assert.NoError(t, err)
	// 1/3 -> 33.3, один знак после запятой.
	assert.Equal(t, 33.3, stats.Stats["punctual"].Percent)
}

func TestReputationService_SubmitClientVotes_Success(t *testing.T) {
	repo := new(mockReputationRepo)
	orders := new(mockOrderRepoForReputation)
	svc := NewReputationService(repo, orders)
	ctx := context.Background()

	order := &models.Order{ID: 1, ClientID: 7, MasterID: 5, Status: models.OrderStatusCompleted}
	orders.On("GetByID", ctx, int64(1)).Return(order, nil)
	repo.On("Criteria", ctx, true).Return(masterCriteria(), nil)
	repo.On("SaveVotes", ctx, true, int64(1), []int64{1, 3}).Return(nil)

	err := svc.SubmitClientVotes(ctx, 1, 7, []int64{1, 3})

	assert.NoError(t, err)
	repo.AssertCalled(t, "SaveVotes", ctx, true, int64(1), []int64{1, 3})
}

func TestReputationService_SubmitClientVotes_NotParticipant(t *testing.T) {
	repo := new(mockReputationRepo)
	orders := new(mockOrderRepoForReputation)
	svc := NewReputationService(repo, orders)
	ctx := context.Background()

	order := &models.Order{ID: 1, ClientID: 7, MasterID: 5, Status: models.OrderStatusCompleted}
	orders.On("GetByID", ctx, int64(1)).Return(order, nil)

	err := svc.SubmitClientVotes(ctx, 1, 99, []int64{1})

	assert.ErrorIs(t, err, ErrNotOrderParticipant)
	repo.AssertNotCalled(t, "SaveVotes", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReputationService_SubmitClientVotes_OrderNotCompleted(t *testing.T) {
	repo := new(mockReputationRepo)
	orders := new(mockOrderRepoForReputation)
	svc := NewReputationService(repo, orders)
	ctx := context.Background()

	order := &models.Order{ID: 1, ClientID: 7, MasterID: 5, Status: models.OrderStatusActive}
	orders.On("GetByID", ctx, int64(1)).Return(order, nil)

	err := svc.SubmitClientVotes(ctx, 1, 7, []int64{1})

	assert.ErrorIs(t, err, repository.ErrOrderNotActive)
}

func TestReputationService_SubmitClientVotes_UnknownCriterion(t *testing.T) {
	repo := new(mockReputationRepo)
	orders := new(mockOrderRepoForReputation)
	svc := NewReputationService(repo, orders)
	ctx := context.Background()

	order := &models.Order{ID: 1, ClientID: 7, MasterID: 5, Status: models.OrderStatusCompleted}
	orders.On("GetByID", ctx, int64(1)).Return(order, nil)
	repo.On("Criteria", ctx, true).Return(masterCriteria(), nil)

	err := svc.SubmitClientVotes(ctx, 1, 7, []int64{999})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "неизвестный критерий")
}

func TestReputationService_SubmitMasterVotes_Success(t *testing.T) {
	repo := new(mockReputationRepo)
	orders := new(mockOrderRepoForReputation)
	svc := NewReputationService(repo, orders)
	ctx := context.Background()

	order := &models.Order{ID: 1, ClientID: 7, MasterID: 5, Status: models.OrderStatusCompleted}
	clientCriteria := []models.ReputationCriterion{
		{ID: 10, CodeKey: "clear_task", GroupKey: "communication", RoleClient: false},
	}
	orders.On("GetByID", ctx, int64(1)).Return(order, nil)
	repo.On("Criteria", ctx, false).Return(clientCriteria, nil)
	repo.On("SaveVotes", ctx, false, int64(1), []int64{10}).Return(nil)

	err := svc.SubmitMasterVotes(ctx, 1, 5, []int64{10})

	assert.NoError(t, err)
}

func TestReputationService_UserReputation_WithoutMasterProfile(t *testing.T) {
	repo := new(mockReputationRepo)
	orders := new(mockOrderRepoForReputation)
	svc := NewReputationService(repo, orders)
	ctx := context.Background()

	clientCriteria := []models.ReputationCriterion{
		{ID: 10, CodeKey: "clear_task", GroupKey: "communication", RoleClient: false},
	}
	repo.On("Criteria", ctx, true).Return(masterCriteria(), nil)
	repo.On("Criteria", ctx, false).Return(clientCriteria, nil)
	repo.On("ClientVotedOrders", ctx, int64(7)).Return(2, nil)
	repo.On("ClientCriterionCounts", ctx, int64(7)).Return([]models.CriterionCount{
		{CodeKey: "clear_task", Count: 1},
	}, nil)

	rep, err := svc.UserReputation(ctx, 7, nil)

	assert.NoError(t, err)
	assert.Equal(t, 0, rep.AsMaster.Total)
	assert.Len(t, rep.AsMaster.Stats, 3)
	assert.Equal(t, 2, rep.AsClient.Total)
	assert.Equal(t, 50.0, rep.AsClient.Stats["clear_task"].Percent)
}
