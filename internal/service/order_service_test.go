package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mersinbot/masters-backend/internal/models"
	"github.com/mersinbot/masters-backend/internal/repository"
)

type mockOrderRepo struct {
	mock.Mock
}

func (m *mockOrderRepo) Create(ctx context.Context, clientID, masterID int64, categoryID *int64) (int64, error) {
	args := m.Called(ctx, clientID, masterID, categoryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockOrderRepo) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *mockOrderRepo) Complete(ctx context.Context, orderID int64, completion *models.OrderCompletion) error {
	args := m.Called(ctx, orderID, completion)
	return args.Error(0)
}

func (m *mockOrderRepo) Cancel(ctx context.Context, orderID int64) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *mockOrderRepo) SetClientRating(ctx context.Context, orderID int64, rating int) error {
	args := m.Called(ctx, orderID, rating)
	return args.Error(0)
}

func (m *mockOrderRepo) GetClientPendingOrder(ctx context.Context, clientID int64) (*models.OrderWithMaster, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OrderWithMaster), args.Error(1)
}

func (m *mockOrderRepo) ListActive(ctx context.Context, clientID int64) ([]models.OrderWithMaster, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).([]models.OrderWithMaster), args.Error(1)
}

func (m *mockOrderRepo) ListCompleted(ctx context.Context, clientID int64, limit, offset int) ([]models.OrderWithMaster, error) {
	args := m.Called(ctx, clientID, limit, offset)
	return args.Get(0).([]models.OrderWithMaster), args.Error(1)
}

func (m *mockOrderRepo) CountActive(ctx context.Context, clientID int64) (int, error) {
	args := m.Called(ctx, clientID)
	return args.Int(0), args.Error(1)
}

func (m *mockOrderRepo) CountCompleted(ctx context.Context, clientID int64) (int, error) {
	args := m.Called(ctx, clientID)
	return args.Int(0), args.Error(1)
}

func (m *mockOrderRepo) ClientTotals(ctx context.Context, clientID int64) (*models.ClientOrderTotals, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ClientOrderTotals), args.Error(1)
}

func (m *mockOrderRepo) ListClientReviews(ctx context.Context, clientID int64) ([]models.OrderWithMaster, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).([]models.OrderWithMaster), args.Error(1)
}

type mockMasterRepoForOrder struct {
	mock.Mock
}

func (m *mockMasterRepoForOrder) GetByID(ctx context.Context, id int64) (*models.MasterDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MasterDetails), args.Error(1)
}

func (m *mockMasterRepoForOrder) RecalculateRating(ctx context.Context, masterID int64) error {
	args := m.Called(ctx, masterID)
	return args.Error(0)
}

type mockClientRepoForOrder struct {
	mock.Mock
}

func (m *mockClientRepoForOrder) GetProfile(ctx context.Context, userID int64) (*models.ClientProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ClientProfile), args.Error(1)
}

func (m *mockClientRepoForOrder) CreateProfile(ctx context.Context, userID int64, phone *string, phoneVerified bool) error {
	args := m.Called(ctx, userID, phone, phoneVerified)
	return args.Error(0)
}

func (m *mockClientRepoForOrder) UpdateRating(ctx context.Context, userID int64, rating float64) error {
	args := m.Called(ctx, userID, rating)
	return args.Error(0)
}

func (m *mockClientRepoForOrder) AverageClientRating(ctx context.Context, userID int64) (*float64, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*float64), args.Error(1)
}

func (m *mockClientRepoForOrder) UpdateOrderTotals(ctx context.Context, userID int64, totals *models.ClientOrderTotals) error {
	args := m.Called(ctx, userID, totals)
	return args.Error(0)
}

func newOrderService() (*OrderService, *mockOrderRepo, *mockMasterRepoForOrder, *mockClientRepoForOrder) {
	orders := new(mockOrderRepo)
	masters := new(mockMasterRepoForOrder)
	clients := new(mockClientRepoForOrder)
	return NewOrderService(orders, masters, clients), orders, masters, clients
}

func activeMaster(id int64) *models.MasterDetails {
	return &models.MasterDetails{Master: models.Master{ID: id, Status: models.MasterStatusActiveFree}}
}

func TestOrderService_CreateOrder_Success(t *testing.T) {
	svc, orders, masters, clients := newOrderService()
	ctx := context.Background()

	masters.On("GetByID", ctx, int64(5)).Return(activeMaster(5), nil)
	orders.On("GetClientPendingOrder", ctx, int64(7)).Return(nil, repository.ErrOrderNotFound)
	clients.On("GetProfile", ctx, int64(7)).Return(&models.ClientProfile{UserID: 7}, nil)
	orders.On("Create", ctx, int64(7), int64(5), (*int64)(nil)).Return(int64(42), nil)

	orderID, err := svc.CreateOrder(ctx, 7, 5, nil)

	assert.NoError(t, err)
	assert.Equal(t, int64(42), orderID)
}

func TestOrderService_CreateOrder_MasterBlocked(t *testing.T) {
	svc, orders, masters, _ := newOrderService()
	ctx := context.Background()

	blocked := &models.MasterDetails{Master: models.Master{ID: 5, Status: models.MasterStatusBlocked}}
	masters.On("GetByID", ctx, int64(5)).Return(blocked, nil)

	_, err := svc.CreateOrder(ctx, 7, 5, nil)

	assert.ErrorIs(t, err, ErrMasterUnavailable)
	orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_CreateOrder_PendingOrderBlocks(t *testing.T) {
	svc, orders, masters, _ := newOrderService()
	ctx := context.Background()

	masters.On("GetByID", ctx, int64(5)).Return(activeMaster(5), nil)
	pending := &models.OrderWithMaster{Order: models.Order{ID: 13, Status: models.OrderStatusActive}}
	orders.On("GetClientPendingOrder", ctx, int64(7)).Return(pending, nil)

	_, err := svc.CreateOrder(ctx, 7, 5, nil)

	assert.ErrorIs(t, err, ErrPendingOrder)
	orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_CreateOrder_FirstOrderCreatesProfile(t *testing.T) {
	svc, orders, masters, clients := newOrderService()
	ctx := context.Background()

	masters.On("GetByID", ctx, int64(5)).Return(activeMaster(5), nil)
	orders.On("GetClientPendingOrder", ctx, int64(7)).Return(nil, repository.ErrOrderNotFound)
	clients.On("GetProfile", ctx, int64(7)).Return(nil, repository.ErrClientProfileNotFound)
	clients.On("CreateProfile", ctx, int64(7), (*string)(nil), false).Return(nil)
	orders.On("Create", ctx, int64(7), int64(5), (*int64)(nil)).Return(int64(42), nil)

	_, err := svc.CreateOrder(ctx, 7, 5, nil)

	assert.NoError(t, err)
	clients.AssertCalled(t, "CreateProfile", ctx, int64(7), (*string)(nil), false)
}

func TestOrderService_CompleteOrder_WithRating(t *testing.T) {
	svc, orders, masters, clients := newOrderService()
	ctx := context.Background()

	rating := 5
	completion := &models.OrderCompletion{Rating: &rating}
	order := &models.Order{ID: 1, ClientID: 7, MasterID: 5, Status: models.OrderStatusActive}

	orders.On("GetByID", ctx, int64(1)).Return(order, nil)
	orders.On("Complete", ctx, int64(1), completion).Return(nil)
	masters.On("RecalculateRating", ctx, int64(5)).Return(nil)
	orders.On("ClientTotals", ctx, int64(7)).Return(&models.ClientOrderTotals{Completed: 1}, nil)
	clients.On("UpdateOrderTotals", ctx, int64(7), mock.Anything).Return(nil)

	err := svc.CompleteOrder(ctx, 1, 7, completion)

	assert.NoError(t, err)
	masters.AssertCalled(t, "RecalculateRating", ctx, int64(5))
}

func TestOrderService_CompleteOrder_Twice(t *testing.T) {
	svc, orders, _, _ := newOrderService()
	ctx := context.Background()

	order := &models.Order{ID: 1, ClientID: 7, MasterID: 5, Status: models.OrderStatusCompleted}
	orders.On("GetByID", ctx, int64(1)).Return(order, nil)
	orders.On("Complete", ctx, int64(1), mock.Anything).Return(repository.ErrOrderNotActive)

	err := svc.CompleteOrder(ctx, 1, 7, &models.OrderCompletion{})

	assert.ErrorIs(t, err, repository.ErrOrderNotActive)
}

func TestOrderService_CompleteOrder_WrongClient(t *testing.T) {
	svc, orders, _, _ := newOrderService()
	ctx := context.Background()

	order := &models.Order{ID: 1, ClientID: 7, MasterID: 5, Status: models.OrderStatusActive}
	orders.On("GetByID", ctx, int64(1)).Return(order, nil)

	err := svc.CompleteOrder(ctx, 1, 99, &models.OrderCompletion{})

	assert.ErrorIs(t, err, ErrNotOrderParticipant)
	orders.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_CompleteOrder_InvalidRating(t *testing.T) {
	svc, _, _, _ := newOrderService()
	ctx := context.Background()

	rating := 6
	err := svc.CompleteOrder(ctx, 1, 7, &models.OrderCompletion{Rating: &rating})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "от 1 до 5")
}

func TestOrderService_CancelOrder(t *testing.T) {
	svc, orders, _, clients := newOrderService()
	ctx := context.Background()

	order := &models.Order{ID: 1, ClientID: 7, MasterID: 5, Status: models.OrderStatusActive}
	orders.On("GetByID", ctx, int64(1)).Return(order, nil)
	orders.On("Cancel", ctx, int64(1)).Return(nil)
	orders.On("ClientTotals", ctx, int64(7)).Return(&models.ClientOrderTotals{Cancelled: 1}, nil)
	clients.On("UpdateOrderTotals", ctx, int64(7), mock.Anything).Return(nil)

	err := svc.CancelOrder(ctx, 1, 7)

	assert.NoError(t, err)
	clients.AssertCalled(t, "UpdateOrderTotals", ctx, int64(7), mock.Anything)
}

func TestOrderService_RateClient_Success(t *testing.T) {
	svc, orders, _, clients := newOrderService()
	ctx := context.Background()

	order := &models.Order{ID: 1, ClientID: 7, MasterID: 5, Status: models.OrderStatusCompleted}
	avg := 4.5

	orders.On("GetByID", ctx, int64(1)).Return(order, nil)
	orders.On("SetClientRating", ctx, int64(1), 4).Return(nil)
	clients.On("AverageClientRating", ctx, int64(7)).Return(&avg, nil)
	clients.On("UpdateRating", ctx, int64(7), 4.5).Return(nil)

	err := svc.RateClient(ctx, 1, 5, 4)

	assert.NoError(t, err)
	clients.AssertCalled(t, "UpdateRating", ctx, int64(7), 4.5)
}

func TestOrderService_RateClient_WrongMaster(t *testing.T) {
	svc, orders, _, _ := newOrderService()
	ctx := context.Background()

	order := &models.Order{ID: 1, ClientID: 7, MasterID: 5, Status: models.OrderStatusCompleted}
	orders.On("GetByID", ctx, int64(1)).Return(order, nil)

	err := svc.RateClient(ctx, 1, 99, 4)

	assert.ErrorIs(t, err, ErrNotOrderParticipant)
}

func TestOrderService_RateClient_NotCompleted(t *testing.T) {
	svc, orders, _, _ := newOrderService()
	ctx := context.Background()

	order := &models.Order{ID: 1, ClientID: 7, MasterID: 5, Status: models.OrderStatusActive}
	orders.On("GetByID", ctx, int64(1)).Return(order, nil)

	err := svc.RateClient(ctx, 1, 5, 4)

	assert.ErrorIs(t, err, repository.ErrOrderNotActive)
}

func TestOrderService_PendingOrder_None(t *testing.T) {
	svc, orders, _, _ := newOrderService()
	ctx := context.Background()

	orders.On("GetClientPendingOrder", ctx, int64(7)).Return(nil, repository.ErrOrderNotFound)

	pending, err := svc.PendingOrder(ctx, 7)

	assert.NoError(t, err)
	assert.Nil(t, pending)
}

func TestOrderService_CompletedOrders_LimitClamped(t *testing.T) {
	svc, orders, _, _ := newOrderService()
	ctx := context.Background()

	orders.On("ListCompleted", ctx, int64(7), 10, 0).Return([]models.OrderWithMaster{}, nil)

	_, err := svc.CompletedOrders(ctx, 7, 0, -3)

	assert.NoError(t, err)
	orders.AssertCalled(t, "ListCompleted", ctx, int64(7), 10, 0)
}
