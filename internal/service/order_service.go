package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mersinbot/masters-backend/internal/logger"
	"github.com/mersinbot/masters-backend/internal/models"
	"github.com/mersinbot/masters-backend/internal/repository"
)

var (
	// ErrPendingOrder — у клиента висит активный заказ старше суток,
	// новые заказы не создаются, пока он не закрыт.
	ErrPendingOrder = errors.New("есть незакрытый заказ старше 24 часов")
	// ErrMasterUnavailable — мастер не принимает заказы.
	ErrMasterUnavailable = errors.New("мастер недоступен для заказов")
	// ErrNotOrderParticipant — действие над чужим заказом.
	ErrNotOrderParticipant = errors.New("вы не участник этого заказа")
)

// OrderRepo — часть хранилища заказов, нужная сервису.
type OrderRepo interface {
	Create(ctx context.Context, clientID, masterID int64, categoryID *int64) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Order, error)
	Complete(ctx context.Context, orderID int64, completion *models.OrderCompletion) error
	Cancel(ctx context.Context, orderID int64) error
	SetClientRating(ctx context.Context, orderID int64, rating int) error
	GetClientPendingOrder(ctx context.Context, clientID int64) (*models.OrderWithMaster, error)
	ListActive(ctx context.Context, clientID int64) ([]models.OrderWithMaster, error)
	ListCompleted(ctx context.Context, clientID int64, limit, offset int) ([]models.OrderWithMaster, error)
	CountActive(ctx context.Context, clientID int64) (int, error)
	CountCompleted(ctx context.Context, clientID int64) (int, error)
	ClientTotals(ctx context.Context, clientID int64) (*models.ClientOrderTotals, error)
	ListClientReviews(ctx context.Context, clientID int64) ([]models.OrderWithMaster, error)
}

// MasterRepoForOrder — операции над мастером при жизни заказа.
type MasterRepoForOrder interface {
	GetByID(ctx context.Context, id int64) (*models.MasterDetails, error)
	RecalculateRating(ctx context.Context, masterID int64) error
}

// ClientRepoForOrder — клиентский профиль и его агрегаты.
type ClientRepoForOrder interface {
	GetProfile(ctx context.Context, userID int64) (*models.ClientProfile, error)
	CreateProfile(ctx context.Context, userID int64, phone *string, phoneVerified bool) error
	UpdateRating(ctx context.Context, userID int64, rating float64) error
	AverageClientRating(ctx context.Context, userID int64) (*float64, error)
	UpdateOrderTotals(ctx context.Context, userID int64, totals *models.ClientOrderTotals) error
}

// OrderService отвечает за жизненный цикл заказов и производные
// агрегаты: рейтинг мастера и счётчики клиента.
type OrderService struct {
	orders  OrderRepo
	masters MasterRepoForOrder
	clients ClientRepoForOrder
}

// NewOrderService создаёт сервис заказов.
func NewOrderService(orders OrderRepo, masters MasterRepoForOrder, clients ClientRepoForOrder) *OrderService {
	return &OrderService{orders: orders, masters: masters, clients: clients}
}

// CreateOrder создаёт заказ клиента к мастеру. Заказ не создаётся, если
// мастер не активен или у клиента висит незакрытый заказ старше суток.
func (s *OrderService) CreateOrder(ctx context.Context, clientID, masterID int64, categoryID *int64) (int64, error) {
	master, err := s.masters.GetByID(ctx, masterID)
	if err != nil {
		return 0, err
	}
	if master.Status != models.MasterStatusActiveFree && master.Status != models.MasterStatusActivePremium {
		return 0, ErrMasterUnavailable
	}

	pending, err := s.orders.GetClientPendingOrder(ctx, clientID)
	if err != nil && !errors.Is(err, repository.ErrOrderNotFound) {
		return 0, fmt.Errorf("order: проверка незакрытых заказов: %w", err)
	}
	if pending != nil {
		return 0, fmt.Errorf("%w: заказ #%d", ErrPendingOrder, pending.ID)
	}

	s.ensureClientProfile(ctx, clientID)

	orderID, err := s.orders.Create(ctx, clientID, masterID, categoryID)
	if err != nil {
		return 0, fmt.Errorf("order: создание заказа: %w", err)
	}
	return orderID, nil
}

// PendingOrder возвращает незакрытый заказ клиента старше суток,
// nil — если такого нет.
func (s *OrderService) PendingOrder(ctx context.Context, clientID int64) (*models.OrderWithMaster, error) {
	pending, err := s.orders.GetClientPendingOrder(ctx, clientID)
	if errors.Is(err, repository.ErrOrderNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("order: проверка незакрытых заказов: %w", err)
	}
	return pending, nil
}

// CompleteOrder завершает заказ от имени клиента с опциональной оценкой,
// отзывом и ценой. Повторное завершение не перезаписывает оценку.
func (s *OrderService) CompleteOrder(ctx context.Context, orderID, clientID int64, completion *models.OrderCompletion) error {
	if completion.Rating != nil && (*completion.Rating < 1 || *completion.Rating > 5) {
		return fmt.Errorf("оценка должна быть от 1 до 5")
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.ClientID != clientID {
		return ErrNotOrderParticipant
	}

	if err := s.orders.Complete(ctx, orderID, completion); err != nil {
		return err
	}

	// Производные агрегаты обновляются best-effort: их сбой не должен
	// откатывать уже завершённый заказ.
	if completion.Rating != nil {
		if err := s.masters.RecalculateRating(ctx, order.MasterID); err != nil && logger.Log != nil {
			logger.Log.Errorf("order: пересчёт рейтинга мастера %d: %v", order.MasterID, err)
		}
	}
	s.refreshClientTotals(ctx, clientID)
	return nil
}

// CancelOrder отменяет активный заказ клиента.
func (s *OrderService) CancelOrder(ctx context.Context, orderID, clientID int64) error {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.ClientID != clientID {
		return ErrNotOrderParticipant
	}

	if err := s.orders.Cancel(ctx, orderID); err != nil {
		return err
	}

	s.refreshClientTotals(ctx, clientID)
	return nil
}

// RateClient ставит встречную оценку клиенту от мастера по завершённому
// заказу и пересчитывает рейтинг клиента.
func (s *OrderService) RateClient(ctx context.Context, orderID, masterID int64, rating int) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("оценка должна быть от 1 до 5")
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.MasterID != masterID {
		return ErrNotOrderParticipant
	}
	if order.Status != models.OrderStatusCompleted {
		return repository.ErrOrderNotActive
	}

	if err := s.orders.SetClientRating(ctx, orderID, rating); err != nil {
		return err
	}

	avg, err := s.clients.AverageClientRating(ctx, order.ClientID)
	if err != nil {
		if logger.Log != nil {
			logger.Log.Errorf("order: средний рейтинг клиента %d: %v", order.ClientID, err)
		}
		return nil
	}
	if avg != nil {
		if err := s.clients.UpdateRating(ctx, order.ClientID, *avg); err != nil && logger.Log != nil {
			logger.Log.Errorf("order: запись рейтинга клиента %d: %v", order.ClientID, err)
		}
	}
	return nil
}

// GetOrder возвращает заказ по идентификатору.
func (s *OrderService) GetOrder(ctx context.Context, orderID int64) (*models.Order, error) {
	return s.orders.GetByID(ctx, orderID)
}

// ActiveOrders возвращает активные заказы клиента.
func (s *OrderService) ActiveOrders(ctx context.Context, clientID int64) ([]models.OrderWithMaster, error) {
	return s.orders.ListActive(ctx, clientID)
}

// CompletedOrders возвращает завершённые заказы клиента постранично.
func (s *OrderService) CompletedOrders(ctx context.Context, clientID int64, limit, offset int) ([]models.OrderWithMaster, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	return s.orders.ListCompleted(ctx, clientID, limit, offset)
}

// OrderCounts возвращает число активных и завершённых заказов клиента.
func (s *OrderService) OrderCounts(ctx context.Context, clientID int64) (active, completed int, err error) {
	active, err = s.orders.CountActive(ctx, clientID)
	if err != nil {
		return 0, 0, err
	}
	completed, err = s.orders.CountCompleted(ctx, clientID)
	if err != nil {
		return 0, 0, err
	}
	return active, completed, nil
}

// ClientReviews возвращает оценённые клиентом заказы.
func (s *OrderService) ClientReviews(ctx context.Context, clientID int64) ([]models.OrderWithMaster, error) {
	return s.orders.ListClientReviews(ctx, clientID)
}

// ensureClientProfile создаёт клиентский профиль при первом заказе.
func (s *OrderService) ensureClientProfile(ctx context.Context, clientID int64) {
	_, err := s.clients.GetProfile(ctx, clientID)
	if errors.Is(err, repository.ErrClientProfileNotFound) {
		if err := s.clients.CreateProfile(ctx, clientID, nil, false); err != nil && logger.Log != nil {
			logger.Log.Errorf("order: создание клиентского профиля %d: %v", clientID, err)
		}
		return
	}
	if err != nil && logger.Log != nil {
		logger.Log.Errorf("order: чтение клиентского профиля %d: %v", clientID, err)
	}
}

// refreshClientTotals пересчитывает счётчики заказов клиента.
func (s *OrderService) refreshClientTotals(ctx context.Context, clientID int64) {
	totals, err := s.orders.ClientTotals(ctx, clientID)
	if err != nil {
		if logger.Log != nil {
			logger.Log.Errorf("order: итоги заказов клиента %d: %v", clientID, err)
		}
		return
	}
	if err := s.clients.UpdateOrderTotals(ctx, clientID, totals); err != nil && logger.Log != nil {
		logger.Log.Errorf("order: запись итогов клиента %d: %v", clientID, err)
	}
}
