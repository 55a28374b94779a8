package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mersinbot/masters-backend/internal/cache"
	"github.com/mersinbot/masters-backend/internal/models"
	"github.com/mersinbot/masters-backend/internal/phone"
	"github.com/mersinbot/masters-backend/internal/repository"
)

var (
	// ErrPhoneInvalid — строка не похожа на телефонный номер.
	ErrPhoneInvalid = errors.New("некорректный номер телефона")
	// ErrPhoneTaken — номер уже занят другим мастером с владельцем.
	ErrPhoneTaken = errors.New("номер уже зарегистрирован другим мастером")
	// ErrPhoneUnclaimed — номер принадлежит анкете без владельца,
	// вместо регистрации нужно предложить привязку.
	ErrPhoneUnclaimed = errors.New("номер принадлежит непривязанной анкете")
)

// MasterRepository — часть хранилища мастеров, нужная сервису.
type MasterRepository interface {
	Create(ctx context.Context, input *models.NewMaster) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.MasterDetails, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Master, error)
	GetByPhone(ctx context.Context, phoneVariants []string) (*models.Master, error)
	UpdateProfile(ctx context.Context, masterID int64, update *models.MasterProfileUpdate) error
	UpdateStatus(ctx context.Context, masterID int64, status string, changedBy *int64) error
	LinkToUser(ctx context.Context, masterID, userID int64) error
	SetPremiumUntil(ctx context.Context, masterID int64, until *time.Time) error
	OrderStats(ctx context.Context, masterID int64) (*models.MasterOrderStats, error)
}

// UserRepoForMaster — операции над пользователем при смене роли.
type UserRepoForMaster interface {
	SetMasterFlag(ctx context.Context, userID int64, isMaster bool) error
}

// RequestRepoForMaster — заявки, которые создаёт мастер.
type RequestRepoForMaster interface {
	CreatePremiumRequest(ctx context.Context, masterID, userID int64, status string) (int64, error)
}

// Notifier — best-effort уведомления администраторам.
type Notifier interface {
	MasterSubmitted(masterID int64, name, phone string)
	PremiumRequested(requestID, masterID int64)
}

// MasterService отвечает за анкеты мастеров: регистрацию, модерацию,
// привязку и премиум.
type MasterService struct {
	masters   MasterRepository
	users     UserRepoForMaster
	requests  RequestRepoForMaster
	userCache *cache.UserCache
	notifier  Notifier
}

// NewMasterService создаёт сервис мастеров.
func NewMasterService(masters MasterRepository, users UserRepoForMaster, requests RequestRepoForMaster, userCache *cache.UserCache, notifier Notifier) *MasterService {
	return &MasterService{
		masters:   masters,
		users:     users,
		requests:  requests,
		userCache: userCache,
		notifier:  notifier,
	}
}

// Register создаёт анкету мастера. Телефон нормализуется до хранения.
// Если номер занят анкетой без владельца, регистрация не создаётся:
// вместо неё вызывающий предлагает привязку (см. Link).
func (s *MasterService) Register(ctx context.Context, input *models.NewMaster) (int64, error) {
	if input.Name == "" {
		return 0, fmt.Errorf("имя мастера обязательно")
	}
	if len(input.Categories) == 0 || len(input.Districts) == 0 {
		return 0, fmt.Errorf("нужна хотя бы одна категория и один район")
	}
	if !phone.IsValid(input.Phone) {
		return 0, ErrPhoneInvalid
	}
	input.Phone = phone.Normalize(input.Phone)

	existing, err := s.masters.GetByPhone(ctx, phone.SearchVariants(input.Phone))
	if err != nil && !errors.Is(err, repository.ErrMasterNotFound) {
		return 0, fmt.Errorf("master: поиск по номеру: %w", err)
	}
	if existing != nil {
		if existing.UserID == nil {
			return 0, fmt.Errorf("%w: анкета #%d", ErrPhoneUnclaimed, existing.ID)
		}
		return 0, ErrPhoneTaken
	}

	if input.Status == "" {
		input.Status = models.MasterStatusPending
	}
	if input.Source == "" {
		input.Source = models.MasterSourceBot
	}

	masterID, err := s.masters.Create(ctx, input)
	if err != nil {
		return 0, fmt.Errorf("master: создание анкеты: %w", err)
	}

	if input.UserID != nil {
		if err := s.users.SetMasterFlag(ctx, *input.UserID, true); err != nil {
			return 0, fmt.Errorf("master: установка роли: %w", err)
		}
		s.userCache.InvalidateUserID(*input.UserID)
	}

	if input.Status == models.MasterStatusPending {
		s.notifier.MasterSubmitted(masterID, input.Name, input.Phone)
	}

	return masterID, nil
}

// Link привязывает анкету без владельца к пользователю. Анкета переходит
// в active_free, пользователь получает роль мастера.
func (s *MasterService) Link(ctx context.Context, masterID, userID int64) error {
	if err := s.masters.LinkToUser(ctx, masterID, userID); err != nil {
		return fmt.Errorf("master: привязка анкеты: %w", err)
	}
	if err := s.users.SetMasterFlag(ctx, userID, true); err != nil {
		return fmt.Errorf("master: установка роли: %w", err)
	}
	s.userCache.InvalidateUserID(userID)
	return nil
}

// UpdateProfile заменяет анкету целиком. Телефон проверяется на
// занятость другим мастером.
func (s *MasterService) UpdateProfile(ctx context.Context, masterID int64, update *models.MasterProfileUpdate) error {
	if update.Name == "" {
		return fmt.Errorf("имя мастера обязательно")
	}
	if len(update.Categories) == 0 || len(update.Districts) == 0 {
		return fmt.Errorf("нужна хотя бы одна категория и один район")
	}
	if !phone.IsValid(update.Phone) {
		return ErrPhoneInvalid
	}
	update.Phone = phone.Normalize(update.Phone)

	existing, err := s.masters.GetByPhone(ctx, phone.SearchVariants(update.Phone))
	if err != nil && !errors.Is(err, repository.ErrMasterNotFound) {
		return fmt.Errorf("master: поиск по номеру: %w", err)
	}
	if existing != nil && existing.ID != masterID {
		return ErrPhoneTaken
	}

	if err := s.masters.UpdateProfile(ctx, masterID, update); err != nil {
		return fmt.Errorf("master: обновление анкеты: %w", err)
	}

	master, err := s.masters.GetByID(ctx, masterID)
	if err == nil && master.UserID != nil {
		s.userCache.InvalidateUserID(*master.UserID)
	}
	return nil
}

// SetStatus переводит анкету в новый статус (модерация, блокировка,
// премиум). changedBy — администратор, выполнивший переход.
func (s *MasterService) SetStatus(ctx context.Context, masterID int64, status string, changedBy *int64) error {
	if _, ok := models.ValidMasterStatuses[status]; !ok {
		return fmt.Errorf("недопустимый статус мастера: %s", status)
	}

	master, err := s.masters.GetByID(ctx, masterID)
	if err != nil {
		return err
	}

	if err := s.masters.UpdateStatus(ctx, masterID, status, changedBy); err != nil {
		return fmt.Errorf("master: смена статуса: %w", err)
	}

	if master.UserID != nil {
		s.userCache.InvalidateUserID(*master.UserID)
	}
	return nil
}

// GrantPremium переводит анкету в active_premium до заданной даты.
func (s *MasterService) GrantPremium(ctx context.Context, masterID int64, until time.Time, changedBy *int64) error {
	if !until.After(time.Now()) {
		return fmt.Errorf("срок премиума должен быть в будущем")
	}
	if err := s.masters.SetPremiumUntil(ctx, masterID, &until); err != nil {
		return fmt.Errorf("master: срок премиума: %w", err)
	}
	return s.SetStatus(ctx, masterID, models.MasterStatusActivePremium, changedBy)
}

// RevokePremium возвращает анкету на бесплатный тариф.
func (s *MasterService) RevokePremium(ctx context.Context, masterID int64, changedBy *int64) error {
	if err := s.masters.SetPremiumUntil(ctx, masterID, nil); err != nil {
		return fmt.Errorf("master: срок премиума: %w", err)
	}
	return s.SetStatus(ctx, masterID, models.MasterStatusActiveFree, changedBy)
}

// Details возвращает карточку мастера с категориями и районами.
func (s *MasterService) Details(ctx context.Context, masterID int64) (*models.MasterDetails, error) {
	return s.masters.GetByID(ctx, masterID)
}

// ByUser возвращает анкету мастера по владельцу.
func (s *MasterService) ByUser(ctx context.Context, userID int64) (*models.Master, error) {
	return s.masters.GetByUserID(ctx, userID)
}

// Stats возвращает статистику заказов мастера.
func (s *MasterService) Stats(ctx context.Context, masterID int64) (*models.MasterOrderStats, error) {
	return s.masters.OrderStats(ctx, masterID)
}

// RequestPremium создаёт заявку на премиум-размещение и уведомляет
// администраторов.
func (s *MasterService) RequestPremium(ctx context.Context, masterID, userID int64) (int64, error) {
	requestID, err := s.requests.CreatePremiumRequest(ctx, masterID, userID, "pending")
	if err != nil {
		return 0, fmt.Errorf("master: заявка на премиум: %w", err)
	}
	s.notifier.PremiumRequested(requestID, masterID)
	return requestID, nil
}
