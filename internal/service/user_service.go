package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mersinbot/masters-backend/internal/cache"
	"github.com/mersinbot/masters-backend/internal/models"
	"github.com/mersinbot/masters-backend/internal/repository"
)

// UserRepository — часть хранилища пользователей, нужная сервису.
type UserRepository interface {
	GetRecordByTelegramID(ctx context.Context, telegramID int64) (*models.UserRecord, error)
	GetTelegramID(ctx context.Context, userID int64) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	Create(ctx context.Context, telegramID int64, username *string, language string) (int64, error)
	SetMasterFlag(ctx context.Context, userID int64, isMaster bool) error
	UpdateStatus(ctx context.Context, userID int64, status string) error
	UpdateLanguage(ctx context.Context, userID int64, language string) error
}

// UserService отвечает за карточки пользователей и сквозной кеш.
// Каждое входящее событие проходит через ResolveUser, поэтому промах
// кеша здесь — это лишний запрос к БД на каждый апдейт.
type UserService struct {
	repo       UserRepository
	userCache  *cache.UserCache
	defaultLng string
	supported  []string
}

// NewUserService создаёт сервис пользователей.
func NewUserService(repo UserRepository, userCache *cache.UserCache, defaultLanguage string, supported []string) *UserService {
	return &UserService{
		repo:       repo,
		userCache:  userCache,
		defaultLng: defaultLanguage,
		supported:  supported,
	}
}

// ResolveUser возвращает карточку пользователя по telegram_id, создавая
// запись при первом контакте. Читает сквозь кеш: попадание не трогает БД.
func (s *UserService) ResolveUser(ctx context.Context, telegramID int64, username *string) (*models.UserRecord, error) {
	if record, ok := s.userCache.Get(telegramID); ok {
		return record, nil
	}

	record, err := s.repo.GetRecordByTelegramID(ctx, telegramID)
	if errors.Is(err, repository.ErrUserNotFound) {
		if _, err := s.repo.Create(ctx, telegramID, username, s.defaultLng); err != nil {
			return nil, fmt.Errorf("user: создание пользователя: %w", err)
		}
		record, err = s.repo.GetRecordByTelegramID(ctx, telegramID)
		if err != nil {
			return nil, fmt.Errorf("user: чтение после создания: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("user: чтение карточки: %w", err)
	}

	s.userCache.Set(telegramID, record)
	return record, nil
}

// GetUser возвращает пользователя по внутреннему id.
func (s *UserService) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	return s.repo.GetByID(ctx, userID)
}

// SetLanguage меняет язык интерфейса и сбрасывает кеш карточки.
func (s *UserService) SetLanguage(ctx context.Context, userID int64, language string) error {
	if !s.isSupported(language) {
		return fmt.Errorf("неподдерживаемый язык: %s", language)
	}

	if err := s.repo.UpdateLanguage(ctx, userID, language); err != nil {
		return fmt.Errorf("user: смена языка: %w", err)
	}

	s.userCache.InvalidateUserID(userID)
	return nil
}

// SetBlocked блокирует или разблокирует пользователя.
func (s *UserService) SetBlocked(ctx context.Context, userID int64, blocked bool) error {
	status := models.UserStatusActive
	if blocked {
		status = models.UserStatusBlocked
	}

	if err := s.repo.UpdateStatus(ctx, userID, status); err != nil {
		return fmt.Errorf("user: смена статуса: %w", err)
	}

	s.userCache.InvalidateUserID(userID)
	return nil
}

func (s *UserService) isSupported(language string) bool {
	for _, l := range s.supported {
		if l == language {
			return true
		}
	}
	return false
}
