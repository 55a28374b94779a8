package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mersinbot/masters-backend/internal/models"
	"github.com/mersinbot/masters-backend/internal/phone"
	"github.com/mersinbot/masters-backend/internal/repository"
)

// ClientRepo — клиентский профиль пользователя.
type ClientRepo interface {
	GetProfile(ctx context.Context, userID int64) (*models.ClientProfile, error)
	CreateProfile(ctx context.Context, userID int64, phone *string, phoneVerified bool) error
	UpdatePhone(ctx context.Context, userID int64, phone string, verified bool) error
}

// ClientService отвечает за клиентскую сторону пользователя.
type ClientService struct {
	repo ClientRepo
}

// NewClientService создаёт сервис клиентских профилей.
func NewClientService(repo ClientRepo) *ClientService {
	return &ClientService{repo: repo}
}

// Profile возвращает клиентский профиль, создавая пустой при первом
// обращении.
func (s *ClientService) Profile(ctx context.Context, userID int64) (*models.ClientProfile, error) {
	profile, err := s.repo.GetProfile(ctx, userID)
	if errors.Is(err, repository.ErrClientProfileNotFound) {
		if err := s.repo.CreateProfile(ctx, userID, nil, false); err != nil {
			return nil, fmt.Errorf("client: создание профиля: %w", err)
		}
		return s.repo.GetProfile(ctx, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("client: чтение профиля: %w", err)
	}
	return profile, nil
}

// SavePhone сохраняет телефон клиента в нормализованном виде.
// verified=true — номер получен из контакта Telegram, а не набран руками.
func (s *ClientService) SavePhone(ctx context.Context, userID int64, rawPhone string, verified bool) error {
	if !phone.IsValid(rawPhone) {
		return ErrPhoneInvalid
	}
	normalized := phone.Normalize(rawPhone)

	if _, err := s.Profile(ctx, userID); err != nil {
		return err
	}
	if err := s.repo.UpdatePhone(ctx, userID, normalized, verified); err != nil {
		return fmt.Errorf("client: сохранение телефона: %w", err)
	}
	return nil
}
