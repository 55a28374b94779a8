package service

import (
	"context"
	"fmt"

	"github.com/mersinbot/masters-backend/internal/phone"
)

// RequestRepo — хранилище жалоб и консьерж-заявок.
type RequestRepo interface {
	CreateComplaint(ctx context.Context, userID, masterID int64, text string) (int64, error)
	CreateServiceRequest(ctx context.Context, userID int64, categories, phone, name string) (int64, error)
}

// RequestNotifier — уведомления о жалобах и заявках.
type RequestNotifier interface {
	ComplaintCreated(complaintID, masterID int64, text string)
	ServiceRequested(requestID int64, categories, phone, name string)
}

// RequestService принимает жалобы на мастеров и консьерж-заявки,
// когда подбор не дал результата.
type RequestService struct {
	repo     RequestRepo
	notifier RequestNotifier
}

// NewRequestService создаёт сервис заявок.
func NewRequestService(repo RequestRepo, notifier RequestNotifier) *RequestService {
	return &RequestService{repo: repo, notifier: notifier}
}

// SubmitComplaint сохраняет жалобу на мастера и уведомляет
// администраторов.
func (s *RequestService) SubmitComplaint(ctx context.Context, userID, masterID int64, text string) (int64, error) {
	if text == "" {
		return 0, fmt.Errorf("текст жалобы обязателен")
	}

	complaintID, err := s.repo.CreateComplaint(ctx, userID, masterID, text)
	if err != nil {
		return 0, fmt.Errorf("request: сохранение жалобы: %w", err)
	}

	s.notifier.ComplaintCreated(complaintID, masterID, text)
	return complaintID, nil
}

// SubmitServiceRequest сохраняет консьерж-заявку: клиент оставляет
// контакты, администраторы ищут мастера вручную.
func (s *RequestService) SubmitServiceRequest(ctx context.Context, userID int64, categories, rawPhone, name string) (int64, error) {
	if categories == "" || name == "" {
		return 0, fmt.Errorf("категории и имя обязательны")
	}
	if !phone.IsValid(rawPhone) {
		return 0, ErrPhoneInvalid
	}
	normalized := phone.Normalize(rawPhone)

	requestID, err := s.repo.CreateServiceRequest(ctx, userID, categories, normalized, name)
	if err != nil {
		return 0, fmt.Errorf("request: сохранение заявки: %w", err)
	}

	s.notifier.ServiceRequested(requestID, categories, normalized, name)
	return requestID, nil
}
