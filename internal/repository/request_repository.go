package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// RequestRepository отвечает за жалобы и заявки: премиум и консьерж-сервис.
type RequestRepository struct {
	db *sqlx.DB
}

// NewRequestRepository создаёт новый экземпляр.
func NewRequestRepository(db *sqlx.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

// CreateComplaint сохраняет жалобу пользователя на мастера.
func (r *RequestRepository) CreateComplaint(ctx context.Context, userID, masterID int64, text string) (int64, error) {
	var id int64
	query := `
		INSERT INTO complaints (user_id, master_id, text, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id
	`
	if err := r.db.QueryRowxContext(ctx, query, userID, masterID, text).Scan(&id); err != nil {
		return 0, fmt.Errorf("request repository: create complaint %w", err)
	}
	return id, nil
}

// CreatePremiumRequest сохраняет заявку мастера на премиум-размещение.
func (r *RequestRepository) CreatePremiumRequest(ctx context.Context, masterID, userID int64, status string) (int64, error) {
	var id int64
	query := `INSERT INTO premium_requests (master_id, user_id, status) VALUES ($1, $2, $3) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, masterID, userID, status).Scan(&id); err != nil {
		return 0, fmt.Errorf("request repository: create premium request %w", err)
	}
	return id, nil
}

// CreateServiceRequest сохраняет консьерж-заявку.
func (r *RequestRepository) CreateServiceRequest(ctx context.Context, userID int64, categories, phone, name string) (int64, error) {
	var id int64
	query := `INSERT INTO service_requests (user_id, categories, phone, name) VALUES ($1, $2, $3, $4) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, userID, categories, phone, name).Scan(&id); err != nil {
		return 0, fmt.Errorf("request repository: create service request %w", err)
	}
	return id, nil
}
