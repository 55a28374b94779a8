package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mersinbot/masters-backend/internal/models"
)

// ErrClientProfileNotFound возвращается при отсутствии клиентского профиля.
var ErrClientProfileNotFound = errors.New("client profile not found")

// ClientRepository отвечает за клиентские профили: телефон и агрегаты.
type ClientRepository struct {
	db *sqlx.DB
}

// NewClientRepository создаёт новый экземпляр.
func NewClientRepository(db *sqlx.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// GetProfile возвращает клиентский профиль пользователя.
func (r *ClientRepository) GetProfile(ctx context.Context, userID int64) (*models.ClientProfile, error) {
	var profile models.ClientProfile
	query := `
		SELECT user_id, phone, phone_verified, rating, total_completed, total_cancelled, created_at, updated_at
		FROM client_profiles
		WHERE user_id = $1
	`
	if err := r.db.GetContext(ctx, &profile, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClientProfileNotFound
		}
		return nil, fmt.Errorf("client repository: get profile %w", err)
	}
	return &profile, nil
}

// CreateProfile создаёт клиентский профиль.
func (r *ClientRepository) CreateProfile(ctx context.Context, userID int64, phone *string, phoneVerified bool) error {
	query := `
		INSERT INTO client_profiles (user_id, phone, phone_verified, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
	`
	if _, err := r.db.ExecContext(ctx, query, userID, phone, phoneVerified); err != nil {
		return fmt.Errorf("client repository: create profile %w", err)
	}
	return nil
}

// UpdatePhone обновляет телефон клиента.
func (r *ClientRepository) UpdatePhone(ctx context.Context, userID int64, phone string, verified bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE client_profiles SET phone = $1, phone_verified = $2, updated_at = NOW() WHERE user_id = $3`,
		phone, verified, userID)
	if err != nil {
		return fmt.Errorf("client repository: update phone %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrClientProfileNotFound
	}
	return nil
}

// UpdateRating сохраняет пересчитанный рейтинг клиента.
func (r *ClientRepository) UpdateRating(ctx context.Context, userID int64, rating float64) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE client_profiles SET rating = $1, updated_at = NOW() WHERE user_id = $2`, rating, userID); err != nil {
		return fmt.Errorf("client repository: update rating %w", err)
	}
	return nil
}

// AverageClientRating считает среднюю встречную оценку клиента по заказам.
// Отсутствие оценок — nil.
func (r *ClientRepository) AverageClientRating(ctx context.Context, userID int64) (*float64, error) {
	var avg *float64
	query := `SELECT AVG(client_rating) FROM orders WHERE client_id = $1 AND client_rating IS NOT NULL`
	if err := r.db.GetContext(ctx, &avg, query, userID); err != nil {
		return nil, fmt.Errorf("client repository: average rating %w", err)
	}
	return avg, nil
}

// UpdateOrderTotals сохраняет счётчики завершённых и отменённых заказов.
func (r *ClientRepository) UpdateOrderTotals(ctx context.Context, userID int64, totals *models.ClientOrderTotals) error {
	query := `
		UPDATE client_profiles
		SET total_completed = $1, total_cancelled = $2, updated_at = NOW()
		WHERE user_id = $3
	`
	if _, err := r.db.ExecContext(ctx, query, totals.Completed, totals.Cancelled, userID); err != nil {
		return fmt.Errorf("client repository: update order totals %w", err)
	}
	return nil
}
