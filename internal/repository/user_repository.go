package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mersinbot/masters-backend/internal/models"
)

// ErrUserNotFound возвращается, когда запись пользователя не найдена.
var ErrUserNotFound = errors.New("user not found")

// UserRepository отвечает за работу с таблицей users.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository создаёт экземпляр репозитория.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetRecordByTelegramID возвращает денормализованную карточку пользователя
// вместе со статусом его мастерского профиля. Именно эта выборка кешируется.
func (r *UserRepository) GetRecordByTelegramID(ctx context.Context, telegramID int64) (*models.UserRecord, error) {
	var record models.UserRecord
	query := `
		SELECT u.id AS user_id, u.telegram_id, u.username, u.language, u.is_master, u.is_client,
		       m.id AS master_id, m.status AS master_status
		FROM users u
		LEFT JOIN masters m ON u.id = m.user_id
		WHERE u.telegram_id = $1
		LIMIT 1
	`
	if err := r.db.GetContext(ctx, &record, query, telegramID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("user repository: get record by telegram id %w", err)
	}

	if record.Language == "" {
		record.Language = "ru"
	}

	return &record, nil
}

// GetTelegramID возвращает telegram id по внутреннему идентификатору.
func (r *UserRepository) GetTelegramID(ctx context.Context, userID int64) (int64, error) {
	var telegramID int64
	if err := r.db.GetContext(ctx, &telegramID, `SELECT telegram_id FROM users WHERE id = $1`, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("user repository: get telegram id %w", err)
	}
	return telegramID, nil
}

// GetByID возвращает пользователя по внутреннему идентификатору.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	query := `
		SELECT id, telegram_id, username, language, is_client, is_master, status, created_at
		FROM users
		WHERE id = $1
	`
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("user repository: get by id %w", err)
	}
	return &user, nil
}

// Create создаёт пользователя при первом контакте. Роль по умолчанию —
// клиент, статус active.
func (r *UserRepository) Create(ctx context.Context, telegramID int64, username *string, language string) (int64, error) {
	var id int64
	query := `
		INSERT INTO users (telegram_id, username, language, is_client, is_master, status, created_at)
		VALUES ($1, $2, $3, TRUE, FALSE, 'active', NOW())
		RETURNING id
	`
	if err := r.db.QueryRowxContext(ctx, query, telegramID, username, language).Scan(&id); err != nil {
		return 0, fmt.Errorf("user repository: create %w", err)
	}
	return id, nil
}

// SetMasterFlag выставляет или снимает роль мастера.
func (r *UserRepository) SetMasterFlag(ctx context.Context, userID int64, isMaster bool) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE users SET is_master = $1 WHERE id = $2`, isMaster, userID); err != nil {
		return fmt.Errorf("user repository: set master flag %w", err)
	}
	return nil
}

// UpdateStatus меняет статус пользователя.
func (r *UserRepository) UpdateStatus(ctx context.Context, userID int64, status string) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE users SET status = $1 WHERE id = $2`, status, userID); err != nil {
		return fmt.Errorf("user repository: update status %w", err)
	}
	return nil
}

// UpdateLanguage меняет предпочитаемый язык пользователя.
func (r *UserRepository) UpdateLanguage(ctx context.Context, userID int64, language string) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE users SET language = $1 WHERE id = $2`, language, userID); err != nil {
		return fmt.Errorf("user repository: update language %w", err)
	}
	return nil
}
