package models

import "time"

// User описывает пользователя бота. Создаётся при первом контакте и
// никогда не удаляется.
type User struct {
	ID         int64     `db:"id" json:"id"`
	TelegramID int64     `db:"telegram_id" json:"telegram_id"`
	Username   *string   `db:"username" json:"username,omitempty"`
	Language   string    `db:"language" json:"language"`
	IsClient   bool      `db:"is_client" json:"is_client"`
	IsMaster   bool      `db:"is_master" json:"is_master"`
	Status     string    `db:"status" json:"status"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// UserRecord — денормализованная карточка пользователя вместе со статусом
// его мастерского профиля. Именно её хранит UserCache и отдаёт middleware
// на каждое входящее событие.
type UserRecord struct {
	UserID       int64   `db:"user_id" json:"user_id"`
	TelegramID   int64   `db:"telegram_id" json:"telegram_id"`
	Username     *string `db:"username" json:"username,omitempty"`
	Language     string  `db:"language" json:"language"`
	IsClient     bool    `db:"is_client" json:"is_client"`
	IsMaster     bool    `db:"is_master" json:"is_master"`
	MasterID     *int64  `db:"master_id" json:"master_id,omitempty"`
	MasterStatus *string `db:"master_status" json:"master_status,omitempty"`
}

// ClientProfile хранит клиентскую сторону пользователя: телефон и
// агрегаты по заказам. Рейтинг — производное среднее от оценок мастеров.
type ClientProfile struct {
	UserID         int64     `db:"user_id" json:"user_id"`
	Phone          *string   `db:"phone" json:"phone,omitempty"`
	PhoneVerified  bool      `db:"phone_verified" json:"phone_verified"`
	Rating         float64   `db:"rating" json:"rating"`
	TotalCompleted int       `db:"total_completed" json:"total_completed"`
	TotalCancelled int       `db:"total_cancelled" json:"total_cancelled"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}
