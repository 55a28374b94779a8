package models

import "time"

// Master описывает профиль мастера. Профиль может быть не привязан к
// пользователю: анкеты, добавленные администратором, живут без владельца
// до момента привязки.
type Master struct {
	ID           int64      `db:"id" json:"id"`
	UserID       *int64     `db:"user_id" json:"user_id,omitempty"`
	Name         string     `db:"name" json:"name"`
	Phone        string     `db:"phone" json:"phone"`
	Description  *string    `db:"description" json:"description,omitempty"`
	Status       string     `db:"status" json:"status"`
	Source       *string    `db:"source" json:"source,omitempty"`
	Rating       *float64   `db:"rating" json:"rating,omitempty"`
	PremiumUntil *time.Time `db:"premium_until" json:"premium_until,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}

// MasterDetails — мастер вместе с агрегатами для карточки: ключи
// категорий и районов и число завершённых заказов.
type MasterDetails struct {
	Master
	TelegramID      *int64   `db:"telegram_id" json:"telegram_id,omitempty"`
	Username        *string  `db:"username" json:"username,omitempty"`
	Categories      []string `json:"categories"`
	Districts       []string `json:"districts"`
	CompletedOrders int      `db:"completed_orders" json:"completed_orders"`
}

// MasterSearchItem — строка выдачи подбора мастеров.
type MasterSearchItem struct {
	Master
	TelegramID     *int64  `db:"telegram_id" json:"telegram_id,omitempty"`
	Username       *string `db:"username" json:"username,omitempty"`
	CompletedCount int     `db:"completed_count" json:"completed_count"`
}

// MasterOrderStats — статистика заказов мастера для его кабинета.
// SatisfiedClients — завершённые заказы с оценкой 4 и выше.
type MasterOrderStats struct {
	TotalOrders      int `db:"total_orders" json:"total_orders"`
	RatedOrders      int `db:"rated_orders" json:"rated_orders"`
	SatisfiedClients int `db:"satisfied_clients" json:"satisfied_clients"`
}

// NewMaster — входные данные регистрации мастера.
type NewMaster struct {
	UserID      *int64
	Name        string
	Phone       string
	Description *string
	Categories  []int64
	Districts   []int64
	Source      string
	Status      string
}

// MasterProfileUpdate — входные данные редактирования анкеты.
// Наборы категорий и районов заменяются целиком.
type MasterProfileUpdate struct {
	Name        string
	Phone       string
	Description *string
	Categories  []int64
	Districts   []int64
}
