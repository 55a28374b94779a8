package models

import "time"

// Complaint — жалоба пользователя на мастера.
type Complaint struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	MasterID  int64     `db:"master_id" json:"master_id"`
	Text      string    `db:"text" json:"text"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// PremiumRequest — заявка мастера на премиум-размещение.
type PremiumRequest struct {
	ID        int64     `db:"id" json:"id"`
	MasterID  int64     `db:"master_id" json:"master_id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ServiceRequest — консьерж-заявка: свободный текст категорий и контакт.
type ServiceRequest struct {
	ID         int64     `db:"id" json:"id"`
	UserID     int64     `db:"user_id" json:"user_id"`
	Categories string    `db:"categories" json:"categories"`
	Phone      string    `db:"phone" json:"phone"`
	Name       string    `db:"name" json:"name"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// StatusLog — запись журнала смены статусов сущностей.
type StatusLog struct {
	ID         int64     `db:"id" json:"id"`
	EntityType string    `db:"entity_type" json:"entity_type"`
	EntityID   int64     `db:"entity_id" json:"entity_id"`
	OldStatus  *string   `db:"old_status" json:"old_status,omitempty"`
	NewStatus  string    `db:"new_status" json:"new_status"`
	ChangedBy  *int64    `db:"changed_by" json:"changed_by,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
