package models

import "time"

// Order — обращение клиента к мастеру. Статус меняется монотонно:
// active -> completed | cancelled, обратных переходов нет.
type Order struct {
	ID           int64      `db:"id" json:"id"`
	ClientID     int64      `db:"client_id" json:"client_id"`
	MasterID     int64      `db:"master_id" json:"master_id"`
	CategoryID   *int64     `db:"category_id" json:"category_id,omitempty"`
	Status       string     `db:"status" json:"status"`
	Rating       *int       `db:"rating" json:"rating,omitempty"`
	ReviewText   *string    `db:"review_text" json:"review_text,omitempty"`
	Price        *int       `db:"price" json:"price,omitempty"`
	ClientRating *int       `db:"client_rating" json:"client_rating,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	CompletedAt  *time.Time `db:"completed_at" json:"completed_at,omitempty"`
}

// OrderWithMaster — заказ с данными мастера и ключом категории для
// списков у клиента.
type OrderWithMaster struct {
	Order
	MasterName  string  `db:"master_name" json:"master_name"`
	MasterPhone *string `db:"master_phone" json:"master_phone,omitempty"`
	CategoryKey *string `db:"category_key" json:"category_key,omitempty"`
}

// OrderCompletion — данные завершения заказа: опциональная оценка,
// отзыв и цена работы.
type OrderCompletion struct {
	Rating     *int    `json:"rating,omitempty"`
	ReviewText *string `json:"review_text,omitempty"`
	Price      *int    `json:"price,omitempty"`
}

// ClientOrderTotals — счётчики завершённых и отменённых заказов клиента.
type ClientOrderTotals struct {
	Completed int `db:"completed" json:"completed"`
	Cancelled int `db:"cancelled" json:"cancelled"`
}
