package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mersinbot/masters-backend/internal/models"
)

// Ошибки уровня репозитория заказов.
var (
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderNotActive возвращается при попытке завершить или отменить
	// заказ, который уже не активен. Статус меняется только вперёд.
	ErrOrderNotActive = errors.New("order is not active")
)

// OrderRepository отвечает за заказы и их жизненный цикл.
type OrderRepository struct {
	db *sqlx.DB
}

// NewOrderRepository создаёт новый экземпляр.
func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create создаёт активный заказ клиента к мастеру.
func (r *OrderRepository) Create(ctx context.Context, clientID, masterID int64, categoryID *int64) (int64, error) {
	var id int64
	query := `
		INSERT INTO orders (client_id, master_id, category_id, status, created_at)
		VALUES ($1, $2, $3, 'active', NOW())
		RETURNING id
	`
	if err := r.db.QueryRowxContext(ctx, query, clientID, masterID, categoryID).Scan(&id); err != nil {
		return 0, fmt.Errorf("order repository: create %w", err)
	}
	return id, nil
}

// GetByID возвращает заказ по идентификатору.
func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	query := `
		SELECT id, client_id, master_id, category_id, status, rating, review_text, price, client_rating, created_at, completed_at
		FROM orders
		WHERE id = $1
	`
	if err := r.db.GetContext(ctx, &order, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("order repository: get by id %w", err)
	}
	return &order, nil
}

// Complete завершает заказ с опциональной оценкой, отзывом и ценой.
// Условие status = 'active' в запросе гарантирует, что повторное
// завершение не перезапишет уже сохранённую оценку.
func (r *OrderRepository) Complete(ctx context.Context, orderID int64, completion *models.OrderCompletion) error {
	query := `
		UPDATE orders
		SET status = 'completed', completed_at = NOW(), rating = $2, review_text = $3, price = $4
		WHERE id = $1 AND status = 'active'
	`
	res, err := r.db.ExecContext(ctx, query, orderID, completion.Rating, completion.ReviewText, completion.Price)
	if err != nil {
		return fmt.Errorf("order repository: complete %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("order repository: complete rows affected %w", err)
	}
	if affected == 0 {
		return r.notActiveOrMissing(ctx, orderID)
	}
	return nil
}

// Cancel отменяет активный заказ.
func (r *OrderRepository) Cancel(ctx context.Context, orderID int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = 'cancelled', completed_at = NOW() WHERE id = $1 AND status = 'active'`, orderID)
	if err != nil {
		return fmt.Errorf("order repository: cancel %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("order repository: cancel rows affected %w", err)
	}
	if affected == 0 {
		return r.notActiveOrMissing(ctx, orderID)
	}
	return nil
}

// SetClientRating ставит встречную оценку клиенту. Оценка ставится один
// раз, повторная попытка ничего не меняет.
func (r *OrderRepository) SetClientRating(ctx context.Context, orderID int64, rating int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET client_rating = $1 WHERE id = $2 AND client_rating IS NULL`, rating, orderID)
	if err != nil {
		return fmt.Errorf("order repository: set client rating %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("order repository: set client rating rows affected %w", err)
	}
	if affected == 0 {
		// Либо заказа нет, либо оценка уже стоит — для вызывающего
		// это один и тот же исход «не записано».
		if _, getErr := r.GetByID(ctx, orderID); getErr != nil {
			return getErr
		}
	}
	return nil
}

// GetClientPendingOrder возвращает самый старый активный заказ клиента,
// висящий дольше 24 часов. Такой заказ блокирует создание новых.
func (r *OrderRepository) GetClientPendingOrder(ctx context.Context, clientID int64) (*models.OrderWithMaster, error) {
	var order models.OrderWithMaster
	query := `
		SELECT o.id, o.client_id, o.master_id, o.category_id, o.status, o.rating, o.review_text,
		       o.price, o.client_rating, o.created_at, o.completed_at,
		       m.name AS master_name, m.phone AS master_phone
		FROM orders o
		JOIN masters m ON o.master_id = m.id
		WHERE o.client_id = $1
		AND o.status = 'active'
		AND o.created_at < (NOW() - INTERVAL '24 hours')
		ORDER BY o.created_at ASC
		LIMIT 1
	`
	if err := r.db.GetContext(ctx, &order, query, clientID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("order repository: get pending order %w", err)
	}
	return &order, nil
}

// ListActive возвращает активные заказы клиента.
func (r *OrderRepository) ListActive(ctx context.Context, clientID int64) ([]models.OrderWithMaster, error) {
	var orders []models.OrderWithMaster
	query := `
		SELECT o.id, o.client_id, o.master_id, o.category_id, o.status, o.rating, o.review_text,
		       o.price, o.client_rating, o.created_at, o.completed_at,
		       m.name AS master_name, m.phone AS master_phone, c.key_field AS category_key
		FROM orders o
		JOIN masters m ON o.master_id = m.id
		LEFT JOIN categories c ON o.category_id = c.id
		WHERE o.client_id = $1 AND o.status = 'active'
		ORDER BY o.created_at DESC
	`
	if err := r.db.SelectContext(ctx, &orders, query, clientID); err != nil {
		return nil, fmt.Errorf("order repository: list active %w", err)
	}
	return orders, nil
}

// ListCompleted возвращает завершённые заказы клиента постранично.
func (r *OrderRepository) ListCompleted(ctx context.Context, clientID int64, limit, offset int) ([]models.OrderWithMaster, error) {
	var orders []models.OrderWithMaster
	query := `
		SELECT o.id, o.client_id, o.master_id, o.category_id, o.status, o.rating, o.review_text,
		       o.price, o.client_rating, o.created_at, o.completed_at,
		       m.name AS master_name, m.phone AS master_phone, c.key_field AS category_key
		FROM orders o
		JOIN masters m ON o.master_id = m.id
		LEFT JOIN categories c ON o.category_id = c.id
		WHERE o.client_id = $1 AND o.status = 'completed'
		ORDER BY o.created_at DESC
		LIMIT $2 OFFSET $3
	`
	if err := r.db.SelectContext(ctx, &orders, query, clientID, limit, offset); err != nil {
		return nil, fmt.Errorf("order repository: list completed %w", err)
	}
	return orders, nil
}

// CountActive возвращает число активных заказов клиента.
func (r *OrderRepository) CountActive(ctx context.Context, clientID int64) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM orders WHERE client_id = $1 AND status = 'active'`, clientID); err != nil {
		return 0, fmt.Errorf("order repository: count active %w", err)
	}
	return count, nil
}

// CountCompleted возвращает число завершённых заказов клиента.
func (r *OrderRepository) CountCompleted(ctx context.Context, clientID int64) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM orders WHERE client_id = $1 AND status = 'completed'`, clientID); err != nil {
		return 0, fmt.Errorf("order repository: count completed %w", err)
	}
	return count, nil
}

// ClientTotals считает итоги заказов клиента для его профиля.
func (r *OrderRepository) ClientTotals(ctx context.Context, clientID int64) (*models.ClientOrderTotals, error) {
	var totals models.ClientOrderTotals
	query := `
		SELECT COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0) AS completed,
		       COALESCE(SUM(CASE WHEN status = 'cancelled' THEN 1 ELSE 0 END), 0) AS cancelled
		FROM orders
		WHERE client_id = $1
	`
	if err := r.db.GetContext(ctx, &totals, query, clientID); err != nil {
		return nil, fmt.Errorf("order repository: client totals %w", err)
	}
	return &totals, nil
}

// ListClientReviews возвращает заказы клиента с выставленной оценкой —
// его отзывы о мастерах.
func (r *OrderRepository) ListClientReviews(ctx context.Context, clientID int64) ([]models.OrderWithMaster, error) {
	var orders []models.OrderWithMaster
	query := `
		SELECT o.id, o.client_id, o.master_id, o.category_id, o.status, o.rating, o.review_text,
		       o.price, o.client_rating, o.created_at, o.completed_at,
		       m.name AS master_name, m.phone AS master_phone, c.key_field AS category_key
		FROM orders o
		JOIN masters m ON o.master_id = m.id
		LEFT JOIN categories c ON o.category_id = c.id
		WHERE o.client_id = $1 AND o.rating IS NOT NULL
		ORDER BY o.completed_at DESC
	`
	if err := r.db.SelectContext(ctx, &orders, query, clientID); err != nil {
		return nil, fmt.Errorf("order repository: list client reviews %w", err)
	}
	return orders, nil
}

// notActiveOrMissing различает «заказ не найден» и «заказ уже не активен».
func (r *OrderRepository) notActiveOrMissing(ctx context.Context, orderID int64) error {
	if _, err := r.GetByID(ctx, orderID); err != nil {
		return err
	}
	return ErrOrderNotActive
}
