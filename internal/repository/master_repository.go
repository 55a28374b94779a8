package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/mersinbot/masters-backend/internal/models"
	"github.com/mersinbot/masters-backend/internal/repository/common"
)

// Ошибки уровня репозитория мастеров.
var ErrMasterNotFound = errors.New("master not found")

// MasterRepository отвечает за анкеты мастеров, их теги и журнал статусов.
type MasterRepository struct {
	db *sqlx.DB
}

// NewMasterRepository создаёт новый экземпляр.
func NewMasterRepository(db *sqlx.DB) *MasterRepository {
	return &MasterRepository{db: db}
}

// Create создаёт анкету мастера вместе с наборами категорий/районов и
// записью в журнале статусов, одной транзакцией.
func (r *MasterRepository) Create(ctx context.Context, input *models.NewMaster) (int64, error) {
	var masterID int64

	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO masters (user_id, name, phone, description, status, source, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, NOW())
			RETURNING id
		`
		if err := tx.QueryRowxContext(ctx, query,
			input.UserID, input.Name, input.Phone, input.Description, input.Status, input.Source,
		).Scan(&masterID); err != nil {
			return fmt.Errorf("insert master: %w", err)
		}

		if err := insertTags(ctx, tx, masterID, input.Categories, input.Districts); err != nil {
			return err
		}

		logQuery := `
			INSERT INTO status_logs (entity_type, entity_id, old_status, new_status, created_at)
			VALUES ($1, $2, NULL, $3, NOW())
		`
		if _, err := tx.ExecContext(ctx, logQuery, models.EntityTypeMaster, masterID, input.Status); err != nil {
			return fmt.Errorf("insert status log: %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("master repository: create %w", err)
	}

	return masterID, nil
}

// GetByID возвращает анкету с агрегатами: ключи категорий и районов и
// число завершённых заказов, одним запросом.
func (r *MasterRepository) GetByID(ctx context.Context, id int64) (*models.MasterDetails, error) {
	query := `
		SELECT m.id, m.user_id, m.name, m.phone, m.description, m.status, m.source,
		       m.rating, m.premium_until, m.created_at, u.telegram_id, u.username,
		       (
		           SELECT array_agg(c.key_field)
		           FROM master_categories mc
		           JOIN categories c ON mc.category_id = c.id
		           WHERE mc.master_id = m.id
		       ) AS categories,
		       (
		           SELECT array_agg(d.key_field)
		           FROM master_districts md
		           JOIN districts d ON md.district_id = d.id
		           WHERE md.master_id = m.id
		       ) AS districts,
		       (
		           SELECT COUNT(*) FROM orders o WHERE o.master_id = m.id AND o.status = 'completed'
		       ) AS completed_orders
		FROM masters m
		LEFT JOIN users u ON m.user_id = u.id
		WHERE m.id = $1
	`

	var details models.MasterDetails
	var categories, districts pq.StringArray
	row := r.db.QueryRowxContext(ctx, query, id)
	if err := row.Scan(
		&details.ID, &details.UserID, &details.Name, &details.Phone, &details.Description,
		&details.Status, &details.Source, &details.Rating, &details.PremiumUntil, &details.CreatedAt,
		&details.TelegramID, &details.Username, &categories, &districts, &details.CompletedOrders,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMasterNotFound
		}
		return nil, fmt.Errorf("master repository: get by id %w", err)
	}

	details.Categories = []string(categories)
	details.Districts = []string(districts)
	if details.Categories == nil {
		details.Categories = []string{}
	}
	if details.Districts == nil {
		details.Districts = []string{}
	}

	return &details, nil
}

// GetByUserID возвращает анкету мастера по владельцу.
func (r *MasterRepository) GetByUserID(ctx context.Context, userID int64) (*models.Master, error) {
	var master models.Master
	query := `
		SELECT id, user_id, name, phone, description, status, source, rating, premium_until, created_at
		FROM masters
		WHERE user_id = $1
	`
	if err := r.db.GetContext(ctx, &master, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMasterNotFound
		}
		return nil, fmt.Errorf("master repository: get by user id %w", err)
	}
	return &master, nil
}

// GetByPhone ищет анкету по любому из известных представлений номера.
// Так дубликаты находятся даже для номеров, сохранённых в старом формате.
func (r *MasterRepository) GetByPhone(ctx context.Context, phoneVariants []string) (*models.Master, error) {
	if len(phoneVariants) == 0 {
		return nil, ErrMasterNotFound
	}

	var master models.Master
	query := `
		SELECT id, user_id, name, phone, description, status, source, rating, premium_until, created_at
		FROM masters
		WHERE phone = ANY($1::text[])
		LIMIT 1
	`
	if err := r.db.GetContext(ctx, &master, query, pq.Array(phoneVariants)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMasterNotFound
		}
		return nil, fmt.Errorf("master repository: get by phone %w", err)
	}
	return &master, nil
}

// UpdateProfile обновляет анкету. Наборы категорий и районов заменяются
// целиком: полное удаление и повторная вставка в одной транзакции
// гарантируют отсутствие дубликатов.
func (r *MasterRepository) UpdateProfile(ctx context.Context, masterID int64, update *models.MasterProfileUpdate) error {
	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `UPDATE masters SET name = $1, phone = $2, description = $3 WHERE id = $4`
		res, err := tx.ExecContext(ctx, query, update.Name, update.Phone, update.Description, masterID)
		if err != nil {
			return fmt.Errorf("update master: %w", err)
		}
		if affected, _ := res.RowsAffected(); affected == 0 {
			return ErrMasterNotFound
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM master_categories WHERE master_id = $1`, masterID); err != nil {
			return fmt.Errorf("delete categories: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM master_districts WHERE master_id = $1`, masterID); err != nil {
			return fmt.Errorf("delete districts: %w", err)
		}

		return insertTags(ctx, tx, masterID, update.Categories, update.Districts)
	})
	if err != nil {
		if errors.Is(err, ErrMasterNotFound) {
			return err
		}
		return fmt.Errorf("master repository: update profile %w", err)
	}
	return nil
}

// UpdateStatus меняет статус анкеты и пишет переход в журнал.
func (r *MasterRepository) UpdateStatus(ctx context.Context, masterID int64, status string, changedBy *int64) error {
	var oldStatus string
	if err := r.db.GetContext(ctx, &oldStatus, `SELECT status FROM masters WHERE id = $1`, masterID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrMasterNotFound
		}
		return fmt.Errorf("master repository: get status %w", err)
	}

	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `UPDATE masters SET status = $1 WHERE id = $2`, status, masterID); err != nil {
			return fmt.Errorf("update status: %w", err)
		}
		logQuery := `
			INSERT INTO status_logs (entity_type, entity_id, old_status, new_status, changed_by, created_at)
			VALUES ($1, $2, $3, $4, $5, NOW())
		`
		if _, err := tx.ExecContext(ctx, logQuery, models.EntityTypeMaster, masterID, oldStatus, status, changedBy); err != nil {
			return fmt.Errorf("insert status log: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("master repository: update status %w", err)
	}
	return nil
}

// SetPremiumUntil задаёт срок премиум-размещения. nil снимает срок.
func (r *MasterRepository) SetPremiumUntil(ctx context.Context, masterID int64, until *time.Time) error {
	res, err := r.db.ExecContext(ctx, `UPDATE masters SET premium_until = $1 WHERE id = $2`, until, masterID)
	if err != nil {
		return fmt.Errorf("master repository: set premium until %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("master repository: set premium until rows affected %w", err)
	}
	if affected == 0 {
		return ErrMasterNotFound
	}
	return nil
}

// LinkToUser привязывает бесхозную анкету к пользователю и активирует её
// на бесплатном тарифе.
func (r *MasterRepository) LinkToUser(ctx context.Context, masterID, userID int64) error {
	var oldStatus string
	if err := r.db.GetContext(ctx, &oldStatus, `SELECT status FROM masters WHERE id = $1`, masterID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrMasterNotFound
		}
		return fmt.Errorf("master repository: get status %w", err)
	}

	newStatus := models.MasterStatusActiveFree
	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `UPDATE masters SET user_id = $1, status = $2 WHERE id = $3`, userID, newStatus, masterID); err != nil {
			return fmt.Errorf("link master: %w", err)
		}
		logQuery := `
			INSERT INTO status_logs (entity_type, entity_id, old_status, new_status, changed_by, created_at)
			VALUES ($1, $2, $3, $4, $5, NOW())
		`
		if _, err := tx.ExecContext(ctx, logQuery, models.EntityTypeMaster, masterID, oldStatus, newStatus, userID); err != nil {
			return fmt.Errorf("insert status log: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("master repository: link to user %w", err)
	}
	return nil
}

// Search подбирает мастеров, обслуживающих хотя бы одну из запрошенных
// категорий И хотя бы один из запрошенных районов. Исключается только
// статус blocked; черновики и анкеты на модерации остаются в выдаче.
// Порядок строго: премиум-тариф, затем рейтинг, затем число завершённых
// заказов.
func (r *MasterRepository) Search(ctx context.Context, categoryIDs, districtIDs []int64, excludeUserID *int64) ([]models.MasterSearchItem, error) {
	args := []interface{}{pq.Array(categoryIDs), pq.Array(districtIDs)}

	excludeClause := ""
	if excludeUserID != nil {
		excludeClause = "AND (m.user_id IS NULL OR m.user_id != $3)"
		args = append(args, *excludeUserID)
	}

	query := fmt.Sprintf(`
		SELECT m.id, m.user_id, m.name, m.phone, m.description, m.status, m.source,
		       m.rating, m.premium_until, m.created_at, u.telegram_id, u.username,
		       (SELECT COUNT(*) FROM orders o WHERE o.master_id = m.id AND o.status = 'completed') AS completed_count
		FROM masters m
		LEFT JOIN users u ON m.user_id = u.id
		WHERE m.status NOT IN ('blocked')
		AND EXISTS (SELECT 1 FROM master_categories mc WHERE mc.master_id = m.id AND mc.category_id = ANY($1::bigint[]))
		AND EXISTS (SELECT 1 FROM master_districts md WHERE md.master_id = m.id AND md.district_id = ANY($2::bigint[]))
		%s
		ORDER BY
			CASE WHEN m.status = 'active_premium' THEN 0
			     WHEN m.status = 'active_free' THEN 1
			     ELSE 2 END,
			m.rating DESC NULLS LAST,
			completed_count DESC
	`, excludeClause)

	var items []models.MasterSearchItem
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("master repository: search %w", err)
	}
	return items, nil
}

// RecalculateRating пересчитывает рейтинг мастера как среднее оценок
// завершённых заказов.
func (r *MasterRepository) RecalculateRating(ctx context.Context, masterID int64) error {
	query := `
		UPDATE masters
		SET rating = (SELECT AVG(rating) FROM orders WHERE master_id = $1 AND status = 'completed')
		WHERE id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, masterID); err != nil {
		return fmt.Errorf("master repository: recalculate rating %w", err)
	}
	return nil
}

// OrderStats возвращает агрегаты заказов мастера.
func (r *MasterRepository) OrderStats(ctx context.Context, masterID int64) (*models.MasterOrderStats, error) {
	var stats models.MasterOrderStats
	query := `
		SELECT COUNT(*) AS total_orders,
		       COALESCE(SUM(CASE WHEN rating >= 4 THEN 1 ELSE 0 END), 0) AS satisfied_clients,
		       COUNT(rating) AS rated_orders
		FROM orders
		WHERE master_id = $1 AND status = 'completed'
	`
	if err := r.db.GetContext(ctx, &stats, query, masterID); err != nil {
		return nil, fmt.Errorf("master repository: order stats %w", err)
	}
	return &stats, nil
}

// Categories возвращает категории мастера.
func (r *MasterRepository) Categories(ctx context.Context, masterID int64) ([]models.Category, error) {
	var categories []models.Category
	query := `
		SELECT c.id, c.parent_id, c.key_field, c.short_key
		FROM categories c
		JOIN master_categories mc ON c.id = mc.category_id
		WHERE mc.master_id = $1
		ORDER BY c.key_field
	`
	if err := r.db.SelectContext(ctx, &categories, query, masterID); err != nil {
		return nil, fmt.Errorf("master repository: categories %w", err)
	}
	return categories, nil
}

// Districts возвращает районы мастера.
func (r *MasterRepository) Districts(ctx context.Context, masterID int64) ([]models.District, error) {
	var districts []models.District
	query := `
		SELECT d.id, d.key_field
		FROM districts d
		JOIN master_districts md ON d.id = md.district_id
		WHERE md.master_id = $1
		ORDER BY d.key_field
	`
	if err := r.db.SelectContext(ctx, &districts, query, masterID); err != nil {
		return nil, fmt.Errorf("master repository: districts %w", err)
	}
	return districts, nil
}

// insertTags вставляет наборы категорий и районов мастера.
func insertTags(ctx context.Context, tx *sqlx.Tx, masterID int64, categories, districts []int64) error {
	for _, categoryID := range categories {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO master_categories (master_id, category_id) VALUES ($1, $2)`, masterID, categoryID); err != nil {
			return fmt.Errorf("insert category %d: %w", categoryID, err)
		}
	}
	for _, districtID := range districts {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO master_districts (master_id, district_id) VALUES ($1, $2)`, masterID, districtID); err != nil {
			return fmt.Errorf("insert district %d: %w", districtID, err)
		}
	}
	return nil
}
