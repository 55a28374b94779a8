package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mersinbot/masters-backend/internal/models"
	"github.com/mersinbot/masters-backend/internal/repository/common"
)

// ReputationRepository отвечает за критерии репутации и голоса по ним.
type ReputationRepository struct {
	db *sqlx.DB
}

// NewReputationRepository создаёт новый экземпляр.
func NewReputationRepository(db *sqlx.DB) *ReputationRepository {
	return &ReputationRepository{db: db}
}

// Criteria возвращает фиксированный чек-лист направления.
// roleClient=true — критерии оценки мастера клиентом.
func (r *ReputationRepository) Criteria(ctx context.Context, roleClient bool) ([]models.ReputationCriterion, error) {
	var criteria []models.ReputationCriterion
	query := `
		SELECT id, code_key, group_key, role_client
		FROM reputation_criteria
		WHERE role_client = $1
		ORDER BY group_key, id
	`
	if err := r.db.SelectContext(ctx, &criteria, query, roleClient); err != nil {
		return nil, fmt.Errorf("reputation repository: criteria %w", err)
	}
	return criteria, nil
}

// SaveVotes заменяет набор голосов направления по заказу целиком.
// Повторное голосование не плодит дубликатов: старый набор удаляется
// в той же транзакции.
func (r *ReputationRepository) SaveVotes(ctx context.Context, fromClient bool, orderID int64, criterionIDs []int64) error {
	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM reputation_votes WHERE order_id = $1 AND from_client = $2`, orderID, fromClient); err != nil {
			return fmt.Errorf("delete votes: %w", err)
		}
		for _, criterionID := range criterionIDs {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO reputation_votes (from_client, order_id, criterion_id) VALUES ($1, $2, $3)`,
				fromClient, orderID, criterionID); err != nil {
				return fmt.Errorf("insert vote %d: %w", criterionID, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("reputation repository: save votes %w", err)
	}
	return nil
}

// MasterVotedOrders считает различные заказы мастера, получившие хотя бы
// один голос от клиентов. Это знаменатель процентов.
func (r *ReputationRepository) MasterVotedOrders(ctx context.Context, masterID int64) (int, error) {
	var total int
	query := `
		SELECT COUNT(DISTINCT order_id)
		FROM reputation_votes rv
		JOIN orders o ON rv.order_id = o.id
		WHERE o.master_id = $1 AND rv.from_client = TRUE
	`
	if err := r.db.GetContext(ctx, &total, query, masterID); err != nil {
		return 0, fmt.Errorf("reputation repository: master voted orders %w", err)
	}
	return total, nil
}

// MasterCriterionCounts возвращает разбивку голосов клиентов по
// критериям для мастера.
func (r *ReputationRepository) MasterCriterionCounts(ctx context.Context, masterID int64) ([]models.CriterionCount, error) {
	var counts []models.CriterionCount
	query := `
		SELECT rc.code_key, COUNT(rv.id) AS count
		FROM reputation_criteria rc
		JOIN reputation_votes rv ON rc.id = rv.criterion_id
		JOIN orders o ON rv.order_id = o.id
		WHERE o.master_id = $1 AND rv.from_client = TRUE
		GROUP BY rc.id, rc.code_key
	`
	if err := r.db.SelectContext(ctx, &counts, query, masterID); err != nil {
		return nil, fmt.Errorf("reputation repository: master criterion counts %w", err)
	}
	return counts, nil
}

// ClientVotedOrders считает различные заказы клиента, получившие хотя бы
// один голос от мастеров.
func (r *ReputationRepository) ClientVotedOrders(ctx context.Context, userID int64) (int, error) {
	var total int
	query := `
		SELECT COUNT(DISTINCT order_id)
		FROM reputation_votes rv
		JOIN orders o ON rv.order_id = o.id
		WHERE o.client_id = $1 AND rv.from_client = FALSE
	`
	if err := r.db.GetContext(ctx, &total, query, userID); err != nil {
		return 0, fmt.Errorf("reputation repository: client voted orders %w", err)
	}
	return total, nil
}

// ClientCriterionCounts возвращает разбивку голосов мастеров по
// критериям для клиента.
func (r *ReputationRepository) ClientCriterionCounts(ctx context.Context, userID int64) ([]models.CriterionCount, error) {
	var counts []models.CriterionCount
	query := `
		SELECT rc.code_key, COUNT(rv.id) AS count
		FROM reputation_criteria rc
		JOIN reputation_votes rv ON rc.id = rv.criterion_id
		JOIN orders o ON rv.order_id = o.id
		WHERE o.client_id = $1 AND rv.from_client = FALSE
		GROUP BY rc.id, rc.code_key
	`
	if err := r.db.SelectContext(ctx, &counts, query, userID); err != nil {
		return nil, fmt.Errorf("reputation repository: client criterion counts %w", err)
	}
	return counts, nil
}
