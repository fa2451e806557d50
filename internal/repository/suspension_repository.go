package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/recipe-social-backend/internal/models"
	"github.com/ignatzorin/recipe-social-backend/internal/repository/common"
)

var (
	// ErrNoActiveSuspension возвращается, когда у пользователя нет активной блокировки.
	ErrNoActiveSuspension = errors.New("no active suspension")
	// ErrSuspensionConflict параллельная активация успела раньше.
	ErrSuspensionConflict = errors.New("suspension already activated concurrently")
)

// SuspensionRepository блокировки пользователей и их история.
type SuspensionRepository struct {
	db *sqlx.DB
}

// NewSuspensionRepository создаёт экземпляр репозитория.
func NewSuspensionRepository(db *sqlx.DB) *SuspensionRepository {
	return &SuspensionRepository{db: db}
}

// Activate создаёт активную блокировку. Действующая блокировка в той же
// транзакции деактивируется и возвращается как superseded.
func (r *SuspensionRepository) Activate(ctx context.Context, suspension *models.Suspension) (*models.Suspension, error) {
	var superseded *models.Suspension

	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		var current models.Suspension
		err := tx.GetContext(ctx, &current, `
			SELECT * FROM user_suspensions
			WHERE user_id = $1 AND is_active = TRUE
			FOR UPDATE
		`, suspension.UserID)
		switch {
		case err == nil:
			if _, err := tx.ExecContext(ctx, `
				UPDATE user_suspensions SET is_active = FALSE, lifted_at = $2
				WHERE id = $1
			`, current.ID, suspension.SuspendedAt); err != nil {
				return fmt.Errorf("deactivate current: %w", err)
			}
			current.IsActive = false
			liftedAt := suspension.SuspendedAt
			current.LiftedAt = &liftedAt
			superseded = &current
		case errors.Is(err, sql.ErrNoRows):
		default:
			return fmt.Errorf("select current: %w", err)
		}

		query := `
			INSERT INTO user_suspensions
				(user_id, reason, suspended_at, suspended_until, triggered_by_violation_id, suspended_by, is_active)
			VALUES ($1, $2, $3, $4, $5, $6, TRUE)
			RETURNING id
		`
		if err := tx.QueryRowxContext(
			ctx, query,
			suspension.UserID,
			suspension.Reason,
			suspension.SuspendedAt,
			suspension.SuspendedUntil,
			suspension.TriggeredByViolationID,
			suspension.SuspendedBy,
		).Scan(&suspension.ID); err != nil {
			if common.IsUniqueViolation(err) {
				return ErrSuspensionConflict
			}
			return fmt.Errorf("insert: %w", err)
		}
		suspension.IsActive = true

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("suspension repository: activate %w", err)
	}

	return superseded, nil
}

// GetActive возвращает активную блокировку или nil.
func (r *SuspensionRepository) GetActive(ctx context.Context, userID uuid.UUID) (*models.Suspension, error) {
	var suspension models.Suspension
	err := r.db.GetContext(ctx, &suspension,
		`SELECT * FROM user_suspensions WHERE user_id = $1 AND is_active = TRUE`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("suspension repository: get active %w", err)
	}

	return &suspension, nil
}

// Deactivate снимает активную блокировку.
func (r *SuspensionRepository) Deactivate(ctx context.Context, id uuid.UUID, liftedBy *uuid.UUID, liftedAt time.Time) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE user_suspensions SET is_active = FALSE, lifted_at = $2, lifted_by = $3
		WHERE id = $1 AND is_active = TRUE
	`, id, liftedAt, liftedBy)
	if err != nil {
		return fmt.Errorf("suspension repository: deactivate %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("suspension repository: deactivate rows affected %w", err)
	}

	if rowsAffected == 0 {
		return ErrNoActiveSuspension
	}

	return nil
}

// AppendHistory добавляет запись в историю блокировок.
func (r *SuspensionRepository) AppendHistory(ctx context.Context, entry *models.SuspensionHistoryEntry) error {
	query := `
		INSERT INTO suspension_history
			(user_id, suspension_id, action, reason, violation_id, suspended_until, actor)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		entry.UserID,
		entry.SuspensionID,
		entry.Action,
		entry.Reason,
		entry.ViolationID,
		entry.SuspendedUntil,
		entry.Actor,
	).Scan(&entry.ID, &entry.CreatedAt); err != nil {
		return fmt.Errorf("suspension repository: append history %w", err)
	}

	return nil
}

// ListHistory возвращает историю блокировок пользователя, новые записи первыми.
func (r *SuspensionRepository) ListHistory(ctx context.Context, userID uuid.UUID) ([]models.SuspensionHistoryEntry, error) {
	entries := make([]models.SuspensionHistoryEntry, 0)
	if err := r.db.SelectContext(ctx, &entries, `
		SELECT * FROM suspension_history
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`, userID); err != nil {
		return nil, fmt.Errorf("suspension repository: list history %w", err)
	}

	return entries, nil
}
