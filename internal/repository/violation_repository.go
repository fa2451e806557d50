package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/recipe-social-backend/internal/models"
)

// ViolationRepository журнал нарушений. Только добавление и чтение.
type ViolationRepository struct {
	db *sqlx.DB
}

// NewViolationRepository создаёт экземпляр репозитория.
func NewViolationRepository(db *sqlx.DB) *ViolationRepository {
	return &ViolationRepository{db: db}
}

const violationColumns = `id, user_id, violation_type, severity,
	COALESCE(evidence, 'null'::jsonb) AS evidence, week_key, created_at`

// Create добавляет нарушение в журнал.
func (r *ViolationRepository) Create(ctx context.Context, violation *models.Violation) error {
	query := `
		INSERT INTO violations (user_id, violation_type, severity, evidence, week_key, created_at)
		VALUES ($1, $2, $3, $4, $5, COALESCE($6, NOW()))
		RETURNING id, created_at
	`

	var evidence interface{}
	if len(violation.Evidence) > 0 {
		evidence = []byte(violation.Evidence)
	}

	if err := r.db.QueryRowxContext(
		ctx, query,
		violation.UserID,
		violation.ViolationType,
		violation.Severity,
		evidence,
		violation.WeekKey,
		violation.CreatedAt,
	).Scan(&violation.ID, &violation.CreatedAt); err != nil {
		return fmt.Errorf("violation repository: create %w", err)
	}

	return nil
}

// ListByUser возвращает все нарушения пользователя в порядке записи.
func (r *ViolationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Violation, error) {
	query := `SELECT ` + violationColumns + `
		FROM violations
		WHERE user_id = $1
		ORDER BY created_at ASC NULLS FIRST, id ASC
	`

	violations := make([]models.Violation, 0)
	if err := r.db.SelectContext(ctx, &violations, query, userID); err != nil {
		return nil, fmt.Errorf("violation repository: list by user %w", err)
	}

	return violations, nil
}
