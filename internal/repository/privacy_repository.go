package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/recipe-social-backend/internal/models"
	"github.com/ignatzorin/recipe-social-backend/internal/repository/common"
)

// PrivacyRepository настройки приватности пользователей.
type PrivacyRepository struct {
	db *sqlx.DB
}

// NewPrivacyRepository создаёт экземпляр репозитория.
func NewPrivacyRepository(db *sqlx.DB) *PrivacyRepository {
	return &PrivacyRepository{db: db}
}

// Get возвращает настройки или nil, если пользователь их не сохранял.
func (r *PrivacyRepository) Get(ctx context.Context, userID uuid.UUID) (*models.PrivacySettings, error) {
	settings, err := common.GetByField[models.PrivacySettings](ctx, r.db, "privacy_settings", "user_id", userID, common.ErrNotFound)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("privacy repository: get %w", err)
	}

	return settings, nil
}

// Upsert сохраняет настройки целиком.
func (r *PrivacyRepository) Upsert(ctx context.Context, settings *models.PrivacySettings) error {
	query := `
		INSERT INTO privacy_settings (user_id, profile_visibility, email_visibility, date_of_birth_visibility, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			profile_visibility = EXCLUDED.profile_visibility,
			email_visibility = EXCLUDED.email_visibility,
			date_of_birth_visibility = EXCLUDED.date_of_birth_visibility,
			updated_at = NOW()
		RETURNING updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		settings.UserID,
		settings.ProfileVisibility,
		settings.EmailVisibility,
		settings.DateOfBirthVisibility,
	).Scan(&settings.UpdatedAt); err != nil {
		if common.IsForeignKeyViolation(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("privacy repository: upsert %w", err)
	}

	return nil
}
