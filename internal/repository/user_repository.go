package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ignatzorin/recipe-social-backend/internal/models"
	"github.com/ignatzorin/recipe-social-backend/internal/repository/common"
)

// ErrUserNotFound возвращается, когда запись пользователя не найдена.
var ErrUserNotFound = errors.New("user not found")

// UserRepository отвечает за работу с таблицами users и profiles.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository создаёт экземпляр репозитория.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetProfile возвращает профиль пользователя или nil, если пользователя нет.
// Пользователь без строки в profiles получает пустой профиль.
func (r *UserRepository) GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	query := `
		SELECT u.id, u.username, u.email, u.created_at,
			p.display_name, p.bio, p.date_of_birth, p.location, p.avatar_url, p.website,
			p.cooking_level, COALESCE(p.favorite_cuisines, '{}'),
			COALESCE(p.recipes_count, 0), COALESCE(p.followers_count, 0),
			COALESCE(p.is_suspended, FALSE), p.suspended_at, p.suspended_until,
			p.suspension_reason, p.suspended_by, COALESCE(p.updated_at, u.created_at)
		FROM users u
		LEFT JOIN profiles p ON p.user_id = u.id
		WHERE u.id = $1
	`

	var profile models.Profile
	var cuisines pq.StringArray

	if err := r.db.QueryRowxContext(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.Username,
		&profile.Email,
		&profile.CreatedAt,
		&profile.DisplayName,
		&profile.Bio,
		&profile.DateOfBirth,
		&profile.Location,
		&profile.AvatarURL,
		&profile.Website,
		&profile.CookingLevel,
		&cuisines,
		&profile.RecipesCount,
		&profile.FollowersCount,
		&profile.IsSuspended,
		&profile.SuspendedAt,
		&profile.SuspendedUntil,
		&profile.SuspensionReason,
		&profile.SuspendedBy,
		&profile.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("user repository: get profile %w", err)
	}

	profile.FavoriteCuisines = []string(cuisines)

	return &profile, nil
}

// GetPreferences возвращает кулинарные предпочтения пользователя.
func (r *UserRepository) GetPreferences(ctx context.Context, userID uuid.UUID) (json.RawMessage, error) {
	var preferences []byte
	query := `
		SELECT COALESCE(p.preferences, '{}'::jsonb)
		FROM users u
		LEFT JOIN profiles p ON p.user_id = u.id
		WHERE u.id = $1
	`
	if err := r.db.GetContext(ctx, &preferences, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("user repository: get preferences %w", err)
	}

	return json.RawMessage(preferences), nil
}

// UpdateSuspensionStatus записывает поля блокировки в профиль.
// Строка профиля создаётся, если её ещё нет.
func (r *UserRepository) UpdateSuspensionStatus(ctx context.Context, userID uuid.UUID, status models.SuspensionStatus) error {
	query := `
		INSERT INTO profiles (user_id, is_suspended, suspended_at, suspended_until, suspension_reason, suspended_by, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			is_suspended = EXCLUDED.is_suspended,
			suspended_at = EXCLUDED.suspended_at,
			suspended_until = EXCLUDED.suspended_until,
			suspension_reason = EXCLUDED.suspension_reason,
			suspended_by = EXCLUDED.suspended_by,
			updated_at = NOW()
	`

	if _, err := r.db.ExecContext(
		ctx, query,
		userID,
		status.IsSuspended,
		status.SuspendedAt,
		status.SuspendedUntil,
		status.SuspensionReason,
		status.SuspendedBy,
	); err != nil {
		if common.IsForeignKeyViolation(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("user repository: update suspension status %w", err)
	}

	return nil
}
