package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Ключи полей профиля в ответе API.
const (
	FieldUserID           = "user_id"
	FieldUsername         = "username"
	FieldDisplayName      = "display_name"
	FieldBio              = "bio"
	FieldEmail            = "email"
	FieldDateOfBirth      = "date_of_birth"
	FieldLocation         = "location"
	FieldAvatarURL        = "avatar_url"
	FieldWebsite          = "website"
	FieldCookingLevel     = "cooking_level"
	FieldFavoriteCuisines = "favorite_cuisines"
	FieldRecipesCount     = "recipes_count"
	FieldFollowersCount   = "followers_count"
	FieldCreatedAt        = "created_at"

	FieldIsSuspended      = "is_suspended"
	FieldSuspendedAt      = "suspended_at"
	FieldSuspendedUntil   = "suspended_until"
	FieldSuspensionReason = "suspension_reason"
	FieldSuspendedBy      = "suspended_by"
)

// Profile профиль пользователя в том виде, как он хранится.
type Profile struct {
	UserID           uuid.UUID       `db:"user_id" json:"user_id"`
	Username         string          `db:"username" json:"username"`
	Email            *string         `db:"email" json:"email,omitempty"`
	DisplayName      *string         `db:"display_name" json:"display_name,omitempty"`
	Bio              *string         `db:"bio" json:"bio,omitempty"`
	DateOfBirth      *time.Time      `db:"date_of_birth" json:"date_of_birth,omitempty"`
	Location         *string         `db:"location" json:"location,omitempty"`
	AvatarURL        *string         `db:"avatar_url" json:"avatar_url,omitempty"`
	Website          *string         `db:"website" json:"website,omitempty"`
	CookingLevel     *string         `db:"cooking_level" json:"cooking_level,omitempty"`
	FavoriteCuisines []string        `db:"favorite_cuisines" json:"favorite_cuisines,omitempty"`
	RecipesCount     int             `db:"recipes_count" json:"recipes_count"`
	FollowersCount   int             `db:"followers_count" json:"followers_count"`
	Preferences      json.RawMessage `db:"preferences" json:"-"`
	IsSuspended      bool            `db:"is_suspended" json:"is_suspended"`
	SuspendedAt      *time.Time      `db:"suspended_at" json:"suspended_at,omitempty"`
	SuspendedUntil   *time.Time      `db:"suspended_until" json:"suspended_until,omitempty"`
	SuspensionReason *string         `db:"suspension_reason" json:"suspension_reason,omitempty"`
	SuspendedBy      *string         `db:"suspended_by" json:"suspended_by,omitempty"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at" json:"updated_at"`
}

// Fields раскладывает профиль в набор полей для фильтрации по видимости.
// Пустые необязательные поля не попадают в набор; is_suspended есть всегда.
func (p *Profile) Fields() map[string]any {
	fields := map[string]any{
		FieldUserID:         p.UserID.String(),
		FieldUsername:       p.Username,
		FieldRecipesCount:   p.RecipesCount,
		FieldFollowersCount: p.FollowersCount,
		FieldIsSuspended:    p.IsSuspended,
	}
	if !p.CreatedAt.IsZero() {
		fields[FieldCreatedAt] = p.CreatedAt
	}

	putString(fields, FieldEmail, p.Email)
	putString(fields, FieldDisplayName, p.DisplayName)
	putString(fields, FieldBio, p.Bio)
	putString(fields, FieldLocation, p.Location)
	putString(fields, FieldAvatarURL, p.AvatarURL)
	putString(fields, FieldWebsite, p.Website)
	putString(fields, FieldCookingLevel, p.CookingLevel)
	if p.DateOfBirth != nil {
		fields[FieldDateOfBirth] = p.DateOfBirth.Format("2006-01-02")
	}
	if len(p.FavoriteCuisines) > 0 {
		fields[FieldFavoriteCuisines] = p.FavoriteCuisines
	}

	if p.SuspendedAt != nil {
		fields[FieldSuspendedAt] = *p.SuspendedAt
	}
	if p.SuspendedUntil != nil {
		fields[FieldSuspendedUntil] = *p.SuspendedUntil
	}
	putString(fields, FieldSuspensionReason, p.SuspensionReason)
	putString(fields, FieldSuspendedBy, p.SuspendedBy)

	return fields
}

func putString(fields map[string]any, key string, value *string) {
	if value != nil {
		fields[key] = *value
	}
}
