package models

import (
	"time"

	"github.com/google/uuid"
)

// PrivacySettings настройки видимости профиля пользователя.
type PrivacySettings struct {
	UserID                uuid.UUID `db:"user_id" json:"user_id"`
	ProfileVisibility     string    `db:"profile_visibility" json:"profile_visibility"`
	EmailVisibility       string    `db:"email_visibility" json:"email_visibility"`
	DateOfBirthVisibility string    `db:"date_of_birth_visibility" json:"date_of_birth_visibility"`
	UpdatedAt             time.Time `db:"updated_at" json:"updated_at"`
}

// DefaultPrivacySettings применяются, когда пользователь ничего не настраивал.
func DefaultPrivacySettings(userID uuid.UUID) PrivacySettings {
	return PrivacySettings{
		UserID:                userID,
		ProfileVisibility:     VisibilityPublic,
		EmailVisibility:       VisibilityPrivate,
		DateOfBirthVisibility: VisibilityPrivate,
	}
}

// PrivacyContext отношение зрителя к владельцу профиля. Вычисляется на запрос.
type PrivacyContext struct {
	ViewerID     uuid.UUID `json:"viewer_id"`
	TargetUserID uuid.UUID `json:"target_user_id"`
	IsSelf       bool      `json:"is_self"`
	IsFriend     bool      `json:"is_friend"`
}

// Friendship запись о дружбе с точки зрения одной из сторон.
type Friendship struct {
	ID          uuid.UUID `db:"id" json:"id"`
	RequesterID uuid.UUID `db:"requester_id" json:"requester_id"`
	AddresseeID uuid.UUID `db:"addressee_id" json:"addressee_id"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
