// Package privacy решает, какие поля чужого профиля можно показать зрителю.
//
// Правила фиксированы: владелец видит всё, идентификационные поля видны всем,
// поля блокировки видны всегда (прозрачность модерации важнее настроек),
// остальные поля открываются по настройке видимости, которая к ним относится.
// Неизвестное значение видимости трактуется как private.
package privacy

import (
	"encoding/json"

	"github.com/ignatzorin/recipe-social-backend/internal/models"
)

// Profile набор полей профиля, пригодный для частичного раскрытия.
type Profile map[string]any

var identityFields = map[string]struct{}{
	models.FieldUserID:   {},
	models.FieldUsername: {},
}

var suspensionFields = map[string]struct{}{
	models.FieldIsSuspended:      {},
	models.FieldSuspendedAt:      {},
	models.FieldSuspendedUntil:   {},
	models.FieldSuspensionReason: {},
	models.FieldSuspendedBy:      {},
}

// IsIdentityField поля, без которых нельзя отрисовать ссылку на пользователя.
func IsIdentityField(field string) bool {
	_, ok := identityFields[field]
	return ok
}

// IsSuspensionField поля статуса блокировки.
func IsSuspensionField(field string) bool {
	_, ok := suspensionFields[field]
	return ok
}

// GoverningVisibility возвращает настройку, которая управляет полем.
func GoverningVisibility(field string, settings models.PrivacySettings) string {
	switch field {
	case models.FieldEmail:
		return settings.EmailVisibility
	case models.FieldDateOfBirth:
		return settings.DateOfBirthVisibility
	default:
		return settings.ProfileVisibility
	}
}

// HasAccess проверяет уровень видимости для контекста.
func HasAccess(visibility string, pctx models.PrivacyContext) bool {
	if pctx.IsSelf {
		return true
	}

	switch visibility {
	case models.VisibilityPublic:
		return true
	case models.VisibilityFriends:
		return pctx.IsFriend
	default:
		return false
	}
}

// CanAccessField проверка одного поля по тем же правилам, что и FilterProfile.
func CanAccessField(field string, settings models.PrivacySettings, pctx models.PrivacyContext) bool {
	if pctx.IsSelf || IsIdentityField(field) || IsSuspensionField(field) {
		return true
	}
	return HasAccess(GoverningVisibility(field, settings), pctx)
}

// FilterProfile возвращает часть профиля, доступную зрителю.
// Для владельца профиль возвращается без изменений.
func FilterProfile(profile Profile, settings models.PrivacySettings, pctx models.PrivacyContext) Profile {
	if pctx.IsSelf {
		return profile
	}

	filtered := make(Profile, len(profile))
	for field, value := range profile {
		if CanAccessField(field, settings, pctx) {
			filtered[field] = value
		}
	}

	return filtered
}

// FilterPreferences пока пропускает настройки как есть: политики по полям
// для предпочтений нет.
// TODO: ввести видимость для предпочтений, когда появится настройка preferences_visibility.
func FilterPreferences(preferences json.RawMessage, pctx models.PrivacyContext) json.RawMessage {
	return preferences
}
