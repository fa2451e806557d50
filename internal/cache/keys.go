package cache

import "github.com/google/uuid"

// PrivacySettingsKey ключ настроек приватности пользователя.
func PrivacySettingsKey(userID uuid.UUID) string {
	return "privacy:" + userID.String()
}
