package dto

import "encoding/json"

// RecordViolationRequest нарушение, о котором сообщает детектор или модератор.
type RecordViolationRequest struct {
	UserID        string          `json:"user_id" binding:"required,uuid"`
	ViolationType string          `json:"violation_type" binding:"required"`
	Severity      *string         `json:"severity"`
	Evidence      json.RawMessage `json:"evidence"`
}

// LiftSuspensionRequest тело запроса на снятие блокировки. Причина необязательна.
type LiftSuspensionRequest struct {
	Reason string `json:"reason"`
}

// UpdatePrivacySettingsRequest частичное обновление настроек приватности.
type UpdatePrivacySettingsRequest struct {
	ProfileVisibility     *string `json:"profile_visibility"`
	EmailVisibility       *string `json:"email_visibility"`
	DateOfBirthVisibility *string `json:"date_of_birth_visibility"`
}
