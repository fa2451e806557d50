package dto

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/ignatzorin/recipe-social-backend/internal/models"
)

// ErrorResponse стандартный ответ с ошибкой.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// SuspensionResponse активная блокировка; Suspension=nil, если её нет.
type SuspensionResponse struct {
	UserID      uuid.UUID          `json:"user_id"`
	IsSuspended bool               `json:"is_suspended"`
	Suspension  *models.Suspension `json:"suspension,omitempty"`
}

// NewSuspensionResponse собирает ответ о статусе блокировки.
func NewSuspensionResponse(userID uuid.UUID, s *models.Suspension) SuspensionResponse {
	return SuspensionResponse{UserID: userID, IsSuspended: s != nil, Suspension: s}
}

// FieldAccessResponse результат проверки доступа к одному полю.
type FieldAccessResponse struct {
	UserID     uuid.UUID `json:"user_id"`
	Field      string    `json:"field"`
	Accessible bool      `json:"accessible"`
}

// PreferencesResponse кулинарные предпочтения пользователя.
type PreferencesResponse struct {
	UserID      uuid.UUID       `json:"user_id"`
	Preferences json.RawMessage `json:"preferences"`
}

// ListResponse список с пагинацией.
type ListResponse[T any] struct {
	Items  []T `json:"items"`
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}
