package common

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/recipe-social-backend/internal/dto"
	"github.com/ignatzorin/recipe-social-backend/internal/http/middleware"
	"github.com/ignatzorin/recipe-social-backend/internal/pkg/apperror"
)

// Пагинация списков модератора.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

var (
	ErrNoUserInContext = errors.New("пользователь не найден в контексте")
	ErrInvalidUUID     = errors.New("неверный формат UUID")
)

// CurrentUserID пользователь, которого положил AuthMiddleware.
func CurrentUserID(c *gin.Context) (uuid.UUID, error) {
	if id, ok := c.Value(middleware.ContextUserIDKey).(uuid.UUID); ok && id != uuid.Nil {
		return id, nil
	}
	return uuid.Nil, ErrNoUserInContext
}

func ParseUUIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	raw := c.Param(name)
	if raw == "" {
		return uuid.Nil, fmt.Errorf("параметр %s отсутствует", name)
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s", ErrInvalidUUID, name)
	}
	return id, nil
}

// RespondUnauthorized обрывает запрос с 401.
func RespondUnauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "требуется авторизация"
	}
	abort(c, http.StatusUnauthorized, apperror.ErrCodeUnauthorized, message)
}

// RespondBadRequest обрывает запрос с 400. Используется для ошибок входных данных,
// до вызова сервиса.
func RespondBadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "некорректный запрос"
	}
	abort(c, http.StatusBadRequest, apperror.ErrCodeValidation, message)
}

func abort(c *gin.Context, status int, code apperror.ErrorCode, message string) {
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: message, Code: string(code)})
}

// GetPagination limit и offset из query. Мусор заменяется дефолтами,
// limit не больше MaxPageLimit.
func GetPagination(c *gin.Context) (limit, offset int) {
	limit = queryInt(c, "limit", DefaultPageLimit)
	switch {
	case limit < 1:
		limit = DefaultPageLimit
	case limit > MaxPageLimit:
		limit = MaxPageLimit
	}

	offset = queryInt(c, "offset", 0)
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func queryInt(c *gin.Context, key string, fallback int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return fallback
	}
	return v
}
