package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/recipe-social-backend/internal/dto"
	"github.com/ignatzorin/recipe-social-backend/internal/logger"
	"github.com/ignatzorin/recipe-social-backend/internal/pkg/apperror"
	"github.com/ignatzorin/recipe-social-backend/internal/repository"
	"github.com/ignatzorin/recipe-social-backend/internal/service"
)

// ErrorHandler обрабатывает ошибки, добавленные через c.Error, централизованно.
// Внутренние ошибки маскируются, известные ошибки получают свой статус.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		appErr := toAppError(err)

		entry := logger.WithFields(logrus.Fields{
			"error":  err.Error(),
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
			"code":   appErr.Code,
		})
		if appErr.HTTPStatus >= http.StatusInternalServerError {
			entry.Error("request error")
		} else {
			entry.Info("request rejected")
		}

		c.JSON(appErr.HTTPStatus, dto.ErrorResponse{Error: appErr.PublicMessage(), Code: string(appErr.Code)})
	}
}

func toAppError(err error) *apperror.AppError {
	var appErr *apperror.AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, repository.ErrUserNotFound):
		return apperror.Wrap(err, apperror.ErrCodeNotFound, "пользователь не найден")
	case errors.Is(err, repository.ErrNoActiveSuspension):
		return apperror.Wrap(err, apperror.ErrCodeNotFound, "активной блокировки нет")
	case errors.Is(err, repository.ErrSuspensionConflict):
		return apperror.Wrap(err, apperror.ErrCodeConflict, "блокировка уже изменена, повторите запрос")
	case errors.Is(err, service.ErrInvalidVisibility):
		return apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	default:
		return apperror.Wrap(err, apperror.ErrCodeInternal, apperror.InternalMessage)
	}
}
