package handlers

import (
	"context"
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/ignatzorin/recipe-social-backend/internal/http/middleware"
	"github.com/ignatzorin/recipe-social-backend/internal/models"
	"github.com/ignatzorin/recipe-social-backend/internal/privacy"
	"github.com/ignatzorin/recipe-social-backend/internal/service"
)

type mockAbuse struct {
	mock.Mock
}

func (m *mockAbuse) RecordViolation(ctx context.Context, in service.RecordViolationInput) (*models.WeeklyStats, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WeeklyStats), args.Error(1)
}

func (m *mockAbuse) GetAbuseStats(ctx context.Context, userID uuid.UUID) (*models.WeeklyStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WeeklyStats), args.Error(1)
}

func (m *mockAbuse) ListViolations(ctx context.Context, userID uuid.UUID) ([]models.Violation, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Violation), args.Error(1)
}

type mockSuspensions struct {
	mock.Mock
}

func (m *mockSuspensions) GetActive(ctx context.Context, userID uuid.UUID) (*models.Suspension, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Suspension), args.Error(1)
}

func (m *mockSuspensions) History(ctx context.Context, userID uuid.UUID) ([]models.SuspensionHistoryEntry, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.SuspensionHistoryEntry), args.Error(1)
}

func (m *mockSuspensions) Lift(ctx context.Context, userID, liftedBy uuid.UUID, reason string) (*models.Suspension, error) {
	args := m.Called(ctx, userID, liftedBy, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Suspension), args.Error(1)
}

type mockNotifications struct {
	mock.Mock
}

func (m *mockNotifications) ListNotifications(ctx context.Context, limit, offset int) ([]models.AdminNotification, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]models.AdminNotification), args.Error(1)
}

type mockPrivacy struct {
	mock.Mock
}

func (m *mockPrivacy) GetFilteredProfile(ctx context.Context, viewerID, targetID uuid.UUID) (privacy.Profile, error) {
	args := m.Called(ctx, viewerID, targetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(privacy.Profile), args.Error(1)
}

func (m *mockPrivacy) CanAccessField(ctx context.Context, viewerID, targetID uuid.UUID, field string) (bool, error) {
	args := m.Called(ctx, viewerID, targetID, field)
	return args.Bool(0), args.Error(1)
}

func (m *mockPrivacy) GetPreferences(ctx context.Context, viewerID, targetID uuid.UUID) (json.RawMessage, error) {
	args := m.Called(ctx, viewerID, targetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *mockPrivacy) GetSettings(ctx context.Context, userID uuid.UUID) (models.PrivacySettings, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(models.PrivacySettings), args.Error(1)
}

func (m *mockPrivacy) UpdateSettings(ctx context.Context, userID uuid.UUID, in service.UpdateSettingsInput) (models.PrivacySettings, error) {
	args := m.Called(ctx, userID, in)
	return args.Get(0).(models.PrivacySettings), args.Error(1)
}

// newTestRouter роутер с обработчиком ошибок и, если userID не nil, авторизованным пользователем.
func newTestRouter(userID *uuid.UUID, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	if userID != nil {
		id := *userID
		r.Use(func(c *gin.Context) {
			c.Set(middleware.ContextUserIDKey, id)
			c.Set(middleware.ContextRoleKey, role)
			c.Next()
		})
	}
	return r
}
