package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/recipe-social-backend/internal/dto"
	"github.com/ignatzorin/recipe-social-backend/internal/http/handlers/common"
	"github.com/ignatzorin/recipe-social-backend/internal/models"
	"github.com/ignatzorin/recipe-social-backend/internal/service"
	"github.com/ignatzorin/recipe-social-backend/internal/validation"
)

type AbuseTracker interface {
	RecordViolation(ctx context.Context, in service.RecordViolationInput) (*models.WeeklyStats, error)
	GetAbuseStats(ctx context.Context, userID uuid.UUID) (*models.WeeklyStats, error)
	ListViolations(ctx context.Context, userID uuid.UUID) ([]models.Violation, error)
}

type SuspensionManager interface {
	GetActive(ctx context.Context, userID uuid.UUID) (*models.Suspension, error)
	History(ctx context.Context, userID uuid.UUID) ([]models.SuspensionHistoryEntry, error)
	Lift(ctx context.Context, userID, liftedBy uuid.UUID, reason string) (*models.Suspension, error)
}

type NotificationLister interface {
	ListNotifications(ctx context.Context, limit, offset int) ([]models.AdminNotification, error)
}

// ModerationHandler эндпоинты модераторов: нарушения, блокировки, уведомления.
type ModerationHandler struct {
	abuse         AbuseTracker
	suspensions   SuspensionManager
	notifications NotificationLister
}

func NewModerationHandler(abuse AbuseTracker, suspensions SuspensionManager, notifications NotificationLister) *ModerationHandler {
	return &ModerationHandler{abuse: abuse, suspensions: suspensions, notifications: notifications}
}

// RecordViolation POST /moderation/violations
func (h *ModerationHandler) RecordViolation(c *gin.Context) {
	if _, err := common.CurrentUserID(c); err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req dto.RecordViolationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := validation.ValidateTag("violation_type", req.ViolationType, validation.MaxViolationTypeLength); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}
	if req.Severity != nil {
		if err := validation.ValidateTag("severity", *req.Severity, validation.MaxSeverityLength); err != nil {
			common.RespondBadRequest(c, err.Error())
			return
		}
	}
	if err := validation.ValidateEvidence(req.Evidence); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	userID, _ := uuid.Parse(req.UserID)
	stats, err := h.abuse.RecordViolation(c.Request.Context(), service.RecordViolationInput{
		UserID:        userID,
		ViolationType: req.ViolationType,
		Severity:      req.Severity,
		Evidence:      req.Evidence,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, stats)
}

// GetStats GET /moderation/users/:id/stats
func (h *ModerationHandler) GetStats(c *gin.Context) {
	userID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	stats, err := h.abuse.GetAbuseStats(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ListViolations GET /moderation/users/:id/violations
func (h *ModerationHandler) ListViolations(c *gin.Context) {
	userID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	violations, err := h.abuse.ListViolations(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.ListResponse[models.Violation]{Items: violations})
}

// GetSuspension GET /moderation/users/:id/suspension
func (h *ModerationHandler) GetSuspension(c *gin.Context) {
	userID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	active, err := h.suspensions.GetActive(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuspensionResponse(userID, active))
}

// SuspensionHistory GET /moderation/users/:id/suspension/history
func (h *ModerationHandler) SuspensionHistory(c *gin.Context) {
	userID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	history, err := h.suspensions.History(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.ListResponse[models.SuspensionHistoryEntry]{Items: history})
}

// LiftSuspension DELETE /moderation/users/:id/suspension
func (h *ModerationHandler) LiftSuspension(c *gin.Context) {
	moderatorID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	userID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.LiftSuspensionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			common.RespondBadRequest(c, err.Error())
			return
		}
	}
	if err := validation.ValidateLength("reason", req.Reason, 0, validation.MaxReasonLength); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	lifted, err := h.suspensions.Lift(c.Request.Context(), userID, moderatorID, req.Reason)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, lifted)
}

// ListNotifications GET /moderation/notifications
func (h *ModerationHandler) ListNotifications(c *gin.Context) {
	limit, offset := common.GetPagination(c)

	notifications, err := h.notifications.ListNotifications(c.Request.Context(), limit, offset)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.ListResponse[models.AdminNotification]{Items: notifications, Limit: limit, Offset: offset})
}
