package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/recipe-social-backend/internal/logger"
	"github.com/ignatzorin/recipe-social-backend/internal/models"
	"github.com/ignatzorin/recipe-social-backend/internal/pkg/weekkey"
)

type AdminNotificationRepository interface {
	ExistsForWeek(ctx context.Context, userID uuid.UUID, weekKey, kind string) (bool, error)
	Create(ctx context.Context, notification *models.AdminNotification) (bool, error)
	List(ctx context.Context, limit, offset int) ([]models.AdminNotification, error)
}

// AdminNotificationService создаёт записи для модераторов. Доставкой не занимается.
type AdminNotificationService struct {
	repo AdminNotificationRepository
}

func NewAdminNotificationService(repo AdminNotificationRepository) *AdminNotificationService {
	return &AdminNotificationService{repo: repo}
}

type thresholdPayload struct {
	ThisWeekViolations int            `json:"this_week_violations"`
	TotalViolations    int            `json:"total_violations"`
	SeverityBreakdown  map[string]int `json:"severity_breakdown"`
}

type suspensionPayload struct {
	SuspensionID       uuid.UUID      `json:"suspension_id"`
	Reason             string         `json:"reason"`
	SuspendedAt        time.Time      `json:"suspended_at"`
	SuspendedUntil     *time.Time     `json:"suspended_until,omitempty"`
	ViolationID        *uuid.UUID     `json:"violation_id,omitempty"`
	ThisWeekViolations int            `json:"this_week_violations"`
	SeverityBreakdown  map[string]int `json:"severity_breakdown,omitempty"`
}

// NotifyThreshold создаёт уведомление abuse_threshold, если за эту неделю его ещё нет.
// Возвращает true, если запись создана этим вызовом.
func (s *AdminNotificationService) NotifyThreshold(
	ctx context.Context,
	userID uuid.UUID,
	weekKey string,
	weekViolations []models.Violation,
	stats *models.WeeklyStats,
) (bool, error) {
	exists, err := s.repo.ExistsForWeek(ctx, userID, weekKey, models.AdminNotificationAbuseThreshold)
	if err != nil {
		return false, fmt.Errorf("проверка уведомления: %w", err)
	}
	if exists {
		return false, nil
	}

	payload, err := json.Marshal(thresholdPayload{
		ThisWeekViolations: stats.ThisWeekViolations,
		TotalViolations:    stats.TotalViolations,
		SeverityBreakdown:  stats.SeverityBreakdown,
	})
	if err != nil {
		return false, fmt.Errorf("payload уведомления: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(weekViolations))
	for _, v := range weekViolations {
		ids = append(ids, v.ID)
	}

	notification := &models.AdminNotification{
		UserID:       userID,
		WeekKey:      weekKey,
		Kind:         models.AdminNotificationAbuseThreshold,
		ViolationIDs: ids,
		Payload:      payload,
	}

	created, err := s.repo.Create(ctx, notification)
	if err != nil {
		return false, fmt.Errorf("создание уведомления: %w", err)
	}

	if created {
		logger.WithFields(logrus.Fields{
			"user_id":    userID,
			"week_key":   weekKey,
			"violations": stats.ThisWeekViolations,
		}).Warn("abuse threshold reached, moderators notified")
	}

	return created, nil
}

// EscalateSuspension сообщает модераторам о блокировке. Без дедупликации:
// каждая блокировка даёт отдельную запись.
func (s *AdminNotificationService) EscalateSuspension(ctx context.Context, suspension *models.Suspension, stats *models.WeeklyStats) error {
	week := weekkey.For(suspension.SuspendedAt)
	p := suspensionPayload{
		SuspensionID:   suspension.ID,
		Reason:         suspension.Reason,
		SuspendedAt:    suspension.SuspendedAt,
		SuspendedUntil: suspension.SuspendedUntil,
		ViolationID:    suspension.TriggeredByViolationID,
	}
	if stats != nil {
		week = stats.WeekKey
		p.ThisWeekViolations = stats.ThisWeekViolations
		p.SeverityBreakdown = stats.SeverityBreakdown
	}

	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("payload уведомления о блокировке: %w", err)
	}

	ids := make([]uuid.UUID, 0, 1)
	if suspension.TriggeredByViolationID != nil {
		ids = append(ids, *suspension.TriggeredByViolationID)
	}

	if _, err := s.repo.Create(ctx, &models.AdminNotification{
		UserID:       suspension.UserID,
		WeekKey:      week,
		Kind:         models.AdminNotificationAutoSuspension,
		ViolationIDs: ids,
		Payload:      payload,
	}); err != nil {
		return fmt.Errorf("уведомление о блокировке: %w", err)
	}

	return nil
}

// ListNotifications уведомления для панели модератора.
func (s *AdminNotificationService) ListNotifications(ctx context.Context, limit, offset int) ([]models.AdminNotification, error) {
	return s.repo.List(ctx, limit, offset)
}
