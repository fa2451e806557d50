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

type ViolationRepository interface {
	Create(ctx context.Context, violation *models.Violation) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Violation, error)
}

type ThresholdNotifier interface {
	NotifyThreshold(ctx context.Context, userID uuid.UUID, weekKey string, weekViolations []models.Violation, stats *models.WeeklyStats) (bool, error)
}

type Suspender interface {
	Suspend(ctx context.Context, in SuspendInput) (*models.Suspension, error)
}

// RecordViolationInput входные данные нарушения. Тип и серьёзность не проверяются.
type RecordViolationInput struct {
	UserID        uuid.UUID
	ViolationType string
	Severity      *string
	Evidence      json.RawMessage
}

// AbuseService ведёт журнал нарушений и запускает эскалацию.
//
// Решение об эскалации принимается по прочитанной статистике без блокировок,
// поэтому эскалация выполняется как минимум один раз и может повториться при
// параллельных вызовах. Дубли уведомлений отсекает NotifyThreshold.
type AbuseService struct {
	violations ViolationRepository
	policy     *EscalationPolicy
	notifier   ThresholdNotifier
	suspender  Suspender
	now        func() time.Time
}

func NewAbuseService(
	violations ViolationRepository,
	policy *EscalationPolicy,
	notifier ThresholdNotifier,
	suspender Suspender,
) *AbuseService {
	return &AbuseService{
		violations: violations,
		policy:     policy,
		notifier:   notifier,
		suspender:  suspender,
		now:        time.Now,
	}
}

func (s *AbuseService) SetClock(now func() time.Time) {
	s.now = now
}

// RecordViolation записывает нарушение и возвращает статистику после записи.
// Статистика возвращается только если все сработавшие действия выполнены.
func (s *AbuseService) RecordViolation(ctx context.Context, in RecordViolationInput) (*models.WeeklyStats, error) {
	now := s.now().UTC()
	week := weekkey.For(now)

	violation := &models.Violation{
		UserID:        in.UserID,
		ViolationType: in.ViolationType,
		Severity:      in.Severity,
		Evidence:      in.Evidence,
		WeekKey:       &week,
		CreatedAt:     &now,
	}
	if err := s.violations.Create(ctx, violation); err != nil {
		return nil, fmt.Errorf("запись нарушения: %w", err)
	}

	all, err := s.violations.ListByUser(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("чтение нарушений: %w", err)
	}

	stats := AggregateWeeklyStats(in.UserID, all, week, s.policy)

	log := logger.WithFields(logrus.Fields{
		"user_id":        in.UserID,
		"violation_id":   violation.ID,
		"violation_type": in.ViolationType,
		"week_key":       week,
		"this_week":      stats.ThisWeekViolations,
	})
	log.Debug("violation recorded")

	if stats.ShouldNotifyAdmin {
		if _, err := s.notifier.NotifyThreshold(ctx, in.UserID, week, ViolationsInWeek(all, week), stats); err != nil {
			log.WithError(err).Error("admin notification failed")
			return nil, err
		}
	}

	if stats.ShouldAutoSuspend {
		violationID := violation.ID
		if _, err := s.suspender.Suspend(ctx, SuspendInput{
			UserID:      in.UserID,
			TriggeredBy: &violationID,
			SuspendedBy: models.SuspendedBySystem,
			Stats:       stats,
		}); err != nil {
			log.WithError(err).Error("auto suspension failed")
			return nil, err
		}
	}

	return stats, nil
}

// GetAbuseStats статистика пользователя за текущую неделю. Только чтение.
func (s *AbuseService) GetAbuseStats(ctx context.Context, userID uuid.UUID) (*models.WeeklyStats, error) {
	all, err := s.violations.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("чтение нарушений: %w", err)
	}

	return AggregateWeeklyStats(userID, all, weekkey.For(s.now()), s.policy), nil
}

// ListViolations журнал нарушений пользователя для модератора.
func (s *AbuseService) ListViolations(ctx context.Context, userID uuid.UUID) ([]models.Violation, error) {
	return s.violations.ListByUser(ctx, userID)
}
