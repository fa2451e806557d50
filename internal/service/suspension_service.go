package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/recipe-social-backend/internal/logger"
	"github.com/ignatzorin/recipe-social-backend/internal/models"
	"github.com/ignatzorin/recipe-social-backend/internal/repository"
)

type SuspensionRepository interface {
	Activate(ctx context.Context, suspension *models.Suspension) (*models.Suspension, error)
	GetActive(ctx context.Context, userID uuid.UUID) (*models.Suspension, error)
	Deactivate(ctx context.Context, id uuid.UUID, liftedBy *uuid.UUID, liftedAt time.Time) error
	AppendHistory(ctx context.Context, entry *models.SuspensionHistoryEntry) error
	ListHistory(ctx context.Context, userID uuid.UUID) ([]models.SuspensionHistoryEntry, error)
}

type ProfileSuspensionUpdater interface {
	UpdateSuspensionStatus(ctx context.Context, userID uuid.UUID, status models.SuspensionStatus) error
}

type SuspensionEscalator interface {
	EscalateSuspension(ctx context.Context, suspension *models.Suspension, stats *models.WeeklyStats) error
}

// SuspendInput параметры блокировки.
type SuspendInput struct {
	UserID      uuid.UUID
	Reason      string
	TriggeredBy *uuid.UUID
	SuspendedBy string
	Stats       *models.WeeklyStats
}

// SuspensionService блокирует и разблокирует пользователей.
type SuspensionService struct {
	suspensions SuspensionRepository
	profiles    ProfileSuspensionUpdater
	escalator   SuspensionEscalator
	duration    time.Duration
	now         func() time.Time
}

// NewSuspensionService duration=0 означает бессрочную блокировку.
func NewSuspensionService(
	suspensions SuspensionRepository,
	profiles ProfileSuspensionUpdater,
	escalator SuspensionEscalator,
	duration time.Duration,
) *SuspensionService {
	return &SuspensionService{
		suspensions: suspensions,
		profiles:    profiles,
		escalator:   escalator,
		duration:    duration,
		now:         time.Now,
	}
}

func (s *SuspensionService) SetClock(now func() time.Time) {
	s.now = now
}

// Suspend выполняет четыре шага строго по порядку: поля профиля, активная
// блокировка, история, уведомление модераторов. Ошибка шага прерывает остальные.
// Повторный вызов для уже заблокированного пользователя заменяет блокировку новой.
func (s *SuspensionService) Suspend(ctx context.Context, in SuspendInput) (*models.Suspension, error) {
	now := s.now().UTC()

	suspendedBy := in.SuspendedBy
	if suspendedBy == "" {
		suspendedBy = models.SuspendedBySystem
	}

	reason := in.Reason
	if reason == "" {
		reason = autoSuspensionReason(in.Stats)
	}

	var until *time.Time
	if s.duration > 0 {
		u := now.Add(s.duration)
		until = &u
	}

	if err := s.profiles.UpdateSuspensionStatus(ctx, in.UserID, models.SuspensionStatus{
		IsSuspended:      true,
		SuspendedAt:      &now,
		SuspendedUntil:   until,
		SuspensionReason: &reason,
		SuspendedBy:      &suspendedBy,
	}); err != nil {
		return nil, fmt.Errorf("обновление профиля: %w", err)
	}

	suspension := &models.Suspension{
		UserID:                 in.UserID,
		Reason:                 reason,
		SuspendedAt:            now,
		SuspendedUntil:         until,
		TriggeredByViolationID: in.TriggeredBy,
		SuspendedBy:            suspendedBy,
	}

	superseded, err := s.suspensions.Activate(ctx, suspension)
	if err != nil {
		return nil, fmt.Errorf("активация блокировки: %w", err)
	}

	if superseded != nil {
		if err := s.suspensions.AppendHistory(ctx, &models.SuspensionHistoryEntry{
			UserID:         in.UserID,
			SuspensionID:   superseded.ID,
			Action:         models.SuspensionActionSuperseded,
			Reason:         superseded.Reason,
			ViolationID:    superseded.TriggeredByViolationID,
			SuspendedUntil: superseded.SuspendedUntil,
			Actor:          suspendedBy,
		}); err != nil {
			return nil, fmt.Errorf("история блокировки: %w", err)
		}
	}

	if err := s.suspensions.AppendHistory(ctx, &models.SuspensionHistoryEntry{
		UserID:         in.UserID,
		SuspensionID:   suspension.ID,
		Action:         models.SuspensionActionSuspended,
		Reason:         reason,
		ViolationID:    in.TriggeredBy,
		SuspendedUntil: until,
		Actor:          suspendedBy,
	}); err != nil {
		return nil, fmt.Errorf("история блокировки: %w", err)
	}

	if err := s.escalator.EscalateSuspension(ctx, suspension, in.Stats); err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"user_id":       in.UserID,
		"suspension_id": suspension.ID,
		"superseded":    superseded != nil,
		"suspended_by":  suspendedBy,
	}).Warn("user suspended")

	return suspension, nil
}

// Lift снимает активную блокировку и очищает поля профиля.
func (s *SuspensionService) Lift(ctx context.Context, userID, liftedBy uuid.UUID, reason string) (*models.Suspension, error) {
	active, err := s.suspensions.GetActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	if active == nil {
		return nil, repository.ErrNoActiveSuspension
	}

	now := s.now().UTC()
	if err := s.suspensions.Deactivate(ctx, active.ID, &liftedBy, now); err != nil {
		return nil, err
	}

	if err := s.profiles.UpdateSuspensionStatus(ctx, userID, models.SuspensionStatus{}); err != nil {
		return nil, fmt.Errorf("обновление профиля: %w", err)
	}

	if reason == "" {
		reason = active.Reason
	}
	if err := s.suspensions.AppendHistory(ctx, &models.SuspensionHistoryEntry{
		UserID:       userID,
		SuspensionID: active.ID,
		Action:       models.SuspensionActionLifted,
		Reason:       reason,
		Actor:        liftedBy.String(),
	}); err != nil {
		return nil, fmt.Errorf("история блокировки: %w", err)
	}

	active.IsActive = false
	active.LiftedAt = &now
	active.LiftedBy = &liftedBy

	logger.WithFields(logrus.Fields{
		"user_id":       userID,
		"suspension_id": active.ID,
		"lifted_by":     liftedBy,
	}).Info("suspension lifted")

	return active, nil
}

// GetActive активная блокировка или nil.
func (s *SuspensionService) GetActive(ctx context.Context, userID uuid.UUID) (*models.Suspension, error) {
	return s.suspensions.GetActive(ctx, userID)
}

// History журнал переходов блокировок пользователя.
func (s *SuspensionService) History(ctx context.Context, userID uuid.UUID) ([]models.SuspensionHistoryEntry, error) {
	return s.suspensions.ListHistory(ctx, userID)
}

func autoSuspensionReason(stats *models.WeeklyStats) string {
	if stats == nil {
		return "Автоматическая блокировка за нарушения"
	}
	return fmt.Sprintf("Автоматическая блокировка: %d нарушений за неделю %s", stats.ThisWeekViolations, stats.WeekKey)
}
