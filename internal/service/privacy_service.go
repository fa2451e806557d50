package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/recipe-social-backend/internal/cache"
	"github.com/ignatzorin/recipe-social-backend/internal/logger"
	"github.com/ignatzorin/recipe-social-backend/internal/models"
	"github.com/ignatzorin/recipe-social-backend/internal/privacy"
	"github.com/ignatzorin/recipe-social-backend/internal/repository"
)

type FriendshipRepository interface {
	GetStatus(ctx context.Context, requesterID, addresseeID uuid.UUID) (string, error)
}

type PrivacySettingsRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.PrivacySettings, error)
	Upsert(ctx context.Context, settings *models.PrivacySettings) error
}

type ProfileRepository interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	GetPreferences(ctx context.Context, userID uuid.UUID) (json.RawMessage, error)
}

// PrivacyService отвечает на вопрос "что зритель может увидеть в чужом профиле".
type PrivacyService struct {
	friendships FriendshipRepository
	settings    PrivacySettingsRepository
	profiles    ProfileRepository
	cache       cache.Cache
	cacheTTL    time.Duration
}

func NewPrivacyService(
	friendships FriendshipRepository,
	settings PrivacySettingsRepository,
	profiles ProfileRepository,
	settingsCache cache.Cache,
	cacheTTL time.Duration,
) *PrivacyService {
	return &PrivacyService{
		friendships: friendships,
		settings:    settings,
		profiles:    profiles,
		cache:       settingsCache,
		cacheTTL:    cacheTTL,
	}
}

// ResolveContext вычисляет отношение зрителя к владельцу. Для себя дружба не проверяется.
func (s *PrivacyService) ResolveContext(ctx context.Context, viewerID, targetID uuid.UUID) models.PrivacyContext {
	pctx := models.PrivacyContext{
		ViewerID:     viewerID,
		TargetUserID: targetID,
		IsSelf:       viewerID == targetID,
	}
	if !pctx.IsSelf {
		pctx.IsFriend = s.CheckFriendship(ctx, viewerID, targetID)
	}
	return pctx
}

// CheckFriendship true, если хотя бы одна из двух записей в статусе accepted.
// Любая ошибка чтения означает "не друзья".
func (s *PrivacyService) CheckFriendship(ctx context.Context, a, b uuid.UUID) bool {
	for _, pair := range [2][2]uuid.UUID{{a, b}, {b, a}} {
		status, err := s.friendships.GetStatus(ctx, pair[0], pair[1])
		if err != nil {
			logger.WithFields(logrus.Fields{
				"requester_id": pair[0],
				"addressee_id": pair[1],
				"error":        err.Error(),
			}).Warn("friendship lookup failed, treating as not friends")
			return false
		}
		if status == models.FriendshipStatusAccepted {
			return true
		}
	}
	return false
}

// GetSettings настройки пользователя: кэш, затем БД, затем значения по умолчанию.
// Сбой кэша не мешает ответу.
func (s *PrivacyService) GetSettings(ctx context.Context, userID uuid.UUID) (models.PrivacySettings, error) {
	key := cache.PrivacySettingsKey(userID)

	if s.cache != nil {
		var cached models.PrivacySettings
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			logger.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("privacy cache read failed")
		} else if found {
			return cached, nil
		}
	}

	stored, err := s.settings.Get(ctx, userID)
	if err != nil {
		return models.PrivacySettings{}, fmt.Errorf("настройки приватности: %w", err)
	}

	settings := models.DefaultPrivacySettings(userID)
	if stored != nil {
		settings = *stored
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, settings, s.cacheTTL); err != nil {
			logger.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("privacy cache write failed")
		}
	}

	return settings, nil
}

// UpdateSettingsInput частичное обновление: nil оставляет значение как есть.
type UpdateSettingsInput struct {
	ProfileVisibility     *string
	EmailVisibility       *string
	DateOfBirthVisibility *string
}

// UpdateSettings проверяет значения, сохраняет и сбрасывает кэш.
func (s *PrivacyService) UpdateSettings(ctx context.Context, userID uuid.UUID, in UpdateSettingsInput) (models.PrivacySettings, error) {
	for _, v := range []*string{in.ProfileVisibility, in.EmailVisibility, in.DateOfBirthVisibility} {
		if v == nil {
			continue
		}
		if _, ok := models.ValidVisibilities[*v]; !ok {
			return models.PrivacySettings{}, fmt.Errorf("%w: %q", ErrInvalidVisibility, *v)
		}
	}

	settings, err := s.GetSettings(ctx, userID)
	if err != nil {
		return models.PrivacySettings{}, err
	}
	settings.UserID = userID
	if in.ProfileVisibility != nil {
		settings.ProfileVisibility = *in.ProfileVisibility
	}
	if in.EmailVisibility != nil {
		settings.EmailVisibility = *in.EmailVisibility
	}
	if in.DateOfBirthVisibility != nil {
		settings.DateOfBirthVisibility = *in.DateOfBirthVisibility
	}

	if err := s.settings.Upsert(ctx, &settings); err != nil {
		return models.PrivacySettings{}, fmt.Errorf("сохранение настроек: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, cache.PrivacySettingsKey(userID)); err != nil {
			logger.WithFields(logrus.Fields{"user_id": userID, "error": err.Error()}).Warn("privacy cache invalidation failed")
		}
	}

	return settings, nil
}

// GetFilteredProfile профиль target глазами viewer.
func (s *PrivacyService) GetFilteredProfile(ctx context.Context, viewerID, targetID uuid.UUID) (privacy.Profile, error) {
	profile, err := s.profiles.GetProfile(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("чтение профиля: %w", err)
	}
	if profile == nil {
		return nil, repository.ErrUserNotFound
	}

	settings, err := s.GetSettings(ctx, targetID)
	if err != nil {
		return nil, err
	}

	pctx := s.ResolveContext(ctx, viewerID, targetID)

	return privacy.FilterProfile(profile.Fields(), settings, pctx), nil
}

// CanAccessField доступно ли viewer одно поле профиля target.
func (s *PrivacyService) CanAccessField(ctx context.Context, viewerID, targetID uuid.UUID, field string) (bool, error) {
	if viewerID == targetID {
		return true, nil
	}

	settings, err := s.GetSettings(ctx, targetID)
	if err != nil {
		return false, err
	}

	return privacy.CanAccessField(field, settings, s.ResolveContext(ctx, viewerID, targetID)), nil
}

// GetPreferences кулинарные предпочтения target глазами viewer.
func (s *PrivacyService) GetPreferences(ctx context.Context, viewerID, targetID uuid.UUID) (json.RawMessage, error) {
	preferences, err := s.profiles.GetPreferences(ctx, targetID)
	if err != nil {
		return nil, err
	}

	return privacy.FilterPreferences(preferences, s.ResolveContext(ctx, viewerID, targetID)), nil
}
