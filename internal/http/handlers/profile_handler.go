package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/recipe-social-backend/internal/dto"
	"github.com/ignatzorin/recipe-social-backend/internal/http/handlers/common"
	"github.com/ignatzorin/recipe-social-backend/internal/models"
	"github.com/ignatzorin/recipe-social-backend/internal/privacy"
	"github.com/ignatzorin/recipe-social-backend/internal/service"
	"github.com/ignatzorin/recipe-social-backend/internal/validation"
)

type PrivacyGate interface {
	GetFilteredProfile(ctx context.Context, viewerID, targetID uuid.UUID) (privacy.Profile, error)
	CanAccessField(ctx context.Context, viewerID, targetID uuid.UUID, field string) (bool, error)
	GetPreferences(ctx context.Context, viewerID, targetID uuid.UUID) (json.RawMessage, error)
	GetSettings(ctx context.Context, userID uuid.UUID) (models.PrivacySettings, error)
	UpdateSettings(ctx context.Context, userID uuid.UUID, in service.UpdateSettingsInput) (models.PrivacySettings, error)
}

// ProfileHandler чтение профилей с учётом приватности и настройки приватности.
type ProfileHandler struct {
	privacy PrivacyGate
}

func NewProfileHandler(gate PrivacyGate) *ProfileHandler {
	return &ProfileHandler{privacy: gate}
}

// GetProfile GET /users/:id/profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	viewerID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	targetID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	profile, err := h.privacy.GetFilteredProfile(c.Request.Context(), viewerID, targetID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// CanAccessField GET /users/:id/profile/fields/:field
func (h *ProfileHandler) CanAccessField(c *gin.Context) {
	viewerID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	targetID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	field := c.Param("field")
	if err := validation.ValidateTag("field", field, validation.MaxFieldNameLength); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	ok, err := h.privacy.CanAccessField(c.Request.Context(), viewerID, targetID, field)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.FieldAccessResponse{UserID: targetID, Field: field, Accessible: ok})
}

// GetPreferences GET /users/:id/preferences
func (h *ProfileHandler) GetPreferences(c *gin.Context) {
	viewerID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	targetID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	prefs, err := h.privacy.GetPreferences(c.Request.Context(), viewerID, targetID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.PreferencesResponse{UserID: targetID, Preferences: prefs})
}

// GetPrivacySettings GET /privacy/settings
func (h *ProfileHandler) GetPrivacySettings(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	settings, err := h.privacy.GetSettings(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

// UpdatePrivacySettings PUT /privacy/settings
func (h *ProfileHandler) UpdatePrivacySettings(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req dto.UpdatePrivacySettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	for name, value := range map[string]*string{
		"profile_visibility":       req.ProfileVisibility,
		"email_visibility":         req.EmailVisibility,
		"date_of_birth_visibility": req.DateOfBirthVisibility,
	} {
		if value == nil {
			continue
		}
		if err := validation.ValidateVisibility(name, *value); err != nil {
			common.RespondBadRequest(c, err.Error())
			return
		}
	}

	settings, err := h.privacy.UpdateSettings(c.Request.Context(), userID, service.UpdateSettingsInput{
		ProfileVisibility:     req.ProfileVisibility,
		EmailVisibility:       req.EmailVisibility,
		DateOfBirthVisibility: req.DateOfBirthVisibility,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, settings)
}
