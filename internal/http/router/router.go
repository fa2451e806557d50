package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/recipe-social-backend/internal/config"
	"github.com/ignatzorin/recipe-social-backend/internal/http/handlers"
	"github.com/ignatzorin/recipe-social-backend/internal/http/middleware"
	"github.com/ignatzorin/recipe-social-backend/internal/models"
	"github.com/ignatzorin/recipe-social-backend/internal/service"
)

func SetupRouter(
	cfg *config.Config,
	moderationHandler *handlers.ModerationHandler,
	profileHandler *handlers.ProfileHandler,
	healthHandler *handlers.HealthHandler,
	tokenManager *service.TokenManager,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)

	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(tokenManager))

	// Модерация: детекторы ходят сюда с сервисным токеном роли moderator.
	moderation := api.Group("/moderation")
	moderation.Use(middleware.RequireRole(models.RoleModerator, models.RoleAdmin))
	{
		moderation.POST("/violations",
			middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod),
			moderationHandler.RecordViolation)
		moderation.GET("/notifications", moderationHandler.ListNotifications)

		users := moderation.Group("/users/:id")
		users.Use(middleware.UUIDValidator("id"))
		users.GET("/stats", moderationHandler.GetStats)
		users.GET("/violations", moderationHandler.ListViolations)
		users.GET("/suspension", moderationHandler.GetSuspension)
		users.GET("/suspension/history", moderationHandler.SuspensionHistory)
		users.DELETE("/suspension", moderationHandler.LiftSuspension)
	}

	users := api.Group("/users/:id")
	users.Use(middleware.UUIDValidator("id"))
	{
		users.GET("/profile", profileHandler.GetProfile)
		users.GET("/profile/fields/:field", profileHandler.CanAccessField)
		users.GET("/preferences", profileHandler.GetPreferences)
	}

	api.GET("/privacy/settings", profileHandler.GetPrivacySettings)
	api.PUT("/privacy/settings", profileHandler.UpdatePrivacySettings)

	return r
}
