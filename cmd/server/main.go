package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/recipe-social-backend/internal/cache"
	"github.com/ignatzorin/recipe-social-backend/internal/config"
	"github.com/ignatzorin/recipe-social-backend/internal/db"
	httpHandlers "github.com/ignatzorin/recipe-social-backend/internal/http/handlers"
	httpRouter "github.com/ignatzorin/recipe-social-backend/internal/http/router"
	"github.com/ignatzorin/recipe-social-backend/internal/logger"
	"github.com/ignatzorin/recipe-social-backend/internal/repository"
	"github.com/ignatzorin/recipe-social-backend/internal/service"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	logger.Init(cfg.LogLevel, cfg.LogFormat)

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, os.DirFS(cfg.MigrationsPath)); err != nil {
		logger.Log.Fatalf("main: ошибка миграций: %v", err)
	}

	healthChecks := map[string]httpHandlers.Pinger{"database": dbConn}

	// Кэш настроек приватности: Redis, если задан, иначе в памяти процесса.
	var settingsCache cache.Cache
	redisClient := connectRedis(ctx, cfg.RedisURL)
	if redisClient != nil {
		defer redisClient.Close()
		settingsCache = cache.NewRedisCache(redisClient, "recipe-social:")
		healthChecks["redis"] = httpHandlers.PingFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	} else {
		settingsCache = cache.NewMemoryCache(ctx, time.Minute)
	}

	tokenManager := service.NewTokenManager(cfg.JWTSecret)

	// Репозитории.
	violationRepo := repository.NewViolationRepository(dbConn)
	suspensionRepo := repository.NewSuspensionRepository(dbConn)
	notificationRepo := repository.NewAdminNotificationRepository(dbConn)
	userRepo := repository.NewUserRepository(dbConn)
	privacyRepo := repository.NewPrivacyRepository(dbConn)
	friendshipRepo := repository.NewFriendshipRepository(dbConn)

	// Сервисы.
	policy := service.NewEscalationPolicy(service.Thresholds{
		Notify:  cfg.AbuseNotifyThreshold,
		Suspend: cfg.AbuseSuspendThreshold,
	})
	notificationService := service.NewAdminNotificationService(notificationRepo)
	suspensionService := service.NewSuspensionService(suspensionRepo, userRepo, notificationService, cfg.AbuseSuspensionDuration)
	abuseService := service.NewAbuseService(violationRepo, policy, notificationService, suspensionService)
	privacyService := service.NewPrivacyService(friendshipRepo, privacyRepo, userRepo, settingsCache, cfg.PrivacyCacheTTL)

	// HTTP хэндлеры.
	moderationHandler := httpHandlers.NewModerationHandler(abuseService, suspensionService, notificationService)
	profileHandler := httpHandlers.NewProfileHandler(privacyService)
	healthHandler := httpHandlers.NewHealthHandler(healthChecks)

	engine := httpRouter.SetupRouter(cfg, moderationHandler, profileHandler, healthHandler, tokenManager)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Log.Errorf("main: ошибка остановки http сервера: %v", err)
		}
	}()

	thresholds := policy.Thresholds()
	logger.WithFields(logrus.Fields{
		"port":              cfg.HTTPPort,
		"notify_threshold":  thresholds.Notify,
		"suspend_threshold": thresholds.Suspend,
		"redis":             redisClient != nil,
	}).Info("main: HTTP сервер запущен")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// connectRedis возвращает nil, если Redis не настроен или недоступен.
func connectRedis(ctx context.Context, redisURL string) *redis.Client {
	if redisURL == "" {
		return nil
	}
	client, err := db.NewRedis(ctx, redisURL)
	if err != nil {
		logger.WithFields(logrus.Fields{"error": err.Error()}).
			Warn("main: Redis недоступен, кэш настроек приватности в памяти")
		return nil
	}
	return client
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		logger.Log.Errorf("main: ошибка закрытия базы: %v", err)
	}
}
