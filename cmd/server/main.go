package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/collabhub-backend/internal/config"
	"github.com/ignatzorin/collabhub-backend/internal/db"
	httpHandlers "github.com/ignatzorin/collabhub-backend/internal/http/handlers"
	httpRouter "github.com/ignatzorin/collabhub-backend/internal/http/router"
	"github.com/ignatzorin/collabhub-backend/internal/infrastructure/payments"
	"github.com/ignatzorin/collabhub-backend/internal/logger"
	"github.com/ignatzorin/collabhub-backend/internal/repository"
	"github.com/ignatzorin/collabhub-backend/internal/service"
	"github.com/ignatzorin/collabhub-backend/internal/storage"
	"github.com/ignatzorin/collabhub-backend/internal/ws"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}
	logger.Init(cfg.LogLevel, cfg.Env)

	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		logrus.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if _, err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		logrus.Fatalf("main: ошибка миграций: %v", err)
	}

	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.RefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	photoStorage, err := storage.NewPhotoStorage(cfg.MediaStoragePath, cfg.MaxUploadSizeMB)
	if err != nil {
		logrus.Fatalf("main: не удалось подготовить файловое хранилище: %v", err)
	}

	// Репозитории.
	userRepo := repository.NewUserRepository(dbConn)
	creatorRepo := repository.NewCreatorRepository(dbConn)
	brandRepo := repository.NewBrandRepository(dbConn)
	campaignRepo := repository.NewCampaignRepository(dbConn)
	offerRepo := repository.NewOfferRepository(dbConn)
	contractRepo := repository.NewContractRepository(dbConn)
	paymentRepo := repository.NewPaymentRepository(dbConn)
	reportRepo := repository.NewReportRepository(dbConn)
	statsRepo := repository.NewStatsRepository(dbConn)
	mediaRepo := repository.NewMediaRepository(dbConn)
	notificationRepo := repository.NewNotificationRepository(dbConn)
	seedRepo := repository.NewSeedRepository(dbConn)

	// Вебсокеты и кэш.
	notificationService := service.NewNotificationService(notificationRepo)
	hub := ws.NewHub(ctx)
	hub.SetNotificationSaver(notificationService)
	go hub.Run()

	cache := service.NewCacheService()
	defer cache.Close()

	// Сервисы.
	profileService := service.NewProfileService(userRepo, creatorRepo, brandRepo)
	authService := service.NewAuthService(userRepo, profileService, tokenManager)
	creatorService := service.NewCreatorService(creatorRepo)
	campaignService := service.NewCampaignService(campaignRepo, profileService)
	offerService := service.NewOfferService(offerRepo, campaignRepo, creatorRepo, profileService, hub, cache)
	contractService := service.NewContractService(contractRepo, offerRepo, profileService, hub, cache, cfg.PaymentDueDays)

	paymentOpts := service.PaymentServiceOptions{
		Notifier: hub,
		Cache:    cache,
		DueSoon:  cfg.PaymentDueSoon(),
	}
	if gateway := payments.NewStripeGateway(cfg.StripeSecretKey, cfg.StripeCurrency); gateway != nil {
		paymentOpts.Gateway = gateway
	} else {
		logrus.Warn("main: STRIPE_SECRET_KEY не задан, оплата картой отключена")
	}
	paymentService := service.NewPaymentService(paymentRepo, contractRepo, profileService, paymentOpts)

	reportService := service.NewReportService(reportRepo, contractRepo)
	statsService := service.NewStatsService(statsRepo, profileService, cache, cfg.StatsCacheTTL)
	mediaService := service.NewMediaService(mediaRepo, photoStorage, profileService)
	seedService := service.NewSeedService(seedRepo)

	// HTTP хэндлеры.
	handlers := httpRouter.Handlers{
		Auth:         httpHandlers.NewAuthHandler(authService, profileService, cfg.IsProduction()),
		Profile:      httpHandlers.NewProfileHandler(creatorService, profileService),
		Campaign:     httpHandlers.NewCampaignHandler(campaignService),
		Offer:        httpHandlers.NewOfferHandler(offerService),
		Contract:     httpHandlers.NewContractHandler(contractService),
		Payment:      httpHandlers.NewPaymentHandler(paymentService),
		Report:       httpHandlers.NewReportHandler(reportService),
		Stats:        httpHandlers.NewStatsHandler(statsService),
		Notification: httpHandlers.NewNotificationHandler(notificationService),
		Media:        httpHandlers.NewMediaHandler(mediaService, photoStorage.MaxUploadBytes()),
		WS:           httpHandlers.NewWSHandler(hub, cfg.AllowedOrigins),
		Health:       httpHandlers.NewHealthHandler(dbConn, hub),
		Seed:         httpHandlers.NewSeedHandler(seedService),
	}

	engine := httpRouter.SetupRouter(cfg, handlers, tokenManager)

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
			logrus.WithError(err).Error("main: ошибка остановки http сервера")
		}
	}()

	logrus.WithField("port", cfg.HTTPPort).Info("main: HTTP сервер запущен")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logrus.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// safeClose закрывает соединение с базой.
func safeClose(conn *sqlx.DB) {
	if err := conn.Close(); err != nil {
		logrus.WithError(err).Error("main: ошибка закрытия базы")
	}
}
