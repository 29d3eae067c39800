package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/cleancity/pickup-service/internal/accounts"
	httptransport "github.com/cleancity/pickup-service/internal/api/http"
	"github.com/cleancity/pickup-service/internal/api/http/handlers"
	"github.com/cleancity/pickup-service/internal/auth"
	"github.com/cleancity/pickup-service/internal/config"
	"github.com/cleancity/pickup-service/internal/events"
	"github.com/cleancity/pickup-service/internal/feedback"
	"github.com/cleancity/pickup-service/internal/kvstore"
	"github.com/cleancity/pickup-service/internal/notify"
	"github.com/cleancity/pickup-service/internal/observability"
	"github.com/cleancity/pickup-service/internal/persistence"
	"github.com/cleancity/pickup-service/internal/pickups"
	"github.com/cleancity/pickup-service/internal/pickups/mockapi"
	"github.com/cleancity/pickup-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations && pg.PoolHandle() != nil {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	kv := kvstore.NewRedisStore(redis.Client)
	dispatcher := events.NewInMemoryDispatcher()

	accountStore := accounts.NewStore(kv, cfg.Auth, dispatcher, logger)
	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authMiddleware := auth.NewAuthMiddleware(tokenManager, accountStore)

	pickupAPI := mockapi.New(cfg.PickupAPI.Latency())
	pickupService := pickups.NewService(pickupAPI, dispatcher, logger)

	var feedbackRepo feedback.Repository
	if pool := pg.PoolHandle(); pool != nil {
		feedbackRepo = feedback.NewPostgresRepository(pool)
	} else {
		feedbackRepo = feedback.NewKVRepository(kv)
	}
	feedbackService := feedback.NewService(feedbackRepo, dispatcher, logger)

	center := notify.NewCenter(logger, nil)
	defer center.Close()
	worker.StartNotificationWorker(worker.NewNotificationWorker(center, logger, cfg.Notification), dispatcher)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(accountStore, tokenManager),
		Pickups:        handlers.NewPickupsHandler(pickupService),
		Feedback:       handlers.NewFeedbackHandler(feedbackService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
