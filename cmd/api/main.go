package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/resume-review-service/internal/api/http"
	"github.com/spec-kit/resume-review-service/internal/api/http/handlers"
	"github.com/spec-kit/resume-review-service/internal/auth"
	"github.com/spec-kit/resume-review-service/internal/config"
	"github.com/spec-kit/resume-review-service/internal/events"
	"github.com/spec-kit/resume-review-service/internal/observability"
	"github.com/spec-kit/resume-review-service/internal/persistence"
	"github.com/spec-kit/resume-review-service/internal/repository"
	"github.com/spec-kit/resume-review-service/internal/service"
	"github.com/spec-kit/resume-review-service/internal/worker"
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

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	blacklistRepo := repository.NewBlacklistRepository(pool)
	resumeRepo := repository.NewResumeRepository(pool)

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	auditService := service.NewAuditService(dispatcher, logger)
	auditService.RegisterHandlers()

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL(), cfg.Auth.RefreshTokenTTL())
	ledger := service.NewRevocationLedger(blacklistRepo, redis.Client, logger)
	authenticator := auth.NewAuthenticator(tokenManager, ledger, userRepo)
	authMiddleware := auth.NewAuthMiddleware(authenticator, logger, metrics)

	authService := service.NewAuthService(service.AuthDependencies{
		Users:      userRepo,
		Ledger:     ledger,
		Tokens:     tokenManager,
		Dispatcher: dispatcher,
		Logger:     logger,
		BcryptCost: cfg.Auth.BcryptCost,
	})
	adminService := service.NewAdminService(userRepo, resumeRepo, dispatcher, logger)
	resumeService := service.NewResumeService(resumeRepo, cfg.Storage, dispatcher, logger)

	worker.StartBlacklistJanitor(ctx, ledger, cfg.Auth.BlacklistPruneInterval, logger)

	app := fiber.New(fiber.Config{
		BodyLimit: int(cfg.Storage.MaxUploadBytes) + 1024*1024,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:          handlers.NewUsersHandler(authService),
		Admin:          handlers.NewAdminHandler(adminService),
		Resumes:        handlers.NewResumesHandler(resumeService),
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
