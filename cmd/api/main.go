package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pageza/tastyshare/backend/config"
	"github.com/pageza/tastyshare/backend/internal/api"
	"github.com/pageza/tastyshare/backend/internal/database"
	"github.com/pageza/tastyshare/backend/internal/logging"
	"github.com/pageza/tastyshare/backend/internal/middleware"
	"github.com/pageza/tastyshare/backend/internal/router"
	"github.com/pageza/tastyshare/backend/internal/server"
	"github.com/pageza/tastyshare/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("Server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Server stopped")
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx := context.Background()

	db, err := database.Open(cfg, logging.Component(logger, "database"))
	if err != nil {
		return err
	}
	defer database.Close(db)

	// An unusable schema is fatal: serving against it would fail on every request.
	if err := database.Migrate(db, logging.Component(logger, "migrate")); err != nil {
		return err
	}

	redisClient, err := database.NewRedisClient(cfg, logger)
	if err != nil {
		return err
	}

	var sessions service.SessionStore
	if redisClient != nil {
		defer redisClient.Close()
		sessions = service.NewRedisSessionStore(redisClient)
	} else {
		logger.Warn("REDIS_URL not set; sessions and login limits are kept in memory")
		sessions = service.NewMemorySessionStore()
	}

	images, err := service.NewImageStore(ctx, cfg, logging.Component(logger, "images"))
	if err != nil {
		return err
	}

	svcLogger := logging.Component(logger, "service")
	deps := api.Deps{
		DB:             db,
		Auth:           service.NewAuthService(db, sessions, images, cfg.JWTSecret, cfg.TokenTTL, svcLogger),
		Recipes:        service.NewRecipeService(db, images, svcLogger),
		Social:         service.NewSocialService(db, svcLogger),
		Images:         images,
		LoginLimiter:   middleware.NewLoginRateLimiter(redisClient, cfg.LoginAttemptLimit, cfg.LoginAttemptWindow),
		MaxUploadBytes: int64(cfg.ImageMaxUploadMB) << 20,
		Logger:         logging.Component(logger, "http"),
	}

	handler, err := router.SetupRouter(cfg, deps)
	if err != nil {
		return err
	}

	srv := server.New(cfg, handler, logger)
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-quit:
		logger.Info("Received signal", slog.String("signal", sig.String()))
	}

	logger.Info("Shutting down server...")
	return srv.Shutdown(ctx)
}
