package router

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pageza/tastyshare/backend/config"
	"github.com/pageza/tastyshare/backend/internal/api"
	"github.com/pageza/tastyshare/backend/internal/middleware"
)

// SetupRouter configures the application middleware and routes
func SetupRouter(cfg *config.Config, deps api.Deps) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := middleware.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(registry)

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(
		middleware.Recovery(deps.Logger),
		middleware.RequestLogger(deps.Logger),
		metrics.Handler(),
		middleware.CORS(cfg.AllowedOrigins),
	)
	router.NoRoute(middleware.NotFound)
	router.NoMethod(middleware.MethodNotAllowed)

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	if cfg.ImageStorage == config.StorageLocal {
		router.Static("/images", cfg.ImageDir)
	}

	api.RegisterRoutes(router, deps)

	return router, nil
}
