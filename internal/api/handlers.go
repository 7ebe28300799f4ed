package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pageza/tastyshare/backend/internal/database"
	"github.com/pageza/tastyshare/backend/internal/middleware"
	"github.com/pageza/tastyshare/backend/internal/models"
	"github.com/pageza/tastyshare/backend/internal/service"
	"github.com/pageza/tastyshare/backend/internal/types"
)

// Deps carries everything the HTTP handlers need
type Deps struct {
	DB             *gorm.DB
	Auth           service.IAuthService
	Recipes        service.IRecipeService
	Social         service.ISocialService
	Images         service.ImageStore
	LoginLimiter   *middleware.RateLimiter
	MaxUploadBytes int64
	Logger         *slog.Logger
}

// HealthCheck reports whether the API and its database are reachable
func HealthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := database.HealthCheck(ctx, db); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status": "unhealthy",
					"error":  err.Error(),
				})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "TastyShare API is running",
		})
	}
}

// Menu lists the navigation entries for the caller. Anonymous visitors get
// the login and register entries, signed-in users get the authoring ones.
func Menu(c *gin.Context) {
	items := []string{"Home", "Login", "Register"}
	if _, ok := middleware.GetSession(c); ok {
		items = []string{"Home", "Add Recipe", "Profile", "Logout"}
	}
	c.JSON(http.StatusOK, types.MenuResponse{Items: items, Categories: models.Categories()})
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, deps Deps) {
	router.GET("/health", HealthCheck(deps.DB))
	router.GET("/api/health", HealthCheck(deps.DB))

	v1 := router.Group("/api/v1")
	v1.GET("/menu", middleware.OptionalAuth(deps.Auth), Menu)

	NewAuthHandler(deps.Auth, deps.LoginLimiter, deps.Logger).RegisterRoutes(v1)
	NewProfileHandler(deps.Auth, deps.Recipes, deps.Social, deps.Images, deps.Logger).RegisterRoutes(v1)
	NewRecipeHandler(deps.Recipes, deps.Social, deps.Auth, deps.Images, deps.MaxUploadBytes, deps.Logger).RegisterRoutes(v1)
	NewSocialHandler(deps.Social, deps.Auth, deps.Logger).RegisterRoutes(v1)
}

// withImageURLs fills in the public image URL of each view
func withImageURLs(images service.ImageStore, views []models.RecipeView) []models.RecipeView {
	if images == nil {
		return views
	}
	for i := range views {
		views[i].ImageURL = images.URL(views[i].ImagePath)
	}
	return views
}
