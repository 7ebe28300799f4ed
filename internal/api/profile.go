package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/tastyshare/backend/internal/middleware"
	"github.com/pageza/tastyshare/backend/internal/service"
	"github.com/pageza/tastyshare/backend/internal/types"
)

// ProfileHandler serves the caller's own account
type ProfileHandler struct {
	authService   service.IAuthService
	recipeService service.IRecipeService
	socialService service.ISocialService
	images        service.ImageStore
	logger        *slog.Logger
}

func NewProfileHandler(authService service.IAuthService, recipeService service.IRecipeService, socialService service.ISocialService, images service.ImageStore, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		authService:   authService,
		recipeService: recipeService,
		socialService: socialService,
		images:        images,
		logger:        logger,
	}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profile := router.Group("/profile")
	profile.Use(middleware.AuthMiddleware(h.authService))
	{
		profile.GET("", h.GetProfile)
		profile.PUT("", h.UpdateProfile)
		profile.DELETE("", h.DeleteAccount)
		profile.GET("/favourites", h.ListFavourites)
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	session, _ := middleware.GetSession(c)

	user, err := h.authService.GetUser(c.Request.Context(), session.UserID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	recipes, err := h.recipeService.ListByOwner(c.Request.Context(), session.UserID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    user,
		"recipes": withImageURLs(h.images, recipes),
	})
}

// UpdateProfile replaces email and password. Other sessions are ended and a
// new token is returned for this one.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	session, _ := middleware.GetSession(c)

	var req types.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "a valid email and a password are required")
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), session.UserID, req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	token, err := h.authService.IssueToken(c.Request.Context(), user)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, types.AuthResponse{Token: token, User: user})
}

func (h *ProfileHandler) DeleteAccount(c *gin.Context) {
	session, _ := middleware.GetSession(c)

	if err := h.authService.DeleteAccount(c.Request.Context(), session.UserID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "account deleted successfully"})
}

func (h *ProfileHandler) ListFavourites(c *gin.Context) {
	session, _ := middleware.GetSession(c)

	favourites, err := h.socialService.ListFavourites(c.Request.Context(), session.UserID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": withImageURLs(h.images, favourites)})
}
