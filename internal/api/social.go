package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/pageza/tastyshare/backend/internal/middleware"
	"github.com/pageza/tastyshare/backend/internal/service"
	"github.com/pageza/tastyshare/backend/internal/types"
)

// SocialHandler serves favourites and reviews on a recipe
type SocialHandler struct {
	socialService service.ISocialService
	authService   service.IAuthService
	logger        *slog.Logger
}

func NewSocialHandler(socialService service.ISocialService, authService service.IAuthService, logger *slog.Logger) *SocialHandler {
	return &SocialHandler{
		socialService: socialService,
		authService:   authService,
		logger:        logger,
	}
}

func (h *SocialHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes/:id")
	{
		recipes.GET("/reviews", h.ListReviews)
		recipes.POST("/favourite", middleware.AuthMiddleware(h.authService), h.AddFavourite)
		recipes.POST("/reviews", middleware.AuthMiddleware(h.authService), h.AddReview)
	}
}

// AddFavourite bookmarks the recipe. Repeating it answers 200 instead of 201.
func (h *SocialHandler) AddFavourite(c *gin.Context) {
	session, _ := middleware.GetSession(c)
	id, ok := recipeID(c)
	if !ok {
		return
	}

	added, err := h.socialService.AddFavourite(c.Request.Context(), session.UserID, id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if !added {
		c.JSON(http.StatusOK, gin.H{"message": "recipe is already in your favourites"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "recipe added to favourites"})
}

func (h *SocialHandler) AddReview(c *gin.Context) {
	session, _ := middleware.GetSession(c)
	id, ok := recipeID(c)
	if !ok {
		return
	}

	var req types.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && hasField(verrs, "Rating") {
			respondError(c, h.logger, service.ErrInvalidRating)
			return
		}
		badRequest(c, "review must be a JSON object with a numeric rating")
		return
	}

	review, err := h.socialService.AddReview(c.Request.Context(), session.UserID, id, req.ReviewText, req.Rating)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"review": review})
}

func (h *SocialHandler) ListReviews(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	reviews, err := h.socialService.ListReviews(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}
