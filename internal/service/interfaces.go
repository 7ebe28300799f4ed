package service

import (
	"context"

	"github.com/pageza/tastyshare/backend/internal/models"
	"github.com/pageza/tastyshare/backend/internal/types"
)

// IAuthService defines the interface for account and session operations
type IAuthService interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	GetUser(ctx context.Context, userID uint) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uint, newEmail, newPassword string) (*models.User, error)
	DeleteAccount(ctx context.Context, userID uint) error
	IssueToken(ctx context.Context, user *models.User) (string, error)
	ValidateToken(ctx context.Context, token string) (*types.TokenClaims, error)
	Logout(ctx context.Context, sessionID string) error
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	Create(ctx context.Context, ownerID uint, input types.RecipeInput) (*models.Recipe, error)
	Get(ctx context.Context, id uint) (*models.RecipeView, error)
	Update(ctx context.Context, ownerID, recipeID uint, input types.RecipeInput) (*models.Recipe, error)
	Delete(ctx context.Context, ownerID, recipeID uint) error
	ListAll(ctx context.Context) ([]models.RecipeView, error)
	ListByOwner(ctx context.Context, userID uint) ([]models.RecipeView, error)
	Search(ctx context.Context, query string) ([]models.RecipeView, error)
}

// ISocialService defines the interface for favourites and reviews
type ISocialService interface {
	AddFavourite(ctx context.Context, userID, recipeID uint) (bool, error)
	ListFavourites(ctx context.Context, userID uint) ([]models.RecipeView, error)
	AddReview(ctx context.Context, userID, recipeID uint, text string, rating int) (*models.Review, error)
	ListReviews(ctx context.Context, recipeID uint) ([]models.ReviewView, error)
}

var (
	_ IAuthService   = (*AuthService)(nil)
	_ IRecipeService = (*RecipeService)(nil)
	_ ISocialService = (*SocialService)(nil)
	_ ImageStore     = (*LocalImageStore)(nil)
	_ ImageStore     = (*S3ImageStore)(nil)
	_ SessionStore   = (*RedisSessionStore)(nil)
	_ SessionStore   = (*MemorySessionStore)(nil)
)
