package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pageza/tastyshare/backend/internal/database"
	"github.com/pageza/tastyshare/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SocialService handles favourites and reviews
type SocialService struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewSocialService(db *gorm.DB, logger *slog.Logger) *SocialService {
	return &SocialService{db: db, logger: logger}
}

func (s *SocialService) recipeExists(ctx context.Context, recipeID uint) error {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", recipeID).Count(&n).Error; err != nil {
		return fmt.Errorf("failed to look up recipe: %w", err)
	}
	if n == 0 {
		return ErrRecipeNotFound
	}
	return nil
}

func (s *SocialService) userExists(ctx context.Context, userID uint) error {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Count(&n).Error; err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// AddFavourite bookmarks a recipe. Favouriting twice is a no-op; added
// reports whether a new row was written.
func (s *SocialService) AddFavourite(ctx context.Context, userID, recipeID uint) (added bool, err error) {
	if err := s.userExists(ctx, userID); err != nil {
		return false, err
	}
	if err := s.recipeExists(ctx, recipeID); err != nil {
		return false, err
	}

	fav := models.Favourite{UserID: userID, RecipeID: recipeID, CreatedAt: time.Now().UTC()}
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&fav)
	if result.Error != nil {
		if database.IsUniqueViolation(result.Error) {
			return false, nil
		}
		return false, fmt.Errorf("failed to add favourite: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// ListFavourites returns the user's favourite recipes in the order they were added
func (s *SocialService) ListFavourites(ctx context.Context, userID uint) ([]models.RecipeView, error) {
	views := []models.RecipeView{}
	err := s.db.WithContext(ctx).
		Table("favourites").
		Select("recipes.*, users.email AS owner_email").
		Joins("JOIN recipes ON recipes.id = favourites.recipe_id").
		Joins("JOIN users ON users.id = recipes.user_id").
		Where("favourites.user_id = ?", userID).
		Order("favourites.created_at, recipes.id").
		Scan(&views).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list favourites: %w", err)
	}
	return views, nil
}

// AddReview records a 1-5 rating with optional text. A second review of the
// same recipe by the same user fails with ErrReviewExists.
func (s *SocialService) AddReview(ctx context.Context, userID, recipeID uint, text string, rating int) (*models.Review, error) {
	if rating < models.MinRating || rating > models.MaxRating {
		return nil, ErrInvalidRating
	}
	if err := s.userExists(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.recipeExists(ctx, recipeID); err != nil {
		return nil, err
	}

	review := models.Review{
		UserID:     userID,
		RecipeID:   recipeID,
		ReviewText: text,
		Rating:     rating,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&review).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrReviewExists
		}
		return nil, fmt.Errorf("failed to add review: %w", err)
	}

	s.logger.InfoContext(ctx, "Review added",
		slog.Uint64("recipe_id", uint64(recipeID)), slog.Uint64("user_id", uint64(userID)), slog.Int("rating", rating))
	return &review, nil
}

// ListReviews returns the reviews of a recipe with each reviewer's email
func (s *SocialService) ListReviews(ctx context.Context, recipeID uint) ([]models.ReviewView, error) {
	views := []models.ReviewView{}
	err := s.db.WithContext(ctx).
		Table("reviews").
		Select("users.email AS reviewer_email, reviews.review_text, reviews.rating, reviews.created_at").
		Joins("JOIN users ON users.id = reviews.user_id").
		Where("reviews.recipe_id = ?", recipeID).
		Order("reviews.created_at, reviews.user_id").
		Scan(&views).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return views, nil
}
