package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pageza/tastyshare/backend/internal/models"
	"github.com/pageza/tastyshare/backend/internal/types"
	"gorm.io/gorm"
)

// RecipeService handles recipe operations
type RecipeService struct {
	db     *gorm.DB
	images ImageStore
	logger *slog.Logger
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB, images ImageStore, logger *slog.Logger) *RecipeService {
	return &RecipeService{
		db:     db,
		images: images,
		logger: logger,
	}
}

func validateRecipeInput(input *types.RecipeInput) error {
	if strings.TrimSpace(input.Title) == "" ||
		strings.TrimSpace(input.Ingredients) == "" ||
		strings.TrimSpace(input.Steps) == "" {
		return ErrMissingFields
	}
	if !input.Category.Valid() {
		return ErrInvalidCategory
	}
	return nil
}

// Create stores a new recipe for ownerID. Text fields are stored verbatim.
// When an image is attached it is written first and removed again if the
// insert fails.
func (s *RecipeService) Create(ctx context.Context, ownerID uint, input types.RecipeInput) (*models.Recipe, error) {
	if err := validateRecipeInput(&input); err != nil {
		return nil, err
	}

	var owner int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", ownerID).Count(&owner).Error; err != nil {
		return nil, fmt.Errorf("failed to look up owner: %w", err)
	}
	if owner == 0 {
		return nil, ErrUserNotFound
	}

	recipe := models.Recipe{
		UserID:      ownerID,
		Title:       input.Title,
		Ingredients: input.Ingredients,
		Steps:       input.Steps,
		Category:    input.Category,
		CookingTime: input.CookingTime,
	}

	if input.Image != nil {
		stored, err := s.images.Save(ctx, input.Image)
		if err != nil {
			return nil, err
		}
		recipe.ImagePath = stored
		recipe.ImageName = input.Image.Filename
	}

	if err := s.db.WithContext(ctx).Create(&recipe).Error; err != nil {
		s.discardImage(ctx, recipe.ImagePath)
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}

	s.logger.InfoContext(ctx, "Recipe created",
		slog.Uint64("recipe_id", uint64(recipe.ID)), slog.Uint64("user_id", uint64(ownerID)))
	return &recipe, nil
}

// Get returns a recipe joined with its owner's email
func (s *RecipeService) Get(ctx context.Context, id uint) (*models.RecipeView, error) {
	var views []models.RecipeView
	if err := s.views(ctx).Where("recipes.id = ?", id).Limit(1).Scan(&views).Error; err != nil {
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	if len(views) == 0 {
		return nil, ErrRecipeNotFound
	}
	return &views[0], nil
}

// loadOwned fetches a recipe and checks it belongs to ownerID
func loadOwned(tx *gorm.DB, ownerID, recipeID uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := tx.First(&recipe, recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	if recipe.UserID != ownerID {
		return nil, ErrNotOwner
	}
	return &recipe, nil
}

// Update replaces the recipe's fields. Without a new image the current one
// is kept; a replaced image is removed once the update is committed.
func (s *RecipeService) Update(ctx context.Context, ownerID, recipeID uint, input types.RecipeInput) (*models.Recipe, error) {
	if err := validateRecipeInput(&input); err != nil {
		return nil, err
	}

	recipe, err := loadOwned(s.db.WithContext(ctx), ownerID, recipeID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"title":        input.Title,
		"ingredients":  input.Ingredients,
		"steps":        input.Steps,
		"category":     input.Category,
		"cooking_time": input.CookingTime,
	}

	oldImage := recipe.ImagePath
	newImage := ""
	if input.Image != nil {
		newImage, err = s.images.Save(ctx, input.Image)
		if err != nil {
			return nil, err
		}
		updates["image_path"] = newImage
		updates["image_name"] = input.Image.Filename
	}

	err = s.db.WithContext(ctx).Model(&models.Recipe{}).
		Where("id = ? AND user_id = ?", recipeID, ownerID).
		Updates(updates).Error
	if err != nil {
		s.discardImage(ctx, newImage)
		return nil, fmt.Errorf("failed to update recipe: %w", err)
	}

	if newImage != "" && oldImage != "" {
		s.discardImage(ctx, oldImage)
	}

	s.logger.InfoContext(ctx, "Recipe updated", slog.Uint64("recipe_id", uint64(recipeID)))
	if err := s.db.WithContext(ctx).First(recipe, recipeID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload recipe: %w", err)
	}
	return recipe, nil
}

// Delete removes the recipe with its favourites and reviews in one
// transaction. The image is removed after commit.
func (s *RecipeService) Delete(ctx context.Context, ownerID, recipeID uint) error {
	var imagePath string

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe, err := loadOwned(tx, ownerID, recipeID)
		if err != nil {
			return err
		}
		imagePath = recipe.ImagePath

		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.Favourite{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, recipeID).Error
	})
	if err != nil {
		if errors.Is(err, ErrRecipeNotFound) || errors.Is(err, ErrNotOwner) {
			return err
		}
		return fmt.Errorf("failed to delete recipe: %w", err)
	}

	s.discardImage(ctx, imagePath)
	s.logger.InfoContext(ctx, "Recipe deleted", slog.Uint64("recipe_id", uint64(recipeID)))
	return nil
}

func (s *RecipeService) views(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Table("recipes").
		Select("recipes.*, users.email AS owner_email").
		Joins("JOIN users ON users.id = recipes.user_id").
		Order("recipes.id")
}

// ListAll returns every recipe with its owner's email, oldest first
func (s *RecipeService) ListAll(ctx context.Context) ([]models.RecipeView, error) {
	views := []models.RecipeView{}
	if err := s.views(ctx).Scan(&views).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return views, nil
}

// ListByOwner returns the recipes posted by userID
func (s *RecipeService) ListByOwner(ctx context.Context, userID uint) ([]models.RecipeView, error) {
	views := []models.RecipeView{}
	if err := s.views(ctx).Where("recipes.user_id = ?", userID).Scan(&views).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return views, nil
}

// Search matches query as a case-insensitive substring of the title or the
// ingredients. Wildcard characters in query match literally. An empty query
// returns every recipe.
func (s *RecipeService) Search(ctx context.Context, query string) ([]models.RecipeView, error) {
	if query == "" {
		return s.ListAll(ctx)
	}

	pattern := "%" + escapeLike(query) + "%"
	views := []models.RecipeView{}
	err := s.views(ctx).
		Where(`LOWER(recipes.title) LIKE LOWER(?) ESCAPE '\' OR LOWER(recipes.ingredients) LIKE LOWER(?) ESCAPE '\'`, pattern, pattern).
		Scan(&views).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search recipes: %w", err)
	}
	return views, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func (s *RecipeService) discardImage(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := s.images.Delete(ctx, path); err != nil {
		s.logger.WarnContext(ctx, "Failed to remove image", slog.String("path", path), slog.String("error", err.Error()))
	}
}
