package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/tastyshare/backend/internal/models"
)

// MockSocialService is a mock implementation of service.ISocialService
type MockSocialService struct {
	mock.Mock
}

func (m *MockSocialService) AddFavourite(ctx context.Context, userID, recipeID uint) (bool, error) {
	args := m.Called(ctx, userID, recipeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSocialService) ListFavourites(ctx context.Context, userID uint) ([]models.RecipeView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RecipeView), args.Error(1)
}

func (m *MockSocialService) AddReview(ctx context.Context, userID, recipeID uint, text string, rating int) (*models.Review, error) {
	args := m.Called(ctx, userID, recipeID, text, rating)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockSocialService) ListReviews(ctx context.Context, recipeID uint) ([]models.ReviewView, error) {
	args := m.Called(ctx, recipeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReviewView), args.Error(1)
}
