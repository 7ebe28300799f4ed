package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/tastyshare/backend/internal/models"
	"github.com/pageza/tastyshare/backend/internal/types"
)

// MockRecipeService is a mock implementation of service.IRecipeService
type MockRecipeService struct {
	mock.Mock
}

func (m *MockRecipeService) Create(ctx context.Context, ownerID uint, input types.RecipeInput) (*models.Recipe, error) {
	args := m.Called(ctx, ownerID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

func (m *MockRecipeService) Get(ctx context.Context, id uint) (*models.RecipeView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RecipeView), args.Error(1)
}

func (m *MockRecipeService) Update(ctx context.Context, ownerID, recipeID uint, input types.RecipeInput) (*models.Recipe, error) {
	args := m.Called(ctx, ownerID, recipeID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

func (m *MockRecipeService) Delete(ctx context.Context, ownerID, recipeID uint) error {
	args := m.Called(ctx, ownerID, recipeID)
	return args.Error(0)
}

func (m *MockRecipeService) ListAll(ctx context.Context) ([]models.RecipeView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RecipeView), args.Error(1)
}

func (m *MockRecipeService) ListByOwner(ctx context.Context, userID uint) ([]models.RecipeView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RecipeView), args.Error(1)
}

func (m *MockRecipeService) Search(ctx context.Context, query string) ([]models.RecipeView, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RecipeView), args.Error(1)
}
