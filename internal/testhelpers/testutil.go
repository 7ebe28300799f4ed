package testhelpers

import (
	"testing"

	"github.com/pageza/tastyshare/backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateTestUser inserts a user whose password is "password123"
func CreateTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{
		Email:        email,
		PasswordHash: string(hashed),
		Role:         models.RoleUser,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestRecipe inserts a Vegan recipe owned by ownerID
func CreateTestRecipe(t *testing.T, db *gorm.DB, ownerID uint, title, ingredients string) *models.Recipe {
	t.Helper()

	recipe := &models.Recipe{
		UserID:      ownerID,
		Title:       title,
		Ingredients: ingredients,
		Steps:       "mix and serve",
		Category:    models.CategoryVegan,
		CookingTime: "10m",
	}
	if err := db.Create(recipe).Error; err != nil {
		t.Fatalf("failed to create test recipe: %v", err)
	}
	return recipe
}
