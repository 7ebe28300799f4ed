package testhelpers

import (
	"testing"

	"github.com/pageza/tastyshare/backend/internal/database"
	"github.com/pageza/tastyshare/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupTestDatabase(t *testing.T) {
	db := SetupTestDatabase(t)

	user := CreateTestUser(t, db, "cook@example.com")
	recipe := CreateTestRecipe(t, db, user.ID, "Tea", "water, leaves")

	assert.NotZero(t, user.ID)
	assert.NotZero(t, recipe.ID)
	assert.Equal(t, user.ID, recipe.UserID)
}

func TestPostgresSchema(t *testing.T) {
	db := SetupPostgresDatabase(t)

	user := CreateTestUser(t, db, "pg@example.com")

	err := db.Create(&models.User{Email: "pg@example.com", PasswordHash: "x", Role: models.RoleUser}).Error
	require.Error(t, err)
	assert.True(t, database.IsUniqueViolation(err))

	err = db.Create(&models.Review{UserID: user.ID, RecipeID: 1, Rating: 9}).Error
	assert.Error(t, err, "rating check constraint should reject 9")

	// a second run must not fail or lose data
	require.NoError(t, database.Migrate(db, DiscardLogger()))
	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
