package service_test

import (
	"context"
	"testing"

	"github.com/pageza/tastyshare/backend/internal/models"
	"github.com/pageza/tastyshare/backend/internal/service"
	"github.com/pageza/tastyshare/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddFavouriteIsIdempotent(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewSocialService(db, testhelpers.DiscardLogger())
	ctx := context.Background()

	user := testhelpers.CreateTestUser(t, db, "fan@x.com")
	owner := testhelpers.CreateTestUser(t, db, "chef@x.com")
	recipe := testhelpers.CreateTestRecipe(t, db, owner.ID, "Tea", "water, leaves")

	added, err := svc.AddFavourite(ctx, user.ID, recipe.ID)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = svc.AddFavourite(ctx, user.ID, recipe.ID)
	require.NoError(t, err)
	assert.False(t, added)

	var count int64
	require.NoError(t, db.Model(&models.Favourite{}).
		Where("user_id = ? AND recipe_id = ?", user.ID, recipe.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	_, err = svc.AddFavourite(ctx, user.ID, 9999)
	assert.ErrorIs(t, err, service.ErrRecipeNotFound)
}

func TestListFavourites(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewSocialService(db, testhelpers.DiscardLogger())
	ctx := context.Background()

	user := testhelpers.CreateTestUser(t, db, "fan@x.com")
	owner := testhelpers.CreateTestUser(t, db, "chef@x.com")
	tea := testhelpers.CreateTestRecipe(t, db, owner.ID, "Tea", "water, leaves")
	testhelpers.CreateTestRecipe(t, db, owner.ID, "Toast", "bread")

	_, err := svc.AddFavourite(ctx, user.ID, tea.ID)
	require.NoError(t, err)

	favs, err := svc.ListFavourites(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, "Tea", favs[0].Title)
	assert.Equal(t, "chef@x.com", favs[0].OwnerEmail)

	none, err := svc.ListFavourites(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestAddReview(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewSocialService(db, testhelpers.DiscardLogger())
	ctx := context.Background()

	critic := testhelpers.CreateTestUser(t, db, "critic@x.com")
	owner := testhelpers.CreateTestUser(t, db, "chef@x.com")
	recipe := testhelpers.CreateTestRecipe(t, db, owner.ID, "Tea", "water, leaves")

	review, err := svc.AddReview(ctx, critic.ID, recipe.ID, "Lovely", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, review.Rating)

	_, err = svc.AddReview(ctx, critic.ID, recipe.ID, "Changed my mind", 1)
	assert.ErrorIs(t, err, service.ErrReviewExists)

	_, err = svc.AddReview(ctx, owner.ID, recipe.ID, "", 0)
	assert.ErrorIs(t, err, service.ErrInvalidRating)
	_, err = svc.AddReview(ctx, owner.ID, recipe.ID, "", 6)
	assert.ErrorIs(t, err, service.ErrInvalidRating)

	_, err = svc.AddReview(ctx, owner.ID, 9999, "", 3)
	assert.ErrorIs(t, err, service.ErrRecipeNotFound)

	_, err = svc.AddReview(ctx, owner.ID, recipe.ID, "", 3)
	require.NoError(t, err)

	reviews, err := svc.ListReviews(ctx, recipe.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, "critic@x.com", reviews[0].ReviewerEmail)
	assert.Equal(t, "Lovely", reviews[0].ReviewText)
	assert.Equal(t, 5, reviews[0].Rating)
	assert.Equal(t, "chef@x.com", reviews[1].ReviewerEmail)
	assert.Empty(t, reviews[1].ReviewText)
}

func TestListReviewsEmpty(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewSocialService(db, testhelpers.DiscardLogger())

	reviews, err := svc.ListReviews(context.Background(), 42)
	require.NoError(t, err)
	assert.NotNil(t, reviews)
	assert.Empty(t, reviews)
}

func TestSocialWritesRequireExistingUser(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewSocialService(db, testhelpers.DiscardLogger())
	ctx := context.Background()

	owner := testhelpers.CreateTestUser(t, db, "chef@x.com")
	recipe := testhelpers.CreateTestRecipe(t, db, owner.ID, "Tea", "water, leaves")

	_, err := svc.AddFavourite(ctx, 9999, recipe.ID)
	assert.ErrorIs(t, err, service.ErrUserNotFound)

	_, err = svc.AddReview(ctx, 9999, recipe.ID, "ghost review", 4)
	assert.ErrorIs(t, err, service.ErrUserNotFound)

	var favs, reviews int64
	require.NoError(t, db.Model(&models.Favourite{}).Count(&favs).Error)
	require.NoError(t, db.Model(&models.Review{}).Count(&reviews).Error)
	assert.Zero(t, favs)
	assert.Zero(t, reviews)
}
