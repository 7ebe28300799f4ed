package service

import "errors"

var (
	ErrMissingFields   = errors.New("required fields are missing")
	ErrEmailTaken      = errors.New("email is already registered")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidToken    = errors.New("invalid or expired session")
	ErrRecipeNotFound  = errors.New("recipe not found")
	ErrNotOwner        = errors.New("recipe belongs to another user")
	ErrInvalidCategory = errors.New("category must be Vegetarian, Vegan or Non-Vegetarian")
	ErrReviewExists    = errors.New("you have already reviewed this recipe")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrInvalidImage    = errors.New("image must be a .jpg, .jpeg or .png file")
	ErrImageTooLarge   = errors.New("image exceeds the upload size limit")
	ErrPasswordTooLong = errors.New("password must be at most 72 bytes")
)
