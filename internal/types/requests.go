package types

import (
	"github.com/pageza/tastyshare/backend/internal/models"
)

// RegisterRequest represents the request body for registration
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest changes the caller's email and password together
type UpdateProfileRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RecipeForm is the multipart form for creating or updating a recipe. The
// image part is read separately.
type RecipeForm struct {
	Title       string `form:"title" binding:"required"`
	Ingredients string `form:"ingredients" binding:"required"`
	Steps       string `form:"steps" binding:"required"`
	Category    string `form:"category" binding:"required,category"`
	CookingTime string `form:"cooking_time"`
}

// ReviewRequest represents the request body for posting a review
type ReviewRequest struct {
	ReviewText string `json:"review_text"`
	Rating     int    `json:"rating" binding:"required,min=1,max=5"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// MenuResponse lists the navigation entries available to the caller
type MenuResponse struct {
	Items      []string          `json:"items"`
	Categories []models.Category `json:"categories"`
}
