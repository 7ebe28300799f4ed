package models

import "time"

// Favourite bookmarks a recipe for a user. At most one row per (user, recipe).
type Favourite struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	RecipeID  uint      `gorm:"primaryKey;autoIncrement:false;index" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (Favourite) TableName() string {
	return "favourites"
}

// Review is a rating with an optional comment. At most one row per (user, recipe).
type Review struct {
	UserID     uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	RecipeID   uint      `gorm:"primaryKey;autoIncrement:false;index" json:"recipe_id"`
	ReviewText string    `gorm:"type:text" json:"review_text"`
	Rating     int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Review) TableName() string {
	return "reviews"
}

// ReviewView is a review joined with the reviewer's email
type ReviewView struct {
	ReviewerEmail string    `json:"reviewer_email"`
	ReviewText    string    `json:"review_text"`
	Rating        int       `json:"rating"`
	CreatedAt     time.Time `json:"created_at"`
}

const (
	MinRating = 1
	MaxRating = 5
)
