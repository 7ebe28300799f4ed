package models

// Recipe is a user-posted recipe. Ingredients and Steps are free text.
type Recipe struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	UserID      uint     `gorm:"index;not null" json:"user_id"`
	Title       string   `gorm:"not null" json:"title"`
	Ingredients string   `gorm:"type:text" json:"ingredients"`
	Steps       string   `gorm:"type:text" json:"steps"`
	Category    Category `gorm:"size:32" json:"category"`
	CookingTime string   `json:"cooking_time"`
	ImagePath   string   `json:"image_path"`
	// ImageName is the uploader's original filename, kept for display only
	ImageName string `json:"image_name"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// RecipeView is a recipe joined with its owner's email
type RecipeView struct {
	Recipe
	OwnerEmail string `json:"owner_email"`
	ImageURL   string `gorm:"-" json:"image_url,omitempty"`
}
