package types

import (
	"io"

	"github.com/pageza/tastyshare/backend/internal/models"
)

// ImageUpload is an uploaded file waiting to be stored
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// RecipeInput carries the fields of a create or update. A nil Image on update
// keeps the existing image.
type RecipeInput struct {
	Title       string
	Ingredients string
	Steps       string
	Category    models.Category
	CookingTime string
	Image       *ImageUpload
}
