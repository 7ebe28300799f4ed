package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/tastyshare/backend/internal/service"
)

var statusByError = []struct {
	err    error
	status int
}{
	{service.ErrEmailTaken, http.StatusConflict},
	{service.ErrReviewExists, http.StatusConflict},
	{service.ErrUserNotFound, http.StatusNotFound},
	{service.ErrRecipeNotFound, http.StatusNotFound},
	{service.ErrNotOwner, http.StatusForbidden},
	{service.ErrMissingFields, http.StatusBadRequest},
	{service.ErrInvalidCategory, http.StatusBadRequest},
	{service.ErrInvalidRating, http.StatusBadRequest},
	{service.ErrInvalidImage, http.StatusBadRequest},
	{service.ErrPasswordTooLong, http.StatusBadRequest},
	{service.ErrImageTooLarge, http.StatusRequestEntityTooLarge},
	{service.ErrInvalidToken, http.StatusUnauthorized},
}

// respondError writes {"error": msg}. Known service errors keep their
// message; anything else is logged and reported as a 500.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	for _, known := range statusByError {
		if errors.Is(err, known.err) {
			c.JSON(known.status, gin.H{"error": known.err.Error()})
			return
		}
	}

	logger.ErrorContext(c.Request.Context(), "Request failed",
		slog.String("path", c.FullPath()),
		slog.String("error", err.Error()),
	)
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
