package api

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/pageza/tastyshare/backend/internal/middleware"
	"github.com/pageza/tastyshare/backend/internal/models"
	"github.com/pageza/tastyshare/backend/internal/service"
	"github.com/pageza/tastyshare/backend/internal/types"
)

// multipart headers and text fields on top of the image itself
const formOverheadBytes = 1 << 20

type RecipeHandler struct {
	recipeService  service.IRecipeService
	socialService  service.ISocialService
	authService    service.IAuthService
	images         service.ImageStore
	maxUploadBytes int64
	logger         *slog.Logger
}

func NewRecipeHandler(recipeService service.IRecipeService, socialService service.ISocialService, authService service.IAuthService, images service.ImageStore, maxUploadBytes int64, logger *slog.Logger) *RecipeHandler {
	return &RecipeHandler{
		recipeService:  recipeService,
		socialService:  socialService,
		authService:    authService,
		images:         images,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)

		authed := recipes.Group("")
		authed.Use(middleware.AuthMiddleware(h.authService))
		authed.POST("", h.CreateRecipe)
		authed.PUT("/:id", h.UpdateRecipe)
		authed.DELETE("/:id", h.DeleteRecipe)
	}
}

// ListRecipes returns every recipe, or those matching ?q= when given
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.recipeService.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": withImageURLs(h.images, recipes)})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	recipe, err := h.recipeService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	reviews, err := h.socialService.ListReviews(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if h.images != nil {
		recipe.ImageURL = h.images.URL(recipe.ImagePath)
	}
	c.JSON(http.StatusOK, gin.H{"recipe": recipe, "reviews": reviews})
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	session, _ := middleware.GetSession(c)

	input, file, ok := h.bindRecipeForm(c)
	if !ok {
		return
	}
	if file != nil {
		defer file.Close()
	}

	recipe, err := h.recipeService.Create(c.Request.Context(), session.UserID, input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"recipe": h.present(recipe)})
}

// UpdateRecipe replaces a recipe owned by the caller. Omitting the image
// keeps the current one.
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	session, _ := middleware.GetSession(c)
	id, ok := recipeID(c)
	if !ok {
		return
	}

	input, file, ok := h.bindRecipeForm(c)
	if !ok {
		return
	}
	if file != nil {
		defer file.Close()
	}

	recipe, err := h.recipeService.Update(c.Request.Context(), session.UserID, id, input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": h.present(recipe)})
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	session, _ := middleware.GetSession(c)
	id, ok := recipeID(c)
	if !ok {
		return
	}

	if err := h.recipeService.Delete(c.Request.Context(), session.UserID, id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "recipe deleted successfully"})
}

// bindRecipeForm parses the multipart form and the optional "image" part.
// The returned file, when not nil, must be closed once the input is used.
func (h *RecipeHandler) bindRecipeForm(c *gin.Context) (types.RecipeInput, multipart.File, bool) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+formOverheadBytes)
	}

	var form types.RecipeForm
	if err := c.ShouldBind(&form); err != nil {
		var tooLarge *http.MaxBytesError
		var verrs validator.ValidationErrors
		switch {
		case errors.As(err, &tooLarge):
			respondError(c, h.logger, service.ErrImageTooLarge)
		case errors.As(err, &verrs) && hasTag(verrs, "category"):
			respondError(c, h.logger, service.ErrInvalidCategory)
		default:
			badRequest(c, "title, ingredients, steps and category are required")
		}
		return types.RecipeInput{}, nil, false
	}

	category, err := models.ParseCategory(form.Category)
	if err != nil {
		respondError(c, h.logger, service.ErrInvalidCategory)
		return types.RecipeInput{}, nil, false
	}

	input := types.RecipeInput{
		Title:       form.Title,
		Ingredients: form.Ingredients,
		Steps:       form.Steps,
		Category:    category,
		CookingTime: form.CookingTime,
	}

	header, err := c.FormFile("image")
	if err != nil || header.Filename == "" {
		return input, nil, true
	}
	if h.maxUploadBytes > 0 && header.Size > h.maxUploadBytes {
		respondError(c, h.logger, service.ErrImageTooLarge)
		return types.RecipeInput{}, nil, false
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, h.logger, err)
		return types.RecipeInput{}, nil, false
	}
	input.Image = &types.ImageUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Reader:      file,
	}
	return input, file, true
}

func (h *RecipeHandler) present(recipe *models.Recipe) models.RecipeView {
	view := models.RecipeView{Recipe: *recipe}
	if h.images != nil {
		view.ImageURL = h.images.URL(recipe.ImagePath)
	}
	return view
}

func hasTag(errs validator.ValidationErrors, tag string) bool {
	for _, fe := range errs {
		if fe.Tag() == tag {
			return true
		}
	}
	return false
}

func hasField(errs validator.ValidationErrors, field string) bool {
	for _, fe := range errs {
		if fe.StructField() == field {
			return true
		}
	}
	return false
}

// recipeID parses the :id path parameter, writing a 400 when it is malformed
func recipeID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		badRequest(c, "invalid recipe id")
		return 0, false
	}
	return uint(id), true
}
