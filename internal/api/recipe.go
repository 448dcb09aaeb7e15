package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipe-notebook/backend/internal/imageset"
	"github.com/recipe-notebook/backend/internal/listing"
	"github.com/recipe-notebook/backend/internal/middleware"
	"github.com/recipe-notebook/backend/internal/model"
	"github.com/recipe-notebook/backend/internal/service"
)

// RecipeHandler serves the recipe listing, detail, and editing endpoints.
type RecipeHandler struct {
	recipes   *service.RecipeService
	favorites *service.FavoriteService
	genres    *service.GenreService
	uploader  imageset.Uploader
}

func NewRecipeHandler(recipes *service.RecipeService, favorites *service.FavoriteService, genres *service.GenreService, uploader imageset.Uploader) *RecipeHandler {
	return &RecipeHandler{
		recipes:   recipes,
		favorites: favorites,
		genres:    genres,
		uploader:  uploader,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("", h.CreateRecipe)
		recipes.PUT("/:id", h.UpdateRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)
		recipes.DELETE("/:id/images/:index", h.DeleteRecipeImage)
		recipes.POST("/:id/favorite", h.ToggleFavorite)
	}
}

// ListRecipes returns the filtered, paginated recipe list together with the
// genre dropdown options and the caller's favorite IDs.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.recipes.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
		return
	}

	filter := listing.Filter{
		Query: c.Query("q"),
		Genre: c.DefaultQuery("genre", listing.AllGenres),
	}
	page := listing.Paginate(listing.Apply(recipes, filter), intQuery(c, "page", 1), intQuery(c, "page_size", listing.DefaultPageSize))

	// The dropdown and favorite markers are secondary reads and degrade to
	// empty/default values rather than failing the page.
	genreNames := append([]string{listing.AllGenres}, h.genres.Names(c.Request.Context())...)
	favoriteIDs := h.favoriteIDs(c)

	c.JSON(http.StatusOK, gin.H{
		"recipes":    page.Items,
		"genres":     genreNames,
		"favorites":  favoriteIDs,
		"pagination": paginationResponse(page),
	})
}

// GetRecipe returns one recipe for the detail screen, refreshing its
// last-viewed timestamp.
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	recipe, err := h.recipes.View(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	isFavorite := false
	if userID, ok := middleware.UserID(c); ok {
		if fav, err := h.favorites.IsFavorite(c.Request.Context(), userID, id); err == nil {
			isFavorite = fav
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"recipe":      recipe,
		"is_favorite": isFavorite,
	})
}

// CreateRecipe saves a new recipe from a multipart form. Attached images
// are uploaded best-effort before the insert: a failed upload drops that
// image only and never blocks recipe creation.
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	recipe := recipeFromForm(c)

	set := imageset.New(nil, imageset.MaxImages)
	uploads, unreadable := attachedUploads(c)
	for _, u := range uploads {
		set.Add(u)
	}
	result := h.commitImages(c, set)
	recipe.ImageURLs = model.JSONBStringArray(result.URLs)

	created, err := h.recipes.Create(c.Request.Context(), &recipe)
	if err != nil {
		if errors.Is(err, service.ErrEmptyTitle) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create recipe"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"recipe":        created,
		"failed_images": append(unreadable, result.Failed...),
	})
}

// UpdateRecipe saves an edited recipe. The form carries the existing image
// URLs the user kept plus any newly attached files; the final image list is
// kept URLs followed by successful uploads, in order.
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	recipe := recipeFromForm(c)

	set := imageset.New(c.PostFormArray("image_urls"), imageset.MaxImages)
	uploads, unreadable := attachedUploads(c)
	for _, u := range uploads {
		set.Add(u)
	}
	result := h.commitImages(c, set)
	recipe.ImageURLs = model.JSONBStringArray(result.URLs)

	updated, err := h.recipes.Update(c.Request.Context(), id, &recipe)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyTitle):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recipe"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recipe":        updated,
		"failed_images": append(unreadable, result.Failed...),
	})
}

// DeleteRecipe removes a recipe.
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	if err := h.recipes.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete recipe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Recipe deleted successfully",
		"id":      id,
	})
}

// DeleteRecipeImage removes one image reference by its position in the
// recipe's image list. Out-of-range indexes are a no-op, matching the
// unified-index delete of the edit form.
func (h *RecipeHandler) DeleteRecipeImage(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image index"})
		return
	}

	recipe, err := h.recipes.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	set := imageset.New(recipe.ImageURLs, imageset.MaxImages)
	set.DeleteAt(index)

	updated, err := h.recipes.SetImages(c.Request.Context(), id, set.Existing())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recipe images"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": updated})
}

// ToggleFavorite flips the caller's favorite mark on a recipe and returns
// the new state.
func (h *RecipeHandler) ToggleFavorite(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}

	if _, err := h.recipes.Get(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	favorited, err := h.favorites.Toggle(c.Request.Context(), userID, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle favorite"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        id,
		"favorited": favorited,
	})
}

func (h *RecipeHandler) commitImages(c *gin.Context, set *imageset.Set) imageset.Result {
	if h.uploader == nil {
		// No storage configured: existing URLs survive, new files are
		// dropped the same way a failed upload would be.
		return imageset.Result{URLs: set.Existing()}
	}
	return set.Commit(c.Request.Context(), h.uploader)
}

func (h *RecipeHandler) favoriteIDs(c *gin.Context) []uuid.UUID {
	userID, ok := middleware.UserID(c)
	if !ok {
		return []uuid.UUID{}
	}
	ids, err := h.favorites.ListIDs(c.Request.Context(), userID)
	if err != nil {
		log.Printf("[RecipeHandler] failed to fetch favorites for %s: %v", userID, err)
		return []uuid.UUID{}
	}
	return ids
}

func recipeID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return uuid.Nil, false
	}
	return id, true
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
