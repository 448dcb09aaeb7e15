package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/recipe-notebook/backend/internal/listing"
	"github.com/recipe-notebook/backend/internal/middleware"
	"github.com/recipe-notebook/backend/internal/service"
)

// FavoriteHandler serves the favorites screen: the caller's favorite
// recipes in listing order, paginated.
type FavoriteHandler struct {
	recipes   *service.RecipeService
	favorites *service.FavoriteService
}

func NewFavoriteHandler(recipes *service.RecipeService, favorites *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{recipes: recipes, favorites: favorites}
}

func (h *FavoriteHandler) RegisterRoutes(router *gin.RouterGroup) {
	favorites := router.Group("/favorites")
	{
		favorites.GET("", h.ListFavorites)
		favorites.GET("/ids", h.ListFavoriteIDs)
	}
}

// ListFavorites returns the requested page of the caller's favorite
// recipes. When favorites shrink below the current page, the page number
// clamps down instead of returning an empty slice.
func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}

	recipes, err := h.recipes.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
		return
	}

	ids, err := h.favorites.ListIDs(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch favorites"})
		return
	}
	favoriteSet := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		favoriteSet[id] = true
	}

	// Keep the recipe listing order, as the favorites screen does.
	favoriteRecipes := recipes[:0:0]
	for _, r := range recipes {
		if favoriteSet[r.ID] {
			favoriteRecipes = append(favoriteRecipes, r)
		}
	}

	page := listing.Paginate(favoriteRecipes, intQuery(c, "page", 1), intQuery(c, "page_size", listing.DefaultPageSize))

	c.JSON(http.StatusOK, gin.H{
		"recipes":    page.Items,
		"favorites":  ids,
		"pagination": paginationResponse(page),
	})
}

// ListFavoriteIDs returns only the caller's favorite recipe IDs, for
// marking toggle buttons on other screens.
func (h *FavoriteHandler) ListFavoriteIDs(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}

	ids, err := h.favorites.ListIDs(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch favorites"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"favorites": ids})
}
