package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipe-notebook/backend/internal/service"
)

// GenreHandler serves the genre management endpoints of the settings
// screen and the dropdown refresh.
type GenreHandler struct {
	genres *service.GenreService
}

func NewGenreHandler(genres *service.GenreService) *GenreHandler {
	return &GenreHandler{genres: genres}
}

func (h *GenreHandler) RegisterRoutes(router *gin.RouterGroup) {
	genres := router.Group("/genres")
	{
		genres.GET("", h.ListGenres)
		genres.POST("", h.AddGenre)
		genres.PUT("/:id", h.RenameGenre)
		genres.DELETE("/:id", h.DeleteGenre)
		genres.POST("/refresh", h.RefreshGenres)
	}
}

// ListGenres returns all registered genres ordered by name, with the
// remaining registration headroom.
func (h *GenreHandler) ListGenres(c *gin.Context) {
	genres, err := h.genres.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch genres"})
		return
	}

	remaining := service.GenreLimit - len(genres)
	if remaining < 0 {
		remaining = 0
	}

	c.JSON(http.StatusOK, gin.H{
		"genres":    genres,
		"limit":     service.GenreLimit,
		"remaining": remaining,
	})
}

// AddGenre registers a new genre. Validation and limit failures are
// reported before any insert happens.
func (h *GenreHandler) AddGenre(c *gin.Context) {
	var req GenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	genre, err := h.genres.Add(c.Request.Context(), req.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyGenreName), errors.Is(err, service.ErrDuplicateGenre):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrGenreLimit):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add genre"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"genre": genre})
}

// RenameGenre updates a genre's name. Recipes referencing the old name
// keep it.
func (h *GenreHandler) RenameGenre(c *gin.Context) {
	id, ok := genreID(c)
	if !ok {
		return
	}
	var req GenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	genre, err := h.genres.Rename(c.Request.Context(), id, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyGenreName):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Genre not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update genre"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"genre": genre})
}

// DeleteGenre removes a genre and strips its name from every recipe that
// referenced it.
func (h *GenreHandler) DeleteGenre(c *gin.Context) {
	id, ok := genreID(c)
	if !ok {
		return
	}

	if err := h.genres.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Genre not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete genre"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Genre deleted successfully",
		"id":      id,
	})
}

// RefreshGenres reloads the cached genre names. The UI calls this when the
// tab regains focus.
func (h *GenreHandler) RefreshGenres(c *gin.Context) {
	names := h.genres.Refresh(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"genres": names})
}

func genreID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid genre id"})
		return uuid.Nil, false
	}
	return id, true
}
