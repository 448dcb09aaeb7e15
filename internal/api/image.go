package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recipe-notebook/backend/internal/imageset"
	"github.com/recipe-notebook/backend/internal/middleware"
	"github.com/recipe-notebook/backend/internal/service"
)

// ImageHandler serves standalone image uploads for clients that upload
// before saving the recipe.
type ImageHandler struct {
	images      *service.ImageService
	rateLimiter *middleware.RateLimiter
}

func NewImageHandler(images *service.ImageService, rateLimiter *middleware.RateLimiter) *ImageHandler {
	return &ImageHandler{images: images, rateLimiter: rateLimiter}
}

func (h *ImageHandler) RegisterRoutes(router *gin.RouterGroup) {
	images := router.Group("/images")
	if h.rateLimiter != nil {
		images.Use(h.rateLimiter.RateLimitMiddleware())
	}
	{
		images.POST("", h.UploadImages)
	}
}

// UploadImages stores up to the image cap of attached files, one at a
// time, best-effort: per-file failures are reported back instead of
// failing the batch.
func (h *ImageHandler) UploadImages(c *gin.Context) {
	if h.images == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image storage is not configured"})
		return
	}

	uploads, unreadable := attachedUploads(c)
	if len(uploads) == 0 && len(unreadable) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no images attached"})
		return
	}
	if len(uploads) > imageset.MaxImages {
		uploads = uploads[:imageset.MaxImages]
	}

	names := make([]string, len(uploads))
	contents := make([][]byte, len(uploads))
	for i, u := range uploads {
		names[i] = u.Name
		contents[i] = u.Data
	}

	result := h.images.UploadAll(c.Request.Context(), names, contents)

	c.JSON(http.StatusOK, gin.H{
		"urls":   result.URLs,
		"failed": append(unreadable, result.Failed...),
	})
}
