package router

import (
	"github.com/gin-gonic/gin"

	"github.com/recipe-notebook/backend/internal/api"
	"github.com/recipe-notebook/backend/internal/middleware"
)

// Handlers bundles everything SetupRouter wires. Image may be nil when no
// object storage is configured.
type Handlers struct {
	Health   *api.HealthHandler
	Identity *api.IdentityHandler
	Recipe   *api.RecipeHandler
	Genre    *api.GenreHandler
	Favorite *api.FavoriteHandler
	Image    *api.ImageHandler
}

// SetupRouter configures the application routes
func SetupRouter(h Handlers, validator middleware.TokenValidator, corsOrigins []string) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS(corsOrigins))

	h.Health.RegisterRoutes(router)

	// API v1 routes
	v1 := router.Group("/api/v1")

	// Identity issuance is the one route without a device token.
	h.Identity.RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(middleware.IdentityMiddleware(validator))
	{
		h.Recipe.RegisterRoutes(protected)
		h.Genre.RegisterRoutes(protected)
		h.Favorite.RegisterRoutes(protected)
		if h.Image != nil {
			h.Image.RegisterRoutes(protected)
		}
	}

	return router
}
