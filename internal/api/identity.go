package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/recipe-notebook/backend/internal/service"
)

// IdentityHandler issues per-browser identities. A client calls this once,
// persists the token locally, and reuses it on every request; there is no
// account behind it.
type IdentityHandler struct {
	identity *service.IdentityService
}

func NewIdentityHandler(identity *service.IdentityService) *IdentityHandler {
	return &IdentityHandler{identity: identity}
}

func (h *IdentityHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/identity", h.CreateIdentity)
}

// CreateIdentity mints a new device identity and its token.
func (h *IdentityHandler) CreateIdentity(c *gin.Context) {
	identity, err := h.identity.Issue()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue identity"})
		return
	}
	c.JSON(http.StatusCreated, identity)
}
