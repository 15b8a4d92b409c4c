package handlers

import "github.com/gin-gonic/gin"

// CatalogHandler lists the fixed package and template catalogs.
type CatalogHandler struct {
	facade CatalogFacade
}

func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// Packages handles GET /api/catalog/packages.
func (h *CatalogHandler) Packages(c *gin.Context) {
	success(c, "packages", "Packages", h.facade.Packages())
}

// Templates handles GET /api/catalog/templates.
func (h *CatalogHandler) Templates(c *gin.Context) {
	success(c, "templates", "Templates", h.facade.Templates())
}
