package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/promptvault-backend/internal/catalog"
	"github.com/yungbote/promptvault-backend/internal/http/response"
)

type CatalogHandler struct {
	catalog *catalog.Catalog
}

func NewCatalogHandler(c *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: c}
}

// GET /api/catalog
func (ch *CatalogHandler) GetCatalog(c *gin.Context) {
	response.RespondOK(c, ch.catalog)
}
