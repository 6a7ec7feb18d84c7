package handlers

import (
	"net/http"

	"macro-parity/internal/api/models"
	"macro-parity/internal/model"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the server's asset catalog
type CatalogHandler struct {
	classes []model.AssetClass
}

func NewCatalogHandler(classes []model.AssetClass) *CatalogHandler {
	return &CatalogHandler{classes: classes}
}

// ListAssetClasses handles GET /api/v1/catalog
func (h *CatalogHandler) ListAssetClasses(c *gin.Context) {
	out := make([]models.AssetClassInfo, len(h.classes))
	for i, ac := range h.classes {
		out[i] = models.AssetClassFromModel(ac)
	}
	c.JSON(http.StatusOK, gin.H{"asset_classes": out, "count": len(out)})
}
