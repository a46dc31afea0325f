package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lotopos/animalitos-pos-backend/internal/catalog"
	"github.com/lotopos/animalitos-pos-backend/internal/services"
)

// CatalogHandler serves the lottery and outcome catalogs to the selling surface
type CatalogHandler struct {
	catalogService services.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// Lotteries handles GET /catalog/lotteries
func (h *CatalogHandler) Lotteries(c *gin.Context) {
	lotteries, err := h.catalogService.ActiveLotteries(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load lottery catalog"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"lotteries": lotteries})
}

// Outcomes handles GET /catalog/outcomes. The outcome table is compiled in;
// it changes with releases, not with data.
func (h *CatalogHandler) Outcomes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"outcomes": catalog.Outcomes()})
}
