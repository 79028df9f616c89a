package terms

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tariften-backend/internal/core/catalog"
	"tariften-backend/internal/core/store"
	"tariften-backend/internal/pkg/common"
)

// Handler serves taxonomy term listings.
type Handler struct {
	store   store.ContentStore
	catalog *catalog.Catalog
}

func NewHandler(st store.ContentStore, cat *catalog.Catalog) *Handler {
	return &Handler{store: st, catalog: cat}
}

func validTaxonomy(tax string) bool {
	for _, t := range store.Taxonomies {
		if t == tax {
			return true
		}
	}
	return tax == store.TaxCollection
}

// List handles GET /terms/:taxonomy with name, slug and usage count.
func (h *Handler) List(c *gin.Context) {
	tax := c.Param("taxonomy")
	if !validTaxonomy(tax) {
		c.JSON(http.StatusNotFound, common.ErrorResponse{
			Code:    common.ErrCodeNotFound,
			Message: "unknown taxonomy: " + tax,
		})
		return
	}

	terms, err := h.store.GetTerms(c.Request.Context(), tax)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.ErrorResponse{
			Code:    common.ErrCodeInternalError,
			Message: "term lookup failed",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"taxonomy": tax, "terms": terms})
}

// Allowed handles GET /terms/:taxonomy/allowed: the names the generation
// engines accept right now, including fallbacks on an empty site.
func (h *Handler) Allowed(c *gin.Context) {
	tax := c.Param("taxonomy")
	if !validTaxonomy(tax) {
		c.JSON(http.StatusNotFound, common.ErrorResponse{
			Code:    common.ErrCodeNotFound,
			Message: "unknown taxonomy: " + tax,
		})
		return
	}

	names, err := h.catalog.AllowedTerms(c.Request.Context(), tax)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.ErrorResponse{
			Code:    common.ErrCodeInternalError,
			Message: "term lookup failed",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"taxonomy": tax, "allowed": names})
}
