package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListProducts handles GET /api/v1/products.
func (h *Handlers) ListProducts(c *gin.Context) {
	products, err := h.products.ListProducts(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Products retrieved successfully", products)
}

// GetProduct handles GET /api/v1/products/:id.
func (h *Handlers) GetProduct(c *gin.Context) {
	product, err := h.products.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Product retrieved successfully", product)
}
