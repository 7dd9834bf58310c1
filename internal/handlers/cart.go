package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/identifier"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/models"
)

// cartResponse is the wire shape of a cart.
type cartResponse struct {
	ID    string            `json:"id"`
	Lines []models.CartLine `json:"lines"`
}

func newCartResponse(cart *models.Cart) cartResponse {
	lines := cart.Lines
	if lines == nil {
		lines = []models.CartLine{}
	}
	return cartResponse{ID: cart.ID, Lines: lines}
}

// GetCart handles GET /api/v1/cart/:id. The all-zero sentinel id requests a
// brand-new cart instead of a lookup.
func (h *Handlers) GetCart(c *gin.Context) {
	cartID := c.Param("id")

	if identifier.IsNil(cartID) {
		cart, err := h.carts.CreateCart(c.Request.Context())
		if err != nil {
			h.handleError(c, err)
			return
		}
		respondSuccess(c, http.StatusOK, "Cart created successfully", newCartResponse(cart))
		return
	}

	cart, err := h.carts.GetCart(c.Request.Context(), cartID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Cart retrieved successfully", newCartResponse(cart))
}

// AddToCart handles POST /api/v1/cart/:id/items.
func (h *Handlers) AddToCart(c *gin.Context) {
	cartID := c.Param("id")

	var req models.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.carts.AddToCart(c.Request.Context(), cartID, &req); err != nil {
		h.handleError(c, err)
		return
	}

	cart, err := h.carts.GetCart(c.Request.Context(), cartID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Item added to cart successfully", newCartResponse(cart))
}

// RemoveFromCart handles DELETE /api/v1/cart/:id/items/:productId.
func (h *Handlers) RemoveFromCart(c *gin.Context) {
	cartID := c.Param("id")
	productID := c.Param("productId")

	if err := h.carts.RemoveFromCart(c.Request.Context(), cartID, productID); err != nil {
		h.handleError(c, err)
		return
	}

	cart, err := h.carts.GetCart(c.Request.Context(), cartID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Item removed from cart successfully", newCartResponse(cart))
}

// ClearCart handles DELETE /api/v1/cart/:id.
func (h *Handlers) ClearCart(c *gin.Context) {
	cartID := c.Param("id")

	if err := h.carts.ClearCart(c.Request.Context(), cartID); err != nil {
		h.handleError(c, err)
		return
	}

	cart, err := h.carts.GetCart(c.Request.Context(), cartID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Cart cleared successfully", newCartResponse(cart))
}
