package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/models"
)

// Checkout handles POST /api/v1/orders/checkout.
func (h *Handlers) Checkout(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.checkout.Checkout(c.Request.Context(), req.CartID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, "Order created successfully", order)
}

// GetOrder handles GET /api/v1/orders/:id.
func (h *Handlers) GetOrder(c *gin.Context) {
	order, err := h.checkout.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Order retrieved successfully", order)
}
