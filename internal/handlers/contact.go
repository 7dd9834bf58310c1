package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/models"
)

// SubmitContact handles POST /api/v1/contact.
func (h *Handlers) SubmitContact(c *gin.Context) {
	var req models.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.contact.SubmitContact(c.Request.Context(), &req); err != nil {
		h.handleError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, "Contact form submitted successfully", gin.H{"sent": true})
}
