package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/apperrors"
)

// Response is the envelope used by every endpoint.
type Response struct {
	Type      string      `json:"type"`
	Status    int         `json:"status"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

func respondSuccess(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{
		Type:      "success",
		Status:    status,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, Response{
		Type:      "error",
		Status:    status,
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
}

// handleError maps domain errors onto HTTP responses. Storage detail is
// logged server-side and never echoed to the caller.
func (h *Handlers) handleError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrInvalidID) {
		respondError(c, http.StatusBadRequest, "invalid identifier format")
		return
	}

	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		respondError(c, http.StatusBadRequest, validationErr.Message)
		return
	}

	if errors.Is(err, apperrors.ErrNotFound) {
		respondError(c, http.StatusNotFound, "not found")
		return
	}

	var upstreamErr *apperrors.UpstreamError
	if errors.As(err, &upstreamErr) {
		h.logger.Error("upstream failure", zap.Error(err))
		respondError(c, http.StatusInternalServerError, upstreamErr.Error())
		return
	}

	h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	respondError(c, http.StatusInternalServerError, "internal server error")
}
