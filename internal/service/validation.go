package service

import (
	"strings"

	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/apperrors"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/models"
)

// ValidateAddItemRequest validates the body of an add-to-cart call.
func ValidateAddItemRequest(req *models.AddItemRequest) error {
	if req.ProductID == "" {
		return apperrors.NewValidationError("productId", "product ID is required")
	}

	if req.Quantity < 1 {
		return apperrors.NewValidationError("quantity", "quantity must be at least 1")
	}

	return nil
}

// ValidateContactRequest validates a contact-form submission.
func ValidateContactRequest(req *models.ContactRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return apperrors.NewValidationError("name", "name is required")
	}

	if strings.TrimSpace(req.Email) == "" {
		return apperrors.NewValidationError("email", "email is required")
	}

	at := strings.Index(req.Email, "@")
	if at < 1 || at == len(req.Email)-1 || !strings.Contains(req.Email[at:], ".") {
		return apperrors.NewValidationError("email", "email is not a valid address")
	}

	if strings.TrimSpace(req.Message) == "" {
		return apperrors.NewValidationError("message", "message is required")
	}

	if len(req.Message) > 5000 {
		return apperrors.NewValidationError("message", "message too long (max 5000 characters)")
	}

	return nil
}

// ValidateWeatherQuery validates and normalizes the weather query parameters.
// days outside 1..10 falls back to the default of 3.
func ValidateWeatherQuery(city string, days int) (int, error) {
	if strings.TrimSpace(city) == "" {
		return 0, apperrors.NewValidationError("city", "city is required")
	}

	if days < 1 || days > 10 {
		days = 3
	}

	return days, nil
}
