// Package identifier generates and validates the opaque UUID identifiers used
// for carts, orders and products.
package identifier

import (
	"github.com/google/uuid"

	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/apperrors"
)

// Nil is the reserved all-zero identifier. The cart-fetch endpoint treats it
// as "create a new cart".
const Nil = "00000000-0000-0000-0000-000000000000"

// New returns a fresh canonical UUID string.
func New() string {
	return uuid.NewString()
}

// Validate checks that id is a canonical hyphenated UUID. uuid.Parse accepts
// several alternate encodings, so the length is pinned to the canonical form.
func Validate(id string) error {
	if len(id) != 36 {
		return apperrors.ErrInvalidID
	}
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.ErrInvalidID
	}
	return nil
}

// IsNil reports whether id is the reserved sentinel.
func IsNil(id string) bool {
	return id == Nil
}
