package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Carts and orders reference products by ID only;
// neither owns the product row.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
