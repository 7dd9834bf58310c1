package models

import "time"

// Cart is a mutable pre-purchase collection of product references. A cart
// never holds two lines for the same product; adding an existing product
// merges quantities instead.
type Cart struct {
	ID        string     `json:"id"`
	Lines     []CartLine `json:"lines"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// CartLine is one (product, quantity) pair within a cart. Quantity is always
// at least 1; removal deletes the line rather than zeroing it.
type CartLine struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// AddItemRequest is the body of POST /cart/:id/items. Field checks live in
// service.ValidateAddItemRequest so error messages name the offending field.
type AddItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}
