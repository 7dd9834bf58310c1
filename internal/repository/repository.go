package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/models"
)

// ErrCacheMiss is returned by CartCache.Get when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// CartRepository owns cart and cart-line persistence.
type CartRepository interface {
	// CreateCart inserts a new empty cart and returns it.
	CreateCart(ctx context.Context) (*models.Cart, error)

	// GetCart loads a cart and its lines in insertion order. Returns
	// apperrors.ErrNotFound when no cart row exists.
	GetCart(ctx context.Context, cartID string) (*models.Cart, error)

	// EnsureCart inserts the cart row if it does not exist yet.
	EnsureCart(ctx context.Context, cartID string) error

	// UpsertLine adds quantity to the cart's line for productID, creating the
	// line when absent. The increment is atomic at the storage layer.
	UpsertLine(ctx context.Context, cartID, productID string, quantity int) error

	// DeleteLine removes the line for productID. Absence is a no-op.
	DeleteLine(ctx context.Context, cartID, productID string) error

	// ClearLines removes all lines of the cart. An empty cart is a no-op.
	ClearLines(ctx context.Context, cartID string) error
}

// ProductRepository resolves catalog entries.
type ProductRepository interface {
	List(ctx context.Context) ([]models.Product, error)

	// FindOne returns apperrors.ErrNotFound when the product does not exist.
	FindOne(ctx context.Context, productID string) (*models.Product, error)
}

// PricedLine is a cart line joined with the current catalog price, read once
// at checkout time.
type PricedLine struct {
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// OrderRepository owns order and order-line persistence.
type OrderRepository interface {
	// GetCartLinesPriced reads the cart's lines joined with current product
	// prices, in insertion order.
	GetCartLinesPriced(ctx context.Context, cartID string) ([]PricedLine, error)

	// CreateOrder inserts the order and all its lines in one transaction.
	CreateOrder(ctx context.Context, order *models.Order) error

	// GetOrder loads an order with its line snapshot. Returns
	// apperrors.ErrNotFound when no order row exists.
	GetOrder(ctx context.Context, orderID string) (*models.Order, error)
}

// CartCache defines caching operations for carts.
type CartCache interface {
	Get(ctx context.Context, cartID string) (*models.Cart, error)
	Set(ctx context.Context, cart *models.Cart) error
	Delete(ctx context.Context, cartID string) error
}
