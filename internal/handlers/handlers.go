package handlers

import (
	"go.uber.org/zap"

	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/config"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/service"
)

// Handlers holds all HTTP handlers for the storefront service.
type Handlers struct {
	carts    *service.CartService
	checkout *service.CheckoutService
	products *service.ProductService
	weather  *service.WeatherService
	contact  *service.ContactService
	config   *config.Config
	logger   *zap.Logger
}

// NewHandlers creates a new handlers instance.
func NewHandlers(
	carts *service.CartService,
	checkout *service.CheckoutService,
	products *service.ProductService,
	weather *service.WeatherService,
	contact *service.ContactService,
	cfg *config.Config,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		carts:    carts,
		checkout: checkout,
		products: products,
		weather:  weather,
		contact:  contact,
		config:   cfg,
		logger:   logger,
	}
}
