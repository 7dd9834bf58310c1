package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/apperrors"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/config"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/identifier"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/metrics"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/models"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/repository"
)

// OrderEventPublisher publishes order lifecycle events.
type OrderEventPublisher interface {
	PublishOrderCreated(ctx context.Context, order *models.Order) error
}

// CartClearer empties a cart after a successful checkout when the
// clear-on-checkout policy is enabled.
type CartClearer interface {
	ClearCart(ctx context.Context, cartID string) error
}

// CheckoutService converts a cart's current contents into a priced,
// immutable order, and serves order lookups.
type CheckoutService struct {
	orderRepo      repository.OrderRepository
	carts          CartClearer
	eventPublisher OrderEventPublisher
	config         *config.Config
	logger         *zap.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	orderRepo repository.OrderRepository,
	carts CartClearer,
	eventPublisher OrderEventPublisher,
	cfg *config.Config,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		orderRepo:      orderRepo,
		carts:          carts,
		eventPublisher: eventPublisher,
		config:         cfg,
		logger:         logger,
	}
}

// Checkout reads the cart's lines with current catalog prices, snapshots them
// into an order, and returns the order through the same read path a later
// GetOrder would use. An absent cart and an empty cart are rejected alike.
func (s *CheckoutService) Checkout(ctx context.Context, cartID string) (*models.Order, error) {
	if err := identifier.Validate(cartID); err != nil {
		return nil, err
	}

	lines, err := s.orderRepo.GetCartLinesPriced(ctx, cartID)
	if err != nil {
		return nil, err
	}

	if len(lines) == 0 {
		return nil, apperrors.NewValidationError("cartId", "cart is empty or does not exist")
	}

	now := time.Now().UTC()
	order := &models.Order{
		ID:          identifier.New(),
		CartID:      cartID,
		TotalAmount: OrderTotal(lines),
		Status:      models.OrderStatusConfirmed,
		CreatedAt:   now,
		Lines:       make([]models.OrderLine, 0, len(lines)),
	}

	for _, line := range lines {
		order.Lines = append(order.Lines, models.OrderLine{
			ID:        identifier.New(),
			OrderID:   order.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Subtotal:  LineSubtotal(line.UnitPrice, line.Quantity),
		})
	}

	if err := s.orderRepo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	// Read back through the lookup path so checkout's response is exactly
	// what a subsequent GetOrder returns.
	composed, err := s.orderRepo.GetOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	metrics.OrdersCreated.Inc()

	if s.config.Features.EnableOrderEvents && s.eventPublisher != nil {
		if err := s.eventPublisher.PublishOrderCreated(ctx, composed); err != nil {
			s.logger.Error("failed to publish order created event",
				zap.String("order_id", composed.ID), zap.Error(err))
		}
	}

	if s.config.Features.ClearCartOnCheckout && s.carts != nil {
		if err := s.carts.ClearCart(ctx, cartID); err != nil {
			s.logger.Error("failed to clear cart after checkout",
				zap.String("cart_id", cartID), zap.Error(err))
		}
	}

	s.logger.Info("checkout completed",
		zap.String("order_id", composed.ID),
		zap.String("cart_id", cartID),
		zap.String("total", composed.TotalAmount.String()),
		zap.Int("lines", len(composed.Lines)))

	return composed, nil
}

// GetOrder retrieves a previously created order with its line snapshot.
func (s *CheckoutService) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	if err := identifier.Validate(orderID); err != nil {
		return nil, err
	}

	return s.orderRepo.GetOrder(ctx, orderID)
}
