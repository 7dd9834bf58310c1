package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/apperrors"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/config"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/identifier"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/models"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/repository"
)

// cacheOpTimeout bounds best-effort cache invalidations that run outside the
// request context.
const cacheOpTimeout = time.Second

// CartService implements the cart line management flow: get-or-create,
// merge-on-add, idempotent remove and clear.
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	cache       repository.CartCache
	config      *config.Config
	logger      *zap.Logger
	sfg         singleflight.Group
}

// NewCartService creates a new cart service.
func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	cache repository.CartCache,
	cfg *config.Config,
	logger *zap.Logger,
) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		cache:       cache,
		config:      cfg,
		logger:      logger,
	}
}

// CreateCart persists a new empty cart and returns it.
func (s *CartService) CreateCart(ctx context.Context) (*models.Cart, error) {
	cart, err := s.cartRepo.CreateCart(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Info("cart created", zap.String("cart_id", cart.ID))
	return cart, nil
}

// GetCart loads a cart by id. Reads go through the cache, with singleflight
// collapsing concurrent misses for the same cart.
func (s *CartService) GetCart(ctx context.Context, cartID string) (*models.Cart, error) {
	if err := identifier.Validate(cartID); err != nil {
		return nil, err
	}

	if !s.cachingEnabled() {
		return s.cartRepo.GetCart(ctx, cartID)
	}

	v, err, _ := s.sfg.Do(cartID, func() (interface{}, error) {
		cart, err := s.cache.Get(ctx, cartID)
		if err == nil {
			return cart, nil
		}
		if !errors.Is(err, repository.ErrCacheMiss) {
			s.logger.Warn("cache read failed, falling through to storage",
				zap.String("cart_id", cartID), zap.Error(err))
		}

		cart, err = s.cartRepo.GetCart(ctx, cartID)
		if err != nil {
			return nil, err
		}

		if err := s.cache.Set(ctx, cart); err != nil {
			s.logger.Warn("cache fill failed", zap.String("cart_id", cartID), zap.Error(err))
		}

		return cart, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*models.Cart), nil
}

// AddToCart merges an item into the cart: quantities for an existing product
// accumulate, a new product gets its own line. The cart row springs into
// existence on first add.
func (s *CartService) AddToCart(ctx context.Context, cartID string, req *models.AddItemRequest) error {
	if err := identifier.Validate(cartID); err != nil {
		return err
	}

	if err := ValidateAddItemRequest(req); err != nil {
		return err
	}

	if err := identifier.Validate(req.ProductID); err != nil {
		return err
	}

	if _, err := s.productRepo.FindOne(ctx, req.ProductID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Info("add to cart rejected, unknown product",
				zap.String("cart_id", cartID),
				zap.String("product_id", req.ProductID))
		}
		return err
	}

	if err := s.cartRepo.EnsureCart(ctx, cartID); err != nil {
		return err
	}

	if err := s.cartRepo.UpsertLine(ctx, cartID, req.ProductID, req.Quantity); err != nil {
		return err
	}

	s.invalidateCache(cartID)

	s.logger.Info("item added to cart",
		zap.String("cart_id", cartID),
		zap.String("product_id", req.ProductID),
		zap.Int("quantity", req.Quantity))
	return nil
}

// RemoveFromCart deletes the line for productID. Removing an absent line is
// a no-op success.
func (s *CartService) RemoveFromCart(ctx context.Context, cartID, productID string) error {
	if err := identifier.Validate(cartID); err != nil {
		return err
	}
	if err := identifier.Validate(productID); err != nil {
		return err
	}

	if err := s.cartRepo.DeleteLine(ctx, cartID, productID); err != nil {
		return err
	}

	s.invalidateCache(cartID)
	return nil
}

// ClearCart removes all lines. Clearing an already-empty cart succeeds.
func (s *CartService) ClearCart(ctx context.Context, cartID string) error {
	if err := identifier.Validate(cartID); err != nil {
		return err
	}

	if err := s.cartRepo.ClearLines(ctx, cartID); err != nil {
		return err
	}

	s.invalidateCache(cartID)
	return nil
}

func (s *CartService) cachingEnabled() bool {
	return s.cache != nil && s.config.Features.EnableCartCaching
}

func (s *CartService) invalidateCache(cartID string) {
	if !s.cachingEnabled() {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), cacheOpTimeout)
	defer cancel()

	if err := s.cache.Delete(ctx, cartID); err != nil {
		s.logger.Warn("cache invalidation failed", zap.String("cart_id", cartID), zap.Error(err))
	}
}
