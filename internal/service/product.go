package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/identifier"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/models"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/repository"
)

// ProductService serves catalog reads.
type ProductService struct {
	productRepo repository.ProductRepository
	logger      *zap.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		logger:      logger,
	}
}

func (s *ProductService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.productRepo.List(ctx)
}

func (s *ProductService) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	if err := identifier.Validate(productID); err != nil {
		return nil, err
	}

	return s.productRepo.FindOne(ctx, productID)
}
