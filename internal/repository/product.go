package repository

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/apperrors"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/models"
)

// Ensure PostgresProductRepository implements ProductRepository.
var _ ProductRepository = (*PostgresProductRepository)(nil)

// PostgresProductRepository implements ProductRepository using PostgreSQL.
type PostgresProductRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPostgresProductRepository creates a new PostgreSQL product repository.
func NewPostgresProductRepository(db *sql.DB, logger *zap.Logger) *PostgresProductRepository {
	return &PostgresProductRepository{
		db:     db,
		logger: logger,
	}
}

func (r *PostgresProductRepository) List(ctx context.Context) ([]models.Product, error) {
	query := `
		SELECT id, name, description, price, created_at, updated_at
		FROM products
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to list products", zap.Error(err))
		return nil, apperrors.NewStorageError("list products", err)
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, apperrors.NewStorageError("scan product", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("iterate products", err)
	}

	return products, nil
}

func (r *PostgresProductRepository) FindOne(ctx context.Context, productID string) (*models.Product, error) {
	query := `
		SELECT id, name, description, price, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	var p models.Product
	err := r.db.QueryRowContext(ctx, query, productID).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to fetch product", zap.String("product_id", productID), zap.Error(err))
		return nil, apperrors.NewStorageError("get product", err)
	}

	return &p, nil
}
