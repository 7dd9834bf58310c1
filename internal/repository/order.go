package repository

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/apperrors"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/models"
)

// Ensure PostgresOrderRepository implements OrderRepository.
var _ OrderRepository = (*PostgresOrderRepository)(nil)

// PostgresOrderRepository implements OrderRepository using PostgreSQL.
type PostgresOrderRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPostgresOrderRepository creates a new PostgreSQL order repository.
func NewPostgresOrderRepository(db *sql.DB, logger *zap.Logger) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		db:     db,
		logger: logger,
	}
}

// GetCartLinesPriced reads the cart's lines joined with current product
// prices. This is the single price read of a checkout; the values returned
// here become the order's permanent snapshot.
func (r *PostgresOrderRepository) GetCartLinesPriced(ctx context.Context, cartID string) ([]PricedLine, error) {
	query := `
		SELECT cl.product_id, p.name, cl.quantity, p.price
		FROM cart_lines cl
		JOIN products p ON p.id = cl.product_id
		WHERE cl.cart_id = $1
		ORDER BY cl.created_at
	`

	rows, err := r.db.QueryContext(ctx, query, cartID)
	if err != nil {
		r.logger.Error("failed to read priced cart lines", zap.String("cart_id", cartID), zap.Error(err))
		return nil, apperrors.NewStorageError("read priced cart lines", err)
	}
	defer rows.Close()

	lines := make([]PricedLine, 0)
	for rows.Next() {
		var line PricedLine
		if err := rows.Scan(&line.ProductID, &line.ProductName, &line.Quantity, &line.UnitPrice); err != nil {
			return nil, apperrors.NewStorageError("scan priced cart line", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("iterate priced cart lines", err)
	}

	return lines, nil
}

// CreateOrder inserts the order row and all order lines in one transaction,
// so a failure between the two inserts never leaves an orphaned empty order.
func (r *PostgresOrderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewStorageError("begin create order", err)
	}
	defer tx.Rollback()

	orderQuery := `
		INSERT INTO orders (id, cart_id, total_amount, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err = tx.ExecContext(ctx, orderQuery,
		order.ID,
		order.CartID,
		order.TotalAmount,
		order.Status,
		order.CreatedAt,
	)
	if err != nil {
		r.logger.Error("failed to insert order", zap.String("order_id", order.ID), zap.Error(err))
		return apperrors.NewStorageError("insert order", err)
	}

	lineQuery := `
		INSERT INTO order_lines (id, order_id, product_id, quantity, unit_price, subtotal, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	for _, line := range order.Lines {
		_, err = tx.ExecContext(ctx, lineQuery,
			line.ID,
			order.ID,
			line.ProductID,
			line.Quantity,
			line.UnitPrice,
			line.Subtotal,
			order.CreatedAt,
		)
		if err != nil {
			r.logger.Error("failed to insert order line",
				zap.String("order_id", order.ID),
				zap.String("product_id", line.ProductID),
				zap.Error(err))
			return apperrors.NewStorageError("insert order line", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewStorageError("commit create order", err)
	}

	r.logger.Info("order created",
		zap.String("order_id", order.ID),
		zap.String("cart_id", order.CartID),
		zap.String("total", order.TotalAmount.String()))
	return nil
}

// GetOrder loads the order row and its line snapshot.
func (r *PostgresOrderRepository) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order

	query := `
		SELECT id, cart_id, total_amount, status, created_at
		FROM orders
		WHERE id = $1
	`

	err := r.db.QueryRowContext(ctx, query, orderID).Scan(
		&order.ID,
		&order.CartID,
		&order.TotalAmount,
		&order.Status,
		&order.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to fetch order", zap.String("order_id", orderID), zap.Error(err))
		return nil, apperrors.NewStorageError("get order", err)
	}

	linesQuery := `
		SELECT id, order_id, product_id, quantity, unit_price, subtotal
		FROM order_lines
		WHERE order_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, linesQuery, orderID)
	if err != nil {
		return nil, apperrors.NewStorageError("get order lines", err)
	}
	defer rows.Close()

	order.Lines = make([]models.OrderLine, 0)
	for rows.Next() {
		var line models.OrderLine
		if err := rows.Scan(&line.ID, &line.OrderID, &line.ProductID, &line.Quantity, &line.UnitPrice, &line.Subtotal); err != nil {
			return nil, apperrors.NewStorageError("scan order line", err)
		}
		order.Lines = append(order.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("iterate order lines", err)
	}

	return &order, nil
}
