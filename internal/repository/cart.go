package repository

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/apperrors"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/identifier"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/models"
)

// Ensure PostgresCartRepository implements CartRepository.
var _ CartRepository = (*PostgresCartRepository)(nil)

// PostgresCartRepository implements CartRepository using PostgreSQL.
type PostgresCartRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPostgresCartRepository creates a new PostgreSQL cart repository.
func NewPostgresCartRepository(db *sql.DB, logger *zap.Logger) *PostgresCartRepository {
	return &PostgresCartRepository{
		db:     db,
		logger: logger,
	}
}

// CreateCart inserts a new empty cart and returns it.
func (r *PostgresCartRepository) CreateCart(ctx context.Context) (*models.Cart, error) {
	now := time.Now().UTC()
	cart := &models.Cart{
		ID:        identifier.New(),
		Lines:     []models.CartLine{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	query := `INSERT INTO carts (id, created_at, updated_at) VALUES ($1, $2, $3)`

	if _, err := r.db.ExecContext(ctx, query, cart.ID, cart.CreatedAt, cart.UpdatedAt); err != nil {
		r.logger.Error("failed to create cart", zap.Error(err))
		return nil, apperrors.NewStorageError("create cart", err)
	}

	r.logger.Info("cart created", zap.String("cart_id", cart.ID))
	return cart, nil
}

// GetCart loads the cart row and its lines in insertion order.
func (r *PostgresCartRepository) GetCart(ctx context.Context, cartID string) (*models.Cart, error) {
	var cart models.Cart

	query := `SELECT id, created_at, updated_at FROM carts WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, cartID).Scan(&cart.ID, &cart.CreatedAt, &cart.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to fetch cart", zap.String("cart_id", cartID), zap.Error(err))
		return nil, apperrors.NewStorageError("get cart", err)
	}

	linesQuery := `
		SELECT product_id, quantity
		FROM cart_lines
		WHERE cart_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, linesQuery, cartID)
	if err != nil {
		return nil, apperrors.NewStorageError("get cart lines", err)
	}
	defer rows.Close()

	cart.Lines = make([]models.CartLine, 0)
	for rows.Next() {
		var line models.CartLine
		if err := rows.Scan(&line.ProductID, &line.Quantity); err != nil {
			return nil, apperrors.NewStorageError("scan cart line", err)
		}
		cart.Lines = append(cart.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("iterate cart lines", err)
	}

	return &cart, nil
}

// EnsureCart inserts the cart row if it does not exist. Existing carts are
// untouched, which lets addToCart auto-vivify carts without a prior create.
func (r *PostgresCartRepository) EnsureCart(ctx context.Context, cartID string) error {
	now := time.Now().UTC()

	query := `
		INSERT INTO carts (id, created_at, updated_at)
		VALUES ($1, $2, $2)
		ON CONFLICT (id) DO NOTHING
	`

	if _, err := r.db.ExecContext(ctx, query, cartID, now); err != nil {
		return apperrors.NewStorageError("ensure cart", err)
	}
	return nil
}

// UpsertLine adds quantity to the line for productID, creating it when
// absent. The increment happens inside the upsert so concurrent adds for the
// same product cannot lose updates.
func (r *PostgresCartRepository) UpsertLine(ctx context.Context, cartID, productID string, quantity int) error {
	now := time.Now().UTC()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewStorageError("begin upsert line", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO cart_lines (id, cart_id, product_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET quantity = cart_lines.quantity + EXCLUDED.quantity, updated_at = EXCLUDED.updated_at
	`

	if _, err := tx.ExecContext(ctx, query, identifier.New(), cartID, productID, quantity, now); err != nil {
		r.logger.Error("failed to upsert cart line",
			zap.String("cart_id", cartID),
			zap.String("product_id", productID),
			zap.Error(err))
		return apperrors.NewStorageError("upsert cart line", err)
	}

	if err := r.touchCart(ctx, tx, cartID, now); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewStorageError("commit upsert line", err)
	}

	r.logger.Debug("cart line upserted",
		zap.String("cart_id", cartID),
		zap.String("product_id", productID),
		zap.Int("quantity", quantity))
	return nil
}

// DeleteLine removes the line for productID. Deleting an absent line is a
// no-op success.
func (r *PostgresCartRepository) DeleteLine(ctx context.Context, cartID, productID string) error {
	now := time.Now().UTC()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewStorageError("begin delete line", err)
	}
	defer tx.Rollback()

	query := `DELETE FROM cart_lines WHERE cart_id = $1 AND product_id = $2`

	if _, err := tx.ExecContext(ctx, query, cartID, productID); err != nil {
		return apperrors.NewStorageError("delete cart line", err)
	}

	if err := r.touchCart(ctx, tx, cartID, now); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewStorageError("commit delete line", err)
	}
	return nil
}

// ClearLines removes all lines of the cart. Clearing an empty or missing
// cart is a no-op success.
func (r *PostgresCartRepository) ClearLines(ctx context.Context, cartID string) error {
	now := time.Now().UTC()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewStorageError("begin clear lines", err)
	}
	defer tx.Rollback()

	query := `DELETE FROM cart_lines WHERE cart_id = $1`

	if _, err := tx.ExecContext(ctx, query, cartID); err != nil {
		return apperrors.NewStorageError("clear cart lines", err)
	}

	if err := r.touchCart(ctx, tx, cartID, now); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewStorageError("commit clear lines", err)
	}
	return nil
}

// touchCart refreshes updated_at. Zero rows affected is fine: remove/clear
// stay lenient when the cart row never existed.
func (r *PostgresCartRepository) touchCart(ctx context.Context, tx *sql.Tx, cartID string, now time.Time) error {
	query := `UPDATE carts SET updated_at = $2 WHERE id = $1`

	if _, err := tx.ExecContext(ctx, query, cartID, now); err != nil {
		return apperrors.NewStorageError("touch cart", err)
	}
	return nil
}
