package repository

import (
	"context"
	"fmt"

	"eliteshop/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// cartRepository implements the CartRepository interface using PostgreSQL.
type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

// GetBySession retrieves all cart items for the session with their products.
func (r *cartRepository) GetBySession(ctx context.Context, sessionID string) ([]model.CartItem, error) {
	query := `
		SELECT ci.id, ci.session_id, ci.product_id, ci.quantity, ci.created_at,
			p.id, p.name, p.description, p.price, p.category,
			p.stock_quantity, p.image_url, p.is_active, p.created_at
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.session_id = $1
		ORDER BY ci.id
	`

	rows, err := r.pool.Query(ctx, query, sessionID)
	if err != nil {
		r.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to query cart items")
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	var items []model.CartItem
	for rows.Next() {
		var item model.CartItem
		var p model.Product
		err := rows.Scan(
			&item.ID, &item.SessionID, &item.ProductID, &item.Quantity, &item.CreatedAt,
			&p.ID, &p.Name, &p.Description, &p.Price, &p.Category,
			&p.StockQuantity, &p.ImageURL, &p.IsActive, &p.CreatedAt,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan cart item row")
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		item.Product = &p
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating cart item rows")
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	return items, nil
}

// GetItem retrieves one cart item by ID within the session.
func (r *cartRepository) GetItem(ctx context.Context, itemID int64, sessionID string) (*model.CartItem, error) {
	query := `
		SELECT id, session_id, product_id, quantity, created_at
		FROM cart_items
		WHERE id = $1 AND session_id = $2
	`

	var item model.CartItem
	err := r.pool.QueryRow(ctx, query, itemID, sessionID).Scan(
		&item.ID, &item.SessionID, &item.ProductID, &item.Quantity, &item.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("item_id", itemID).Msg("cart item not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("item_id", itemID).Msg("failed to query cart item")
		return nil, fmt.Errorf("failed to query cart item: %w", err)
	}

	return &item, nil
}

// GetItemByProduct retrieves the session's cart item for a product.
func (r *cartRepository) GetItemByProduct(ctx context.Context, sessionID string, productID int64) (*model.CartItem, error) {
	query := `
		SELECT id, session_id, product_id, quantity, created_at
		FROM cart_items
		WHERE session_id = $1 AND product_id = $2
	`

	var item model.CartItem
	err := r.pool.QueryRow(ctx, query, sessionID, productID).Scan(
		&item.ID, &item.SessionID, &item.ProductID, &item.Quantity, &item.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("product_id", productID).Msg("failed to query cart item by product")
		return nil, fmt.Errorf("failed to query cart item by product: %w", err)
	}

	return &item, nil
}

// Insert adds a new cart item.
func (r *cartRepository) Insert(ctx context.Context, item *model.CartItem) error {
	query := `
		INSERT INTO cart_items (session_id, product_id, quantity)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query, item.SessionID, item.ProductID, item.Quantity).
		Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).
			Str("session_id", item.SessionID).
			Int64("product_id", item.ProductID).
			Msg("failed to insert cart item")
		return fmt.Errorf("failed to insert cart item: %w", err)
	}

	return nil
}

// UpdateQuantity sets the quantity of a cart item.
func (r *cartRepository) UpdateQuantity(ctx context.Context, itemID int64, quantity int) error {
	_, err := r.pool.Exec(ctx, `UPDATE cart_items SET quantity = $1 WHERE id = $2`, quantity, itemID)
	if err != nil {
		r.logger.Error().Err(err).Int64("item_id", itemID).Msg("failed to update cart item quantity")
		return fmt.Errorf("failed to update cart item quantity: %w", err)
	}
	return nil
}

// Delete removes one cart item.
func (r *cartRepository) Delete(ctx context.Context, itemID int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE id = $1`, itemID)
	if err != nil {
		r.logger.Error().Err(err).Int64("item_id", itemID).Msg("failed to delete cart item")
		return fmt.Errorf("failed to delete cart item: %w", err)
	}
	return nil
}

// Clear removes all cart items for the session.
func (r *cartRepository) Clear(ctx context.Context, sessionID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE session_id = $1`, sessionID)
	if err != nil {
		r.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to clear cart")
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// ClearTx removes all cart items for the session within the transaction.
func (r *cartRepository) ClearTx(ctx context.Context, tx pgx.Tx, sessionID string) error {
	_, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE session_id = $1`, sessionID)
	if err != nil {
		r.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to clear cart in transaction")
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// Count returns the number of cart lines for the session.
func (r *cartRepository) Count(ctx context.Context, sessionID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM cart_items WHERE session_id = $1`, sessionID).Scan(&count)
	if err != nil {
		r.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to count cart items")
		return 0, fmt.Errorf("failed to count cart items: %w", err)
	}
	return count, nil
}
